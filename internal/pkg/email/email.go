package email

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/elimuhub/homework_go_server/config"
)

type Service struct {
	cfg *config.EmailConfig
}

func NewService(cfg *config.EmailConfig) *Service {
	return &Service{cfg: cfg}
}

// SendQuestionAnswered notifies a parent that their question has been
// processed. Failures are the caller's to ignore.
func (s *Service) SendQuestionAnswered(to, username, subject, preview string) error {
	mailSubject := "Your homework question has been answered!"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">Question Answered</h2>
        <p>Hi %s,</p>
        <p>Your question about <strong>%s</strong> has been processed and answered.</p>
        <p>Log in to your Homework Helper app to view the detailed explanation.</p>
        <div style="background-color: #f3f4f6; padding: 15px; margin: 20px 0;">
            %s
        </div>
        <p>Best regards,<br>The Homework Helper Team</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This email was sent automatically, please do not reply.</p>
    </div>
</body>
</html>
`, username, subject, preview)

	return s.sendHTML(to, mailSubject, body)
}

// SendWelcome greets a newly registered parent.
func (s *Service) SendWelcome(to, username string) error {
	subject := "Welcome to Homework Helper"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">Welcome!</h2>
        <p>Hi %s,</p>
        <p>Thanks for joining Homework Helper. You can now:</p>
        <ul>
            <li>Add your children and their subjects</li>
            <li>Submit homework questions and get step-by-step explanations</li>
            <li>Upgrade for unlimited questions</li>
        </ul>
        <p>Your free account comes with 3 questions to get you started.</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This email was sent automatically, please do not reply.</p>
    </div>
</body>
</html>
`, username)

	return s.sendHTML(to, subject, body)
}

// SendUsageReport mails the daily numbers to the admin address.
func (s *Service) SendUsageReport(date string, questions, activeUsers int64, revenue float64) error {
	if s.cfg.AdminEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Homework Helper Daily Report - %s", date)
	body := fmt.Sprintf(`Daily Usage Report for %s

Questions Asked: %d
Active Users: %d
Revenue Generated: KES %.2f

Best regards,
System
`, date, questions, activeUsers, revenue)

	return s.sendPlain(s.cfg.AdminEmail, subject, body)
}

// sendHTML sends an HTML mail.
func (s *Service) sendHTML(to, subject, body string) error {
	return s.send(to, subject, body, "text/html; charset=UTF-8")
}

// sendPlain sends a plain text mail.
func (s *Service) sendPlain(to, subject, body string) error {
	return s.send(to, subject, body, "text/plain; charset=UTF-8")
}

func (s *Service) send(to, subject, body, contentType string) error {
	headers := make(map[string]string)
	headers["From"] = s.cfg.From
	headers["To"] = to
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = contentType

	var msg strings.Builder
	for k, v := range headers {
		msg.WriteString(fmt.Sprintf("%s: %s\r\n", k, v))
	}
	msg.WriteString("\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.SMTPHost)
	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)

	return smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg.String()))
}

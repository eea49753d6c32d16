package worker

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/elimuhub/homework_go_server/config"
	"github.com/elimuhub/homework_go_server/internal/model"
	"github.com/elimuhub/homework_go_server/internal/pkg/ai"
	"github.com/elimuhub/homework_go_server/internal/pkg/email"
	"github.com/elimuhub/homework_go_server/internal/pkg/pubsub"
	"github.com/elimuhub/homework_go_server/internal/pkg/queue"
	"github.com/elimuhub/homework_go_server/internal/repository"
)

const answerFailedMessage = "We could not answer this question right now. Please try submitting it again."

// Processor fulfills queued questions. Redelivered messages find the
// question already processed and do nothing.
type Processor struct {
	questionRepo *repository.QuestionRepository
	userRepo     *repository.UserRepository
	aiClient     *ai.Client
	emailSvc     *email.Service
	publisher    *pubsub.Publisher
	cfg          *config.Config
}

func NewProcessor(
	questionRepo *repository.QuestionRepository,
	userRepo *repository.UserRepository,
	aiClient *ai.Client,
	emailSvc *email.Service,
	publisher *pubsub.Publisher,
	cfg *config.Config,
) *Processor {
	return &Processor{
		questionRepo: questionRepo,
		userRepo:     userRepo,
		aiClient:     aiClient,
		emailSvc:     emailSvc,
		publisher:    publisher,
		cfg:          cfg,
	}
}

// Process answers one question. The AI call is retried a bounded number
// of times; a question that still cannot be answered is closed with a
// user-visible error so the app never shows an eternal spinner.
func (p *Processor) Process(ctx context.Context, msg *queue.JobMessage) error {
	question, err := p.questionRepo.GetByID(msg.QuestionID)
	if err != nil {
		return fmt.Errorf("get question %d: %w", msg.QuestionID, err)
	}

	if question.IsProcessed {
		log.Printf("question %d already processed, skipping", question.ID)
		return nil
	}

	started := time.Now()
	result, aiErr := p.explainWithRetry(ctx, question)
	elapsed := int(time.Since(started).Milliseconds())

	var fields map[string]interface{}
	if aiErr != nil {
		log.Printf("question %d: ai fulfillment failed: %v", question.ID, aiErr)
		fields = map[string]interface{}{
			"ai_response":     answerFailedMessage,
			"processing_time": elapsed,
		}
	} else {
		fields = map[string]interface{}{
			"ai_response":     result.Explanation,
			"explanation":     result.SimpleExplanation,
			"step_by_step":    result.Steps,
			"difficulty":      result.Difficulty,
			"processing_time": elapsed,
		}
	}

	written, err := p.questionRepo.MarkProcessed(question.ID, fields)
	if err != nil {
		return fmt.Errorf("mark question %d processed: %w", question.ID, err)
	}
	if !written {
		log.Printf("question %d was processed concurrently, skipping notify", question.ID)
		return nil
	}

	p.notify(ctx, question, aiErr, elapsed)
	return nil
}

func (p *Processor) explainWithRetry(ctx context.Context, question *model.Question) (*ai.Result, error) {
	maxAttempts := p.cfg.AI.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 3
	}

	content := question.Content
	if question.Type == "image" && content == "" {
		content = fmt.Sprintf("Please solve the problem in this image: %s", question.ImageURL)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt-1) * time.Second):
			}
		}

		result, err := p.aiClient.Explain(ctx, content, question.Subject, question.GradeLevel)
		if err == nil {
			return result, nil
		}
		lastErr = err
		log.Printf("question %d: ai attempt %d/%d failed: %v", question.ID, attempt, maxAttempts, err)
	}
	return nil, lastErr
}

// notify publishes the fulfillment event and mails the parent. Neither
// failure affects the stored answer.
func (p *Processor) notify(ctx context.Context, question *model.Question, aiErr error, elapsed int) {
	event := &pubsub.QuestionEvent{
		Type:           pubsub.EventQuestionAnswered,
		UserID:         question.UserID,
		QuestionID:     question.ID,
		QuestionUUID:   question.QuestionID,
		Subject:        question.Subject,
		ProcessingTime: elapsed,
	}
	if aiErr != nil {
		event.Type = pubsub.EventQuestionFailed
		event.Error = answerFailedMessage
	}
	if err := p.publisher.PublishQuestionEvent(ctx, event); err != nil {
		log.Printf("publish event for question %d: %v", question.ID, err)
	}

	if aiErr != nil || p.emailSvc == nil {
		return
	}

	user, err := p.userRepo.GetByID(question.UserID)
	if err != nil {
		log.Printf("load user %d for notification: %v", question.UserID, err)
		return
	}

	preview := question.Content
	if len(preview) > 80 {
		preview = preview[:80] + "..."
	}
	if err := p.emailSvc.SendQuestionAnswered(user.Email, user.Username, question.Subject, preview); err != nil {
		log.Printf("send answer email to %s: %v", user.Email, err)
	}
}

package cron

import (
	"log"
	"time"

	"github.com/elimuhub/homework_go_server/internal/pkg/email"
	"github.com/elimuhub/homework_go_server/internal/repository"
	"github.com/elimuhub/homework_go_server/internal/service"
)

type Service struct {
	subscriptionSvc *service.SubscriptionService
	questionRepo    *repository.QuestionRepository
	userRepo        *repository.UserRepository
	emailSvc        *email.Service
	reportEnabled   bool
	reportHour      int
	stopChan        chan struct{}
}

func NewService(
	subscriptionSvc *service.SubscriptionService,
	questionRepo *repository.QuestionRepository,
	userRepo *repository.UserRepository,
	emailSvc *email.Service,
	reportEnabled bool,
	reportHour int,
) *Service {
	return &Service{
		subscriptionSvc: subscriptionSvc,
		questionRepo:    questionRepo,
		userRepo:        userRepo,
		emailSvc:        emailSvc,
		reportEnabled:   reportEnabled,
		reportHour:      reportHour,
		stopChan:        make(chan struct{}),
	}
}

// Start launches the background jobs.
func (s *Service) Start() {
	go s.runExpirySweep()
	if s.reportEnabled {
		go s.runUsageReport()
	}
	log.Println("Cron service started (subscription sweep + usage report)")
}

// Stop stops the background jobs.
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

// runExpirySweep expires overdue subscriptions at midnight UTC.
func (s *Service) runExpirySweep() {
	now := time.Now().UTC()
	nextMidnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	timer := time.NewTimer(nextMidnight.Sub(now))

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.sweepSubscriptions()
			timer.Reset(24 * time.Hour)
		}
	}
}

func (s *Service) sweepSubscriptions() {
	log.Println("Starting subscription expiry sweep...")
	expired, err := s.subscriptionSvc.SweepExpired(time.Now())
	if err != nil {
		log.Printf("Subscription sweep failed: %v", err)
		return
	}
	log.Printf("Subscription sweep completed, expired %d", expired)
}

// runUsageReport mails the daily usage summary at the configured hour.
func (s *Service) runUsageReport() {
	timer := time.NewTimer(s.untilNextReport())

	for {
		select {
		case <-s.stopChan:
			timer.Stop()
			return
		case <-timer.C:
			s.sendUsageReport()
			timer.Reset(s.untilNextReport())
		}
	}
}

func (s *Service) untilNextReport() time.Duration {
	now := time.Now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), s.reportHour, 0, 0, 0, time.UTC)
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}

func (s *Service) sendUsageReport() {
	end := time.Now().UTC().Truncate(24 * time.Hour)
	start := end.Add(-24 * time.Hour)

	questions, err := s.questionRepo.CountCreatedBetween(start, end)
	if err != nil {
		log.Printf("Usage report: count questions: %v", err)
		return
	}
	activeUsers, err := s.userRepo.CountActiveBetween(start, end)
	if err != nil {
		log.Printf("Usage report: count active users: %v", err)
		return
	}
	revenue, err := s.questionRepo.SumCostBetween(start, end)
	if err != nil {
		log.Printf("Usage report: sum revenue: %v", err)
		return
	}

	if err := s.emailSvc.SendUsageReport(start.Format("2006-01-02"), questions, activeUsers, revenue); err != nil {
		log.Printf("Usage report: send email: %v", err)
		return
	}
	log.Printf("Usage report sent: %d questions, %d active users", questions, activeUsers)
}

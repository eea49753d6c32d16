package service

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/config"
	"github.com/elimuhub/homework_go_server/internal/model"
	"github.com/elimuhub/homework_go_server/internal/model/dto"
	"github.com/elimuhub/homework_go_server/internal/repository"
)

var (
	ErrSubscriptionNotFound = errors.New("subscription not found")
	ErrUnknownPlan          = errors.New("unknown subscription plan")
	ErrNotActive            = errors.New("subscription is not active")
)

type SubscriptionService struct {
	subscriptionRepo *repository.SubscriptionRepository
	userRepo         *repository.UserRepository
	cfg              *config.Config
}

func NewSubscriptionService(
	subscriptionRepo *repository.SubscriptionRepository,
	userRepo *repository.UserRepository,
	cfg *config.Config,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		cfg:              cfg,
	}
}

// Create starts a plan from an explicit purchase request.
func (s *SubscriptionService) Create(userID int64, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionInfo, error) {
	autoRenew := true
	if req.AutoRenew != nil {
		autoRenew = *req.AutoRenew
	}
	sub, err := s.start(userID, req.PlanType, req.PaymentID, autoRenew)
	if err != nil {
		return nil, err
	}
	return buildSubscriptionInfo(sub), nil
}

// Start opens a subscription from a settled payment.
func (s *SubscriptionService) Start(userID int64, planType string, paymentID *int64) (*model.Subscription, error) {
	return s.start(userID, planType, paymentID, true)
}

// start opens a subscription running from now for the configured term
// and moves the user onto the plan.
func (s *SubscriptionService) start(userID int64, planType string, paymentID *int64, autoRenew bool) (*model.Subscription, error) {
	plan, ok := s.cfg.Pricing.Plans[planType]
	if !ok {
		return nil, ErrUnknownPlan
	}

	now := time.Now()
	endDate := now.AddDate(0, 0, s.cfg.Pricing.SubscriptionDays)

	sub := &model.Subscription{
		UserID:    userID,
		PlanType:  planType,
		Amount:    plan.Amount,
		StartDate: now,
		EndDate:   endDate,
		Status:    model.StatusActive,
		AutoRenew: autoRenew,
		PaymentID: paymentID,
	}

	if err := s.subscriptionRepo.Create(sub); err != nil {
		return nil, err
	}

	if err := s.userRepo.ApplyPlan(userID, planType, endDate); err != nil {
		return nil, err
	}

	return sub, nil
}

// List returns the user's subscription history, newest first.
func (s *SubscriptionService) List(userID int64) ([]*dto.SubscriptionInfo, error) {
	subs, err := s.subscriptionRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	infos := make([]*dto.SubscriptionInfo, len(subs))
	for i, sub := range subs {
		infos[i] = buildSubscriptionInfo(sub)
	}
	return infos, nil
}

// Cancel ends an active subscription immediately and drops the user
// back to the free tier with no credits.
func (s *SubscriptionService) Cancel(userID, subscriptionID int64) error {
	sub, err := s.subscriptionRepo.GetByID(subscriptionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	if sub.UserID != userID {
		return ErrSubscriptionNotFound
	}

	cancelled, err := s.subscriptionRepo.MarkCancelled(subscriptionID)
	if err != nil {
		return err
	}
	if !cancelled {
		return ErrNotActive
	}

	return s.userRepo.ResetToFree(userID, model.StatusCancelled)
}

// SweepExpired expires every active subscription past its end date and
// demotes the owner to the free tier. One bad record does not stop the
// sweep, and re-running it finds nothing left to do.
func (s *SubscriptionService) SweepExpired(now time.Time) (int, error) {
	due, err := s.subscriptionRepo.ListDue(now)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, sub := range due {
		changed, err := s.subscriptionRepo.MarkExpired(sub.ID)
		if err != nil {
			log.Printf("expire subscription %d: %v", sub.ID, err)
			continue
		}
		if !changed {
			continue
		}
		if err := s.userRepo.ResetToFree(sub.UserID, model.StatusExpired); err != nil {
			log.Printf("demote user %d after expiry: %v", sub.UserID, err)
			continue
		}
		expired++
	}

	return expired, nil
}

func buildSubscriptionInfo(sub *model.Subscription) *dto.SubscriptionInfo {
	return &dto.SubscriptionInfo{
		ID:        sub.ID,
		PlanType:  sub.PlanType,
		Amount:    sub.Amount,
		StartDate: sub.StartDate.Format(time.RFC3339),
		EndDate:   sub.EndDate.Format(time.RFC3339),
		Status:    sub.Status,
		AutoRenew: sub.AutoRenew,
		PaymentID: sub.PaymentID,
	}
}

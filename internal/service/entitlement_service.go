package service

import (
	"errors"

	"github.com/elimuhub/homework_go_server/config"
	"github.com/elimuhub/homework_go_server/internal/model"
	"github.com/elimuhub/homework_go_server/internal/repository"
)

var ErrInsufficientCredit = errors.New("no credits remaining, upgrade to continue")

// EntitlementService decides whether a user may submit a question and at
// what price. Free-tier users spend welcome credits; pay-per-use users
// are billed per question; subscribers submit at no charge while their
// row says so. Demotion back to free happens only through the expiry
// sweep or an explicit cancel.
type EntitlementService struct {
	userRepo *repository.UserRepository
	cfg      *config.Config
}

func NewEntitlementService(userRepo *repository.UserRepository, cfg *config.Config) *EntitlementService {
	return &EntitlementService{
		userRepo: userRepo,
		cfg:      cfg,
	}
}

// QuestionCost is the amount a single question charges this user.
func (s *EntitlementService) QuestionCost(user *model.User) float64 {
	if user.SubscriptionType == model.TierPayPerUse {
		return s.cfg.Pricing.QuestionPrice
	}
	return 0
}

// Authorize charges the user for one question. For the free tier this
// spends one credit atomically; a user out of credits gets
// ErrInsufficientCredit and nothing is written. Other tiers pass
// without touching the ledger. Returns the cost to record on the
// question row.
func (s *EntitlementService) Authorize(user *model.User) (float64, error) {
	switch user.SubscriptionType {
	case model.TierFree:
		spent, err := s.userRepo.DebitCredit(user.ID)
		if err != nil {
			return 0, err
		}
		if !spent {
			return 0, ErrInsufficientCredit
		}
		user.Credits--
		return 0, nil
	case model.TierPayPerUse:
		return s.cfg.Pricing.QuestionPrice, nil
	default:
		// monthly and family submit free of charge
		return 0, nil
	}
}

package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elimuhub/homework_go_server/config"
	"github.com/elimuhub/homework_go_server/internal/model"
	"github.com/elimuhub/homework_go_server/internal/repository"
	"github.com/elimuhub/homework_go_server/internal/service"
	"github.com/elimuhub/homework_go_server/internal/testutil"
)

func setupCronService(t *testing.T) (*Service, *repository.UserRepository, *repository.SubscriptionRepository) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	cfg := &config.Config{
		Pricing: config.PricingConfig{
			FreeCredits:      3,
			QuestionPrice:    10,
			SubscriptionDays: 30,
			Plans: map[string]config.PlanConfig{
				model.PlanMonthly: {Amount: 500},
			},
		},
	}

	userRepo := repository.NewUserRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	subscriptionSvc := service.NewSubscriptionService(subscriptionRepo, userRepo, cfg)

	return NewService(subscriptionSvc, questionRepo, userRepo, nil, false, 6), userRepo, subscriptionRepo
}

func TestService_StartStop(t *testing.T) {
	svc, _, _ := setupCronService(t)

	svc.Start()
	// Stop must not hang or panic with the sweep goroutine parked on its
	// midnight timer.
	done := make(chan struct{})
	go func() {
		svc.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return")
	}
}

func TestService_UntilNextReport(t *testing.T) {
	svc, _, _ := setupCronService(t)

	d := svc.untilNextReport()
	assert.Greater(t, d, time.Duration(0))
	assert.LessOrEqual(t, d, 24*time.Hour)
}

func TestService_SweepSubscriptions(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	cfg := &config.Config{
		Pricing: config.PricingConfig{SubscriptionDays: 30, Plans: map[string]config.PlanConfig{
			model.PlanMonthly: {Amount: 500},
		}},
	}

	userRepo := repository.NewUserRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	subscriptionSvc := service.NewSubscriptionService(subscriptionRepo, userRepo, cfg)
	svc := NewService(subscriptionSvc, questionRepo, userRepo, nil, false, 6)

	user := testutil.TestUser(t, db, testutil.WithTier(model.TierMonthly))
	testutil.TestSubscription(t, db, user.ID, testutil.WithEndDate(time.Now().Add(-time.Hour)))

	svc.sweepSubscriptions()

	demoted, err := userRepo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TierFree, demoted.SubscriptionType)
	assert.Equal(t, model.StatusExpired, demoted.SubscriptionStatus)
}

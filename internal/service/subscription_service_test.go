package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/internal/model"
	"github.com/elimuhub/homework_go_server/internal/model/dto"
	"github.com/elimuhub/homework_go_server/internal/repository"
	"github.com/elimuhub/homework_go_server/internal/testutil"
)

func setupSubscriptionService(t *testing.T) (*SubscriptionService, *repository.UserRepository, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	userRepo := repository.NewUserRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	svc := NewSubscriptionService(subscriptionRepo, userRepo, pricingConfig())
	return svc, userRepo, db
}

func TestSubscriptionService_Create(t *testing.T) {
	svc, userRepo, db := setupSubscriptionService(t)

	t.Run("monthly plan", func(t *testing.T) {
		user := testutil.TestUser(t, db)

		info, err := svc.Create(user.ID, &dto.CreateSubscriptionRequest{PlanType: model.PlanMonthly})
		require.NoError(t, err)
		assert.Equal(t, model.PlanMonthly, info.PlanType)
		assert.Equal(t, 500.0, info.Amount)
		assert.Equal(t, model.StatusActive, info.Status)
		assert.True(t, info.AutoRenew)

		// cascades to the user row
		stored, _ := userRepo.GetByID(user.ID)
		assert.Equal(t, model.TierMonthly, stored.SubscriptionType)
		assert.Equal(t, model.StatusActive, stored.SubscriptionStatus)
		require.NotNil(t, stored.SubscriptionEndDate)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), *stored.SubscriptionEndDate, time.Minute)
	})

	t.Run("family plan priced separately", func(t *testing.T) {
		user := testutil.TestUser(t, db)

		info, err := svc.Create(user.ID, &dto.CreateSubscriptionRequest{PlanType: model.PlanFamily})
		require.NoError(t, err)
		assert.Equal(t, 1000.0, info.Amount)
	})

	t.Run("auto renew can be disabled", func(t *testing.T) {
		user := testutil.TestUser(t, db)
		off := false

		info, err := svc.Create(user.ID, &dto.CreateSubscriptionRequest{PlanType: model.PlanMonthly, AutoRenew: &off})
		require.NoError(t, err)
		assert.False(t, info.AutoRenew)

		// the flag must survive the round trip to the database, not
		// just the in-memory response
		var stored model.Subscription
		require.NoError(t, db.First(&stored, info.ID).Error)
		assert.False(t, stored.AutoRenew)
	})

	t.Run("unknown plan", func(t *testing.T) {
		user := testutil.TestUser(t, db)

		_, err := svc.Create(user.ID, &dto.CreateSubscriptionRequest{PlanType: "weekly"})
		assert.ErrorIs(t, err, ErrUnknownPlan)
	})
}

func TestSubscriptionService_Cancel(t *testing.T) {
	svc, userRepo, db := setupSubscriptionService(t)

	t.Run("cancel drops the user to free", func(t *testing.T) {
		user := testutil.TestUser(t, db, testutil.WithTier(model.TierMonthly), testutil.WithCredits(0))
		sub := testutil.TestSubscription(t, db, user.ID)

		require.NoError(t, svc.Cancel(user.ID, sub.ID))

		stored, _ := userRepo.GetByID(user.ID)
		assert.Equal(t, model.TierFree, stored.SubscriptionType)
		assert.Equal(t, model.StatusCancelled, stored.SubscriptionStatus)
		assert.Equal(t, 0, stored.Credits)
	})

	t.Run("second cancel reports not active", func(t *testing.T) {
		user := testutil.TestUser(t, db, testutil.WithTier(model.TierMonthly))
		sub := testutil.TestSubscription(t, db, user.ID)

		require.NoError(t, svc.Cancel(user.ID, sub.ID))
		assert.ErrorIs(t, svc.Cancel(user.ID, sub.ID), ErrNotActive)
	})

	t.Run("stranger gets not found", func(t *testing.T) {
		user := testutil.TestUser(t, db, testutil.WithTier(model.TierMonthly))
		stranger := testutil.TestUser(t, db)
		sub := testutil.TestSubscription(t, db, user.ID)

		assert.ErrorIs(t, svc.Cancel(stranger.ID, sub.ID), ErrSubscriptionNotFound)
	})
}

func TestSubscriptionService_SweepExpired(t *testing.T) {
	svc, userRepo, db := setupSubscriptionService(t)
	now := time.Now()

	t.Run("expires overdue and demotes owners", func(t *testing.T) {
		overdueUser := testutil.TestUser(t, db, testutil.WithTier(model.TierMonthly), testutil.WithCredits(2))
		currentUser := testutil.TestUser(t, db, testutil.WithTier(model.TierFamily))

		overdue := testutil.TestSubscription(t, db, overdueUser.ID, testutil.WithEndDate(now.Add(-time.Hour)))
		current := testutil.TestSubscription(t, db, currentUser.ID, testutil.WithEndDate(now.Add(time.Hour)))

		expired, err := svc.SweepExpired(now)
		require.NoError(t, err)
		assert.Equal(t, 1, expired)

		var expiredSub model.Subscription
		require.NoError(t, db.First(&expiredSub, overdue.ID).Error)
		assert.Equal(t, model.StatusExpired, expiredSub.Status)

		var activeSub model.Subscription
		require.NoError(t, db.First(&activeSub, current.ID).Error)
		assert.Equal(t, model.StatusActive, activeSub.Status)

		demoted, _ := userRepo.GetByID(overdueUser.ID)
		assert.Equal(t, model.TierFree, demoted.SubscriptionType)
		assert.Equal(t, model.StatusExpired, demoted.SubscriptionStatus)
		assert.Equal(t, 0, demoted.Credits)

		untouched, _ := userRepo.GetByID(currentUser.ID)
		assert.Equal(t, model.TierFamily, untouched.SubscriptionType)
	})

	t.Run("re-running finds nothing", func(t *testing.T) {
		expired, err := svc.SweepExpired(now)
		require.NoError(t, err)
		assert.Equal(t, 0, expired)
	})

	t.Run("boundary: end date exactly now is not yet due", func(t *testing.T) {
		user := testutil.TestUser(t, db, testutil.WithTier(model.TierMonthly))
		testutil.TestSubscription(t, db, user.ID, testutil.WithEndDate(now))

		expired, err := svc.SweepExpired(now)
		require.NoError(t, err)
		assert.Equal(t, 0, expired)
	})
}

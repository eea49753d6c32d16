package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/config"
	"github.com/elimuhub/homework_go_server/internal/model"
	"github.com/elimuhub/homework_go_server/internal/model/dto"
	"github.com/elimuhub/homework_go_server/internal/pkg/jwt"
	"github.com/elimuhub/homework_go_server/internal/repository"
	"github.com/elimuhub/homework_go_server/internal/testutil"
)

func setupAuthService(t *testing.T) (*AuthService, *repository.UserRepository, *gorm.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	cfg := pricingConfig()
	cfg.JWT = config.JWTConfig{Secret: "test-secret", ExpireHours: 24}

	userRepo := repository.NewUserRepository(db)
	return NewAuthService(userRepo, nil, cfg), userRepo, db
}

func TestAuthService_Register(t *testing.T) {
	svc, userRepo, _ := setupAuthService(t)

	t.Run("creates a free account with welcome credits", func(t *testing.T) {
		resp, err := svc.Register(&dto.RegisterRequest{
			Username: "wanjiku",
			Email:    "wanjiku@example.com",
			Password: "password123",
			Phone:    "254712345678",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, model.TierFree, resp.User.SubscriptionType)
		assert.Equal(t, 3, resp.User.Credits)

		// token is valid for the new account
		claims, err := jwt.ParseToken(resp.Token, "test-secret")
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID)

		// password is stored hashed
		stored, err := userRepo.GetByEmail("wanjiku@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "password123", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		_, err := svc.Register(&dto.RegisterRequest{
			Username: "other",
			Email:    "wanjiku@example.com",
			Password: "password456",
			Phone:    "254700000001",
		})
		assert.ErrorIs(t, err, ErrEmailExists)
	})
}

func TestAuthService_Register_NoFreeCredits(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.CleanupTestDB(t, db) })

	cfg := pricingConfig()
	cfg.JWT = config.JWTConfig{Secret: "test-secret", ExpireHours: 24}
	cfg.Pricing.FreeCredits = 0

	svc := NewAuthService(repository.NewUserRepository(db), nil, cfg)

	resp, err := svc.Register(&dto.RegisterRequest{
		Username: "nocredits",
		Email:    "nocredits@example.com",
		Password: "password123",
		Phone:    "254700000003",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.User.Credits)

	// and the stored row agrees
	stored, err := repository.NewUserRepository(db).GetByID(resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Credits)
}

func TestAuthService_Login(t *testing.T) {
	svc, userRepo, db := setupAuthService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	require.NoError(t, err)
	user := testutil.TestUser(t, db,
		testutil.WithEmail("login@example.com"),
		testutil.WithPasswordHash(string(hash)))

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(&dto.LoginRequest{
			Email:    "login@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, user.ID, resp.User.ID)

		stored, _ := userRepo.GetByID(user.ID)
		assert.NotNil(t, stored.LastLogin)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{
			Email:    "login@example.com",
			Password: "wrong",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(&dto.LoginRequest{
			Email:    "nobody@example.com",
			Password: "whatever",
		})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

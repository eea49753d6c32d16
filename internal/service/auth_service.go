package service

import (
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/config"
	"github.com/elimuhub/homework_go_server/internal/model"
	"github.com/elimuhub/homework_go_server/internal/model/dto"
	"github.com/elimuhub/homework_go_server/internal/pkg/email"
	"github.com/elimuhub/homework_go_server/internal/pkg/jwt"
	"github.com/elimuhub/homework_go_server/internal/repository"
)

var (
	ErrEmailExists        = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService struct {
	userRepo *repository.UserRepository
	emailSvc *email.Service
	cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, emailSvc *email.Service, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		emailSvc: emailSvc,
		cfg:      cfg,
	}
}

// Register creates the account on the free tier with the configured
// welcome credits and returns a token so the app can log in immediately.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:           req.Username,
		Email:              req.Email,
		Phone:              req.Phone,
		PasswordHash:       string(hashedPassword),
		SubscriptionType:   model.TierFree,
		SubscriptionStatus: model.StatusActive,
		Credits:            s.cfg.Pricing.FreeCredits,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	// Welcome mail must not block registration.
	if s.emailSvc != nil {
		go func() {
			if err := s.emailSvc.SendWelcome(user.Email, user.Username); err != nil {
				log.Printf("send welcome email to %s: %v", user.Email, err)
			}
		}()
	}

	return &dto.RegisterResponse{
		Token: token,
		User:  buildUserInfo(user, nil),
	}, nil
}

// Login verifies credentials and stamps last_login.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, s.cfg.JWT.Secret, s.cfg.JWT.ExpireHours)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		log.Printf("update last login for user %d: %v", user.ID, err)
	}
	user.LastLogin = &now

	return &dto.LoginResponse{
		Token: token,
		User:  buildUserInfo(user, nil),
	}, nil
}

func (s *AuthService) GetUserByID(id int64) (*model.User, error) {
	return s.userRepo.GetByID(id)
}

func buildUserInfo(user *model.User, children []*model.Child) *dto.UserInfo {
	info := &dto.UserInfo{
		ID:                 user.ID,
		Username:           user.Username,
		Email:              user.Email,
		Phone:              user.Phone,
		SubscriptionType:   user.SubscriptionType,
		SubscriptionStatus: user.SubscriptionStatus,
		Credits:            user.Credits,
		TotalSpent:         user.TotalSpent,
		CreatedAt:          user.CreatedAt.Format(time.RFC3339),
	}

	if user.SubscriptionEndDate != nil {
		info.SubscriptionEndDate = user.SubscriptionEndDate.Format(time.RFC3339)
	}
	if user.LastLogin != nil {
		info.LastLogin = user.LastLogin.Format(time.RFC3339)
	}
	for _, c := range children {
		info.Children = append(info.Children, buildChildInfo(c))
	}

	return info
}

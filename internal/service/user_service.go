package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/internal/model/dto"
	"github.com/elimuhub/homework_go_server/internal/repository"
)

type UserService struct {
	userRepo    *repository.UserRepository
	childRepo   *repository.ChildRepository
	entitlement *EntitlementService
}

func NewUserService(userRepo *repository.UserRepository, childRepo *repository.ChildRepository, entitlement *EntitlementService) *UserService {
	return &UserService{
		userRepo:    userRepo,
		childRepo:   childRepo,
		entitlement: entitlement,
	}
}

// GetProfile returns the user with their child profiles attached.
func (s *UserService) GetProfile(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	children, err := s.childRepo.ListByParentID(userID)
	if err != nil {
		return nil, err
	}

	return buildUserInfo(user, children), nil
}

func (s *UserService) UpdateProfile(userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}

	children, err := s.childRepo.ListByParentID(userID)
	if err != nil {
		return nil, err
	}
	return buildUserInfo(user, children), nil
}

// GetEntitlement reports what submitting a question would cost right now.
func (s *UserService) GetEntitlement(userID int64) (*dto.EntitlementInfo, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	info := &dto.EntitlementInfo{
		Tier:             user.SubscriptionType,
		Status:           user.SubscriptionStatus,
		CreditsRemaining: user.Credits,
		QuestionCost:     s.entitlement.QuestionCost(user),
	}
	if user.SubscriptionEndDate != nil {
		info.EndDate = user.SubscriptionEndDate.Format(time.RFC3339)
	}
	return info, nil
}

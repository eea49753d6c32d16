package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/internal/model"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	return r.db.Create(sub).Error
}

func (r *SubscriptionRepository) GetByID(id int64) (*model.Subscription, error) {
	var sub model.Subscription
	err := r.db.Where("id = ?", id).First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepository) ListByUserID(userID int64) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := r.db.Where("user_id = ?", userID).
		Order("start_date DESC").
		Find(&subs).Error
	return subs, err
}

// ListDue returns active subscriptions whose end date has passed.
// Already-expired rows never match, which keeps the sweep idempotent.
func (r *SubscriptionRepository) ListDue(now time.Time) ([]*model.Subscription, error) {
	var subs []*model.Subscription
	err := r.db.Where("status = ? AND end_date < ?", model.StatusActive, now).
		Find(&subs).Error
	return subs, err
}

// MarkExpired transitions active -> expired. Returns false when the row
// was no longer active.
func (r *SubscriptionRepository) MarkExpired(id int64) (bool, error) {
	result := r.db.Model(&model.Subscription{}).
		Where("id = ? AND status = ?", id, model.StatusActive).
		Update("status", model.StatusExpired)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkCancelled transitions active -> cancelled. Returns false when the
// row was no longer active.
func (r *SubscriptionRepository) MarkCancelled(id int64) (bool, error) {
	result := r.db.Model(&model.Subscription{}).
		Where("id = ? AND status = ?", id, model.StatusActive).
		Update("status", model.StatusCancelled)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

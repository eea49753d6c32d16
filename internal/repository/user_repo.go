package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *UserRepository) GetByID(id int64) (*model.User, error) {
	var user model.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepository) UpdateFields(id int64, fields map[string]interface{}) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(fields).Error
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// DebitCredit spends one free-tier credit. The guard in the WHERE clause
// makes the read-modify-write atomic per row: two concurrent submissions
// cannot both spend the last credit. Returns false when no credit was
// available to spend.
func (r *UserRepository) DebitCredit(id int64) (bool, error) {
	result := r.db.Model(&model.User{}).
		Where("id = ? AND subscription_type = ? AND credits > 0", id, model.TierFree).
		Update("credits", gorm.Expr("credits - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// AddCredits grants purchased credits.
func (r *UserRepository) AddCredits(id int64, n int) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("credits", gorm.Expr("credits + ?", n)).Error
}

// RecordSpend increases the cumulative spend. Monotonic only.
func (r *UserRepository) RecordSpend(id int64, amount float64) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Update("total_spent", gorm.Expr("total_spent + ?", amount)).Error
}

// ApplyPlan puts the user on a paid plan.
func (r *UserRepository) ApplyPlan(id int64, plan string, endDate time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"subscription_type":     plan,
		"subscription_status":   model.StatusActive,
		"subscription_end_date": endDate,
	}).Error
}

// ResetToFree demotes the user back to the free tier with zero credits.
// status records why: expired or cancelled.
func (r *UserRepository) ResetToFree(id int64, status string) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"subscription_type":   model.TierFree,
		"subscription_status": status,
		"credits":             0,
	}).Error
}

func (r *UserRepository) UpdateLastLogin(id int64, at time.Time) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).Update("last_login", at).Error
}

// CountActiveBetween counts users who logged in inside the window.
func (r *UserRepository) CountActiveBetween(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("last_login >= ? AND last_login < ?", start, end).
		Count(&count).Error
	return count, err
}

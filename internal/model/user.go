package model

import (
	"time"
)

// Subscription tiers
const (
	TierFree      = "free"
	TierPayPerUse = "pay-per-use"
	TierMonthly   = "monthly"
	TierFamily    = "family"
)

// Subscription status values
const (
	StatusActive    = "active"
	StatusExpired   = "expired"
	StatusCancelled = "cancelled"
)

type User struct {
	ID                  int64      `gorm:"primaryKey" json:"id"`
	Username            string     `gorm:"size:50;not null" json:"username"`
	Email               string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Phone               string     `gorm:"size:15" json:"phone"`
	PasswordHash        string     `gorm:"size:255" json:"-"`
	SubscriptionType    string     `gorm:"size:20;default:free;index" json:"subscription_type"`   // free, pay-per-use, monthly, family
	SubscriptionStatus  string     `gorm:"size:20;default:active" json:"subscription_status"`     // active, expired, cancelled
	SubscriptionEndDate *time.Time `json:"subscription_end_date,omitempty"`
	Credits             int        `json:"credits"` // free tier question allowance, granted from config at registration
	TotalSpent          float64    `gorm:"type:decimal(10,2);default:0" json:"total_spent"`
	LastLogin           *time.Time `json:"last_login,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

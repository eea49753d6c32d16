package model

import (
	"time"
)

// Subscription plans
const (
	PlanMonthly = "monthly"
	PlanFamily  = "family"
)

type Subscription struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	PlanType  string    `gorm:"size:20;not null" json:"plan_type"` // monthly, family
	Amount    float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	StartDate time.Time `gorm:"not null" json:"start_date"`
	EndDate   time.Time `gorm:"not null;index" json:"end_date"`
	Status    string    `gorm:"size:20;default:active;index" json:"status"` // active, expired, cancelled
	AutoRenew bool      `json:"auto_renew"`
	PaymentID *int64    `json:"payment_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

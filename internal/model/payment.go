package model

import (
	"time"
)

// Payment methods
const (
	MethodMpesa  = "mpesa"
	MethodCard   = "card"
	MethodAirtel = "airtel"
)

// Payment status values
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Payment purposes
const (
	PaymentTypeSubscription = "subscription"
	PaymentTypeCredits      = "credits"
)

type Payment struct {
	ID                 int64     `gorm:"primaryKey" json:"id"`
	UserID             int64     `gorm:"not null;index" json:"user_id"`
	TransactionID      string    `gorm:"size:100;uniqueIndex;not null" json:"transaction_id"`
	Amount             float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency           string    `gorm:"size:3;default:KES" json:"currency"`
	PaymentMethod      string    `gorm:"size:20;not null" json:"payment_method"`        // mpesa, card, airtel
	Status             string    `gorm:"size:20;default:pending;index" json:"status"`   // pending, completed, failed
	Type               string    `gorm:"size:20;not null" json:"type"`                  // subscription, credits
	PlanType           string    `gorm:"size:20" json:"plan_type,omitempty"`            // set when type is subscription
	Description        string    `gorm:"type:text" json:"description,omitempty"`
	MpesaReceiptNumber string    `gorm:"size:50" json:"mpesa_receipt_number,omitempty"`
	CreatedAt          time.Time `gorm:"index" json:"created_at"`
}

func (Payment) TableName() string {
	return "payments"
}

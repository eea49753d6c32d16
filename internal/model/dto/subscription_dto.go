package dto

// CreateSubscriptionRequest subscription purchase payload
type CreateSubscriptionRequest struct {
	PlanType  string `json:"plan_type" binding:"required,oneof=monthly family"`
	AutoRenew *bool  `json:"auto_renew,omitempty"`
	PaymentID *int64 `json:"payment_id,omitempty"`
}

// SubscriptionInfo subscription shape returned to the app
type SubscriptionInfo struct {
	ID        int64   `json:"id"`
	PlanType  string  `json:"plan_type"`
	Amount    float64 `json:"amount"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Status    string  `json:"status"`
	AutoRenew bool    `json:"auto_renew"`
	PaymentID *int64  `json:"payment_id,omitempty"`
}

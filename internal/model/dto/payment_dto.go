package dto

// CreatePaymentRequest payment initiation payload. PlanType is required
// for subscription payments so the callback knows which plan to start.
type CreatePaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"payment_method" binding:"required,oneof=mpesa card airtel"`
	Type          string  `json:"type" binding:"required,oneof=subscription credits"`
	PlanType      string  `json:"plan_type,omitempty" binding:"omitempty,oneof=monthly family"`
	Description   string  `json:"description,omitempty" binding:"omitempty,max=500"`
}

// PaymentInfo payment shape returned to the app
type PaymentInfo struct {
	ID                 int64   `json:"id"`
	TransactionID      string  `json:"transaction_id"`
	Amount             float64 `json:"amount"`
	Currency           string  `json:"currency"`
	PaymentMethod      string  `json:"payment_method"`
	Status             string  `json:"status"`
	Type               string  `json:"type"`
	PlanType           string  `json:"plan_type,omitempty"`
	Description        string  `json:"description,omitempty"`
	MpesaReceiptNumber string  `json:"mpesa_receipt_number,omitempty"`
	CreatedAt          string  `json:"created_at"`
}

// MpesaCallbackRequest is the shape the gateway posts back after the
// customer confirms or rejects the STK prompt.
type MpesaCallbackRequest struct {
	TransactionID string `json:"transaction_id" binding:"required"`
	ResultCode    int    `json:"result_code"`
	ResultDesc    string `json:"result_desc,omitempty"`
	ReceiptNumber string `json:"receipt_number,omitempty"`
}

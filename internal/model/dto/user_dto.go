package dto

// UserInfo is the profile shape returned to the app.
type UserInfo struct {
	ID                  int64        `json:"id"`
	Username            string       `json:"username"`
	Email               string       `json:"email"`
	Phone               string       `json:"phone"`
	SubscriptionType    string       `json:"subscription_type"`
	SubscriptionStatus  string       `json:"subscription_status"`
	SubscriptionEndDate string       `json:"subscription_end_date,omitempty"`
	Credits             int          `json:"credits"`
	TotalSpent          float64      `json:"total_spent"`
	Children            []*ChildInfo `json:"children,omitempty"`
	LastLogin           string       `json:"last_login,omitempty"`
	CreatedAt           string       `json:"created_at,omitempty"`
}

// UpdateProfileRequest profile update payload
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty" binding:"omitempty,min=3,max=50"`
	Phone    *string `json:"phone,omitempty" binding:"omitempty,max=15"`
}

// EntitlementInfo is the user's current right to submit questions.
type EntitlementInfo struct {
	Tier             string  `json:"tier"`
	Status           string  `json:"status"`
	CreditsRemaining int     `json:"credits_remaining"`
	QuestionCost     float64 `json:"question_cost"`
	EndDate          string  `json:"end_date,omitempty"`
}

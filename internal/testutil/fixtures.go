package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/internal/model"
)

var seq int64

func next() int64 {
	seq++
	return time.Now().UnixNano() + seq
}

// TestUser creates a free-tier user with the default welcome credits.
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	n := next()
	user := &model.User{
		Username:           fmt.Sprintf("parent_%d", n%100000),
		Email:              fmt.Sprintf("test_%d@example.com", n),
		Phone:              "254700000000",
		PasswordHash:       "$2a$10$abcdefghijklmnopqrstuvwxyz123456", // placeholder hash
		SubscriptionType:   model.TierFree,
		SubscriptionStatus: model.StatusActive,
		Credits:            3,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithEmail sets the email.
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithTier sets the subscription tier.
func WithTier(tier string) func(*model.User) {
	return func(u *model.User) {
		u.SubscriptionType = tier
	}
}

// WithCredits sets the credit balance.
func WithCredits(credits int) func(*model.User) {
	return func(u *model.User) {
		u.Credits = credits
	}
}

// WithSubscriptionEnd sets the subscription end date.
func WithSubscriptionEnd(end time.Time) func(*model.User) {
	return func(u *model.User) {
		u.SubscriptionEndDate = &end
	}
}

// WithPasswordHash sets a real bcrypt hash for login tests.
func WithPasswordHash(hash string) func(*model.User) {
	return func(u *model.User) {
		u.PasswordHash = hash
	}
}

// TestChild creates a child profile under the given parent.
func TestChild(t *testing.T, db *gorm.DB, parentID int64, opts ...func(*model.Child)) *model.Child {
	t.Helper()

	child := &model.Child{
		ParentID: parentID,
		Name:     fmt.Sprintf("Child %d", next()%10000),
		Grade:    "Grade 5",
		Subjects: model.StringArray{"Mathematics"},
	}

	for _, opt := range opts {
		opt(child)
	}

	if err := db.Create(child).Error; err != nil {
		t.Fatalf("Failed to create test child: %v", err)
	}

	return child
}

// WithGrade sets the grade.
func WithGrade(grade string) func(*model.Child) {
	return func(c *model.Child) {
		c.Grade = grade
	}
}

// TestQuestion creates an unprocessed question for the given user.
func TestQuestion(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Question)) *model.Question {
	t.Helper()

	question := &model.Question{
		UserID:     userID,
		QuestionID: uuid.NewString(),
		Type:       "text",
		Content:    "What is 12 x 8?",
		Subject:    "Mathematics",
		GradeLevel: "Grade 5",
	}

	for _, opt := range opts {
		opt(question)
	}

	if err := db.Create(question).Error; err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return question
}

// WithProcessed marks the question answered.
func WithProcessed(answer string) func(*model.Question) {
	return func(q *model.Question) {
		q.IsProcessed = true
		q.AIResponse = answer
	}
}

// WithCost sets the question cost.
func WithCost(cost float64) func(*model.Question) {
	return func(q *model.Question) {
		q.Cost = cost
	}
}

// WithChild attaches the question to a child profile.
func WithChild(childID int64) func(*model.Question) {
	return func(q *model.Question) {
		q.ChildID = &childID
	}
}

// TestPayment creates a pending payment for the given user.
func TestPayment(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Payment)) *model.Payment {
	t.Helper()

	payment := &model.Payment{
		UserID:        userID,
		TransactionID: fmt.Sprintf("TXN%d", next()),
		Amount:        500,
		Currency:      "KES",
		PaymentMethod: model.MethodMpesa,
		Status:        model.PaymentPending,
		Type:          model.PaymentTypeSubscription,
		PlanType:      model.PlanMonthly,
	}

	for _, opt := range opts {
		opt(payment)
	}

	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("Failed to create test payment: %v", err)
	}

	return payment
}

// WithPaymentType sets type and plan.
func WithPaymentType(paymentType, planType string) func(*model.Payment) {
	return func(p *model.Payment) {
		p.Type = paymentType
		p.PlanType = planType
	}
}

// WithAmount sets the amount.
func WithAmount(amount float64) func(*model.Payment) {
	return func(p *model.Payment) {
		p.Amount = amount
	}
}

// WithPaymentStatus sets the status.
func WithPaymentStatus(status string) func(*model.Payment) {
	return func(p *model.Payment) {
		p.Status = status
	}
}

// TestSubscription creates an active monthly subscription.
func TestSubscription(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	now := time.Now()
	sub := &model.Subscription{
		UserID:    userID,
		PlanType:  model.PlanMonthly,
		Amount:    500,
		StartDate: now,
		EndDate:   now.AddDate(0, 0, 30),
		Status:    model.StatusActive,
		AutoRenew: true,
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// WithPlan sets plan and amount.
func WithPlan(plan string, amount float64) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.PlanType = plan
		s.Amount = amount
	}
}

// WithEndDate sets the end date.
func WithEndDate(end time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.EndDate = end
	}
}

// WithSubStatus sets the status.
func WithSubStatus(status string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Status = status
	}
}

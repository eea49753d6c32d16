package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/config"
	"github.com/elimuhub/homework_go_server/internal/model"
	"github.com/elimuhub/homework_go_server/internal/model/dto"
	"github.com/elimuhub/homework_go_server/internal/pkg/mpesa"
	"github.com/elimuhub/homework_go_server/internal/repository"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrPlanRequired    = errors.New("plan_type is required for subscription payments")
	ErrGatewayFailed   = errors.New("payment gateway request failed")
)

type PaymentService struct {
	paymentRepo     *repository.PaymentRepository
	userRepo        *repository.UserRepository
	subscriptionSvc *SubscriptionService
	mpesaClient     *mpesa.Client
	cfg             *config.Config
}

func NewPaymentService(
	paymentRepo *repository.PaymentRepository,
	userRepo *repository.UserRepository,
	subscriptionSvc *SubscriptionService,
	mpesaClient *mpesa.Client,
	cfg *config.Config,
) *PaymentService {
	return &PaymentService{
		paymentRepo:     paymentRepo,
		userRepo:        userRepo,
		subscriptionSvc: subscriptionSvc,
		mpesaClient:     mpesaClient,
		cfg:             cfg,
	}
}

// Create records a pending payment and, for M-Pesa, pushes the STK
// prompt to the customer's phone. A gateway failure marks the payment
// failed immediately.
func (s *PaymentService) Create(ctx context.Context, userID int64, req *dto.CreatePaymentRequest) (*dto.PaymentInfo, error) {
	if req.Type == model.PaymentTypeSubscription && req.PlanType == "" {
		return nil, ErrPlanRequired
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		UserID:        userID,
		TransactionID: fmt.Sprintf("TXN%d%d", time.Now().UnixNano(), userID),
		Amount:        req.Amount,
		Currency:      "KES",
		PaymentMethod: req.PaymentMethod,
		Status:        model.PaymentPending,
		Type:          req.Type,
		PlanType:      req.PlanType,
		Description:   req.Description,
	}

	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, err
	}

	if req.PaymentMethod == model.MethodMpesa && s.mpesaClient != nil {
		err := s.mpesaClient.STKPush(ctx, req.Amount, user.Phone, payment.TransactionID, req.Description)
		if err != nil {
			log.Printf("mpesa stk push for payment %s: %v", payment.TransactionID, err)
			if uerr := s.paymentRepo.UpdateStatus(payment.ID, model.PaymentFailed); uerr != nil {
				log.Printf("mark payment %s failed: %v", payment.TransactionID, uerr)
			}
			return nil, ErrGatewayFailed
		}
	}

	return buildPaymentInfo(payment), nil
}

// ApplyOutcome settles a payment from the gateway callback. Only
// pending payments transition; replayed callbacks are acknowledged
// without effect. A successful subscription payment starts the plan, a
// successful credits payment tops up the balance.
func (s *PaymentService) ApplyOutcome(req *dto.MpesaCallbackRequest) error {
	payment, err := s.paymentRepo.GetByTransactionID(req.TransactionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaymentNotFound
		}
		return err
	}

	status := model.PaymentCompleted
	if req.ResultCode != 0 {
		status = model.PaymentFailed
	}

	settled, err := s.paymentRepo.MarkOutcome(req.TransactionID, status, req.ReceiptNumber)
	if err != nil {
		return err
	}
	if !settled {
		// already settled by an earlier callback
		return nil
	}

	if status != model.PaymentCompleted {
		return nil
	}

	if err := s.userRepo.RecordSpend(payment.UserID, payment.Amount); err != nil {
		return err
	}

	switch payment.Type {
	case model.PaymentTypeSubscription:
		_, err = s.subscriptionSvc.Start(payment.UserID, payment.PlanType, &payment.ID)
		return err
	case model.PaymentTypeCredits:
		credits := int(payment.Amount / s.cfg.Pricing.QuestionPrice)
		return s.userRepo.AddCredits(payment.UserID, credits)
	}
	return nil
}

// GetByID returns a payment owned by the user.
func (s *PaymentService) GetByID(userID, paymentID int64) (*dto.PaymentInfo, error) {
	payment, err := s.paymentRepo.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	if payment.UserID != userID {
		return nil, ErrPaymentNotFound
	}
	return buildPaymentInfo(payment), nil
}

// List pages through the user's payments, newest first.
func (s *PaymentService) List(userID int64, page, pageSize int) ([]*dto.PaymentInfo, int64, error) {
	payments, total, err := s.paymentRepo.ListByUserID(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	infos := make([]*dto.PaymentInfo, len(payments))
	for i, p := range payments {
		infos[i] = buildPaymentInfo(p)
	}
	return infos, total, nil
}

func buildPaymentInfo(p *model.Payment) *dto.PaymentInfo {
	return &dto.PaymentInfo{
		ID:                 p.ID,
		TransactionID:      p.TransactionID,
		Amount:             p.Amount,
		Currency:           p.Currency,
		PaymentMethod:      p.PaymentMethod,
		Status:             p.Status,
		Type:               p.Type,
		PlanType:           p.PlanType,
		Description:        p.Description,
		MpesaReceiptNumber: p.MpesaReceiptNumber,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
	}
}

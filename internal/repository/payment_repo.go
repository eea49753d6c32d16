package repository

import (
	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/internal/model"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(payment *model.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepository) GetByID(id int64) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) GetByTransactionID(transactionID string) (*model.Payment, error) {
	var payment model.Payment
	err := r.db.Where("transaction_id = ?", transactionID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) ListByUserID(userID int64, page, pageSize int) ([]*model.Payment, int64, error) {
	var total int64
	query := r.db.Model(&model.Payment{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payments []*model.Payment
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&payments).Error
	return payments, total, err
}

// MarkOutcome settles a pending payment. The status guard makes repeated
// gateway callbacks a no-op; returns false when the payment was already
// settled.
func (r *PaymentRepository) MarkOutcome(transactionID, status, receiptNumber string) (bool, error) {
	fields := map[string]interface{}{"status": status}
	if receiptNumber != "" {
		fields["mpesa_receipt_number"] = receiptNumber
	}
	result := r.db.Model(&model.Payment{}).
		Where("transaction_id = ? AND status = ?", transactionID, model.PaymentPending).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *PaymentRepository) UpdateStatus(id int64, status string) error {
	return r.db.Model(&model.Payment{}).Where("id = ?", id).Update("status", status).Error
}

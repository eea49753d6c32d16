package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/internal/model"
)

type QuestionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

func (r *QuestionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *QuestionRepository) GetByID(id int64) (*model.Question, error) {
	var question model.Question
	err := r.db.Where("id = ?", id).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) GetByQuestionID(questionID string) (*model.Question, error) {
	var question model.Question
	err := r.db.Where("question_id = ?", questionID).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// ListByUserID pages through a user's questions, newest first.
func (r *QuestionRepository) ListByUserID(userID int64, page, pageSize int) ([]*model.Question, int64, error) {
	var total int64
	query := r.db.Model(&model.Question{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var questions []*model.Question
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&questions).Error
	return questions, total, err
}

// MarkProcessed writes the fulfillment fields, but only on a question
// still unprocessed. Returns false when another delivery got there
// first, which makes redelivery a no-op.
func (r *QuestionRepository) MarkProcessed(id int64, fields map[string]interface{}) (bool, error) {
	fields["is_processed"] = true
	result := r.db.Model(&model.Question{}).
		Where("id = ? AND is_processed = ?", id, false).
		Updates(fields)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *QuestionRepository) UpdateRating(id int64, rating int, feedback string) error {
	return r.db.Model(&model.Question{}).Where("id = ?", id).Updates(map[string]interface{}{
		"rating":   rating,
		"feedback": feedback,
	}).Error
}

// CountCreatedBetween counts questions submitted inside the window.
func (r *QuestionRepository) CountCreatedBetween(start, end time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}

// SumCostBetween totals question revenue inside the window.
func (r *QuestionRepository) SumCostBetween(start, end time.Time) (float64, error) {
	var total float64
	err := r.db.Model(&model.Question{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Select("COALESCE(SUM(cost), 0)").
		Scan(&total).Error
	return total, err
}

package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elimuhub/homework_go_server/config"
	"github.com/elimuhub/homework_go_server/internal/model"
	"github.com/elimuhub/homework_go_server/internal/model/dto"
	"github.com/elimuhub/homework_go_server/internal/pkg/queue"
	"github.com/elimuhub/homework_go_server/internal/repository"
)

var (
	ErrQuestionNotFound     = errors.New("question not found")
	ErrQuestionNotProcessed = errors.New("question has no answer to rate yet")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
)

type QuestionService struct {
	questionRepo *repository.QuestionRepository
	childRepo    *repository.ChildRepository
	userRepo     *repository.UserRepository
	entitlement  *EntitlementService
	jobQueue     *queue.Queue
	cfg          *config.Config
}

func NewQuestionService(
	questionRepo *repository.QuestionRepository,
	childRepo *repository.ChildRepository,
	userRepo *repository.UserRepository,
	entitlement *EntitlementService,
	jobQueue *queue.Queue,
	cfg *config.Config,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		childRepo:    childRepo,
		userRepo:     userRepo,
		entitlement:  entitlement,
		jobQueue:     jobQueue,
		cfg:          cfg,
	}
}

// Create charges the user, persists the question and hands it to the
// fulfillment queue. A rejected charge leaves no question row behind.
func (s *QuestionService) Create(ctx context.Context, userID int64, req *dto.CreateQuestionRequest) (*dto.CreateQuestionResponse, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if req.ChildID != nil {
		child, err := s.childRepo.GetByID(*req.ChildID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrChildNotFound
			}
			return nil, err
		}
		if child.ParentID != userID {
			return nil, ErrChildNotFound
		}
	}

	cost, err := s.entitlement.Authorize(user)
	if err != nil {
		return nil, err
	}

	question := &model.Question{
		UserID:     userID,
		QuestionID: uuid.NewString(),
		Type:       req.Type,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		Subject:    req.Subject,
		GradeLevel: req.GradeLevel,
		ChildID:    req.ChildID,
		Cost:       cost,
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}

	// The question row already exists, so a failed push only delays
	// fulfillment; it never loses the submission.
	if err := s.jobQueue.Push(ctx, &queue.JobMessage{
		QuestionID: question.ID,
		UserID:     userID,
	}); err != nil {
		log.Printf("enqueue question %d: %v", question.ID, err)
	}

	return &dto.CreateQuestionResponse{
		ID:         question.ID,
		QuestionID: question.QuestionID,
		Cost:       cost,
		Credits:    user.Credits,
	}, nil
}

// GetByID returns a question owned by the user.
func (s *QuestionService) GetByID(userID, questionID int64) (*dto.QuestionDetail, error) {
	question, err := s.getOwned(userID, questionID)
	if err != nil {
		return nil, err
	}

	detail := s.buildQuestionDetail(question)
	if question.ChildID != nil {
		if child, err := s.childRepo.GetByID(*question.ChildID); err == nil {
			detail.ChildName = child.Name
		}
	}
	return detail, nil
}

// List pages through the user's questions, newest first.
func (s *QuestionService) List(userID int64, page, pageSize int) ([]*dto.QuestionListItem, int64, error) {
	questions, total, err := s.questionRepo.ListByUserID(userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*dto.QuestionListItem, len(questions))
	for i, q := range questions {
		items[i] = &dto.QuestionListItem{
			ID:          q.ID,
			QuestionID:  q.QuestionID,
			Type:        q.Type,
			Content:     q.Content,
			Subject:     q.Subject,
			GradeLevel:  q.GradeLevel,
			Difficulty:  q.Difficulty,
			Rating:      q.Rating,
			Cost:        q.Cost,
			IsProcessed: q.IsProcessed,
			CreatedAt:   q.CreatedAt.Format(time.RFC3339),
		}
	}
	return items, total, nil
}

// Rate records a 1-5 rating on an answered question. Re-rating replaces
// the previous value.
func (s *QuestionService) Rate(userID, questionID int64, req *dto.RateQuestionRequest) error {
	if req.Rating < 1 || req.Rating > 5 {
		return ErrInvalidRating
	}

	question, err := s.getOwned(userID, questionID)
	if err != nil {
		return err
	}
	if !question.IsProcessed {
		return ErrQuestionNotProcessed
	}

	return s.questionRepo.UpdateRating(question.ID, req.Rating, req.Feedback)
}

// getOwned reports not-found for other users' questions so the API does
// not reveal they exist.
func (s *QuestionService) getOwned(userID, questionID int64) (*model.Question, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}
	if question.UserID != userID {
		return nil, ErrQuestionNotFound
	}
	return question, nil
}

func (s *QuestionService) buildQuestionDetail(q *model.Question) *dto.QuestionDetail {
	steps := q.StepByStep
	if steps == nil {
		steps = model.StepList{}
	}
	return &dto.QuestionDetail{
		ID:             q.ID,
		QuestionID:     q.QuestionID,
		Type:           q.Type,
		Content:        q.Content,
		ImageURL:       q.ImageURL,
		Subject:        q.Subject,
		GradeLevel:     q.GradeLevel,
		ChildID:        q.ChildID,
		AIResponse:     q.AIResponse,
		Explanation:    q.Explanation,
		StepByStep:     steps,
		Difficulty:     q.Difficulty,
		ProcessingTime: q.ProcessingTime,
		Rating:         q.Rating,
		Feedback:       q.Feedback,
		Cost:           q.Cost,
		IsProcessed:    q.IsProcessed,
		CreatedAt:      q.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      q.UpdatedAt.Format(time.RFC3339),
	}
}

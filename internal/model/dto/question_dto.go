package dto

import "github.com/elimuhub/homework_go_server/internal/model"

// CreateQuestionRequest question submission payload
type CreateQuestionRequest struct {
	Type       string `json:"type" binding:"required,oneof=text image"`
	Content    string `json:"content" binding:"required"`
	ImageURL   string `json:"image_url,omitempty" binding:"omitempty,url"`
	Subject    string `json:"subject" binding:"required,max=100"`
	GradeLevel string `json:"grade_level" binding:"required,max=20"`
	ChildID    *int64 `json:"child_id,omitempty"`
}

// CreateQuestionResponse returned right after intake; fulfillment fields
// are filled later by the worker.
type CreateQuestionResponse struct {
	ID         int64   `json:"id"`
	QuestionID string  `json:"question_id"`
	Cost       float64 `json:"cost"`
	Credits    int     `json:"credits_remaining"`
}

// RateQuestionRequest rating payload
type RateQuestionRequest struct {
	Rating   int    `json:"rating" binding:"required"`
	Feedback string `json:"feedback,omitempty" binding:"omitempty,max=2000"`
}

// QuestionDetail full question shape
type QuestionDetail struct {
	ID             int64          `json:"id"`
	QuestionID     string         `json:"question_id"`
	Type           string         `json:"type"`
	Content        string         `json:"content"`
	ImageURL       string         `json:"image_url,omitempty"`
	Subject        string         `json:"subject"`
	GradeLevel     string         `json:"grade_level"`
	ChildID        *int64         `json:"child_id,omitempty"`
	ChildName      string         `json:"child_name,omitempty"`
	AIResponse     string         `json:"ai_response,omitempty"`
	Explanation    string         `json:"explanation,omitempty"`
	StepByStep     model.StepList `json:"step_by_step"`
	Difficulty     string         `json:"difficulty,omitempty"`
	ProcessingTime int            `json:"processing_time,omitempty"`
	Rating         *int           `json:"rating,omitempty"`
	Feedback       string         `json:"feedback,omitempty"`
	Cost           float64        `json:"cost"`
	IsProcessed    bool           `json:"is_processed"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}

// QuestionListItem condensed shape for listings
type QuestionListItem struct {
	ID          int64   `json:"id"`
	QuestionID  string  `json:"question_id"`
	Type        string  `json:"type"`
	Content     string  `json:"content"`
	Subject     string  `json:"subject"`
	GradeLevel  string  `json:"grade_level"`
	Difficulty  string  `json:"difficulty,omitempty"`
	Rating      *int    `json:"rating,omitempty"`
	Cost        float64 `json:"cost"`
	IsProcessed bool    `json:"is_processed"`
	CreatedAt   string  `json:"created_at"`
}

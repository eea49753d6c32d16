package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// StringArray is stored as a JSON array column.
type StringArray []string

func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = []string{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, s)
}

// Step is one entry of a worked solution.
type Step struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
}

// StepList is stored as a JSON array column.
type StepList []Step

func (s StepList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal(s)
}

func (s *StepList) Scan(value interface{}) error {
	if value == nil {
		*s = StepList{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, ok := value.(string); ok {
			bytes = []byte(str)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, s)
}

type Question struct {
	ID             int64     `gorm:"primaryKey" json:"id"`
	UserID         int64     `gorm:"not null;index" json:"user_id"`
	QuestionID     string    `gorm:"size:36;uniqueIndex;not null" json:"question_id"`
	Type           string    `gorm:"size:10;not null" json:"type"` // text, image
	Content        string    `gorm:"type:text;not null" json:"content"`
	ImageURL       string    `gorm:"size:500" json:"image_url,omitempty"`
	Subject        string    `gorm:"size:100" json:"subject"`
	GradeLevel     string    `gorm:"size:20" json:"grade_level"`
	ChildID        *int64    `gorm:"index" json:"child_id,omitempty"`
	AIResponse     string    `gorm:"type:text" json:"ai_response,omitempty"`
	Explanation    string    `gorm:"type:text" json:"explanation,omitempty"`
	StepByStep     StepList  `gorm:"type:json" json:"step_by_step"`
	Difficulty     string    `gorm:"size:10" json:"difficulty,omitempty"` // easy, medium, hard
	ProcessingTime int       `json:"processing_time,omitempty"`           // milliseconds
	Rating         *int      `json:"rating,omitempty"`                    // 1-5
	Feedback       string    `gorm:"type:text" json:"feedback,omitempty"`
	Cost           float64   `gorm:"type:decimal(6,2);default:0" json:"cost"`
	IsProcessed    bool      `gorm:"default:false" json:"is_processed"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Child *Child `gorm:"foreignKey:ChildID" json:"child,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

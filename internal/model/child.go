package model

import (
	"time"
)

type Child struct {
	ID        int64       `gorm:"primaryKey" json:"id"`
	ParentID  int64       `gorm:"not null;index" json:"parent_id"`
	Name      string      `gorm:"size:100;not null" json:"name"`
	Grade     string      `gorm:"size:20" json:"grade"`
	Subjects  StringArray `gorm:"type:json" json:"subjects"`
	CreatedAt time.Time   `json:"created_at"`
}

func (Child) TableName() string {
	return "children"
}

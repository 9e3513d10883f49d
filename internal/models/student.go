package models

import (
	"time"

	"gorm.io/gorm"
)

type Student struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"not null;size:100"`
	Stage      string `json:"stage" gorm:"size:20"`
	GradeLevel string `json:"grade_level" gorm:"size:50"`
	IsActive   bool   `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (Student) TableName() string {
	return "students"
}

// ScoringStage resolves the stage used for achievement scoring. An explicit
// stage wins; otherwise it is derived from the grade level label.
func (s Student) ScoringStage() Stage {
	if stage, ok := ParseStage(s.Stage); ok {
		return stage
	}
	return StageFromGradeLevel(s.GradeLevel)
}

package models

import "time"

// GradeRecord is owned by the grading subsystem; scoring only reads it.
type GradeRecord struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	StudentID  uint     `json:"student_id" gorm:"not null;index:idx_grade_student_created"`
	SubjectID  uint     `json:"subject_id" gorm:"not null;index"`
	Score      float64  `json:"score"`
	MaxScore   float64  `json:"max_score" gorm:"default:100"`
	Percentage *float64 `json:"percentage"`

	CreatedAt time.Time `json:"created_at" gorm:"index:idx_grade_student_created"`
}

func (GradeRecord) TableName() string {
	return "grades"
}

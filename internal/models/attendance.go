package models

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// AttendanceRecord is owned by the attendance subsystem; scoring only reads it.
type AttendanceRecord struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	StudentID uint             `json:"student_id" gorm:"not null;index:idx_attendance_student_date"`
	GroupID   *uint            `json:"group_id" gorm:"index"`
	Date      time.Time        `json:"date" gorm:"type:date;not null;index:idx_attendance_student_date"`
	Status    AttendanceStatus `json:"status" gorm:"not null;size:10"`

	CreatedAt time.Time `json:"created_at"`
}

func (AttendanceRecord) TableName() string {
	return "attendance"
}

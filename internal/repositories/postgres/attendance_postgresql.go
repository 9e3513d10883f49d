package postgres

import (
	"context"

	"github.com/tuition-center/center-service/internal/models"
	"github.com/tuition-center/center-service/internal/repositories"
	"gorm.io/gorm"
)

type AttendancePostgreSQL struct {
	db *gorm.DB
}

func NewAttendancePostgreSQL(db *gorm.DB) repositories.AttendanceRepository {
	return &AttendancePostgreSQL{db: db}
}

func (a AttendancePostgreSQL) GetByStudent(ctx context.Context, studentID uint, window repositories.Window) ([]*models.AttendanceRecord, error) {
	var records []*models.AttendanceRecord
	if err := a.windowQuery(a.db.WithContext(ctx), studentID, window).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (a AttendancePostgreSQL) windowQuery(db *gorm.DB, studentID uint, window repositories.Window) *gorm.DB {
	return db.Model(&models.AttendanceRecord{}).
		Where("student_id = ? AND date >= ? AND date <= ?", studentID, window.From, window.To).
		Order("date ASC")
}

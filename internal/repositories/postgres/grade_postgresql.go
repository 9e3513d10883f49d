package postgres

import (
	"context"

	"github.com/tuition-center/center-service/internal/models"
	"github.com/tuition-center/center-service/internal/repositories"
	"gorm.io/gorm"
)

type GradePostgreSQL struct {
	db *gorm.DB
}

func NewGradePostgreSQL(db *gorm.DB) repositories.GradeRepository {
	return &GradePostgreSQL{db: db}
}

func (g GradePostgreSQL) GetByStudent(ctx context.Context, studentID uint, window repositories.Window) ([]*models.GradeRecord, error) {
	var grades []*models.GradeRecord
	if err := g.windowQuery(g.db.WithContext(ctx), studentID, window).Find(&grades).Error; err != nil {
		return nil, err
	}
	return grades, nil
}

func (g GradePostgreSQL) windowQuery(db *gorm.DB, studentID uint, window repositories.Window) *gorm.DB {
	return db.Model(&models.GradeRecord{}).
		Where("student_id = ? AND percentage IS NOT NULL", studentID).
		Where("created_at >= ? AND created_at <= ?", window.From, window.To).
		Order("created_at ASC")
}

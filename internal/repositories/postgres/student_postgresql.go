package postgres

import (
	"context"

	"github.com/tuition-center/center-service/internal/models"
	"github.com/tuition-center/center-service/internal/repositories"
	"gorm.io/gorm"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s StudentPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student
	if err := s.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &student, nil
}

func (s StudentPostgreSQL) ListIDs(ctx context.Context, filters repositories.StudentFilters) ([]uint, error) {
	var ids []uint
	if err := s.listQuery(s.db.WithContext(ctx), filters).Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (s StudentPostgreSQL) listQuery(db *gorm.DB, filters repositories.StudentFilters) *gorm.DB {
	query := db.Model(&models.Student{}).Order("id ASC")
	if filters.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}

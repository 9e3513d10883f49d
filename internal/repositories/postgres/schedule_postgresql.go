package postgres

import (
	"context"

	"github.com/tuition-center/center-service/internal/models"
	"github.com/tuition-center/center-service/internal/repositories"
	"gorm.io/gorm"
)

type SchedulePostgreSQL struct {
	db *gorm.DB
}

func NewSchedulePostgreSQL(db *gorm.DB) repositories.ScheduleRepository {
	return &SchedulePostgreSQL{db: db}
}

// GetByInstructorAndDay loads the instructor's slots for one day with the
// owning group preloaded for its display name.
func (s SchedulePostgreSQL) GetByInstructorAndDay(ctx context.Context, instructorID uint, day models.DayOfWeek, excludeSlotID *uint) ([]*models.ScheduleSlot, error) {
	var slots []*models.ScheduleSlot
	if err := s.dayQuery(s.db.WithContext(ctx), instructorID, day, excludeSlotID).
		Preload("Group").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (s SchedulePostgreSQL) dayQuery(db *gorm.DB, instructorID uint, day models.DayOfWeek, excludeSlotID *uint) *gorm.DB {
	query := db.Model(&models.ScheduleSlot{}).
		Where("instructor_id = ? AND day_of_week = ?", instructorID, day)
	if excludeSlotID != nil {
		query = query.Where("id <> ?", *excludeSlotID)
	}
	return query.Order("start_minute ASC")
}

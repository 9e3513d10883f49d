package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/tuition-center/center-service/internal/models"
)

var ErrNotFound = errors.New("record not found")

// Repository groups the storage collaborators used by the services. A
// Repository handed to WithTransaction's callback runs every call inside the
// same database transaction.
type Repository interface {
	Student() StudentRepository
	Attendance() AttendanceRepository
	Grade() GradeRepository
	Achievement() AchievementRepository
	Schedule() ScheduleRepository

	WithTransaction(ctx context.Context, fn func(tx Repository) error) error
}

type StudentRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Student, error)
	ListIDs(ctx context.Context, filters StudentFilters) ([]uint, error)
}

// AttendanceRepository reads records owned by the attendance subsystem.
type AttendanceRepository interface {
	GetByStudent(ctx context.Context, studentID uint, window Window) ([]*models.AttendanceRecord, error)
}

// GradeRepository reads records owned by the grading subsystem. Only grades
// with a percentage are returned.
type GradeRepository interface {
	GetByStudent(ctx context.Context, studentID uint, window Window) ([]*models.GradeRecord, error)
}

type AchievementRepository interface {
	GetByStudent(ctx context.Context, studentID uint) (*models.AchievementState, error)
	// LockForUpdate inserts initial when no row exists and returns the row
	// locked for the rest of the transaction.
	LockForUpdate(ctx context.Context, initial *models.AchievementState) (*models.AchievementState, error)
	Save(ctx context.Context, state *models.AchievementState) error
	CreateBonusAward(ctx context.Context, award *models.BonusAward) error
	GetBonusAwards(ctx context.Context, studentID uint, limit int) ([]*models.BonusAward, error)
	// Top ranks students by total points. A limit of 0 returns every row.
	Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
}

type ScheduleRepository interface {
	GetByInstructorAndDay(ctx context.Context, instructorID uint, day models.DayOfWeek, excludeSlotID *uint) ([]*models.ScheduleSlot, error)
}

// Window is a date range over which history is read. Both bounds are inclusive.
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// TrailingDays returns the window covering the last n days up to now,
// starting at midnight of the first day.
func TrailingDays(now time.Time, days int) Window {
	start := now.AddDate(0, 0, -days)
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
	return Window{From: from, To: now}
}

type StudentFilters struct {
	ActiveOnly bool `json:"active_only"`
	Limit      int  `json:"limit"`
	Offset     int  `json:"offset"`
}

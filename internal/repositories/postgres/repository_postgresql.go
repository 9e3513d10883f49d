package postgres

import (
	"context"
	"errors"

	"github.com/tuition-center/center-service/internal/models"
	"github.com/tuition-center/center-service/internal/repositories"
	"gorm.io/gorm"
)

type repositoryPostgreSQL struct {
	db          *gorm.DB
	student     repositories.StudentRepository
	attendance  repositories.AttendanceRepository
	grade       repositories.GradeRepository
	achievement repositories.AchievementRepository
	schedule    repositories.ScheduleRepository
}

// NewRepository builds every gorm-backed repository over the same handle.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repositoryPostgreSQL{
		db:          db,
		student:     NewStudentPostgreSQL(db),
		attendance:  NewAttendancePostgreSQL(db),
		grade:       NewGradePostgreSQL(db),
		achievement: NewAchievementPostgreSQL(db),
		schedule:    NewSchedulePostgreSQL(db),
	}
}

func (r *repositoryPostgreSQL) Student() repositories.StudentRepository {
	return r.student
}

func (r *repositoryPostgreSQL) Attendance() repositories.AttendanceRepository {
	return r.attendance
}

func (r *repositoryPostgreSQL) Grade() repositories.GradeRepository {
	return r.grade
}

func (r *repositoryPostgreSQL) Achievement() repositories.AchievementRepository {
	return r.achievement
}

func (r *repositoryPostgreSQL) Schedule() repositories.ScheduleRepository {
	return r.schedule
}

func (r *repositoryPostgreSQL) WithTransaction(ctx context.Context, fn func(tx repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

// AutoMigrate creates the tables the service owns or reads in development.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Student{},
		&models.Group{},
		&models.ScheduleSlot{},
		&models.AttendanceRecord{},
		&models.GradeRecord{},
		&models.AchievementState{},
		&models.BonusAward{},
	)
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return err
}

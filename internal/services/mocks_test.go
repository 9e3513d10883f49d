package services

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"
	"github.com/tuition-center/center-service/internal/models"
	"github.com/tuition-center/center-service/internal/repositories"
)

// MockRepository routes WithTransaction back to itself so tests can assert
// on the calls made inside the transaction.
type MockRepository struct {
	mock.Mock
	student     *MockStudentRepository
	attendance  *MockAttendanceRepository
	grade       *MockGradeRepository
	achievement *MockAchievementRepository
	schedule    *MockScheduleRepository
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		student:     &MockStudentRepository{},
		attendance:  &MockAttendanceRepository{},
		grade:       &MockGradeRepository{},
		achievement: &MockAchievementRepository{},
		schedule:    &MockScheduleRepository{},
	}
}

func (m *MockRepository) Student() repositories.StudentRepository         { return m.student }
func (m *MockRepository) Attendance() repositories.AttendanceRepository   { return m.attendance }
func (m *MockRepository) Grade() repositories.GradeRepository             { return m.grade }
func (m *MockRepository) Achievement() repositories.AchievementRepository { return m.achievement }
func (m *MockRepository) Schedule() repositories.ScheduleRepository       { return m.schedule }

func (m *MockRepository) WithTransaction(ctx context.Context, fn func(tx repositories.Repository) error) error {
	return fn(m)
}

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) ListIDs(ctx context.Context, filters repositories.StudentFilters) ([]uint, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uint), args.Error(1)
}

type MockAttendanceRepository struct {
	mock.Mock
}

func (m *MockAttendanceRepository) GetByStudent(ctx context.Context, studentID uint, window repositories.Window) ([]*models.AttendanceRecord, error) {
	args := m.Called(ctx, studentID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AttendanceRecord), args.Error(1)
}

type MockGradeRepository struct {
	mock.Mock
}

func (m *MockGradeRepository) GetByStudent(ctx context.Context, studentID uint, window repositories.Window) ([]*models.GradeRecord, error) {
	args := m.Called(ctx, studentID, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GradeRecord), args.Error(1)
}

type MockAchievementRepository struct {
	mock.Mock
}

func (m *MockAchievementRepository) GetByStudent(ctx context.Context, studentID uint) (*models.AchievementState, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AchievementState), args.Error(1)
}

func (m *MockAchievementRepository) LockForUpdate(ctx context.Context, initial *models.AchievementState) (*models.AchievementState, error) {
	args := m.Called(ctx, initial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AchievementState), args.Error(1)
}

func (m *MockAchievementRepository) Save(ctx context.Context, state *models.AchievementState) error {
	args := m.Called(ctx, state)
	return args.Error(0)
}

func (m *MockAchievementRepository) CreateBonusAward(ctx context.Context, award *models.BonusAward) error {
	args := m.Called(ctx, award)
	return args.Error(0)
}

func (m *MockAchievementRepository) GetBonusAwards(ctx context.Context, studentID uint, limit int) ([]*models.BonusAward, error) {
	args := m.Called(ctx, studentID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BonusAward), args.Error(1)
}

func (m *MockAchievementRepository) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderboardEntry), args.Error(1)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetByInstructorAndDay(ctx context.Context, instructorID uint, day models.DayOfWeek, excludeSlotID *uint) ([]*models.ScheduleSlot, error) {
	args := m.Called(ctx, instructorID, day, excludeSlotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ScheduleSlot), args.Error(1)
}

type MockLeaderboardCache struct {
	mock.Mock
}

func (m *MockLeaderboardCache) UpdateScore(ctx context.Context, studentID uint, totalPoints float64) error {
	args := m.Called(ctx, studentID, totalPoints)
	return args.Error(0)
}

func (m *MockLeaderboardCache) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LeaderboardEntry), args.Error(1)
}

func (m *MockLeaderboardCache) Seed(ctx context.Context, standings []models.LeaderboardEntry) error {
	args := m.Called(ctx, standings)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

package postgres

import (
	"context"

	"github.com/tuition-center/center-service/internal/models"
	"github.com/tuition-center/center-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AchievementPostgreSQL struct {
	db *gorm.DB
}

func NewAchievementPostgreSQL(db *gorm.DB) repositories.AchievementRepository {
	return &AchievementPostgreSQL{db: db}
}

func (a AchievementPostgreSQL) GetByStudent(ctx context.Context, studentID uint) (*models.AchievementState, error) {
	var state models.AchievementState
	if err := a.db.WithContext(ctx).Where("student_id = ?", studentID).First(&state).Error; err != nil {
		return nil, translateError(err)
	}
	return &state, nil
}

func (a AchievementPostgreSQL) LockForUpdate(ctx context.Context, initial *models.AchievementState) (*models.AchievementState, error) {
	db := a.db.WithContext(ctx)

	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(initial).Error; err != nil {
		return nil, err
	}

	var state models.AchievementState
	if err := a.lockQuery(db, initial.StudentID).First(&state).Error; err != nil {
		return nil, translateError(err)
	}
	return &state, nil
}

func (a AchievementPostgreSQL) lockQuery(db *gorm.DB, studentID uint) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"}).Where("student_id = ?", studentID)
}

func (a AchievementPostgreSQL) Save(ctx context.Context, state *models.AchievementState) error {
	return a.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}},
		UpdateAll: true,
	}).Create(state).Error
}

func (a AchievementPostgreSQL) CreateBonusAward(ctx context.Context, award *models.BonusAward) error {
	return a.db.WithContext(ctx).Create(award).Error
}

func (a AchievementPostgreSQL) GetBonusAwards(ctx context.Context, studentID uint, limit int) ([]*models.BonusAward, error) {
	var awards []*models.BonusAward
	query := a.db.WithContext(ctx).Where("student_id = ?", studentID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&awards).Error; err != nil {
		return nil, err
	}
	return awards, nil
}

func (a AchievementPostgreSQL) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	var states []models.AchievementState
	if err := a.topQuery(a.db.WithContext(ctx), limit).Find(&states).Error; err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, len(states))
	for i, s := range states {
		entries[i] = models.LeaderboardEntry{
			Rank:        i + 1,
			StudentID:   s.StudentID,
			TotalPoints: s.TotalPoints,
		}
	}
	return entries, nil
}

func (a AchievementPostgreSQL) topQuery(db *gorm.DB, limit int) *gorm.DB {
	query := db.Model(&models.AchievementState{}).Order("total_points DESC, student_id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query
}

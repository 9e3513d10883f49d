package models

import (
	"time"

	"gorm.io/datatypes"
)

// AchievementState is the per-student scoring snapshot. TotalPoints and Tier
// are derived and always written together.
type AchievementState struct {
	StudentID        uint      `json:"student_id" gorm:"primaryKey"`
	AttendancePoints float64   `json:"attendance_points" gorm:"not null"`
	GradePoints      float64   `json:"grade_points" gorm:"not null"`
	BonusPoints      float64   `json:"bonus_points" gorm:"not null"`
	TotalPoints      float64   `json:"total_points" gorm:"not null;index"`
	Tier             string    `json:"tier" gorm:"not null;size:30"`
	LastUpdated      time.Time `json:"last_updated"`
}

func (AchievementState) TableName() string {
	return "student_achievements"
}

// BonusAward is an append-only ledger entry for manual bonus changes.
type BonusAward struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	StudentID uint           `json:"student_id" gorm:"not null;index"`
	Delta     float64        `json:"delta" gorm:"not null"`
	Reason    string         `json:"reason" gorm:"not null;type:text"`
	AwardedBy *string        `json:"awarded_by" gorm:"size:255"`
	Metadata  datatypes.JSON `json:"metadata" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
}

func (BonusAward) TableName() string {
	return "bonus_awards"
}

// LevelProgress describes how far a student is from the next tier.
type LevelProgress struct {
	StudentID    uint    `json:"student_id"`
	TotalPoints  float64 `json:"total_points"`
	CurrentTier  string  `json:"current_tier"`
	NextTier     *string `json:"next_tier"`
	PointsNeeded float64 `json:"points_needed"`
	ProgressPct  float64 `json:"progress_pct"`
}

// LeaderboardEntry is one ranked row of the achievement leaderboard.
type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	StudentID   uint    `json:"student_id"`
	TotalPoints float64 `json:"total_points"`
}

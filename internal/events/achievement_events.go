package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of achievement events the service emits
type EventType string

const (
	EventTierChanged  EventType = "achievement.tier_changed"
	EventBonusAwarded EventType = "achievement.bonus_awarded"
)

const (
	eventSource  = "center-service"
	eventVersion = "1.0"
)

// AchievementEvent is the envelope for all published achievement events
type AchievementEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type TierChangedEvent struct {
	StudentID    uint    `json:"student_id"`
	PreviousTier string  `json:"previous_tier"`
	NewTier      string  `json:"new_tier"`
	TotalPoints  float64 `json:"total_points"`
}

type BonusAwardedEvent struct {
	StudentID   uint    `json:"student_id"`
	Delta       float64 `json:"delta"`
	Reason      string  `json:"reason"`
	BonusPoints float64 `json:"bonus_points"`
	TotalPoints float64 `json:"total_points"`
}

// NewAchievementEvent stamps a payload with an id, time and source
func NewAchievementEvent(eventType EventType, data interface{}) *AchievementEvent {
	return &AchievementEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

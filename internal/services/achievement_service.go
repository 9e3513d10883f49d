package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tuition-center/center-service/internal/cache"
	"github.com/tuition-center/center-service/internal/events"
	"github.com/tuition-center/center-service/internal/models"
	"github.com/tuition-center/center-service/internal/repositories"
	"github.com/tuition-center/center-service/internal/validator"
	"gorm.io/datatypes"
)

const (
	defaultLeaderboardSize = 10
	maxLeaderboardSize     = 100
	defaultBonusHistory    = 20
	recomputeBatchSize     = 500
)

type AchievementService interface {
	// Recompute refreshes attendance and grade points from the trailing
	// window and persists the new totals. Storage failures are returned.
	Recompute(ctx context.Context, studentID uint) (*models.AchievementState, error)
	AwardBonus(ctx context.Context, studentID uint, req *AwardBonusRequest) (*models.AchievementState, error)
	GetLevelProgress(ctx context.Context, studentID uint) (*models.LevelProgress, error)
	GetBonusHistory(ctx context.Context, studentID uint, limit int) ([]*models.BonusAward, error)
	GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)

	// RefreshAfterActivity is called after an attendance mark or grade save.
	// Failures are logged and never propagated to the triggering flow.
	RefreshAfterActivity(ctx context.Context, studentID uint)
	RecomputeAll(ctx context.Context) (*RecomputeSummary, error)
}

// AwardBonusRequest carries a signed bonus delta in whole cents, so an award
// followed by its negation restores the previous bonus exactly.
type AwardBonusRequest struct {
	Delta  float64 `json:"delta" validate:"required,cents"`
	Reason string  `json:"reason" validate:"required,min=2,max=500"`
}

type RecomputeSummary struct {
	Total     int    `json:"total"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	FailedIDs []uint `json:"failed_ids,omitempty"`
}

type achievementService struct {
	repo        repositories.Repository
	leaderboard cache.LeaderboardCache
	publisher   events.EventPublisher
	log         *ServiceLogger
	validator   *validator.Validator
	now         func() time.Time
	batchSize   int
}

// NewAchievementService wires the scoring engine. leaderboard may be nil when
// Redis is not configured.
func NewAchievementService(
	repo repositories.Repository,
	leaderboard cache.LeaderboardCache,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) AchievementService {
	return &achievementService{
		repo:        repo,
		leaderboard: leaderboard,
		publisher:   publisher,
		log:         NewServiceLogger(logger, LogConfig{Service: "center-service", Component: "achievements"}),
		validator:   validator,
		now:         time.Now,
		batchSize:   recomputeBatchSize,
	}
}

// ===== MUTATIONS =====

func (s *achievementService) Recompute(ctx context.Context, studentID uint) (*models.AchievementState, error) {
	op := s.log.WithOperation(ctx, "recompute_achievement")

	var previousTier string
	var state *models.AchievementState

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		profile, err := s.profileFor(ctx, tx, studentID)
		if err != nil {
			return err
		}

		state, err = tx.Achievement().LockForUpdate(ctx, s.initialState(studentID, profile))
		if err != nil {
			return fmt.Errorf("failed to load achievement state: %w", err)
		}
		previousTier = state.Tier

		window := repositories.TrailingDays(s.now(), ScoringWindowDays)

		attendance, err := tx.Attendance().GetByStudent(ctx, studentID, window)
		if err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		grades, err := tx.Grade().GetByStudent(ctx, studentID, window)
		if err != nil {
			return fmt.Errorf("failed to load grades: %w", err)
		}

		state.AttendancePoints = AttendancePoints(attendance, profile)
		state.GradePoints = GradePoints(grades, profile)
		ApplyTotals(state, profile)
		state.LastUpdated = s.now()

		if err := tx.Achievement().Save(ctx, state); err != nil {
			return fmt.Errorf("%w: %w", ErrAchievementSaveFailed, err)
		}
		return nil
	})

	op.LogResult(studentID, "achievement", err)
	if err != nil {
		return nil, err
	}

	s.afterCommit(ctx, previousTier, state)
	return state, nil
}

func (s *achievementService) AwardBonus(ctx context.Context, studentID uint, req *AwardBonusRequest) (*models.AchievementState, error) {
	op := s.log.WithOperation(ctx, "award_bonus")

	if err := s.validator.Validate(req); err != nil {
		op.LogResult(studentID, "achievement", err)
		return nil, err
	}

	var before models.AchievementState
	var state *models.AchievementState

	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		profile, err := s.profileFor(ctx, tx, studentID)
		if err != nil {
			return err
		}

		state, err = tx.Achievement().LockForUpdate(ctx, s.initialState(studentID, profile))
		if err != nil {
			return fmt.Errorf("failed to load achievement state: %w", err)
		}
		before = *state

		// Attendance and grade points keep their last computed values.
		// Round2 only strips float noise; deltas are whole cents.
		state.BonusPoints = models.Round2(state.BonusPoints + req.Delta)
		ApplyTotals(state, profile)
		state.LastUpdated = s.now()

		if err := tx.Achievement().Save(ctx, state); err != nil {
			return fmt.Errorf("%w: %w", ErrAchievementSaveFailed, err)
		}

		award, err := s.buildBonusAward(ctx, &before, state, req)
		if err != nil {
			return err
		}
		if err := tx.Achievement().CreateBonusAward(ctx, award); err != nil {
			return fmt.Errorf("%w: bonus ledger: %w", ErrAchievementSaveFailed, err)
		}
		return nil
	})

	op.LogResult(studentID, "achievement", err)
	if err != nil {
		return nil, err
	}

	op.LogAudit(AuditEventUpdate, studentID, "achievement",
		map[string]interface{}{"bonus_points": before.BonusPoints, "tier": before.Tier},
		map[string]interface{}{"bonus_points": state.BonusPoints, "tier": state.Tier},
		map[string]interface{}{"delta": req.Delta, "reason": req.Reason},
	)

	s.publish(ctx, events.NewAchievementEvent(events.EventBonusAwarded, events.BonusAwardedEvent{
		StudentID:   studentID,
		Delta:       req.Delta,
		Reason:      req.Reason,
		BonusPoints: state.BonusPoints,
		TotalPoints: state.TotalPoints,
	}))
	s.afterCommit(ctx, before.Tier, state)
	return state, nil
}

func (s *achievementService) RefreshAfterActivity(ctx context.Context, studentID uint) {
	if _, err := s.Recompute(ctx, studentID); err != nil {
		s.log.Logger().WarnContext(ctx, "Achievement refresh failed, continuing",
			"student_id", studentID,
			"error", err)
	}
}

// RecomputeAll walks active students in id order, one page at a time, and
// reseeds the leaderboard cache once every page is done.
func (s *achievementService) RecomputeAll(ctx context.Context) (*RecomputeSummary, error) {
	summary := &RecomputeSummary{}
	for offset := 0; ; offset += s.batchSize {
		ids, err := s.repo.Student().ListIDs(ctx, repositories.StudentFilters{
			ActiveOnly: true,
			Limit:      s.batchSize,
			Offset:     offset,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list students: %w", err)
		}

		summary.Total += len(ids)
		for _, id := range ids {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			if _, err := s.Recompute(ctx, id); err != nil {
				summary.Failed++
				summary.FailedIDs = append(summary.FailedIDs, id)
				continue
			}
			summary.Succeeded++
		}

		if len(ids) < s.batchSize {
			break
		}
	}

	if s.leaderboard != nil {
		if _, err := s.seedLeaderboard(ctx); err != nil {
			s.log.Logger().WarnContext(ctx, "Failed to reseed leaderboard", "error", err)
		}
	}

	s.log.Logger().InfoContext(ctx, "Recomputed achievements",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed)
	return summary, nil
}

// ===== QUERIES =====

func (s *achievementService) GetLevelProgress(ctx context.Context, studentID uint) (*models.LevelProgress, error) {
	profile, err := s.profileFor(ctx, s.repo, studentID)
	if err != nil {
		return nil, err
	}

	state, err := s.repo.Achievement().GetByStudent(ctx, studentID)
	if errors.Is(err, repositories.ErrNotFound) {
		state = s.initialState(studentID, profile)
	} else if err != nil {
		return nil, fmt.Errorf("failed to load achievement state: %w", err)
	}

	return LevelProgressFor(state, profile), nil
}

func (s *achievementService) GetBonusHistory(ctx context.Context, studentID uint, limit int) ([]*models.BonusAward, error) {
	if _, err := s.profileFor(ctx, s.repo, studentID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultBonusHistory
	}
	return s.repo.Achievement().GetBonusAwards(ctx, studentID, limit)
}

func (s *achievementService) GetLeaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	if limit > maxLeaderboardSize {
		limit = maxLeaderboardSize
	}

	if s.leaderboard != nil {
		entries, err := s.leaderboard.Top(ctx, limit)
		if err == nil {
			return entries, nil
		}
		if errors.Is(err, cache.ErrCacheMiss) {
			standings, err := s.seedLeaderboard(ctx)
			if err != nil {
				return nil, err
			}
			if len(standings) > limit {
				standings = standings[:limit]
			}
			return standings, nil
		}
		s.log.Logger().WarnContext(ctx, "Leaderboard cache unavailable, reading database", "error", err)
	}

	return s.repo.Achievement().Top(ctx, limit)
}

// seedLeaderboard loads the full standings from the database and hands them
// to the cache. A seeding failure is logged; the standings are still returned.
func (s *achievementService) seedLeaderboard(ctx context.Context) ([]models.LeaderboardEntry, error) {
	standings, err := s.repo.Achievement().Top(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load standings: %w", err)
	}
	if err := s.leaderboard.Seed(ctx, standings); err != nil {
		s.log.Logger().WarnContext(ctx, "Failed to seed leaderboard cache", "error", err)
	}
	return standings, nil
}

// ===== HELPERS =====

func (s *achievementService) profileFor(ctx context.Context, repo repositories.Repository, studentID uint) (models.ScoringProfile, error) {
	student, err := repo.Student().GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return models.ScoringProfile{}, fmt.Errorf("%w: %d", ErrStudentNotFound, studentID)
		}
		return models.ScoringProfile{}, fmt.Errorf("failed to load student: %w", err)
	}
	return models.ProfileFor(student.ScoringStage()), nil
}

func (s *achievementService) initialState(studentID uint, profile models.ScoringProfile) *models.AchievementState {
	return &models.AchievementState{
		StudentID:   studentID,
		Tier:        profile.LowestTier().Name,
		LastUpdated: s.now(),
	}
}

func (s *achievementService) buildBonusAward(ctx context.Context, before, after *models.AchievementState, req *AwardBonusRequest) (*models.BonusAward, error) {
	metadata, err := json.Marshal(map[string]interface{}{
		"bonus_before": before.BonusPoints,
		"bonus_after":  after.BonusPoints,
		"tier_before":  before.Tier,
		"tier_after":   after.Tier,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode bonus metadata: %w", err)
	}

	actor := actorFromContext(ctx)
	return &models.BonusAward{
		StudentID: after.StudentID,
		Delta:     req.Delta,
		Reason:    req.Reason,
		AwardedBy: &actor,
		Metadata:  datatypes.JSON(metadata),
		CreatedAt: s.now(),
	}, nil
}

// afterCommit runs best-effort side effects once the state is durable.
func (s *achievementService) afterCommit(ctx context.Context, previousTier string, state *models.AchievementState) {
	if s.leaderboard != nil {
		if err := s.leaderboard.UpdateScore(ctx, state.StudentID, state.TotalPoints); err != nil {
			s.log.Logger().WarnContext(ctx, "Failed to update leaderboard", "student_id", state.StudentID, "error", err)
		}
	}

	if previousTier != state.Tier {
		s.publish(ctx, events.NewAchievementEvent(events.EventTierChanged, events.TierChangedEvent{
			StudentID:    state.StudentID,
			PreviousTier: previousTier,
			NewTier:      state.Tier,
			TotalPoints:  state.TotalPoints,
		}))
	}
}

func (s *achievementService) publish(ctx context.Context, event *events.AchievementEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAchievementEvent(ctx, event); err != nil {
		s.log.Logger().WarnContext(ctx, "Failed to publish achievement event",
			"event_type", event.Type,
			"error", err)
	}
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/tuition-center/center-service/internal/models"
)

const (
	leaderboardKey = "achievements:leaderboard"
	seededSuffix   = ":seeded"
)

var ErrCacheMiss = errors.New("cache: key not found")

// LeaderboardCache keeps every student's total points in a Redis sorted set.
// It only mirrors committed AchievementState rows; the database stays the
// source of truth. Top reports ErrCacheMiss until Seed has loaded the full
// standings, so a set holding only recently updated students is never served.
type LeaderboardCache interface {
	UpdateScore(ctx context.Context, studentID uint, totalPoints float64) error
	Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	Seed(ctx context.Context, standings []models.LeaderboardEntry) error
}

type redisLeaderboard struct {
	client *redis.Client
	logger *slog.Logger
	key    string
}

func NewLeaderboardCache(client *redis.Client, logger *slog.Logger) LeaderboardCache {
	return &redisLeaderboard{
		client: client,
		logger: logger,
		key:    leaderboardKey,
	}
}

func (r *redisLeaderboard) UpdateScore(ctx context.Context, studentID uint, totalPoints float64) error {
	err := r.client.ZAdd(ctx, r.key, redis.Z{
		Score:  totalPoints,
		Member: memberFor(studentID),
	}).Err()
	if err != nil {
		return fmt.Errorf("leaderboard update for student %d: %w", studentID, err)
	}
	return nil
}

func (r *redisLeaderboard) Top(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if limit <= 0 {
		return []models.LeaderboardEntry{}, nil
	}

	var seeded *redis.IntCmd
	var ranged *redis.ZSliceCmd
	_, err := r.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		seeded = pipe.Exists(ctx, r.seededKey())
		ranged = pipe.ZRevRangeWithScores(ctx, r.key, 0, int64(limit-1))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("leaderboard read: %w", err)
	}
	if seeded.Val() == 0 {
		return nil, ErrCacheMiss
	}
	members := ranged.Val()

	entries := make([]models.LeaderboardEntry, 0, len(members))
	for i, z := range members {
		studentID, err := parseMember(z.Member)
		if err != nil {
			r.logger.Warn("Skipping malformed leaderboard member", "member", z.Member, "error", err)
			continue
		}
		entries = append(entries, models.LeaderboardEntry{
			Rank:        i + 1,
			StudentID:   studentID,
			TotalPoints: z.Score,
		})
	}
	return entries, nil
}

// Seed replaces the sorted set with the full standings and marks it complete.
func (r *redisLeaderboard) Seed(ctx context.Context, standings []models.LeaderboardEntry) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key)
		if members := membersFor(standings); len(members) > 0 {
			pipe.ZAdd(ctx, r.key, members...)
		}
		pipe.Set(ctx, r.seededKey(), "1", 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("leaderboard seed: %w", err)
	}
	r.logger.Info("Seeded leaderboard cache", "students", len(standings))
	return nil
}

func (r *redisLeaderboard) seededKey() string {
	return r.key + seededSuffix
}

func membersFor(standings []models.LeaderboardEntry) []redis.Z {
	members := make([]redis.Z, 0, len(standings))
	for _, e := range standings {
		members = append(members, redis.Z{Score: e.TotalPoints, Member: memberFor(e.StudentID)})
	}
	return members
}

func memberFor(studentID uint) string {
	return strconv.FormatUint(uint64(studentID), 10)
}

func parseMember(member interface{}) (uint, error) {
	s, ok := member.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected member type %T", member)
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

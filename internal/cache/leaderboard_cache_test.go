package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tuition-center/center-service/internal/models"
)

func TestMemberRoundTrip(t *testing.T) {
	id, err := parseMember(memberFor(4213))
	require.NoError(t, err)
	assert.Equal(t, uint(4213), id)
}

func TestParseMember_Invalid(t *testing.T) {
	_, err := parseMember(12)
	assert.Error(t, err)

	_, err = parseMember("student-1")
	assert.Error(t, err)
}

func TestMembersFor(t *testing.T) {
	members := membersFor([]models.LeaderboardEntry{
		{Rank: 1, StudentID: 9, TotalPoints: 88.5},
		{Rank: 2, StudentID: 3, TotalPoints: 41},
	})

	require.Len(t, members, 2)
	assert.Equal(t, redis.Z{Score: 88.5, Member: "9"}, members[0])
	assert.Equal(t, redis.Z{Score: 41, Member: "3"}, members[1])
	assert.Empty(t, membersFor(nil))
}

func TestSeededKey(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()
	lb := NewLeaderboardCache(client, discard()).(*redisLeaderboard)
	assert.Equal(t, "achievements:leaderboard:seeded", lb.seededKey())
}

func TestTop_UnreachableRedisIsNotAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	lb := NewLeaderboardCache(client, discard())

	_, err := lb.Top(context.Background(), 5)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

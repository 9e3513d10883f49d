package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestWatermillEventPublisher_Publish(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{Persistent: true}, watermill.NopLogger{})
	defer pubSub.Close()

	publisher := NewWatermillEventPublisher(pubSub, "achievements", testLogger())

	event := NewAchievementEvent(EventTierChanged, TierChangedEvent{
		StudentID:    7,
		PreviousTier: "bronze",
		NewTier:      "silver",
		TotalPoints:  52.5,
	})
	require.NoError(t, publisher.PublishAchievementEvent(context.Background(), event))

	messages, err := pubSub.Subscribe(context.Background(), "achievements")
	require.NoError(t, err)

	msg := <-messages
	msg.Ack()

	assert.Equal(t, event.ID, msg.UUID)
	assert.Equal(t, string(EventTierChanged), msg.Metadata.Get("event_type"))
	assert.Equal(t, "center-service", msg.Metadata.Get("source"))

	var decoded AchievementEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &decoded))
	assert.Equal(t, EventTierChanged, decoded.Type)
}

func TestMockEventPublisher(t *testing.T) {
	mock := NewMockEventPublisher(testLogger())

	event := NewAchievementEvent(EventBonusAwarded, BonusAwardedEvent{StudentID: 1, Delta: 5})
	require.NoError(t, mock.PublishAchievementEvent(context.Background(), event))

	published := mock.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.NotEmpty(t, published[0].ID)
	assert.Equal(t, "1.0", published[0].Version)
	assert.False(t, published[0].Timestamp.IsZero())

	mock.ClearEvents()
	assert.Empty(t, mock.GetPublishedEvents())
}

package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Activity types emitted by the attendance and grading subsystems.
const (
	ActivityAttendanceMarked = "attendance.marked"
	ActivityGradeSaved       = "grade.saved"
)

// ActivityEvent is the payload read from the student activity topic.
type ActivityEvent struct {
	Type      string `json:"type"`
	StudentID uint   `json:"student_id"`
}

// RefreshFunc reacts to a student's activity. It must not fail the message.
type RefreshFunc func(ctx context.Context, studentID uint)

// ActivitySubscriber triggers an achievement refresh for every attendance mark
// or grade save seen on the activity topic.
type ActivitySubscriber struct {
	subscriber message.Subscriber
	topic      string
	refresh    RefreshFunc
	logger     *slog.Logger
}

type SubscriberConfig struct {
	KafkaBrokers  []string
	TopicName     string
	ConsumerGroup string
	Logger        *slog.Logger
}

func NewKafkaActivitySubscriber(config SubscriberConfig, refresh RefreshFunc) (*ActivitySubscriber, error) {
	subscriber, err := kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:       config.KafkaBrokers,
		Unmarshaler:   kafka.DefaultMarshaler{},
		ConsumerGroup: config.ConsumerGroup,
	}, watermill.NewSlogLogger(config.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka subscriber: %w", err)
	}

	return NewActivitySubscriber(subscriber, config.TopicName, refresh, config.Logger), nil
}

// NewActivitySubscriber wraps any Watermill subscriber
func NewActivitySubscriber(subscriber message.Subscriber, topic string, refresh RefreshFunc, logger *slog.Logger) *ActivitySubscriber {
	return &ActivitySubscriber{
		subscriber: subscriber,
		topic:      topic,
		refresh:    refresh,
		logger:     logger,
	}
}

// Run consumes until ctx is cancelled or the subscription closes.
func (s *ActivitySubscriber) Run(ctx context.Context) error {
	messages, err := s.subscriber.Subscribe(ctx, s.topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", s.topic, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}
			s.handle(ctx, msg)
			msg.Ack()
		}
	}
}

func (s *ActivitySubscriber) handle(ctx context.Context, msg *message.Message) {
	var event ActivityEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		s.logger.Warn("Dropping malformed activity event", "message_id", msg.UUID, "error", err)
		return
	}

	switch event.Type {
	case ActivityAttendanceMarked, ActivityGradeSaved:
	default:
		s.logger.Debug("Ignoring activity event", "type", event.Type)
		return
	}
	if event.StudentID == 0 {
		s.logger.Warn("Dropping activity event without student", "message_id", msg.UUID)
		return
	}

	s.refresh(ctx, event.StudentID)
}

func (s *ActivitySubscriber) Close() error {
	return s.subscriber.Close()
}

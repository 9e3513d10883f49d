package config

import (
	"log/slog"
	"strings"

	"github.com/tuition-center/center-service/internal/events"
)

// EventConfig holds configuration for achievement event publishing
type EventConfig struct {
	Enabled      bool
	Publisher    string // kafka or mock
	KafkaBrokers string
	Topic        string

	// Attendance and grade activity consumed to refresh achievements
	ActivityTopic string
	ConsumerGroup string
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	brokers := make([]string, 0)
	for _, broker := range strings.Split(c.KafkaBrokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.Topic)

		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.Topic,
			Logger:       logger,
		})
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return events.NewMockEventPublisher(logger), nil
	}
}

// ConsumesActivity reports whether the Kafka activity subscriber should run
func (c *EventConfig) ConsumesActivity() bool {
	return c.Enabled && c.Publisher == "kafka" && c.ActivityTopic != ""
}

// CreateActivitySubscriber creates the Kafka consumer for student activity
func (c *EventConfig) CreateActivitySubscriber(logger *slog.Logger, refresh events.RefreshFunc) (*events.ActivitySubscriber, error) {
	logger.Info("Creating Kafka activity subscriber",
		"brokers", c.KafkaBrokers,
		"topic", c.ActivityTopic,
		"consumer_group", c.ConsumerGroup)

	return events.NewKafkaActivitySubscriber(events.SubscriberConfig{
		KafkaBrokers:  c.GetKafkaBrokers(),
		TopicName:     c.ActivityTopic,
		ConsumerGroup: c.ConsumerGroup,
		Logger:        logger,
	}, refresh)
}

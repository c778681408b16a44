package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/road-hazard-api/internal/config"
	"github.com/couchcryptid/road-hazard-api/internal/domain"
	"github.com/couchcryptid/road-hazard-api/internal/observability"
)

// EventHazardReported is the event_type of every message the publisher writes.
const EventHazardReported = "hazard.reported"

// HazardEvent is the JSON value of a hazard.reported message.
type HazardEvent struct {
	EventType   string        `json:"event_type"`
	PublishedAt time.Time     `json:"published_at"`
	Hazard      domain.Hazard `json:"hazard"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes hazard.reported events to a Kafka topic.
type Publisher struct {
	writer  messageWriter
	metrics *observability.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewPublisher creates a Kafka producer for the configured hazard topic.
func NewPublisher(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaHazardTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, metrics: metrics, logger: logger, now: time.Now}
}

// PublishHazard writes one event keyed by hazard ID, so every event for a
// hazard lands on the same partition.
func (p *Publisher) PublishHazard(ctx context.Context, h domain.Hazard) error {
	msg, err := serializeToMessage(HazardEvent{
		EventType:   EventHazardReported,
		PublishedAt: p.now().UTC(),
		Hazard:      h,
	})
	if err != nil {
		p.metrics.EventsPublished.WithLabelValues("error").Inc()
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.metrics.EventsPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("publish %s: %w", EventHazardReported, err)
	}
	p.metrics.EventsPublished.WithLabelValues("success").Inc()
	p.logger.Debug("hazard event published", "hazard_id", h.ID, "hazard_type", h.HazardType)
	return nil
}

// Close flushes pending writes and releases the connection.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func serializeToMessage(event HazardEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize hazard event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.Hazard.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "hazard_type", Value: []byte(event.Hazard.HazardType)},
			{Key: "severity_level", Value: []byte(event.Hazard.SeverityLevel)},
		},
	}, nil
}

// NoopPublisher discards events. It is used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishHazard(context.Context, domain.Hazard) error { return nil }

func (NoopPublisher) Close() error { return nil }

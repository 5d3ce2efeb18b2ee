// Package kafka publishes accepted submissions to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/ajudejf/internal/config"
	"github.com/couchcryptid/ajudejf/internal/domain"
	"github.com/couchcryptid/ajudejf/internal/observability"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafkago.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher writes one message per accepted submission.
// It implements intake.Publisher.
type Publisher struct {
	writer  messageWriter
	timeout time.Duration
	metrics *observability.Metrics
	logger  *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured submissions topic.
func NewPublisher(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaSubmissions,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		// One message per submission; do not sit on the default 1s batch timer.
		BatchSize:    1,
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Publisher{writer: w, timeout: 5 * time.Second, metrics: metrics, logger: logger}
}

// PublishSubmission serializes event and writes it keyed by category, so all
// submissions of one category land on the same partition in order.
func (p *Publisher) PublishSubmission(ctx context.Context, event domain.SubmissionEvent) error {
	msg, err := serializeToMessage(event)
	if err != nil {
		p.metrics.EventsPublished.WithLabelValues("error").Inc()
		return err
	}

	// The record is already stored; the write gets its own deadline even if
	// the caller's context is cancelled.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.metrics.EventsPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("write submission event: %w", err)
	}
	p.metrics.EventsPublished.WithLabelValues("success").Inc()
	p.logger.Debug("submission event published", "category", event.Category)
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a SubmissionEvent into a Kafka message.
func serializeToMessage(event domain.SubmissionEvent) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize submission event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(event.Category),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "collection", Value: []byte(event.Collection)},
			{Key: "submitted_at", Value: []byte(event.SubmittedAt.Format(time.RFC3339))},
		},
	}, nil
}

package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/careops/dropout-service/internal/domain/event"
)

// LogPublisher implements port.EventPublisher by emitting domain events to the
// structured log. Assessments are ephemeral by design, so the event log is the
// only downstream record of completed assessments.
type LogPublisher struct {
	topic  string
	logger *slog.Logger
}

// NewLogPublisher creates a new log-backed event publisher.
func NewLogPublisher(topic string, logger *slog.Logger) *LogPublisher {
	return &LogPublisher{
		topic:  topic,
		logger: logger,
	}
}

// Publish emits domain events to the structured log.
func (p *LogPublisher) Publish(_ context.Context, events ...event.DomainEvent) error {
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.Info("publishing event",
			slog.String("event_type", evt.EventType()),
			slog.String("topic", p.topic),
			slog.String("aggregate_id", evt.AggregateID().String()),
			slog.Int("payload_size", len(payload)),
		)

		p.logger.Debug("event payload",
			slog.String("event_type", evt.EventType()),
			slog.String("payload", string(payload)),
		)
	}

	return nil
}

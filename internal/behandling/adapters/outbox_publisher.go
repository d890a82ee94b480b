// Package adapters connects the case lifecycle ports to platform infrastructure.
package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"kabal/internal/behandling/models"
	"kabal/pkg/platform/outbox"
)

const aggregateType = "behandling"

// OutboxPublisher implements ports.EventPublisher by appending to the outbox.
// It is fail-closed: when the append fails the calling operation must fail, and
// since the append joins the operation's transaction nothing is committed.
type OutboxPublisher struct {
	store  outbox.Store
	logger *slog.Logger
}

type Option func(*OutboxPublisher)

func WithLogger(logger *slog.Logger) Option {
	return func(p *OutboxPublisher) {
		p.logger = logger
	}
}

func NewOutboxPublisher(store outbox.Store, opts ...Option) *OutboxPublisher {
	p := &OutboxPublisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// eventPayload is the JSON published to Kafka. EventID lets consumers drop
// redeliveries.
type eventPayload struct {
	EventID string `json:"event_id"`
	models.Event
}

func (p *OutboxPublisher) Publish(ctx context.Context, event models.Event) error {
	if event.Type == "" {
		return fmt.Errorf("event requires a type")
	}
	if event.CaseID.IsNil() {
		return fmt.Errorf("event requires a case id")
	}

	eventID := uuid.New()
	payload, err := json.Marshal(eventPayload{EventID: eventID.String(), Event: event})
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	err = p.store.Append(ctx, outbox.Record{
		ID:            eventID,
		AggregateType: aggregateType,
		AggregateID:   event.CaseID.String(),
		EventType:     string(event.Type),
		Payload:       payload,
		CreatedAt:     event.OccurredAt,
	})
	if err != nil {
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "event outbox append failed",
				"event", event.Type,
				"case_id", event.CaseID.String(),
				"error", err,
			)
		}
		return fmt.Errorf("event outbox append failed: %w", err)
	}
	return nil
}

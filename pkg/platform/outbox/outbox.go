// Package outbox implements the transactional outbox: producers append records
// in the same transaction as their state change, and a Relay delivers them to
// Kafka afterwards. Delivery is at-least-once; consumers deduplicate on ID.
package outbox

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one pending message.
type Record struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// Store persists outbox records.
type Store interface {
	// Append writes a record, joining the transaction in ctx when there is one.
	Append(ctx context.Context, r Record) error
	// FetchUnpublished returns up to limit unpublished records, oldest first.
	FetchUnpublished(ctx context.Context, limit int) ([]Record, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

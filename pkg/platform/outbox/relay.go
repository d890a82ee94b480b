package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
)

const (
	defaultRelayInterval = 2 * time.Second
	defaultRelayBatch    = 100
)

// Producer is the part of *kgo.Client the relay uses.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// Relay polls the outbox and produces unpublished records to one topic. A
// record is marked published only after the broker acknowledged it.
type Relay struct {
	store    Store
	producer Producer
	topic    string
	interval time.Duration
	batch    int
	logger   *slog.Logger
	metrics  *Metrics
	now      func() time.Time
}

type RelayOption func(*Relay)

func WithInterval(d time.Duration) RelayOption {
	return func(r *Relay) {
		if d > 0 {
			r.interval = d
		}
	}
}

func WithBatchSize(n int) RelayOption {
	return func(r *Relay) {
		if n > 0 {
			r.batch = n
		}
	}
}

func WithRelayLogger(logger *slog.Logger) RelayOption {
	return func(r *Relay) {
		r.logger = logger
	}
}

func WithRelayMetrics(m *Metrics) RelayOption {
	return func(r *Relay) {
		r.metrics = m
	}
}

func NewRelay(store Store, producer Producer, topic string, opts ...RelayOption) *Relay {
	r := &Relay{
		store:    store,
		producer: producer,
		topic:    topic,
		interval: defaultRelayInterval,
		batch:    defaultRelayBatch,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run relays until ctx is cancelled. Failed passes are logged and retried on
// the next tick.
func (r *Relay) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := r.RelayOnce(ctx); err != nil && ctx.Err() == nil {
				if r.logger != nil {
					r.logger.ErrorContext(ctx, "outbox relay pass failed", "error", err)
				}
			}
		}
	}
}

// RelayOnce delivers one batch and returns how many records were published.
func (r *Relay) RelayOnce(ctx context.Context) (int, error) {
	records, err := r.store.FetchUnpublished(ctx, r.batch)
	if err != nil {
		return 0, err
	}
	r.metrics.setBacklog(len(records))
	if len(records) == 0 {
		return 0, nil
	}

	kafkaRecords := make([]*kgo.Record, len(records))
	ids := make(map[*kgo.Record]uuid.UUID, len(records))
	for i, rec := range records {
		kafkaRecords[i] = &kgo.Record{
			Topic: r.topic,
			Key:   []byte(rec.AggregateID),
			Value: rec.Payload,
			Headers: []kgo.RecordHeader{
				{Key: "event_id", Value: []byte(rec.ID.String())},
				{Key: "event_type", Value: []byte(rec.EventType)},
				{Key: "aggregate_type", Value: []byte(rec.AggregateType)},
			},
		}
		ids[kafkaRecords[i]] = rec.ID
	}

	// results are not guaranteed to follow input order
	results := r.producer.ProduceSync(ctx, kafkaRecords...)
	published := make([]uuid.UUID, 0, len(records))
	var firstErr error
	for _, res := range results {
		if res.Err != nil {
			if firstErr == nil {
				firstErr = res.Err
			}
			continue
		}
		if id, ok := ids[res.Record]; ok {
			published = append(published, id)
		}
	}

	if err := r.store.MarkPublished(ctx, published, r.now()); err != nil {
		return 0, err
	}
	r.metrics.addPublished(len(published))
	if firstErr != nil {
		r.metrics.incFailures()
		return len(published), fmt.Errorf("produce outbox records: %w", firstErr)
	}
	return len(published), nil
}

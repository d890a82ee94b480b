package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"kabal/internal/behandling/access"
	"kabal/internal/behandling/adapters"
	behandlingmetrics "kabal/internal/behandling/metrics"
	"kabal/internal/behandling/models"
	"kabal/internal/behandling/service"
	"kabal/internal/behandling/store"
	"kabal/internal/platform/config"
	"kabal/internal/platform/httpserver"
	"kabal/internal/platform/kafka"
	"kabal/internal/platform/metrics"
	"kabal/internal/platform/postgres"
	"kabal/internal/platform/redis"
	"kabal/pkg/platform/outbox"
)

const shutdownTimeout = 10 * time.Second

// app is the wired process. Service is what the transport layer mounts.
type app struct {
	Service *service.Service
	relay   *outbox.Relay
	ops     *http.Server
	closers []func() error
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	a, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer a.close(log)

	g, ctx := errgroup.WithContext(ctx)
	if a.relay != nil {
		g.Go(func() error {
			if err := a.relay.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("outbox relay: %w", err)
			}
			return nil
		})
	}
	g.Go(func() error {
		log.Info("ops server listening", "addr", a.ops.Addr)
		if err := a.ops.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ops server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.ops.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func build(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	a := &app{}
	reg := metrics.NewRegistry()
	var checks []httpserver.HealthCheck

	var (
		tx          store.Tx
		outboxStore outbox.Store
	)
	if cfg.Database.URL != "" {
		db, err := postgres.Open(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		if err := postgres.Migrate(ctx, db); err != nil {
			a.close(log)
			return nil, err
		}
		tx = store.NewPostgresTx(db, cfg.Database.TxTimeout)
		outboxStore = outbox.NewPostgresStore(db)
		checks = append(checks, httpserver.HealthCheck{Name: "postgres", Check: db.PingContext})
	} else {
		log.Warn("no database configured, using in-memory case store")
		tx = store.NewMemoryTx(store.NewMemory())
		outboxStore = outbox.NewMemoryStore()
		checks = append(checks, httpserver.HealthCheck{Name: "postgres"})
	}

	cache, err := accessCache(ctx, cfg, a, &checks)
	if err != nil {
		a.close(log)
		return nil, err
	}

	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		a.close(log)
		return nil, err
	}
	if producer != nil {
		a.closers = append(a.closers, func() error { producer.Close(); return nil })
		if err := kafka.EnsureTopic(ctx, producer, cfg.Kafka.Topic, cfg.Kafka.Partitions, cfg.Kafka.Replication); err != nil {
			a.close(log)
			return nil, err
		}
		a.relay = outbox.NewRelay(outboxStore, producer, cfg.Kafka.Topic,
			outbox.WithInterval(cfg.Kafka.RelayInterval),
			outbox.WithBatchSize(cfg.Kafka.RelayBatch),
			outbox.WithRelayLogger(log),
			outbox.WithRelayMetrics(outbox.NewMetrics(reg)),
		)
		checks = append(checks, httpserver.HealthCheck{Name: "kafka", Check: func(ctx context.Context) error {
			return kafka.Health(ctx, producer)
		}})
	} else {
		log.Warn("no kafka brokers configured, outbox records are kept but not relayed")
		checks = append(checks, httpserver.HealthCheck{Name: "kafka"})
	}

	// Collaborator clients are not part of this binary yet; operations that
	// need them fail as integration errors.
	var collaborators adapters.Unconfigured
	guard := access.NewGuard(collaborators, collaborators, collaborators,
		access.WithCache(cache),
		access.WithLogger(log),
	)
	a.Service = service.New(tx, guard, service.Collaborators{
		Mirror:     collaborators,
		Quality:    collaborators,
		Orgs:       collaborators,
		Documents:  collaborators,
		Grounds:    collaborators,
		Successors: collaborators,
		Publisher:  adapters.NewOutboxPublisher(outboxStore, adapters.WithLogger(log)),
	},
		service.WithLogger(log),
		service.WithMetrics(behandlingmetrics.New(reg)),
		service.WithPolicy(policy(cfg)),
	)

	a.ops = httpserver.New(cfg.Server.Addr, httpserver.OpsRouter(log, reg, checks...))
	return a, nil
}

func accessCache(ctx context.Context, cfg *config.Config, a *app, checks *[]httpserver.HealthCheck) (access.DecisionCache, error) {
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		*checks = append(*checks, httpserver.HealthCheck{Name: "redis"})
		return access.NewMemoryCache(cfg.Access.CacheTTL), nil
	}
	a.closers = append(a.closers, client.Close)
	*checks = append(*checks, httpserver.HealthCheck{Name: "redis", Check: client.Health})
	return access.NewRedisCache(client, cfg.Access.CacheTTL), nil
}

func policy(cfg *config.Config) service.Policy {
	return service.Policy{
		LegacySystem:         cfg.Legacy.SystemName,
		DefaultDeadlineWeeks: cfg.Legacy.DefaultDeadlineWeeks,
		NoGroundsOutcomes:    outcomes(cfg.Finalize.NoGroundsOutcomes),
		NoQualityOutcomes:    outcomes(cfg.Finalize.NoQualityOutcomes),
	}
}

func outcomes(values []string) []models.Outcome {
	out := make([]models.Outcome, 0, len(values))
	for _, v := range values {
		out = append(out, models.Outcome(v))
	}
	return out
}

func (a *app) close(log *slog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

// Package service holds the case lifecycle coordinators: assignment, hold, void,
// the two review flows and the finalization gate. Every mutation runs as one
// transaction: load, authorize, mutate in memory, mirror, save, publish.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"kabal/internal/behandling/access"
	"kabal/internal/behandling/metrics"
	"kabal/internal/behandling/models"
	"kabal/internal/behandling/ports"
	"kabal/internal/behandling/store"
	id "kabal/pkg/domain"
	dErrors "kabal/pkg/domain-errors"
	"kabal/pkg/platform/sentinel"
)

const tracerName = "kabal/behandling"

// Collaborators are the external ports the coordinators call.
type Collaborators struct {
	Mirror     ports.LegacySystemMirror
	Quality    ports.QualityAssessmentGateway
	Orgs       ports.OrgRegistry
	Documents  ports.DocumentStatusProvider
	Grounds    ports.LegalGroundsCatalog
	Successors ports.SuccessorCaseCreator
	Publisher  ports.EventPublisher
}

// Policy holds the configurable rules of the lifecycle.
type Policy struct {
	// LegacySystem is the source system whose assignment state is mirrored.
	LegacySystem string
	// DefaultDeadlineWeeks is added to ReceivedAt when a legacy case has no deadline.
	DefaultDeadlineWeeks int
	// NoGroundsOutcomes need no registered legal grounds to finalize.
	NoGroundsOutcomes []models.Outcome
	// NoQualityOutcomes skip the quality assessment check.
	NoQualityOutcomes []models.Outcome
}

// DefaultPolicy mirrors the configuration defaults.
func DefaultPolicy() Policy {
	return Policy{
		LegacySystem:         "IT01",
		DefaultDeadlineWeeks: 12,
		NoGroundsOutcomes:    []models.Outcome{models.OutcomeWithdrawn, models.OutcomeReturn, models.OutcomeLifted},
		NoQualityOutcomes:    []models.Outcome{models.OutcomeWithdrawn, models.OutcomeReturn, models.OutcomeLifted, models.OutcomeReferred},
	}
}

type Service struct {
	tx     store.Tx
	guard  *access.Guard
	deps   Collaborators
	policy Policy

	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tracer
	}
}

func WithPolicy(p Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

func New(tx store.Tx, guard *access.Guard, deps Collaborators, opts ...Option) *Service {
	s := &Service{
		tx:     tx,
		guard:  guard,
		deps:   deps,
		policy: DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer(tracerName)
	}
	return s
}

// change is a mutation callback. It returns the events to publish once the case
// is saved.
type change func(ctx context.Context, st store.Store, c *models.Case) ([]models.Event, error)

// mutate runs one coordinator operation against caseID inside a transaction.
func (s *Service) mutate(ctx context.Context, op string, caseID id.CaseID, fn change) (*models.Case, error) {
	var out *models.Case
	err := s.observe(ctx, op, caseID, func(ctx context.Context) error {
		return s.tx.RunInTx(ctx, func(ctx context.Context, st store.Store) error {
			c, err := load(ctx, st, caseID)
			if err != nil {
				return err
			}
			events, err := fn(ctx, st, c)
			if err != nil {
				return err
			}
			if err := save(ctx, st, c); err != nil {
				return err
			}
			if err := s.publish(ctx, events); err != nil {
				return err
			}
			out = c
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// read loads caseID inside a transaction without saving.
func (s *Service) read(ctx context.Context, op string, caseID id.CaseID, fn func(ctx context.Context, st store.Store, c *models.Case) error) error {
	return s.observe(ctx, op, caseID, func(ctx context.Context) error {
		return s.tx.RunInTx(ctx, func(ctx context.Context, st store.Store) error {
			c, err := load(ctx, st, caseID)
			if err != nil {
				return err
			}
			return fn(ctx, st, c)
		})
	})
}

// observe wraps an operation in a span and records its outcome.
func (s *Service) observe(ctx context.Context, op string, caseID id.CaseID, fn func(ctx context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "behandling."+op, trace.WithAttributes(
		attribute.String("operation", op),
		attribute.String("case_id", caseIDAttr(caseID)),
	))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	s.metrics.ObserveOperation(op, resultLabel(err), time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	return err
}

func caseIDAttr(caseID id.CaseID) string {
	if caseID.IsNil() {
		return ""
	}
	return caseID.String()
}

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return string(dErrors.CodeOf(err))
}

func load(ctx context.Context, st store.Store, caseID id.CaseID) (*models.Case, error) {
	c, err := st.FindByID(ctx, caseID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeNotFound, "case %s not found", caseID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load case")
	}
	return c, nil
}

func save(ctx context.Context, st store.Store, c *models.Case) error {
	if err := st.Save(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return dErrors.New(dErrors.CodeConflict, "another active case has the same source reference and type")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save case")
	}
	return nil
}

// publish hands events to the publisher inside the transaction so an outbox
// append commits or rolls back together with the case.
func (s *Service) publish(ctx context.Context, events []models.Event) error {
	for _, ev := range events {
		if err := s.deps.Publisher.Publish(ctx, ev); err != nil {
			return dErrors.Wrap(err, dErrors.CodeIntegration, "failed to publish "+string(ev.Type))
		}
		s.audit(ctx, ev)
	}
	return nil
}

func (s *Service) audit(ctx context.Context, ev models.Event) {
	if s.logger == nil {
		return
	}
	args := []any{
		"log_type", "audit",
		"event", string(ev.Type),
		"case_id", ev.CaseID.String(),
		"actor", ev.ActorIdent,
	}
	for k, v := range ev.Attributes {
		args = append(args, k, v)
	}
	s.logger.InfoContext(ctx, "case changed", args...)
}

func (s *Service) logError(ctx context.Context, msg string, c *models.Case, err error) {
	if s.logger != nil {
		s.logger.ErrorContext(ctx, msg, "case_id", c.ID.String(), "error", err)
	}
}

// integration wraps a failed collaborator call.
func integration(err error, msg string) error {
	return dErrors.Wrap(err, dErrors.CodeIntegration, msg)
}

// requireActor rejects an empty acting identity.
func requireActor(actorIdent string) error {
	if actorIdent == "" {
		return dErrors.New(dErrors.CodeBadRequest, "acting ident is required")
	}
	return nil
}

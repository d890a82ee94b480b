// Package ports declares the collaborators the case lifecycle core consumes.
// Implementations live outside the core (HTTP clients, Kafka, registries).
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"kabal/internal/behandling/models"
	id "kabal/pkg/domain"
)

// RoleProvider resolves the application roles of a NAV-ident.
type RoleProvider interface {
	Roles(ctx context.Context, ident string) (models.Roles, error)
}

// AccessDecision is the outcome of a subject access lookup.
type AccessDecision struct {
	Allowed bool
	Reason  string
}

// PersonAccessChecker decides whether ident may see cases about subject
// (skjerming, egen ansatt, fortrolig adresse).
type PersonAccessChecker interface {
	CheckAccess(ctx context.Context, ident string, subject string) (AccessDecision, error)
}

// CategoryAccessChecker reports whether ident may work on a benefit category.
type CategoryAccessChecker interface {
	HasCategoryAccess(ctx context.Context, ident string, category string) (bool, error)
}

// LegacySystemMirror mirrors assignment state into the legacy case-tracking
// system. Calls are synchronous; an error aborts the whole operation.
type LegacySystemMirror interface {
	MarkAssigned(ctx context.Context, sourceReference, ident, unit string) error
	MarkUnassigned(ctx context.Context, sourceReference string, deadline time.Time) error
}

// QualityAssessmentGateway returns kvalitetsvurdering validation errors for a case.
type QualityAssessmentGateway interface {
	ValidationErrors(ctx context.Context, c *models.Case) ([]models.FieldError, error)
}

// OrgRegistry looks up organizations in Enhetsregisteret.
type OrgRegistry interface {
	IsActive(ctx context.Context, orgID string) (bool, error)
}

// DocumentStatusProvider reports on the case's documents under production.
type DocumentStatusProvider interface {
	HasUnfinishedDocuments(ctx context.Context, caseID id.CaseID) (bool, error)
}

// LegalGroundsCatalog validates legal grounds (hjemler) against a category.
type LegalGroundsCatalog interface {
	IsValidFor(ctx context.Context, category string, legalGround string) (bool, error)
}

// SuccessorCaseCreator spawns the new case after a tribunal reversal.
type SuccessorCaseCreator interface {
	CreateAfterTribunalReversal(ctx context.Context, c *models.Case, actorIdent string) (id.CaseID, error)
}

// EventPublisher receives domain events. The core calls it inside the
// transaction; the outbox-backed implementation makes delivery at-least-once.
type EventPublisher interface {
	Publish(ctx context.Context, event models.Event) error
}

package adapters

import (
	"context"
	"errors"
	"time"

	"kabal/internal/behandling/models"
	"kabal/internal/behandling/ports"
	id "kabal/pkg/domain"
)

// ErrNotConfigured is returned by Unconfigured for every call.
var ErrNotConfigured = errors.New("collaborator is not configured")

// Unconfigured stands in for collaborators that have no client wired. Every
// call fails, so operations depending on it abort as integration failures
// instead of passing checks they never made.
type Unconfigured struct{}

var (
	_ ports.RoleProvider             = Unconfigured{}
	_ ports.PersonAccessChecker      = Unconfigured{}
	_ ports.CategoryAccessChecker    = Unconfigured{}
	_ ports.LegacySystemMirror       = Unconfigured{}
	_ ports.QualityAssessmentGateway = Unconfigured{}
	_ ports.OrgRegistry              = Unconfigured{}
	_ ports.DocumentStatusProvider   = Unconfigured{}
	_ ports.LegalGroundsCatalog      = Unconfigured{}
	_ ports.SuccessorCaseCreator     = Unconfigured{}
)

func (Unconfigured) Roles(context.Context, string) (models.Roles, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) CheckAccess(context.Context, string, string) (ports.AccessDecision, error) {
	return ports.AccessDecision{}, ErrNotConfigured
}

func (Unconfigured) HasCategoryAccess(context.Context, string, string) (bool, error) {
	return false, ErrNotConfigured
}

func (Unconfigured) MarkAssigned(context.Context, string, string, string) error {
	return ErrNotConfigured
}

func (Unconfigured) MarkUnassigned(context.Context, string, time.Time) error {
	return ErrNotConfigured
}

func (Unconfigured) ValidationErrors(context.Context, *models.Case) ([]models.FieldError, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) IsActive(context.Context, string) (bool, error) {
	return false, ErrNotConfigured
}

func (Unconfigured) HasUnfinishedDocuments(context.Context, id.CaseID) (bool, error) {
	return false, ErrNotConfigured
}

func (Unconfigured) IsValidFor(context.Context, string, string) (bool, error) {
	return false, ErrNotConfigured
}

func (Unconfigured) CreateAfterTribunalReversal(context.Context, *models.Case, string) (id.CaseID, error) {
	return id.CaseID{}, ErrNotConfigured
}

// Package access implements the authorization checks of the case lifecycle:
// subject read access, write access (assigned caseworker), category access and
// the role lookups the coordinators branch on.
package access

import (
	"context"
	"log/slog"

	"kabal/internal/behandling/models"
	"kabal/internal/behandling/ports"
	dErrors "kabal/pkg/domain-errors"
)

// Guard answers authorization questions for the coordinators. Every failed
// check is a CodeForbidden error naming the missing access.
type Guard struct {
	roles      ports.RoleProvider
	people     ports.PersonAccessChecker
	categories ports.CategoryAccessChecker
	cache      DecisionCache
	logger     *slog.Logger
}

type Option func(*Guard)

// WithCache overrides the default in-memory decision cache.
func WithCache(cache DecisionCache) Option {
	return func(g *Guard) {
		g.cache = cache
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

func NewGuard(roles ports.RoleProvider, people ports.PersonAccessChecker, categories ports.CategoryAccessChecker, opts ...Option) *Guard {
	g := &Guard{
		roles:      roles,
		people:     people,
		categories: categories,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.cache == nil {
		g.cache = NewMemoryCache(defaultCacheTTL)
	}
	return g
}

// Roles resolves the role set of ident.
func (g *Guard) Roles(ctx context.Context, ident string) (models.Roles, error) {
	roles, err := g.roles.Roles(ctx, ident)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeIntegration, "failed to resolve roles")
	}
	return roles, nil
}

// CheckRead verifies ident may see cases about subject.
func (g *Guard) CheckRead(ctx context.Context, ident string, subject models.PartyID) error {
	if !subject.IsPerson() {
		return nil
	}
	decision, err := g.subjectDecision(ctx, ident, subject.Value)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		reason := decision.Reason
		if reason == "" {
			reason = "no access to the subject of the case"
		}
		return dErrors.New(dErrors.CodeForbidden, reason)
	}
	return nil
}

func (g *Guard) subjectDecision(ctx context.Context, ident, subject string) (ports.AccessDecision, error) {
	if cached, ok, err := g.cache.Get(ctx, subject, ident); err != nil {
		g.warn(ctx, "access cache read failed", err)
	} else if ok {
		return cached, nil
	}

	decision, err := g.people.CheckAccess(ctx, ident, subject)
	if err != nil {
		return ports.AccessDecision{}, dErrors.Wrap(err, dErrors.CodeIntegration, "failed to check subject access")
	}
	if err := g.cache.Put(ctx, subject, ident, decision); err != nil {
		g.warn(ctx, "access cache write failed", err)
	}
	return decision, nil
}

// CheckWrite verifies ident may mutate c: read access to the subject and being
// the assigned caseworker. Admins pass the assignment part.
func (g *Guard) CheckWrite(ctx context.Context, ident string, roles models.Roles, c *models.Case) error {
	if err := g.CheckRead(ctx, ident, c.Parties.Subject); err != nil {
		return err
	}
	if roles.Has(models.RoleAdmin) {
		return nil
	}
	if !c.IsAssigned() {
		return dErrors.New(dErrors.CodeForbidden, "case is not assigned; only the assigned caseworker may change it")
	}
	if !c.IsAssignedTo(ident) {
		return dErrors.New(dErrors.CodeForbidden, "only the assigned caseworker may change the case")
	}
	return nil
}

// CheckCategoryAccess verifies ident may work on category.
func (g *Guard) CheckCategoryAccess(ctx context.Context, ident, category string) error {
	ok, err := g.categories.HasCategoryAccess(ctx, ident, category)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeIntegration, "failed to check category access")
	}
	if !ok {
		return dErrors.Newf(dErrors.CodeForbidden, "%s is missing access to category %s", ident, category)
	}
	return nil
}

// InvalidateSubject drops cached decisions about subject.
func (g *Guard) InvalidateSubject(ctx context.Context, subject string) error {
	return g.cache.InvalidateSubject(ctx, subject)
}

// RefreshAll drops every cached decision.
func (g *Guard) RefreshAll(ctx context.Context) error {
	return g.cache.Flush(ctx)
}

func (g *Guard) warn(ctx context.Context, msg string, err error) {
	if g.logger != nil {
		g.logger.WarnContext(ctx, msg, "error", err)
	}
}

package service

import (
	"context"

	"kabal/internal/behandling/models"
	"kabal/internal/behandling/store"
	id "kabal/pkg/domain"
	dErrors "kabal/pkg/domain-errors"
	"kabal/pkg/requestcontext"
)

type ReviewerInput struct {
	CaseID id.CaseID
	// Ident is the new reviewer; "" removes the reviewer.
	Ident      string
	ActorIdent string
}

type FlowStateInput struct {
	CaseID     id.CaseID
	State      models.FlowState
	ActorIdent string
}

// reviewContext is what the permission matrices look at.
type reviewContext struct {
	roles    models.Roles
	assigned bool
}

func (s *Service) reviewPreamble(ctx context.Context, actorIdent string, c *models.Case) (reviewContext, error) {
	if err := c.EnsureMutable(); err != nil {
		return reviewContext{}, err
	}
	if err := s.guard.CheckRead(ctx, actorIdent, c.Parties.Subject); err != nil {
		return reviewContext{}, err
	}
	roles, err := s.guard.Roles(ctx, actorIdent)
	if err != nil {
		return reviewContext{}, err
	}
	return reviewContext{roles: roles, assigned: c.IsAssignedTo(actorIdent)}, nil
}

func forbidden(msg string) error {
	return dErrors.New(dErrors.CodeForbidden, msg)
}

// SetCoSignerReviewer sets or removes the medunderskriver. Removing the
// co-signer resets the flow to NOT_SENT.
func (s *Service) SetCoSignerReviewer(ctx context.Context, in ReviewerInput) (*models.Case, error) {
	if err := requireActor(in.ActorIdent); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "set_co_signer", in.CaseID, func(ctx context.Context, _ store.Store, c *models.Case) ([]models.Event, error) {
		rc, err := s.reviewPreamble(ctx, in.ActorIdent, c)
		if err != nil {
			return nil, err
		}
		if err := canSetCoSigner(rc, c, in.ActorIdent, in.Ident); err != nil {
			return nil, err
		}

		state := c.CoSigner.State()
		if in.Ident == "" {
			state = models.FlowNotSent
		}
		now := requestcontext.Now(ctx)
		previous := c.CoSigner.Ident
		c.ApplyCoSigner(in.Ident, state, in.ActorIdent, now)
		return []models.Event{coSignerEvent(c, in.ActorIdent, previous)}, nil
	})
}

func canSetCoSigner(rc reviewContext, c *models.Case, actorIdent, ident string) error {
	state := c.CoSigner.State()
	if rc.roles.Has(models.RoleSchedulingAllUnits) && !rc.assigned {
		if state != models.FlowSent {
			return forbidden("with " + string(models.RoleSchedulingAllUnits) + " the co-signer can only be changed while the case is sent to the co-signer")
		}
		if ident == "" {
			return forbidden("only the assigned caseworker may remove the co-signer")
		}
		return nil
	}
	if rc.assigned {
		return nil
	}
	if state == models.FlowSent && c.CoSigner.Ident == actorIdent {
		return nil
	}
	return forbidden("only the assigned caseworker or the current co-signer may change the co-signer")
}

// SetCoSignerFlowState moves the co-signer flow. The caseworker sends and
// retracts; the co-signer returns, or approves by setting NOT_SENT.
func (s *Service) SetCoSignerFlowState(ctx context.Context, in FlowStateInput) (*models.Case, error) {
	if err := requireActor(in.ActorIdent); err != nil {
		return nil, err
	}
	if !in.State.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "unknown flow state %s", in.State)
	}
	return s.mutate(ctx, "set_co_signer_flow_state", in.CaseID, func(ctx context.Context, _ store.Store, c *models.Case) ([]models.Event, error) {
		rc, err := s.reviewPreamble(ctx, in.ActorIdent, c)
		if err != nil {
			return nil, err
		}
		current := c.CoSigner.State()
		isReviewer := c.CoSigner.Ident != "" && c.CoSigner.Ident == in.ActorIdent

		switch in.State {
		case models.FlowReturned:
			if current != models.FlowSent {
				return nil, dErrors.New(dErrors.CodeBusinessRule, "only a case sent to the co-signer can be returned")
			}
			if !isReviewer {
				return nil, forbidden("only the co-signer may return the case")
			}
		case models.FlowSent:
			if !rc.assigned {
				return nil, forbidden("only the assigned caseworker may send the case to the co-signer")
			}
			if c.CoSigner.Ident == "" {
				return nil, dErrors.New(dErrors.CodeBusinessRule, "a co-signer must be set before the case is sent")
			}
		case models.FlowNotSent:
			if !rc.assigned && !(isReviewer && current == models.FlowSent) {
				return nil, forbidden("only the assigned caseworker or the co-signer may reset the co-signer flow")
			}
		}

		now := requestcontext.Now(ctx)
		c.ApplyCoSigner(c.CoSigner.Ident, in.State, in.ActorIdent, now)
		ev := coSignerEvent(c, in.ActorIdent, c.CoSigner.Ident)
		ev.Attributes["previous_flow_state"] = string(current)
		return []models.Event{ev}, nil
	})
}

func coSignerEvent(c *models.Case, actorIdent, previousIdent string) models.Event {
	last := c.CoSignerHistory[len(c.CoSignerHistory)-1]
	return models.NewEvent(models.EventCoSignerChanged, c, actorIdent, last.Timestamp, map[string]string{
		"co_signer_ident":          c.CoSigner.Ident,
		"previous_co_signer_ident": previousIdent,
		"flow_state":               string(c.CoSigner.State()),
	})
}

// SetLegalAdvisorReviewer sets or removes the ROL. The flow state is kept: a
// flow may be SENT without a reviewer until an advisor claims it.
func (s *Service) SetLegalAdvisorReviewer(ctx context.Context, in ReviewerInput) (*models.Case, error) {
	if err := requireActor(in.ActorIdent); err != nil {
		return nil, err
	}
	return s.mutate(ctx, "set_legal_advisor", in.CaseID, func(ctx context.Context, _ store.Store, c *models.Case) ([]models.Event, error) {
		rc, err := s.reviewPreamble(ctx, in.ActorIdent, c)
		if err != nil {
			return nil, err
		}
		if err := canSetLegalAdvisor(rc, c, in.ActorIdent, in.Ident); err != nil {
			return nil, err
		}

		now := requestcontext.Now(ctx)
		previous := c.LegalAdvisor.Ident
		c.ApplyLegalAdvisor(in.Ident, c.LegalAdvisor.State(), in.ActorIdent, now)
		return []models.Event{legalAdvisorEvent(c, in.ActorIdent, previous)}, nil
	})
}

// canSetLegalAdvisor is the ROL permission matrix.
func canSetLegalAdvisor(rc reviewContext, c *models.Case, actorIdent, ident string) error {
	state := c.LegalAdvisor.State()
	switch {
	case rc.roles.Has(models.RoleLegalAdvisor) && ident != "" && ident == actorIdent:
		if state == models.FlowReturned {
			return forbidden("a legal advisor cannot take a flow that has been returned")
		}
		return nil
	case rc.roles.Has(models.RoleSchedulingAllUnits) && !rc.assigned:
		if state != models.FlowSent {
			return forbidden("with " + string(models.RoleSchedulingAllUnits) + " the legal advisor can only be changed while the case is sent to the legal advisor")
		}
		return nil
	case rc.assigned:
		return nil
	case state == models.FlowSent && c.LegalAdvisor.Ident != "" && c.LegalAdvisor.Ident == actorIdent:
		return nil
	case state == models.FlowSent && c.LegalAdvisor.Ident == "" && rc.roles.HasAny(models.RoleLegalAdvisor, models.RoleLegalAdvisorLead):
		return nil
	}
	return forbidden("changing the legal advisor requires being the assigned caseworker, the legal advisor, or holding " +
		string(models.RoleLegalAdvisor) + " or " + string(models.RoleSchedulingAllUnits))
}

// SetLegalAdvisorFlowState moves the ROL flow. Leaving RETURNED clears the
// returned-at timestamp.
func (s *Service) SetLegalAdvisorFlowState(ctx context.Context, in FlowStateInput) (*models.Case, error) {
	if err := requireActor(in.ActorIdent); err != nil {
		return nil, err
	}
	if !in.State.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "unknown flow state %s", in.State)
	}
	return s.mutate(ctx, "set_legal_advisor_flow_state", in.CaseID, func(ctx context.Context, _ store.Store, c *models.Case) ([]models.Event, error) {
		rc, err := s.reviewPreamble(ctx, in.ActorIdent, c)
		if err != nil {
			return nil, err
		}
		current := c.LegalAdvisor.State()
		isReviewer := c.LegalAdvisor.Ident != "" && c.LegalAdvisor.Ident == in.ActorIdent
		scheduling := rc.roles.Has(models.RoleSchedulingAllUnits)

		switch in.State {
		case models.FlowReturned:
			if current != models.FlowSent {
				return nil, dErrors.New(dErrors.CodeBusinessRule, "only a case sent to the legal advisor can be returned")
			}
			if !isReviewer {
				return nil, forbidden("only the legal advisor may return the case")
			}
		case models.FlowSent:
			if !rc.assigned && !scheduling {
				return nil, forbidden("only the assigned caseworker may send the case to the legal advisor")
			}
		case models.FlowNotSent:
			if !rc.assigned && !(isReviewer && current == models.FlowSent) {
				return nil, forbidden("only the assigned caseworker or the legal advisor may reset the legal advisor flow")
			}
		}

		now := requestcontext.Now(ctx)
		c.ApplyLegalAdvisor(c.LegalAdvisor.Ident, in.State, in.ActorIdent, now)
		ev := legalAdvisorEvent(c, in.ActorIdent, c.LegalAdvisor.Ident)
		ev.Attributes["previous_flow_state"] = string(current)
		return []models.Event{ev}, nil
	})
}

func legalAdvisorEvent(c *models.Case, actorIdent, previousIdent string) models.Event {
	last := c.LegalAdvisorHistory[len(c.LegalAdvisorHistory)-1]
	return models.NewEvent(models.EventLegalAdvisorChanged, c, actorIdent, last.Timestamp, map[string]string{
		"legal_advisor_ident":          c.LegalAdvisor.Ident,
		"previous_legal_advisor_ident": previousIdent,
		"flow_state":                   string(c.LegalAdvisor.State()),
	})
}

package models

import (
	"time"

	id "kabal/pkg/domain"
	dErrors "kabal/pkg/domain-errors"
	platformstrings "kabal/pkg/platform/strings"
)

// The Apply* methods mutate the aggregate and append a history snapshot. They do
// not authorize; services call the matching Can* check (and the access guard) first.
//
// Every history set is seeded with the pre-change state the first time its
// dimension changes, so N recorded changes always reconstruct into N pairs.

// CanUnassign checks the state-level guards for fradeling.
func (c *Case) CanUnassign() error {
	if c.CoSigner.State() == FlowSent {
		return dErrors.New(dErrors.CodeBusinessRule, "cannot unassign while sent to co-signer")
	}
	return nil
}

// CanHold enforces that only assigned cases are put on hold.
func (c *Case) CanHold() error {
	if !c.IsAssigned() {
		return dErrors.New(dErrors.CodeBusinessRule, "case must be assigned to be put on hold")
	}
	return nil
}

// CanVoid enforces that a case is unassigned before it is voided.
func (c *Case) CanVoid() error {
	if c.IsAssigned() {
		return dErrors.New(dErrors.CodeBusinessRule, "case must be unassigned before it is voided")
	}
	return nil
}

func (c *Case) ApplyAssignment(caseworkerIdent, unit, actorIdent string, now time.Time) {
	c.seedAssignmentHistory()
	ts := nextTimestamp(c.AssignmentHistory, now)
	c.Assignment = &Assignment{
		CaseworkerIdent: caseworkerIdent,
		Unit:            unit,
		AssignedAt:      ts,
	}
	c.AssignmentHistory = append(c.AssignmentHistory, AssignmentSnapshot{
		CaseworkerIdent: caseworkerIdent,
		Unit:            unit,
		Timestamp:       ts,
		ActorIdent:      actorIdent,
	})
}

// ApplyUnassignment clears the assignment. changedLegalGrounds is the comma-joined
// list recorded for FEIL_HJEMMEL, "" otherwise.
func (c *Case) ApplyUnassignment(reason DeassignReason, changedLegalGrounds, actorIdent string, now time.Time) {
	c.seedAssignmentHistory()
	ts := nextTimestamp(c.AssignmentHistory, now)
	c.Assignment = nil
	c.AssignmentHistory = append(c.AssignmentHistory, AssignmentSnapshot{
		Timestamp:      ts,
		DeassignReason: reason,
		LegalGrounds:   changedLegalGrounds,
		ActorIdent:     actorIdent,
	})
}

func (c *Case) seedAssignmentHistory() {
	if len(c.AssignmentHistory) > 0 {
		return
	}
	seed := AssignmentSnapshot{
		Timestamp:    c.CreatedAt,
		LegalGrounds: c.JoinedLegalGrounds(),
	}
	if c.Assignment != nil {
		seed.CaseworkerIdent = c.Assignment.CaseworkerIdent
		seed.Unit = c.Assignment.Unit
		if !c.Assignment.AssignedAt.IsZero() {
			seed.Timestamp = c.Assignment.AssignedAt
		}
	}
	c.AssignmentHistory = append(c.AssignmentHistory, seed)
}

// ApplyHold sets the hold, or clears it when hold is nil.
func (c *Case) ApplyHold(hold *Hold, actorIdent string, now time.Time) {
	if len(c.HoldHistory) == 0 {
		c.HoldHistory = append(c.HoldHistory, HoldSnapshot{Hold: copyHold(c.Hold), Timestamp: c.CreatedAt})
	}
	ts := nextTimestamp(c.HoldHistory, now)
	c.Hold = copyHold(hold)
	c.HoldHistory = append(c.HoldHistory, HoldSnapshot{
		Hold:       copyHold(hold),
		Timestamp:  ts,
		ActorIdent: actorIdent,
	})
}

func copyHold(h *Hold) *Hold {
	if h == nil {
		return nil
	}
	v := *h
	return &v
}

func (c *Case) ApplyCoSigner(ident string, state FlowState, actorIdent string, now time.Time) {
	if len(c.CoSignerHistory) == 0 {
		c.CoSignerHistory = append(c.CoSignerHistory, CoSignerSnapshot{
			Ident:     c.CoSigner.Ident,
			FlowState: c.CoSigner.State(),
			Timestamp: c.CreatedAt,
		})
	}
	ts := nextTimestamp(c.CoSignerHistory, now)
	c.CoSigner = CoSigner{Ident: ident, FlowState: state}
	c.CoSignerHistory = append(c.CoSignerHistory, CoSignerSnapshot{
		Ident:      ident,
		FlowState:  state,
		Timestamp:  ts,
		ActorIdent: actorIdent,
	})
}

// ApplyLegalAdvisor sets the ROL ident and flow state. Entering RETURNED stamps
// ReturnedAt; any other state clears it.
func (c *Case) ApplyLegalAdvisor(ident string, state FlowState, actorIdent string, now time.Time) {
	if len(c.LegalAdvisorHistory) == 0 {
		c.LegalAdvisorHistory = append(c.LegalAdvisorHistory, LegalAdvisorSnapshot{
			Ident:     c.LegalAdvisor.Ident,
			FlowState: c.LegalAdvisor.State(),
			Timestamp: c.CreatedAt,
		})
	}
	ts := nextTimestamp(c.LegalAdvisorHistory, now)
	prev := c.LegalAdvisor.State()
	c.LegalAdvisor.Ident = ident
	c.LegalAdvisor.FlowState = state
	switch {
	case state != FlowReturned:
		c.LegalAdvisor.ReturnedAt = nil
	case prev != FlowReturned:
		returned := ts
		c.LegalAdvisor.ReturnedAt = &returned
	}
	c.LegalAdvisorHistory = append(c.LegalAdvisorHistory, LegalAdvisorSnapshot{
		Ident:      ident,
		FlowState:  state,
		Timestamp:  ts,
		ActorIdent: actorIdent,
	})
}

// ApplyVoid sets the terminal feilregistrering marker.
func (c *Case) ApplyVoid(actorIdent, reason, sourceSystem string, now time.Time) {
	c.Void = &VoidMarker{
		ActorIdent:   actorIdent,
		Timestamp:    now,
		Reason:       reason,
		SourceSystem: sourceSystem,
	}
}

// ApplyCompletion sets the terminal completion marker. Completion is read from
// the marker; no history entry is appended.
func (c *Case) ApplyCompletion(actorIdent string, now time.Time) {
	c.Completion = &Completion{CompletedAt: now, ActorIdent: actorIdent}
}

// SetLegalGrounds replaces the legal grounds, dropping duplicates and keeping
// order. The grounds in force before the first rewrite are kept.
func (c *Case) SetLegalGrounds(grounds []string) {
	if c.OriginalLegalGrounds == nil {
		c.OriginalLegalGrounds = append([]string{}, c.LegalGrounds...)
	}
	c.LegalGrounds = NormalizeLegalGrounds(grounds)
}

// NormalizeLegalGrounds trims entries and drops blanks and duplicates, keeping order.
func NormalizeLegalGrounds(grounds []string) []string {
	return platformstrings.DedupeAndTrim(grounds)
}

// RecordSuccessor links the case spawned after a tribunal reversal.
func (c *Case) RecordSuccessor(successor id.CaseID) {
	c.SuccessorCaseID = &successor
}

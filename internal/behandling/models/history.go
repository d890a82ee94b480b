package models

import "time"

// Dimension names one append-only history log of a case.
type Dimension string

const (
	DimensionAssignment     Dimension = "tildeling"
	DimensionCoSigner       Dimension = "medunderskriver"
	DimensionLegalAdvisor   Dimension = "rol"
	DimensionHold           Dimension = "satt_paa_vent"
	DimensionClaimant       Dimension = "klager"
	DimensionRepresentative Dimension = "fullmektig"
)

// Snapshot is implemented by every history entry. Entries record the state of
// their dimension after a change.
type Snapshot interface {
	At() time.Time
}

type AssignmentSnapshot struct {
	CaseworkerIdent string         `json:"caseworker_ident,omitempty"`
	Unit            string         `json:"unit,omitempty"`
	Timestamp       time.Time      `json:"timestamp"`
	DeassignReason  DeassignReason `json:"deassign_reason,omitempty"`
	// LegalGrounds is the comma-joined legal grounds at the time of the change.
	LegalGrounds string `json:"legal_grounds,omitempty"`
	ActorIdent   string `json:"actor_ident,omitempty"`
}

func (s AssignmentSnapshot) At() time.Time { return s.Timestamp }

type CoSignerSnapshot struct {
	Ident      string    `json:"ident,omitempty"`
	FlowState  FlowState `json:"flow_state"`
	Timestamp  time.Time `json:"timestamp"`
	ActorIdent string    `json:"actor_ident,omitempty"`
}

func (s CoSignerSnapshot) At() time.Time { return s.Timestamp }

type LegalAdvisorSnapshot struct {
	Ident      string    `json:"ident,omitempty"`
	FlowState  FlowState `json:"flow_state"`
	Timestamp  time.Time `json:"timestamp"`
	ActorIdent string    `json:"actor_ident,omitempty"`
}

func (s LegalAdvisorSnapshot) At() time.Time { return s.Timestamp }

// HoldSnapshot records the hold after a change; Hold is nil when it was cleared.
type HoldSnapshot struct {
	Hold       *Hold     `json:"hold,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	ActorIdent string    `json:"actor_ident,omitempty"`
}

func (s HoldSnapshot) At() time.Time { return s.Timestamp }

// PartySnapshot records a claimant or representative change.
type PartySnapshot struct {
	Party      *PartyID  `json:"party,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	ActorIdent string    `json:"actor_ident,omitempty"`
}

func (s PartySnapshot) At() time.Time { return s.Timestamp }

// historyGranularity is the minimum spacing enforced between consecutive entries.
const historyGranularity = time.Microsecond

// nextTimestamp keeps a history set strictly increasing even when the clock
// (or a request-scoped time) does not advance between two appends.
func nextTimestamp[S Snapshot](history []S, now time.Time) time.Time {
	if len(history) == 0 {
		return now
	}
	last := history[len(history)-1].At()
	if !now.After(last) {
		return last.Add(historyGranularity)
	}
	return now
}

// Package history turns append-only snapshot sets into (previous, current)
// pairs for audit display. It is pure: no writes, no permission checks.
package history

import (
	"slices"
	"time"

	"kabal/internal/behandling/models"
)

// Event pairs a snapshot with the one before it.
type Event[S models.Snapshot] struct {
	Previous S `json:"previous"`
	Current  S `json:"current"`
	// VirtualPrevious is true when Previous was synthesized from the case creation time.
	VirtualPrevious bool `json:"virtual_previous"`
}

// Timestamp is the time of the change the event describes.
func (e Event[S]) Timestamp() time.Time { return e.Current.At() }

// Pairs sorts snapshots ascending and pairs consecutive entries. A set with
// exactly one entry gets virtual prepended first; an empty set yields no pairs.
func Pairs[S models.Snapshot](snapshots []S, virtual S) []Event[S] {
	if len(snapshots) == 0 {
		return nil
	}
	sorted := slices.Clone(snapshots)
	slices.SortStableFunc(sorted, func(a, b S) int {
		return a.At().Compare(b.At())
	})

	synthesized := false
	if len(sorted) == 1 {
		sorted = append([]S{virtual}, sorted...)
		synthesized = true
	}

	events := make([]Event[S], 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		events = append(events, Event[S]{
			Previous:        sorted[i-1],
			Current:         sorted[i],
			VirtualPrevious: synthesized && i == 1,
		})
	}
	return events
}

// Assignment reconstructs tildeling history. The virtual entry carries the
// case's original legal grounds.
func Assignment(snapshots []models.AssignmentSnapshot, createdAt time.Time, originalLegalGrounds string) []Event[models.AssignmentSnapshot] {
	return Pairs(snapshots, models.AssignmentSnapshot{
		Timestamp:    createdAt,
		LegalGrounds: originalLegalGrounds,
	})
}

func CoSigner(snapshots []models.CoSignerSnapshot, createdAt time.Time) []Event[models.CoSignerSnapshot] {
	return Pairs(snapshots, models.CoSignerSnapshot{Timestamp: createdAt, FlowState: models.FlowNotSent})
}

func LegalAdvisor(snapshots []models.LegalAdvisorSnapshot, createdAt time.Time) []Event[models.LegalAdvisorSnapshot] {
	return Pairs(snapshots, models.LegalAdvisorSnapshot{Timestamp: createdAt, FlowState: models.FlowNotSent})
}

func Hold(snapshots []models.HoldSnapshot, createdAt time.Time) []Event[models.HoldSnapshot] {
	return Pairs(snapshots, models.HoldSnapshot{Timestamp: createdAt})
}

// Party reconstructs claimant or representative history.
func Party(snapshots []models.PartySnapshot, createdAt time.Time) []Event[models.PartySnapshot] {
	return Pairs(snapshots, models.PartySnapshot{Timestamp: createdAt})
}

// TerminalSnapshot is the view of a void or completion marker.
type TerminalSnapshot struct {
	Timestamp  time.Time `json:"timestamp"`
	ActorIdent string    `json:"actor_ident,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	Present    bool      `json:"present"`
}

func (s TerminalSnapshot) At() time.Time { return s.Timestamp }

// Void yields a single pair when the case is voided, paired against creation.
func Void(marker *models.VoidMarker, createdAt time.Time) []Event[TerminalSnapshot] {
	if marker == nil {
		return nil
	}
	return terminal(createdAt, TerminalSnapshot{
		Timestamp:  marker.Timestamp,
		ActorIdent: marker.ActorIdent,
		Reason:     marker.Reason,
		Present:    true,
	})
}

// Completion yields a single pair when the case is completed.
func Completion(marker *models.Completion, createdAt time.Time) []Event[TerminalSnapshot] {
	if marker == nil {
		return nil
	}
	return terminal(createdAt, TerminalSnapshot{
		Timestamp:  marker.CompletedAt,
		ActorIdent: marker.ActorIdent,
		Present:    true,
	})
}

func terminal(createdAt time.Time, current TerminalSnapshot) []Event[TerminalSnapshot] {
	return []Event[TerminalSnapshot]{{
		Previous:        TerminalSnapshot{Timestamp: createdAt},
		Current:         current,
		VirtualPrevious: true,
	}}
}

// CaseHistory is the full audit view of a case.
type CaseHistory struct {
	Assignment     []Event[models.AssignmentSnapshot]   `json:"tildeling"`
	CoSigner       []Event[models.CoSignerSnapshot]     `json:"medunderskriver"`
	LegalAdvisor   []Event[models.LegalAdvisorSnapshot] `json:"rol"`
	Hold           []Event[models.HoldSnapshot]         `json:"satt_paa_vent"`
	Claimant       []Event[models.PartySnapshot]        `json:"klager"`
	Representative []Event[models.PartySnapshot]        `json:"fullmektig"`
	Void           []Event[TerminalSnapshot]            `json:"feilregistrering"`
	Completion     []Event[TerminalSnapshot]            `json:"ferdigstilling"`
}

// Reconstruct builds every dimension of c's history.
func Reconstruct(c *models.Case) CaseHistory {
	return CaseHistory{
		Assignment:     Assignment(c.AssignmentHistory, c.CreatedAt, c.OriginalJoinedLegalGrounds()),
		CoSigner:       CoSigner(c.CoSignerHistory, c.CreatedAt),
		LegalAdvisor:   LegalAdvisor(c.LegalAdvisorHistory, c.CreatedAt),
		Hold:           Hold(c.HoldHistory, c.CreatedAt),
		Claimant:       Party(c.ClaimantHistory, c.CreatedAt),
		Representative: Party(c.RepresentativeHistory, c.CreatedAt),
		Void:           Void(c.Void, c.CreatedAt),
		Completion:     Completion(c.Completion, c.CreatedAt),
	}
}

package models

import (
	"slices"
	"strings"
	"time"

	id "kabal/pkg/domain"
	dErrors "kabal/pkg/domain-errors"
)

// Type discriminates the case variants. Type-specific fields live in optional
// payload structs on Case (Tribunal, FirstInstanceReceivedAt).
type Type string

const (
	TypeComplaint                  Type = "KLAGE"
	TypeAppeal                     Type = "ANKE"
	TypeAppealToTribunal           Type = "ANKE_I_TRYGDERETTEN"
	TypeReopeningRequest           Type = "OMGJOERINGSKRAV"
	TypeReopeningRequestAtTribunal Type = "BEGJAERING_OM_GJENOPPTAK_I_TRYGDERETTEN"
	TypePostTribunalCase           Type = "BEHANDLING_ETTER_TRYGDERETTEN_OPPHEVET"
)

var validTypes = map[Type]bool{
	TypeComplaint:                  true,
	TypeAppeal:                     true,
	TypeAppealToTribunal:           true,
	TypeReopeningRequest:           true,
	TypeReopeningRequestAtTribunal: true,
	TypePostTribunalCase:           true,
}

func (t Type) IsValid() bool { return validTypes[t] }

// IsTribunal reports whether the case is pending at Trygderetten and carries Tribunal details.
func (t Type) IsTribunal() bool {
	return t == TypeAppealToTribunal || t == TypeReopeningRequestAtTribunal
}

func (t Type) String() string { return string(t) }

type PartyKind string

const (
	PartyKindPerson       PartyKind = "PERSON"
	PartyKindOrganization PartyKind = "ORGANIZATION"
)

// PartyID identifies a person (fødselsnummer) or an organization (orgnr).
type PartyID struct {
	Kind  PartyKind `json:"kind"`
	Value string    `json:"value"`
}

func (p PartyID) IsPerson() bool { return p.Kind == PartyKindPerson }

// Parties groups the people involved in a case. Subject may equal Claimant.
type Parties struct {
	Claimant       PartyID  `json:"claimant"`
	Subject        PartyID  `json:"subject"`
	Representative *PartyID `json:"representative,omitempty"`
}

type Assignment struct {
	CaseworkerIdent string    `json:"caseworker_ident"`
	Unit            string    `json:"unit"`
	AssignedAt      time.Time `json:"assigned_at"`
}

// Hold is the sattPaaVent period. From and To are calendar dates.
type Hold struct {
	From   time.Time `json:"from"`
	To     time.Time `json:"to"`
	Reason string    `json:"reason"`
}

type VoidMarker struct {
	ActorIdent   string    `json:"actor_ident"`
	Timestamp    time.Time `json:"timestamp"`
	Reason       string    `json:"reason"`
	SourceSystem string    `json:"source_system"`
}

type Completion struct {
	CompletedAt time.Time `json:"completed_at"`
	ActorIdent  string    `json:"actor_ident"`
}

// DocumentRef is unique by the (JournalpostID, DocumentInfoID) pair.
type DocumentRef struct {
	JournalpostID  string `json:"journalpost_id"`
	DocumentInfoID string `json:"document_info_id"`
}

// TribunalDetails is the payload for cases pending at Trygderetten.
type TribunalDetails struct {
	SentAt             *time.Time `json:"sent_at,omitempty"`
	DecisionReceivedAt *time.Time `json:"decision_received_at,omitempty"`
}

// Case is the Behandling aggregate root.
//
// Invariants:
//   - Void != nil implies the case was unassigned when it was voided
//   - Hold != nil implies Assignment != nil
//   - history slices are append-only and strictly ordered by timestamp
//   - Void and Completion are terminal; the only exception is the reopen path of a
//     reversed AppealToTribunal, which may run on a completed case
type Case struct {
	ID              id.CaseID `json:"id"`
	Type            Type      `json:"type"`
	Category        string    `json:"category"`
	SourceSystem    string    `json:"source_system"`
	SourceReference string    `json:"source_reference"`
	Parties         Parties   `json:"parties"`

	CreatedAt               time.Time  `json:"created_at"`
	ReceivedAt              time.Time  `json:"received_at"`
	FirstInstanceReceivedAt *time.Time `json:"first_instance_received_at,omitempty"`
	Deadline                *time.Time `json:"deadline,omitempty"`

	LegalGrounds []string `json:"legal_grounds"`
	// OriginalLegalGrounds is captured on the first rewrite of LegalGrounds; nil
	// means the grounds were never rewritten.
	OriginalLegalGrounds   []string `json:"original_legal_grounds"`
	RegisteredLegalGrounds []string `json:"registered_legal_grounds"`

	Assignment        *Assignment          `json:"assignment,omitempty"`
	AssignmentHistory []AssignmentSnapshot `json:"-"`

	CoSigner        CoSigner           `json:"co_signer"`
	CoSignerHistory []CoSignerSnapshot `json:"-"`

	LegalAdvisor        LegalAdvisor           `json:"legal_advisor"`
	LegalAdvisorHistory []LegalAdvisorSnapshot `json:"-"`

	Hold        *Hold          `json:"hold,omitempty"`
	HoldHistory []HoldSnapshot `json:"-"`

	ClaimantHistory       []PartySnapshot `json:"-"`
	RepresentativeHistory []PartySnapshot `json:"-"`

	Void       *VoidMarker `json:"void,omitempty"`
	Completion *Completion `json:"completion,omitempty"`

	Outcome       Outcome   `json:"outcome,omitempty"`
	ExtraOutcomes []Outcome `json:"extra_outcomes,omitempty"`

	Documents []DocumentRef `json:"documents,omitempty"`

	Tribunal        *TribunalDetails `json:"tribunal,omitempty"`
	SuccessorCaseID *id.CaseID       `json:"successor_case_id,omitempty"`
}

func (c *Case) IsVoided() bool    { return c.Void != nil }
func (c *Case) IsCompleted() bool { return c.Completion != nil }
func (c *Case) IsAssigned() bool  { return c.Assignment != nil }
func (c *Case) IsOnHold() bool    { return c.Hold != nil }

// IsAssignedTo reports whether ident is the current caseworker.
func (c *Case) IsAssignedTo(ident string) bool {
	return c.Assignment != nil && ident != "" && c.Assignment.CaseworkerIdent == ident
}

// AssignedIdent returns the caseworker ident or "" when unassigned.
func (c *Case) AssignedIdent() string {
	if c.Assignment == nil {
		return ""
	}
	return c.Assignment.CaseworkerIdent
}

// EnsureMutable rejects mutations on voided or completed cases.
func (c *Case) EnsureMutable() error {
	if c.IsVoided() {
		return dErrors.New(dErrors.CodeCaseTerminal, "case is voided")
	}
	if c.IsCompleted() {
		return dErrors.New(dErrors.CodeCaseTerminal, "case is completed")
	}
	return nil
}

// JoinedLegalGrounds returns the legal grounds as a comma-joined list.
func (c *Case) JoinedLegalGrounds() string {
	return JoinLegalGrounds(c.LegalGrounds)
}

// OriginalJoinedLegalGrounds is the comma-joined grounds the case had before
// its first rewrite.
func (c *Case) OriginalJoinedLegalGrounds() string {
	if c.OriginalLegalGrounds != nil {
		return JoinLegalGrounds(c.OriginalLegalGrounds)
	}
	return c.JoinedLegalGrounds()
}

// JoinLegalGrounds serializes a legal-grounds set the way history snapshots store it.
func JoinLegalGrounds(grounds []string) string {
	return strings.Join(grounds, ",")
}

// HasDocument reports whether ref is already attached.
func (c *Case) HasDocument(ref DocumentRef) bool {
	return slices.Contains(c.Documents, ref)
}

// Clone returns a deep copy so stores can hand out values callers may mutate freely.
func (c *Case) Clone() *Case {
	if c == nil {
		return nil
	}
	out := *c
	out.FirstInstanceReceivedAt = cloneTime(c.FirstInstanceReceivedAt)
	out.Deadline = cloneTime(c.Deadline)
	out.LegalGrounds = slices.Clone(c.LegalGrounds)
	out.OriginalLegalGrounds = slices.Clone(c.OriginalLegalGrounds)
	out.RegisteredLegalGrounds = slices.Clone(c.RegisteredLegalGrounds)
	if c.Parties.Representative != nil {
		rep := *c.Parties.Representative
		out.Parties.Representative = &rep
	}
	if c.Assignment != nil {
		a := *c.Assignment
		out.Assignment = &a
	}
	out.AssignmentHistory = slices.Clone(c.AssignmentHistory)
	out.CoSignerHistory = slices.Clone(c.CoSignerHistory)
	out.LegalAdvisor.ReturnedAt = cloneTime(c.LegalAdvisor.ReturnedAt)
	out.LegalAdvisorHistory = slices.Clone(c.LegalAdvisorHistory)
	if c.Hold != nil {
		h := *c.Hold
		out.Hold = &h
	}
	out.HoldHistory = make([]HoldSnapshot, len(c.HoldHistory))
	for i, s := range c.HoldHistory {
		out.HoldHistory[i] = s
		if s.Hold != nil {
			h := *s.Hold
			out.HoldHistory[i].Hold = &h
		}
	}
	out.ClaimantHistory = slices.Clone(c.ClaimantHistory)
	out.RepresentativeHistory = slices.Clone(c.RepresentativeHistory)
	if c.Void != nil {
		v := *c.Void
		out.Void = &v
	}
	if c.Completion != nil {
		cm := *c.Completion
		out.Completion = &cm
	}
	out.ExtraOutcomes = slices.Clone(c.ExtraOutcomes)
	out.Documents = slices.Clone(c.Documents)
	if c.Tribunal != nil {
		out.Tribunal = &TribunalDetails{
			SentAt:             cloneTime(c.Tribunal.SentAt),
			DecisionReceivedAt: cloneTime(c.Tribunal.DecisionReceivedAt),
		}
	}
	if c.SuccessorCaseID != nil {
		s := *c.SuccessorCaseID
		out.SuccessorCaseID = &s
	}
	return &out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

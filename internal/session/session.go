// Package session owns the state of one open dispute: the recommended
// evidence fields and the cover-letter draft, recomputed on every input change.
//
// A Session is not safe for concurrent use. Callers drive it from a single
// update loop (the TUI program or one websocket connection).
package session

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/sprite-ai/rebuttal/internal/evidence"
	"github.com/sprite-ai/rebuttal/internal/letter"
	"github.com/sprite-ai/rebuttal/internal/model"
)

// ErrUnknownField is returned when evidence is set for a key outside the vocabulary.
var ErrUnknownField = errors.New("unknown evidence field")

// Options configure a new session.
type Options struct {
	Case          model.DisputeCase
	Account       model.AccountInfo
	MatrixEnabled bool
	Today         time.Time
}

// Session is the recompute loop for one dispute.
type Session struct {
	c             model.DisputeCase
	account       model.AccountInfo
	matrixEnabled bool
	today         time.Time

	fields    evidence.FieldSet
	candidate string
	draft     letter.Draft
}

// Snapshot is the externally visible state of a session.
type Snapshot struct {
	CaseID          string                `json:"case_id"`
	Reason          model.Reason          `json:"reason"`
	ProductType     model.ProductType     `json:"product_type"`
	RefundStatus    model.RefundStatus    `json:"refund_status"`
	DuplicateStatus model.DuplicateStatus `json:"duplicate_status"`
	BankName        string                `json:"bank_name"`
	Fields          evidence.FieldSet     `json:"fields"`
	Missing         []evidence.Key        `json:"missing"`
	Letter          letter.Draft          `json:"letter"`
}

// New opens a session. A cover letter already saved on the case is kept and
// flagged as edited when it no longer matches what would be generated.
func New(opts Options) *Session {
	s := &Session{
		c:             opts.Case,
		account:       opts.Account,
		matrixEnabled: opts.MatrixEnabled,
		today:         opts.Today,
	}
	s.c.Evidence = maps.Clone(opts.Case.Evidence)
	if s.c.Evidence == nil {
		s.c.Evidence = map[string]any{}
	}
	if s.today.IsZero() {
		s.today = time.Now()
	}

	s.fields = evidence.Recommend(s.c, s.matrixEnabled)
	s.candidate = s.compose()
	s.draft = letter.Load(s.c.CoverLetter, s.candidate)
	return s
}

func (s *Session) compose() string {
	return letter.Compose(letter.Input{
		Case:            s.c,
		Account:         s.account,
		BankName:        s.c.BankName,
		RefundStatus:    s.c.RefundStatus,
		DuplicateStatus: s.c.DuplicateStatus,
		Today:           s.today,
	})
}

// recompute refreshes the field set and candidate after an input change and
// replaces the displayed letter unless the merchant has edited it.
func (s *Session) recompute() {
	previous := s.candidate
	s.fields = evidence.Recommend(s.c, s.matrixEnabled)
	s.candidate = s.compose()
	s.draft = letter.ShouldAutoRegenerate(previous, s.draft.Text, s.candidate, s.draft.ManuallyEdited)
}

// SetProductType changes the declared product type.
func (s *Session) SetProductType(p model.ProductType) {
	s.c.ProductType = p
	s.recompute()
}

// SetRefundStatus changes the credit_not_processed sub-status.
func (s *Session) SetRefundStatus(r model.RefundStatus) {
	s.c.RefundStatus = r
	s.recompute()
}

// SetDuplicateStatus changes the duplicate sub-status.
func (s *Session) SetDuplicateStatus(d model.DuplicateStatus) {
	s.c.DuplicateStatus = d
	s.recompute()
}

// SetBankName changes the bank named in the letter. An empty name clears it.
func (s *Session) SetBankName(name string) {
	if name == "" {
		s.c.BankName = nil
	} else {
		s.c.BankName = &name
	}
	s.recompute()
}

// SetAccount replaces the merchant details used in the letter header.
func (s *Session) SetAccount(a model.AccountInfo) {
	s.account = a
	s.recompute()
}

// SetEvidence records a completed upload or text value. A nil value removes it.
func (s *Session) SetEvidence(key string, value any) error {
	if !evidence.IsKnown(key) {
		return fmt.Errorf("%w: %q", ErrUnknownField, key)
	}
	if value == nil {
		delete(s.c.Evidence, key)
	} else {
		s.c.Evidence[key] = value
	}
	s.recompute()
	return nil
}

// EditLetter applies a direct edit from the merchant.
func (s *Session) EditLetter(text string) {
	s.draft = letter.Edit(text, s.candidate)
}

// Letter returns the displayed draft.
func (s *Session) Letter() letter.Draft {
	return s.draft
}

// Fields returns the current recommendation.
func (s *Session) Fields() evidence.FieldSet {
	return s.fields
}

// Case returns a copy of the working dispute case.
func (s *Session) Case() model.DisputeCase {
	c := s.c
	c.Evidence = maps.Clone(s.c.Evidence)
	return c
}

// Snapshot returns the state a renderer needs.
func (s *Session) Snapshot() Snapshot {
	bank := ""
	if s.c.BankName != nil {
		bank = *s.c.BankName
	}
	return Snapshot{
		CaseID:          s.c.ID,
		Reason:          s.c.Reason.Normalize(),
		ProductType:     s.c.ProductType,
		RefundStatus:    s.c.RefundStatus,
		DuplicateStatus: s.c.DuplicateStatus,
		BankName:        bank,
		Fields:          s.fields,
		Missing:         evidence.Missing(s.fields, s.c),
		Letter:          s.draft,
	}
}

// Save returns the case as it should be written back to the dispute store,
// with the displayed letter persisted verbatim into the free-text evidence field.
func (s *Session) Save() model.DisputeCase {
	c := s.Case()
	c.CoverLetter = s.draft.Text
	c.Evidence[string(evidence.KeyUncategorizedText)] = s.draft.Text
	return c
}

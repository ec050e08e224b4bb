package session

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sprite-ai/rebuttal/internal/evidence"
	"github.com/sprite-ai/rebuttal/internal/letter"
	"github.com/sprite-ai/rebuttal/internal/model"
)

var today = time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)

func newTestSession(c model.DisputeCase, matrix bool) *Session {
	return New(Options{
		Case:          c,
		Account:       model.AccountInfo{Name: "Acme Outfitters"},
		MatrixEnabled: matrix,
		Today:         today,
	})
}

func TestNewComputesRecommendationAndLetter(t *testing.T) {
	s := newTestSession(model.DisputeCase{ID: "dp_1", Reason: model.ReasonProductNotReceived}, false)

	snap := s.Snapshot()
	if snap.CaseID != "dp_1" {
		t.Errorf("CaseID = %q", snap.CaseID)
	}
	if len(snap.Fields) == 0 {
		t.Fatal("expected recommended fields")
	}
	if snap.Letter.ManuallyEdited {
		t.Error("fresh letter should not be marked edited")
	}
	if !strings.Contains(snap.Letter.Text, "Case #dp_1") {
		t.Errorf("letter missing case number:\n%s", snap.Letter.Text)
	}
	if len(snap.Missing) != len(snap.Fields) {
		t.Errorf("missing = %v, want every field missing", snap.Missing)
	}
}

func TestNewDoesNotAliasCallerEvidence(t *testing.T) {
	ev := map[string]any{"receipt": "file_1"}
	s := newTestSession(model.DisputeCase{Reason: model.ReasonGeneral, Evidence: ev}, false)

	if err := s.SetEvidence("customer_communication", "file_2"); err != nil {
		t.Fatal(err)
	}
	if _, ok := ev["customer_communication"]; ok {
		t.Error("caller evidence map was mutated")
	}
}

func TestProductTypeChangeRegeneratesUneditedLetter(t *testing.T) {
	s := newTestSession(model.DisputeCase{Reason: model.ReasonDuplicate}, true)
	before := s.Fields()

	s.SetProductType(model.ProductBookingReservation)
	s.SetDuplicateStatus(model.IsDuplicate)

	if slicesEqual(before.Keys(), s.Fields().Keys()) {
		t.Errorf("fields did not change: %v", s.Fields().Keys())
	}
	want := []evidence.Key{evidence.KeyReceipt, evidence.KeyUncategorizedFile, evidence.KeyRefundPolicy}
	if !slicesEqual(s.Fields().Keys(), want) {
		t.Errorf("fields = %v, want %v", s.Fields().Keys(), want)
	}
	if s.Letter().ManuallyEdited {
		t.Error("letter should still be generated")
	}
	if !strings.Contains(s.Letter().Text, "refunded in full") {
		t.Errorf("letter was not regenerated for is_duplicate:\n%s", s.Letter().Text)
	}
}

func TestManualEditSurvivesInputChanges(t *testing.T) {
	s := newTestSession(model.DisputeCase{Reason: model.ReasonCreditNotProcessed}, false)

	s.EditLetter("My own words.")
	s.SetBankName("First Bank")
	s.SetRefundStatus(model.RefundNotOwed)
	if err := s.SetEvidence("receipt", "file_r"); err != nil {
		t.Fatal(err)
	}

	got := s.Letter()
	if got.Text != "My own words." || !got.ManuallyEdited {
		t.Errorf("edited letter was overwritten: %+v", got)
	}
}

func TestClearingLetterResumesGeneration(t *testing.T) {
	s := newTestSession(model.DisputeCase{Reason: model.ReasonGeneral}, false)
	s.EditLetter("custom")
	s.EditLetter("")

	if s.Letter().ManuallyEdited {
		t.Error("cleared letter should reset to generated")
	}
	s.SetBankName("First Bank")
	if !strings.Contains(s.Letter().Text, "To: First Bank") {
		t.Errorf("letter did not pick up bank name:\n%s", s.Letter().Text)
	}
}

func TestEditMatchingCandidateIsNotManual(t *testing.T) {
	s := newTestSession(model.DisputeCase{Reason: model.ReasonGeneral}, false)
	s.EditLetter(s.Letter().Text)
	if s.Letter().ManuallyEdited {
		t.Error("re-entering the generated text should not count as an edit")
	}
}

func TestStoredLetterIsKept(t *testing.T) {
	s := newTestSession(model.DisputeCase{Reason: model.ReasonGeneral, CoverLetter: "Saved earlier."}, false)

	if got := s.Letter(); got.Text != "Saved earlier." || !got.ManuallyEdited {
		t.Fatalf("Letter() = %+v", got)
	}
	s.SetBankName("Other Bank")
	if s.Letter().Text != "Saved earlier." {
		t.Error("stored letter replaced by a bank change")
	}
}

func TestSetEvidenceUnknownField(t *testing.T) {
	s := newTestSession(model.DisputeCase{}, false)
	err := s.SetEvidence("not_a_field", "x")
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("err = %v, want ErrUnknownField", err)
	}
}

func TestSetEvidenceUpdatesMissing(t *testing.T) {
	s := newTestSession(model.DisputeCase{Reason: model.ReasonGeneral}, false)
	if err := s.SetEvidence("receipt", "file_r"); err != nil {
		t.Fatal(err)
	}
	for _, k := range s.Snapshot().Missing {
		if k == evidence.KeyReceipt {
			t.Error("receipt still reported missing")
		}
	}
	if !strings.Contains(s.Letter().Text, "(Attachment A)") || !strings.Contains(s.Letter().Text, "Order receipt") {
		t.Errorf("attachment not listed:\n%s", s.Letter().Text)
	}

	if err := s.SetEvidence("receipt", nil); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Case().Evidence["receipt"]; ok {
		t.Error("nil value should remove evidence")
	}
}

func TestBankNameClear(t *testing.T) {
	s := newTestSession(model.DisputeCase{}, false)
	s.SetBankName("First Bank")
	s.SetBankName("")
	if s.Case().BankName != nil {
		t.Error("empty bank name should clear it")
	}
	if !strings.Contains(s.Letter().Text, letter.PlaceholderBank) {
		t.Error("bank placeholder missing after clear")
	}
}

func TestSetAccountRegenerates(t *testing.T) {
	s := newTestSession(model.DisputeCase{}, false)
	s.SetAccount(model.AccountInfo{Name: "New Name LLC"})
	if !strings.HasSuffix(s.Letter().Text, "Thank you,\nNew Name LLC") {
		t.Errorf("closing not updated:\n%s", s.Letter().Text)
	}
}

func TestSavePersistsLetter(t *testing.T) {
	s := newTestSession(model.DisputeCase{ID: "dp_9", Reason: model.ReasonFraudulent}, false)
	s.EditLetter("Final text.")

	saved := s.Save()
	if saved.CoverLetter != "Final text." {
		t.Errorf("CoverLetter = %q", saved.CoverLetter)
	}
	if saved.Evidence["uncategorized_text"] != "Final text." {
		t.Errorf("uncategorized_text = %v", saved.Evidence["uncategorized_text"])
	}
	if _, ok := s.Case().Evidence["uncategorized_text"]; ok {
		t.Error("Save should not mutate the working case")
	}

	reopened := newTestSession(saved, false)
	if reopened.Letter().Text != "Final text." {
		t.Errorf("reopened letter = %q", reopened.Letter().Text)
	}
}

func TestZeroTodayUsesClock(t *testing.T) {
	s := New(Options{})
	if s.today.IsZero() {
		t.Error("today should default to the current time")
	}
}

func slicesEqual(a, b []evidence.Key) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

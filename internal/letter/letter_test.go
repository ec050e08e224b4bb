package letter

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/sprite-ai/rebuttal/internal/evidence"
	"github.com/sprite-ai/rebuttal/internal/model"
)

var testToday = time.Date(2026, time.March, 4, 9, 30, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func testAccount() model.AccountInfo {
	return model.AccountInfo{
		Name: "Acme Outfitters",
		Address: model.Address{
			Line1:      "1 Market St",
			Line2:      "Suite 400",
			City:       "San Francisco",
			State:      "CA",
			PostalCode: "94105",
			Country:    "US",
		},
		SupportEmail: "help@acme.test",
		SupportPhone: "+1 555 0100",
	}
}

func fraudCase() model.DisputeCase {
	return model.DisputeCase{
		ID:       "dp_123",
		Reason:   model.ReasonFraudulent,
		Amount:   ptr(int64(4599)),
		Currency: "usd",
		Charge: model.Charge{
			ID:             "ch_456",
			Created:        time.Date(2026, time.January, 10, 12, 0, 0, 0, time.UTC),
			BillingDetails: model.BillingDetails{Name: "John Doe"},
			LineItems: []model.LineItem{
				{Description: "Trail boots", Quantity: 1},
				{Description: "Wool socks", Quantity: 2},
			},
		},
		Evidence: map[string]any{
			"receipt":       "file_receipt",
			"shipping_date": "2026-01-12",
		},
	}
}

// --- Attachments ---

func TestCompileAttachmentsPlaceholder(t *testing.T) {
	for _, reason := range model.Reasons {
		got := CompileAttachments(model.DisputeCase{Reason: reason, Evidence: map[string]any{}})
		want := "• <Attachment description> (Attachment A)\n• <Attachment description> (Attachment B)"
		if got != want {
			t.Errorf("%s: got %q", reason, got)
		}
	}
}

func TestCompileAttachmentsSkipsNonStrings(t *testing.T) {
	c := model.DisputeCase{Reason: model.ReasonGeneral, Evidence: map[string]any{
		"receipt":                map[string]any{"id": "file_1"},
		"customer_communication": 12,
		"refund_policy":          nil,
	}}
	got := CompileAttachments(c)
	if !strings.Contains(got, "<Attachment description>") {
		t.Errorf("non-string evidence should not count, got %q", got)
	}
}

func TestAttachmentsLetteringFollowsCatalogue(t *testing.T) {
	c := model.DisputeCase{
		Reason: model.ReasonProductNotReceived,
		Evidence: map[string]any{
			"uncategorized_file":     "file_9",
			"shipping_documentation": "file_8",
			"receipt":                "file_1",
			"customer_signature":     "file_3",
		},
	}
	got := CompileAttachments(c)
	want := strings.Join([]string{
		"• Order receipt (Attachment A)",
		"• Proof of delivery (Attachment B)",
		"• Proof of shipping (Attachment C)",
		"• Other documents (Attachment D)",
	}, "\n")
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestAttachmentsDuplicateRules(t *testing.T) {
	evidence := map[string]any{
		"duplicate_charge_documentation": "file_a",
		"cancellation_policy":            "file_b",
		"service_documentation":          "file_c",
		"shipping_documentation":         "file_d",
		"uncategorized_file":             "file_e",
	}

	dup := Attachments(model.DisputeCase{Reason: model.ReasonDuplicate, DuplicateStatus: model.IsDuplicate, Evidence: evidence})
	gotLabels := labels(dup)
	wantLabels := []string{"Terms of service", "Proof of active subscription", "Refund receipt"}
	if fmt.Sprint(gotLabels) != fmt.Sprint(wantLabels) {
		t.Errorf("is_duplicate labels = %v, want %v", gotLabels, wantLabels)
	}

	notDup := Attachments(model.DisputeCase{Reason: model.ReasonDuplicate, DuplicateStatus: model.IsNotDuplicate, Evidence: evidence})
	gotLabels = labels(notDup)
	wantLabels = []string{"Proof of separate charges", "Cancellation policy", "Service documentation", "Other documents"}
	if fmt.Sprint(gotLabels) != fmt.Sprint(wantLabels) {
		t.Errorf("is_not_duplicate labels = %v, want %v", gotLabels, wantLabels)
	}

	other := Attachments(model.DisputeCase{Reason: model.ReasonFraudulent, Evidence: evidence})
	for _, a := range other {
		if a.Key == "duplicate_charge_documentation" {
			t.Error("duplicate documentation listed for a non-duplicate reason")
		}
	}
}

func TestAttachmentsRefundIssuedLabels(t *testing.T) {
	for _, status := range []model.RefundStatus{model.RefundIssued, model.RefundUnset} {
		c := model.DisputeCase{
			Reason:       model.ReasonCreditNotProcessed,
			RefundStatus: status,
			Evidence:     map[string]any{"service_documentation": "file_1", "customer_signature": "file_2"},
		}
		got := labels(Attachments(c))
		want := []string{"Proof of return", "Item condition"}
		if fmt.Sprint(got) != fmt.Sprint(want) {
			t.Errorf("%q: labels = %v, want %v", status, got, want)
		}
	}
}

func TestAttachmentLabelsMatchChecklist(t *testing.T) {
	c := model.DisputeCase{
		Reason:   model.ReasonCreditNotProcessed,
		Evidence: map[string]any{"service_documentation": "file_1"},
	}
	var checklist string
	for _, f := range evidence.Recommend(c, false) {
		if f.Key == evidence.KeyServiceDocumentation {
			checklist = f.Label
		}
	}
	got := Attachments(c)
	if len(got) != 1 || got[0].Label != checklist {
		t.Errorf("attachments = %+v, checklist label %q", got, checklist)
	}
}

func TestAttachmentsLettersAreSequential(t *testing.T) {
	all := map[string]any{}
	for _, cand := range Catalogue {
		all[string(cand.Key)] = "file_" + string(cand.Key)
	}
	if len(Catalogue) > 26 {
		t.Fatalf("catalogue has %d entries, letters only cover 26", len(Catalogue))
	}
	for _, reason := range model.Reasons {
		for _, status := range []model.DuplicateStatus{model.DuplicateUnset, model.IsDuplicate, model.IsNotDuplicate} {
			c := model.DisputeCase{Reason: reason, DuplicateStatus: status, Evidence: all}
			lines := strings.Split(CompileAttachments(c), "\n")
			for i, line := range lines {
				want := fmt.Sprintf("(Attachment %c)", 'A'+i)
				if !strings.HasSuffix(line, want) {
					t.Errorf("%s/%s line %d = %q, want suffix %q", reason, status, i, line, want)
				}
			}
			if n := len(Attachments(c)); n != len(lines) {
				t.Errorf("%s/%s: %d attachments but %d lines", reason, status, n, len(lines))
			}
		}
	}
}

func labels(as []Attachment) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.Label
	}
	return out
}

// --- Compose ---

func TestComposeFraudulent(t *testing.T) {
	c := fraudCase()
	text := Compose(Input{Case: c, Account: testAccount(), BankName: ptr("First Bank"), Today: testToday})

	for _, want := range []string{
		"legitimate cardholder",
		"John Doe",
		"First Bank has reported",
		"Trail boots, Wool socks",
		"45.99 USD",
		"January 12, 2026",
		"To: First Bank",
		"Subject: Chargeback Dispute – Case #dp_123",
		"• Order receipt (Attachment A)",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("letter missing %q", want)
		}
	}
	if strings.Contains(text, "Attachment B") {
		t.Error("expected exactly one attachment")
	}
}

func TestComposeSections(t *testing.T) {
	text := Compose(Input{Case: fraudCase(), Account: testAccount(), Today: testToday})
	sections := strings.Split(text, "\n\n")

	wantHeader := "Acme Outfitters\n1 Market St, Suite 400, San Francisco, CA 94105, US\nhelp@acme.test\n+1 555 0100\nMarch 4, 2026"
	if sections[0] != wantHeader {
		t.Errorf("header = %q", sections[0])
	}
	if sections[1] != "To: <Bank Name>\nSubject: Chargeback Dispute – Case #dp_123" {
		t.Errorf("recipient = %q", sections[1])
	}
	if sections[2] != "Dear Sir or Madam," {
		t.Errorf("greeting = %q", sections[2])
	}
	if !strings.HasSuffix(text, "Thank you,\nAcme Outfitters") {
		t.Errorf("unexpected closing: %q", text[len(text)-40:])
	}
}

func TestComposeEmptyInputsUsePlaceholders(t *testing.T) {
	text := Compose(Input{})
	for _, want := range []string{
		PlaceholderBank,
		PlaceholderCase,
		PlaceholderTransaction,
		PlaceholderTxDate,
		PlaceholderCustomer,
		PlaceholderProduct,
		PlaceholderOrderDate,
		PlaceholderDeliveryDate,
		PlaceholderAmount,
		PlaceholderDate,
		"\n, , ,  , \n",
		"(Attachment A)",
		"(Attachment B)",
		attachmentLeadIn,
		closingRequest,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("letter missing %q", want)
		}
	}
}

func TestComposeBodyPerReason(t *testing.T) {
	tests := []struct {
		name string
		c    model.DisputeCase
		want string
	}{
		{"not received", model.DisputeCase{Reason: model.ReasonProductNotReceived}, "did not receive their purchase"},
		{"refund issued", model.DisputeCase{Reason: model.ReasonCreditNotProcessed, RefundStatus: model.RefundIssued}, "has already been issued"},
		{"refund not owed", model.DisputeCase{Reason: model.ReasonCreditNotProcessed, RefundStatus: model.RefundNotOwed}, "no credit is owed"},
		{"unacceptable", model.DisputeCase{Reason: model.ReasonProductUnacceptable}, "defective or not as described"},
		{"subscription", model.DisputeCase{Reason: model.ReasonSubscriptionCanceled}, "canceled their subscription"},
		{"is duplicate", model.DisputeCase{Reason: model.ReasonDuplicate, DuplicateStatus: model.IsDuplicate}, "refunded in full"},
		{"not duplicate", model.DisputeCase{Reason: model.ReasonDuplicate}, "is not a duplicate"},
		{"unrecognized", model.DisputeCase{Reason: model.ReasonUnrecognized}, "legitimate cardholder"},
		{"general", model.DisputeCase{Reason: ""}, "raised in error"},
		{"unknown", model.DisputeCase{Reason: "bank_cannot_process"}, "raised in error"},
	}
	for _, tt := range tests {
		text := Compose(Input{Case: tt.c, Today: testToday})
		if !strings.Contains(text, tt.want) {
			t.Errorf("%s: letter missing %q", tt.name, tt.want)
		}
	}
}

func TestComposeInputStatusOverridesCase(t *testing.T) {
	c := model.DisputeCase{Reason: model.ReasonCreditNotProcessed, RefundStatus: model.RefundIssued}
	text := Compose(Input{Case: c, RefundStatus: model.RefundNotOwed})
	if !strings.Contains(text, "no credit is owed") {
		t.Error("input refund status should override the case")
	}
}

func TestComposeIsIdempotent(t *testing.T) {
	in := Input{Case: fraudCase(), Account: testAccount(), BankName: ptr("First Bank"), Today: testToday}
	if Compose(in) != Compose(in) {
		t.Error("compose is not deterministic")
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   *int64
		currency string
		want     string
	}{
		{ptr(int64(4599)), "usd", "45.99 USD"},
		{ptr(int64(5)), "eur", "0.05 EUR"},
		{ptr(int64(100000)), "gbp", "1000.00 GBP"},
		{ptr(int64(1200)), "", "12.00"},
		{nil, "usd", PlaceholderAmount},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.amount, tt.currency); got != tt.want {
			t.Errorf("formatAmount = %q, want %q", got, tt.want)
		}
	}
}

func TestDeliveryDate(t *testing.T) {
	tests := []struct {
		evidence map[string]any
		want     string
	}{
		{map[string]any{"shipping_date": "2026-02-01"}, "February 1, 2026"},
		{map[string]any{"shipping_date": "2026-02-01T10:00:00Z"}, "February 1, 2026"},
		{map[string]any{"shipping_date": "early February"}, "early February"},
		{map[string]any{"service_date": "2026-02-03"}, "February 3, 2026"},
		{map[string]any{"shipping_date": 20260201}, PlaceholderDeliveryDate},
		{nil, PlaceholderDeliveryDate},
	}
	for _, tt := range tests {
		if got := deliveryDate(model.DisputeCase{Evidence: tt.evidence}); got != tt.want {
			t.Errorf("deliveryDate(%v) = %q, want %q", tt.evidence, got, tt.want)
		}
	}
}

func TestProductDescriptionPrefersEvidence(t *testing.T) {
	c := fraudCase()
	c.Evidence["product_description"] = "Custom trail boots, size 44"
	if got := productDescription(c); got != "Custom trail boots, size 44" {
		t.Errorf("got %q", got)
	}
}

// --- Tracker ---

func TestLoad(t *testing.T) {
	if d := Load("", "generated"); d.Text != "generated" || d.ManuallyEdited {
		t.Errorf("no stored letter: %+v", d)
	}
	if d := Load("generated", "generated"); d.Text != "generated" || d.ManuallyEdited {
		t.Errorf("matching stored letter: %+v", d)
	}
	if d := Load("my own words", "generated"); d.Text != "my own words" || !d.ManuallyEdited {
		t.Errorf("diverged stored letter: %+v", d)
	}
}

func TestShouldAutoRegenerate(t *testing.T) {
	tests := []struct {
		name                         string
		previous, displayed, newCand string
		edited                       bool
		want                         Draft
	}{
		{"auto draft follows inputs", "v1", "v1", "v2", false, Draft{Text: "v2"}},
		{"untouched since last update", "v1", "v1", "v2", true, Draft{Text: "v2"}},
		{"not edited flag wins", "v1", "typed", "v2", false, Draft{Text: "v2"}},
		{"manual edit preserved", "v1", "typed", "v2", true, Draft{Text: "typed", ManuallyEdited: true}},
	}
	for _, tt := range tests {
		got := ShouldAutoRegenerate(tt.previous, tt.displayed, tt.newCand, tt.edited)
		if got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, got, tt.want)
		}
	}
}

func TestEdit(t *testing.T) {
	if d := Edit("", "generated"); d.Text != "generated" || d.ManuallyEdited {
		t.Errorf("clear should reset: %+v", d)
	}
	if d := Edit("generated", "generated"); d.ManuallyEdited {
		t.Errorf("edit matching candidate should not count: %+v", d)
	}
	if d := Edit("generated!", "generated"); !d.ManuallyEdited || d.Text != "generated!" {
		t.Errorf("edit diverging: %+v", d)
	}
}

func TestStoredLetterSurvivesBankChange(t *testing.T) {
	c := fraudCase()
	before := Compose(Input{Case: c, Account: testAccount(), Today: testToday})
	draft := Load("Hand-written rebuttal.", before)

	after := Compose(Input{Case: c, Account: testAccount(), BankName: ptr("Other Bank"), Today: testToday})
	draft = ShouldAutoRegenerate(before, draft.Text, after, draft.ManuallyEdited)

	if draft.Text != "Hand-written rebuttal." || !draft.ManuallyEdited {
		t.Errorf("manual letter overwritten: %+v", draft)
	}
}

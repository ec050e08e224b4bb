package model

import (
	"testing"
)

func TestReasonNormalize(t *testing.T) {
	tests := []struct {
		reason Reason
		want   Reason
	}{
		{"", ReasonGeneral},
		{"general", ReasonGeneral},
		{"fraudulent", ReasonFraudulent},
		{"duplicate", ReasonDuplicate},
		{"noncompliant", ReasonNoncompliant},
		{"bank_cannot_process", ReasonGeneral},
	}
	for _, tt := range tests {
		if got := tt.reason.Normalize(); got != tt.want {
			t.Errorf("Reason(%q).Normalize() = %q, want %q", tt.reason, got, tt.want)
		}
	}
}

func TestSubStatus(t *testing.T) {
	tests := []struct {
		name string
		c    DisputeCase
		want string
	}{
		{"credit", DisputeCase{Reason: ReasonCreditNotProcessed, RefundStatus: RefundNotOwed, DuplicateStatus: IsDuplicate}, "refund_was_not_owed"},
		{"duplicate", DisputeCase{Reason: ReasonDuplicate, RefundStatus: RefundIssued, DuplicateStatus: IsNotDuplicate}, "is_not_duplicate"},
		{"other", DisputeCase{Reason: ReasonFraudulent, RefundStatus: RefundIssued, DuplicateStatus: IsDuplicate}, ""},
	}
	for _, tt := range tests {
		if got := tt.c.SubStatus(); got != tt.want {
			t.Errorf("%s: SubStatus() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestEvidenceText(t *testing.T) {
	c := DisputeCase{Evidence: map[string]any{
		"receipt":       "file_123",
		"blank":         "   ",
		"shipping_date": 42,
		"customer_name": nil,
		"service_date":  []string{"x"},
	}}

	if v, ok := c.EvidenceText("receipt"); !ok || v != "file_123" {
		t.Errorf("receipt: got %q, %v", v, ok)
	}
	for _, key := range []string{"blank", "shipping_date", "customer_name", "service_date", "missing"} {
		if _, ok := c.EvidenceText(key); ok {
			t.Errorf("%s: expected absent", key)
		}
	}

	var empty DisputeCase
	if _, ok := empty.EvidenceText("receipt"); ok {
		t.Error("nil evidence map should report absent")
	}
}

func TestProductTypeString(t *testing.T) {
	if got := ProductUnspecified.String(); got != "unspecified" {
		t.Errorf("got %q", got)
	}
	if got := ProductBookingReservation.String(); got != "booking_reservation" {
		t.Errorf("got %q", got)
	}
}

func TestParseProductType(t *testing.T) {
	for _, p := range ProductTypes {
		got, err := ParseProductType(string(p))
		if err != nil || got != p {
			t.Errorf("ParseProductType(%q) = %q, %v", p, got, err)
		}
	}
	if got, err := ParseProductType("unspecified"); err != nil || got != ProductUnspecified {
		t.Errorf("unspecified = %q, %v", got, err)
	}
	if _, err := ParseProductType("spaceship"); err == nil {
		t.Error("expected error for unknown product type")
	}
}

func TestParseStatuses(t *testing.T) {
	if r, err := ParseRefundStatus("refund_was_not_owed"); err != nil || r != RefundNotOwed {
		t.Errorf("refund = %q, %v", r, err)
	}
	if _, err := ParseRefundStatus("is_duplicate"); err == nil {
		t.Error("duplicate status accepted as refund status")
	}
	if d, err := ParseDuplicateStatus(""); err != nil || d != DuplicateUnset {
		t.Errorf("duplicate = %q, %v", d, err)
	}
	if _, err := ParseDuplicateStatus("maybe"); err == nil {
		t.Error("expected error for unknown duplicate status")
	}
}

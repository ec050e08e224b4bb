// Package letter composes dispute cover letters and tracks manual edits to them.
package letter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sprite-ai/rebuttal/internal/evidence"
	"github.com/sprite-ai/rebuttal/internal/model"
)

// Candidate is one possible line of the attachment list.
type Candidate struct {
	Key             evidence.Key
	DefaultLabel    string
	OnlyForReasons  []model.Reason
	ExcludeWhen     func(reason model.Reason, subStatus string) bool
	LabelForReasons map[model.Reason]string
	LabelForStatus  map[string]string // checked before LabelForReasons
}

func (c Candidate) applies(reason model.Reason, subStatus string) bool {
	if len(c.OnlyForReasons) > 0 && !slices.Contains(c.OnlyForReasons, reason) {
		return false
	}
	if c.ExcludeWhen != nil && c.ExcludeWhen(reason, subStatus) {
		return false
	}
	return true
}

func (c Candidate) label(reason model.Reason, subStatus string) string {
	if l, ok := c.LabelForStatus[subStatus]; ok && subStatus != "" {
		return l
	}
	if l, ok := c.LabelForReasons[reason]; ok {
		return l
	}
	return c.DefaultLabel
}

// Catalogue is the attachment catalogue. Its order is the lettering order.
var Catalogue = []Candidate{
	{Key: evidence.KeyReceipt, DefaultLabel: "Order receipt"},
	{Key: evidence.KeyCustomerCommunication, DefaultLabel: "Customer communication"},
	{
		Key:          evidence.KeyCustomerSignature,
		DefaultLabel: "Customer signature",
		LabelForReasons: map[model.Reason]string{
			model.ReasonCreditNotProcessed: "Proof of return",
			model.ReasonProductNotReceived: "Proof of delivery",
		},
	},
	{Key: evidence.KeyRefundPolicy, DefaultLabel: "Refund policy"},
	{
		Key:            evidence.KeyDuplicateChargeDocumentation,
		DefaultLabel:   "Proof of separate charges",
		OnlyForReasons: []model.Reason{model.ReasonDuplicate},
		ExcludeWhen: func(reason model.Reason, subStatus string) bool {
			return subStatus == string(model.IsDuplicate)
		},
	},
	{
		Key:          evidence.KeyCancellationPolicy,
		DefaultLabel: "Cancellation policy",
		LabelForStatus: map[string]string{
			string(model.IsDuplicate): "Terms of service",
		},
	},
	{
		Key:          evidence.KeyAccessActivityLog,
		DefaultLabel: "Activity logs",
		LabelForReasons: map[model.Reason]string{
			model.ReasonSubscriptionCanceled: "Proof of active subscription",
			model.ReasonFraudulent:           "Proof of purchase activity",
			model.ReasonUnrecognized:         "Proof of purchase activity",
		},
	},
	{
		Key:          evidence.KeyServiceDocumentation,
		DefaultLabel: "Service documentation",
		LabelForStatus: map[string]string{
			string(model.IsDuplicate):  "Proof of active subscription",
			string(model.RefundIssued): "Item condition",
		},
		LabelForReasons: map[model.Reason]string{
			model.ReasonProductNotReceived: "Proof of delivery or service",
		},
	},
	{
		Key:          evidence.KeyShippingDocumentation,
		DefaultLabel: "Proof of shipping",
		ExcludeWhen: func(reason model.Reason, _ string) bool {
			return reason == model.ReasonDuplicate
		},
	},
	{
		Key:          evidence.KeyUncategorizedFile,
		DefaultLabel: "Other documents",
		LabelForStatus: map[string]string{
			string(model.IsDuplicate): "Refund receipt",
		},
	},
}

const attachmentPlaceholder = "<Attachment description>"

// Attachment is one lettered line of the attachment list.
type Attachment struct {
	Key    evidence.Key `json:"key"`
	Label  string       `json:"label"`
	Letter string       `json:"letter"`
}

func (a Attachment) String() string {
	return fmt.Sprintf("• %s (Attachment %s)", a.Label, a.Letter)
}

func attachmentLetter(n int) string {
	return string(rune('A' + n - 1))
}

// Attachments walks the catalogue and returns one lettered entry per candidate
// that applies to the case and has a plain-string evidence value.
func Attachments(c model.DisputeCase) []Attachment {
	reason := c.Reason.Normalize()
	subStatus := c.SubStatus()
	if reason == model.ReasonCreditNotProcessed && subStatus == "" {
		subStatus = string(model.RefundIssued)
	}

	var out []Attachment
	for _, cand := range Catalogue {
		if !cand.applies(reason, subStatus) {
			continue
		}
		if _, ok := c.EvidenceText(string(cand.Key)); !ok {
			continue
		}
		out = append(out, Attachment{
			Key:    cand.Key,
			Label:  cand.label(reason, subStatus),
			Letter: attachmentLetter(len(out) + 1),
		})
	}
	return out
}

// CompileAttachments renders the attachment list, one bullet per line. With
// no evidence it renders two placeholder lines so the letter stays readable.
func CompileAttachments(c model.DisputeCase) string {
	attachments := Attachments(c)
	if len(attachments) == 0 {
		attachments = []Attachment{
			{Label: attachmentPlaceholder, Letter: attachmentLetter(1)},
			{Label: attachmentPlaceholder, Letter: attachmentLetter(2)},
		}
	}

	lines := make([]string, len(attachments))
	for i, a := range attachments {
		lines[i] = a.String()
	}
	return strings.Join(lines, "\n")
}

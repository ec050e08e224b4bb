// Package evidence decides which supporting documents a merchant should upload
// for a dispute.
package evidence

import (
	"slices"
	"sort"
)

// Key is an evidence field identifier from the processor's dispute-evidence schema.
type Key string

const (
	KeyAccessActivityLog            Key = "access_activity_log"
	KeyBillingAddress               Key = "billing_address"
	KeyCancellationPolicy           Key = "cancellation_policy"
	KeyCancellationPolicyDisclosure Key = "cancellation_policy_disclosure"
	KeyCancellationRebuttal         Key = "cancellation_rebuttal"
	KeyCustomerCommunication        Key = "customer_communication"
	KeyCustomerEmailAddress         Key = "customer_email_address"
	KeyCustomerName                 Key = "customer_name"
	KeyCustomerPurchaseIP           Key = "customer_purchase_ip"
	KeyCustomerSignature            Key = "customer_signature"
	KeyDuplicateChargeDocumentation Key = "duplicate_charge_documentation"
	KeyDuplicateChargeExplanation   Key = "duplicate_charge_explanation"
	KeyDuplicateChargeID            Key = "duplicate_charge_id"
	KeyProductDescription           Key = "product_description"
	KeyReceipt                      Key = "receipt"
	KeyRefundPolicy                 Key = "refund_policy"
	KeyRefundPolicyDisclosure       Key = "refund_policy_disclosure"
	KeyRefundRefusalExplanation     Key = "refund_refusal_explanation"
	KeyServiceDate                  Key = "service_date"
	KeyServiceDocumentation         Key = "service_documentation"
	KeyShippingAddress              Key = "shipping_address"
	KeyShippingCarrier              Key = "shipping_carrier"
	KeyShippingDate                 Key = "shipping_date"
	KeyShippingDocumentation        Key = "shipping_documentation"
	KeyShippingTrackingNumber       Key = "shipping_tracking_number"
	KeyUncategorizedFile            Key = "uncategorized_file"
	KeyUncategorizedText            Key = "uncategorized_text"
)

var vocabulary = []Key{
	KeyAccessActivityLog,
	KeyBillingAddress,
	KeyCancellationPolicy,
	KeyCancellationPolicyDisclosure,
	KeyCancellationRebuttal,
	KeyCustomerCommunication,
	KeyCustomerEmailAddress,
	KeyCustomerName,
	KeyCustomerPurchaseIP,
	KeyCustomerSignature,
	KeyDuplicateChargeDocumentation,
	KeyDuplicateChargeExplanation,
	KeyDuplicateChargeID,
	KeyProductDescription,
	KeyReceipt,
	KeyRefundPolicy,
	KeyRefundPolicyDisclosure,
	KeyRefundRefusalExplanation,
	KeyServiceDate,
	KeyServiceDocumentation,
	KeyShippingAddress,
	KeyShippingCarrier,
	KeyShippingDate,
	KeyShippingDocumentation,
	KeyShippingTrackingNumber,
	KeyUncategorizedFile,
	KeyUncategorizedText,
}

// IsKnown reports whether s is a member of the field vocabulary.
func IsKnown(s string) bool {
	return slices.Contains(vocabulary, Key(s))
}

// Field is an evidence field definition. Lower priorities sort first.
type Field struct {
	Key         Key
	Label       string
	Description string
	Priority    int
}

func (f Field) relabel(label, description string) Field {
	f.Label = label
	if description != "" {
		f.Description = description
	}
	return f
}

func (f Field) at(priority int) Field {
	f.Priority = priority
	return f
}

// Recommendation is one suggested upload slot.
type Recommendation struct {
	Key         Key    `json:"key"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

// FieldSet is an ordered, key-unique list of recommendations.
type FieldSet []Recommendation

// Keys returns the keys of the set in order.
func (s FieldSet) Keys() []Key {
	keys := make([]Key, len(s))
	for i, r := range s {
		keys[i] = r.Key
	}
	return keys
}

// finalize stable-sorts by priority, keeps the first field per key and strips priorities.
func finalize(fields []Field) FieldSet {
	sorted := slices.Clone(fields)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority < sorted[j].Priority
	})

	seen := make(map[Key]bool, len(sorted))
	out := make(FieldSet, 0, len(sorted))
	for _, f := range sorted {
		if seen[f.Key] {
			continue
		}
		seen[f.Key] = true
		out = append(out, Recommendation{Key: f.Key, Label: f.Label, Description: f.Description})
	}
	return out
}

// Canonical field definitions shared by the rule table and the matrix.
var (
	receiptField = Field{
		Key:         KeyReceipt,
		Label:       "Order receipt",
		Description: "A copy of the receipt sent to the customer for this order.",
		Priority:    10,
	}
	communicationField = Field{
		Key:         KeyCustomerCommunication,
		Label:       "Customer communication",
		Description: "Emails, messages or chat transcripts with the customer about this purchase.",
		Priority:    20,
	}
	otherDocumentsField = Field{
		Key:         KeyUncategorizedFile,
		Label:       "Other documents",
		Description: "Any other document that supports your case.",
		Priority:    100,
	}
	accessLogField = Field{
		Key:         KeyAccessActivityLog,
		Label:       "Proof of access",
		Description: "Activity or server logs showing the customer accessed or downloaded what they bought.",
	}
	refundPolicyField = Field{
		Key:         KeyRefundPolicy,
		Label:       "Refund policy",
		Description: "Your refund policy as it was shown to the customer at checkout.",
	}
	serviceDocsField = Field{
		Key:         KeyServiceDocumentation,
		Label:       "Service documentation",
		Description: "Documentation showing the service was provided, such as a signed contract or work order.",
	}
	shippingDocsField = Field{
		Key:         KeyShippingDocumentation,
		Label:       "Proof of shipping",
		Description: "A shipping label, tracking record or carrier receipt for the order.",
	}
	signatureField = Field{
		Key:         KeyCustomerSignature,
		Label:       "Customer signature",
		Description: "A document carrying the customer's signature, such as a delivery confirmation.",
	}
	cancellationPolicyField = Field{
		Key:         KeyCancellationPolicy,
		Label:       "Cancellation policy",
		Description: "Your cancellation policy as it was presented to the customer.",
	}
	duplicateDocsField = Field{
		Key:         KeyDuplicateChargeDocumentation,
		Label:       "Proof of separate charges",
		Description: "Documents showing each charge was for a separate purchase, such as two receipts.",
	}
)

package evidence

import "github.com/sprite-ai/rebuttal/internal/model"

var baseRuleFields = []Field{
	receiptField,
	communicationField,
	otherDocumentsField,
}

// Extra fields per reason. Reasons with a sub-status are resolved in ruleExtras.
var reasonRuleFields = map[model.Reason][]Field{
	model.ReasonGeneral: {
		accessLogField.at(30),
		refundPolicyField.at(40),
		serviceDocsField.at(50),
	},
	model.ReasonProductNotReceived: {
		shippingDocsField.at(30),
		serviceDocsField.relabel("Proof of delivery or service", "A delivery confirmation, or records showing the service took place.").at(40),
	},
	model.ReasonProductUnacceptable: {
		refundPolicyField.at(30),
		shippingDocsField.at(40),
		serviceDocsField.relabel("Product or service description", "Documentation showing the product or service matched its description.").at(50),
	},
	model.ReasonSubscriptionCanceled: {
		cancellationPolicyField.at(30),
		accessLogField.relabel("Proof of active subscription", "Logs showing the customer kept using the subscription after the cancellation date.").at(40),
		signatureField.relabel("Subscription agreement", "The agreement the customer accepted when subscribing.").at(50),
	},
	model.ReasonFraudulent:   fraudRuleFields,
	model.ReasonUnrecognized: fraudRuleFields,
}

var fraudRuleFields = []Field{
	accessLogField.relabel("Proof of purchase activity", "Logs tying the purchase to the cardholder, such as IP address, device or prior orders.").at(30),
	shippingDocsField.at(40),
	signatureField.at(50),
}

var (
	refundIssuedRuleFields = []Field{
		signatureField.relabel("Proof of return", "A signed return slip or delivery confirmation for the returned item.").at(30),
		refundPolicyField.at(40),
		serviceDocsField.relabel("Item condition", "Photos or notes describing the condition of the returned item.").at(50),
	}
	refundNotOwedRuleFields = []Field{
		refundPolicyField.at(30),
	}
	isDuplicateRuleFields = []Field{
		serviceDocsField.relabel("Proof of active subscription", "Records showing the charges were for separate subscription periods.").at(30),
		refundPolicyField.at(40),
		cancellationPolicyField.relabel("Terms of service", "The terms of service the customer agreed to.").at(50),
	}
	notDuplicateRuleFields = []Field{
		refundPolicyField.at(30),
	}
)

func ruleExtras(reason model.Reason, refund model.RefundStatus, duplicate model.DuplicateStatus) []Field {
	switch reason.Normalize() {
	case model.ReasonCreditNotProcessed:
		if refund == model.RefundNotOwed {
			return refundNotOwedRuleFields
		}
		return refundIssuedRuleFields
	case model.ReasonDuplicate:
		if duplicate == model.IsDuplicate {
			return isDuplicateRuleFields
		}
		return notDuplicateRuleFields
	}
	if fields, ok := reasonRuleFields[reason.Normalize()]; ok {
		return fields
	}
	return reasonRuleFields[model.ReasonGeneral]
}

// ResolveRules returns the rule-table recommendation for a reason. Unknown
// reasons resolve to the general list.
func ResolveRules(reason model.Reason, refund model.RefundStatus, duplicate model.DuplicateStatus) FieldSet {
	extras := ruleExtras(reason, refund, duplicate)
	fields := make([]Field, 0, len(baseRuleFields)+len(extras))
	fields = append(fields, baseRuleFields...)
	fields = append(fields, extras...)
	return finalize(fields)
}

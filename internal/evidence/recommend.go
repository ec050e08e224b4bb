package evidence

import "github.com/sprite-ai/rebuttal/internal/model"

// Compliance disputes get a fixed set regardless of any other input.
var noncompliantFields = []Field{
	communicationField.relabel("Upload evidence", "Documents showing the transaction complied with card network rules."),
	otherDocumentsField.relabel("Other documents", ""),
}

// Recommend returns the ordered evidence fields for a dispute. When
// matrixEnabled is false only the rule table is consulted; otherwise the
// evidence matrix is tried first and the rule table covers any miss.
func Recommend(c model.DisputeCase, matrixEnabled bool) FieldSet {
	if !matrixEnabled {
		return ResolveRules(c.Reason, c.RefundStatus, c.DuplicateStatus)
	}

	reason := c.Reason.Normalize()
	if reason == model.ReasonNoncompliant {
		return finalize(noncompliantFields)
	}

	productType := c.ProductType
	if reason == model.ReasonDuplicate && productType == model.ProductUnspecified {
		productType = DefaultProductType
	}

	entry, ok := LookupMatrix(reason, productType, c.SubStatus())
	if !ok {
		return ResolveRules(c.Reason, c.RefundStatus, c.DuplicateStatus)
	}

	fields := entry.Fields
	if !entry.Complete && !containsKey(fields, KeyCustomerCommunication) {
		fields = append(fields, communicationField)
	}
	return finalize(fields)
}

func containsKey(fields []Field, key Key) bool {
	for _, f := range fields {
		if f.Key == key {
			return true
		}
	}
	return false
}

// Missing returns the keys in set that have no uploaded value in the case's
// evidence, in set order.
func Missing(set FieldSet, c model.DisputeCase) []Key {
	var missing []Key
	for _, r := range set {
		if _, ok := c.EvidenceText(string(r.Key)); !ok {
			missing = append(missing, r.Key)
		}
	}
	return missing
}

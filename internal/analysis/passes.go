package analysis

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/sprite-ai/rebuttal/internal/evidence"
	"github.com/sprite-ai/rebuttal/internal/model"
)

// MissingEvidencePass flags recommended fields with no upload.
func MissingEvidencePass(in Input) []Finding {
	fields := evidence.Recommend(in.Case, in.MatrixEnabled)
	missing := evidence.Missing(fields, in.Case)

	labels := make(map[evidence.Key]string, len(fields))
	for _, f := range fields {
		labels[f.Key] = f.Label
	}

	var findings []Finding
	for _, k := range missing {
		findings = append(findings, Finding{
			Pass:     "evidence",
			Field:    string(k),
			Message:  fmt.Sprintf("%s not uploaded", labels[k]),
			Severity: SeverityWarning,
		})
	}
	return findings
}

// EvidenceValuesPass flags evidence under unknown keys and values that are
// not text, which the attachment list skips.
func EvidenceValuesPass(in Input) []Finding {
	keys := make([]string, 0, len(in.Case.Evidence))
	for k := range in.Case.Evidence {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var findings []Finding
	for _, k := range keys {
		if !evidence.IsKnown(k) {
			findings = append(findings, Finding{
				Pass:     "evidence_values",
				Field:    k,
				Message:  "not a recognised evidence field",
				Severity: SeverityWarning,
			})
			continue
		}
		if v := in.Case.Evidence[k]; v != nil {
			if _, ok := v.(string); !ok {
				findings = append(findings, Finding{
					Pass:     "evidence_values",
					Field:    k,
					Message:  fmt.Sprintf("value is %T, not text; it will not be listed as an attachment", v),
					Severity: SeverityInfo,
				})
			}
		}
	}
	return findings
}

// SubStatusPass flags reasons whose letter depends on a sub-status nobody chose.
func SubStatusPass(in Input) []Finding {
	c := in.Case
	switch c.Reason.Normalize() {
	case model.ReasonCreditNotProcessed:
		if c.RefundStatus == model.RefundUnset {
			return []Finding{{
				Pass:     "sub_status",
				Message:  "refund status not set; the letter assumes a refund was issued",
				Severity: SeverityWarning,
			}}
		}
	case model.ReasonDuplicate:
		if c.DuplicateStatus == model.DuplicateUnset {
			return []Finding{{
				Pass:     "sub_status",
				Message:  "duplicate status not set; the letter assumes the charge is not a duplicate",
				Severity: SeverityWarning,
			}}
		}
	}
	return nil
}

var placeholderRe = regexp.MustCompile(`<[A-Z][A-Za-z/ ]*>`)

// PlaceholderPass flags placeholder text left in the letter.
func PlaceholderPass(in Input) []Finding {
	if strings.TrimSpace(in.Letter) == "" {
		return []Finding{{Pass: "placeholders", Message: "cover letter is empty", Severity: SeverityError}}
	}

	var findings []Finding
	seen := make(map[string]bool)
	for _, p := range placeholderRe.FindAllString(in.Letter, -1) {
		if seen[p] {
			continue
		}
		seen[p] = true
		findings = append(findings, Finding{
			Pass:     "placeholders",
			Message:  fmt.Sprintf("letter still contains %s", p),
			Severity: SeverityError,
		})
	}
	return findings
}

// AccountPass flags merchant details missing from the letter header.
func AccountPass(in Input) []Finding {
	a := in.Account
	checks := []struct {
		value, name string
	}{
		{a.Name, "business name"},
		{a.SupportEmail, "support email"},
		{a.SupportPhone, "support phone"},
		{a.Address.Line1, "address"},
	}

	var findings []Finding
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			findings = append(findings, Finding{
				Pass:     "account",
				Message:  c.name + " missing from the letter header",
				Severity: SeverityWarning,
			})
		}
	}
	return findings
}

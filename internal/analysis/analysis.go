// Package analysis runs readiness checks over a dispute before it is submitted.
package analysis

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/sprite-ai/rebuttal/internal/model"
)

// ErrUnknownPass is returned for a skip entry that names no pass.
var ErrUnknownPass = errors.New("unknown check")

// Severity ranks a finding.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Finding is one problem with a dispute.
type Finding struct {
	Pass     string   `json:"pass"`
	Field    string   `json:"field,omitempty"` // evidence key, empty if dispute-level
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (f Finding) String() string {
	if f.Field == "" {
		return fmt.Sprintf("[%s] %s", f.Pass, f.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", f.Pass, f.Field, f.Message)
}

// Input is what the passes inspect.
type Input struct {
	Case          model.DisputeCase
	Account       model.AccountInfo
	Letter        string
	MatrixEnabled bool
}

// Results holds all findings from running analysis passes.
type Results struct {
	Findings []Finding `json:"findings"`
}

// MaxSeverity returns the highest severity among all findings.
func (r *Results) MaxSeverity() Severity {
	max := SeverityInfo
	for _, f := range r.Findings {
		if f.Severity > max {
			max = f.Severity
		}
	}
	return max
}

// Summary returns a one-line summary of findings.
func (r *Results) Summary() string {
	if len(r.Findings) == 0 {
		return "Ready to submit"
	}

	counts := make(map[Severity]int)
	for _, f := range r.Findings {
		counts[f.Severity]++
	}

	var parts []string
	for _, level := range []Severity{SeverityError, SeverityWarning, SeverityInfo} {
		if c := counts[level]; c > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", c, level))
		}
	}
	return strings.Join(parts, ", ")
}

// Pass inspects a dispute and returns findings.
type Pass func(in Input) []Finding

// passes is the run order.
var passes = []struct {
	name string
	run  Pass
}{
	{"evidence", MissingEvidencePass},
	{"evidence_values", EvidenceValuesPass},
	{"sub_status", SubStatusPass},
	{"placeholders", PlaceholderPass},
	{"account", AccountPass},
}

// PassNames lists the pass names accepted by Run's skip list.
func PassNames() []string {
	names := make([]string, len(passes))
	for i, p := range passes {
		names[i] = p.name
	}
	return names
}

// ValidateSkip reports names in skip that are not passes.
func ValidateSkip(skip []string) error {
	known := PassNames()
	for _, name := range skip {
		if !slices.Contains(known, name) {
			return fmt.Errorf("%w %q (known: %s)", ErrUnknownPass, name, strings.Join(known, ", "))
		}
	}
	return nil
}

// Run executes all passes except those named in skip and returns the aggregated results.
func Run(in Input, skip []string) *Results {
	skipSet := make(map[string]bool)
	for _, s := range skip {
		skipSet[s] = true
	}

	results := &Results{Findings: []Finding{}}
	for _, p := range passes {
		if skipSet[p.name] {
			continue
		}
		results.Findings = append(results.Findings, p.run(in)...)
	}
	return results
}

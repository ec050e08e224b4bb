package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/rebuttal/internal/analysis"
	"github.com/sprite-ai/rebuttal/internal/letter"
	"github.com/sprite-ai/rebuttal/internal/model"
)

var checkCmd = &cobra.Command{
	Use:   "check <case-file>",
	Short: "Check a dispute is ready to submit",
	Long: `Run readiness checks on a dispute: missing evidence, unset
sub-statuses, placeholders left in the cover letter, and gaps in the
merchant details. The saved cover letter is checked when present,
otherwise the generated one.

Exit codes:
  0 — ready, no issues found
  1 — warnings found
  2 — errors found`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Bool("matrix", false, "use the product-type evidence matrix")
	checkCmd.Flags().StringP("format", "f", "text", "output format: text, json, yaml")
	checkCmd.Flags().Bool("color", false, "colourise json/yaml output")
	checkCmd.Flags().StringSlice("skip", nil, "checks to skip: "+strings.Join(analysis.PassNames(), ", "))
	rootCmd.AddCommand(checkCmd)
}

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func runCheck(cmd *cobra.Command, args []string) error {
	skip, _ := cmd.Flags().GetStringSlice("skip")
	if err := analysis.ValidateSkip(skip); err != nil {
		return err
	}
	c, err := files.Load(args[0])
	if err != nil {
		return err
	}

	results := analysis.Run(analysis.Input{
		Case:          c,
		Account:       cfg.Account,
		Letter:        savedOrGenerated(c),
		MatrixEnabled: matrixEnabled(cmd),
	}, skip)

	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	if format == "text" {
		outputFindings(out, results)
	} else if err := writeStructured(cmd, out, format, results); err != nil {
		return err
	}

	switch results.MaxSeverity() {
	case analysis.SeverityError:
		return &ExitError{Code: 2}
	case analysis.SeverityWarning:
		return &ExitError{Code: 1}
	}
	return nil
}

func savedOrGenerated(c model.DisputeCase) string {
	if c.CoverLetter != "" {
		return c.CoverLetter
	}
	return letter.Compose(letter.Input{
		Case:     c,
		Account:  cfg.Account,
		BankName: c.BankName,
		Today:    time.Now(),
	})
}

func outputFindings(w io.Writer, results *analysis.Results) {
	fmt.Fprintf(w, "Check: %s\n", results.Summary())
	if len(results.Findings) == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, f := range results.Findings {
		fmt.Fprintf(w, "  %s %s\n", severityIcon(f.Severity), f)
	}
}

func severityIcon(s analysis.Severity) string {
	switch s {
	case analysis.SeverityError:
		return "✗"
	case analysis.SeverityWarning:
		return "!"
	default:
		return "·"
	}
}

package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/rebuttal/internal/letter"
	"github.com/sprite-ai/rebuttal/internal/model"
)

var composeCmd = &cobra.Command{
	Use:   "compose <case-file>",
	Short: "Draft the cover letter for a dispute",
	Long: `Draft the cover letter for a dispute from the case record and the
merchant account in the configuration. Missing values are shown as
<Placeholder> text for the merchant to fill in.

Examples:
  rebuttal compose dispute.yaml --bank "First Bank"
  rebuttal compose dispute.yaml --duplicate-status is_duplicate -o letter.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runCompose,
}

func init() {
	composeCmd.Flags().String("bank", "", "issuing bank name (overrides the case)")
	composeCmd.Flags().String("refund-status", "", "refund_has_been_issued or refund_was_not_owed")
	composeCmd.Flags().String("duplicate-status", "", "is_duplicate or is_not_duplicate")
	composeCmd.Flags().String("date", "", "letter date as YYYY-MM-DD (default today)")
	composeCmd.Flags().StringP("output", "o", "", "write the letter to a file")
}

type composeOutput struct {
	Text        string              `json:"text" yaml:"text"`
	Attachments []letter.Attachment `json:"attachments" yaml:"attachments"`
}

func runCompose(cmd *cobra.Command, args []string) error {
	c, err := files.Load(args[0])
	if err != nil {
		return err
	}

	in, err := composeInput(cmd, c)
	if err != nil {
		return err
	}
	text := letter.Compose(in)

	if path, _ := cmd.Flags().GetString("output"); path != "" {
		if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing letter: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote cover letter to %s\n", path)
		return nil
	}

	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	if format == "text" {
		_, err := fmt.Fprintln(out, text)
		return err
	}
	attachments := in.Attachments()
	if attachments == nil {
		attachments = []letter.Attachment{}
	}
	return writeStructured(cmd, out, format, composeOutput{Text: text, Attachments: attachments})
}

func composeInput(cmd *cobra.Command, c model.DisputeCase) (letter.Input, error) {
	rawRefund, _ := cmd.Flags().GetString("refund-status")
	refund, err := model.ParseRefundStatus(rawRefund)
	if err != nil {
		return letter.Input{}, err
	}
	rawDup, _ := cmd.Flags().GetString("duplicate-status")
	dup, err := model.ParseDuplicateStatus(rawDup)
	if err != nil {
		return letter.Input{}, err
	}

	today := time.Now()
	if raw, _ := cmd.Flags().GetString("date"); raw != "" {
		today, err = time.Parse(time.DateOnly, raw)
		if err != nil {
			return letter.Input{}, fmt.Errorf("invalid --date: %w", err)
		}
	}

	bank := c.BankName
	if cmd.Flags().Changed("bank") {
		name, _ := cmd.Flags().GetString("bank")
		bank = &name
	}

	return letter.Input{
		Case:            c,
		Account:         cfg.Account,
		BankName:        bank,
		RefundStatus:    refund,
		DuplicateStatus: dup,
		Today:           today,
	}, nil
}

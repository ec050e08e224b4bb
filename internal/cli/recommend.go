package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/rebuttal/internal/evidence"
	"github.com/sprite-ai/rebuttal/internal/model"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <case-file>",
	Short: "Print the evidence checklist for a dispute",
	Long: `Print the evidence fields the merchant should upload for a dispute,
in display order, with their upload state.

Examples:
  rebuttal recommend dispute.yaml
  rebuttal recommend dispute.yaml --matrix -f json --color`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().Bool("matrix", false, "use the product-type evidence matrix")
}

type recommendOutput struct {
	Fields  evidence.FieldSet `json:"fields" yaml:"fields"`
	Missing []evidence.Key    `json:"missing" yaml:"missing"`
}

func runRecommend(cmd *cobra.Command, args []string) error {
	c, err := files.Load(args[0])
	if err != nil {
		return err
	}

	fields := evidence.Recommend(c, matrixEnabled(cmd))
	missing := evidence.Missing(fields, c)
	if missing == nil {
		missing = []evidence.Key{}
	}

	out := cmd.OutOrStdout()
	format, _ := cmd.Flags().GetString("format")
	if format == "text" {
		return outputChecklist(out, c, fields, missing)
	}
	return writeStructured(cmd, out, format, recommendOutput{Fields: fields, Missing: missing})
}

func outputChecklist(w io.Writer, c model.DisputeCase, fields evidence.FieldSet, missing []evidence.Key) error {
	isMissing := make(map[evidence.Key]bool, len(missing))
	for _, k := range missing {
		isMissing[k] = true
	}

	id := c.ID
	if id == "" {
		id = "(no id)"
	}
	fmt.Fprintf(w, "Dispute %s: %s, product %s\n\n", id, c.Reason.Normalize(), c.ProductType)
	for _, f := range fields {
		box := "[x]"
		if isMissing[f.Key] {
			box = "[ ]"
		}
		fmt.Fprintf(w, "  %s %s\n", box, f.Label)
		if f.Description != "" {
			fmt.Fprintf(w, "      %s\n", f.Description)
		}
	}
	_, err := fmt.Fprintf(w, "\n%d of %d uploaded\n", len(fields)-len(missing), len(fields))
	return err
}

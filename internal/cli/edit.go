package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/rebuttal/internal/model"
	"github.com/sprite-ai/rebuttal/internal/session"
	"github.com/sprite-ai/rebuttal/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <case-file>",
	Short: "Open the interactive dispute editor",
	Long: `Open a terminal editor for a dispute: the evidence checklist on the
left, the cover letter on the right. The letter regenerates as you change
the product type, sub-status or bank until you edit it by hand.

Saving (ctrl+s) writes the case back to <case-file>.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().Bool("matrix", false, "use the product-type evidence matrix")
}

func runEdit(cmd *cobra.Command, args []string) error {
	path := args[0]
	c, err := files.Load(path)
	if err != nil {
		return err
	}

	sess := session.New(session.Options{
		Case:          c,
		Account:       cfg.Account,
		MatrixEnabled: matrixEnabled(cmd),
	})

	log := slog.Default().With("module", "edit", "case_id", c.ID)
	saved, err := tui.Run(sess, func(updated model.DisputeCase) error {
		if err := files.Save(path, updated); err != nil {
			return err
		}
		log.Info("case saved", "path", path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	if saved {
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", path)
	}
	return nil
}

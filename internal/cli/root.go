// Package cli wires the rebuttal commands.
package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sprite-ai/rebuttal/internal/config"
	"github.com/sprite-ai/rebuttal/internal/store"
)

// cfg is resolved once per invocation in the root pre-run hook.
var cfg = config.Default()

// files resolves case paths against the working directory.
var files = store.Files{}

var rootCmd = &cobra.Command{
	Use:   "rebuttal",
	Short: "Evidence checklists and cover letters for chargeback disputes",
	Long: `rebuttal recommends which evidence to upload for a card dispute and
drafts the cover letter that accompanies it.

Dispute records are YAML or JSON files. Configuration is read from
./rebuttal.yaml (or --config) and REBUTTAL_* environment variables.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default ./rebuttal.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(recommendCmd, composeCmd, editCmd, serveCmd, versionCmd)
}

func loadConfig(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		loaded.Log.Level = level
	}
	cfg = loaded
	config.NewLogger(cfg.Log)
	slog.Debug("config loaded", "matrix_enabled", cfg.MatrixEnabled, "file", path)
	return nil
}

// Execute runs the root command. Errors other than exit codes are printed.
func Execute() error {
	err := rootCmd.Execute()
	var exit *ExitError
	if err != nil && !errors.As(err, &exit) {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

// matrixEnabled applies the --matrix flag over the configured default.
func matrixEnabled(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("matrix") {
		on, _ := cmd.Flags().GetBool("matrix")
		return on
	}
	return cfg.MatrixEnabled
}

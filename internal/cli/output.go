package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sprite-ai/rebuttal/internal/highlight"
)

func init() {
	for _, c := range []*cobra.Command{recommendCmd, composeCmd} {
		c.Flags().StringP("format", "f", "text", "output format: text, json, yaml")
		c.Flags().Bool("color", false, "colourise json/yaml output")
	}
}

// writeStructured encodes v in the requested format, highlighted when asked.
func writeStructured(cmd *cobra.Command, w io.Writer, format string, v any) error {
	var text string
	switch format {
	case "json":
		raw, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		text = string(raw)
	case "yaml":
		raw, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		text = string(raw)
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if color, _ := cmd.Flags().GetBool("color"); color {
		text = highlight.Render(lipgloss.NewRenderer(w), format, text)
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

package highlight

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

const sample = `{
  "fields": [
    {"key": "receipt", "label": "Order receipt"}
  ]
}`

func TestLinesJSON(t *testing.T) {
	lines := Lines("json", sample)
	want := strings.Split(sample, "\n")
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i, l := range lines {
		if l.Plain() != want[i] {
			t.Errorf("line %d = %q, want %q", i, l.Plain(), want[i])
		}
	}

	coloured := false
	for _, tok := range lines[2].Tokens {
		if tok.Color != "" {
			coloured = true
		}
	}
	if !coloured {
		t.Error("expected coloured tokens on a key/value line")
	}
}

func TestLinesYAML(t *testing.T) {
	text := "fields:\n  - key: receipt\n    label: Order receipt"
	lines := Lines("yaml", text)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[1].Plain() != "  - key: receipt" {
		t.Errorf("plain mismatch: %q", lines[1].Plain())
	}
}

func TestLinesUnknownFormat(t *testing.T) {
	lines := Lines("nosuchformat123", "a\nb")
	if len(lines) != 2 || lines[0].Plain() != "a" || lines[1].Tokens[0].Color != "" {
		t.Errorf("expected plain passthrough, got %+v", lines)
	}
}

func TestRenderWithoutColourProfile(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)
	if got := Render(r, "json", sample); got != sample {
		t.Errorf("render on a non-terminal should be plain:\n%s", got)
	}
}

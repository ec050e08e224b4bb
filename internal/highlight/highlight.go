// Package highlight colours JSON and YAML output for terminals.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Line is one output line split into coloured tokens.
type Line struct {
	Tokens []Token
}

// Token is a run of text sharing one colour.
type Token struct {
	Text  string
	Color string // hex colour, empty for default
}

// Plain returns the line without colour.
func (l Line) Plain() string {
	var b strings.Builder
	for _, t := range l.Tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Lines tokenises text in the given format ("json" or "yaml").
// Unknown formats come back as plain lines.
func Lines(format, text string) []Line {
	raw := strings.Split(text, "\n")
	lexer := lexers.Get(format)
	if lexer == nil {
		return plain(raw)
	}
	iter, err := chroma.Coalesce(lexer).Tokenise(nil, text)
	if err != nil {
		return plain(raw)
	}

	style := styles.Get("dracula")
	if style == nil {
		style = styles.Fallback
	}

	out := make([]Line, 0, len(raw))
	var cur Line
	for _, tok := range iter.Tokens() {
		for i, part := range strings.Split(tok.Value, "\n") {
			if i > 0 {
				out = append(out, cur)
				cur = Line{}
			}
			if part != "" {
				cur.Tokens = append(cur.Tokens, Token{Text: part, Color: colour(style, tok.Type)})
			}
		}
	}
	out = append(out, cur)

	// Lexers emit a trailing newline for some inputs.
	if len(out) > len(raw) {
		out = out[:len(raw)]
	}
	for len(out) < len(raw) {
		out = append(out, Line{})
	}
	return out
}

// Render returns text coloured for the renderer's terminal profile.
func Render(r *lipgloss.Renderer, format, text string) string {
	lines := Lines(format, text)
	rendered := make([]string, len(lines))
	for i, l := range lines {
		var b strings.Builder
		for _, t := range l.Tokens {
			if t.Color == "" {
				b.WriteString(t.Text)
				continue
			}
			b.WriteString(r.NewStyle().Foreground(lipgloss.Color(t.Color)).Render(t.Text))
		}
		rendered[i] = b.String()
	}
	return strings.Join(rendered, "\n")
}

func plain(lines []string) []Line {
	out := make([]Line, len(lines))
	for i, l := range lines {
		out[i] = Line{Tokens: []Token{{Text: l}}}
	}
	return out
}

func colour(style *chroma.Style, tt chroma.TokenType) string {
	entry := style.Get(tt)
	if entry.Colour.IsSet() {
		return entry.Colour.String()
	}
	return ""
}

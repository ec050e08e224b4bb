package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sprite-ai/rebuttal/internal/evidence"
	"github.com/sprite-ai/rebuttal/internal/model"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	listW := m.checklistWidth()
	bodyH := m.height - 2

	checklist := m.renderChecklist(listW, bodyH)
	letterView := m.renderLetter(m.width-listW-1, bodyH)
	main := lipgloss.JoinHorizontal(lipgloss.Top, checklist, " ", letterView)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar(), m.renderFooter())
}

func (m Model) checklistWidth() int {
	w := 24
	for _, f := range m.sess.Fields() {
		if n := lipgloss.Width(f.Label) + 8; n > w {
			w = n
		}
	}
	if m.width > 0 && w > m.width/3 {
		w = m.width / 3
	}
	return max(w, 20)
}

func (m Model) renderChecklist(width, height int) string {
	snap := m.sess.Snapshot()
	missing := make(map[evidence.Key]bool, len(snap.Missing))
	for _, k := range snap.Missing {
		missing[k] = true
	}

	var b strings.Builder
	b.WriteString(panelHeaderStyle.Render("Evidence"))
	b.WriteByte('\n')

	for i, f := range snap.Fields {
		mark, style := "✓", fieldDoneStyle
		if missing[f.Key] {
			mark, style = "○", fieldMissingStyle
		}
		line := fmt.Sprintf("%s %s", mark, f.Label)
		if i == m.fieldIndex && m.focus == focusChecklist {
			style = fieldSelectedStyle
		}
		b.WriteString(style.Width(width - 4).Render(line))
		b.WriteByte('\n')
	}

	if len(snap.Fields) > 0 && m.fieldIndex < len(snap.Fields) {
		b.WriteByte('\n')
		desc := snap.Fields[m.fieldIndex].Description
		b.WriteString(fieldDescriptionStyle.Width(width - 4).Render(desc))
	}

	if m.focus == focusBank {
		b.WriteString("\n\n")
		b.WriteString(m.bank.View())
	}

	style := panelStyle
	if m.focus != focusLetter {
		style = focusedPanelStyle
	}
	return style.Width(width).Height(height - 2).Render(b.String())
}

func (m Model) renderLetter(width, height int) string {
	var b strings.Builder
	b.WriteString(panelHeaderStyle.Render("Cover letter"))
	b.WriteByte('\n')
	b.WriteString(m.editor.View())

	style := panelStyle
	if m.focus == focusLetter {
		style = focusedPanelStyle
	}
	return style.Width(width).Height(height - 2).Render(b.String())
}

func subStatusLabel(c model.DisputeCase) string {
	switch c.Reason.Normalize() {
	case model.ReasonCreditNotProcessed:
		return orUnset(string(c.RefundStatus))
	case model.ReasonDuplicate:
		return orUnset(string(c.DuplicateStatus))
	default:
		return "n/a"
	}
}

func orUnset(s string) string {
	if s == "" {
		return "unset"
	}
	return s
}

func (m Model) renderStatusBar() string {
	snap := m.sess.Snapshot()
	c := m.sess.Case()

	bank := snap.BankName
	if bank == "" {
		bank = "unset"
	}

	left := fmt.Sprintf("%s %s  %s %s  %s %s  %s %s",
		statusKeyStyle.Render("reason"), snap.Reason,
		statusKeyStyle.Render("product"), snap.ProductType,
		statusKeyStyle.Render("status"), subStatusLabel(c),
		statusKeyStyle.Render("bank"), bank,
	)

	flag := autoFlagStyle.Render("auto")
	if snap.Letter.ManuallyEdited {
		flag = editedFlagStyle.Render("edited")
	}
	right := fmt.Sprintf("%d/%d uploaded  %s", len(snap.Fields)-len(snap.Missing), len(snap.Fields), flag)

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 0)
	return statusBarStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderFooter() string {
	switch {
	case m.err != nil:
		return errorStyle.Render("error: " + m.err.Error())
	case m.notice != "":
		return noticeStyle.Render(m.notice)
	default:
		return m.help.ShortHelpView(keys.ShortHelp())
	}
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(helpHeaderStyle.Render("rebuttal — Keyboard Shortcuts"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(helpBarStyle.Render("Press ? to close help"))
	return b.String()
}

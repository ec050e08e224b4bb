// Package tui implements the Bubble Tea dispute editor.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sprite-ai/rebuttal/internal/model"
	"github.com/sprite-ai/rebuttal/internal/session"
)

type focus int

const (
	focusChecklist focus = iota
	focusLetter
	focusBank
)

// SaveFunc persists the case produced by session.Save.
type SaveFunc func(model.DisputeCase) error

// Model is the top-level Bubble Tea model for the dispute editor.
type Model struct {
	sess   *session.Session
	onSave SaveFunc

	// UI state
	width  int
	height int
	focus  focus

	// Checklist cursor
	fieldIndex int

	editor textarea.Model
	bank   textinput.Model
	help   help.Model

	showHelp bool
	notice   string
	err      error
	saved    bool
}

// New creates a new TUI model over an open session. onSave may be nil.
func New(sess *session.Session, onSave SaveFunc) Model {
	ed := textarea.New()
	ed.CharLimit = 0
	ed.MaxHeight = 0
	ed.ShowLineNumbers = false
	ed.Prompt = ""

	bank := textinput.New()
	bank.Placeholder = "Issuing bank name"
	bank.Prompt = "Bank: "

	m := Model{
		sess:   sess,
		onSave: onSave,
		editor: ed,
		bank:   bank,
		help:   help.New(),
	}
	m.syncEditor()
	return m
}

// syncEditor copies the session's displayed letter into the editor.
func (m *Model) syncEditor() {
	if text := m.sess.Letter().Text; m.editor.Value() != text {
		m.editor.SetValue(text)
	}
}

// Saved reports whether the case was saved at least once.
func (m Model) Saved() bool {
	return m.saved
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusLetter {
		return m.updateEditor(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	if m.focus == focusBank {
		return m.updateBank(msg)
	}

	m.notice, m.err = "", nil
	switch {
	case key.Matches(msg, keys.Focus):
		m.toggleFocus()
		return m, nil

	case key.Matches(msg, keys.ProductType):
		m.sess.SetProductType(nextProductType(m.sess.Snapshot().ProductType))
		m.afterChange()
		return m, nil

	case key.Matches(msg, keys.SubStatus):
		m.cycleSubStatus()
		return m, nil

	case key.Matches(msg, keys.Bank):
		m.bank.SetValue(m.sess.Snapshot().BankName)
		m.bank.CursorEnd()
		m.editor.Blur()
		m.focus = focusBank
		return m, m.bank.Focus()

	case key.Matches(msg, keys.Save):
		m.save()
		return m, nil

	case key.Matches(msg, keys.Reset):
		m.sess.EditLetter("")
		m.syncEditor()
		m.notice = "letter regenerated"
		return m, nil
	}

	if m.focus == focusLetter {
		return m.updateEditor(msg)
	}

	switch {
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
	case key.Matches(msg, keys.Down):
		if m.fieldIndex < len(m.sess.Fields())-1 {
			m.fieldIndex++
		}
	case key.Matches(msg, keys.Up):
		if m.fieldIndex > 0 {
			m.fieldIndex--
		}
	}
	return m, nil
}

func (m *Model) toggleFocus() {
	if m.focus == focusLetter {
		m.editor.Blur()
		m.focus = focusChecklist
		return
	}
	m.focus = focusLetter
	m.showHelp = false
	m.editor.Focus()
}

// updateEditor forwards input to the textarea and records the result as a
// manual edit when the text changed.
func (m Model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if after := m.editor.Value(); after != before {
		m.sess.EditLetter(after)
		m.syncEditor()
	}
	return m, cmd
}

func (m Model) updateBank(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Confirm):
		m.sess.SetBankName(m.bank.Value())
		m.leaveBank()
		m.afterChange()
		return m, nil
	case key.Matches(msg, keys.Cancel):
		m.leaveBank()
		return m, nil
	}
	var cmd tea.Cmd
	m.bank, cmd = m.bank.Update(msg)
	return m, cmd
}

func (m *Model) leaveBank() {
	m.bank.Blur()
	m.focus = focusChecklist
}

// afterChange refreshes derived UI state after a session input changed.
func (m *Model) afterChange() {
	m.syncEditor()
	if n := len(m.sess.Fields()); m.fieldIndex >= n {
		m.fieldIndex = max(n-1, 0)
	}
}

func (m *Model) cycleSubStatus() {
	snap := m.sess.Snapshot()
	switch snap.Reason {
	case model.ReasonCreditNotProcessed:
		m.sess.SetRefundStatus(nextRefundStatus(snap.RefundStatus))
	case model.ReasonDuplicate:
		m.sess.SetDuplicateStatus(nextDuplicateStatus(snap.DuplicateStatus))
	default:
		m.notice = fmt.Sprintf("%s disputes have no sub-status", snap.Reason)
		return
	}
	m.afterChange()
}

func (m *Model) save() {
	c := m.sess.Save()
	if m.onSave != nil {
		if err := m.onSave(c); err != nil {
			m.err = err
			return
		}
	}
	m.saved = true
	m.notice = "saved"
}

func (m *Model) resize() {
	listW := m.checklistWidth()
	edW := m.width - listW - 5
	edH := m.height - 5
	m.editor.SetWidth(max(edW, 10))
	m.editor.SetHeight(max(edH, 3))
	m.bank.Width = max(listW-10, 10)
	m.help.Width = m.width
}

func nextProductType(p model.ProductType) model.ProductType {
	for i, candidate := range model.ProductTypes {
		if candidate == p {
			return model.ProductTypes[(i+1)%len(model.ProductTypes)]
		}
	}
	return model.ProductTypes[0]
}

var (
	refundCycle    = []model.RefundStatus{model.RefundUnset, model.RefundIssued, model.RefundNotOwed}
	duplicateCycle = []model.DuplicateStatus{model.DuplicateUnset, model.IsDuplicate, model.IsNotDuplicate}
)

func nextRefundStatus(r model.RefundStatus) model.RefundStatus {
	for i, s := range refundCycle {
		if s == r {
			return refundCycle[(i+1)%len(refundCycle)]
		}
	}
	return refundCycle[0]
}

func nextDuplicateStatus(d model.DuplicateStatus) model.DuplicateStatus {
	for i, s := range duplicateCycle {
		if s == d {
			return duplicateCycle[(i+1)%len(duplicateCycle)]
		}
	}
	return duplicateCycle[0]
}

// Run starts the dispute editor and blocks until the user quits.
func Run(sess *session.Session, onSave SaveFunc) (saved bool, err error) {
	p := tea.NewProgram(New(sess, onSave), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	return final.(Model).Saved(), nil
}

package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"craftmanager/internal/adapters/tui/styles"
)

// ConfirmKeyMap defines key bindings for confirmation views
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc", "q"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel asks a yes/no question and emits the confirm message
// on yes
type ConfirmationModel struct {
	ViewState
	Title    string
	Question string
	Detail   string
	Keys     ConfirmKeyMap
	confirm  tea.Msg
}

// NewConfirmationModel creates a confirmation view that emits confirm when accepted
func NewConfirmationModel(title, question, detail string, confirm tea.Msg) *ConfirmationModel {
	return &ConfirmationModel{
		Title:    title,
		Question: question,
		Detail:   detail,
		Keys:     DefaultConfirmKeys,
		confirm:  confirm,
	}
}

// Init initializes the confirmation view
func (m *ConfirmationModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the confirmation view
func (m *ConfirmationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}
	}
	return m, nil
}

// HandleKeyMsg processes key messages for confirmation views.
// Returns (handled, cmd) where handled is true if the key was processed.
func (m *ConfirmationModel) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		return true, func() tea.Msg { return SwitchToBrowserMsg{} }
	case key.Matches(msg, m.Keys.Confirm):
		confirm := m.confirm
		return true, tea.Sequence(
			func() tea.Msg { return SwitchToBrowserMsg{} },
			func() tea.Msg { return confirm },
		)
	}
	return false, nil
}

// View renders the confirmation view
func (m *ConfirmationModel) View() string {
	v := NewViewBuilder().Title(m.Title)
	if m.Detail != "" {
		v.Muted(m.Detail).BlankLine()
	}
	return v.Line(RenderConfirmPrompt(m.Question)).String()
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(question)
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}

package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"craftmanager/internal/domain"
)

const (
	filterSearch = iota
	filterTags
)

// FilterModel edits the search text and tag filter of the browser
type FilterModel struct {
	ViewState
	form    *InputForm
	tagMode domain.TagMode
}

// NewFilterModel creates a new filter form
func NewFilterModel() *FilterModel {
	return &FilterModel{
		form: NewInputForm(
			NewInputField("Name contains", "e.g. lander", 100),
			NewInputField("Tags", "comma separated, e.g. crewed, mun", 200),
		),
	}
}

// Open fills the form from the current criteria
func (m *FilterModel) Open(c domain.Criteria) tea.Cmd {
	m.form.SetValue(filterSearch, c.Search)
	m.form.SetValue(filterTags, strings.Join(c.Tags, ", "))
	m.form.SetFocus(filterSearch)
	m.tagMode = c.TagMode
	m.ClearMessage()
	return m.form.Init()
}

// Init initializes the filter form
func (m *FilterModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the filter form
func (m *FilterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			applied := FilterAppliedMsg{
				Search: m.form.Value(filterSearch),
				Tags:   m.form.ListValue(filterTags),
			}
			return m, func() tea.Msg { return applied }
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// View renders the filter form
func (m *FilterModel) View() string {
	return NewViewBuilder().
		Title("Filter").
		Subtitle("Tags match "+m.tagMode.String()+" of the listed tags (m in the list toggles)").
		Line(m.form.RenderFields()).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Raw(m.form.RenderHelp("apply")).
		String()
}

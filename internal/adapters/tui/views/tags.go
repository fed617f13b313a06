package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"craftmanager/internal/application"
)

// TagsModel edits the full tag set of one craft
type TagsModel struct {
	ViewState
	form *InputForm
	path string
	name string
}

// NewTagsModel creates a new tag editor
func NewTagsModel() *TagsModel {
	return &TagsModel{
		form: NewInputForm(NewInputField("Tags", "comma separated", 300)),
	}
}

// Open loads the tags of a craft into the editor
func (m *TagsModel) Open(msg SwitchToTagsMsg) tea.Cmd {
	m.path = msg.Path
	m.name = msg.Name
	m.form.SetValue(0, strings.Join(msg.Tags, ", "))
	m.form.SetFocus(0)
	m.ClearMessage()
	return m.form.Init()
}

// Init initializes the tag editor
func (m *TagsModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the tag editor
func (m *TagsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToBrowserMsg{} }
		case key.Matches(msg, m.form.Keys.Submit):
			tags := m.form.ListValue(0)
			for _, t := range tags {
				if err := application.ValidateTag(t); err != nil {
					m.SetMessage(err.Error(), true)
					return m, nil
				}
			}
			submitted := TagsSubmittedMsg{Path: m.path, Tags: tags}
			return m, func() tea.Msg { return submitted }
		}
	}

	_, cmd := m.form.Update(msg)
	return m, cmd
}

// View renders the tag editor
func (m *TagsModel) View() string {
	return NewViewBuilder().
		Title("Tags").
		Subtitle(m.name).
		Line(m.form.RenderFields()).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Raw(m.form.RenderHelp("save")).
		String()
}

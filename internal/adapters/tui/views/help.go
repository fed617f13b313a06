package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"craftmanager/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel lists every browser key binding
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	k := BrowserKeys
	v := NewViewBuilder().
		Title("Craft Manager Help").
		Subtitle("Browse, filter and tag the craft of a KSP save")

	v.Section("Navigation")
	for _, b := range []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End, k.Select} {
		v.Raw(helpLine(b))
	}
	v.BlankLine()

	v.Section("Filter and sort")
	for _, b := range []key.Binding{k.Filter, k.VAB, k.SPH, k.Sub, k.TagMode, k.Sort, k.Reverse, k.Clear} {
		v.Raw(helpLine(b))
	}
	v.BlankLine()

	v.Section("Craft")
	for _, b := range []key.Binding{k.Tags, k.Copy, k.View, k.Reveal} {
		v.Raw(helpLine(b))
	}
	v.BlankLine()

	v.Section("General")
	for _, b := range []key.Binding{k.Rescan, k.Prune, k.Help, k.Quit} {
		v.Raw(helpLine(b))
	}
	v.BlankLine()

	v.Section("Flags")
	v.Line("  " + styles.FlagMissing.Render("M") + styles.HelpDesc.Render("  uses parts that are not installed"))
	v.Line("  " + styles.FlagLocked.Render("L") + styles.HelpDesc.Render("  uses parts not yet researched in this save"))
	v.BlankLine()

	v.Raw(styles.HelpDesc.Render("Press ") + styles.HelpKey.Render("esc") +
		styles.HelpDesc.Render(" or ") + styles.HelpKey.Render("?") +
		styles.HelpDesc.Render(" to close"))

	return v.String()
}

func helpLine(b key.Binding) string {
	h := b.Help()
	return "  " + styles.HelpKey.Render(padRight(h.Key, 14)) + styles.HelpDesc.Render(h.Desc) + "\n"
}

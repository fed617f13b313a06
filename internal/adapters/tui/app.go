package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"craftmanager/internal/adapters/tui/views"
	"craftmanager/internal/application"
	"craftmanager/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewFilter
	ViewTags
	ViewPrune
	ViewHelp
)

// App is the main TUI application model
type App struct {
	viewer   ports.FileViewer // nil disables viewing files
	revealer ports.Revealer   // nil disables revealing files

	state   ViewState
	browser *views.BrowserModel
	filter  *views.FilterModel
	tags    *views.TagsModel
	prune   *views.ConfirmationModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(catalog *application.Catalog, viewer ports.FileViewer, revealer ports.Revealer) *App {
	return &App{
		viewer:   viewer,
		revealer: revealer,
		state:    ViewBrowser,
		browser:  views.NewBrowserModel(catalog),
		filter:   views.NewFilterModel(),
		tags:     views.NewTagsModel(),
		prune: views.NewConfirmationModel(
			"Prune tags",
			"Remove the tags of craft that no longer exist in this save?",
			"Tags of craft in other saves are kept.",
			views.PruneConfirmedMsg{},
		),
		help: views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.filter.SetSize(msg.Width, msg.Height)
		a.tags.SetSize(msg.Width, msg.Height)
		a.prune.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToFilterMsg:
		a.state = ViewFilter
		return a, a.filter.Open(a.browser.Criteria())

	case views.SwitchToTagsMsg:
		a.state = ViewTags
		return a, a.tags.Open(msg)

	case views.SwitchToPruneMsg:
		a.state = ViewPrune
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil

	// Results of the forms go back to the browser
	case views.FilterAppliedMsg, views.TagsSubmittedMsg:
		a.state = ViewBrowser
		_, cmd := a.browser.Update(msg)
		return a, cmd

	case views.ViewFileMsg:
		return a, a.viewFile(msg.Path)

	case views.RevealFileMsg:
		return a, a.revealFile(msg.Path)

	case viewerFinishedMsg:
		if msg.err != nil {
			_, cmd := a.browser.Update(views.StatusMsg{Text: msg.err.Error(), IsErr: true})
			return a, cmd
		}
		return a, nil
	}

	// Background results belong to the browser whatever view is shown
	if a.state != ViewBrowser {
		if _, ok := msg.(tea.KeyMsg); !ok {
			_, cmd := a.browser.Update(msg)
			return a, cmd
		}
	}

	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewFilter:
		_, cmd = a.filter.Update(msg)
	case ViewTags:
		_, cmd = a.tags.Update(msg)
	case ViewPrune:
		_, cmd = a.prune.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type viewerFinishedMsg struct{ err error }

func (a *App) viewFile(path string) tea.Cmd {
	if a.viewer == nil {
		return nil
	}

	cmd, err := a.viewer.Command(path)
	if err != nil {
		return func() tea.Msg {
			return viewerFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return viewerFinishedMsg{err: err}
	})
}

func (a *App) revealFile(path string) tea.Cmd {
	if a.revealer == nil {
		return nil
	}
	revealer := a.revealer
	return func() tea.Msg {
		if err := revealer.Reveal(path); err != nil {
			return views.StatusMsg{Text: err.Error(), IsErr: true}
		}
		return views.StatusMsg{Text: "Revealed " + path}
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewFilter:
		return a.filter.View()
	case ViewTags:
		return a.tags.View()
	case ViewPrune:
		return a.prune.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}

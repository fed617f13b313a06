package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"craftmanager/internal/adapters/tui/styles"
	"craftmanager/internal/application"
	"craftmanager/internal/application/commands"
	"craftmanager/internal/domain"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Select   key.Binding
	Filter   key.Binding
	Sort     key.Binding
	Reverse  key.Binding
	VAB      key.Binding
	SPH      key.Binding
	Sub      key.Binding
	TagMode  key.Binding
	Clear    key.Binding
	Tags     key.Binding
	Copy     key.Binding
	View     key.Binding
	Reveal   key.Binding
	Rescan   key.Binding
	Prune    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u", "h", "left"),
		key.WithHelp("h/pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d", "l", "right"),
		key.WithHelp("l/pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("g", "home"),
		key.WithHelp("g", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "select"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Sort: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort"),
	),
	Reverse: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reverse"),
	),
	VAB: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "VAB"),
	),
	SPH: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "SPH"),
	),
	Sub: key.NewBinding(
		key.WithKeys("3"),
		key.WithHelp("3", "subassemblies"),
	),
	TagMode: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "tag mode"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c", "esc"),
		key.WithHelp("c", "clear filters"),
	),
	Tags: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "tags"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	View: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "view file"),
	),
	Reveal: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "reveal"),
	),
	Rescan: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "rescan"),
	),
	Prune: key.NewBinding(
		key.WithKeys("P"),
		key.WithHelp("P", "prune tags"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// rows of chrome around the list: title, header, detail pane, status, help
const browserChrome = 22

// BrowserModel lists the catalog view and shows details of the craft under
// the cursor.
type BrowserModel struct {
	ViewState
	catalog  *application.Catalog
	pager    *Paginator
	criteria domain.Criteria
	loading  bool
	writing  bool // a tag change or prune is running

	// tags of the craft under the cursor
	tagsPath string
	tags     []string
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(catalog *application.Catalog) *BrowserModel {
	return &BrowserModel{
		catalog: catalog,
		pager:   NewPaginator(15),
	}
}

type catalogLoadedMsg struct {
	result *application.ScanResult
	err    error
}

type tagsChangedMsg struct {
	path    string
	message string
	err     error
}

type pruneDoneMsg struct {
	removed int
	err     error
}

// Init starts the first scan
func (m *BrowserModel) Init() tea.Cmd {
	return m.Reload()
}

// Reload rescans the save directory in the background. The new set is
// installed by Update when the scan completes; until then the view keeps
// rendering the previous one.
func (m *BrowserModel) Reload() tea.Cmd {
	return m.scan(commands.NewScanCommand(m.catalog))
}

// Rescan is Reload with the part catalog read again from disk
func (m *BrowserModel) Rescan() tea.Cmd {
	return m.scan(commands.NewRescanCommand(m.catalog))
}

func (m *BrowserModel) scan(cmd *commands.ScanCommand) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		result, err := cmd.Scan(context.Background())
		return catalogLoadedMsg{result: result, err: err}
	}
}

// Loading reports whether a scan is in progress
func (m *BrowserModel) Loading() bool {
	return m.loading
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case catalogLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
			return m, nil
		}
		m.catalog.Replace(msg.result)
		m.applyCriteria()
		report := msg.result.Report
		if failed := report.Failed(); failed > 0 {
			m.SetMessage(fmt.Sprintf("%d craft files could not be read", failed), true)
		} else {
			m.SetMessage(fmt.Sprintf("Loaded %d craft", report.CraftLoaded), false)
		}
		return m, nil

	case tagsChangedMsg:
		m.writing = false
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
			return m, nil
		}
		m.SetMessage(msg.message, false)
		m.tagsPath = ""
		// tag filters may now match differently
		if len(m.criteria.Tags) > 0 {
			m.applyCriteria()
		}
		m.refreshTags()
		return m, nil

	case pruneDoneMsg:
		m.writing = false
		if msg.err != nil {
			m.SetMessage(msg.err.Error(), true)
		} else {
			m.SetMessage(fmt.Sprintf("Removed tags of %d deleted craft", msg.removed), false)
		}
		return m, nil

	case FilterAppliedMsg:
		m.criteria.Search = msg.Search
		m.criteria.Tags = msg.Tags
		m.applyCriteria()
		return m, nil

	case TagsSubmittedMsg:
		return m, m.saveTags(msg.Path, msg.Tags)

	case PruneConfirmedMsg:
		m.writing = true
		catalog := m.catalog
		return m, func() tea.Msg {
			n, err := commands.NewPruneTagsCommand(catalog).Execute(context.Background())
			return pruneDoneMsg{removed: n, err: err}
		}

	case StatusMsg:
		m.SetMessage(msg.Text, msg.IsErr)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, BrowserKeys.Quit) {
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *BrowserModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, BrowserKeys.Up):
		m.pager.CursorUp()
	case key.Matches(msg, BrowserKeys.Down):
		m.pager.CursorDown()
	case key.Matches(msg, BrowserKeys.PageUp):
		m.pager.PageUp()
	case key.Matches(msg, BrowserKeys.PageDown):
		m.pager.PageDown()
	case key.Matches(msg, BrowserKeys.Home):
		m.pager.Home()
	case key.Matches(msg, BrowserKeys.End):
		m.pager.End()

	case key.Matches(msg, BrowserKeys.Select):
		if craft := m.Current(); craft != nil {
			m.catalog.Select(craft)
		}

	case key.Matches(msg, BrowserKeys.Sort):
		if m.criteria.Sort == "" {
			m.criteria.Sort = domain.SortName
		} else {
			m.criteria.Sort = m.criteria.Sort.Next()
		}
		m.applyCriteria()
	case key.Matches(msg, BrowserKeys.Reverse):
		m.criteria.Reverse = !m.criteria.Reverse
		m.applyCriteria()
	case key.Matches(msg, BrowserKeys.VAB):
		m.toggleType(domain.ConstructionVAB)
	case key.Matches(msg, BrowserKeys.SPH):
		m.toggleType(domain.ConstructionSPH)
	case key.Matches(msg, BrowserKeys.Sub):
		m.toggleType(domain.ConstructionSubassembly)
	case key.Matches(msg, BrowserKeys.TagMode):
		if m.criteria.TagMode == domain.TagModeAll {
			m.criteria.TagMode = domain.TagModeAny
		} else {
			m.criteria.TagMode = domain.TagModeAll
		}
		m.applyCriteria()
	case key.Matches(msg, BrowserKeys.Clear):
		m.criteria = domain.Criteria{}
		m.applyCriteria()

	case key.Matches(msg, BrowserKeys.Filter):
		return func() tea.Msg { return SwitchToFilterMsg{} }

	case key.Matches(msg, BrowserKeys.Tags):
		craft := m.Current()
		if craft == nil {
			return nil
		}
		if m.catalog.TagStore() == nil {
			m.SetMessage("Tagging is disabled", true)
			return nil
		}
		m.refreshTags()
		tags := m.tags
		return func() tea.Msg {
			return SwitchToTagsMsg{Path: craft.Path, Name: craft.DisplayName(), Tags: tags}
		}

	case key.Matches(msg, BrowserKeys.Copy):
		if craft := m.Current(); craft != nil {
			if err := clipboard.WriteAll(craft.Path); err != nil {
				m.SetMessage("Clipboard unavailable: "+err.Error(), true)
			} else {
				m.SetMessage("Copied "+craft.Path, false)
			}
		}

	case key.Matches(msg, BrowserKeys.View):
		if craft := m.Current(); craft != nil {
			return func() tea.Msg { return ViewFileMsg{Path: craft.Path} }
		}
	case key.Matches(msg, BrowserKeys.Reveal):
		if craft := m.Current(); craft != nil {
			return func() tea.Msg { return RevealFileMsg{Path: craft.Path} }
		}

	case key.Matches(msg, BrowserKeys.Rescan):
		if m.writing {
			m.SetMessage("Wait for the tag change to finish", true)
			return nil
		}
		m.SetMessage("Scanning...", false)
		return m.Rescan()
	case key.Matches(msg, BrowserKeys.Prune):
		if m.catalog.TagStore() != nil {
			return func() tea.Msg { return SwitchToPruneMsg{} }
		}

	case key.Matches(msg, BrowserKeys.Help):
		return func() tea.Msg { return SwitchToHelpMsg{} }
	}

	m.refreshTags()
	return nil
}

func (m *BrowserModel) toggleType(t domain.ConstructionType) {
	if m.criteria.Types == nil {
		m.criteria.Types = map[domain.ConstructionType]bool{}
	}
	if m.criteria.Types[t] {
		delete(m.criteria.Types, t)
	} else {
		m.criteria.Types[t] = true
	}
	if len(m.criteria.Types) == 0 {
		m.criteria.Types = nil
	}
	m.applyCriteria()
}

// applyCriteria refilters the catalog and puts the cursor on the selected
// craft when it is still in view.
func (m *BrowserModel) applyCriteria() {
	view := m.catalog.Filter(context.Background(), m.criteria)
	m.pager.SetTotal(len(view))

	if selected := m.catalog.Selected(); selected != nil {
		for i, c := range view {
			if c == selected {
				m.pager.SetCursor(i)
				break
			}
		}
	}
	m.refreshTags()
}

// refreshTags loads the tags of the craft under the cursor when it changed
func (m *BrowserModel) refreshTags() {
	craft := m.Current()
	if craft == nil {
		m.tagsPath, m.tags = "", nil
		return
	}
	if craft.Path == m.tagsPath {
		return
	}
	m.tagsPath = craft.Path
	m.tags = m.catalog.Tags(context.Background(), craft)
}

// saveTags replaces the tags of one craft with want
func (m *BrowserModel) saveTags(path string, want []string) tea.Cmd {
	m.writing = true
	catalog := m.catalog
	return func() tea.Msg {
		ctx := context.Background()
		craft, err := catalog.Find(path)
		if err != nil {
			return tagsChangedMsg{path: path, err: err}
		}

		have := catalog.Tags(ctx, craft)
		add, remove := diffTags(have, want)

		if len(remove) > 0 {
			if _, err := commands.NewTagCommand(catalog, path, remove, true).Execute(ctx); err != nil {
				return tagsChangedMsg{path: path, err: err}
			}
		}
		if len(add) > 0 {
			if _, err := commands.NewTagCommand(catalog, path, add, false).Execute(ctx); err != nil {
				return tagsChangedMsg{path: path, err: err}
			}
		}
		return tagsChangedMsg{
			path:    path,
			message: fmt.Sprintf("Tags of %s: +%d -%d", craft.DisplayName(), len(add), len(remove)),
		}
	}
}

func diffTags(have, want []string) (add, remove []string) {
	haveSet := make(map[string]bool, len(have))
	for _, t := range have {
		haveSet[t] = true
	}
	wantSet := make(map[string]bool, len(want))
	for _, t := range want {
		t = application.NormalizeTag(t)
		if t == "" || wantSet[t] {
			continue
		}
		wantSet[t] = true
		if !haveSet[t] {
			add = append(add, t)
		}
	}
	for _, t := range have {
		if !wantSet[t] {
			remove = append(remove, t)
		}
	}
	return add, remove
}

// Current returns the craft under the cursor
func (m *BrowserModel) Current() *domain.Craft {
	view := m.catalog.View()
	if i := m.pager.Cursor(); i >= 0 && i < len(view) {
		return view[i]
	}
	return nil
}

// Criteria returns the criteria the view was last filtered with
func (m *BrowserModel) Criteria() domain.Criteria {
	return m.criteria
}

// SetSize updates the view dimensions and the number of visible rows
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(max(height-browserChrome, 5))
}

// View renders the browser
func (m *BrowserModel) View() string {
	v := NewViewBuilder().Title("Craft Manager")

	if m.catalog.Report() == nil {
		if m.loading {
			return v.Muted("Scanning " + m.catalog.Root() + "...").String()
		}
		return v.Message(m.Message, m.MessageErr).Help(BrowserKeys.Rescan, BrowserKeys.Quit).String()
	}

	v.Subtitle(m.renderSubtitle())
	v.Line(m.renderList())
	v.Raw(m.renderDetail())
	v.BlankLine()
	v.Line(m.renderStatus())
	v.Message(m.Message, m.MessageErr)
	v.Help(
		BrowserKeys.Filter, BrowserKeys.Sort, BrowserKeys.Reverse,
		BrowserKeys.Tags, BrowserKeys.View, BrowserKeys.Help, BrowserKeys.Quit,
	)
	return v.String()
}

func (m *BrowserModel) renderSubtitle() string {
	r := m.catalog.Report()
	s := fmt.Sprintf("%s • %d craft", m.catalog.Root(), r.CraftLoaded)
	if r.Failed() > 0 {
		s += fmt.Sprintf(" • %d unreadable", r.Failed())
	}
	return s
}

func (m *BrowserModel) nameWidth() int {
	// mark, type, counts, mass, cost, flags
	const fixed = 2 + 4 + 7 + 7 + 10 + 12 + 3
	if m.Width == 0 {
		return 32
	}
	return max(m.Width-fixed-4, 12)
}

func (m *BrowserModel) renderList() string {
	view := m.catalog.View()
	nameW := m.nameWidth()

	var b strings.Builder
	header := fmt.Sprintf("  %-4s%s%7s%7s%10s%12s %s",
		"", padRight("Name", nameW), "Parts", "Stages", "Mass", "Cost", "ML")
	b.WriteString(styles.RowHeader.Render(header))
	b.WriteString("\n")

	if len(view) == 0 {
		b.WriteString(styles.MutedText.Render("  No craft match the current filters"))
		return b.String()
	}

	selected := m.catalog.Selected()
	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		b.WriteString(m.renderRow(view[i], i == m.pager.Cursor(), view[i] == selected, nameW))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if pages := m.pager.TotalPages(); pages > 1 {
		b.WriteString("\n")
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("  page %d/%d", m.pager.CurrentPage(), pages)))
	}
	return b.String()
}

func (m *BrowserModel) renderRow(c *domain.Craft, cursor, selected bool, nameW int) string {
	mark := styles.UnselectedMark
	if selected {
		mark = styles.SelectedMark.String()
	}

	cols := fmt.Sprintf("%s%7d%7d%10s%12s ",
		padRight(truncate(c.DisplayName(), nameW), nameW),
		c.PartCount, c.StageCount, FormatMass(c.Mass.Total), FormatCost(c.Cost.Total))

	if cursor {
		return mark + styles.RowCursor.Render(typeCode(c.Type)+" "+cols) + RenderFlags(c)
	}
	return mark + RenderType(c.Type) + " " + styles.Row.Render(cols) + RenderFlags(c)
}

func (m *BrowserModel) renderDetail() string {
	c := m.Current()
	if c == nil {
		return ""
	}

	var lines []string
	title := c.DisplayName()
	if c.AltName != "" && c.AltName != c.Name {
		title += styles.MutedText.Render(" (" + c.Name + ")")
	}
	lines = append(lines, styles.InputLabel.Render(title)+"  "+RenderType(c.Type)+" "+styles.MutedText.Render(c.Type.Label()))

	if c.Description != "" {
		desc := strings.SplitN(c.Description, "\n", 2)[0]
		lines = append(lines, styles.Subtitle.Render(truncate(desc, max(m.Width-10, 20))))
	}

	lines = append(lines,
		RenderLabelValue("Mass", fmt.Sprintf("%s  (dry %s, fuel %s)",
			FormatMass(c.Mass.Total), FormatMass(c.Mass.Dry), FormatMass(c.Mass.Fuel))),
		RenderLabelValue("Cost", fmt.Sprintf("%s  (dry %s, fuel %s)",
			FormatCost(c.Cost.Total), FormatCost(c.Cost.Dry), FormatCost(c.Cost.Fuel))),
		RenderLabelValue("Parts", fmt.Sprintf("%d in %d stages", c.PartCount, c.StageCount)),
		RenderLabelValue("Updated", c.UpdatedAt.Format("2006-01-02 15:04")+
			styles.MutedText.Render("  created "+c.CreatedAt.Format("2006-01-02 15:04"))),
		RenderLabelValue("Tags", RenderTags(m.tags)),
	)

	var warnings []string
	if c.MissingParts {
		warnings = append(warnings, styles.FlagMissing.Render("uses parts not installed"))
	}
	if c.LockedParts {
		warnings = append(warnings, styles.FlagLocked.Render("uses parts not yet researched"))
	}
	if len(warnings) > 0 {
		lines = append(lines, strings.Join(warnings, styles.HelpSeparator.String()))
	}

	lines = append(lines, styles.MutedText.Render(truncate(c.Path, max(m.Width-10, 20))))

	style := styles.Detail
	if m.Width > 0 {
		style = style.Width(max(m.Width-8, 20))
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *BrowserModel) renderStatus() string {
	c := m.criteria
	var parts []string

	sort := "load order"
	if c.Sort != "" {
		sort = string(c.Sort)
	}
	if c.Reverse {
		sort += " ↑"
	}
	parts = append(parts, styles.StatusKey.Render("sort")+sort)

	for _, t := range domain.ConstructionTypes {
		chip := styles.FilterOff
		if c.Types[t] {
			chip = styles.FilterOn
		}
		parts = append(parts, chip.Render(typeCode(t)))
	}

	if len(c.Tags) > 0 {
		parts = append(parts, styles.StatusKey.Render("tags "+c.TagMode.String())+strings.Join(c.Tags, ","))
	}
	if c.Search != "" {
		parts = append(parts, styles.StatusKey.Render("search")+c.Search)
	}

	parts = append(parts, styles.StatusText.Render(
		fmt.Sprintf("%d/%d", len(m.catalog.View()), len(m.catalog.All()))))

	return strings.Join(parts, " ")
}

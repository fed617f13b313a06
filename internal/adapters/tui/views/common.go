package views

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Messages for view switching, handled by the app
type (
	SwitchToBrowserMsg struct{}
	SwitchToHelpMsg    struct{}
	SwitchToFilterMsg  struct{}
	SwitchToPruneMsg   struct{}
)

// SwitchToTagsMsg opens the tag editor for one craft
type SwitchToTagsMsg struct {
	Path string
	Name string
	Tags []string
}

// ViewFileMsg asks the app to page through a craft file
type ViewFileMsg struct{ Path string }

// RevealFileMsg asks the app to show a craft file in the file manager
type RevealFileMsg struct{ Path string }

// StatusMsg shows a one-line message in the browser
type StatusMsg struct {
	Text  string
	IsErr bool
}

// FilterAppliedMsg carries the search text and tags from the filter form
type FilterAppliedMsg struct {
	Search string
	Tags   []string
}

// TagsSubmittedMsg carries the edited tag set for one craft
type TagsSubmittedMsg struct {
	Path string
	Tags []string
}

// PruneConfirmedMsg asks the browser to remove orphaned tags
type PruneConfirmedMsg struct{}

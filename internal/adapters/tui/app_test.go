package tui

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"craftmanager/internal/adapters/tui/views"
	"craftmanager/internal/application"
	"craftmanager/internal/ports"
)

type emptySource struct{}

func (emptySource) Root() string                           { return "/saves/empty" }
func (emptySource) Scan(context.Context) ([]string, error) { return nil, nil }
func (emptySource) Read(string) (*ports.CraftFile, error)  { return nil, errors.New("no files") }

type fakeRevealer struct{ revealed string }

func (r *fakeRevealer) Reveal(path string) error {
	r.revealed = path
	return nil
}

type failingViewer struct{}

func (failingViewer) Command(string) (*exec.Cmd, error) { return nil, errors.New("no pager") }

func newTestApp(revealer ports.Revealer) *App {
	logger := log.New(io.Discard)
	catalog := application.NewCatalog(emptySource{}, application.NewCraftBuilder(nil, "test"), nil, logger)
	return NewApp(catalog, failingViewer{}, revealer)
}

func TestApp_SwitchViews(t *testing.T) {
	app := newTestApp(nil)

	tests := []struct {
		msg  tea.Msg
		want ViewState
	}{
		{views.SwitchToHelpMsg{}, ViewHelp},
		{views.SwitchToBrowserMsg{}, ViewBrowser},
		{views.SwitchToFilterMsg{}, ViewFilter},
		{views.FilterAppliedMsg{Search: "x"}, ViewBrowser},
		{views.SwitchToTagsMsg{Path: "/a.craft", Name: "A"}, ViewTags},
		{views.SwitchToBrowserMsg{}, ViewBrowser},
		{views.SwitchToPruneMsg{}, ViewPrune},
	}
	for _, tt := range tests {
		app.Update(tt.msg)
		if app.state != tt.want {
			t.Errorf("after %T state = %d, want %d", tt.msg, app.state, tt.want)
		}
	}
}

func TestApp_RevealFile(t *testing.T) {
	revealer := &fakeRevealer{}
	app := newTestApp(revealer)

	_, cmd := app.Update(views.RevealFileMsg{Path: "/saves/empty/Ships/VAB/A.craft"})
	if cmd == nil {
		t.Fatal("expected reveal command")
	}
	msg, ok := cmd().(views.StatusMsg)
	if !ok || msg.IsErr {
		t.Errorf("reveal produced %#v", msg)
	}
	if revealer.revealed != "/saves/empty/Ships/VAB/A.craft" {
		t.Errorf("revealed %q", revealer.revealed)
	}
}

func TestApp_ViewerError(t *testing.T) {
	app := newTestApp(nil)

	_, cmd := app.Update(views.ViewFileMsg{Path: "/a.craft"})
	if cmd == nil {
		t.Fatal("expected viewer command")
	}
	if msg, ok := cmd().(viewerFinishedMsg); !ok || msg.err == nil {
		t.Errorf("viewer produced %#v", msg)
	}
}

package pager

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"craftmanager/internal/ports"
)

// Viewer implements ports.FileViewer with the user's pager
type Viewer struct {
	lookPath func(string) (string, error)
	getenv   func(string) string
}

// Ensure Viewer implements FileViewer
var _ ports.FileViewer = (*Viewer)(nil)

// NewViewer creates a new pager-backed viewer
func NewViewer() *Viewer {
	return &Viewer{
		lookPath: exec.LookPath,
		getenv:   os.Getenv,
	}
}

// Command returns an exec.Cmd that pages path.
// This is useful for integrating with bubbletea's ExecProcess
func (v *Viewer) Command(path string) (*exec.Cmd, error) {
	args, err := v.findPager()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(args[0], append(args[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

// findPager returns the pager command and its arguments
func (v *Viewer) findPager() ([]string, error) {
	// Check $PAGER first; it may carry flags ("less -R")
	if pager := strings.Fields(v.getenv("PAGER")); len(pager) > 0 {
		return pager, nil
	}

	// Try common pagers
	pagers := [][]string{{"less", "-R"}, {"more"}, {"view"}}
	for _, p := range pagers {
		if path, err := v.lookPath(p[0]); err == nil {
			return append([]string{path}, p[1:]...), nil
		}
	}

	return nil, fmt.Errorf("no pager found: set $PAGER environment variable")
}

package desktop

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"craftmanager/internal/ports"
)

// Revealer implements ports.Revealer by opening a craft's folder in the
// desktop file manager
type Revealer struct {
	root string
	goos string
}

// Ensure Revealer implements ports.Revealer
var _ ports.Revealer = (*Revealer)(nil)

// NewRevealer creates a revealer restricted to files under root
func NewRevealer(root string) *Revealer {
	return &Revealer{root: root, goos: runtime.GOOS}
}

// Reveal opens the folder containing filePath
func (r *Revealer) Reveal(filePath string) error {
	cmd, err := r.Command(filePath)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command builds the platform command that reveals filePath
func (r *Revealer) Command(filePath string) (*exec.Cmd, error) {
	relPath, err := filepath.Rel(r.root, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get relative path: %w", err)
	}

	if strings.HasPrefix(relPath, "..") {
		return nil, fmt.Errorf("file is outside the save directory: %s", filePath)
	}

	dir := filepath.Dir(filePath)

	switch r.goos {
	case "darwin":
		return exec.Command("open", "-R", filePath), nil
	case "linux":
		return exec.Command("xdg-open", dir), nil
	case "windows":
		return exec.Command("explorer", "/select,", filePath), nil
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", r.goos)
	}
}

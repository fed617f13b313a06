package ports

import "os/exec"

// FileViewer shows a file read-only in an external program
type FileViewer interface {
	// Command returns an exec.Cmd for viewing a file.
	// This is useful for integrating with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}

// Revealer shows a file's folder in the desktop file manager
type Revealer interface {
	Reveal(filePath string) error
}

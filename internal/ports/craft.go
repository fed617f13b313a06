package ports

import (
	"context"
	"time"
)

// CraftFile is the raw content of a craft file plus the file metadata
// captured when it was read
type CraftFile struct {
	Path      string // Absolute path
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CraftSource discovers and reads craft files
type CraftSource interface {
	// Root returns the directory being scanned
	Root() string

	// Scan returns the paths of every craft file under the root, in
	// enumeration order. An unreadable root is an error; unreadable
	// entries below it are skipped.
	Scan(ctx context.Context) ([]string, error)

	// Read returns the bytes and timestamps of a single craft file
	Read(path string) (*CraftFile, error)
}

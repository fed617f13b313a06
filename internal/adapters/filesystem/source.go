package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/djherbis/times"

	"craftmanager/internal/ports"
)

// CraftExt is the extension of craft files
const CraftExt = ".craft"

// Source implements ports.CraftSource over a directory tree
type Source struct {
	root string
}

// Ensure Source implements CraftSource
var _ ports.CraftSource = (*Source)(nil)

// NewSource creates a craft source rooted at root
func NewSource(root string) *Source {
	return &Source{root: root}
}

// Root returns the scanned directory
func (s *Source) Root() string {
	return s.root
}

// Scan walks the root recursively and returns every craft file path.
// Hidden directories are skipped.
func (s *Source) Scan(ctx context.Context) ([]string, error) {
	info, err := os.Stat(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read save directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", s.root)
	}

	var paths []string
	err = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		if d.IsDir() {
			if path != s.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.EqualFold(filepath.Ext(d.Name()), CraftExt) {
			abs, err := filepath.Abs(path)
			if err != nil {
				abs = path
			}
			paths = append(paths, abs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return paths, nil
}

// Read loads a craft file and its timestamps
func (s *Source) Read(path string) (*ports.CraftFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	created, updated, err := fileTimes(path)
	if err != nil {
		return nil, err
	}

	return &ports.CraftFile{
		Path:      path,
		Data:      data,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

// fileTimes returns the creation and modification times of a file.
// Creation falls back to the change time, then the modification time,
// on filesystems that do not record birth times.
func fileTimes(path string) (created, updated time.Time, err error) {
	ts, err := times.Stat(path)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	updated = ts.ModTime()
	switch {
	case ts.HasBirthTime():
		created = ts.BirthTime()
	case ts.HasChangeTime():
		created = ts.ChangeTime()
	default:
		created = updated
	}

	return created, updated, nil
}

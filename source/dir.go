package source

import (
	"context"
	"os"
	"path/filepath"
)

// Dir implements Fetcher over a local directory.
type Dir struct {
	root string
}

// NewDir creates a Fetcher rooted at the given directory.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Fetch reads the named file from the directory.
func (d *Dir) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// os.ReadFile already returns os.ErrNotExist for missing files, which is
	// our ErrNotFound.
	return os.ReadFile(filepath.Join(d.root, name))
}

var _ Fetcher = (*Dir)(nil)

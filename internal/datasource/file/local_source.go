// Package file implements datasource.Source for files on local disk, such as
// the prepared CSV extracts.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local opens a single file from the local disk.
type Local struct{ path string }

// NewLocal returns a Local bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// InDir returns a Local for name inside dir.
func InDir(dir, name string) *Local { return NewLocal(filepath.Join(dir, name)) }

// Name returns the file path.
func (l *Local) Name() string { return l.path }

// Open opens the file for reading. A canceled ctx is reported before the
// filesystem is touched. Filesystem errors keep their cause, so
// errors.Is(err, os.ErrNotExist) works for missing files.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}

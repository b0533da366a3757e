package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Dir is a temporary directory owned by a single request. Everything
// written into it is removed by Close.
type Dir struct {
	path string
}

// New creates a fresh directory under the system temp dir.
func New(prefix string) (*Dir, error) {
	if prefix == "" {
		prefix = "extract-"
	}
	path, err := os.MkdirTemp("", prefix+"*")
	if err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Dir{path: path}, nil
}

// Path returns the directory location.
func (d *Dir) Path() string {
	return d.path
}

// Join returns name resolved inside the directory.
func (d *Dir) Join(name string) string {
	return filepath.Join(d.path, filepath.Base(name))
}

// Save copies r into a file called name inside the directory and returns
// its full path.
func (d *Dir) Save(name string, r io.Reader) (string, error) {
	dst := d.Join(name)
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", name, err)
	}
	return dst, nil
}

// Close removes the directory and its contents. It is safe to call more
// than once.
func (d *Dir) Close() error {
	if d == nil || d.path == "" {
		return nil
	}
	err := os.RemoveAll(d.path)
	d.path = ""
	return err
}

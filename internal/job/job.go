// Package job owns the per-run working directory and the atomic placement of
// final artifacts. Every command gets its own scratch directory; nothing is
// ever written directly to the destination path.
package job

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/scenecast/scenecast/internal/config"
)

// Scratch is a run-scoped temporary directory. Concurrent jobs never share
// one; Cleanup must run on every exit path.
type Scratch struct {
	ID  string
	Dir string
}

// NewScratch creates a fresh working directory for one job.
func NewScratch() (*Scratch, error) {
	dir, err := os.MkdirTemp("", config.WorkDirPrefix)
	if err != nil {
		return nil, errors.Wrap(err, "create working directory")
	}
	return &Scratch{ID: uuid.NewString(), Dir: dir}, nil
}

// Path returns a file path inside the working directory.
func (s *Scratch) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Cleanup removes the working directory and everything in it.
func (s *Scratch) Cleanup() {
	if s != nil && s.Dir != "" {
		os.RemoveAll(s.Dir)
	}
}

// MoveIntoPlace moves a finished artifact from the scratch directory to its
// destination. Rename first; fall back to copy+remove when the destination
// is on another filesystem.
func MoveIntoPlace(src, dst string) error {
	if dir := filepath.Dir(dst); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create output directory %s", dir)
		}
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "open artifact")
	}
	defer in.Close()
	out, err := os.Create(dst)
	if err != nil {
		return errors.Wrap(err, "create destination")
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return errors.Wrap(err, "copy artifact")
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return errors.Wrap(err, "flush destination")
	}
	os.Remove(src)
	return nil
}

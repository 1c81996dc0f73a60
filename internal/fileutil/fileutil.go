package fileutil

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Action describes what committing a staged file did to its target.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionUnchanged Action = "unchanged"
)

// WriteFileAtomic writes data to a temporary sibling of path and renames it
// into place, so readers observe either the old or the new content.
func WriteFileAtomic(path string, data []byte, mode os.FileMode) error {
	tmp, err := writeTemp(path, data, mode)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

func writeTemp(path string, data []byte, mode os.FileMode) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create directory %q: %w", dir, err)
	}
	out, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmp := out.Name()
	cleanup := func() {
		_ = out.Close()
		_ = os.Remove(tmp)
	}

	if _, err := out.Write(data); err != nil {
		cleanup()
		return "", fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := out.Sync(); err != nil {
		cleanup()
		return "", fmt.Errorf("sync %s: %w", tmp, err)
	}
	if err := out.Chmod(mode); err != nil {
		cleanup()
		return "", fmt.Errorf("chmod %s: %w", tmp, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close %s: %w", tmp, err)
	}
	return tmp, nil
}

// Change reports the outcome for one file of a Batch.
type Change struct {
	Path   string
	Action Action
}

type stagedFile struct {
	path   string
	tmp    string
	action Action
}

// Batch stages several file writes and commits them together. Nothing under
// the target paths changes until Commit; Discard removes staged temp files.
// Files whose content already matches are reported unchanged and left alone.
type Batch struct {
	staged []stagedFile
}

// Stage writes data to a temp file next to path.
func (b *Batch) Stage(path string, data []byte, mode os.FileMode) error {
	for _, s := range b.staged {
		if s.path == path {
			return fmt.Errorf("stage %s: path already staged", path)
		}
	}

	action := ActionCreated
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if bytes.Equal(existing, data) {
			b.staged = append(b.staged, stagedFile{path: path, action: ActionUnchanged})
			return nil
		}
		action = ActionUpdated
		if info, statErr := os.Stat(path); statErr == nil {
			mode = info.Mode().Perm()
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}

	tmp, err := writeTemp(path, data, mode)
	if err != nil {
		return err
	}
	b.staged = append(b.staged, stagedFile{path: path, tmp: tmp, action: action})
	return nil
}

// Commit renames every staged file into place in stage order. On failure the
// changes already applied are returned alongside the error and the remaining
// temp files are removed.
func (b *Batch) Commit() ([]Change, error) {
	changes := make([]Change, 0, len(b.staged))
	for i, s := range b.staged {
		if s.tmp != "" {
			if err := os.Rename(s.tmp, s.path); err != nil {
				b.staged = b.staged[i:]
				b.Discard()
				return changes, fmt.Errorf("rename %s: %w", s.path, err)
			}
		}
		changes = append(changes, Change{Path: s.path, Action: s.action})
	}
	b.staged = nil
	return changes, nil
}

// Discard removes every staged temp file without touching targets.
func (b *Batch) Discard() {
	for _, s := range b.staged {
		if s.tmp != "" {
			_ = os.Remove(s.tmp)
		}
	}
	b.staged = nil
}

// Len reports how many files are staged.
func (b *Batch) Len() int {
	return len(b.staged)
}

package emitter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lerrors "github.com/conneroisu/leafgen/internal/errors"
	"github.com/conneroisu/leafgen/internal/validation"
)

// PathFor returns the file the named view is written to.
func (e *Emitter) PathFor(name string) (string, error) {
	return safeJoin(e.output.Dir, name+e.output.Extension)
}

// ViewFor maps a file in the output directory back to its view name. It
// reports false for files that do not belong to a registered view.
func (e *Emitter) ViewFor(path string) (string, bool) {
	rel, err := filepath.Rel(filepath.Clean(e.output.Dir), filepath.Clean(path))
	if err != nil || strings.Contains(rel, string(filepath.Separator)) {
		return "", false
	}
	name, found := strings.CutSuffix(rel, e.output.Extension)
	if !found {
		return "", false
	}
	if _, ok := e.registry.Get(name); !ok {
		return "", false
	}
	return name, true
}

// Dir is the output directory.
func (e *Emitter) Dir() string {
	return e.output.Dir
}

// safeJoin joins name onto dir and rejects results outside dir.
func safeJoin(dir, name string) (string, error) {
	if err := validation.ValidateFileName(name); err != nil {
		return "", lerrors.ErrPathTraversal(name)
	}
	path := filepath.Join(dir, name)
	rel, err := filepath.Rel(filepath.Clean(dir), path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", lerrors.ErrPathTraversal(name)
	}
	return path, nil
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return lerrors.NewIOError(lerrors.ErrCodeWriteFailed, "cannot create output directory", err).WithFile(dir)
	}
	return nil
}

// fileHash hashes the current content of path.
func fileHash(path string) (string, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return contentHash(content), true
}

// writeAtomic writes content next to path and renames it into place, so
// readers never see a partial file.
func writeAtomic(path string, content []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

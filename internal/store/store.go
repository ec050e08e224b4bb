// Package store reads and writes dispute records on disk.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/sprite-ai/rebuttal/internal/model"
)

var (
	// ErrNotFound is returned when a dispute record does not exist.
	ErrNotFound = errors.New("dispute record not found")
	// ErrOutsideDir is returned when a path would leave the store directory.
	ErrOutsideDir = errors.New("path outside store directory")
)

// Files stores one dispute per file. When Dir is set, paths must be relative
// and stay within it; with no Dir any path is used as given.
type Files struct {
	Dir string
}

func (f Files) resolve(path string) (string, error) {
	if f.Dir == "" {
		return path, nil
	}
	if !filepath.IsLocal(path) {
		return "", fmt.Errorf("%q: %w", path, ErrOutsideDir)
	}
	return filepath.Join(f.Dir, path), nil
}

// Load decodes a dispute record. JSON records are accepted since JSON is valid YAML.
func (f Files) Load(path string) (model.DisputeCase, error) {
	full, err := f.resolve(path)
	if err != nil {
		return model.DisputeCase{}, err
	}
	raw, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.DisputeCase{}, fmt.Errorf("%s: %w", full, ErrNotFound)
		}
		return model.DisputeCase{}, fmt.Errorf("reading %s: %w", full, err)
	}

	var c model.DisputeCase
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return model.DisputeCase{}, fmt.Errorf("parsing %s: %w", full, err)
	}
	if c.Evidence == nil {
		c.Evidence = map[string]any{}
	}
	return c, nil
}

// Save writes the dispute record as YAML, replacing any existing file.
func (f Files) Save(path string, c model.DisputeCase) error {
	full, err := f.resolve(path)
	if err != nil {
		return err
	}
	raw, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", full, err)
	}

	tmp := full + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", full, err)
	}
	if err := os.Rename(tmp, full); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("writing %s: %w", full, err)
	}
	return nil
}

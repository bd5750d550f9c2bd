// Package store persists the user's custom tab order between runs.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// File persists one ordered name sequence per editor identity in a single
// YAML document. Writes happen only on explicit user reorders, so the
// simple rewrite-the-file strategy is enough.
type File struct {
	path string
}

type document struct {
	Orders map[string][]string `yaml:"orders"`
}

// NewFile returns a store backed by the given path. The file is created
// lazily on first save.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load returns the persisted order for an editor identity. A missing file
// or missing identity yields an empty order, not an error.
func (f *File) Load(editorID string) ([]string, error) {
	doc, err := f.read()
	if err != nil {
		return nil, err
	}
	return append([]string(nil), doc.Orders[editorID]...), nil
}

// Save replaces the order for an editor identity, preserving entries for
// other identities.
func (f *File) Save(editorID string, names []string) error {
	doc, err := f.read()
	if err != nil {
		return err
	}
	if doc.Orders == nil {
		doc.Orders = map[string][]string{}
	}
	doc.Orders[editorID] = append([]string(nil), names...)

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode tab order: %w", err)
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create order directory: %w", err)
		}
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil {
		return fmt.Errorf("write tab order: %w", err)
	}
	return nil
}

func (f *File) read() (document, error) {
	var doc document
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return doc, nil
		}
		return doc, fmt.Errorf("read tab order: %w", err)
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return doc, fmt.Errorf("decode tab order: %w", err)
	}
	return doc, nil
}

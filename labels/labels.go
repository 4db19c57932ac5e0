// Package labels stores short names for directories. Each label is a file
// in the labels directory holding one line: the absolute path it points to.
package labels

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bytesized/utilities/util"
)

var (
	ErrInvalidName = errors.New("invalid label name")
	ErrNotFound    = errors.New("label not found")
)

// Sanitize maps a user-supplied label to its file name: surrounding space is
// trimmed and every character outside [A-Za-z0-9._-] becomes an underscore.
func Sanitize(name string) (string, error) {
	name = strings.TrimSpace(name)
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '_', r == '-':
			return r
		}
		return '_'
	}, name)
	switch clean {
	case "", ".", "..":
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return clean, nil
}

// Label is one stored name and its directory.
type Label struct {
	Name string
	Dir  string
}

// Store reads and writes labels under Dir.
type Store struct {
	Dir string
}

// NewStore returns the store of the current user.
func NewStore() (*Store, error) {
	p, err := util.UserPaths()
	if err != nil {
		return nil, err
	}
	return &Store{Dir: p.Labels}, nil
}

// Set points name at dir, which must be an existing directory. It returns
// the sanitised name and the absolute path stored.
func (s *Store) Set(name, dir string) (Label, error) {
	clean, err := Sanitize(name)
	if err != nil {
		return Label{}, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Label{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Label{}, err
	}
	if !info.IsDir() {
		return Label{}, fmt.Errorf("%w: %s", util.ErrExpectedDirectory, abs)
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return Label{}, err
	}
	if err := os.WriteFile(filepath.Join(s.Dir, clean), []byte(abs+"\n"), 0o644); err != nil {
		return Label{}, err
	}
	return Label{Name: clean, Dir: abs}, nil
}

// Get returns the directory name points at.
func (s *Store) Get(name string) (string, error) {
	clean, err := Sanitize(name)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(filepath.Join(s.Dir, clean))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNotFound, clean)
	}
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimRight(line, "\r"), nil
}

// Remove deletes a label.
func (s *Store) Remove(name string) error {
	clean, err := Sanitize(name)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(s.Dir, clean))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, clean)
	}
	return err
}

// List returns every label sorted by name. A missing store is empty.
func (s *Store) List() ([]Label, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []Label
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		dir, err := s.Get(e.Name())
		if err != nil {
			continue
		}
		out = append(out, Label{Name: e.Name(), Dir: dir})
	}
	slices.SortFunc(out, func(a, b Label) int { return strings.Compare(a.Name, b.Name) })
	return out, nil
}

// Package docstore persists one Markdown document per component and recovers
// the author-maintained description from existing documents.
package docstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// IndexName is the document name of the aggregate index.
const IndexName = "index"

// Ext is the file extension of stored documents.
const Ext = ".md"

var (
	// ErrNotFound is returned by Read when no document exists for a name.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidName is returned for names that would escape the store.
	ErrInvalidName = errors.New("invalid document name")
)

// Store reads and writes component documents by name.
type Store interface {
	Read(name string) ([]byte, error)
	// Write replaces the document unconditionally.
	Write(name string, data []byte) error
	// List returns the names of all component documents, sorted, without the index.
	List() ([]string, error)
}

// Reserved reports whether a component name would collide with the index
// document. Case is folded for case-insensitive file systems.
func Reserved(name string) bool {
	return strings.EqualFold(name, IndexName)
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// FSStore keeps documents as <dir>/<name>.md.
type FSStore struct {
	dir string
}

// NewFSStore returns a store rooted at dir. The directory is created on the
// first write.
func NewFSStore(dir string) *FSStore {
	return &FSStore{dir: dir}
}

// Dir returns the output directory.
func (s *FSStore) Dir() string { return s.dir }

// Path returns the file path of the named document.
func (s *FSStore) Path(name string) string {
	return filepath.Join(s.dir, name+Ext)
}

// Read implements Store.
func (s *FSStore) Read(name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", name, err)
	}
	return data, nil
}

// Write implements Store.
func (s *FSStore) Write(name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(s.Path(name), data, 0o644); err != nil {
		return fmt.Errorf("write document %s: %w", name, err)
	}
	return nil
}

// List implements Store. A missing directory holds no documents.
func (s *FSStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		name := strings.TrimSuffix(e.Name(), Ext)
		if name == IndexName {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// MemStore is an in-memory Store.
type MemStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{docs: make(map[string][]byte)}
}

// Read implements Store.
func (s *MemStore) Read(name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return append([]byte(nil), data...), nil
}

// Write implements Store.
func (s *MemStore) Write(name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = append([]byte(nil), data...)
	return nil
}

// List implements Store.
func (s *MemStore) List() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		if name != IndexName {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

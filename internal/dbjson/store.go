package dbjson

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// SchemaVersion tags every persisted document. Bump when a collection's
// shape changes; there is no migration machinery, readers just refuse
// versions they don't know.
const SchemaVersion = 1

// document wraps a collection payload with its schema version.
type document struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Store persists each logical collection as one JSON document in a data
// directory, whole-blob read and replace. It is the local equivalent of
// the browser localStorage the data originally lived in: no transactions,
// no partial updates, last write wins.
type Store struct {
	dir string
	mu  sync.Mutex
}

func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("store: data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Read unmarshals the named document into v. A missing document is not an
// error; v keeps its zero value, the way a fresh localStorage key reads
// as null.
func (s *Store) Read(name string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: read %s: %w", name, err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("store: decode %s: %w", name, err)
	}
	if doc.Version != SchemaVersion {
		return fmt.Errorf("store: %s has schema version %d, want %d", name, doc.Version, SchemaVersion)
	}
	if err := json.Unmarshal(doc.Data, v); err != nil {
		return fmt.Errorf("store: decode %s data: %w", name, err)
	}
	return nil
}

// Write replaces the named document with v. The temp-file-and-rename dance
// keeps a crash mid-write from leaving a torn document behind.
func (s *Store) Write(name string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", name, err)
	}
	raw, err := json.Marshal(document{Version: SchemaVersion, Data: data})
	if err != nil {
		return fmt.Errorf("store: encode %s envelope: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	return nil
}

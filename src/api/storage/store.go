package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/teploservice/lead-api/src/api/types"
)

// Store keeps leads as a pretty-printed JSON array in a single file. Appends
// are read-modify-write over the whole file, serialized by a mutex so
// concurrent requests cannot lose each other's records. Writers in other
// processes are not covered by the lock.
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

// Append adds one lead to the end of the file. A missing file starts an
// empty sequence; a file that exists but does not parse is surfaced as an
// error rather than silently discarded.
func (s *Store) Append(lead types.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads, err := s.readAll()
	if err != nil {
		return err
	}
	leads = append(leads, lead)
	return s.writeAll(leads)
}

// All returns the current sequence in arrival order.
func (s *Store) All() ([]types.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readAll()
}

func (s *Store) readAll() ([]types.Lead, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var leads []types.Lead
	if err := json.Unmarshal(raw, &leads); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return leads, nil
}

func (s *Store) writeAll(leads []types.Lead) error {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(leads); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", s.path, err)
	}
	return f.Close()
}

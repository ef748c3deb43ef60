package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"confession-bot/models"
)

// Store reads and writes the ledger snapshot file. It performs no locking
// of its own; the engine serializes every call under the ledger lock.
type Store struct {
	path string
}

// NewStore creates a store for the snapshot at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the snapshot location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file yields an empty state. A file
// that fails to parse also yields an empty state, so a corrupted snapshot
// can never keep the bot from starting; the reload is logged instead.
func (s *Store) Load() (*models.State, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", s.path, err)
	}

	var state models.State
	if err := json.Unmarshal(data, &state); err != nil {
		log.Printf("Snapshot %s is unreadable, starting from an empty ledger: %v", s.path, err)
		return models.NewState(), nil
	}
	state.Normalize()
	return &state, nil
}

// Persist writes the full snapshot atomically: serialize to a temporary
// file next to the target, then rename over it. A crash mid-write leaves
// the previous snapshot intact.
func (s *Store) Persist(state *models.State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	data, err := json.MarshalIndent(state, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

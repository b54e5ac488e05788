package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// SnapshotStore persists session state between process restarts.
type SnapshotStore interface {
	Save(sessionID string, state *State) error
	Load(sessionID string) (*State, error)
}

// FileStore writes one JSON document per session under a base
// directory. Writes go through a temp file and rename so a crash never
// leaves a torn snapshot.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating snapshot dir %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(sessionID string) string {
	return filepath.Join(f.dir, sessionID+".json")
}

func (f *FileStore) Save(sessionID string, state *State) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session %q: %w", sessionID, err)
	}

	tmp := f.path(sessionID) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("writing snapshot for session %q: %w", sessionID, err)
	}
	if err := os.Rename(tmp, f.path(sessionID)); err != nil {
		return fmt.Errorf("committing snapshot for session %q: %w", sessionID, err)
	}
	return nil
}

// Load returns (nil, nil) when no snapshot exists for the session.
func (f *FileStore) Load(sessionID string) (*State, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path(sessionID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot for session %q: %w", sessionID, err)
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decoding snapshot for session %q: %w", sessionID, err)
	}
	return &state, nil
}

package session

import (
	"regexp"
	"sync"

	pkgerrors "github.com/festivault/festivault-backend/pkg/errors"
)

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// Registry hands out sessions by id, creating them on first use. When
// a snapshot store is configured, a new session is hydrated from its
// last snapshot.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	store    SnapshotStore
}

func NewRegistry(store SnapshotStore) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		store:    store,
	}
}

func (r *Registry) Get(sessionID string) (*Session, error) {
	if !sessionIDPattern.MatchString(sessionID) {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid session id %q", sessionID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[sessionID]; ok {
		return s, nil
	}

	var state *State
	if r.store != nil {
		loaded, err := r.store.Load(sessionID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading session snapshot")
		}
		state = loaded
	}

	s := newSession(sessionID, state, r.store)
	r.sessions[sessionID] = s
	return s, nil
}

// Package session holds the per-session ledger state and gives every
// mutation all-or-nothing semantics. An update works on a deep copy of
// the state and the copy is only swapped in when the update callback
// returns nil, so a failure partway through a multi-step operation
// leaves the visible state untouched.
package session

import (
	"sync"
	"time"

	pkgerrors "github.com/festivault/festivault-backend/pkg/errors"
	"github.com/festivault/festivault-backend/pkg/model"
)

// State is everything a session owns: the active budget (nil until one
// is created), the shared wallet, and the transfer log.
type State struct {
	Budget    *model.Budget       `json:"budget"`
	Wallet    model.WalletAccount `json:"wallet"`
	Transfers []model.Transfer    `json:"transfers"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Clone returns a deep copy. Mutating the copy never touches the
// original.
func (s *State) Clone() *State {
	out := &State{
		Wallet:    s.Wallet.Clone(),
		UpdatedAt: s.UpdatedAt,
	}
	if s.Budget != nil {
		out.Budget = s.Budget.Clone()
	}
	if s.Transfers != nil {
		out.Transfers = make([]model.Transfer, len(s.Transfers))
		copy(out.Transfers, s.Transfers)
	}
	return out
}

// Session serializes access to one State value.
type Session struct {
	ID string

	mu    sync.RWMutex
	state *State
	store SnapshotStore
}

func newSession(id string, state *State, store SnapshotStore) *Session {
	if state == nil {
		state = &State{}
	}
	return &Session{ID: id, state: state, store: store}
}

// View runs fn against a read-only snapshot of the state. fn must not
// retain references past its return.
func (s *Session) View(fn func(st *State) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.state)
}

// Update runs fn against a deep copy of the state. If fn returns nil
// the copy replaces the live state and is snapshotted; any error
// discards the copy entirely.
func (s *Session) Update(fn func(st *State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	next.UpdatedAt = time.Now().UTC()

	if s.store != nil {
		if err := s.store.Save(s.ID, next); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persisting session snapshot")
		}
	}
	s.state = next
	return nil
}

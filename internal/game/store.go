package game

import (
	"encoding/json"
	"sync"
)

// Store serializes access to the game state. Every rule that changes the
// world runs inside Mutate; a mutation that returns a nil error fires the
// registered change hooks (auto-save scheduling, live-update broadcast).
type Store struct {
	mu       sync.RWMutex
	state    *GameState
	onChange []func()
}

func NewStore(state *GameState) *Store {
	return &Store{state: state}
}

// OnChange registers a hook invoked after every successful mutation. Hooks
// run outside the lock. Not safe to call once the server is serving.
func (s *Store) OnChange(fn func()) {
	s.onChange = append(s.onChange, fn)
}

// View runs fn with read access to the state. fn must not retain references
// past its return.
func (s *Store) View(fn func(*GameState)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

// Mutate runs fn with exclusive access. If fn returns an error the change
// hooks are skipped; the state itself is not rolled back, so rules validate
// before they write.
func (s *Store) Mutate(fn func(*GameState) error) error {
	s.mu.Lock()
	err := fn(s.state)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	for _, hook := range s.onChange {
		hook()
	}
	return nil
}

// Snapshot marshals the current state for persistence.
func (s *Store) Snapshot() ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return json.MarshalIndent(s.state, "", "  ")
}

package store

import (
	"sync"

	"github.com/dentassist/dentsync/internal/model"
)

// Listener is invoked synchronously after every committed transition with the
// new state. Listeners must not dispatch.
type Listener func(model.AppState)

// Store holds the clinic state and serializes all transitions. It is an
// explicit, constructor-injected container: anything that needs the state
// depends on the Store value, never on a package-level singleton.
type Store struct {
	mu        sync.Mutex
	state     model.AppState
	version   uint64
	listeners map[int]Listener
	nextID    int
}

func New(initial model.AppState) *Store {
	return &Store{
		state:     initial,
		listeners: make(map[int]Listener),
	}
}

// Dispatch runs the reducer and notifies listeners. Transitions run to
// completion one at a time; two dispatches never interleave.
func (s *Store) Dispatch(a Action) model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = Reduce(s.state, a)
	s.version++
	for _, fn := range s.listeners {
		fn(s.state)
	}
	return s.state
}

// State returns the current state. The returned value shares branches with
// the store; treat it as read-only.
func (s *Store) State() model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// StateVersion returns the state together with the version it belongs to,
// under one lock acquisition. Memoizing callers need the pair to be
// consistent; separate State and Version calls could straddle a dispatch.
func (s *Store) StateVersion() (model.AppState, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.version
}

// Replace swaps the whole state without running the reducer or listeners.
// Only snapshot reload paths use it; normal mutation goes through Dispatch.
func (s *Store) Replace(state model.AppState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.version++
}

// Version counts committed transitions. Derived-view callers use it as a
// memoization key.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Subscribe registers a listener and returns its unsubscribe function.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

package store

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Subscriber is notified synchronously after every committed action with a
// private deep copy of the new state.
type Subscriber func(AppState)

// Store serializes all mutations behind one writer lock, so every action runs
// to completion before the next is applied and readers never observe torn
// state.
type Store struct {
	mu          sync.RWMutex
	state       AppState
	env         Env
	subscribers []Subscriber
}

// New creates a store seeded with the given state.
func New(initial AppState) *Store {
	initial.normalize()
	return &Store{state: initial, env: DefaultEnv()}
}

// NewWithEnv is New with an injected clock/id source, for tests.
func NewWithEnv(initial AppState, env Env) *Store {
	s := New(initial)
	s.env = env
	return s
}

// Subscribe registers a subscriber. Not safe to call concurrently with
// Dispatch; wire subscribers at startup.
func (s *Store) Subscribe(fn Subscriber) {
	s.subscribers = append(s.subscribers, fn)
}

// Dispatch applies one action. On success the new state is committed and all
// subscribers are notified before Dispatch returns; on error the state is
// untouched.
func (s *Store) Dispatch(action Action) error {
	s.mu.Lock()
	next, err := Reduce(s.state, action, s.env)
	if err != nil {
		s.mu.Unlock()
		log.Debug().Str("action", action.Kind()).Err(err).Msg("action rejected")
		return err
	}
	s.state = next
	snapshot := next.Clone()
	s.mu.Unlock()

	log.Debug().Str("action", action.Kind()).Msg("action applied")
	for _, fn := range s.subscribers {
		fn(snapshot)
	}
	return nil
}

// DispatchView applies one action and, when it commits, runs fn against the
// new state before the writer lock is released, so the read cannot interleave
// with another dispatch. Callers use it to read back what their own action
// just produced; fn is skipped entirely when the action is rejected. The View
// contract applies to fn: copy out what you need, mutate nothing.
func (s *Store) DispatchView(action Action, fn func(st *AppState)) error {
	s.mu.Lock()
	next, err := Reduce(s.state, action, s.env)
	if err != nil {
		s.mu.Unlock()
		log.Debug().Str("action", action.Kind()).Err(err).Msg("action rejected")
		return err
	}
	s.state = next
	fn(&next)
	snapshot := next.Clone()
	s.mu.Unlock()

	log.Debug().Str("action", action.Kind()).Msg("action applied")
	for _, fn := range s.subscribers {
		fn(snapshot)
	}
	return nil
}

// State returns a deep copy of the current aggregate.
func (s *Store) State() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// View runs fn under the read lock against the live aggregate. fn must not
// retain or mutate anything it reads; use State for an owned copy.
func (s *Store) View(fn func(st *AppState)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	fn(&st)
}

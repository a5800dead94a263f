package region

import (
	"sync"
	"time"
)

// Sessions that see no traffic for this long are dropped on the next access.
const sessionIdleTTL = 30 * time.Minute

// Sessions keeps one Cascade per open address form, keyed by a client-chosen
// session id. The checkout form drives its cascade through the session
// endpoints, so a regency list still in flight when the customer re-picks the
// province is discarded server-side instead of overwriting the fresh one.
type Sessions struct {
	loader Loader
	now    func() time.Time

	mu     sync.Mutex
	active map[string]*cascadeSession
}

type cascadeSession struct {
	cascade  *Cascade
	lastSeen time.Time
}

func NewSessions(loader Loader) *Sessions {
	return &Sessions{
		loader: loader,
		now:    time.Now,
		active: make(map[string]*cascadeSession),
	}
}

// Get returns the cascade for a session, creating it on first use. Idle
// sessions are swept on the same pass.
func (s *Sessions) Get(id string) *Cascade {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for key, entry := range s.active {
		if key != id && now.Sub(entry.lastSeen) > sessionIdleTTL {
			delete(s.active, key)
		}
	}

	entry, ok := s.active[id]
	if !ok {
		entry = &cascadeSession{cascade: NewCascade(s.loader)}
		s.active[id] = entry
	}
	entry.lastSeen = now
	return entry.cascade
}

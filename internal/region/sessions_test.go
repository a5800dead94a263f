package region

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionsKeepsOneCascadePerForm(t *testing.T) {
	s := NewSessions(&stubLoader{})

	a := s.Get("form-a")
	b := s.Get("form-b")
	assert.NotSame(t, a, b)
	assert.Same(t, a, s.Get("form-a"))
}

func TestSessionsSweepsIdleForms(t *testing.T) {
	s := NewSessions(&stubLoader{})
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	stale := s.Get("form-a")
	now = now.Add(sessionIdleTTL + time.Minute)

	// Touching another session sweeps the idle one.
	s.Get("form-b")
	assert.NotSame(t, stale, s.Get("form-a"))
}

func TestSessionsTouchResetsIdleClock(t *testing.T) {
	s := NewSessions(&stubLoader{})
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	live := s.Get("form-a")
	now = now.Add(sessionIdleTTL - time.Minute)
	s.Get("form-a")
	now = now.Add(sessionIdleTTL - time.Minute)

	s.Get("form-b")
	assert.Same(t, live, s.Get("form-a"))
}

package rag

import (
	"sync"
	"time"
)

const (
	sessionCapacity    = 10
	defaultSessionTTL  = 30 * time.Minute
	defaultSweepPeriod = 5 * time.Minute
)

type session struct {
	mu      sync.Mutex
	queries []Query
	touched time.Time
}

// SessionMemory holds a bounded per-session history of past queries.
// Each session keeps at most ten entries and evicts the oldest on
// overflow; idle sessions are dropped entirely after the TTL. Appends to
// different sessions never block each other.
type SessionMemory struct {
	mu       sync.RWMutex
	sessions map[string]*session

	ttl  time.Duration
	done chan struct{}
	once sync.Once
}

// SessionMemoryParams configures conversation memory. Zero values default
// to a 30 minute TTL swept every 5 minutes.
type SessionMemoryParams struct {
	TTL         time.Duration
	SweepPeriod time.Duration
}

// NewSessionMemory builds conversation memory and starts its eviction
// sweeper. Call Close to stop the sweeper.
func NewSessionMemory(params SessionMemoryParams) *SessionMemory {
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	period := params.SweepPeriod
	if period <= 0 {
		period = defaultSweepPeriod
	}

	m := &SessionMemory{
		sessions: make(map[string]*session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go m.sweep(period)
	return m
}

// Append records a query in the session's history, evicting the oldest
// entry once the session holds ten.
func (m *SessionMemory) Append(sessionID string, query Query) {
	if sessionID == "" {
		return
	}

	m.mu.Lock()
	s, ok := m.sessions[sessionID]
	if !ok {
		s = &session{}
		m.sessions[sessionID] = s
	}
	m.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, query)
	if len(s.queries) > sessionCapacity {
		s.queries = s.queries[len(s.queries)-sessionCapacity:]
	}
	s.touched = time.Now()
}

// History returns a copy of the session's recorded queries, oldest first.
// An unknown session returns an empty slice.
func (m *SessionMemory) History(sessionID string) []Query {
	m.mu.RLock()
	s, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return []Query{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]Query, len(s.queries))
	copy(history, s.queries)
	return history
}

// Close stops the eviction sweeper.
func (m *SessionMemory) Close() {
	m.once.Do(func() {
		close(m.done)
	})
}

func (m *SessionMemory) sweep(period time.Duration) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.evictIdle(time.Now())
		}
	}
}

func (m *SessionMemory) evictIdle(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := now.Sub(s.touched) > m.ttl
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
		}
	}
}

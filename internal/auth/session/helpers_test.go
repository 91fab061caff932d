package session_test

import (
	"context"
	"sync"
	"time"

	"github.com/frahmantamala/parc-info/internal/auth/session"
)

type memoryStore struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
	prunes   int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]*session.Session)}
}

func (m *memoryStore) Get(_ context.Context, id string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *memoryStore) Save(_ context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	m.sessions[s.ID] = &cp
	return nil
}

func (m *memoryStore) Destroy(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memoryStore) DeleteExpired(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prunes++
	var n int64
	now := time.Now().UTC()
	for id, s := range m.sessions {
		if s.Expired(now) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

func (m *memoryStore) pruneCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prunes
}

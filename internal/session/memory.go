package session

import (
	"net/http"
	"sync"
)

// MemoryStore holds a single session in memory. It backs tests and makes the
// session/gateway/guard triad runnable without a real cookie round trip.
type MemoryStore struct {
	mu    sync.Mutex
	state State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ *http.Request) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *MemoryStore) Save(_ *http.Request, _ http.ResponseWriter, state State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
	return nil
}

func (m *MemoryStore) Clear(_ *http.Request, _ http.ResponseWriter) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = State{}
	return nil
}

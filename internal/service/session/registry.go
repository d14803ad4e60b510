package session

import (
	"sync"

	"github.com/google/uuid"
)

// Registry holds the active sessions for the HTTP surface. Each session's
// operations are serialized on its own mutex, preserving the engine's
// single-logical-thread model per session even though the HTTP server
// handles requests concurrently.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*registryEntry
}

type registryEntry struct {
	mu      sync.Mutex
	session *Session
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[uuid.UUID]*registryEntry)}
}

// Add registers an active session.
func (r *Registry) Add(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = &registryEntry{session: s}
}

// Do runs fn against the session with the given ID while holding its lock.
// Returns ErrSessionNotFound if no such session is registered.
func (r *Registry) Do(id uuid.UUID, fn func(*Session) error) error {
	r.mu.Lock()
	entry, ok := r.sessions[id]
	r.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.session)
}

// Remove unregisters a session. Removing an unknown ID is a no-op.
func (r *Registry) Remove(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// Len reports the number of active sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

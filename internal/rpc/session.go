package rpc

import "sync"

// Session is the per-connection authentication state. It is only ever
// read and written by the connection's own read loop, so the fields need
// no lock of their own.
type Session struct {
	UserID      string
	AccessToken string
}

// SessionTable maps connection IDs to sessions. Lifecycle is 1:1 with the
// connection: created on open, removed on close. Never persisted.
type SessionTable struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewSessionTable() *SessionTable {
	return &SessionTable{
		sessions: make(map[string]*Session),
	}
}

// Create registers an empty session for the connection, replacing any
// previous entry under the same ID.
func (t *SessionTable) Create(connID string) *Session {
	t.mu.Lock()
	defer t.mu.Unlock()

	sess := &Session{}
	t.sessions[connID] = sess
	return sess
}

// Get returns the connection's session, or nil if none exists.
func (t *SessionTable) Get(connID string) *Session {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.sessions[connID]
}

// Remove drops the connection's session.
func (t *SessionTable) Remove(connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, connID)
}

// Len returns the number of live sessions.
func (t *SessionTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.sessions)
}

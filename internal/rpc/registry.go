package rpc

import (
	"context"
	"encoding/json"
	"sync"

	"authws-backend/internal/auth/domain"
)

// AuthContext carries the resolved identity for a single message.
// User is non-nil only for methods registered with RequiresAuth.
type AuthContext struct {
	User *domain.User
}

// HandlerFunc is the signature of every RPC method. Failures are returned
// as *Error values, never panicked.
type HandlerFunc func(ctx context.Context, params json.RawMessage, authCtx *AuthContext) (map[string]interface{}, *Error)

// Method is a registry entry. RequiresAuth declares that the dispatcher
// must resolve a current user before invoking the handler;
// EstablishesSession declares that a successful result carries identity
// the dispatcher should write back into the connection's session.
type Method struct {
	Handler            HandlerFunc
	RequiresAuth       bool
	EstablishesSession bool
}

// Registry maps method names to their entries.
type Registry struct {
	mu      sync.RWMutex
	methods map[string]Method
}

func NewRegistry() *Registry {
	return &Registry{
		methods: make(map[string]Method),
	}
}

// Register adds a method. Registering the same name twice is a wiring bug.
func (r *Registry) Register(name string, m Method) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.methods[name]; exists {
		panic("rpc: method name collision: " + name)
	}
	r.methods[name] = m
}

// Lookup resolves a method by name.
func (r *Registry) Lookup(name string) (Method, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.methods[name]
	return m, ok
}

package rpc

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"authws-backend/internal/auth/domain"
)

// Authenticator resolves users from tokens or stored session identity.
// Implementations map domain failures to wire errors.
type Authenticator interface {
	// ResolveToken verifies an access token and returns its user.
	ResolveToken(accessToken string) (*domain.User, *Error)
	// ResolveUser looks up a user by the session's stored ID.
	ResolveUser(id string) (*domain.User, *Error)
}

// Dispatcher processes one inbound message at a time per connection:
// parse envelope, validate, resolve auth, invoke the handler, update the
// session, and serialize exactly one response per request.
type Dispatcher struct {
	registry *Registry
	sessions *SessionTable
	auth     Authenticator
}

func NewDispatcher(registry *Registry, sessions *SessionTable, auth Authenticator) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		sessions: sessions,
		auth:     auth,
	}
}

// HandleMessage runs the full per-message pipeline and returns the
// serialized response. It never panics: handler panics are downgraded to
// internal errors so one bad message cannot kill the connection.
func (d *Dispatcher) HandleMessage(ctx context.Context, connID string, raw []byte) []byte {
	resp := d.dispatch(ctx, connID, raw)

	out, err := json.Marshal(resp)
	if err != nil {
		log.Printf("rpc: failed to encode response: %v", err)
		out, _ = json.Marshal(errorResponse(resp.ID, NewError(CodeInternalError, "Internal error: response encoding failed")))
	}
	return out
}

func (d *Dispatcher) dispatch(ctx context.Context, connID string, raw []byte) *Response {
	var req Request
	if err := json.Unmarshal(raw, &req); err != nil {
		return errorResponse(nil, NewError(CodeInternalError, "Invalid JSON"))
	}

	if req.JSONRPC != "2.0" {
		return errorResponse(req.ID, NewError(CodeInternalError, "Invalid JSON-RPC version"))
	}

	if !validID(req.ID) {
		return errorResponse(nil, NewError(CodeInternalError, "Missing 'id' in request"))
	}

	method, ok := d.registry.Lookup(req.Method)
	if !ok {
		return errorResponse(req.ID, NewError(CodeMethodNotFound, fmt.Sprintf("Unknown method '%s'", req.Method)))
	}

	sess := d.sessions.Get(connID)

	authCtx := &AuthContext{}
	if method.RequiresAuth {
		user, rpcErr := d.resolveUser(req.AccessToken, sess)
		if rpcErr != nil {
			return errorResponse(req.ID, rpcErr)
		}
		authCtx.User = user
	}

	result, rpcErr := d.invoke(ctx, req.Method, method, req.Params, authCtx)
	if rpcErr != nil {
		return errorResponse(req.ID, rpcErr)
	}

	// A handler-returned map with an "error" key is a failure signaled as
	// data; translate it, defaulting the code.
	if msg, failed := result["error"]; failed {
		code := CodeInternalError
		switch c := result["code"].(type) {
		case int:
			code = c
		case float64:
			code = int(c)
		}
		return errorResponse(req.ID, NewError(code, fmt.Sprint(msg)))
	}

	if method.EstablishesSession && sess != nil {
		d.updateSession(sess, &req, result)
	}

	return resultResponse(req.ID, result)
}

// invoke calls the handler, catching panics so an unexpected failure in a
// handler is reported instead of tearing down the connection.
func (d *Dispatcher) invoke(ctx context.Context, name string, method Method, params json.RawMessage, authCtx *AuthContext) (result map[string]interface{}, rpcErr *Error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("rpc: panic in method %q: %v", name, r)
			result = nil
			rpcErr = NewError(CodeInternalError, fmt.Sprintf("Internal error: %v", r))
		}
	}()

	return method.Handler(ctx, params, authCtx)
}

// resolveUser implements the auth guard shared by all protected methods.
// An explicit token on the request is authoritative; the session identity
// only applies when the request carries no token of its own.
func (d *Dispatcher) resolveUser(explicitToken string, sess *Session) (*domain.User, *Error) {
	if explicitToken != "" {
		return d.auth.ResolveToken(explicitToken)
	}

	if sess != nil && sess.UserID != "" {
		return d.auth.ResolveUser(sess.UserID)
	}

	if sess != nil && sess.AccessToken != "" {
		return d.auth.ResolveToken(sess.AccessToken)
	}

	return nil, NewError(CodeInvalidCredentials, "Access token required")
}

// updateSession writes the identity from a successful login-like result
// back into the session so later messages authenticate implicitly.
func (d *Dispatcher) updateSession(sess *Session, req *Request, result map[string]interface{}) {
	if uid, ok := result["user_id"].(string); ok && uid != "" {
		sess.UserID = uid
	}

	token, _ := result["access_token"].(string)
	if token == "" {
		// auth_with_token validates the token it was given in params; the
		// result omits it, so recover it from the request.
		token = req.AccessToken
	}
	if token == "" && len(req.Params) > 0 {
		var p struct {
			AccessToken string `json:"access_token"`
		}
		if err := json.Unmarshal(req.Params, &p); err == nil {
			token = p.AccessToken
		}
	}
	if token != "" {
		sess.AccessToken = token
	}
}

// validID reports whether the request id is present, non-null and
// non-empty. Zero is a valid numeric id.
func validID(id interface{}) bool {
	switch v := id.(type) {
	case nil:
		return false
	case string:
		return v != ""
	default:
		return true
	}
}

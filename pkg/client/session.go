package client

import (
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the client-held view of the current authentication state. The
// role and user id are decoded from the token payload without signature
// verification: they gate UI behaviour only, the server re-verifies every
// request.
type Session struct {
	Token  string
	UserID string
	Role   string
	Email  string
}

// Authenticated reports whether a token is held.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// IsAdmin reports whether the decoded role claim is "admin".
func (s Session) IsAdmin() bool {
	return s.Role == "admin"
}

// SessionStore holds the current session and notifies subscribers whenever
// it changes. It replaces ad-hoc storage polling with an explicit typed
// notification channel.
type SessionStore struct {
	mu      sync.RWMutex
	current Session
	subs    []chan Session
}

// NewSessionStore returns an empty, unauthenticated store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Current returns the session as of now.
func (st *SessionStore) Current() Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current
}

// Set decodes the token payload and installs the new session, notifying all
// subscribers. The token signature is deliberately not verified here.
func (st *SessionStore) Set(token, email string) (Session, error) {
	claims, err := decodeClaims(token)
	if err != nil {
		return Session{}, err
	}

	session := Session{
		Token:  token,
		UserID: stringClaim(claims, "user_id"),
		Role:   stringClaim(claims, "role"),
		Email:  email,
	}

	st.mu.Lock()
	st.current = session
	st.broadcast(session)
	st.mu.Unlock()

	return session, nil
}

// Clear drops the session and notifies subscribers with the zero Session.
func (st *SessionStore) Clear() {
	st.mu.Lock()
	st.current = Session{}
	st.broadcast(Session{})
	st.mu.Unlock()
}

// AuthChanged returns a channel that receives the new Session on every Set
// and Clear. Each call registers an independent subscriber. Notifications
// are dropped rather than blocked when a subscriber lags.
func (st *SessionStore) AuthChanged() <-chan Session {
	ch := make(chan Session, 8)
	st.mu.Lock()
	st.subs = append(st.subs, ch)
	st.mu.Unlock()
	return ch
}

// broadcast must be called with mu held.
func (st *SessionStore) broadcast(s Session) {
	for _, ch := range st.subs {
		select {
		case ch <- s:
		default:
		}
	}
}

// decodeClaims parses the JWT payload without verifying its signature.
func decodeClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return claims, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	v, _ := claims[key].(string)
	return v
}

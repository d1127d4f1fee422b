package ui

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/me/backoffice/pkg/model"
)

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "backoffice_session"
	// SessionDuration is the default session lifetime.
	SessionDuration = 24 * time.Hour

	maxSessions = 1024
)

// SessionManager keeps sign-ins in memory. Sessions are dropped when they
// expire or when the store is full.
type SessionManager struct {
	sessions *expirable.LRU[string, *model.Session]
	now      func() time.Time
}

// NewSessionManager creates a new session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: expirable.NewLRU[string, *model.Session](maxSessions, nil, SessionDuration),
		now:      time.Now,
	}
}

// CreateSession records a sign-in for username.
func (sm *SessionManager) CreateSession(username, path string) (*model.Session, error) {
	id, err := generateSessionID()
	if err != nil {
		return nil, err
	}
	now := sm.now()
	sess := &model.Session{
		ID:        id,
		Username:  username,
		Path:      path,
		CreatedAt: now,
		ExpiresAt: now.Add(SessionDuration),
	}
	sm.sessions.Add(id, sess)
	return sess, nil
}

// GetSession returns the session with the given ID, or nil when it does not
// exist or has expired.
func (sm *SessionManager) GetSession(id string) *model.Session {
	sess, ok := sm.sessions.Get(id)
	if !ok {
		return nil
	}
	if sess.IsExpired(sm.now()) {
		sm.sessions.Remove(id)
		return nil
	}
	return sess
}

// DeleteSession removes a session.
func (sm *SessionManager) DeleteSession(id string) {
	sm.sessions.Remove(id)
}

// GetSessionFromRequest extracts the session from the request cookie.
func (sm *SessionManager) GetSessionFromRequest(r *http.Request) *model.Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil // No cookie, no session
	}
	return sm.GetSession(cookie.Value)
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, sess *model.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  sess.ExpiresAt,
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

// generateSessionID generates a cryptographically secure random session ID.
func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "sess_" + hex.EncodeToString(b), nil
}

package ui

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/me/backoffice/pkg/model"
)

func TestSessionManager_CreateAndGet(t *testing.T) {
	sm := NewSessionManager()

	sess, err := sm.CreateSession("operator", "/dashboard")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if !strings.HasPrefix(sess.ID, "sess_") {
		t.Errorf("expected session ID prefix 'sess_', got %q", sess.ID)
	}
	if sess.Username != "operator" {
		t.Errorf("expected Username 'operator', got %q", sess.Username)
	}
	if sess.Path != "/dashboard" {
		t.Errorf("expected Path '/dashboard', got %q", sess.Path)
	}

	retrieved := sm.GetSession(sess.ID)
	if retrieved == nil {
		t.Fatal("expected session to be found")
	}
	if retrieved.Username != sess.Username {
		t.Errorf("expected Username %q, got %q", sess.Username, retrieved.Username)
	}
}

func TestSessionManager_GetSession_NotFound(t *testing.T) {
	sm := NewSessionManager()
	if sess := sm.GetSession("nonexistent"); sess != nil {
		t.Error("expected nil session for nonexistent ID")
	}
}

func TestSessionManager_GetSession_Expired(t *testing.T) {
	sm := NewSessionManager()
	start := time.Now()
	sm.now = func() time.Time { return start }

	sess, err := sm.CreateSession("operator", "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	sm.now = func() time.Time { return start.Add(SessionDuration + time.Minute) }
	if retrieved := sm.GetSession(sess.ID); retrieved != nil {
		t.Error("expected nil session for expired session")
	}
}

func TestSessionManager_DeleteSession(t *testing.T) {
	sm := NewSessionManager()

	sess, err := sm.CreateSession("operator", "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	sm.DeleteSession(sess.ID)

	if retrieved := sm.GetSession(sess.ID); retrieved != nil {
		t.Error("expected nil session after deletion")
	}
}

func TestSessionManager_GetSessionFromRequest(t *testing.T) {
	sm := NewSessionManager()

	sess, err := sm.CreateSession("operator", "")
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  SessionCookieName,
		Value: sess.ID,
	})

	retrieved := sm.GetSessionFromRequest(req)
	if retrieved == nil {
		t.Fatal("expected session to be found")
	}
	if retrieved.Username != sess.Username {
		t.Errorf("expected Username %q, got %q", sess.Username, retrieved.Username)
	}
}

func TestSessionManager_GetSessionFromRequest_NoCookie(t *testing.T) {
	sm := NewSessionManager()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if retrieved := sm.GetSessionFromRequest(req); retrieved != nil {
		t.Error("expected nil session when no cookie")
	}
}

func TestSetSessionCookie(t *testing.T) {
	sess := &model.Session{
		ID:        "sess_test123",
		ExpiresAt: time.Now().Add(24 * time.Hour),
	}

	w := httptest.NewRecorder()
	SetSessionCookie(w, sess)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	cookie := cookies[0]
	if cookie.Name != SessionCookieName {
		t.Errorf("expected cookie name %q, got %q", SessionCookieName, cookie.Name)
	}
	if cookie.Value != sess.ID {
		t.Errorf("expected cookie value %q, got %q", sess.ID, cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly to be true")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite Lax, got %v", cookie.SameSite)
	}
}

func TestClearSessionCookie(t *testing.T) {
	w := httptest.NewRecorder()
	ClearSessionCookie(w)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}

	cookie := cookies[0]
	if cookie.Name != SessionCookieName {
		t.Errorf("expected cookie name %q, got %q", SessionCookieName, cookie.Name)
	}
	if cookie.MaxAge != -1 {
		t.Errorf("expected MaxAge -1, got %d", cookie.MaxAge)
	}
}

func TestSession_IsExpired(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		expires  time.Time
		expected bool
	}{
		{"future", now.Add(time.Hour), false},
		{"past", now.Add(-time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := &model.Session{ExpiresAt: tt.expires}
			if got := sess.IsExpired(now); got != tt.expected {
				t.Errorf("IsExpired() = %v, want %v", got, tt.expected)
			}
		})
	}
}

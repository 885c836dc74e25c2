package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"paradisian/pkg/model"
)

func newTestHandle(t *testing.T) *Handle {
	t.Helper()
	r := httptest.NewRequest("GET", "/profile", nil)
	return NewHandle(NewMemoryStore(), httptest.NewRecorder(), r)
}

func TestSetSession_WritesTokenAndRoleTogether(t *testing.T) {
	h := newTestHandle(t)

	if err := h.SetSession("tok-123", "refresh-456", model.RoleUser); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	if !h.IsAuthenticated() {
		t.Errorf("expected authenticated session after SetSession")
	}
	if h.Token() != "tok-123" {
		t.Errorf("Token() = %q, want %q", h.Token(), "tok-123")
	}
	if h.RefreshToken() != "refresh-456" {
		t.Errorf("RefreshToken() = %q, want %q", h.RefreshToken(), "refresh-456")
	}
	if !h.HasRole(model.RoleUser) {
		t.Errorf("expected HasRole(USER) after SetSession")
	}
}

func TestClearSession_IsIdempotent(t *testing.T) {
	h := newTestHandle(t)
	if err := h.SetSession("tok", "refresh", model.RoleAdmin); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := h.ClearSession(); err != nil {
			t.Fatalf("ClearSession call %d failed: %v", i+1, err)
		}
		if h.IsAuthenticated() {
			t.Errorf("expected unauthenticated session after ClearSession")
		}
		if h.Role() != "" {
			t.Errorf("expected role cleared alongside token, got %q", h.Role())
		}
	}
}

func TestUpdateToken_PreservesRoleAndRefreshToken(t *testing.T) {
	h := newTestHandle(t)
	if err := h.SetSession("old-token", "refresh", model.RoleAdmin); err != nil {
		t.Fatalf("SetSession failed: %v", err)
	}

	if err := h.UpdateToken("new-token"); err != nil {
		t.Fatalf("UpdateToken failed: %v", err)
	}

	if h.Token() != "new-token" {
		t.Errorf("Token() = %q, want %q", h.Token(), "new-token")
	}
	if h.RefreshToken() != "refresh" {
		t.Errorf("RefreshToken() = %q, want %q", h.RefreshToken(), "refresh")
	}
	if !h.State().IsAdmin() {
		t.Errorf("expected admin role preserved across token update")
	}
}

func TestState_HasRole(t *testing.T) {
	tests := []struct {
		name  string
		state State
		role  string
		want  bool
	}{
		{"admin matches admin", State{Token: "t", Role: model.RoleAdmin}, model.RoleAdmin, true},
		{"user does not match admin", State{Token: "t", Role: model.RoleUser}, model.RoleAdmin, false},
		{"empty role never matches", State{Token: "t"}, "", false},
		{"anonymous has no role", State{}, model.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.HasRole(tt.role); got != tt.want {
				t.Errorf("HasRole(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestCookieStore_RoundTrip(t *testing.T) {
	store := NewCookieStore("0123456789abcdef0123456789abcdef", false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/login", nil)
	saved := State{Token: "tok", RefreshToken: "refresh", Role: model.RoleUser}
	if err := store.Save(r, w, saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Replay the cookie on a fresh request, as a browser would.
	next := httptest.NewRequest("GET", "/profile", nil)
	for _, c := range w.Result().Cookies() {
		next.AddCookie(c)
	}

	got := store.Load(next)
	if got != saved {
		t.Errorf("Load() = %+v, want %+v", got, saved)
	}
}

func TestCookieStore_Clear(t *testing.T) {
	store := NewCookieStore("0123456789abcdef0123456789abcdef", false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/login", nil)
	if err := store.Save(r, w, State{Token: "tok", Role: model.RoleAdmin}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	w2 := httptest.NewRecorder()
	r2 := httptest.NewRequest("POST", "/logout", nil)
	for _, c := range w.Result().Cookies() {
		r2.AddCookie(c)
	}
	if err := store.Clear(r2, w2); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	// The expired cookie must come back empty.
	r3 := httptest.NewRequest("GET", "/profile", nil)
	for _, c := range w2.Result().Cookies() {
		if c.MaxAge > 0 {
			r3.AddCookie(c)
		}
	}
	if got := store.Load(r3); got.IsAuthenticated() {
		t.Errorf("expected anonymous session after Clear, got %+v", got)
	}
}

func TestCookieStore_TamperedCookieIsAnonymous(t *testing.T) {
	store := NewCookieStore("0123456789abcdef0123456789abcdef", false)

	r := httptest.NewRequest("GET", "/profile", nil)
	r.AddCookie(&http.Cookie{Name: cookieName, Value: "tampered-garbage"})

	if got := store.Load(r); got.IsAuthenticated() {
		t.Errorf("expected anonymous session for garbage cookie, got %+v", got)
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	signed := func(exp time.Time) string {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		})
		s, err := tok.SignedString([]byte("secret"))
		if err != nil {
			t.Fatalf("signing test token: %v", err)
		}
		return s
	}

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"live token", signed(now.Add(time.Hour)), false},
		{"expired token", signed(now.Add(-time.Hour)), true},
		{"expiring within skew", signed(now.Add(10 * time.Second)), true},
		{"garbage token treated as live", "not-a-jwt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TokenExpired(tt.token, now); got != tt.want {
				t.Errorf("TokenExpired() = %v, want %v", got, tt.want)
			}
		})
	}
}

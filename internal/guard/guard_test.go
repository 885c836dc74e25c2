package guard

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/julienschmidt/httprouter"

	"paradisian/internal/session"
	"paradisian/pkg/logger"
	"paradisian/pkg/model"
)

func TestEvaluate(t *testing.T) {
	anonymous := session.State{}
	user := session.State{Token: "tok", Role: model.RoleUser}
	admin := session.State{Token: "tok", Role: model.RoleAdmin}

	tests := []struct {
		name    string
		access  Access
		state   session.State
		allowed bool
	}{
		{"public allows anonymous", Public, anonymous, true},
		{"public allows admin", Public, admin, true},
		{"auth denies anonymous", RequiresAuth, anonymous, false},
		{"auth allows user", RequiresAuth, user, true},
		{"auth allows admin", RequiresAuth, admin, true},
		{"admin denies anonymous", RequiresAdmin, anonymous, false},
		{"admin denies user", RequiresAdmin, user, false},
		{"admin allows admin", RequiresAdmin, admin, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Evaluate(tt.access, tt.state, "/profile")
			if d.Allowed != tt.allowed {
				t.Errorf("Evaluate(%s) allowed = %v, want %v", tt.access, d.Allowed, tt.allowed)
			}
			if !tt.allowed && d.RedirectTo == "" {
				t.Errorf("denied navigation must carry a redirect")
			}
		})
	}
}

func TestEvaluate_RedirectPreservesRequestedLocation(t *testing.T) {
	d := Evaluate(RequiresAdmin, session.State{}, "/admin/manage-rooms?page=2")
	if d.Allowed {
		t.Fatalf("expected denial")
	}

	u, err := url.Parse(d.RedirectTo)
	if err != nil {
		t.Fatalf("redirect %q is not a URL: %v", d.RedirectTo, err)
	}
	if u.Path != "/login" {
		t.Errorf("redirect path = %q, want /login", u.Path)
	}
	if got := u.Query().Get("from"); got != "/admin/manage-rooms?page=2" {
		t.Errorf("from = %q, want original location recoverable", got)
	}
}

func TestReturnPath(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"round trips the from param", "/login?from=%2Fprofile%2Fedit", "/profile/edit"},
		{"defaults to home", "/login", "/home"},
		{"rejects absolute URLs", "/login?from=https%3A%2F%2Fevil.example", "/home"},
		{"rejects protocol-relative URLs", "/login?from=%2F%2Fevil.example", "/home"},
		{"rejects backslash protocol-relative URLs", "/login?from=%2F%5Cevil.example", "/home"},
		{"accepts bare slash", "/login?from=%2F", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)
			if got := ReturnPath(r); got != tt.want {
				t.Errorf("ReturnPath(%s) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestGuard_Protect(t *testing.T) {
	log := logger.New(logger.Config{Level: "error", Format: logger.JSON, Service: "test"})

	renderCalled := false
	target := func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		renderCalled = true
		w.WriteHeader(http.StatusOK)
	}

	t.Run("denied navigation redirects to login", func(t *testing.T) {
		renderCalled = false
		g := New(session.NewMemoryStore(), log)

		w := httptest.NewRecorder()
		r := httptest.NewRequest("GET", "/profile", nil)
		g.Protect(RequiresAuth, target)(w, r, nil)

		if renderCalled {
			t.Errorf("target view must not render for a denied navigation")
		}
		if w.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want %d", w.Code, http.StatusSeeOther)
		}
		if loc := w.Header().Get("Location"); loc != "/login?from=%2Fprofile" {
			t.Errorf("Location = %q, want login redirect with from param", loc)
		}
	})

	t.Run("allowed navigation renders target", func(t *testing.T) {
		renderCalled = false
		store := session.NewMemoryStore()
		r := httptest.NewRequest("GET", "/profile", nil)
		h := session.NewHandle(store, httptest.NewRecorder(), r)
		if err := h.SetSession("tok", "refresh", model.RoleUser); err != nil {
			t.Fatalf("seeding session: %v", err)
		}

		g := New(store, log)
		w := httptest.NewRecorder()
		g.Protect(RequiresAuth, target)(w, r, nil)

		if !renderCalled {
			t.Errorf("target view should render for an authenticated session")
		}
	})

	t.Run("admin route denies plain user", func(t *testing.T) {
		renderCalled = false
		store := session.NewMemoryStore()
		r := httptest.NewRequest("GET", "/admin", nil)
		h := session.NewHandle(store, httptest.NewRecorder(), r)
		if err := h.SetSession("tok", "refresh", model.RoleUser); err != nil {
			t.Fatalf("seeding session: %v", err)
		}

		g := New(store, log)
		w := httptest.NewRecorder()
		g.Protect(RequiresAdmin, target)(w, r, nil)

		if renderCalled {
			t.Errorf("admin view must not render for role USER")
		}
		if w.Code != http.StatusSeeOther {
			t.Errorf("status = %d, want redirect", w.Code)
		}
	})
}

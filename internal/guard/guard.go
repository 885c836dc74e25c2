package guard

import (
	"net/http"
	"net/url"

	"github.com/julienschmidt/httprouter"

	"paradisian/internal/session"
	"paradisian/pkg/logger"
	"paradisian/pkg/model"
)

// Access is a page's requirement on the current session.
type Access int

const (
	Public Access = iota
	RequiresAuth
	RequiresAdmin
)

func (a Access) String() string {
	switch a {
	case RequiresAuth:
		return "requires-auth"
	case RequiresAdmin:
		return "requires-admin"
	default:
		return "public"
	}
}

// Decision is the outcome of one navigation attempt.
type Decision struct {
	Allowed    bool
	RedirectTo string
}

// Evaluate decides a navigation from nothing but the session snapshot at
// navigation time. Denied navigations redirect to login carrying the
// originally requested location, so login can return the user there.
func Evaluate(access Access, state session.State, requested string) Decision {
	allowed := false
	switch access {
	case Public:
		allowed = true
	case RequiresAuth:
		allowed = state.IsAuthenticated()
	case RequiresAdmin:
		allowed = state.HasRole(model.RoleAdmin)
	}

	if allowed {
		return Decision{Allowed: true}
	}
	return Decision{RedirectTo: LoginRedirect(requested)}
}

// LoginRedirect builds the login URL preserving the intended destination.
func LoginRedirect(requested string) string {
	if requested == "" {
		return "/login"
	}
	return "/login?from=" + url.QueryEscape(requested)
}

// ReturnPath extracts the destination a login should return to, falling back
// to /home. Only local paths are honoured: a second slash or backslash after
// the leading one would make a protocol-relative URL, which browsers resolve
// to an external host.
func ReturnPath(r *http.Request) string {
	from := r.URL.Query().Get("from")
	if from == "" {
		from = r.FormValue("from")
	}
	if from == "" || from[0] != '/' {
		return "/home"
	}
	if len(from) > 1 && (from[1] == '/' || from[1] == '\\') {
		return "/home"
	}
	return from
}

// Guard wraps page handlers with the access decision. It consults the session
// store per navigation and caches nothing.
type Guard struct {
	store session.Store
	log   *logger.Logger
}

func New(store session.Store, log *logger.Logger) *Guard {
	return &Guard{store: store, log: log}
}

func (g *Guard) Protect(access Access, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		decision := Evaluate(access, g.store.Load(r), r.URL.RequestURI())
		if !decision.Allowed {
			g.log.Info("Navigation denied",
				"access", access.String(),
				"path", r.URL.Path,
			)
			http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
			return
		}
		next(w, r, ps)
	}
}

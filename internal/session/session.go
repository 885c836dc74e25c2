package session

import (
	"net/http"

	"paradisian/pkg/model"
)

// State is the client's record of authentication: bearer token, refresh
// credential and role. A zero State is an anonymous session.
type State struct {
	Token        string
	RefreshToken string
	Role         string
}

func (s State) IsAuthenticated() bool {
	return s.Token != ""
}

func (s State) HasRole(role string) bool {
	return s.Role == role && s.Role != ""
}

func (s State) IsAdmin() bool {
	return s.HasRole(model.RoleAdmin)
}

// Store persists session state across page loads. Implementations must write
// token, refresh credential and role together: a reader never observes a
// partially written session.
type Store interface {
	Load(r *http.Request) State
	Save(r *http.Request, w http.ResponseWriter, state State) error
	Clear(r *http.Request, w http.ResponseWriter) error
}

// Handle binds a loaded State to the store and the in-flight response, so the
// gateway can persist a refreshed token and login/logout can replace the
// session. Handlers create one Handle per request and pass it down; nothing
// reads ambient storage.
type Handle struct {
	store Store
	r     *http.Request
	w     http.ResponseWriter
	state State
}

func NewHandle(store Store, w http.ResponseWriter, r *http.Request) *Handle {
	return &Handle{
		store: store,
		r:     r,
		w:     w,
		state: store.Load(r),
	}
}

func (h *Handle) State() State {
	return h.state
}

func (h *Handle) Token() string {
	return h.state.Token
}

func (h *Handle) RefreshToken() string {
	return h.state.RefreshToken
}

func (h *Handle) Role() string {
	return h.state.Role
}

func (h *Handle) IsAuthenticated() bool {
	return h.state.IsAuthenticated()
}

func (h *Handle) HasRole(role string) bool {
	return h.state.HasRole(role)
}

// SetSession replaces the whole session in one store write.
func (h *Handle) SetSession(token, refreshToken, role string) error {
	state := State{Token: token, RefreshToken: refreshToken, Role: role}
	if err := h.store.Save(h.r, h.w, state); err != nil {
		return err
	}
	h.state = state
	return nil
}

// UpdateToken swaps the bearer token after a refresh, keeping role and
// refresh credential intact.
func (h *Handle) UpdateToken(token string) error {
	state := h.state
	state.Token = token
	if err := h.store.Save(h.r, h.w, state); err != nil {
		return err
	}
	h.state = state
	return nil
}

// ClearSession logs the session out. Idempotent.
func (h *Handle) ClearSession() error {
	if err := h.store.Clear(h.r, h.w); err != nil {
		return err
	}
	h.state = State{}
	return nil
}

package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	cookieName = "paradisian_session"

	keyToken        = "token"
	keyRefreshToken = "refreshToken"
	keyRole         = "role"
)

// CookieStore keeps the session in a single signed cookie, so token, refresh
// credential and role survive page reloads and are always written together.
type CookieStore struct {
	store *sessions.CookieStore
}

func NewCookieStore(authSecret string, secure bool) *CookieStore {
	store := sessions.NewCookieStore([]byte(authSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0, // session cookie, cleared when the browser closes
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &CookieStore{store: store}
}

func (c *CookieStore) Load(r *http.Request) State {
	// An invalid or tampered cookie decodes as an anonymous session.
	sess, err := c.store.Get(r, cookieName)
	if err != nil {
		return State{}
	}
	state := State{
		Token:        stringValue(sess, keyToken),
		RefreshToken: stringValue(sess, keyRefreshToken),
		Role:         stringValue(sess, keyRole),
	}
	if state.Token == "" {
		// token absent implies role absent
		return State{}
	}
	return state
}

func (c *CookieStore) Save(r *http.Request, w http.ResponseWriter, state State) error {
	sess, _ := c.store.New(r, cookieName)
	sess.Values[keyToken] = state.Token
	sess.Values[keyRefreshToken] = state.RefreshToken
	sess.Values[keyRole] = state.Role
	return c.store.Save(r, w, sess)
}

func (c *CookieStore) Clear(r *http.Request, w http.ResponseWriter) error {
	sess, _ := c.store.New(r, cookieName)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return c.store.Save(r, w, sess)
}

func stringValue(sess *sessions.Session, key string) string {
	if v, ok := sess.Values[key].(string); ok {
		return v
	}
	return ""
}

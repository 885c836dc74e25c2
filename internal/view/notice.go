package view

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"
)

const (
	NoticeError   = "error"
	NoticeSuccess = "success"

	flashCookie = "paradisian_flash"
)

// Notice is a transient user-visible message. ClearAfter drives the
// auto-clear delay rendered into the page (errors linger longer than
// success confirmations).
type Notice struct {
	Kind       string        `json:"kind"`
	Message    string        `json:"message"`
	ClearAfter time.Duration `json:"clearAfter"`
}

func ErrorNotice(message string, ttl time.Duration) *Notice {
	return &Notice{Kind: NoticeError, Message: message, ClearAfter: ttl}
}

func SuccessNotice(message string, ttl time.Duration) *Notice {
	return &Notice{Kind: NoticeSuccess, Message: message, ClearAfter: ttl}
}

// ClearAfterSeconds feeds the template's auto-clear timer.
func (n *Notice) ClearAfterSeconds() float64 {
	return n.ClearAfter.Seconds()
}

// SetFlash carries a notice across one redirect, e.g. "registration
// successful" into the login page.
func SetFlash(w http.ResponseWriter, notice *Notice) {
	data, err := json.Marshal(notice)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/",
		MaxAge:   30,
		HttpOnly: true,
	})
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) *Notice {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	data, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	notice := &Notice{}
	if err := json.Unmarshal(data, notice); err != nil {
		return nil
	}
	return notice
}

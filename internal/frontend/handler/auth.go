package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"paradisian/internal/frontend/validator"
	"paradisian/internal/guard"
	"paradisian/internal/view"
	apperrors "paradisian/pkg/errors"
	"paradisian/pkg/events"
	"paradisian/pkg/model"
)

type loginData struct {
	Email string
	From  string
}

func (p *Pages) LoginPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	data := loginData{From: r.URL.Query().Get("from")}
	p.render(w, r, "login", "Login", view.PopFlash(w, r), data)
}

// Login authenticates against the backend and stores the issued credential
// pair. On success the user returns to wherever the guard sent them from.
func (p *Pages) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	form := validator.LoginForm{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	}
	data := loginData{Email: form.Email, From: r.FormValue("from")}

	if err := p.forms.ValidateLogin(&form); err != nil {
		p.render(w, r, "login", "Login", view.ErrorNotice(err.Error(), p.cfg.ErrorNoticeTTL), data)
		return
	}

	result, err := p.backend.Login(r.Context(), form.Email, form.Password)
	if err != nil {
		// The login page shows the real failure reason, not the generic
		// forbidden message other pages use for expired sessions.
		message := apperrors.AsAppError(err).Message
		p.render(w, r, "login", "Login", view.ErrorNotice(message, p.cfg.ErrorNoticeTTL), data)
		return
	}

	sess := p.newSession(w, r)
	if err := sess.SetSession(result.Token, result.RefreshToken, result.Role); err != nil {
		p.log.Error("Failed to persist session", "error", err)
		p.render(w, r, "login", "Login", view.ErrorNotice("Unable to start your session. Please try again.", p.cfg.ErrorNoticeTTL), data)
		return
	}

	p.publish(r.Context(), events.TypeLogin, form.Email, map[string]string{
		"role": result.Role,
	})
	http.Redirect(w, r, guard.ReturnPath(r), http.StatusSeeOther)
}

type registerData struct {
	Form validator.RegisterForm
}

func (p *Pages) RegisterPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	p.render(w, r, "register", "Register", view.PopFlash(w, r), registerData{})
}

// Register creates a new account and sends the user to the login page with
// a success notice. Credentials are never stored on registration.
func (p *Pages) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	form := validator.RegisterForm{
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Password:    r.FormValue("password"),
		PhoneNumber: r.FormValue("phoneNumber"),
	}
	data := registerData{Form: form}

	if err := p.forms.ValidateRegister(&form); err != nil {
		p.render(w, r, "register", "Register", view.ErrorNotice(err.Error(), p.cfg.ErrorNoticeTTL), data)
		return
	}

	user := model.User{
		Name:        form.Name,
		Email:       form.Email,
		PhoneNumber: form.PhoneNumber,
	}
	message, err := p.backend.Register(r.Context(), user, form.Password)
	if err != nil {
		p.render(w, r, "register", "Register", p.errorNotice(err), data)
		return
	}
	if message == "" {
		message = "Registration successful. Please log in."
	}

	p.publish(r.Context(), events.TypeRegistered, form.Email, nil)

	view.SetFlash(w, p.successNotice(message))
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Logout clears the credential cookie and lands on the public home page.
// Clearing an already-empty session is harmless.
func (p *Pages) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := p.newSession(w, r)
	wasAuthed := sess.IsAuthenticated()

	if err := sess.ClearSession(); err != nil {
		p.log.Error("Failed to clear session", "error", err)
	}
	if wasAuthed {
		p.publish(r.Context(), events.TypeLogout, "", nil)
	}
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

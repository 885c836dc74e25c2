package handler

import (
	"context"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/julienschmidt/httprouter"

	"paradisian/internal/frontend/validator"
	"paradisian/internal/gateway"
	"paradisian/internal/guard"
	"paradisian/internal/session"
	"paradisian/internal/view"
	"paradisian/pkg/config"
	apperrors "paradisian/pkg/errors"
	"paradisian/pkg/events"
	"paradisian/pkg/logger"
	"paradisian/pkg/model"
)

// Backend is the slice of the gateway the page views consume. Handlers never
// talk to the network themselves.
type Backend interface {
	Login(ctx context.Context, email, password string) (*gateway.LoginResult, error)
	Register(ctx context.Context, user model.User, password string) (string, error)

	AllRooms(ctx context.Context) ([]model.Room, error)
	AllAvailableRooms(ctx context.Context) ([]model.Room, error)
	AvailableRoomsByDateAndType(ctx context.Context, checkInDate, checkOutDate, roomType string) ([]model.Room, error)
	RoomTypes(ctx context.Context) ([]string, error)
	RoomByID(ctx context.Context, roomID string) (*model.Room, error)
	AddRoom(ctx context.Context, sess gateway.SessionContext, form gateway.RoomForm) error
	UpdateRoom(ctx context.Context, sess gateway.SessionContext, roomID string, form gateway.RoomForm) error
	DeleteRoom(ctx context.Context, sess gateway.SessionContext, roomID string) error

	Profile(ctx context.Context, sess gateway.SessionContext) (*model.User, error)
	UserBookings(ctx context.Context, sess gateway.SessionContext, userID string) (*model.User, error)
	UpdateProfile(ctx context.Context, sess gateway.SessionContext, patch model.User) (*model.User, error)
	DeleteUser(ctx context.Context, sess gateway.SessionContext, userID string) error

	BookRoom(ctx context.Context, sess gateway.SessionContext, roomID, userID string, booking model.Booking) (string, error)
	AllBookings(ctx context.Context, sess gateway.SessionContext) ([]model.Booking, error)
	BookingByConfirmationCode(ctx context.Context, code string) (*model.Booking, error)
	CancelBooking(ctx context.Context, sess gateway.SessionContext, bookingID string) error
}

type Pages struct {
	backend Backend
	store   session.Store
	guard   *guard.Guard
	forms   *validator.FormValidator
	events  *events.Publisher
	tmpl    *template.Template
	types   *typesCache
	cfg     *config.Config
	log     *logger.Logger
}

func NewPages(cfg *config.Config, backend Backend, store session.Store, publisher *events.Publisher) *Pages {
	tmpl := template.Must(template.ParseGlob(filepath.Join(cfg.TemplatesDir, "*.html")))

	return &Pages{
		backend: backend,
		store:   store,
		guard:   guard.New(store, cfg.Log),
		forms:   validator.NewFormValidator(cfg.Log),
		events:  publisher,
		tmpl:    tmpl,
		types:   newTypesCache(backend, cfg.Log),
		cfg:     cfg,
		log:     cfg.Log,
	}
}

// RegisterRoutes wires the client-facing route table: public pages, the
// authenticated profile pages and the admin views. Unmatched paths redirect
// to /home.
func (p *Pages) RegisterRoutes(r *httprouter.Router) {
	public := func(h httprouter.Handle) httprouter.Handle { return p.guard.Protect(guard.Public, h) }
	authed := func(h httprouter.Handle) httprouter.Handle { return p.guard.Protect(guard.RequiresAuth, h) }
	admin := func(h httprouter.Handle) httprouter.Handle { return p.guard.Protect(guard.RequiresAdmin, h) }

	r.GET("/home", public(p.Home))
	r.GET("/rooms", public(p.Rooms))
	r.GET("/find-booking", public(p.FindBooking))
	r.GET("/room-details-book/:roomId", public(p.RoomDetails))
	r.POST("/room-details-book/:roomId", public(p.BookRoom))

	r.GET("/login", public(p.LoginPage))
	r.POST("/login", public(p.Login))
	r.GET("/register", public(p.RegisterPage))
	r.POST("/register", public(p.Register))
	r.POST("/logout", public(p.Logout))

	r.GET("/profile", authed(p.ProfilePage))
	r.GET("/profile/edit", authed(p.EditProfilePage))
	r.POST("/profile/edit", authed(p.UpdateProfile))
	r.POST("/profile/delete", authed(p.DeleteAccount))
	r.POST("/profile/bookings/:bookingId/cancel", authed(p.CancelOwnBooking))

	r.GET("/admin", admin(p.AdminHome))
	r.GET("/admin/manage-rooms", admin(p.ManageRooms))
	r.GET("/admin/add-room", admin(p.AddRoomPage))
	r.POST("/admin/add-room", admin(p.AddRoom))
	r.GET("/admin/edit-room/:roomId", admin(p.EditRoomPage))
	r.POST("/admin/edit-room/:roomId", admin(p.UpdateRoom))
	r.POST("/admin/delete-room/:roomId", admin(p.DeleteRoom))
	r.GET("/admin/manage-bookings", admin(p.ManageBookings))
	r.GET("/admin/edit-booking/:bookingCode", admin(p.EditBookingPage))
	r.POST("/admin/cancel-booking/:bookingId", admin(p.CancelBookingAdmin))

	if p.cfg.StaticDir != "" {
		r.ServeFiles("/static/*filepath", http.Dir(p.cfg.StaticDir))
	}

	r.NotFound = http.RedirectHandler("/home", http.StatusSeeOther)
}

// pageData is the template payload shared by every page.
type pageData struct {
	Title   string
	Authed  bool
	IsAdmin bool
	Notice  *view.Notice
	Data    any
}

func (p *Pages) newSession(w http.ResponseWriter, r *http.Request) *session.Handle {
	return session.NewHandle(p.store, w, r)
}

func (p *Pages) render(w http.ResponseWriter, r *http.Request, name, title string, notice *view.Notice, data any) {
	state := p.store.Load(r)
	payload := pageData{
		Title:   title,
		Authed:  state.IsAuthenticated(),
		IsAdmin: state.IsAdmin(),
		Notice:  notice,
		Data:    data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := p.tmpl.ExecuteTemplate(w, name, payload); err != nil {
		p.log.Error("Failed to render template", "template", name, "error", err)
	}
}

// errorNotice converts any failure into the inline notice a page shows; the
// backend's own message wins when present.
func (p *Pages) errorNotice(err error) *view.Notice {
	appErr := apperrors.AsAppError(err)
	message := appErr.Message
	if appErr.Code == apperrors.CodeAuth {
		message = "Access forbidden. Please log in again."
	}
	return view.ErrorNotice(message, p.cfg.ErrorNoticeTTL)
}

func (p *Pages) successNotice(message string) *view.Notice {
	return view.SuccessNotice(message, p.cfg.SuccessNoticeTTL)
}

func (p *Pages) publish(ctx context.Context, eventType, key string, detail map[string]string) {
	if p.events != nil {
		p.events.Publish(ctx, eventType, key, detail)
	}
}

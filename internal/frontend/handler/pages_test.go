package handler

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"paradisian/internal/frontend/validator"
	"paradisian/internal/gateway"
	"paradisian/internal/guard"
	"paradisian/internal/session"
	"paradisian/pkg/config"
	apperrors "paradisian/pkg/errors"
	"paradisian/pkg/logger"
	"paradisian/pkg/model"
)

// fakeBackend implements Backend with overridable function fields, the same
// shape the service tests use for repositories.
type fakeBackend struct {
	LoginFunc                     func(ctx context.Context, email, password string) (*gateway.LoginResult, error)
	RegisterFunc                  func(ctx context.Context, user model.User, password string) (string, error)
	AllRoomsFunc                  func(ctx context.Context) ([]model.Room, error)
	AvailableByDateAndTypeFunc    func(ctx context.Context, in, out, roomType string) ([]model.Room, error)
	RoomTypesFunc                 func(ctx context.Context) ([]string, error)
	RoomByIDFunc                  func(ctx context.Context, roomID string) (*model.Room, error)
	ProfileFunc                   func(ctx context.Context, sess gateway.SessionContext) (*model.User, error)
	UserBookingsFunc              func(ctx context.Context, sess gateway.SessionContext, userID string) (*model.User, error)
	AllBookingsFunc               func(ctx context.Context, sess gateway.SessionContext) ([]model.Booking, error)
	BookingByConfirmationCodeFunc func(ctx context.Context, code string) (*model.Booking, error)
}

func (f *fakeBackend) Login(ctx context.Context, email, password string) (*gateway.LoginResult, error) {
	return f.LoginFunc(ctx, email, password)
}

func (f *fakeBackend) Register(ctx context.Context, user model.User, password string) (string, error) {
	return f.RegisterFunc(ctx, user, password)
}

func (f *fakeBackend) AllRooms(ctx context.Context) ([]model.Room, error) {
	return f.AllRoomsFunc(ctx)
}

func (f *fakeBackend) AllAvailableRooms(context.Context) ([]model.Room, error) {
	return nil, nil
}

func (f *fakeBackend) AvailableRoomsByDateAndType(ctx context.Context, in, out, roomType string) ([]model.Room, error) {
	return f.AvailableByDateAndTypeFunc(ctx, in, out, roomType)
}

func (f *fakeBackend) RoomTypes(ctx context.Context) ([]string, error) {
	if f.RoomTypesFunc != nil {
		return f.RoomTypesFunc(ctx)
	}
	return []string{"Single", "Double", "Suite"}, nil
}

func (f *fakeBackend) RoomByID(ctx context.Context, roomID string) (*model.Room, error) {
	return f.RoomByIDFunc(ctx, roomID)
}

func (f *fakeBackend) AddRoom(context.Context, gateway.SessionContext, gateway.RoomForm) error {
	return nil
}

func (f *fakeBackend) UpdateRoom(context.Context, gateway.SessionContext, string, gateway.RoomForm) error {
	return nil
}

func (f *fakeBackend) DeleteRoom(context.Context, gateway.SessionContext, string) error {
	return nil
}

func (f *fakeBackend) Profile(ctx context.Context, sess gateway.SessionContext) (*model.User, error) {
	return f.ProfileFunc(ctx, sess)
}

func (f *fakeBackend) UserBookings(ctx context.Context, sess gateway.SessionContext, userID string) (*model.User, error) {
	return f.UserBookingsFunc(ctx, sess, userID)
}

func (f *fakeBackend) UpdateProfile(context.Context, gateway.SessionContext, model.User) (*model.User, error) {
	return nil, nil
}

func (f *fakeBackend) DeleteUser(context.Context, gateway.SessionContext, string) error {
	return nil
}

func (f *fakeBackend) BookRoom(context.Context, gateway.SessionContext, string, string, model.Booking) (string, error) {
	return "", nil
}

func (f *fakeBackend) AllBookings(ctx context.Context, sess gateway.SessionContext) ([]model.Booking, error) {
	return f.AllBookingsFunc(ctx, sess)
}

func (f *fakeBackend) BookingByConfirmationCode(ctx context.Context, code string) (*model.Booking, error) {
	return f.BookingByConfirmationCodeFunc(ctx, code)
}

func (f *fakeBackend) CancelBooking(context.Context, gateway.SessionContext, string) error {
	return nil
}

const testTemplates = `
{{define "home"}}home:{{with .Notice}}[{{.Message}}]{{end}}{{range .Data.Search.Results}}room={{.RoomType}};{{end}}{{end}}
{{define "find_booking"}}find:{{with .Notice}}[{{.Message}}]{{end}}{{with .Data.Booking}}code={{.BookingConfirmationCode}}{{end}}{{end}}
{{define "login"}}login:{{with .Notice}}[{{.Message}}]{{end}}{{end}}
{{define "register"}}register:{{with .Notice}}[{{.Message}}]{{end}}{{end}}
{{define "profile"}}profile:{{with .Data.User}}{{.Name}}{{end}}:{{len .Data.Bookings}}{{end}}
{{define "manage_bookings"}}bookings:{{range .Data.Bookings}}{{.BookingConfirmationCode}};{{end}}page={{.Data.CurrentPage}}{{end}}
`

func newTestPages(t *testing.T, backend Backend, store session.Store) *Pages {
	t.Helper()

	log := logger.New(logger.Config{Level: "error", Format: "text"})
	cfg := &config.Config{
		RoomsPerPage:     5,
		BookingsPerPage:  2,
		ErrorNoticeTTL:   5 * time.Second,
		SuccessNoticeTTL: 2500 * time.Millisecond,
		MaxRequestSize:   5 << 20,
		Log:              log,
	}

	return &Pages{
		backend: backend,
		store:   store,
		guard:   guard.New(store, log),
		forms:   validator.NewFormValidator(log),
		tmpl:    template.Must(template.New("pages").Parse(testTemplates)),
		types:   newTypesCache(backend, log),
		cfg:     cfg,
		log:     log,
	}
}

func authedStore(role string) session.Store {
	store := session.NewMemoryStore()
	h := session.NewHandle(store, httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	_ = h.SetSession("test-token", "test-refresh", role)
	return store
}

func TestFindBookingNotFoundRendersInlineMessage(t *testing.T) {
	backend := &fakeBackend{
		BookingByConfirmationCodeFunc: func(_ context.Context, code string) (*model.Booking, error) {
			return nil, apperrors.NotFound("No booking found with confirmation code: " + code)
		},
	}
	p := newTestPages(t, backend, session.NewMemoryStore())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/find-booking?find=1&code=MISSING", nil)
	p.FindBooking(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No booking found with confirmation code: MISSING") {
		t.Errorf("expected inline not-found message, got %q", w.Body.String())
	}
}

func TestFindBookingRendersMatch(t *testing.T) {
	backend := &fakeBackend{
		BookingByConfirmationCodeFunc: func(_ context.Context, code string) (*model.Booking, error) {
			return &model.Booking{BookingConfirmationCode: code}, nil
		},
	}
	p := newTestPages(t, backend, session.NewMemoryStore())

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/find-booking?find=1&code=ABC123", nil)
	p.FindBooking(w, r, nil)

	if !strings.Contains(w.Body.String(), "code=ABC123") {
		t.Errorf("expected booking details in page, got %q", w.Body.String())
	}
}

func TestHomeSearchNoAvailabilityShowsNotice(t *testing.T) {
	backend := &fakeBackend{
		AvailableByDateAndTypeFunc: func(context.Context, string, string, string) ([]model.Room, error) {
			return []model.Room{}, nil
		},
	}
	p := newTestPages(t, backend, session.NewMemoryStore())

	in := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	out := time.Now().AddDate(0, 0, 9).Format("2006-01-02")
	target := "/home?search=1&checkInDate=" + in + "&checkOutDate=" + out + "&roomType=Suite"

	w := httptest.NewRecorder()
	p.Home(w, httptest.NewRequest(http.MethodGet, target, nil), nil)

	body := w.Body.String()
	if !strings.Contains(body, "Room not currently available for this date range on the selected room type.") {
		t.Errorf("expected no-availability notice, got %q", body)
	}
	if strings.Contains(body, "room=") {
		t.Errorf("expected no results rendered, got %q", body)
	}
}

func TestHomeSearchRendersResults(t *testing.T) {
	backend := &fakeBackend{
		AvailableByDateAndTypeFunc: func(context.Context, string, string, string) ([]model.Room, error) {
			return []model.Room{{ID: "1", RoomType: "Suite"}}, nil
		},
	}
	p := newTestPages(t, backend, session.NewMemoryStore())

	in := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	out := time.Now().AddDate(0, 0, 9).Format("2006-01-02")
	target := "/home?search=1&checkInDate=" + in + "&checkOutDate=" + out + "&roomType=Suite"

	w := httptest.NewRecorder()
	p.Home(w, httptest.NewRequest(http.MethodGet, target, nil), nil)

	if !strings.Contains(w.Body.String(), "room=Suite") {
		t.Errorf("expected search results rendered, got %q", w.Body.String())
	}
}

func TestLoginStoresSessionAndRedirects(t *testing.T) {
	backend := &fakeBackend{
		LoginFunc: func(_ context.Context, email, password string) (*gateway.LoginResult, error) {
			return &gateway.LoginResult{Token: "jwt-token", RefreshToken: "jwt-refresh", Role: model.RoleUser}, nil
		},
	}
	store := session.NewMemoryStore()
	p := newTestPages(t, backend, store)

	form := url.Values{}
	form.Set("email", "guest@example.com")
	form.Set("password", "secret1")
	form.Set("from", "/room-details-book/42")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	p.Login(w, r, nil)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after login, got status %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/room-details-book/42" {
		t.Errorf("expected redirect to original destination, got %q", loc)
	}

	state := store.Load(r)
	if state.Token != "jwt-token" || state.RefreshToken != "jwt-refresh" {
		t.Errorf("expected credential pair persisted, got %+v", state)
	}
	if state.Role != model.RoleUser {
		t.Errorf("expected role %q, got %q", model.RoleUser, state.Role)
	}
}

func TestLoginInvalidCredentialsRendersInline(t *testing.T) {
	backend := &fakeBackend{
		LoginFunc: func(context.Context, string, string) (*gateway.LoginResult, error) {
			return nil, apperrors.Auth("invalid email or password")
		},
	}
	store := session.NewMemoryStore()
	p := newTestPages(t, backend, store)

	form := url.Values{}
	form.Set("email", "guest@example.com")
	form.Set("password", "wrong-password")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	p.Login(w, r, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected form re-render, got status %d", w.Code)
	}
	if state := store.Load(r); state.IsAuthenticated() {
		t.Error("expected no session after failed login")
	}
}

func TestRegisterSuccessRedirectsToLogin(t *testing.T) {
	backend := &fakeBackend{
		RegisterFunc: func(_ context.Context, user model.User, password string) (string, error) {
			if user.Email != "new@example.com" || password != "secret1" {
				t.Errorf("unexpected registration payload: %+v", user)
			}
			return "User registered successfully", nil
		},
	}
	p := newTestPages(t, backend, session.NewMemoryStore())

	form := url.Values{}
	form.Set("name", "New Guest")
	form.Set("email", "new@example.com")
	form.Set("phoneNumber", "+1 415 555 2671")
	form.Set("password", "secret1")

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	p.Register(w, r, nil)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after registration, got status %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}

func TestProfilePageShowsBookings(t *testing.T) {
	backend := &fakeBackend{
		ProfileFunc: func(context.Context, gateway.SessionContext) (*model.User, error) {
			return &model.User{ID: "u1", Name: "Guest", Email: "guest@example.com"}, nil
		},
		UserBookingsFunc: func(_ context.Context, _ gateway.SessionContext, userID string) (*model.User, error) {
			if userID != "u1" {
				t.Errorf("expected bookings fetched for u1, got %q", userID)
			}
			return &model.User{ID: "u1", Bookings: []model.Booking{
				{BookingConfirmationCode: "AAA"},
				{BookingConfirmationCode: "BBB"},
			}}, nil
		},
	}
	p := newTestPages(t, backend, authedStore(model.RoleUser))

	w := httptest.NewRecorder()
	p.ProfilePage(w, httptest.NewRequest(http.MethodGet, "/profile", nil), nil)

	if !strings.Contains(w.Body.String(), "profile:Guest:2") {
		t.Errorf("expected profile with two bookings, got %q", w.Body.String())
	}
}

func TestManageBookingsFiltersAndPaginates(t *testing.T) {
	all := []model.Booking{
		{ID: "1", BookingConfirmationCode: "AB1"},
		{ID: "2", BookingConfirmationCode: "AB2"},
		{ID: "3", BookingConfirmationCode: "AB3"},
		{ID: "4", BookingConfirmationCode: "XY1"},
	}
	backend := &fakeBackend{
		AllBookingsFunc: func(context.Context, gateway.SessionContext) ([]model.Booking, error) {
			return all, nil
		},
	}
	p := newTestPages(t, backend, authedStore(model.RoleAdmin))

	// Two bookings per page; the AB filter leaves three, so page 2 holds AB3.
	w := httptest.NewRecorder()
	p.ManageBookings(w, httptest.NewRequest(http.MethodGet, "/admin/manage-bookings?code=AB&page=2", nil), nil)

	body := w.Body.String()
	if !strings.Contains(body, "AB3;") {
		t.Errorf("expected AB3 on page 2, got %q", body)
	}
	if strings.Contains(body, "AB1;") || strings.Contains(body, "XY1;") {
		t.Errorf("expected filter and pagination applied, got %q", body)
	}
	if !strings.Contains(body, "page=2") {
		t.Errorf("expected current page 2, got %q", body)
	}
}

func TestRoutesGuardProtectedPages(t *testing.T) {
	backend := &fakeBackend{
		ProfileFunc: func(context.Context, gateway.SessionContext) (*model.User, error) {
			return &model.User{Name: "Guest"}, nil
		},
		UserBookingsFunc: func(context.Context, gateway.SessionContext, string) (*model.User, error) {
			return &model.User{}, nil
		},
	}
	p := newTestPages(t, backend, session.NewMemoryStore())

	router := httprouter.New()
	p.RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/profile", nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected anonymous /profile to redirect, got status %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login?from=%2Fprofile" {
		t.Errorf("expected login redirect preserving destination, got %q", loc)
	}
}

func TestUnknownRouteRedirectsHome(t *testing.T) {
	p := newTestPages(t, &fakeBackend{}, session.NewMemoryStore())

	router := httprouter.New()
	p.RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/no-such-page", nil))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect for unknown route, got status %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/home" {
		t.Errorf("expected redirect to /home, got %q", loc)
	}
}

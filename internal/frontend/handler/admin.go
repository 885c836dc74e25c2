package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"paradisian/internal/frontend/validator"
	"paradisian/internal/gateway"
	"paradisian/internal/view"
	"paradisian/pkg/events"
	"paradisian/pkg/model"
)

func (p *Pages) AdminHome(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	p.render(w, r, "admin", "Admin", view.PopFlash(w, r), nil)
}

type manageRoomsData struct {
	Rooms        []model.Room
	RoomTypes    []string
	SelectedType string
	CurrentPage  int
	PageNumbers  []int
	TotalRooms   int
}

// ManageRooms is the admin room list with the same filter and pagination
// behavior as the public catalog.
func (p *Pages) ManageRooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	rooms, err := p.backend.AllRooms(r.Context())
	if err != nil {
		p.render(w, r, "manage_rooms", "Manage Rooms", p.errorNotice(err), manageRoomsData{})
		return
	}
	types := p.types.Get(r.Context())

	selected := r.URL.Query().Get("type")
	filtered := view.FilterRoomsByType(rooms, selected)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	page = view.ClampPage(page, len(filtered), p.cfg.RoomsPerPage)

	data := manageRoomsData{
		Rooms:        view.PageSlice(filtered, page, p.cfg.RoomsPerPage),
		RoomTypes:    types,
		SelectedType: selected,
		CurrentPage:  page,
		PageNumbers:  view.PageNumbers(len(filtered), p.cfg.RoomsPerPage),
		TotalRooms:   len(filtered),
	}
	p.render(w, r, "manage_rooms", "Manage Rooms", view.PopFlash(w, r), data)
}

type roomFormData struct {
	Room      *model.Room
	RoomTypes []string
	Form      validator.RoomForm
}

func (p *Pages) AddRoomPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	types := p.types.Get(r.Context())
	p.render(w, r, "add_room", "Add Room", view.PopFlash(w, r), roomFormData{RoomTypes: types})
}

// AddRoom creates a room from the multipart form, photo included.
func (p *Pages) AddRoom(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := p.newSession(w, r)

	form, roomForm, notice := p.parseRoomForm(r)
	if notice != nil {
		types := p.types.Get(r.Context())
		p.render(w, r, "add_room", "Add Room", notice, roomFormData{RoomTypes: types, Form: roomForm})
		return
	}

	if err := p.backend.AddRoom(r.Context(), sess, form); err != nil {
		types := p.types.Get(r.Context())
		p.render(w, r, "add_room", "Add Room", p.errorNotice(err), roomFormData{RoomTypes: types, Form: roomForm})
		return
	}

	p.publish(r.Context(), events.TypeRoomAdded, form.RoomType, map[string]string{
		"room_type": form.RoomType,
	})
	view.SetFlash(w, p.successNotice("Room added successfully"))
	http.Redirect(w, r, "/admin/manage-rooms", http.StatusSeeOther)
}

func (p *Pages) EditRoomPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := p.backend.RoomByID(r.Context(), ps.ByName("roomId"))
	if err != nil {
		p.render(w, r, "edit_room", "Edit Room", p.errorNotice(err), roomFormData{})
		return
	}
	types := p.types.Get(r.Context())
	form := validator.RoomForm{
		RoomType:        room.RoomType,
		RoomPrice:       strconv.FormatFloat(room.RoomPrice, 'f', -1, 64),
		RoomDescription: room.RoomDescription,
	}
	p.render(w, r, "edit_room", "Edit Room", view.PopFlash(w, r), roomFormData{Room: room, RoomTypes: types, Form: form})
}

// UpdateRoom sends only the submitted fields; an empty photo keeps the
// existing one.
func (p *Pages) UpdateRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess := p.newSession(w, r)
	roomID := ps.ByName("roomId")

	form, roomForm, notice := p.parseRoomForm(r)
	renderError := func(n *view.Notice) {
		room, err := p.backend.RoomByID(r.Context(), roomID)
		if err != nil {
			room = nil
		}
		types := p.types.Get(r.Context())
		p.render(w, r, "edit_room", "Edit Room", n, roomFormData{Room: room, RoomTypes: types, Form: roomForm})
	}
	if notice != nil {
		renderError(notice)
		return
	}

	if err := p.backend.UpdateRoom(r.Context(), sess, roomID, form); err != nil {
		renderError(p.errorNotice(err))
		return
	}

	p.publish(r.Context(), events.TypeRoomUpdated, roomID, map[string]string{
		"room_id": roomID,
	})
	view.SetFlash(w, p.successNotice("Room updated successfully"))
	http.Redirect(w, r, "/admin/manage-rooms", http.StatusSeeOther)
}

func (p *Pages) DeleteRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess := p.newSession(w, r)
	roomID := ps.ByName("roomId")

	if err := p.backend.DeleteRoom(r.Context(), sess, roomID); err != nil {
		view.SetFlash(w, p.errorNotice(err))
		http.Redirect(w, r, "/admin/manage-rooms", http.StatusSeeOther)
		return
	}

	p.publish(r.Context(), events.TypeRoomDeleted, roomID, map[string]string{
		"room_id": roomID,
	})
	view.SetFlash(w, p.successNotice("Room deleted successfully"))
	http.Redirect(w, r, "/admin/manage-rooms", http.StatusSeeOther)
}

type manageBookingsData struct {
	Bookings      []model.Booking
	FilterCode    string
	CurrentPage   int
	PageNumbers   []int
	TotalBookings int
}

// ManageBookings lists every booking, filterable by confirmation code
// prefix. Changing the filter always starts at page one because filter
// links never carry a page parameter.
func (p *Pages) ManageBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := p.newSession(w, r)

	bookings, err := p.backend.AllBookings(r.Context(), sess)
	if err != nil {
		p.render(w, r, "manage_bookings", "Manage Bookings", p.errorNotice(err), manageBookingsData{})
		return
	}

	code := r.URL.Query().Get("code")
	filtered := view.FilterBookingsByCode(bookings, code)

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	page = view.ClampPage(page, len(filtered), p.cfg.BookingsPerPage)

	data := manageBookingsData{
		Bookings:      view.PageSlice(filtered, page, p.cfg.BookingsPerPage),
		FilterCode:    code,
		CurrentPage:   page,
		PageNumbers:   view.PageNumbers(len(filtered), p.cfg.BookingsPerPage),
		TotalBookings: len(filtered),
	}
	p.render(w, r, "manage_bookings", "Manage Bookings", view.PopFlash(w, r), data)
}

type editBookingData struct {
	Booking *model.Booking
}

func (p *Pages) EditBookingPage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	booking, err := p.backend.BookingByConfirmationCode(r.Context(), ps.ByName("bookingCode"))
	if err != nil {
		p.render(w, r, "edit_booking", "Booking Details", p.errorNotice(err), editBookingData{})
		return
	}
	p.render(w, r, "edit_booking", "Booking Details", view.PopFlash(w, r), editBookingData{Booking: booking})
}

func (p *Pages) CancelBookingAdmin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess := p.newSession(w, r)
	bookingID := ps.ByName("bookingId")

	if err := p.backend.CancelBooking(r.Context(), sess, bookingID); err != nil {
		view.SetFlash(w, p.errorNotice(err))
		http.Redirect(w, r, "/admin/manage-bookings", http.StatusSeeOther)
		return
	}

	p.publish(r.Context(), events.TypeBookingCancelled, bookingID, map[string]string{
		"booking_id": bookingID,
	})
	view.SetFlash(w, p.successNotice("Booking cancelled"))
	http.Redirect(w, r, "/admin/manage-bookings", http.StatusSeeOther)
}

// parseRoomForm reads the multipart room form shared by add and edit. The
// photo is optional on edit, so a missing file is not an error.
func (p *Pages) parseRoomForm(r *http.Request) (gateway.RoomForm, validator.RoomForm, *view.Notice) {
	if err := r.ParseMultipartForm(int64(p.cfg.MaxRequestSize)); err != nil {
		return gateway.RoomForm{}, validator.RoomForm{}, view.ErrorNotice("Invalid form submission", p.cfg.ErrorNoticeTTL)
	}

	roomForm := validator.RoomForm{
		RoomType:        r.FormValue("roomType"),
		RoomPrice:       r.FormValue("roomPrice"),
		RoomDescription: r.FormValue("roomDescription"),
	}
	if err := p.forms.ValidateRoom(&roomForm); err != nil {
		return gateway.RoomForm{}, roomForm, view.ErrorNotice(err.Error(), p.cfg.ErrorNoticeTTL)
	}

	form := gateway.RoomForm{
		RoomType:        roomForm.RoomType,
		RoomPrice:       roomForm.RoomPrice,
		RoomDescription: roomForm.RoomDescription,
	}

	file, header, err := r.FormFile("photo")
	if err == nil {
		defer file.Close()
		photo, readErr := io.ReadAll(file)
		if readErr != nil {
			return gateway.RoomForm{}, roomForm, view.ErrorNotice("Failed to read room photo", p.cfg.ErrorNoticeTTL)
		}
		form.PhotoName = header.Filename
		form.Photo = photo
	} else if err != http.ErrMissingFile {
		return gateway.RoomForm{}, roomForm, view.ErrorNotice("Failed to read room photo", p.cfg.ErrorNoticeTTL)
	}

	return form, roomForm, nil
}

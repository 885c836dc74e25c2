package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"

	"paradisian/internal/frontend/validator"
	"paradisian/internal/guard"
	"paradisian/internal/view"
	"paradisian/pkg/events"
	"paradisian/pkg/model"
)

type findBookingData struct {
	Code    string
	Booking *model.Booking
}

// FindBooking looks a booking up by confirmation code, unauthenticated. A
// miss renders an inline message and clears any previously shown booking.
func (p *Pages) FindBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	data := findBookingData{Code: code}

	if r.URL.Query().Get("find") == "" {
		p.render(w, r, "find_booking", "Find Booking", nil, data)
		return
	}
	if code == "" {
		notice := view.ErrorNotice("Please enter a booking confirmation code", p.cfg.ErrorNoticeTTL)
		p.render(w, r, "find_booking", "Find Booking", notice, data)
		return
	}

	booking, err := p.backend.BookingByConfirmationCode(r.Context(), code)
	if err != nil {
		p.render(w, r, "find_booking", "Find Booking", p.errorNotice(err), data)
		return
	}
	data.Booking = booking
	p.render(w, r, "find_booking", "Find Booking", nil, data)
}

type roomDetailsData struct {
	Room *model.Room
	Form validator.BookingForm
}

// RoomDetails renders a room with its booking form. The page itself is
// public; submitting the booking requires authentication.
func (p *Pages) RoomDetails(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	room, err := p.backend.RoomByID(r.Context(), ps.ByName("roomId"))
	if err != nil {
		p.render(w, r, "room_details", "Room Details", p.errorNotice(err), roomDetailsData{})
		return
	}
	p.render(w, r, "room_details", "Room Details", view.PopFlash(w, r), roomDetailsData{Room: room})
}

// BookRoom places a booking for the logged-in user. Anonymous submissions
// are sent to login with the room page as the return destination.
func (p *Pages) BookRoom(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess := p.newSession(w, r)
	roomID := ps.ByName("roomId")

	if !sess.IsAuthenticated() {
		http.Redirect(w, r, guard.LoginRedirect("/room-details-book/"+roomID), http.StatusSeeOther)
		return
	}

	form := validator.BookingForm{
		CheckInDate:   r.FormValue("checkInDate"),
		CheckOutDate:  r.FormValue("checkOutDate"),
		NumOfAdults:   formInt(r, "numOfAdults"),
		NumOfChildren: formInt(r, "numOfChildren"),
	}

	renderError := func(notice *view.Notice) {
		room, err := p.backend.RoomByID(r.Context(), roomID)
		if err != nil {
			room = nil
		}
		p.render(w, r, "room_details", "Room Details", notice, roomDetailsData{Room: room, Form: form})
	}

	if err := p.forms.ValidateBooking(&form); err != nil {
		renderError(view.ErrorNotice(err.Error(), p.cfg.ErrorNoticeTTL))
		return
	}

	// The booking endpoint needs the user's id, which only the profile
	// lookup can supply.
	profile, err := p.backend.Profile(r.Context(), sess)
	if err != nil {
		renderError(p.errorNotice(err))
		return
	}

	booking := model.Booking{
		CheckInDate:   form.CheckInDate,
		CheckOutDate:  form.CheckOutDate,
		NumOfAdults:   form.NumOfAdults,
		NumOfChildren: form.NumOfChildren,
	}
	code, err := p.backend.BookRoom(r.Context(), sess, roomID, profile.ID, booking)
	if err != nil {
		renderError(p.errorNotice(err))
		return
	}

	p.publish(r.Context(), events.TypeBookingCreated, profile.Email, map[string]string{
		"room_id":           roomID,
		"confirmation_code": code,
	})

	view.SetFlash(w, p.successNotice("Booking confirmed. Your confirmation code is "+code))
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

func formInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return 0
	}
	return n
}

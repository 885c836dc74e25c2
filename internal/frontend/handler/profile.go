package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"paradisian/internal/frontend/validator"
	"paradisian/internal/view"
	"paradisian/pkg/events"
	"paradisian/pkg/model"
)

type profileData struct {
	User     *model.User
	Bookings []model.Booking
}

// ProfilePage shows the logged-in user's details and booking history.
func (p *Pages) ProfilePage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := p.newSession(w, r)

	user, err := p.backend.Profile(r.Context(), sess)
	if err != nil {
		p.render(w, r, "profile", "Profile", p.errorNotice(err), profileData{})
		return
	}

	data := profileData{User: user}
	withBookings, err := p.backend.UserBookings(r.Context(), sess, user.ID)
	if err != nil {
		p.render(w, r, "profile", "Profile", p.errorNotice(err), data)
		return
	}
	data.Bookings = withBookings.Bookings

	p.render(w, r, "profile", "Profile", view.PopFlash(w, r), data)
}

type editProfileData struct {
	User *model.User
	Form validator.ProfileForm
}

func (p *Pages) EditProfilePage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := p.newSession(w, r)

	user, err := p.backend.Profile(r.Context(), sess)
	if err != nil {
		p.render(w, r, "edit_profile", "Edit Profile", p.errorNotice(err), editProfileData{})
		return
	}
	form := validator.ProfileForm{Name: user.Name, PhoneNumber: user.PhoneNumber}
	p.render(w, r, "edit_profile", "Edit Profile", view.PopFlash(w, r), editProfileData{User: user, Form: form})
}

// UpdateProfile saves name and phone number changes. Email and role are
// fixed server side and never submitted.
func (p *Pages) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := p.newSession(w, r)

	form := validator.ProfileForm{
		Name:        r.FormValue("name"),
		PhoneNumber: r.FormValue("phoneNumber"),
	}
	data := editProfileData{Form: form}

	if err := p.forms.ValidateProfile(&form); err != nil {
		p.render(w, r, "edit_profile", "Edit Profile", view.ErrorNotice(err.Error(), p.cfg.ErrorNoticeTTL), data)
		return
	}

	patch := model.User{Name: form.Name, PhoneNumber: form.PhoneNumber}
	if _, err := p.backend.UpdateProfile(r.Context(), sess, patch); err != nil {
		p.render(w, r, "edit_profile", "Edit Profile", p.errorNotice(err), data)
		return
	}

	view.SetFlash(w, p.successNotice("Profile updated successfully"))
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

// DeleteAccount removes the account on the backend and clears the session.
// A failed delete keeps the user logged in.
func (p *Pages) DeleteAccount(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sess := p.newSession(w, r)

	user, err := p.backend.Profile(r.Context(), sess)
	if err != nil {
		p.render(w, r, "profile", "Profile", p.errorNotice(err), profileData{})
		return
	}
	if err := p.backend.DeleteUser(r.Context(), sess, user.ID); err != nil {
		p.render(w, r, "profile", "Profile", p.errorNotice(err), profileData{User: user})
		return
	}

	if err := sess.ClearSession(); err != nil {
		p.log.Error("Failed to clear session after account deletion", "error", err)
	}
	view.SetFlash(w, p.successNotice("Your account has been deleted"))
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// CancelOwnBooking cancels one of the user's bookings and returns to the
// profile page.
func (p *Pages) CancelOwnBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	sess := p.newSession(w, r)
	bookingID := ps.ByName("bookingId")

	if err := p.backend.CancelBooking(r.Context(), sess, bookingID); err != nil {
		view.SetFlash(w, p.errorNotice(err))
		http.Redirect(w, r, "/profile", http.StatusSeeOther)
		return
	}

	p.publish(r.Context(), events.TypeBookingCancelled, "", map[string]string{
		"booking_id": bookingID,
	})
	view.SetFlash(w, p.successNotice("Booking cancelled"))
	http.Redirect(w, r, "/profile", http.StatusSeeOther)
}

package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"paradisian/internal/frontend/validator"
	"paradisian/internal/view"
	"paradisian/pkg/model"
)

type homeData struct {
	RoomTypes []string
	Search    searchData
}

type searchData struct {
	CheckInDate  string
	CheckOutDate string
	RoomType     string
	Submitted    bool
	Results      []model.Room
}

// Home renders the landing page with the availability search. A submitted
// search arrives as query parameters; an empty result set surfaces a
// "not available" notice and leaves the results list untouched.
func (p *Pages) Home(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	q := r.URL.Query()
	data := homeData{
		RoomTypes: p.types.Get(r.Context()),
		Search: searchData{
			CheckInDate:  q.Get("checkInDate"),
			CheckOutDate: q.Get("checkOutDate"),
			RoomType:     q.Get("roomType"),
		},
	}

	if q.Get("search") == "" {
		p.render(w, r, "home", "Paradisian Hotel", view.PopFlash(w, r), data)
		return
	}

	form := validator.SearchForm{
		CheckInDate:  data.Search.CheckInDate,
		CheckOutDate: data.Search.CheckOutDate,
		RoomType:     data.Search.RoomType,
	}
	if err := p.forms.ValidateSearch(&form); err != nil {
		p.render(w, r, "home", "Paradisian Hotel", view.ErrorNotice(err.Error(), p.cfg.ErrorNoticeTTL), data)
		return
	}

	rooms, err := p.backend.AvailableRoomsByDateAndType(r.Context(), form.CheckInDate, form.CheckOutDate, form.RoomType)
	if err != nil {
		p.render(w, r, "home", "Paradisian Hotel", p.errorNotice(err), data)
		return
	}
	if len(rooms) == 0 {
		notice := view.ErrorNotice("Room not currently available for this date range on the selected room type.", p.cfg.ErrorNoticeTTL)
		p.render(w, r, "home", "Paradisian Hotel", notice, data)
		return
	}

	data.Search.Submitted = true
	data.Search.Results = rooms
	p.render(w, r, "home", "Paradisian Hotel", nil, data)
}

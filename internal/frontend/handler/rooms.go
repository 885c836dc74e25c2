package handler

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/julienschmidt/httprouter"

	"paradisian/internal/view"
	"paradisian/pkg/model"
)

type roomsData struct {
	Rooms        []model.Room
	RoomTypes    []string
	SelectedType string
	CurrentPage  int
	PageNumbers  []int
	TotalRooms   int
}

// Rooms renders the room catalog: one fetch on mount, then type filtering
// and pagination over the already-fetched collection. Filter links carry no
// page parameter, so every filter change lands on page 1.
func (p *Pages) Rooms(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var rooms []model.Room
	var types []string
	var roomsErr error

	// Catalog and filter options load concurrently on mount.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		rooms, roomsErr = p.backend.AllRooms(ctx)
	}()
	go func() {
		defer wg.Done()
		types = p.types.Get(ctx)
	}()
	wg.Wait()

	if roomsErr != nil {
		p.render(w, r, "rooms", "All Rooms", p.errorNotice(roomsErr), roomsData{RoomTypes: types})
		return
	}

	selectedType := r.URL.Query().Get("type")
	filtered := view.FilterRoomsByType(rooms, selectedType)

	page := 1
	if s := r.URL.Query().Get("page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			page = n
		}
	}
	page = view.ClampPage(page, len(filtered), p.cfg.RoomsPerPage)

	data := roomsData{
		Rooms:        view.PageSlice(filtered, page, p.cfg.RoomsPerPage),
		RoomTypes:    types,
		SelectedType: selectedType,
		CurrentPage:  page,
		PageNumbers:  view.PageNumbers(len(filtered), p.cfg.RoomsPerPage),
		TotalRooms:   len(filtered),
	}
	p.render(w, r, "rooms", "All Rooms", view.PopFlash(w, r), data)
}

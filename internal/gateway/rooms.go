package gateway

import (
	"context"
	"net/http"
	"net/url"

	"paradisian/pkg/model"
)

// RoomForm carries the fields of the admin add/update room form. The photo is
// optional on update; absent fields are left untouched by the backend.
type RoomForm struct {
	RoomType        string
	RoomPrice       string
	RoomDescription string
	PhotoName       string
	Photo           []byte
}

func (f RoomForm) fields() map[string]string {
	return map[string]string{
		"roomType":        f.RoomType,
		"roomPrice":       f.RoomPrice,
		"roomDescription": f.RoomDescription,
	}
}

func (g *Gateway) AllRooms(ctx context.Context) ([]model.Room, error) {
	env, err := g.do(ctx, nil, request{method: http.MethodGet, path: "/rooms/all"})
	if err != nil {
		return nil, err
	}
	return env.RoomList, nil
}

func (g *Gateway) AllAvailableRooms(ctx context.Context) ([]model.Room, error) {
	env, err := g.do(ctx, nil, request{method: http.MethodGet, path: "/rooms/all-available-rooms"})
	if err != nil {
		return nil, err
	}
	return env.RoomList, nil
}

// AvailableRoomsByDateAndType searches availability for a date range and room
// type. Dates travel as YYYY-MM-DD query parameters.
func (g *Gateway) AvailableRoomsByDateAndType(ctx context.Context, checkInDate, checkOutDate, roomType string) ([]model.Room, error) {
	q := url.Values{}
	q.Set("checkInDate", checkInDate)
	q.Set("checkOutDate", checkOutDate)
	q.Set("roomType", roomType)

	env, err := g.do(ctx, nil, request{
		method: http.MethodGet,
		path:   "/rooms/available-rooms-by-date-and-type?" + q.Encode(),
	})
	if err != nil {
		return nil, err
	}
	return env.RoomList, nil
}

// RoomTypes returns the distinct room types. Unlike the other endpoints this
// one responds with a bare JSON array.
func (g *Gateway) RoomTypes(ctx context.Context) ([]string, error) {
	var types []string
	if err := g.getJSON(ctx, "/rooms/types", &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (g *Gateway) RoomByID(ctx context.Context, roomID string) (*model.Room, error) {
	env, err := g.do(ctx, nil, request{
		method: http.MethodGet,
		path:   "/rooms/room-by-id/" + url.PathEscape(roomID),
	})
	if err != nil {
		return nil, err
	}
	return env.Room, nil
}

func (g *Gateway) AddRoom(ctx context.Context, sess SessionContext, form RoomForm) error {
	body, contentType, err := multipartBody(form.fields(), form.PhotoName, form.Photo)
	if err != nil {
		return err
	}
	_, err = g.do(ctx, sess, request{
		method:      http.MethodPost,
		path:        "/rooms/add",
		body:        body,
		contentType: contentType,
		authed:      true,
	})
	return err
}

func (g *Gateway) UpdateRoom(ctx context.Context, sess SessionContext, roomID string, form RoomForm) error {
	body, contentType, err := multipartBody(form.fields(), form.PhotoName, form.Photo)
	if err != nil {
		return err
	}
	_, err = g.do(ctx, sess, request{
		method:      http.MethodPut,
		path:        "/rooms/update/" + url.PathEscape(roomID),
		body:        body,
		contentType: contentType,
		authed:      true,
	})
	return err
}

func (g *Gateway) DeleteRoom(ctx context.Context, sess SessionContext, roomID string) error {
	_, err := g.do(ctx, sess, request{
		method: http.MethodDelete,
		path:   "/rooms/delete/" + url.PathEscape(roomID),
		authed: true,
	})
	return err
}

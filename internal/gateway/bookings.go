package gateway

import (
	"context"
	"net/http"
	"net/url"

	"paradisian/pkg/model"
)

// BookRoom places a booking and returns the backend-assigned confirmation
// code. An unavailable room surfaces as a CONFLICT error.
func (g *Gateway) BookRoom(ctx context.Context, sess SessionContext, roomID, userID string, booking model.Booking) (string, error) {
	body, err := marshalBody(booking)
	if err != nil {
		return "", err
	}
	env, err := g.do(ctx, sess, request{
		method:      http.MethodPost,
		path:        "/bookings/book-room/" + url.PathEscape(roomID) + "/" + url.PathEscape(userID),
		body:        body,
		contentType: "application/json",
		authed:      true,
	})
	if err != nil {
		return "", err
	}
	return env.BookingConfirmationCode, nil
}

// AllBookings lists every booking, admin only.
func (g *Gateway) AllBookings(ctx context.Context, sess SessionContext) ([]model.Booking, error) {
	env, err := g.do(ctx, sess, request{
		method: http.MethodGet,
		path:   "/admin/manage-bookings",
		authed: true,
	})
	if err != nil {
		return nil, err
	}
	return env.BookingList, nil
}

// BookingByConfirmationCode looks a booking up without authentication.
func (g *Gateway) BookingByConfirmationCode(ctx context.Context, code string) (*model.Booking, error) {
	env, err := g.do(ctx, nil, request{
		method: http.MethodGet,
		path:   "/bookings/get-by-confirmation-code/" + url.PathEscape(code),
	})
	if err != nil {
		return nil, err
	}
	return env.Booking, nil
}

func (g *Gateway) CancelBooking(ctx context.Context, sess SessionContext, bookingID string) error {
	_, err := g.do(ctx, sess, request{
		method: http.MethodDelete,
		path:   "/bookings/cancel/" + url.PathEscape(bookingID),
		authed: true,
	})
	return err
}

package view

import (
	"strings"

	"paradisian/pkg/model"
)

// FilterRoomsByType returns the subset whose type equals the selection, or
// the full set when the selection is empty. Filtering never re-fetches; the
// caller must reset pagination to page 1 on every selection change.
func FilterRoomsByType(rooms []model.Room, roomType string) []model.Room {
	if roomType == "" {
		return rooms
	}
	filtered := make([]model.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.RoomType == roomType {
			filtered = append(filtered, room)
		}
	}
	return filtered
}

// FilterBookingsByCode narrows the admin booking table by confirmation code
// prefix, case-insensitive.
func FilterBookingsByCode(bookings []model.Booking, query string) []model.Booking {
	query = strings.TrimSpace(strings.ToUpper(query))
	if query == "" {
		return bookings
	}
	filtered := make([]model.Booking, 0, len(bookings))
	for _, booking := range bookings {
		if strings.HasPrefix(strings.ToUpper(booking.BookingConfirmationCode), query) {
			filtered = append(filtered, booking)
		}
	}
	return filtered
}

package model

// Wire types for the hotel backend. Field names follow the backend's JSON
// contract; dates travel as "YYYY-MM-DD" strings.

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type Room struct {
	ID              string  `json:"id,omitempty"`
	RoomType        string  `json:"roomType"`
	RoomPrice       float64 `json:"roomPrice"`
	RoomPhotoURL    string  `json:"roomPhotoUrl,omitempty"`
	RoomDescription string  `json:"roomDescription,omitempty"`
}

type Booking struct {
	ID                      string `json:"id,omitempty"`
	CheckInDate             string `json:"checkInDate"`
	CheckOutDate            string `json:"checkOutDate"`
	NumOfAdults             int    `json:"numOfAdults"`
	NumOfChildren           int    `json:"numOfChildren"`
	TotalNumOfGuest         int    `json:"totalNumOfGuest,omitempty"`
	BookingConfirmationCode string `json:"bookingConfirmationCode,omitempty"`
	Room                    *Room  `json:"room,omitempty"`
	User                    *User  `json:"user,omitempty"`
}

type User struct {
	ID          string    `json:"id,omitempty"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	PhoneNumber string    `json:"phoneNumber"`
	Role        string    `json:"role,omitempty"`
	Bookings    []Booking `json:"bookings,omitempty"`
}

// Envelope is the backend's uniform response body. Every endpoint returns
// statusCode and message plus whichever payload fields apply.
type Envelope struct {
	StatusCode              int       `json:"statusCode"`
	Message                 string    `json:"message"`
	Token                   string    `json:"token,omitempty"`
	RefreshToken            string    `json:"refreshToken,omitempty"`
	Role                    string    `json:"role,omitempty"`
	ExpirationTime          string    `json:"expirationTime,omitempty"`
	User                    *User     `json:"user,omitempty"`
	UserList                []User    `json:"userList,omitempty"`
	Room                    *Room     `json:"room,omitempty"`
	RoomList                []Room    `json:"roomList,omitempty"`
	Booking                 *Booking  `json:"booking,omitempty"`
	BookingList             []Booking `json:"bookingList,omitempty"`
	BookingConfirmationCode string    `json:"bookingConfirmationCode,omitempty"`
}

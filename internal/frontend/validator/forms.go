package validator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"

	"paradisian/pkg/logger"
)

const dateLayout = "2006-01-02"

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

// Messages flattens the per-field errors for inline rendering.
func (v ValidationErrors) Messages() []string {
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Message)
	}
	return messages
}

type RegisterForm struct {
	Name        string `validate:"required,min=2,max=100"`
	Email       string `validate:"required,email"`
	Password    string `validate:"required,min=6,max=72"`
	PhoneNumber string `validate:"required,hotel_phone"`
}

type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

type ProfileForm struct {
	Name        string `validate:"required,min=2,max=100"`
	PhoneNumber string `validate:"required,hotel_phone"`
}

type SearchForm struct {
	CheckInDate  string `validate:"required,hotel_date"`
	CheckOutDate string `validate:"required,hotel_date"`
	RoomType     string `validate:"required"`
}

type BookingForm struct {
	CheckInDate   string `validate:"required,hotel_date"`
	CheckOutDate  string `validate:"required,hotel_date"`
	NumOfAdults   int    `validate:"required,min=1,max=10"`
	NumOfChildren int    `validate:"min=0,max=10"`
}

type RoomForm struct {
	RoomType        string `validate:"required,min=2,max=50"`
	RoomPrice       string `validate:"required"`
	RoomDescription string `validate:"max=500"`
}

// FormValidator runs the client-side checks that fail before any network
// call is made.
type FormValidator struct {
	validate *validator.Validate
	now      func() time.Time
}

func NewFormValidator(log *logger.Logger) *FormValidator {
	v := validator.New()

	if err := v.RegisterValidation("hotel_phone", validatePhone); err != nil {
		log.Fatal("Failed to register 'hotel_phone' validator", "error", err)
	}
	if err := v.RegisterValidation("hotel_date", validateDate); err != nil {
		log.Fatal("Failed to register 'hotel_date' validator", "error", err)
	}

	return &FormValidator{validate: v, now: time.Now}
}

func validatePhone(fl validator.FieldLevel) bool {
	number, err := phonenumbers.Parse(fl.Field().String(), "US")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(number)
}

func validateDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(dateLayout, fl.Field().String())
	return err == nil
}

func (v *FormValidator) ValidateRegister(form *RegisterForm) error {
	return v.check(form)
}

func (v *FormValidator) ValidateLogin(form *LoginForm) error {
	return v.check(form)
}

func (v *FormValidator) ValidateProfile(form *ProfileForm) error {
	return v.check(form)
}

func (v *FormValidator) ValidateSearch(form *SearchForm) error {
	if err := v.check(form); err != nil {
		return err
	}
	return v.checkDateRange(form.CheckInDate, form.CheckOutDate)
}

func (v *FormValidator) ValidateBooking(form *BookingForm) error {
	if err := v.check(form); err != nil {
		return err
	}
	return v.checkDateRange(form.CheckInDate, form.CheckOutDate)
}

func (v *FormValidator) ValidateRoom(form *RoomForm) error {
	if err := v.check(form); err != nil {
		return err
	}
	if price, err := strconv.ParseFloat(form.RoomPrice, 64); err != nil || price <= 0 {
		return ValidationErrors{
			ValidationError{Field: "RoomPrice", Message: "room price must be a positive number"},
		}
	}
	return nil
}

func (v *FormValidator) check(form any) error {
	if err := v.validate.Struct(form); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func (v *FormValidator) checkDateRange(checkIn, checkOut string) error {
	in, err := time.Parse(dateLayout, checkIn)
	if err != nil {
		return ValidationErrors{ValidationError{Field: "CheckInDate", Message: "check-in date must be YYYY-MM-DD"}}
	}
	out, err := time.Parse(dateLayout, checkOut)
	if err != nil {
		return ValidationErrors{ValidationError{Field: "CheckOutDate", Message: "check-out date must be YYYY-MM-DD"}}
	}

	// Parsed dates sit at UTC midnight, so "today" must too. Truncating
	// the clock on the epoch timeline would shift the day boundary in
	// non-UTC server timezones.
	y, m, d := v.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if in.Before(today) {
		return ValidationErrors{ValidationError{Field: "CheckInDate", Message: "check-in date cannot be in the past"}}
	}
	if !out.After(in) {
		return ValidationErrors{ValidationError{Field: "CheckOutDate", Message: "check-out date must be after check-in date"}}
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "hotel_phone":
			message = fmt.Sprintf("%s must be a valid phone number", err.Field())
		case "hotel_date":
			message = fmt.Sprintf("%s must be a date in YYYY-MM-DD format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}

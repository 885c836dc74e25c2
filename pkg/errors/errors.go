package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeValidation = "VALIDATION_ERROR"
	CodeAuth       = "AUTH_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT"
	CodeNetwork    = "NETWORK_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

func Auth(message string) *AppError {
	return &AppError{
		Code:       CodeAuth,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		HTTPStatus: http.StatusConflict,
	}
}

func Network(message string, err error) *AppError {
	return &AppError{
		Code:       CodeNetwork,
		Message:    message,
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// FromBackendStatus classifies a backend HTTP status into the error taxonomy.
// The backend reports "room unavailable" as a conflict and expired or invalid
// tokens as 401/403.
func FromBackendStatus(status int, message string) *AppError {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AppError{Code: CodeAuth, Message: message, HTTPStatus: status}
	case status == http.StatusNotFound:
		return &AppError{Code: CodeNotFound, Message: message, HTTPStatus: status}
	case status == http.StatusConflict:
		return &AppError{Code: CodeConflict, Message: message, HTTPStatus: status}
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return &AppError{Code: CodeValidation, Message: message, HTTPStatus: status}
	default:
		return &AppError{Code: CodeNetwork, Message: message, HTTPStatus: status}
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}

func HasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

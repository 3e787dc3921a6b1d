package subscriptions

import (
	"errors"
	"net/http"
)

// Domain errors for subscription operations.
var (
	ErrChannelNotFound = errors.New("channel not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidChannel  = errors.New("invalid channel id")
	ErrInvalidUser     = errors.New("invalid subscriber id")
	ErrSelf            = errors.New("you cannot subscribe to your own channel")
	ErrForbidden       = errors.New("you can only view your own subscriptions")
)

// MapHTTPStatus maps subscription domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrChannelNotFound), errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidChannel),
		errors.Is(err, ErrInvalidUser),
		errors.Is(err, ErrSelf):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

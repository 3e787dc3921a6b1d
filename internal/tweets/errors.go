package tweets

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/reel/pkg/handlers"
	"github.com/JaimeStill/reel/pkg/validation"
)

// Domain errors for tweet operations.
var (
	ErrNotFound     = errors.New("tweet not found")
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidID    = errors.New("invalid tweet id")
	ErrInvalidUser  = errors.New("invalid user id")
	ErrForbidden    = errors.New("you don't have permission to modify this tweet")
)

// MapHTTPStatus maps tweet domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidUser),
		errors.Is(err, handlers.ErrInvalidBody),
		errors.Is(err, validation.ErrInvalid):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

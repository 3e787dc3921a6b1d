package comments

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/reel/pkg/handlers"
	"github.com/JaimeStill/reel/pkg/validation"
)

// Domain errors for comment operations.
var (
	ErrNotFound      = errors.New("comment not found")
	ErrVideoNotFound = errors.New("video not found")
	ErrInvalidID     = errors.New("invalid comment id")
	ErrInvalidVideo  = errors.New("invalid video id")
	ErrForbidden     = errors.New("only the author can modify this comment")
)

// MapHTTPStatus maps comment domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrVideoNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidVideo),
		errors.Is(err, handlers.ErrInvalidBody),
		errors.Is(err, validation.ErrInvalid):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

package likes

import (
	"errors"
	"net/http"
)

// Domain errors for like operations.
var (
	ErrNotFound      = errors.New("like target not found")
	ErrInvalidID     = errors.New("invalid target id")
	ErrUnknownTarget = errors.New("unknown like target")
)

// MapHTTPStatus maps like domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidID), errors.Is(err, ErrUnknownTarget):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

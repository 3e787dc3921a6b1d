package dashboard

import (
	"errors"
	"net/http"
)

// ErrInvalidFilter indicates an isPublished value that is not a boolean.
var ErrInvalidFilter = errors.New("isPublished must be true or false")

// MapHTTPStatus maps dashboard errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidFilter) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

package videos

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/reel/pkg/handlers"
	"github.com/JaimeStill/reel/pkg/media"
	"github.com/JaimeStill/reel/pkg/validation"
)

// Domain errors for video operations.
var (
	ErrNotFound          = errors.New("video not found")
	ErrInvalidID         = errors.New("invalid video id")
	ErrInvalidUserID     = errors.New("invalid userId")
	ErrForbidden         = errors.New("only the owner can modify this video")
	ErrFilesRequired     = errors.New("video file and thumbnail are required")
	ErrNothingToUpdate   = errors.New("at least one field to update is required")
	ErrInvalidPublishing = errors.New("isPublished must be true or false")
)

// MapHTTPStatus maps video domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, media.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidUserID),
		errors.Is(err, ErrFilesRequired),
		errors.Is(err, ErrNothingToUpdate),
		errors.Is(err, ErrInvalidPublishing),
		errors.Is(err, media.ErrEmptyFile),
		errors.Is(err, media.ErrInvalidForm),
		errors.Is(err, handlers.ErrInvalidBody),
		errors.Is(err, validation.ErrInvalid):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

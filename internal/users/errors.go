package users

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/handlers"
	"github.com/JaimeStill/reel/pkg/media"
	"github.com/JaimeStill/reel/pkg/validation"
)

// Domain errors for user operations.
var (
	ErrNotFound           = errors.New("user does not exist")
	ErrDuplicate          = errors.New("user with email or username already exists")
	ErrInvalidID          = errors.New("invalid user id")
	ErrInvalidCredentials = errors.New("invalid user credentials")
	ErrInvalidPassword    = errors.New("invalid old password")
	ErrInvalidRefresh     = errors.New("refresh token is expired or used")
	ErrAvatarRequired     = errors.New("avatar file is required")
	ErrCoverRequired      = errors.New("cover image file is required")
	ErrUsernameRequired   = errors.New("username is missing")
)

// MapHTTPStatus maps user domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInvalidRefresh),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, media.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrAvatarRequired),
		errors.Is(err, ErrCoverRequired),
		errors.Is(err, ErrUsernameRequired),
		errors.Is(err, media.ErrEmptyFile),
		errors.Is(err, media.ErrInvalidForm),
		errors.Is(err, handlers.ErrInvalidBody),
		errors.Is(err, validation.ErrInvalid):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

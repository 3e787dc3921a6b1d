package auth

import "errors"

var (
	// ErrUnauthenticated indicates a request carries no usable credential.
	ErrUnauthenticated = errors.New("unauthorized request")
	// ErrMissingToken indicates no token was presented.
	ErrMissingToken = errors.New("token not provided")
	// ErrInvalidToken indicates a token failed signature, issuer, or audience checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates a token is past its expiry.
	ErrExpiredToken = errors.New("token expired")
	// ErrUnknownUser indicates a verified token names a user that no longer exists.
	ErrUnknownUser = errors.New("user not found for token")
)

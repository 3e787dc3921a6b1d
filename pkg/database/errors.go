package database

import "errors"

var (
	// ErrNotReady indicates the startup ping has not succeeded.
	ErrNotReady = errors.New("database not ready")
	// ErrInvalidDSN indicates the connection settings could not be parsed.
	ErrInvalidDSN = errors.New("invalid database connection settings")
)

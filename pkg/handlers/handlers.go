// Package handlers writes the JSON response envelopes shared by every API endpoint.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// Envelope wraps every successful response.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

// ErrorEnvelope wraps every failed response.
type ErrorEnvelope struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

// InternalMessage is the external message for every 5xx response.
const InternalMessage = "Something went wrong"

// ErrInvalidBody is returned by DecodeJSON for malformed request bodies.
var ErrInvalidBody = errors.New("invalid request body")

type detailer interface {
	Details() []string
}

// Respond writes data in the success envelope.
func Respond(w http.ResponseWriter, status int, data any, message string) {
	RespondJSON(w, status, Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// RespondError writes err in the failure envelope. Server errors are logged with
// their cause and rendered with a generic message; client errors are logged at warn.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	env := ErrorEnvelope{
		StatusCode: status,
		Message:    err.Error(),
		Errors:     []string{},
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "status", status, "error", err)
		env.Message = InternalMessage
	} else {
		logger.Warn("request rejected", "status", status, "error", err)
		var d detailer
		if errors.As(err, &d) {
			env.Errors = append(env.Errors, d.Details()...)
		}
	}

	RespondJSON(w, status, env)
}

// RespondJSON writes v as JSON with the given status.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// DecodeJSON decodes the request body into v.
// Unknown fields are rejected; the returned error matches ErrInvalidBody.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}

// ParseID parses the named path value as a UUID, returning errInvalid when malformed.
func ParseID(r *http.Request, name string, errInvalid error) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, errInvalid
	}
	return id, nil
}

package auth

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/reel/pkg/handlers"
)

// Caller returns the request identity, writing a 401 envelope when there is none.
func Caller(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (Identity, bool) {
	id, ok := FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, logger, http.StatusUnauthorized, ErrUnauthenticated)
	}
	return id, ok
}

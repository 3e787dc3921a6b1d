// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/reel/internal/config"
	"github.com/JaimeStill/reel/internal/infrastructure"
	"github.com/JaimeStill/reel/pkg/handlers"
	"github.com/JaimeStill/reel/pkg/middleware"
	"github.com/JaimeStill/reel/pkg/module"
)

var (
	errRouteNotFound    = errors.New("route not found")
	errMethodNotAllowed = errors.New("method not allowed")
)

// NewModule creates the API module with all domain handlers and middleware.
// The OpenAPI document is served at <base_path>/openapi.json.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, unmatched(mux, runtime.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.Metrics(runtime.Metrics))

	return m, nil
}

// unmatched answers requests that match no route with the JSON error
// envelope. ServeMux still decides between 404 and 405 and sets Allow.
func unmatched(mux *http.ServeMux, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, pattern := mux.Handler(r)
		if pattern != "" {
			mux.ServeHTTP(w, r)
			return
		}

		sw := &statusWriter{header: w.Header()}
		h.ServeHTTP(sw, r)

		switch sw.status {
		case http.StatusMethodNotAllowed:
			handlers.RespondError(w, logger, http.StatusMethodNotAllowed, errMethodNotAllowed)
		default:
			handlers.RespondError(w, logger, http.StatusNotFound, errRouteNotFound)
		}
	})
}

// statusWriter keeps the status and headers of a response and drops its body.
type statusWriter struct {
	header http.Header
	status int
}

func (s *statusWriter) Header() http.Header { return s.header }

func (s *statusWriter) WriteHeader(status int) { s.status = status }

func (s *statusWriter) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return len(b), nil
}

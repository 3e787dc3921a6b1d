package dashboard

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/handlers"
	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/routes"
)

// Handler provides HTTP endpoints for the channel dashboard.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "dashboard"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for dashboard endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/dashboard",
		Description: "Channel statistics for the caller",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/stats", Handler: h.Stats},
			{Method: "GET", Pattern: "/videos", Handler: h.Videos},
		},
	}
}

// Stats returns the caller's channel statistics.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	stats, err := h.sys.Stats(r.Context(), caller.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, stats, "Channel stats fetched successfully")
}

// Videos lists the caller's own videos, drafts included unless isPublished filters them.
func (h *Handler) Videos(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	values := r.URL.Query()

	var published *bool
	if raw := values.Get("isPublished"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidFilter)
			return
		}
		published = &v
	}

	page := pagination.PageRequestFromQuery(values, h.pagination)

	result, err := h.sys.Videos(r.Context(), caller.ID, published, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, result, "Channel videos fetched successfully")
}

package subscriptions

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/handlers"
	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/routes"
)

// Handler provides HTTP endpoints for subscription operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "subscriptions"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for subscription endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/subscriptions",
		Description: "Channel subscriptions",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/c/{channelId}", Handler: h.Toggle},
			{Method: "GET", Pattern: "/c/{channelId}", Handler: h.Subscribers},
			{Method: "GET", Pattern: "/u/{subscriberId}", Handler: h.Subscribed},
		},
	}
}

// Toggle subscribes the caller to a channel, or unsubscribes if already subscribed.
// A new subscription responds 201.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	channelID, err := handlers.ParseID(r, "channelId", ErrInvalidChannel)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	state, err := h.sys.Toggle(r.Context(), caller.ID, channelID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	if state.Subscribed {
		handlers.Respond(w, http.StatusCreated, state, "Subscribed successfully")
		return
	}
	handlers.Respond(w, http.StatusOK, state, "Unsubscribed successfully")
}

// Subscribers lists the subscribers of a channel.
func (h *Handler) Subscribers(w http.ResponseWriter, r *http.Request) {
	channelID, err := handlers.ParseID(r, "channelId", ErrInvalidChannel)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.Subscribers(r.Context(), channelID, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, result, "Subscribers fetched successfully")
}

// Subscribed lists the channels a user subscribes to. Only the user may view it.
func (h *Handler) Subscribed(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	subscriberID, err := handlers.ParseID(r, "subscriberId", ErrInvalidUser)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.Subscribed(r.Context(), caller.ID, subscriberID, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, result, "Subscribed channels fetched successfully")
}

package likes

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/handlers"
	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/routes"
)

// Handler provides HTTP endpoints for like operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "likes"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for like endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/likes",
		Description: "Like toggles and liked videos",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/toggle/v/{id}", Handler: h.toggle(TargetVideo)},
			{Method: "POST", Pattern: "/toggle/c/{id}", Handler: h.toggle(TargetComment)},
			{Method: "POST", Pattern: "/toggle/t/{id}", Handler: h.toggle(TargetTweet)},
			{Method: "GET", Pattern: "/status/v/{id}", Handler: h.status(TargetVideo)},
			{Method: "GET", Pattern: "/status/c/{id}", Handler: h.status(TargetComment)},
			{Method: "GET", Pattern: "/status/t/{id}", Handler: h.status(TargetTweet)},
			{Method: "GET", Pattern: "/videos", Handler: h.LikedVideos},
		},
	}
}

func (h *Handler) toggle(kind Target) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := auth.Caller(w, r, h.logger)
		if !ok {
			return
		}

		id, err := handlers.ParseID(r, "id", ErrInvalidID)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}

		status, err := h.sys.Toggle(r.Context(), caller.ID, kind, id)
		if err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}

		verb := "unliked"
		if status.IsLiked {
			verb = "liked"
		}
		handlers.Respond(w, http.StatusOK, status, label(kind)+" "+verb+" successfully")
	}
}

func (h *Handler) status(kind Target) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, ok := auth.Caller(w, r, h.logger)
		if !ok {
			return
		}

		id, err := handlers.ParseID(r, "id", ErrInvalidID)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}

		status, err := h.sys.Status(r.Context(), caller.ID, kind, id)
		if err != nil {
			handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
			return
		}

		handlers.Respond(w, http.StatusOK, status, "Like status checked")
	}
}

// LikedVideos returns the caller's liked videos.
func (h *Handler) LikedVideos(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.LikedVideos(r.Context(), caller.ID, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, result, "Liked videos fetched successfully")
}

func label(kind Target) string {
	switch kind {
	case TargetComment:
		return "Comment"
	case TargetTweet:
		return "Tweet"
	}
	return "Video"
}

package comments

import (
	"log/slog"
	"net/http"

	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/handlers"
	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/routes"
)

// Handler provides HTTP endpoints for comment operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
}

// NewHandler creates a Handler with the given system, logger, and pagination config.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "comments"),
		pagination: pagination,
	}
}

// Routes returns the route group definition for comment endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/comments",
		Description: "Video comments",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{videoId}", Handler: h.List},
			{Method: "POST", Pattern: "/{videoId}", Handler: h.Add},
			{Method: "PATCH", Pattern: "/c/{commentId}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/c/{commentId}", Handler: h.Delete},
		},
	}
}

// List returns the comments on a video, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	videoID, err := handlers.ParseID(r, "videoId", ErrInvalidVideo)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.List(r.Context(), caller.ID, videoID, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, result, "Comments fetched successfully")
}

// Add posts a comment on a video as the caller.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	videoID, err := handlers.ParseID(r, "videoId", ErrInvalidVideo)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd ContentCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	c, err := h.sys.Add(r.Context(), caller.ID, videoID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusCreated, c, "Comment added successfully")
}

// Update edits the caller's comment.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	id, err := handlers.ParseID(r, "commentId", ErrInvalidID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd ContentCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	c, err := h.sys.Update(r.Context(), caller.ID, id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, c, "Comment updated successfully")
}

// Delete removes the caller's comment.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	id, err := handlers.ParseID(r, "commentId", ErrInvalidID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), caller.ID, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, struct{}{}, "Comment deleted successfully")
}

package videos

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/handlers"
	"github.com/JaimeStill/reel/pkg/media"
	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/routes"
)

// Handler provides HTTP endpoints for video operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	uploads    *media.Config
}

// NewHandler creates a Handler with the given system, logger, pagination config, and upload settings.
func NewHandler(sys System, logger *slog.Logger, pagination pagination.Config, uploads *media.Config) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "videos"),
		pagination: pagination,
		uploads:    uploads,
	}
}

// Routes returns the route group definition for video endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/videos",
		Description: "Video publishing and playback",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.List, Public: true},
			{Method: "POST", Pattern: "", Handler: h.Publish},
			{Method: "GET", Pattern: "/{videoId}", Handler: h.View},
			{Method: "PATCH", Pattern: "/{videoId}", Handler: h.Update},
			{Method: "DELETE", Pattern: "/{videoId}", Handler: h.Delete},
			{Method: "PATCH", Pattern: "/toggle/publish/{videoId}", Handler: h.TogglePublish},
		},
	}
}

// List returns published videos matching query and the optional userId filter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	page := pagination.PageRequestFromQuery(values, h.pagination)

	var filter Filter
	if raw := values.Get("userId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidUserID)
			return
		}
		filter.OwnerID = &id
	}

	result, err := h.sys.List(r.Context(), filter, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, result, "Videos fetched successfully")
}

// Publish uploads a new video from a multipart form with title, description,
// videoFile, thumbnail, and optional isPublished.
func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	if err := media.ParseForm(w, r, h.uploads.MaxUploadSizeBytes()); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	published, err := parsePublished(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	staged, err := h.stage(r, "videoFile", "thumbnail")
	defer h.remove(staged...)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	cmd := PublishCommand{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		IsPublished: published,
		Video:       staged[0],
		Thumbnail:   staged[1],
	}

	v, err := h.sys.Publish(r.Context(), caller.ID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusCreated, v, "Video published successfully")
}

// View returns a video and records the view for the caller.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	id, err := handlers.ParseID(r, "videoId", ErrInvalidID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	v, err := h.sys.View(r.Context(), caller.ID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, v, "Video fetched successfully")
}

// Update replaces the title, description, or thumbnail of the caller's video.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	id, err := handlers.ParseID(r, "videoId", ErrInvalidID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := media.ParseForm(w, r, h.uploads.MaxUploadSizeBytes()); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	staged, err := h.stage(r, "thumbnail")
	defer h.remove(staged...)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	cmd := UpdateCommand{
		Title:       formValue(r, "title"),
		Description: formValue(r, "description"),
		Thumbnail:   staged[0],
	}

	v, err := h.sys.Update(r.Context(), caller.ID, id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, v, "Video updated successfully")
}

// Delete removes the caller's video.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	id, err := handlers.ParseID(r, "videoId", ErrInvalidID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Delete(r.Context(), caller.ID, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, struct{}{}, "Video deleted successfully")
}

// TogglePublish flips the published state of the caller's video.
func (h *Handler) TogglePublish(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	id, err := handlers.ParseID(r, "videoId", ErrInvalidID)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	v, err := h.sys.TogglePublish(r.Context(), caller.ID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	message := "Video unpublished successfully"
	if v.IsPublished {
		message = "Video published successfully"
	}
	handlers.Respond(w, http.StatusOK, v, message)
}

// stage stages each named file field. The returned slice always has one
// entry per field, nil where the field carried no file.
func (h *Handler) stage(r *http.Request, fields ...string) ([]*media.Staged, error) {
	staged := make([]*media.Staged, len(fields))
	for i, field := range fields {
		s, err := media.StageField(r.MultipartForm, field, h.uploads.TempDir)
		if err != nil {
			return staged, err
		}
		staged[i] = s
	}
	return staged, nil
}

func (h *Handler) remove(staged ...*media.Staged) {
	for _, s := range staged {
		if err := s.Remove(); err != nil {
			h.logger.Warn("staged file cleanup failed", "path", s.Path, "error", err)
		}
	}
}

func formValue(r *http.Request, key string) *string {
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func parsePublished(r *http.Request) (*bool, error) {
	raw := formValue(r, "isPublished")
	if raw == nil || *raw == "" {
		return nil, nil
	}

	v, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, ErrInvalidPublishing
	}
	return &v, nil
}

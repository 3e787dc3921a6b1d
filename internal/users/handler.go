package users

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/handlers"
	"github.com/JaimeStill/reel/pkg/media"
	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/routes"
)

// Handler provides HTTP endpoints for account, session, and channel operations.
type Handler struct {
	sys        System
	logger     *slog.Logger
	pagination pagination.Config
	uploads    *media.Config
	cookies    auth.Cookies
}

// NewHandler creates a Handler with the given system, logger, pagination config,
// upload settings, and session cookie writer.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	uploads *media.Config,
	cookies auth.Cookies,
) *Handler {
	return &Handler{
		sys:        sys,
		logger:     logger.With("handler", "users"),
		pagination: pagination,
		uploads:    uploads,
		cookies:    cookies,
	}
}

// Routes returns the route group definition for user endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix:      "/users",
		Description: "Accounts, sessions, and channel profiles",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/register", Handler: h.Register, Public: true},
			{Method: "POST", Pattern: "/login", Handler: h.Login, Public: true},
			{Method: "POST", Pattern: "/refresh-token", Handler: h.Refresh, Public: true},
			{Method: "POST", Pattern: "/logout", Handler: h.Logout},
			{Method: "POST", Pattern: "/change-password", Handler: h.ChangePassword},
			{Method: "GET", Pattern: "/current-user", Handler: h.Current},
			{Method: "PATCH", Pattern: "/update-account", Handler: h.UpdateAccount},
			{Method: "PATCH", Pattern: "/avatar", Handler: h.UpdateAvatar},
			{Method: "PATCH", Pattern: "/cover-image", Handler: h.UpdateCover},
			{Method: "GET", Pattern: "/c/{username}", Handler: h.Channel},
			{Method: "GET", Pattern: "/history", Handler: h.WatchHistory},
		},
	}
}

// Register creates an account from a multipart form with fullName, email,
// username, password, an avatar file, and an optional coverImage file.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if err := media.ParseForm(w, r, h.uploads.MaxUploadSizeBytes()); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	avatar, err := media.StageField(r.MultipartForm, "avatar", h.uploads.TempDir)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer h.remove(avatar)

	cover, err := media.StageField(r.MultipartForm, "coverImage", h.uploads.TempDir)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer h.remove(cover)

	cmd := RegisterCommand{
		FullName: r.FormValue("fullName"),
		Email:    r.FormValue("email"),
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
		Avatar:   avatar,
		Cover:    cover,
	}

	profile, err := h.sys.Register(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusCreated, profile, "User registered successfully")
}

// Login authenticates with username or email and sets the session cookies.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var cmd LoginCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	session, err := h.sys.Login(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.cookies.Set(w, session.AccessToken, session.RefreshToken)
	handlers.Respond(w, http.StatusOK, session, "User logged in successfully")
}

// Logout clears the stored refresh token and the session cookies.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.sys.Logout(r.Context(), caller.ID); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.cookies.Clear(w)
	handlers.Respond(w, http.StatusOK, struct{}{}, "User logged out")
}

// Refresh rotates the session using the refreshToken cookie or body field.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var token string
	if c, err := r.Cookie(auth.RefreshCookie); err == nil {
		token = c.Value
	}

	if token == "" && r.ContentLength != 0 {
		var cmd RefreshCommand
		if err := handlers.DecodeJSON(r, &cmd); err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
		token = cmd.RefreshToken
	}

	session, err := h.sys.Refresh(r.Context(), token)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.cookies.Set(w, session.AccessToken, session.RefreshToken)
	handlers.Respond(w, http.StatusOK, session, "Access token refreshed")
}

// ChangePassword replaces the caller's password after verifying the old one.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	var cmd ChangePasswordCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.ChangePassword(r.Context(), caller.ID, cmd); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, struct{}{}, "Password changed successfully")
}

// Current returns the caller's profile.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	profile, err := h.sys.Current(r.Context(), caller.ID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, profile, "Current user fetched successfully")
}

// UpdateAccount replaces the caller's full name and email.
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	var cmd UpdateAccountCommand
	if err := handlers.DecodeJSON(r, &cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	profile, err := h.sys.UpdateAccount(r.Context(), caller.ID, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, profile, "Account details updated successfully")
}

// UpdateAvatar replaces the caller's avatar from the multipart avatar field.
func (h *Handler) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	h.replaceImage(w, r, "avatar", h.sys.UpdateAvatar, "Avatar updated successfully")
}

// UpdateCover replaces the caller's cover image from the multipart coverImage field.
func (h *Handler) UpdateCover(w http.ResponseWriter, r *http.Request) {
	h.replaceImage(w, r, "coverImage", h.sys.UpdateCover, "Cover image updated successfully")
}

// Channel returns the channel profile for the username path parameter.
func (h *Handler) Channel(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	channel, err := h.sys.Channel(r.Context(), caller.ID, r.PathValue("username"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, channel, "User channel fetched successfully")
}

// WatchHistory returns the caller's watched videos, most recent first.
func (h *Handler) WatchHistory(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)

	result, err := h.sys.WatchHistory(r.Context(), caller.ID, page)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, result, "Watch history fetched successfully")
}

func (h *Handler) replaceImage(
	w http.ResponseWriter,
	r *http.Request,
	field string,
	update func(ctx context.Context, userID uuid.UUID, staged *media.Staged) (*Profile, error),
	message string,
) {
	caller, ok := auth.Caller(w, r, h.logger)
	if !ok {
		return
	}

	if err := media.ParseForm(w, r, h.uploads.MaxUploadSizeBytes()); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer r.MultipartForm.RemoveAll()

	staged, err := media.StageField(r.MultipartForm, field, h.uploads.TempDir)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer h.remove(staged)

	profile, err := update(r.Context(), caller.ID, staged)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.Respond(w, http.StatusOK, profile, message)
}

func (h *Handler) remove(s *media.Staged) {
	if err := s.Remove(); err != nil {
		h.logger.Warn("staged file cleanup failed", "path", s.Path, "error", err)
	}
}

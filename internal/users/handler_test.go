package users_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/internal/users"
	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/media"
	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/routes"
)

var callerID = uuid.MustParse("6f1c1c8e-7d0b-4f5e-9a64-2d1a3e0c9b11")

type mockSystem struct {
	users.System

	register     func(cmd users.RegisterCommand) (*users.Profile, error)
	login        func(cmd users.LoginCommand) (*users.Session, error)
	logout       func(id uuid.UUID) error
	refresh      func(token string) (*users.Session, error)
	current      func(id uuid.UUID) (*users.Profile, error)
	channel      func(viewer uuid.UUID, username string) (*users.Channel, error)
	watchHistory func(id uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[users.WatchedVideo], error)
	updateAvatar func(id uuid.UUID, s *media.Staged) (*users.Profile, error)
}

func (m *mockSystem) Register(_ context.Context, cmd users.RegisterCommand) (*users.Profile, error) {
	return m.register(cmd)
}

func (m *mockSystem) Login(_ context.Context, cmd users.LoginCommand) (*users.Session, error) {
	return m.login(cmd)
}

func (m *mockSystem) Logout(_ context.Context, id uuid.UUID) error {
	return m.logout(id)
}

func (m *mockSystem) Refresh(_ context.Context, token string) (*users.Session, error) {
	return m.refresh(token)
}

func (m *mockSystem) Current(_ context.Context, id uuid.UUID) (*users.Profile, error) {
	return m.current(id)
}

func (m *mockSystem) Channel(_ context.Context, viewer uuid.UUID, username string) (*users.Channel, error) {
	return m.channel(viewer, username)
}

func (m *mockSystem) WatchHistory(
	_ context.Context,
	id uuid.UUID,
	page pagination.PageRequest,
) (*pagination.PageResult[users.WatchedVideo], error) {
	return m.watchHistory(id, page)
}

func (m *mockSystem) UpdateAvatar(_ context.Context, id uuid.UUID, s *media.Staged) (*users.Profile, error) {
	return m.updateAvatar(id, s)
}

func setupMux(t *testing.T, sys users.System) *http.ServeMux {
	t.Helper()

	uploads := &media.Config{TempDir: t.TempDir(), MaxUploadSize: "1MB"}
	cookies := auth.NewCookies(&auth.Config{AccessExpiry: "1h", RefreshExpiry: "24h"})
	h := users.NewHandler(sys, slog.New(slog.DiscardHandler), pagination.Config{DefaultLimit: 10, MaxLimit: 50}, uploads, cookies)

	asCaller := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id := auth.Identity{ID: callerID, Username: "alice"}
			next(w, r.WithContext(auth.WithIdentity(r.Context(), id)))
		}
	}

	mux := http.NewServeMux()
	routes.Register(mux, routes.Secure(asCaller, h.Routes())...)
	return mux
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestLoginSetsCookies(t *testing.T) {
	sys := &mockSystem{
		login: func(cmd users.LoginCommand) (*users.Session, error) {
			if cmd.Username != "alice" || cmd.Password != "secret123" {
				return nil, users.ErrInvalidCredentials
			}
			return &users.Session{
				User:         users.Profile{ID: callerID, Username: "alice"},
				AccessToken:  "access-1",
				RefreshToken: "refresh-1",
			}, nil
		},
	}
	mux := setupMux(t, sys)

	rec := httptest.NewRecorder()
	body := `{"username":"alice","password":"secret123"}`
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/users/login", strings.NewReader(body)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200 (%s)", rec.Code, rec.Body.String())
	}

	access := cookieByName(rec, auth.AccessCookie)
	if access == nil || access.Value != "access-1" || !access.HttpOnly {
		t.Errorf("access cookie: got %+v", access)
	}
	refresh := cookieByName(rec, auth.RefreshCookie)
	if refresh == nil || refresh.Value != "refresh-1" {
		t.Errorf("refresh cookie: got %+v", refresh)
	}

	env := decodeEnvelope(t, rec)
	data := env["data"].(map[string]any)
	if data["accessToken"] != "access-1" {
		t.Errorf("accessToken: got %v", data["accessToken"])
	}
	if env["success"] != true {
		t.Errorf("success: got %v", env["success"])
	}
}

func TestLoginErrors(t *testing.T) {
	sys := &mockSystem{
		login: func(users.LoginCommand) (*users.Session, error) {
			return nil, users.ErrInvalidCredentials
		},
	}
	mux := setupMux(t, sys)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed", `{"username":`, http.StatusBadRequest},
		{"unknown field", `{"user":"alice"}`, http.StatusBadRequest},
		{"wrong password", `{"username":"alice","password":"nope"}`, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest("POST", "/users/login", strings.NewReader(tt.body)))

			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d", rec.Code, tt.want)
			}
			env := decodeEnvelope(t, rec)
			if env["success"] != false {
				t.Errorf("success: got %v", env["success"])
			}
		})
	}
}

func TestRefreshTokenSources(t *testing.T) {
	var got string
	sys := &mockSystem{
		refresh: func(token string) (*users.Session, error) {
			got = token
			if token == "" {
				return nil, users.ErrInvalidRefresh
			}
			return &users.Session{AccessToken: "a2", RefreshToken: "r2"}, nil
		},
	}
	mux := setupMux(t, sys)

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/users/refresh-token", nil)
		req.AddCookie(&http.Cookie{Name: auth.RefreshCookie, Value: "from-cookie"})
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || got != "from-cookie" {
			t.Errorf("status %d token %q", rec.Code, got)
		}
		if c := cookieByName(rec, auth.RefreshCookie); c == nil || c.Value != "r2" {
			t.Errorf("rotated cookie: got %+v", c)
		}
	})

	t.Run("body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/users/refresh-token", strings.NewReader(`{"refreshToken":"from-body"}`)))

		if rec.Code != http.StatusOK || got != "from-body" {
			t.Errorf("status %d token %q", rec.Code, got)
		}
	})

	t.Run("missing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/users/refresh-token", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("status: got %d, want 401", rec.Code)
		}
	})
}

func TestLogoutClearsCookies(t *testing.T) {
	var loggedOut uuid.UUID
	sys := &mockSystem{
		logout: func(id uuid.UUID) error {
			loggedOut = id
			return nil
		},
	}
	mux := setupMux(t, sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/users/logout", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if loggedOut != callerID {
		t.Errorf("logout id: got %s", loggedOut)
	}
	for _, name := range []string{auth.AccessCookie, auth.RefreshCookie} {
		c := cookieByName(rec, name)
		if c == nil || c.MaxAge >= 0 {
			t.Errorf("%s not expired: %+v", name, c)
		}
	}
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	for field, content := range files {
		fw, err := mw.CreateFormFile(field, field+".png")
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		io.WriteString(fw, content)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestRegister(t *testing.T) {
	var staged string
	sys := &mockSystem{
		register: func(cmd users.RegisterCommand) (*users.Profile, error) {
			if cmd.Avatar == nil {
				return nil, users.ErrAvatarRequired
			}
			staged = cmd.Avatar.Path
			data, err := os.ReadFile(cmd.Avatar.Path)
			if err != nil || string(data) != "avatar-bytes" {
				return nil, errors.New("staged avatar unreadable")
			}
			if cmd.Cover != nil {
				return nil, errors.New("unexpected cover")
			}
			return &users.Profile{ID: callerID, Username: cmd.Username, Email: cmd.Email}, nil
		},
	}
	mux := setupMux(t, sys)

	t.Run("created", func(t *testing.T) {
		body, ct := multipartBody(t,
			map[string]string{"fullName": "Alice", "email": "a@example.com", "username": "alice", "password": "secret123"},
			map[string]string{"avatar": "avatar-bytes"},
		)
		req := httptest.NewRequest("POST", "/users/register", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status: got %d (%s)", rec.Code, rec.Body.String())
		}
		if _, err := os.Stat(staged); !os.IsNotExist(err) {
			t.Errorf("staged avatar not removed: %v", err)
		}
	})

	t.Run("missing avatar", func(t *testing.T) {
		body, ct := multipartBody(t, map[string]string{"username": "bob"}, nil)
		req := httptest.NewRequest("POST", "/users/register", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})

	t.Run("not multipart", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest("POST", "/users/register", strings.NewReader("{}")))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status: got %d, want 400", rec.Code)
		}
	})
}

func TestRegisterDuplicate(t *testing.T) {
	sys := &mockSystem{
		register: func(users.RegisterCommand) (*users.Profile, error) {
			return nil, users.ErrDuplicate
		},
	}
	mux := setupMux(t, sys)

	body, ct := multipartBody(t, map[string]string{"username": "alice"}, map[string]string{"avatar": "x"})
	req := httptest.NewRequest("POST", "/users/register", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Errorf("status: got %d, want 409", rec.Code)
	}
}

func TestUploadTooLarge(t *testing.T) {
	sys := &mockSystem{
		updateAvatar: func(uuid.UUID, *media.Staged) (*users.Profile, error) {
			t.Fatal("system should not be reached")
			return nil, nil
		},
	}
	mux := setupMux(t, sys)

	body, ct := multipartBody(t, nil, map[string]string{"avatar": strings.Repeat("x", 2<<20)})
	req := httptest.NewRequest("PATCH", "/users/avatar", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status: got %d, want 413", rec.Code)
	}
}

func TestCurrentRequiresCaller(t *testing.T) {
	uploads := &media.Config{TempDir: t.TempDir(), MaxUploadSize: "1MB"}
	h := users.NewHandler(&mockSystem{}, slog.New(slog.DiscardHandler), pagination.Config{}, uploads, auth.NewCookies(&auth.Config{}))

	rec := httptest.NewRecorder()
	h.Current(rec, httptest.NewRequest("GET", "/users/current-user", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestChannel(t *testing.T) {
	sys := &mockSystem{
		channel: func(viewer uuid.UUID, username string) (*users.Channel, error) {
			if username != "bob" {
				return nil, users.ErrNotFound
			}
			return &users.Channel{Username: "bob", SubscribersCount: 3, IsSubscribed: viewer == callerID}, nil
		},
	}
	mux := setupMux(t, sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/users/c/bob", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	if data["isSubscribed"] != true || data["subscribersCount"] != float64(3) {
		t.Errorf("channel: got %v", data)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/users/c/nobody", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestWatchHistoryPaging(t *testing.T) {
	var got pagination.PageRequest
	sys := &mockSystem{
		watchHistory: func(_ uuid.UUID, page pagination.PageRequest) (*pagination.PageResult[users.WatchedVideo], error) {
			got = page
			r := pagination.NewPageResult([]users.WatchedVideo{}, 0, page.Page, page.Limit)
			return &r, nil
		},
	}
	mux := setupMux(t, sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/users/history?page=2&limit=500", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if got.Page != 2 || got.Limit != 50 {
		t.Errorf("page request: got %+v", got)
	}
}

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{users.ErrNotFound, http.StatusNotFound},
		{users.ErrDuplicate, http.StatusConflict},
		{users.ErrInvalidCredentials, http.StatusUnauthorized},
		{users.ErrInvalidRefresh, http.StatusUnauthorized},
		{users.ErrInvalidPassword, http.StatusBadRequest},
		{media.ErrTooLarge, http.StatusRequestEntityTooLarge},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			if got := users.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}

package handlers_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/pkg/handlers"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type detailed struct{ fields []string }

func (d detailed) Error() string      { return "invalid input" }
func (d detailed) Details() []string { return d.fields }

func TestRespond(t *testing.T) {
	rec := httptest.NewRecorder()
	handlers.Respond(rec, http.StatusCreated, map[string]string{"title": "intro"}, "Video published successfully")

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type = %q", ct)
	}

	var env struct {
		StatusCode int               `json:"statusCode"`
		Data       map[string]string `json:"data"`
		Message    string            `json:"message"`
		Success    bool              `json:"success"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.StatusCode != 201 || !env.Success || env.Data["title"] != "intro" || env.Message != "Video published successfully" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		err         error
		wantMessage string
		wantErrors  int
	}{
		{"client error keeps message", http.StatusNotFound, errors.New("video not found"), "video not found", 0},
		{"server error is generic", http.StatusInternalServerError, errors.New("pq: connection refused"), handlers.InternalMessage, 0},
		{"details surface", http.StatusBadRequest, detailed{[]string{"title is required", "email must be a valid email"}}, "invalid input", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handlers.RespondError(rec, discard, tt.status, tt.err)

			var env handlers.ErrorEnvelope
			if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if rec.Code != tt.status || env.StatusCode != tt.status {
				t.Errorf("status = %d/%d, want %d", rec.Code, env.StatusCode, tt.status)
			}
			if env.Success {
				t.Error("success = true")
			}
			if env.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", env.Message, tt.wantMessage)
			}
			if len(env.Errors) != tt.wantErrors {
				t.Errorf("errors = %v, want %d entries", env.Errors, tt.wantErrors)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst struct {
		Content string `json:"content"`
	}

	req := httptest.NewRequest("POST", "/", strings.NewReader(`{"content":"hello"}`))
	if err := handlers.DecodeJSON(req, &dst); err != nil || dst.Content != "hello" {
		t.Fatalf("DecodeJSON = %v, %+v", err, dst)
	}

	for _, body := range []string{`{"content":`, `{"content":"x","extra":1}`, ``} {
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		if err := handlers.DecodeJSON(req, &dst); !errors.Is(err, handlers.ErrInvalidBody) {
			t.Errorf("DecodeJSON(%q) = %v, want ErrInvalidBody", body, err)
		}
	}
}

func TestParseID(t *testing.T) {
	errInvalid := errors.New("invalid videoId")
	id := uuid.New()

	mux := http.NewServeMux()
	var got uuid.UUID
	var gotErr error
	mux.HandleFunc("GET /videos/{videoId}", func(w http.ResponseWriter, r *http.Request) {
		got, gotErr = handlers.ParseID(r, "videoId", errInvalid)
	})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/videos/"+id.String(), nil))
	if gotErr != nil || got != id {
		t.Errorf("ParseID = %v, %v; want %v", got, gotErr, id)
	}

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/videos/not-a-uuid", nil))
	if !errors.Is(gotErr, errInvalid) {
		t.Errorf("ParseID error = %v, want %v", gotErr, errInvalid)
	}
}

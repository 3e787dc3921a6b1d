package tweets_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/internal/tweets"
	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/routes"
	"github.com/JaimeStill/reel/pkg/validation"
)

var (
	callerID = uuid.MustParse("4c3b2a19-8f7e-4d6c-b5a4-93827160f5e4")
	tweetID  = uuid.MustParse("7e6d5c4b-3a29-4f18-8e7d-6c5b4a392817")
)

type mockSystem struct {
	tweets.System
	lastPage pagination.PageRequest
}

func (m *mockSystem) Create(_ context.Context, owner uuid.UUID, cmd tweets.ContentCommand) (*tweets.Tweet, error) {
	if err := validation.Struct(cmd); err != nil {
		return nil, err
	}
	return &tweets.Tweet{ID: tweetID, OwnerID: owner, Content: cmd.Content}, nil
}

func (m *mockSystem) ListByUser(_ context.Context, user uuid.UUID, p pagination.PageRequest) (*pagination.PageResult[tweets.Tweet], error) {
	m.lastPage = p
	if user != callerID {
		return nil, tweets.ErrUserNotFound
	}
	r := pagination.NewPageResult([]tweets.Tweet{{ID: tweetID}}, 1, p.Page, p.Limit)
	return &r, nil
}

func (m *mockSystem) Update(_ context.Context, owner, id uuid.UUID, cmd tweets.ContentCommand) (*tweets.Tweet, error) {
	if id != tweetID {
		return nil, tweets.ErrNotFound
	}
	return &tweets.Tweet{ID: id, OwnerID: owner, Content: cmd.Content}, nil
}

func (m *mockSystem) Delete(_ context.Context, owner, id uuid.UUID) error {
	return tweets.ErrForbidden
}

func setupMux(sys tweets.System) *http.ServeMux {
	h := tweets.NewHandler(sys, slog.New(slog.DiscardHandler), pagination.Config{DefaultLimit: 10, MaxLimit: 100})
	asCaller := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			next(w, r.WithContext(auth.WithIdentity(r.Context(), auth.Identity{ID: callerID})))
		}
	}
	mux := http.NewServeMux()
	routes.Register(mux, routes.Secure(asCaller, h.Routes())...)
	return mux
}

func TestTweetRoutes(t *testing.T) {
	mux := setupMux(&mockSystem{})

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"create", "POST", "/tweets", `{"content":"hello"}`, http.StatusCreated},
		{"create too long", "POST", "/tweets", `{"content":"` + strings.Repeat("a", 281) + `"}`, http.StatusBadRequest},
		{"create empty body", "POST", "/tweets", ``, http.StatusBadRequest},
		{"list", "GET", "/tweets/user/" + callerID.String(), "", http.StatusOK},
		{"list unknown user", "GET", "/tweets/user/" + tweetID.String(), "", http.StatusNotFound},
		{"update", "PATCH", "/tweets/" + tweetID.String(), `{"content":"edited"}`, http.StatusOK},
		{"update missing", "PATCH", "/tweets/" + callerID.String(), `{"content":"edited"}`, http.StatusNotFound},
		{"delete forbidden", "DELETE", "/tweets/" + tweetID.String(), "", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body)))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestCreateValidationDetails(t *testing.T) {
	mux := setupMux(&mockSystem{})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("POST", "/tweets", strings.NewReader(`{"content":" "}`)))

	var env struct {
		Success bool     `json:"success"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success || len(env.Errors) == 0 {
		t.Errorf("envelope: got %+v", env)
	}
}

func TestListPaging(t *testing.T) {
	sys := &mockSystem{}
	mux := setupMux(sys)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest("GET", "/tweets/user/"+callerID.String()+"?page=0&limit=0", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	if sys.lastPage.Page != 1 || sys.lastPage.Limit != 10 {
		t.Errorf("normalized page: got %+v", sys.lastPage)
	}
}

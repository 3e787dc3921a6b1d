package subscriptions_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/internal/subscriptions"
	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/routes"
)

var (
	callerID  = uuid.MustParse("1a2b3c4d-5e6f-4a8b-9c0d-1e2f3a4b5c6d")
	channelID = uuid.MustParse("6d5c4b3a-2f1e-4d9c-8b7a-6f5e4d3c2b1a")
)

type mockSystem struct {
	subscriptions.System
	subscribed map[uuid.UUID]bool
}

func (m *mockSystem) Toggle(_ context.Context, subscriber, channel uuid.UUID) (subscriptions.State, error) {
	if subscriber == channel {
		return subscriptions.State{}, subscriptions.ErrSelf
	}
	m.subscribed[channel] = !m.subscribed[channel]
	return subscriptions.State{Subscribed: m.subscribed[channel]}, nil
}

func (m *mockSystem) Subscribers(_ context.Context, channel uuid.UUID, p pagination.PageRequest) (*pagination.PageResult[subscriptions.Subscriber], error) {
	if channel != channelID {
		return nil, subscriptions.ErrChannelNotFound
	}
	r := pagination.NewPageResult([]subscriptions.Subscriber{}, 0, p.Page, p.Limit)
	return &r, nil
}

func (m *mockSystem) Subscribed(_ context.Context, caller, subscriber uuid.UUID, p pagination.PageRequest) (*pagination.PageResult[subscriptions.Subscribed], error) {
	if caller != subscriber {
		return nil, subscriptions.ErrForbidden
	}
	r := pagination.NewPageResult([]subscriptions.Subscribed{}, 0, p.Page, p.Limit)
	return &r, nil
}

func TestSubscriptionRoutes(t *testing.T) {
	h := subscriptions.NewHandler(
		&mockSystem{subscribed: map[uuid.UUID]bool{}},
		slog.New(slog.DiscardHandler),
		pagination.Config{DefaultLimit: 10, MaxLimit: 100},
	)
	asCaller := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			next(w, r.WithContext(auth.WithIdentity(r.Context(), auth.Identity{ID: callerID})))
		}
	}
	mux := http.NewServeMux()
	routes.Register(mux, routes.Secure(asCaller, h.Routes())...)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"subscribe", "POST", "/subscriptions/c/" + channelID.String(), http.StatusCreated},
		{"unsubscribe", "POST", "/subscriptions/c/" + channelID.String(), http.StatusOK},
		{"self", "POST", "/subscriptions/c/" + callerID.String(), http.StatusBadRequest},
		{"malformed channel", "POST", "/subscriptions/c/abc", http.StatusBadRequest},
		{"subscribers", "GET", "/subscriptions/c/" + channelID.String(), http.StatusOK},
		{"subscribers unknown", "GET", "/subscriptions/c/" + callerID.String(), http.StatusNotFound},
		{"own subscriptions", "GET", "/subscriptions/u/" + callerID.String(), http.StatusOK},
		{"others subscriptions", "GET", "/subscriptions/u/" + channelID.String(), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status: got %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

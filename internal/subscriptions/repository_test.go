package subscriptions_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/reel/internal/schema/schematest"
	"github.com/JaimeStill/reel/internal/subscriptions"
	"github.com/JaimeStill/reel/pkg/pagination"
)

func TestToggleSubscription(t *testing.T) {
	db := schematest.Open(t)
	sys := subscriptions.New(db, nil, slog.New(slog.DiscardHandler), pagination.Config{DefaultLimit: 10, MaxLimit: 100})
	ctx := context.Background()

	channel := schematest.User(t, db, "channel")
	viewer := schematest.User(t, db, "viewer")

	rows := func() int {
		return schematest.Count(t, db,
			"SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = $1 AND channel_id = $2", viewer, channel)
	}

	tests := []struct {
		name     string
		wantSub  bool
		wantRows int
	}{
		{"subscribe", true, 1},
		{"unsubscribe", false, 0},
		{"subscribe again", true, 1},
	}

	for _, tt := range tests {
		state, err := sys.Toggle(ctx, viewer, channel)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if state.Subscribed != tt.wantSub {
			t.Errorf("%s: subscribed = %v, want %v", tt.name, state.Subscribed, tt.wantSub)
		}
		if n := rows(); n != tt.wantRows {
			t.Errorf("%s: rows = %d, want %d", tt.name, n, tt.wantRows)
		}
	}

	result, err := sys.Subscribers(ctx, channel, pagination.PageRequest{Page: 1, Limit: 10})
	if err != nil {
		t.Fatalf("subscribers: %v", err)
	}
	if result.TotalCount != 1 {
		t.Errorf("subscribers = %d, want 1", result.TotalCount)
	}
}

func TestToggleSubscriptionRejected(t *testing.T) {
	db := schematest.Open(t)
	sys := subscriptions.New(db, nil, slog.New(slog.DiscardHandler), pagination.Config{DefaultLimit: 10, MaxLimit: 100})
	viewer := schematest.User(t, db, "viewer")

	tests := []struct {
		name    string
		channel uuid.UUID
		wantErr error
	}{
		{"self", viewer, subscriptions.ErrSelf},
		{"unknown channel", uuid.New(), subscriptions.ErrChannelNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := sys.Toggle(context.Background(), viewer, tt.channel); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if n := schematest.Count(t, db, "SELECT COUNT(*) FROM subscriptions"); n != 0 {
		t.Errorf("rows = %d, want 0", n)
	}
}

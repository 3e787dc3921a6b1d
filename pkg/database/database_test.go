package database_test

import (
	"log/slog"
	"testing"

	"github.com/JaimeStill/reel/pkg/database"
)

func TestNewIsLazy(t *testing.T) {
	cfg := database.Config{User: "reel", MaxOpenConns: 7, MaxIdleConns: 2}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	sys, err := database.New(&cfg, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	conn := sys.Connection()
	if conn == nil {
		t.Fatal("Connection() returned nil")
	}
	defer conn.Close()

	if got := conn.Stats().MaxOpenConnections; got != 7 {
		t.Errorf("max open: got %d, want 7", got)
	}
	if sys.Ready() {
		t.Error("Ready() should be false before Start")
	}
}

func TestNewInvalidDSN(t *testing.T) {
	cfg := database.Config{URL: "postgres://%zz"}
	if _, err := database.New(&cfg, slog.New(slog.DiscardHandler)); err == nil {
		t.Error("expected error for malformed url")
	}
}

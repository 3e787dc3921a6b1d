// Package database owns the PostgreSQL pool and ties its readiness and
// teardown to the application lifecycle.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/JaimeStill/reel/pkg/lifecycle"
)

const retryInterval = 500 * time.Millisecond

// System exposes the pool to repositories and reports readiness to the
// lifecycle coordinator.
type System interface {
	Connection() *sql.DB
	// Start schedules the connect probe and the pool close on lc.
	Start(lc *lifecycle.Coordinator) error
	Ready() bool
}

type database struct {
	pool    *sql.DB
	log     *slog.Logger
	timeout time.Duration
	ready   atomic.Bool
}

// New sizes the pool from cfg. Connections are opened lazily, so New
// succeeds against an unreachable server.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	cc, err := cfg.ConnConfig()
	if err != nil {
		return nil, err
	}

	pool := stdlib.OpenDB(*cc)
	pool.SetMaxOpenConns(cfg.MaxOpenConns)
	pool.SetMaxIdleConns(cfg.MaxIdleConns)
	pool.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	return &database{
		pool:    pool,
		log:     logger.With("system", "database", "host", cc.Host, "name", cc.Database),
		timeout: cfg.ConnTimeoutDuration(),
	}, nil
}

func (d *database) Connection() *sql.DB { return d.pool }

func (d *database) Ready() bool { return d.ready.Load() }

func (d *database) Start(lc *lifecycle.Coordinator) error {
	lc.OnStartup(func() {
		ctx, cancel := context.WithTimeout(lc.Context(), d.timeout)
		defer cancel()

		if err := d.connect(ctx); err != nil {
			d.log.Error("database unavailable", "error", err)
			return
		}
		d.ready.Store(true)
		d.log.Info("database ready")
	})

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		d.ready.Store(false)
		if err := d.pool.Close(); err != nil {
			d.log.Error("close pool", "error", err)
			return
		}
		d.log.Info("database closed")
	})

	return nil
}

// connect pings until the server answers or ctx expires.
func (d *database) connect(ctx context.Context) error {
	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		err := d.pool.PingContext(ctx)
		if err == nil {
			return nil
		}
		d.log.Debug("ping failed", "attempt", attempt, "error", err)

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrNotReady, err)
		case <-ticker.C:
		}
	}
}

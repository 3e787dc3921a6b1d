// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/reel/internal/config"
	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/cache"
	"github.com/JaimeStill/reel/pkg/database"
	"github.com/JaimeStill/reel/pkg/lifecycle"
	"github.com/JaimeStill/reel/pkg/media"
	"github.com/JaimeStill/reel/pkg/metrics"
	"github.com/JaimeStill/reel/pkg/storage"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
	Cache     cache.System
	Metrics   *metrics.System
	Tokens    *auth.Tokens
	Verifiers []auth.Verifier
	Prober    media.Prober

	oidc *auth.OIDCVerifier
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := cfg.Log.NewLogger(os.Stderr)
	m := metrics.New()

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	m.RegisterDB(cfg.Database.Name, db.Connection())

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, fmt.Errorf("storage init failed: %w", err)
	}

	c, err := cache.New(&cfg.Cache, logger, m)
	if err != nil {
		return nil, fmt.Errorf("cache init failed: %w", err)
	}

	tokens := auth.NewTokens(&cfg.Auth)
	infra := &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
		Storage:   store,
		Cache:     c,
		Metrics:   m,
		Tokens:    tokens,
		Verifiers: []auth.Verifier{auth.AccessVerifier{Tokens: tokens}},
		Prober:    media.NewProber(&cfg.Media),
	}

	if cfg.Auth.OIDC.Issuer != "" {
		infra.oidc = auth.NewOIDCVerifier(cfg.Auth.OIDC, logger)
		infra.Verifiers = append(infra.Verifiers, infra.oidc)
	}

	return infra, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// Readiness waits on the database ping.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("database start failed: %w", err)
	}
	i.Lifecycle.Require(i.Database)

	if err := i.Storage.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("storage start failed: %w", err)
	}
	if err := i.Cache.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("cache start failed: %w", err)
	}
	if i.oidc != nil {
		if err := i.oidc.Start(i.Lifecycle); err != nil {
			return fmt.Errorf("oidc start failed: %w", err)
		}
	}
	return nil
}

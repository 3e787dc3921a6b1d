package api

import (
	"time"

	"github.com/JaimeStill/reel/internal/config"
	"github.com/JaimeStill/reel/internal/infrastructure"
	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/media"
	"github.com/JaimeStill/reel/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Uploads    *media.Config
	Cookies    auth.Cookies
	StatsTTL   time.Duration
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Pagination:     cfg.API.Pagination,
		Uploads:        &cfg.Media,
		Cookies:        auth.NewCookies(&cfg.Auth),
		StatsTTL:       cfg.Cache.StatsTTLDuration(),
	}
}

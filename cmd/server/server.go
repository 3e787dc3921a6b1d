package main

import (
	"context"
	"fmt"
	"time"

	"github.com/JaimeStill/reel/internal/config"
	"github.com/JaimeStill/reel/internal/infrastructure"
)

// Server couples the shared infrastructure with the HTTP listener.
type Server struct {
	infra *infrastructure.Infrastructure
	http  *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, fmt.Errorf("modules: %w", err)
	}

	infra.Logger.Debug("modules mounted",
		"storage", cfg.Storage.Provider,
		"cache", infra.Cache.Enabled(),
		"app", modules.App != nil,
	)

	return &Server{
		infra: infra,
		http:  newHTTPServer(&cfg.Server, buildRouter(infra, modules), infra.Logger),
	}, nil
}

// Run starts every subsystem, blocks until ctx is cancelled, then drains
// within timeout.
func (s *Server) Run(ctx context.Context, timeout time.Duration) error {
	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	lc := s.infra.Lifecycle
	go func() {
		lc.WaitForStartup()
		s.infra.Logger.Info("startup complete", "ready", lc.Ready())
	}()

	<-ctx.Done()
	s.infra.Logger.Info("shutting down", "timeout", timeout)
	return lc.Shutdown(timeout)
}

package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/reel/internal/config"
	"github.com/JaimeStill/reel/pkg/auth"
	"github.com/JaimeStill/reel/pkg/openapi"
	"github.com/JaimeStill/reel/pkg/routes"
)

func groups(domain *Domain, runtime *Runtime) []routes.Group {
	return []routes.Group{
		domain.Users.Handler(runtime.Uploads, runtime.Cookies).Routes(),
		domain.Videos.Handler(runtime.Uploads).Routes(),
		domain.Comments.Handler().Routes(),
		domain.Likes.Handler().Routes(),
		domain.Subscriptions.Handler().Routes(),
		domain.Tweets.Handler().Routes(),
		domain.Dashboard.Handler().Routes(),
	}
}

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	gate := auth.NewGate(domain.Users, runtime.Logger, runtime.Verifiers...)
	all := groups(domain, runtime)

	spec := openapi.NewSpec(&cfg.API.OpenAPI, cfg.Version)
	spec.AddServer(cfg.API.BasePath)
	spec.AddRoutes("", all...)

	serveSpec, err := spec.Handler()
	if err != nil {
		return fmt.Errorf("build openapi document: %w", err)
	}

	routes.Register(mux, routes.Secure(gate.Require, all...)...)
	mux.HandleFunc("GET /openapi.json", serveSpec)
	return nil
}

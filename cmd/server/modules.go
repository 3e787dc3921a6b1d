package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/JaimeStill/reel/internal/api"
	"github.com/JaimeStill/reel/internal/config"
	"github.com/JaimeStill/reel/internal/infrastructure"
	"github.com/JaimeStill/reel/pkg/middleware"
	"github.com/JaimeStill/reel/pkg/module"
	"github.com/JaimeStill/reel/web/app"
	"github.com/JaimeStill/reel/web/docs"
)

// Modules holds the mounted HTTP modules. App is nil when no bundle is configured.
type Modules struct {
	API  *module.Module
	Docs *module.Module
	App  *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	docsModule := docs.NewModule("/docs", cfg.API.BasePath+"/openapi.json")
	docsModule.Use(middleware.Logger(infra.Logger))

	modules := &Modules{
		API:  apiModule,
		Docs: docsModule,
	}

	if cfg.Web.DistDir != "" {
		appModule, err := app.NewModule("/app", os.DirFS(cfg.Web.DistDir))
		if err != nil {
			return nil, err
		}
		appModule.Use(middleware.Logger(infra.Logger))
		modules.App = appModule
	}

	return modules, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Docs)
	if m.App != nil {
		router.Mount(m.App)
	}
}

func buildRouter(infra *infrastructure.Infrastructure, modules *Modules) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			writeStatus(w, http.StatusServiceUnavailable, "not ready")
			return
		}
		writeStatus(w, http.StatusOK, "ready")
	})

	router.HandleNative("GET /metrics", infra.Metrics.Handler().ServeHTTP)

	if modules.App != nil {
		router.HandleNative("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, modules.App.Prefix()+"/", http.StatusFound)
		})
	}

	modules.Mount(router)
	return router
}

func writeStatus(w http.ResponseWriter, code int, status string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}

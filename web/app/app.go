// Package app serves the built front-end bundle. Unknown paths under the
// module resolve to index.html so client-side routes survive a reload.
package app

import (
	"fmt"
	"io/fs"

	"github.com/JaimeStill/reel/pkg/module"
	"github.com/JaimeStill/reel/pkg/web"
)

var publicFiles = []string{"favicon.ico", "favicon.svg", "robots.txt", "manifest.json"}

// NewModule serves the bundle in fsys at basePath. fsys must contain index.html;
// an assets directory and common root files are served when present.
func NewModule(basePath string, fsys fs.FS) (*module.Module, error) {
	index, err := web.Index(fsys, "index.html")
	if err != nil {
		return nil, fmt.Errorf("app bundle: %w", err)
	}

	router := web.NewRouter()

	if _, err := fs.Stat(fsys, "assets"); err == nil {
		assets, err := web.DistServer(fsys, "assets", "/assets")
		if err != nil {
			return nil, fmt.Errorf("app assets: %w", err)
		}
		router.HandleFunc("GET /assets/", assets)
	}

	for _, r := range web.PublicFileRoutes(fsys, publicFiles...) {
		router.HandleFunc(r.Method+" "+r.Pattern, r.Handler)
	}

	router.Fallback = index

	return module.New(basePath, router), nil
}

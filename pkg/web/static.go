// Package web serves a built single-page application from a filesystem, with
// client-side routes falling back to the application's index document.
package web

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/JaimeStill/reel/pkg/routes"
)

// ErrNoIndex indicates the filesystem has no index document.
var ErrNoIndex = errors.New("index document not found")

// DistServer returns a handler that serves files under subdir of fsys,
// stripping urlPrefix from the request path.
func DistServer(fsys fs.FS, subdir, urlPrefix string) (http.HandlerFunc, error) {
	sub, err := fs.Sub(fsys, subdir)
	if err != nil {
		return nil, err
	}
	server := http.StripPrefix(urlPrefix, http.FileServer(http.FS(sub)))
	return server.ServeHTTP, nil
}

// PublicFile returns a handler that serves a single file from fsys.
func PublicFile(fsys fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			http.NotFound(w, r)
			return
		}
		http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
	}
}

// PublicFileRoutes generates GET routes for the named root-level files that exist in fsys.
func PublicFileRoutes(fsys fs.FS, files ...string) []routes.Route {
	routeList := make([]routes.Route, 0, len(files))
	for _, file := range files {
		if _, err := fs.Stat(fsys, file); err != nil {
			continue
		}
		routeList = append(routeList, routes.Route{
			Method:  "GET",
			Pattern: "/" + file,
			Handler: PublicFile(fsys, file),
			Public:  true,
		})
	}
	return routeList
}

// Index returns a handler that serves the index document for every request.
// The document is read once; ErrNoIndex is returned when it is missing.
func Index(fsys fs.FS, name string) (http.HandlerFunc, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Join(ErrNoIndex, err)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		http.ServeContent(w, r, name, time.Time{}, bytes.NewReader(data))
	}, nil
}

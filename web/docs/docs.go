// Package docs serves an interactive reference for the API's OpenAPI document.
package docs

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/JaimeStill/reel/pkg/module"
)

//go:embed index.html
var staticFS embed.FS

var page = template.Must(template.ParseFS(staticFS, "index.html"))

// NewModule creates a module at basePath whose index renders the reference
// for the document served at specURL.
func NewModule(basePath, specURL string) *module.Module {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page.Execute(w, map[string]string{"SpecURL": specURL})
	})
	return module.New(basePath, mux)
}

// Package module mounts self-contained HTTP handlers under path prefixes.
package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/reel/pkg/middleware"
)

// Module serves requests beneath prefix. The prefix is stripped before the
// request reaches the inner handler, so inner routes are written relative to it.
type Module struct {
	prefix string
	inner  http.Handler
	stack  *middleware.Stack
}

// New creates a Module for prefix ("/api", "/api/v1"). It panics on a
// malformed prefix since prefixes are fixed at wiring time.
func New(prefix string, inner http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix: prefix,
		inner:  inner,
		stack:  middleware.New(),
	}
}

// Handler returns the inner handler wrapped in the module middleware.
func (m *Module) Handler() http.Handler {
	return m.stack.Apply(m.inner)
}

func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends mw to the module middleware. The first registered runs outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.stack.Use(mw)
}

// Serve dispatches req with the module prefix removed from its path.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	m.Handler().ServeHTTP(w, strip(req, m.prefix))
}

func (m *Module) owns(path string) bool {
	if !strings.HasPrefix(path, m.prefix) {
		return false
	}
	rest := path[len(m.prefix):]
	return rest == "" || rest[0] == '/'
}

func strip(req *http.Request, prefix string) *http.Request {
	path := strings.TrimPrefix(req.URL.Path, prefix)
	if path == "" {
		path = "/"
	}

	out := req.Clone(req.Context())
	out.URL.Path = path
	out.URL.RawPath = ""
	return out
}

func validatePrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix cannot be empty")
	case prefix[0] != '/':
		return fmt.Errorf("module prefix must start with /: %s", prefix)
	case prefix == "/" || strings.HasSuffix(prefix, "/"):
		return fmt.Errorf("module prefix must not end with /: %s", prefix)
	case strings.Contains(prefix, "//"):
		return fmt.Errorf("module prefix contains an empty segment: %s", prefix)
	}
	return nil
}

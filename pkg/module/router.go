package module

import (
	"net/http"
	"slices"
	"strings"
)

// Router sends each request to the mounted module with the longest matching
// prefix. Paths no module owns go to a native ServeMux.
type Router struct {
	modules []*Module
	native  *http.ServeMux
}

func NewRouter() *Router {
	return &Router{native: http.NewServeMux()}
}

// HandleNative registers pattern on the fallback mux.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount adds m. A module mounted at an existing prefix replaces it.
func (r *Router) Mount(m *Module) {
	r.modules = slices.DeleteFunc(r.modules, func(x *Module) bool {
		return x.prefix == m.prefix
	})
	r.modules = append(r.modules, m)
	slices.SortFunc(r.modules, func(a, b *Module) int {
		return len(b.prefix) - len(a.prefix)
	})
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}

	for _, m := range r.modules {
		if m.owns(path) {
			req.URL.Path = path
			m.Serve(w, req)
			return
		}
	}

	r.native.ServeHTTP(w, req)
}

package web

import "net/http"

// Router is a ServeMux whose unmatched requests go to Fallback instead of
// the mux's 404 handler. A nil Fallback keeps the default behavior.
type Router struct {
	*http.ServeMux
	Fallback http.Handler
}

func NewRouter() *Router {
	return &Router{ServeMux: http.NewServeMux()}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.Fallback != nil {
		if _, pattern := r.Handler(req); pattern == "" {
			r.Fallback.ServeHTTP(w, req)
			return
		}
	}
	r.ServeMux.ServeHTTP(w, req)
}

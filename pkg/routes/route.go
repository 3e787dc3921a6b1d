package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
// Routes are authenticated by Secure unless Public is set.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	Public  bool
}

// Package routes declares HTTP routes as data and registers them on a ServeMux.
package routes

import "net/http"

// Group organizes routes under a common prefix. Description documents the
// group in generated API references.
type Group struct {
	Prefix      string
	Description string
	Routes      []Route
	Children    []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
	}
}

// Secure returns copies of groups with every non-public handler wrapped by guard.
func Secure(guard func(http.HandlerFunc) http.HandlerFunc, groups ...Group) []Group {
	secured := make([]Group, len(groups))
	for i, g := range groups {
		secured[i] = secureGroup(guard, g)
	}
	return secured
}

func secureGroup(guard func(http.HandlerFunc) http.HandlerFunc, g Group) Group {
	out := Group{
		Prefix:      g.Prefix,
		Description: g.Description,
		Routes:      make([]Route, len(g.Routes)),
	}

	for i, r := range g.Routes {
		if !r.Public {
			r.Handler = guard(r.Handler)
		}
		out.Routes[i] = r
	}

	if len(g.Children) > 0 {
		out.Children = Secure(guard, g.Children...)
	}
	return out
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		pattern := route.Method + " " + fullPrefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	for _, child := range group.Children {
		registerGroup(mux, fullPrefix, child)
	}
}

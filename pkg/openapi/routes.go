package openapi

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/JaimeStill/reel/pkg/routes"
)

var pathParam = regexp.MustCompile(`\{([^}.]+)(?:\.\.\.)?\}`)

// AddRoutes documents every route in groups under basePath. Non-public routes
// require the bearer or cookie scheme. GET routes that end in a literal segment
// are treated as listings and accept the page parameters.
func (s *Spec) AddRoutes(basePath string, groups ...routes.Group) {
	for _, g := range groups {
		s.addGroup(basePath, g)
	}
}

func (s *Spec) addGroup(prefix string, g routes.Group) {
	full := prefix + g.Prefix
	tag := strings.Trim(g.Prefix, "/")
	if tag != "" {
		s.AddTag(tag, g.Description)
	}

	for _, r := range g.Routes {
		s.AddOperation(r.Method, full+r.Pattern, operation(tag, full+r.Pattern, r))
	}
	for _, child := range g.Children {
		s.addGroup(full, child)
	}
}

// AddOperation sets op on path for method.
func (s *Spec) AddOperation(method, path string, op *Operation) {
	item, ok := s.Paths[path]
	if !ok {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPatch:
		item.Patch = op
	case http.MethodDelete:
		item.Delete = op
	}
}

func operation(tag, path string, r routes.Route) *Operation {
	op := &Operation{
		Summary: r.Method + " " + path,
		Responses: map[int]*Response{
			http.StatusOK:                  ResponseJSON("Success", "Envelope"),
			http.StatusBadRequest:          ResponseRef("BadRequest"),
			http.StatusInternalServerError: ResponseRef("Internal"),
		},
	}
	if tag != "" {
		op.Tags = []string{tag}
	}

	params := pathParam.FindAllStringSubmatch(path, -1)
	for _, m := range params {
		p := PathParam(m[1], m[1])
		if m[1] != "id" && !strings.HasSuffix(m[1], "Id") {
			p.Schema = &Schema{Type: "string"}
		}
		op.Parameters = append(op.Parameters, p)
		op.Responses[http.StatusNotFound] = ResponseRef("NotFound")
	}

	if r.Method == http.MethodGet && !strings.HasSuffix(path, "}") {
		op.Parameters = append(op.Parameters, PageParams()...)
	}

	if !r.Public {
		op.Security = []map[string][]string{{"bearer": {}}, {"cookie": {}}}
		op.Responses[http.StatusUnauthorized] = ResponseRef("Unauthorized")
	}
	return op
}

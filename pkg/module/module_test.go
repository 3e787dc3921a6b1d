package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/reel/pkg/module"
)

func echo(name string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Module", name)
		w.Header().Set("X-Path", r.URL.Path)
	})
}

func TestNewPrefixValidation(t *testing.T) {
	for _, prefix := range []string{"/api", "/api/v1", "/docs"} {
		if m := module.New(prefix, echo("x")); m.Prefix() != prefix {
			t.Errorf("Prefix() = %q, want %q", m.Prefix(), prefix)
		}
	}

	for _, prefix := range []string{"", "api", "/", "/api/", "/api//v1"} {
		t.Run(prefix, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) did not panic", prefix)
				}
			}()
			module.New(prefix, echo("x"))
		})
	}
}

func TestRouterDispatch(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", echo("api")))
	router.Mount(module.New("/api/v2", echo("v2")))
	router.Mount(module.New("/app", echo("app")))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Module", "native")
	})

	tests := []struct {
		path       string
		wantModule string
		wantPath   string
	}{
		{"/api/videos", "api", "/videos"},
		{"/api/videos/", "api", "/videos"},
		{"/api", "api", "/"},
		{"/api/v2/videos", "v2", "/videos"},
		{"/apis/videos", "", ""},
		{"/app/watch/1", "app", "/watch/1"},
		{"/healthz", "native", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))

			if got := rec.Header().Get("X-Module"); got != tt.wantModule {
				t.Errorf("module = %q, want %q", got, tt.wantModule)
			}
			if got := rec.Header().Get("X-Path"); got != tt.wantPath {
				t.Errorf("path = %q, want %q", got, tt.wantPath)
			}
		})
	}
}

func TestModuleMiddlewareOrder(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	m := module.New("/api", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}))
	m.Use(tag("cors"))
	m.Use(tag("logger"))

	m.Serve(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/x", nil))

	want := []string{"cors", "logger", "handler"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order = %v, want %v", order, want)
			break
		}
	}
}

func TestServeDoesNotMutateOriginal(t *testing.T) {
	m := module.New("/api", echo("api"))
	req := httptest.NewRequest("GET", "/api/videos", nil)
	m.Serve(httptest.NewRecorder(), req)

	if req.URL.Path != "/api/videos" {
		t.Errorf("original path = %q", req.URL.Path)
	}
}

package openapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"

	"github.com/JaimeStill/reel/pkg/openapi"
	"github.com/JaimeStill/reel/pkg/routes"
)

func newSpec(t *testing.T) *openapi.Spec {
	t.Helper()
	cfg := &openapi.Config{}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	return openapi.NewSpec(cfg, "1.0.0")
}

func TestNewSpec(t *testing.T) {
	spec := newSpec(t)

	if spec.OpenAPI != "3.1.0" {
		t.Errorf("openapi version: got %s, want 3.1.0", spec.OpenAPI)
	}
	if spec.Info.Title != "Reel API" {
		t.Errorf("title: got %s, want Reel API", spec.Info.Title)
	}
	if spec.Info.Version != "1.0.0" {
		t.Errorf("version: got %s", spec.Info.Version)
	}
	if _, ok := spec.Components.SecuritySchemes["bearer"]; !ok {
		t.Error("bearer scheme missing")
	}
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("REEL_TEST_TITLE", "Staging API")

	cfg := &openapi.Config{}
	if err := cfg.Finalize(&openapi.ConfigEnv{Title: "REEL_TEST_TITLE"}); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if cfg.Title != "Staging API" {
		t.Errorf("title: got %s", cfg.Title)
	}

	cfg.Merge(&openapi.Config{Description: "overlay"})
	if cfg.Description != "overlay" || cfg.Title != "Staging API" {
		t.Errorf("merge: got %+v", cfg)
	}
}

func TestAddTagDeduplicates(t *testing.T) {
	spec := newSpec(t)
	spec.AddTag("videos", "Uploads")
	spec.AddTag("videos", "ignored")

	if len(spec.Tags) != 1 {
		t.Fatalf("tags: got %d, want 1", len(spec.Tags))
	}
	if spec.Tags[0].Description != "Uploads" {
		t.Errorf("description: got %s", spec.Tags[0].Description)
	}
}

func TestRefs(t *testing.T) {
	if got := openapi.SchemaRef("Video").Ref; got != "#/components/schemas/Video" {
		t.Errorf("schema ref: got %s", got)
	}
	if got := openapi.ResponseRef("NotFound").Ref; got != "#/components/responses/NotFound" {
		t.Errorf("response ref: got %s", got)
	}
}

func TestAddRoutes(t *testing.T) {
	spec := newSpec(t)
	spec.AddRoutes("/api/v1", routes.Group{
		Prefix:      "/videos",
		Description: "Video uploads",
		Routes: []routes.Route{
			{Method: "GET", Pattern: ""},
			{Method: "GET", Pattern: "/{videoId}", Public: true},
			{Method: "PATCH", Pattern: "/toggle/publish/{videoId}"},
		},
	})

	if len(spec.Tags) != 1 || spec.Tags[0].Name != "videos" {
		t.Fatalf("tags: got %+v", spec.Tags)
	}

	list := spec.Paths["/api/v1/videos"]
	if list == nil || list.Get == nil {
		t.Fatal("listing path missing")
	}
	if len(list.Get.Parameters) != len(openapi.PageParams()) {
		t.Errorf("listing params: got %d, want %d", len(list.Get.Parameters), len(openapi.PageParams()))
	}
	if len(list.Get.Security) == 0 {
		t.Error("listing should require auth")
	}
	if _, ok := list.Get.Responses[http.StatusUnauthorized]; !ok {
		t.Error("listing should document 401")
	}

	single := spec.Paths["/api/v1/videos/{videoId}"]
	if single == nil || single.Get == nil {
		t.Fatal("single path missing")
	}
	if len(single.Get.Security) != 0 {
		t.Error("public route should not require auth")
	}
	if len(single.Get.Parameters) != 1 || single.Get.Parameters[0].Name != "videoId" {
		t.Errorf("path params: got %+v", single.Get.Parameters)
	}
	if _, ok := single.Get.Responses[http.StatusNotFound]; !ok {
		t.Error("single should document 404")
	}

	toggle := spec.Paths["/api/v1/videos/toggle/publish/{videoId}"]
	if toggle == nil || toggle.Patch == nil {
		t.Fatal("toggle path missing")
	}
	if !slices.Equal(toggle.Patch.Tags, []string{"videos"}) {
		t.Errorf("tags: got %v", toggle.Patch.Tags)
	}
}

func TestSpecHandler(t *testing.T) {
	spec := newSpec(t)
	spec.AddServer("/api/v1")

	serve, err := spec.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	rec := httptest.NewRecorder()
	serve(rec, httptest.NewRequest("GET", "/openapi.json", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content type: got %s", ct)
	}

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded["openapi"] != "3.1.0" {
		t.Errorf("openapi: got %v", decoded["openapi"])
	}
}

package metrics_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/JaimeStill/reel/pkg/metrics"
	"github.com/JaimeStill/reel/pkg/middleware"
)

func counterValue(t *testing.T, m *metrics.System, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	next:
		for _, metric := range f.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					continue next
				}
			}
			if c := metric.GetCounter(); c != nil {
				return c.GetValue()
			}
			if h := metric.GetHistogram(); h != nil {
				return float64(h.GetSampleCount())
			}
		}
	}
	return 0
}

func TestRequestMetrics(t *testing.T) {
	m := metrics.New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /videos/{videoId}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	handler := middleware.Metrics(m)(mux)

	for range 2 {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/videos/abc", nil))
	}
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nowhere", nil))

	got := counterValue(t, m, "reel_http_request_duration_seconds", map[string]string{
		"route":  "GET /videos/{videoId}",
		"status": "404",
	})
	if got != 2 {
		t.Errorf("route samples = %v, want 2", got)
	}

	if got := counterValue(t, m, "reel_http_request_duration_seconds", map[string]string{"route": "unmatched"}); got != 1 {
		t.Errorf("unmatched samples = %v, want 1", got)
	}
}

func TestToggleAndCacheCounters(t *testing.T) {
	m := metrics.New()
	m.RecordToggle("video_like", true)
	m.RecordToggle("video_like", true)
	m.RecordToggle("subscription", false)
	m.RecordCache(true)
	m.RecordCache(false)
	m.RecordCache(false)

	if got := counterValue(t, m, "reel_toggles_total", map[string]string{"kind": "video_like", "state": "true"}); got != 2 {
		t.Errorf("video_like toggles = %v, want 2", got)
	}
	if got := counterValue(t, m, "reel_cache_lookups_total", map[string]string{"result": "miss"}); got != 2 {
		t.Errorf("cache misses = %v, want 2", got)
	}
}

func TestHandlerExposition(t *testing.T) {
	m := metrics.New()
	m.RecordCache(true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `reel_cache_lookups_total{result="hit"} 1`) {
		t.Errorf("exposition missing cache counter:\n%s", body)
	}
}

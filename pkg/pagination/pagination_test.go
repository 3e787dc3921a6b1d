package pagination_test

import (
	"encoding/json"
	"math"
	"net/url"
	"strings"
	"testing"

	"github.com/JaimeStill/reel/pkg/pagination"
	"github.com/JaimeStill/reel/pkg/query"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultLimit: 10, MaxLimit: 100}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg pagination.Config
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.DefaultLimit != 10 || cfg.MaxLimit != 100 {
			t.Errorf("got %+v, want 10/100", cfg)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_DEFAULT_LIMIT", "25")
		t.Setenv("TEST_MAX_LIMIT", "50")

		var cfg pagination.Config
		err := cfg.Finalize(&pagination.ConfigEnv{
			DefaultLimit: "TEST_DEFAULT_LIMIT",
			MaxLimit:     "TEST_MAX_LIMIT",
		})
		if err != nil {
			t.Fatalf("finalize: %v", err)
		}
		if cfg.DefaultLimit != 25 || cfg.MaxLimit != 50 {
			t.Errorf("got %+v, want 25/50", cfg)
		}
	})

	t.Run("default above max", func(t *testing.T) {
		cfg := pagination.Config{DefaultLimit: 200, MaxLimit: 100}
		err := cfg.Finalize(nil)
		if err == nil || !strings.Contains(err.Error(), "cannot exceed") {
			t.Errorf("err = %v, want limit error", err)
		}
	})
}

func TestConfigMerge(t *testing.T) {
	base := testConfig()
	base.Merge(&pagination.Config{MaxLimit: 40})

	if base.DefaultLimit != 10 || base.MaxLimit != 40 {
		t.Errorf("got %+v, want 10/40", base)
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantPage  int
		wantLimit int
		wantQuery string
		wantSort  []query.SortField
	}{
		{
			name:      "defaults",
			query:     "",
			wantPage:  1,
			wantLimit: 10,
		},
		{
			name:      "explicit values",
			query:     "page=3&limit=20&query=+cats+",
			wantPage:  3,
			wantLimit: 20,
			wantQuery: "cats",
		},
		{
			name:      "clamped",
			query:     "page=-2&limit=5000",
			wantPage:  1,
			wantLimit: 100,
		},
		{
			name:      "page at int max",
			query:     "page=9223372036854775807&limit=10",
			wantPage:  math.MaxInt / 10,
			wantLimit: 10,
		},
		{
			name:      "garbage numbers",
			query:     "page=abc&limit=xyz",
			wantPage:  1,
			wantLimit: 10,
		},
		{
			name:      "sort string",
			query:     "sort=title,-views",
			wantPage:  1,
			wantLimit: 10,
			wantSort:  []query.SortField{{Field: "title"}, {Field: "views", Descending: true}},
		},
		{
			name:      "sortBy defaults descending",
			query:     "sortBy=views",
			wantPage:  1,
			wantLimit: 10,
			wantSort:  []query.SortField{{Field: "views", Descending: true}},
		},
		{
			name:      "sortBy ascending wins over sort",
			query:     "sort=-title&sortBy=createdAt&sortType=ASC",
			wantPage:  1,
			wantLimit: 10,
			wantSort:  []query.SortField{{Field: "createdAt"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, _ := url.ParseQuery(tt.query)
			req := pagination.PageRequestFromQuery(values, testConfig())

			if req.Page != tt.wantPage || req.Limit != tt.wantLimit {
				t.Errorf("page/limit = %d/%d, want %d/%d", req.Page, req.Limit, tt.wantPage, tt.wantLimit)
			}
			if req.Offset() < 0 {
				t.Errorf("Offset() = %d, want non-negative", req.Offset())
			}

			got := ""
			if req.Query != nil {
				got = *req.Query
			}
			if got != tt.wantQuery {
				t.Errorf("query = %q, want %q", got, tt.wantQuery)
			}

			if len(req.Sort) != len(tt.wantSort) {
				t.Fatalf("sort = %v, want %v", req.Sort, tt.wantSort)
			}
			for i := range tt.wantSort {
				if req.Sort[i] != tt.wantSort[i] {
					t.Errorf("sort[%d] = %v, want %v", i, req.Sort[i], tt.wantSort[i])
				}
			}
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 4, Limit: 25}
	if got := req.Offset(); got != 75 {
		t.Errorf("Offset() = %d, want 75", got)
	}
}

func TestSortFieldsUnmarshal(t *testing.T) {
	var fromString pagination.PageRequest
	if err := json.Unmarshal([]byte(`{"sort":"-createdAt"}`), &fromString); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if len(fromString.Sort) != 1 || !fromString.Sort[0].Descending {
		t.Errorf("string sort = %v", fromString.Sort)
	}

	var fromArray pagination.PageRequest
	body := `{"sort":[{"field":"title","descending":false},{"field":"views","descending":true}]}`
	if err := json.Unmarshal([]byte(body), &fromArray); err != nil {
		t.Fatalf("unmarshal array: %v", err)
	}
	if len(fromArray.Sort) != 2 || fromArray.Sort[1].Field != "views" {
		t.Errorf("array sort = %v", fromArray.Sort)
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		limit     int
		wantPages int
	}{
		{"empty", 0, 10, 0},
		{"exact", 30, 10, 3},
		{"remainder", 31, 10, 4},
		{"single partial", 3, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := pagination.NewPageResult[int](nil, tt.total, 1, tt.limit)
			if res.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", res.TotalPages, tt.wantPages)
			}
			if res.Docs == nil {
				t.Error("Docs is nil, want empty slice")
			}
		})
	}
}

func TestPageResultJSON(t *testing.T) {
	res := pagination.NewPageResult([]string{"a"}, 1, 1, 10)
	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"docs"`, `"totalCount"`, `"totalPages"`, `"page"`, `"limit"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("json %s missing %s", data, key)
		}
	}
}

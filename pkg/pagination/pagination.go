package pagination

import (
	"encoding/json"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/JaimeStill/reel/pkg/query"
)

// SortFields wraps []query.SortField with flexible JSON unmarshaling.
// Accepts either a string ("title,-createdAt") or an array of SortField objects.
type SortFields []query.SortField

// UnmarshalJSON supports unmarshaling from a comma-separated string or array format.
func (s *SortFields) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = query.ParseSortFields(str)
		return nil
	}

	var fields []query.SortField
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = fields
	return nil
}

// PageRequest represents a client request for a page of data with optional search and sorting.
type PageRequest struct {
	Page  int        `json:"page"`
	Limit int        `json:"limit"`
	Query *string    `json:"query,omitempty"`
	Sort  SortFields `json:"sort,omitempty"`
}

// Normalize clamps the request to valid pagination values.
// A page below 1 becomes 1, a limit below 1 becomes the configured default,
// and a limit above the configured maximum becomes the maximum. The page is
// capped so Offset cannot overflow.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Page < 1 {
		r.Page = 1
	}
	if r.Limit < 1 {
		r.Limit = cfg.DefaultLimit
	}
	if r.Limit > cfg.MaxLimit {
		r.Limit = cfg.MaxLimit
	}
	if r.Limit > 0 && r.Page > math.MaxInt/r.Limit {
		r.Page = math.MaxInt / r.Limit
	}
}

// Offset calculates the number of records to skip based on page and limit.
func (r *PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// PageRequestFromQuery parses pagination parameters from URL query values.
// Supported parameters: page, limit, query, sort, sortBy, sortType.
// sortBy/sortType take precedence over sort when both are present;
// sortType is "asc" or "desc" and defaults to "desc".
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	page, _ := strconv.Atoi(values.Get("page"))
	limit, _ := strconv.Atoi(values.Get("limit"))

	var search *string
	if s := strings.TrimSpace(values.Get("query")); s != "" {
		search = &s
	}

	sort := query.ParseSortFields(values.Get("sort"))
	if by := strings.TrimSpace(values.Get("sortBy")); by != "" {
		sort = []query.SortField{{
			Field:      by,
			Descending: !strings.EqualFold(values.Get("sortType"), "asc"),
		}}
	}

	req := PageRequest{
		Page:  page,
		Limit: limit,
		Query: search,
		Sort:  sort,
	}

	req.Normalize(cfg)
	return req
}

// PageResult holds a page of data along with pagination metadata.
type PageResult[T any] struct {
	Docs       []T `json:"docs"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// NewPageResult creates a PageResult with TotalPages = ceil(totalCount / limit).
// An empty result set has zero pages.
func NewPageResult[T any](docs []T, totalCount, page, limit int) PageResult[T] {
	totalPages := 0
	if limit > 0 {
		totalPages = totalCount / limit
		if totalCount%limit != 0 {
			totalPages++
		}
	}

	if docs == nil {
		docs = []T{}
	}

	return PageResult[T]{
		Docs:       docs,
		Page:       page,
		Limit:      limit,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}
}

// Package pagination parses page/limit/sort query parameters and builds
// the pagination block returned with every listing.
package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params holds the requested page window.
type Params struct {
	Page  int // 1-based page number
	Limit int // Items per page
}

// ParseQueryParams reads page and limit from the query string, falling back to config defaults.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{
		Page:  config.DefaultPage,
		Limit: config.DefaultLimit,
	}

	q := r.URL.Query()
	if pageStr := q.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return params, fmt.Errorf("invalid query parameter: page must be a positive integer")
		}
		params.Page = page
	}

	// per_page is accepted as an alias of limit
	limitStr := q.Get("limit")
	if limitStr == "" {
		limitStr = q.Get("per_page")
	}
	if limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	return params, nil
}

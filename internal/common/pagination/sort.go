package pagination

import (
	"fmt"
	"net/http"
	"slices"
	"strings"
)

// Sort is a whitelisted ordering.
type Sort struct {
	Field string
	Desc  bool
}

// DefaultSort orders by newest first.
var DefaultSort = Sort{Field: "created_at", Desc: true}

// ParseSort reads sort_by and sort from the query string.
// sort_by must be one of allowed; sort is -1 (descending) or 1 (ascending).
// When sort_by is absent the default ordering applies.
func ParseSort(r *http.Request, allowed []string) (Sort, error) {
	q := r.URL.Query()
	field := strings.TrimSpace(q.Get("sort_by"))
	dir := strings.TrimSpace(q.Get("sort"))

	if field == "" {
		return DefaultSort, nil
	}
	if !slices.Contains(allowed, field) {
		return Sort{}, fmt.Errorf("invalid query parameter: sort_by must be one of %s", strings.Join(allowed, ", "))
	}

	s := Sort{Field: field, Desc: true}
	switch dir {
	case "", "-1", "desc":
	case "1", "asc":
		s.Desc = false
	default:
		return Sort{}, fmt.Errorf("invalid query parameter: sort must be 1 or -1")
	}
	return s, nil
}

package pathutil

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when the ID in the URL path is invalid.
var ErrInvalidID = errors.New("invalid id")

// ExtractID extracts and parses an integer ID from a URL path.
// It removes the specified prefix and attempts to parse the remaining string as an int64.
//
// Example:
//
//	id, err := ExtractID("/v1/articles/123", "/v1/articles/")
//	// Returns: 123, nil
func ExtractID(path, prefix string) (int64, error) {
	return parseID(strings.TrimPrefix(path, prefix))
}

// PathID parses the named wildcard of a ServeMux pattern such as
// "GET /v1/articles/{id}".
func PathID(r *http.Request, name string) (int64, error) {
	return parseID(r.PathValue(name))
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

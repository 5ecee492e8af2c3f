package pathutil

import (
	"regexp"
	"strings"
)

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Pre-compiled at initialization.
var pathPatterns = []*PathPattern{
	// Articles
	{Pattern: regexp.MustCompile(`^/v1/articles/\d+$`), Template: "/v1/articles/:id"},
	{Pattern: regexp.MustCompile(`^/v1/articles/\d+/(request-approval|approve|reject|publish|unpublish|toggle-reaction)$`), Template: "/v1/articles/:id/$1"},

	// Comments
	{Pattern: regexp.MustCompile(`^/v1/comments/\d+$`), Template: "/v1/comments/:id"},
	{Pattern: regexp.MustCompile(`^/v1/comments/\d+/(reply|toggle-reaction)$`), Template: "/v1/comments/:id/$1"},

	// Dashboard
	{Pattern: regexp.MustCompile(`^/v1/dashboard/\d+$`), Template: "/v1/dashboard/:id"},
	{Pattern: regexp.MustCompile(`^/v1/dashboard/\d+/comments$`), Template: "/v1/dashboard/:id/comments"},
}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
// It converts paths with IDs (e.g., /v1/articles/123) to template format (e.g., /v1/articles/:id).
// Static paths remain unchanged.
//
// Examples:
//
//	NormalizePath("/v1/articles/123")            // "/v1/articles/:id"
//	NormalizePath("/v1/articles/123/approve")    // "/v1/articles/:id/approve"
//	NormalizePath("/v1/dashboard/7/comments")    // "/v1/dashboard/:id/comments"
//	NormalizePath("/health")                     // "/health" (unchanged)
//	NormalizePath("/unknown/path/123")           // "/unknown/path/123" (no match, return original)
//
// Query parameters and trailing slashes are stripped first.
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// ルート以外は末尾のスラッシュを除去
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Pattern.ReplaceAllString(path, p.Template)
		}
	}

	return path
}

// GetExpectedCardinality returns the expected number of unique path labels
// after normalization.
//
//   - Static endpoints: health, ready, live, metrics, auth, profile, listings
//   - Template endpoints: one per ID route and action
func GetExpectedCardinality() int {
	// articles/:id + 6 actions, comments/:id + 2 actions, dashboard/:id + comments
	templateCount := 1 + 6 + 1 + 2 + 2
	staticCount := 12
	return templateCount + staticCount
}

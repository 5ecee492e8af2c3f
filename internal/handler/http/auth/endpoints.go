package auth

import "strings"

// DefaultPublicEndpoints are reachable without a bearer token. A token sent to
// one of them is still verified and, when valid, personalises the response.
//
// - /health, /ready, /live: orchestration probes
// - /metrics: Prometheus scraping
// - /swagger/: API documentation
// - /v1/auth/signup, /v1/auth/login: a token cannot be required to obtain one
// - /v1/dashboard: the public reading surface
var DefaultPublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/swagger/",
	"/v1/auth/signup",
	"/v1/auth/login",
	"/v1/dashboard",
	"/v1/dashboard/",
}

// IsPublicEndpoint checks if path is one of endpoints.
//
// Matching logic:
// - Endpoints ending with '/' use prefix matching (e.g., /swagger/* matches /swagger/index.html)
// - Endpoints without '/' require exact match or query params only (e.g., /health matches /health?x=1 but not /health/detail)
//
// Example:
//
//	IsPublicEndpoint("/health", DefaultPublicEndpoints)             // true
//	IsPublicEndpoint("/health/detail", DefaultPublicEndpoints)      // false
//	IsPublicEndpoint("/v1/dashboard/12", DefaultPublicEndpoints)    // true
//	IsPublicEndpoint("/v1/articles", DefaultPublicEndpoints)        // false
func IsPublicEndpoint(path string, endpoints []string) bool {
	for _, endpoint := range endpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}

		// /health が /healthcheck や /health/detail に一致しないよう完全一致のみ許可
		if path == endpoint {
			return true
		}
		if path == endpoint+"/" {
			return true
		}
		if strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}

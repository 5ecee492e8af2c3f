package auth

import "testing"

func TestIsPublicEndpoint(t *testing.T) {
	tests := []struct {
		path     string
		expected bool
	}{
		{"/health", true},
		{"/health/", true},
		{"/health?format=json", true},
		{"/health/detail", false},
		{"/healthcheck", false},
		{"/ready", true},
		{"/live", true},
		{"/metrics", true},
		{"/swagger/", true},
		{"/swagger/index.html", true},
		{"/swagger", false},
		{"/v1/auth/signup", true},
		{"/v1/auth/login", true},
		{"/v1/auth/logout", false},
		{"/v1/dashboard", true},
		{"/v1/dashboard/12", true},
		{"/v1/dashboard/12/comments", true},
		{"/v1/articles", false},
		{"/v1/articles/1/approve", false},
		{"/v1/profile", false},
		{"/", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := IsPublicEndpoint(tt.path, DefaultPublicEndpoints); got != tt.expected {
				t.Errorf("IsPublicEndpoint(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestIsPublicEndpoint_EmptyList(t *testing.T) {
	if IsPublicEndpoint("/health", nil) {
		t.Error("no endpoint is public when the list is empty")
	}
}

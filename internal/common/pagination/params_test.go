package pagination_test

import (
	"net/http/httptest"
	"testing"

	"news-portal/internal/common/pagination"
)

func TestParseQueryParams(t *testing.T) {
	t.Parallel()

	config := pagination.Config{DefaultPage: 1, DefaultLimit: 20, MaxLimit: 100}

	tests := []struct {
		name      string
		query     string
		want      pagination.Params
		wantError bool
	}{
		{name: "valid parameters", query: "page=2&limit=30", want: pagination.Params{Page: 2, Limit: 30}},
		{name: "defaults", query: "", want: pagination.Params{Page: 1, Limit: 20}},
		{name: "per_page alias", query: "per_page=5", want: pagination.Params{Page: 1, Limit: 5}},
		{name: "limit wins over per_page", query: "limit=7&per_page=5", want: pagination.Params{Page: 1, Limit: 7}},
		{name: "limit at max", query: "limit=100", want: pagination.Params{Page: 1, Limit: 100}},
		{name: "page zero", query: "page=0", wantError: true},
		{name: "negative page", query: "page=-1", wantError: true},
		{name: "non-numeric page", query: "page=abc", wantError: true},
		{name: "limit over max", query: "limit=101", wantError: true},
		{name: "limit zero", query: "limit=0", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest("GET", "/v1/articles?"+tt.query, nil)

			got, err := pagination.ParseQueryParams(req, config)
			if tt.wantError {
				if err == nil {
					t.Fatalf("ParseQueryParams() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQueryParams() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseQueryParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseSort(t *testing.T) {
	t.Parallel()

	allowed := []string{"created_at", "title"}

	tests := []struct {
		name      string
		query     string
		want      pagination.Sort
		wantError bool
	}{
		{name: "default", query: "", want: pagination.DefaultSort},
		{name: "ascending", query: "sort_by=title&sort=1", want: pagination.Sort{Field: "title"}},
		{name: "descending", query: "sort_by=title&sort=-1", want: pagination.Sort{Field: "title", Desc: true}},
		{name: "direction omitted", query: "sort_by=created_at", want: pagination.Sort{Field: "created_at", Desc: true}},
		{name: "column not allowed", query: "sort_by=password_hash", wantError: true},
		{name: "bad direction", query: "sort_by=title&sort=2", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest("GET", "/v1/articles?"+tt.query, nil)

			got, err := pagination.ParseSort(req, allowed)
			if tt.wantError {
				if err == nil {
					t.Fatal("ParseSort() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSort() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseSort() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

package pagination_test

import (
	"testing"

	"news-portal/internal/common/pagination"
)

func TestCalculateOffset(t *testing.T) {
	t.Parallel()

	tests := []struct {
		page, limit, want int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{5, 10, 40},
		{0, 10, 0},
	}
	for _, tt := range tests {
		if got := pagination.CalculateOffset(tt.page, tt.limit); got != tt.want {
			t.Errorf("CalculateOffset(%d, %d) = %d, want %d", tt.page, tt.limit, got, tt.want)
		}
	}
}

func TestCalculateTotalPages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 20, 1},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 10, 10},
		{5, 0, 1},
	}
	for _, tt := range tests {
		if got := pagination.CalculateTotalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("CalculateTotalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestNewResponse(t *testing.T) {
	t.Parallel()

	meta := pagination.NewMetadata(pagination.Params{Page: 2, Limit: 10}, 35)
	if meta.TotalPages != 4 {
		t.Fatalf("TotalPages = %d, want 4", meta.TotalPages)
	}

	resp := pagination.NewResponse[string](nil, meta, pagination.Sort{Field: "title"})
	if resp.Items == nil || len(resp.Items) != 0 {
		t.Errorf("Items = %v, want empty slice", resp.Items)
	}
	if resp.Sort.SortBy != "title" || resp.Sort.Sort != 1 {
		t.Errorf("Sort = %+v, want title/1", resp.Sort)
	}
}

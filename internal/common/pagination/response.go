package pagination

// Response is the data block of a listing response.
type Response[T any] struct {
	Items      []T      `json:"items"`
	Pagination Metadata `json:"pagination"`
	Sort       SortEcho `json:"sort"`
}

// SortEcho reports the ordering that was applied, in query-parameter form.
type SortEcho struct {
	SortBy string `json:"sort_by"`
	Sort   int    `json:"sort"`
}

// NewResponse wraps items with their metadata and sort.
func NewResponse[T any](items []T, metadata Metadata, sort Sort) Response[T] {
	if items == nil {
		items = []T{}
	}
	dir := 1
	if sort.Desc {
		dir = -1
	}
	return Response[T]{
		Items:      items,
		Pagination: metadata,
		Sort:       SortEcho{SortBy: sort.Field, Sort: dir},
	}
}

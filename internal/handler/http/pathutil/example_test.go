package pathutil_test

import (
	"fmt"

	"news-portal/internal/handler/http/pathutil"
)

// ExampleNormalizePath demonstrates how path normalization works
// to prevent metrics label cardinality explosion.
func ExampleNormalizePath() {
	fmt.Println(pathutil.NormalizePath("/v1/articles/123"))
	fmt.Println(pathutil.NormalizePath("/v1/articles/456/publish"))
	fmt.Println(pathutil.NormalizePath("/v1/dashboard/7/comments"))
	fmt.Println(pathutil.NormalizePath("/health"))

	// Output:
	// /v1/articles/:id
	// /v1/articles/:id/publish
	// /v1/dashboard/:id/comments
	// /health
}

package text

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// StripTags removes every HTML tag. The result is HTML-escaped, so it is only
// fit for checks and display, never for storing back.
func StripTags(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// HasVisibleText reports whether s still has text once all markup is removed.
func HasVisibleText(s string) bool {
	return StripTags(s) != ""
}

package text

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// RenderMarkdown converts stored content to HTML and sanitises the result.
// Content is kept as the author wrote it; this is the only place HTML is
// cleaned. Raw HTML in the source is dropped by goldmark's default renderer.
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return ugcPolicy.Sanitize(buf.String()), nil
}

// Package markdown renders course descriptions to sanitized HTML.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// GoldmarkRenderer converts markdown to HTML and strips anything unsafe.
// Descriptions are edited by admins, but the output still goes through the
// sanitizer since the HTML ends up in student browsers.
type GoldmarkRenderer struct {
	md       goldmark.Markdown
	sanitize *bluemonday.Policy
}

func NewGoldmarkRenderer() *GoldmarkRenderer {
	return &GoldmarkRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		sanitize: bluemonday.UGCPolicy(),
	}
}

func (r *GoldmarkRenderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return r.sanitize.Sanitize(buf.String()), nil
}

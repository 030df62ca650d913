package textresource

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Renderer converts canned replies to HTML for platforms that only
// display HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GitHub-flavored markdown and code
// highlighting.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle("github"),
				),
			),
			goldmark.WithRendererOptions(
				gmhtml.WithUnsafe(),
			),
		),
	}
}

// HTML renders resp as an HTML fragment.
func (r *Renderer) HTML(resp Response) (string, error) {
	switch resp.Format {
	case HTML:
		return resp.Text, nil
	case Markdown:
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(resp.Text), &buf); err != nil {
			return "", fmt.Errorf("rendering markdown: %w", err)
		}
		return strings.TrimSpace(buf.String()), nil
	default:
		return html.EscapeString(resp.Text), nil
	}
}

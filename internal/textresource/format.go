package textresource

import "fmt"

// Format is the markup a canned reply is written in.
type Format string

const (
	Markdown Format = "markdown"
	HTML     Format = "html"
	Text     Format = "txt"
)

// DefaultFormats is the lookup order used when none is configured.
var DefaultFormats = []Format{Markdown, HTML, Text}

var extensions = map[Format][]string{
	Markdown: {"md", "markdown"},
	HTML:     {"html", "htm"},
	Text:     {"txt"},
}

// Extensions returns the file extensions of f, without the dot.
func (f Format) Extensions() []string {
	return extensions[f]
}

// ParseFormat accepts a format name or one of its extensions.
func ParseFormat(s string) (Format, error) {
	for f, exts := range extensions {
		if s == string(f) {
			return f, nil
		}
		for _, ext := range exts {
			if s == ext {
				return f, nil
			}
		}
	}
	return "", fmt.Errorf("unknown static command format %q", s)
}

// ParseFormats parses every name in names.
func ParseFormats(names []string) ([]Format, error) {
	formats := make([]Format, 0, len(names))
	for _, n := range names {
		f, err := ParseFormat(n)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}
	return formats, nil
}

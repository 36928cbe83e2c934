package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics with the glamour library.
// Non-markdown content passes through untouched.
type GlamourRenderer struct {
	// Style is a glamour style name or path; empty means auto-detect
	Style string

	// Width wraps output at the given column; 0 means auto-detect
	Width int
}

// NewGlamourRenderer returns a renderer with terminal auto-detection
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{}
}

func (r *GlamourRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	var options []glamour.TermRendererOption
	if r.Style != "" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// Package styles defines the visual styling for gridbox's terminal
// output. All styles use semantic names and adaptive colors that
// adjust to light and dark terminal themes.
package styles

import "github.com/charmbracelet/lipgloss"

// styleRegistry maps semantic names to lipgloss styles
var styleRegistry = map[string]lipgloss.Style{
	"Header": lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#1a1a8c", Dark: "#8c8cff"}),

	"Error": lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#8c1a1a", Dark: "#ff6b6b"}),

	"Success": lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#1a6b1a", Dark: "#6bff6b"}),

	"Dim": lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#777777", Dark: "#999999"}),

	"Archive": lipgloss.NewStyle().
		Bold(true),
}

// GetStyle returns the style registered under name, or an empty style
// so callers can render unconditionally
func GetStyle(name string) lipgloss.Style {
	if style, ok := styleRegistry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spektr-org/pulse/engine"
)

var (
	// MutedColor is used for footers and secondary text.
	MutedColor = lipgloss.Color("#C9CBCF")
	// AlertColor is used for error output.
	AlertColor = lipgloss.Color("#FF6384")
	// AccentColor frames summary cards.
	AccentColor = lipgloss.Color("#36A2EB")
)

var (
	mutedStyle = lipgloss.NewStyle().Foreground(MutedColor)

	alertStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AlertColor).
			Padding(0, 1)

	alertTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(AlertColor)

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(AccentColor).
			Padding(0, 2).
			MarginRight(1)

	cardLabelStyle = lipgloss.NewStyle().Foreground(MutedColor)
	cardValueStyle = lipgloss.NewStyle().Bold(true)
)

// titleStyle maps resolved typography onto terminal attributes.
// Terminals have one font size; large titles are underlined instead.
func titleStyle(t engine.Typography) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(t.Bold).
		Italic(t.Italic).
		Underline(t.FontSize >= engine.FontSizeLarge).
		MarginBottom(1)
}

// swatch returns a style colored with a spec color. Colors the terminal
// cannot express (rgba, unknown names) render uncolored.
func swatch(color string) lipgloss.Style {
	color = strings.TrimSpace(color)
	if hex, ok := engine.NamedColor(color); ok {
		color = hex
	}
	if !strings.HasPrefix(color, "#") {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

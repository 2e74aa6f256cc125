package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Night palette.
var (
	ColorMoon   = lipgloss.Color("#e5e9f0")
	ColorIndigo = lipgloss.Color("#8fa1d8")
	ColorViolet = lipgloss.Color("#b48ead")
	ColorTeal   = lipgloss.Color("#88c0d0")
	ColorAmber  = lipgloss.Color("#ebcb8b")
	ColorRose   = lipgloss.Color("#bf616a")
	ColorDim    = lipgloss.Color("#6c7590")
)

var (
	StyleFg     = lipgloss.NewStyle().Foreground(ColorMoon)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorMoon).Bold(true)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorIndigo).Bold(true)
	StyleViolet = lipgloss.NewStyle().Foreground(ColorViolet)
	StyleTeal   = lipgloss.NewStyle().Foreground(ColorTeal)
	StyleAmber  = lipgloss.NewStyle().Foreground(ColorAmber)
	StyleRose   = lipgloss.NewStyle().Foreground(ColorRose)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleItalic = lipgloss.NewStyle().Foreground(ColorMoon).Italic(true)
)

// moodStyles tints the moods offered to the model. Anything else is dimmed.
var moodStyles = map[string]lipgloss.Style{
	"peaceful":   StyleTeal,
	"calm":       StyleTeal,
	"cozy":       StyleTeal,
	"grateful":   StyleAmber,
	"energetic":  StyleAmber,
	"inspired":   StyleAmber,
	"creative":   StyleViolet,
	"curious":    StyleViolet,
	"reflective": StyleViolet,
	"nostalgic":  StyleViolet,
	"anxious":    StyleRose,
}

// MoodBadge renders a mood as a coloured "● mood" pill.
func MoodBadge(mood string) string {
	if mood == "" {
		return StyleDim.Render("○ unspecified")
	}
	style, ok := moodStyles[strings.ToLower(mood)]
	if !ok {
		style = StyleFg
	}
	return style.Render("● " + mood)
}

// Header renders an upper-cased section title with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)
	if title == "" {
		return box.Render(content)
	}
	return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

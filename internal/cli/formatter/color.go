package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Background is the dark canvas activity colors are tinted against.
const Background domain.Color = "#282828"

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ActivityStyle colors text with an activity's display color.
func ActivityStyle(c domain.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(string(c.Display())))
}

// Swatch renders a colored dot for an activity color.
func Swatch(c domain.Color) string {
	return ActivityStyle(c).Render("●")
}

// Fill renders text on a tinted background of c, the way timeline blocks
// are drawn.
func Fill(c domain.Color, text string) string {
	bg := c.Tint(Background, 0.65)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(string(bg))).
		Foreground(lipgloss.Color(string(c.Display()))).
		Render(text)
}

// RatingStyle picks a color tier for a 1-10 rating: red below 4, yellow
// below 7, green otherwise. Distraction ratings pass inverted=true so that
// a low distraction reads as good.
func RatingStyle(rating int, inverted bool) lipgloss.Style {
	if inverted {
		rating = domain.MaxRating + domain.MinRating - rating
	}
	switch {
	case rating < 4:
		return StyleRed
	case rating < 7:
		return StyleYellow
	default:
		return StyleGreen
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

package domain

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an activity color persisted as a normalized "#rrggbb" string.
type Color string

// DefaultColor is used for activities created without a color and as the
// display fallback for unparseable stored values.
const DefaultColor Color = "#83a598"

// ParseColor accepts "#rgb" or "#rrggbb", with or without the leading '#',
// in any case, and returns the normalized form. An empty input yields
// DefaultColor.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultColor, nil
	}
	s = "#" + strings.TrimPrefix(strings.ToLower(s), "#")
	invalid := &ValidationError{Field: "color", Reason: "must be a hex color like #ff8800"}
	if len(s) != 4 && len(s) != 7 {
		return "", invalid
	}
	// colorful.Hex scans with Sscanf, which tolerates trailing garbage.
	if strings.Trim(s[1:], "0123456789abcdef") != "" {
		return "", invalid
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", invalid
	}
	return Color(c.Hex()), nil
}

// RGB returns the color as a colorful.Color. Invalid values map to
// DefaultColor.
func (c Color) RGB() colorful.Color {
	rgb, err := colorful.Hex(string(c))
	if err != nil {
		rgb, _ = colorful.Hex(string(DefaultColor))
	}
	return rgb
}

// Display is the derived color used for rendering.
func (c Color) Display() Color {
	return Color(c.RGB().Hex())
}

// Tint blends c towards bg by t in [0,1], in Lab space.
func (c Color) Tint(bg Color, t float64) Color {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return Color(c.RGB().BlendLab(bg.RGB(), t).Clamped().Hex())
}

func (c Color) String() string { return string(c) }

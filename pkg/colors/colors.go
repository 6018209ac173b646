// Package colors maps color names and hex strings to color.RGBA.
package colors

import (
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/wesen/graphview/pkg/errors"
)

var (
	Black     = color.RGBA{0, 0, 0, 255}
	White     = color.RGBA{255, 255, 255, 255}
	Red       = color.RGBA{255, 0, 0, 255}
	Green     = color.RGBA{0, 255, 0, 255}
	Blue      = color.RGBA{0, 0, 255, 255}
	Yellow    = color.RGBA{255, 255, 0, 255}
	Magenta   = color.RGBA{255, 0, 255, 255}
	Cyan      = color.RGBA{0, 255, 255, 255}
	Orange    = color.RGBA{255, 128, 0, 255}
	Pink      = color.RGBA{255, 192, 203, 255}
	Purple    = color.RGBA{128, 0, 128, 255}
	Gray      = color.RGBA{128, 128, 128, 255}
	DarkGray  = color.RGBA{64, 64, 64, 255}
	LightGray = color.RGBA{192, 192, 192, 255}
)

// named is keyed by upper-case name; both DARK_GRAY and DARKGRAY spellings
// resolve through normalize.
var named = map[string]color.RGBA{
	"BLACK":      Black,
	"WHITE":      White,
	"RED":        Red,
	"GREEN":      Green,
	"BLUE":       Blue,
	"YELLOW":     Yellow,
	"MAGENTA":    Magenta,
	"CYAN":       Cyan,
	"ORANGE":     Orange,
	"PINK":       Pink,
	"PURPLE":     Purple,
	"GRAY":       Gray,
	"DARK_GRAY":  DarkGray,
	"LIGHT_GRAY": LightGray,
}

func normalize(name string) string {
	n := strings.ToUpper(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "-", "_")
	n = strings.ReplaceAll(n, " ", "_")
	n = strings.ReplaceAll(n, "GREY", "GRAY")
	switch n {
	case "DARKGRAY":
		return "DARK_GRAY"
	case "LIGHTGRAY":
		return "LIGHT_GRAY"
	}
	return n
}

// Parse resolves a color name (case-insensitive) or a "#rrggbb" hex string.
func Parse(s string) (color.RGBA, error) {
	if c, ok := named[normalize(s)]; ok {
		return c, nil
	}
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	cf, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "unknown color %q", s)
	}
	r, g, b := cf.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// MustParse is Parse for package-level defaults; it panics on bad input.
func MustParse(s string) color.RGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hex formats c as "#rrggbb", dropping alpha.
func Hex(c color.RGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// Names returns the known color names.
func Names() []string {
	out := make([]string, 0, len(named))
	for k := range named {
		out = append(out, k)
	}
	return out
}

// Package render composes scene frames (background, overlay text, logo) and
// encodes them into timed clips.
package render

import (
	"image"
	"image/color"
	"strings"

	"github.com/scenecast/scenecast/internal/mederr"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Theme is a two-color vertical gradient used for fallback and solid
// backgrounds.
type Theme struct {
	Name   string
	Top    color.RGBA
	Bottom color.RGBA
}

var themes = map[string]Theme{
	"dark":   {Name: "dark", Top: color.RGBA{15, 23, 42, 255}, Bottom: color.RGBA{30, 41, 59, 255}},
	"light":  {Name: "light", Top: color.RGBA{245, 246, 248, 255}, Bottom: color.RGBA{225, 229, 235, 255}},
	"earth":  {Name: "earth", Top: color.RGBA{39, 57, 47, 255}, Bottom: color.RGBA{98, 125, 103, 255}},
	"purple": {Name: "purple", Top: color.RGBA{45, 23, 66, 255}, Bottom: color.RGBA{109, 74, 147, 255}},
	"sunset": {Name: "sunset", Top: color.RGBA{255, 94, 98, 255}, Bottom: color.RGBA{255, 195, 113, 255}},
}

// GetTheme returns a theme by name.
func GetTheme(name string) (Theme, error) {
	t, ok := themes[name]
	if !ok {
		return Theme{}, mederr.Configf("unknown theme %q (available: %s)",
			name, strings.Join(ThemeNames(), ", "))
	}
	return t, nil
}

// ThemeNames returns the available theme names, sorted.
func ThemeNames() []string {
	names := maps.Keys(themes)
	slices.Sort(names)
	return names
}

// Gradient renders the theme as a vertical gradient image.
func Gradient(width, height int, t Theme) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	denom := float64(height - 1)
	if denom < 1 {
		denom = 1
	}
	for y := 0; y < height; y++ {
		f := float64(y) / denom
		c := color.RGBA{
			R: lerpByte(t.Top.R, t.Bottom.R, f),
			G: lerpByte(t.Top.G, t.Bottom.G, f),
			B: lerpByte(t.Top.B, t.Bottom.B, f),
			A: 255,
		}
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func lerpByte(a, b uint8, f float64) uint8 {
	return uint8(float64(a)*(1-f) + float64(b)*f + 0.5)
}

package render

import (
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// LoadFace loads a font face at the given pixel size. An empty path selects
// the embedded Go Regular face.
func LoadFace(path string, sizePx float64) (font.Face, error) {
	data := goregular.TTF
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read font %s", path)
		}
		data = fileData
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "parse font")
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    sizePx,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(err, "build font face")
	}
	return face, nil
}

// WrapText greedily wraps text into lines no wider than maxWidth pixels as
// measured with the given face. A single word wider than maxWidth gets its
// own line rather than being broken.
func WrapText(face font.Face, text string, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	measure := func(s string) int {
		return font.MeasureString(face, s).Ceil()
	}

	var lines []string
	current := words[0]
	for _, word := range words[1:] {
		candidate := current + " " + word
		if measure(candidate) > maxWidth {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	lines = append(lines, current)
	return lines
}

// drawTextBlock paints a translucent box and the wrapped lines centered on
// the frame.
func drawTextBlock(img *image.RGBA, face font.Face, lines []string, lineSpacing float64, paddingPx, boxOpacity int) {
	if len(lines) == 0 {
		return
	}
	bounds := img.Bounds()
	metrics := face.Metrics()
	lineHeight := int(float64(metrics.Height.Ceil()) * lineSpacing)

	maxLineWidth := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > maxLineWidth {
			maxLineWidth = w
		}
	}
	blockHeight := lineHeight * len(lines)

	x0 := (bounds.Dx() - maxLineWidth) / 2
	y0 := (bounds.Dy() - blockHeight) / 2

	box := image.Rect(
		x0-paddingPx, y0-paddingPx,
		x0+maxLineWidth+paddingPx, y0+blockHeight+paddingPx,
	).Intersect(bounds)
	draw.Draw(img, box, image.NewUniform(color.NRGBA{0, 0, 0, uint8(boxOpacity)}), image.Point{}, draw.Over)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	ascent := metrics.Ascent.Ceil()
	for i, line := range lines {
		lineWidth := font.MeasureString(face, line).Ceil()
		x := (bounds.Dx() - lineWidth) / 2
		y := y0 + i*lineHeight + ascent
		drawer.Dot = fixed.P(x, y)
		drawer.DrawString(line)
	}
}

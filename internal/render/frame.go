package render

import (
	"image"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/scenecast/scenecast/internal/config"
	xdraw "golang.org/x/image/draw"
)

// FrameStyle collects everything that shapes a composed scene frame.
type FrameStyle struct {
	Width       int
	Height      int
	Theme       Theme
	FontPath    string
	FontSizePct float64
	LineSpacing float64
	PaddingPx   int
	BoxOpacity  int
	LogoPath    string
}

// DefaultFrameStyle builds a style for the given dimensions and theme with
// the standard text metrics.
func DefaultFrameStyle(width, height int, theme Theme) FrameStyle {
	return FrameStyle{
		Width:       width,
		Height:      height,
		Theme:       theme,
		FontSizePct: config.FontSizePct,
		LineSpacing: config.LineSpacing,
		PaddingPx:   config.TextPaddingPx,
		BoxOpacity:  config.BoxOpacity,
	}
}

// ComposeFrame renders one scene still: background (image or theme gradient),
// centered wrapped text on a translucent box, and an optional logo in the
// top-right corner. backgroundPath may be empty. A background or logo that
// cannot be loaded degrades to the gradient with a logged warning rather
// than failing the scene.
func ComposeFrame(text, backgroundPath string, style FrameStyle) (*image.RGBA, error) {
	frame := background(backgroundPath, style)

	fontSize := style.FontSizePct * float64(style.Height)
	face, err := LoadFace(style.FontPath, fontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	maxTextWidth := style.Width - 2*style.PaddingPx
	lines := WrapText(face, text, maxTextWidth)
	drawTextBlock(frame, face, lines, style.LineSpacing, style.PaddingPx, style.BoxOpacity)

	if style.LogoPath != "" {
		if err := overlayLogo(frame, style.LogoPath, style.Width); err != nil {
			log.Printf("warning: skipping logo %s: %v", style.LogoPath, err)
		}
	}
	return frame, nil
}

// background returns the scaled background image, or the theme gradient when
// no image is configured or the image cannot be read.
func background(path string, style FrameStyle) *image.RGBA {
	if path == "" {
		return Gradient(style.Width, style.Height, style.Theme)
	}
	src, err := loadImage(path)
	if err != nil {
		log.Printf("warning: background %s unusable, using %s gradient: %v",
			path, style.Theme.Name, err)
		return Gradient(style.Width, style.Height, style.Theme)
	}

	frame := image.NewRGBA(image.Rect(0, 0, style.Width, style.Height))
	sb := src.Bounds()
	// Scale to cover the frame, then center so the overflow crops evenly.
	scale := float64(style.Width) / float64(sb.Dx())
	if s := float64(style.Height) / float64(sb.Dy()); s > scale {
		scale = s
	}
	scaledW := int(float64(sb.Dx())*scale + 0.5)
	scaledH := int(float64(sb.Dy())*scale + 0.5)
	x0 := (style.Width - scaledW) / 2
	y0 := (style.Height - scaledH) / 2
	dr := image.Rect(x0, y0, x0+scaledW, y0+scaledH)
	xdraw.CatmullRom.Scale(frame, dr, src, sb, xdraw.Src, nil)
	return frame
}

// overlayLogo composites the logo scaled to a fixed fraction of the frame
// width into the top-right corner.
func overlayLogo(frame *image.RGBA, path string, frameWidth int) error {
	logo, err := loadImage(path)
	if err != nil {
		return err
	}
	lb := logo.Bounds()
	targetW := int(float64(frameWidth) * config.LogoWidthPct)
	if targetW < 1 {
		targetW = 1
	}
	targetH := int(float64(lb.Dy()) * float64(targetW) / float64(lb.Dx()))
	if targetH < 1 {
		targetH = 1
	}
	x0 := frameWidth - targetW - config.LogoMarginPx
	dr := image.Rect(x0, config.LogoMarginPx, x0+targetW, config.LogoMarginPx+targetH)
	xdraw.CatmullRom.Scale(frame, dr, logo, lb, xdraw.Over, nil)
	return nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open image %s", path)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode image %s", path)
	}
	return img, nil
}

// WritePNG saves a composed frame to disk.
func WritePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encode %s", path)
	}
	return errors.Wrapf(f.Close(), "close %s", path)
}

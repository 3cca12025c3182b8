package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
)

// canvasSpec says what to draw on: a template image, or a blank canvas of
// Width x Height filled with Background.
type canvasSpec struct {
	Template   string
	Width      int
	Height     int
	Background color.Color
}

func loadCanvas(spec canvasSpec) (*image.RGBA, error) {
	if spec.Template != "" {
		tpl, err := gg.LoadImage(spec.Template)
		if err != nil {
			return nil, fmt.Errorf("load template %s: %w", spec.Template, err)
		}
		dc := gg.NewContextForImage(tpl)
		return dc.Image().(*image.RGBA), nil
	}

	if spec.Width < 1 || spec.Height < 1 {
		return nil, fmt.Errorf("blank canvas needs a positive size, got %dx%d", spec.Width, spec.Height)
	}
	dc := gg.NewContext(spec.Width, spec.Height)
	if spec.Background != nil {
		dc.SetColor(spec.Background)
		dc.Clear()
	}
	return dc.Image().(*image.RGBA), nil
}

func savePNG(filename string, img image.Image) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := gg.SavePNG(filename, img); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	return nil
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}

package main

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"slapimage/draw"
)

const ticketLayout = `
width: 300
height: 200
background: "#ffffff"
output: ticket.png
fields:
  - coords: [xyxy, 10, 10, 290, 50]
    text: left ascender inverted gpq
    anchor: la
    fill: black
    max_font_size: 30
    inverted: true
  - coords: [xywh, 150, 120, 280, 120]
    text: |
      Dance to your heart's desire
      Drown in grandeur and pleasure
    anchor: mmm
    fill: "#202020"
    line_height: 1.5
    stroke_width: 1
    stroke_fill: white
`

func writeLayout(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "layout.yaml")
	writeFile(t, path, content)
	return path
}

func hasInk(img *image.RGBA, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) != (color.RGBA{255, 255, 255, 255}) {
				return true
			}
		}
	}
	return false
}

func TestLoadLayout(t *testing.T) {
	doc, err := loadLayout(writeLayout(t, ticketLayout))
	if err != nil {
		t.Fatalf("loadLayout: %v", err)
	}
	if len(doc.Fields) != 2 || doc.Output != "ticket.png" {
		t.Fatalf("doc = %+v", doc)
	}
	if doc.Fields[0].Coords.Coords != draw.XYXY(10, 10, 290, 50) {
		t.Errorf("coords = %v", doc.Fields[0].Coords)
	}
	if doc.Fields[1].Coords.Coords != draw.XYWH(150, 120, 280, 120) {
		t.Errorf("coords = %v", doc.Fields[1].Coords)
	}
	if !doc.Fields[0].Inverted || doc.Fields[1].LineHeight != 1.5 || doc.Fields[1].StrokeWidth != 1 {
		t.Errorf("fields = %+v", doc.Fields)
	}
}

func TestLoadLayoutErrors(t *testing.T) {
	tests := map[string]string{
		"no fields":    "width: 10\nheight: 10\n",
		"short coords": "fields:\n  - coords: [xyxy, 1, 2, 3]\n",
		"bad value":    "fields:\n  - coords: [xyxy, 1, 2, 3, x]\n",
		"not yaml":     "fields: [",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := loadLayout(writeLayout(t, content)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRenderLayout(t *testing.T) {
	doc, err := loadLayout(writeLayout(t, ticketLayout))
	if err != nil {
		t.Fatal(err)
	}
	img, err := renderLayout(doc, defaultConfig(), draw.NewFontSet(t.TempDir()))
	if err != nil {
		t.Fatalf("renderLayout: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 300, 200) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	if !hasInk(img, image.Rect(10, 10, 290, 50)) {
		t.Error("first field is empty")
	}
	if !hasInk(img, image.Rect(10, 60, 290, 180)) {
		t.Error("second field is empty")
	}
}

func TestRenderLayoutReportsField(t *testing.T) {
	layout := `
width: 100
height: 100
fields:
  - coords: [xyxy, 0, 0, 100, 50]
    text: ok
    anchor: mm
    fill: black
  - coords: [xyxy, 0, 50, 100, 100]
    text: single line
    anchor: mma
    fill: black
`
	doc, err := loadLayout(writeLayout(t, layout))
	if err != nil {
		t.Fatal(err)
	}
	_, err = renderLayout(doc, defaultConfig(), draw.NewFontSet(t.TempDir()))
	if !errors.Is(err, draw.ErrAnchor) {
		t.Fatalf("renderLayout: got %v, want ErrAnchor", err)
	}
	if !strings.Contains(err.Error(), "field 1") {
		t.Errorf("error %q does not name the field", err)
	}
}

func TestRenderLayoutMissingFill(t *testing.T) {
	layout := "width: 100\nheight: 100\nfields:\n  - coords: [xyxy, 0, 0, 100, 100]\n    text: hi\n    anchor: mm\n"
	doc, err := loadLayout(writeLayout(t, layout))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := renderLayout(doc, defaultConfig(), draw.NewFontSet(t.TempDir())); !errors.Is(err, draw.ErrMissingStyle) {
		t.Errorf("renderLayout: got %v, want ErrMissingStyle", err)
	}
}

func TestRenderLayoutTemplate(t *testing.T) {
	dir := t.TempDir()
	tpl := image.NewRGBA(image.Rect(0, 0, 120, 40))
	for i := range tpl.Pix {
		tpl.Pix[i] = 255
	}
	if err := savePNG(filepath.Join(dir, "tpl.png"), tpl); err != nil {
		t.Fatal(err)
	}
	layoutPath := filepath.Join(dir, "layout.yaml")
	writeFile(t, layoutPath, "template: tpl.png\nfields:\n  - coords: [xyxy, 0, 0, 120, 40]\n    text: Admit one\n    anchor: mm\n    fill: black\n")

	doc, err := loadLayout(layoutPath)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Template != filepath.Join(dir, "tpl.png") {
		t.Errorf("template = %s", doc.Template)
	}
	img, err := renderLayout(doc, defaultConfig(), draw.NewFontSet(t.TempDir()))
	if err != nil {
		t.Fatalf("renderLayout: %v", err)
	}
	if img.Bounds() != tpl.Bounds() || !hasInk(img, img.Bounds()) {
		t.Errorf("template not drawn on: bounds %v", img.Bounds())
	}
}

package draw

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// Style keys understood by the gg rasteriser. Other keys in Style.Extra
// are carried along and ignored.
const (
	StyleStrokeWidth = "stroke_width"
	StyleStrokeFill  = "stroke_fill"
)

// Style holds the paint for a Text call. Fill is mandatory. Extra is an
// unvalidated pass-through map of rasteriser options.
type Style struct {
	Fill  color.Color
	Extra map[string]any
}

// Drawer draws anchored, auto-sized text onto an RGBA canvas it does not
// own. Successive calls stack on the same canvas. A Drawer is not safe for
// concurrent use.
type Drawer struct {
	img         *image.RGBA
	fonts       *FontSet
	measurer    Measurer
	defaultFont string
}

// Option configures a Drawer.
type Option func(*Drawer)

// WithMeasurer replaces the face measurer, mostly useful in tests.
func WithMeasurer(m Measurer) Option {
	return func(d *Drawer) {
		d.measurer = m
	}
}

// WithDefaultFont sets the font used when Text is given an empty font name.
func WithDefaultFont(name string) Option {
	return func(d *Drawer) {
		d.defaultFont = name
	}
}

// NewDrawer returns a Drawer for img using fonts from fonts.
func NewDrawer(img *image.RGBA, fonts *FontSet, opts ...Option) *Drawer {
	d := &Drawer{img: img, fonts: fonts, defaultFont: DefaultFont}
	for _, opt := range opts {
		opt(d)
	}
	if d.measurer == nil {
		d.measurer = NewFaceMeasurer(fonts)
	}
	return d
}

// Image returns the canvas.
func (d *Drawer) Image() *image.RGBA { return d.img }

type textOptions struct {
	maxSize    int
	breakText  bool
	lineHeight float64
	inverted   bool
}

// TextOption configures a single Text call.
type TextOption func(*textOptions)

// WithMaxFontSize sets the first font size tried. Default 100.
func WithMaxFontSize(size int) TextOption {
	return func(o *textOptions) { o.maxSize = size }
}

// WithBreakText word-wraps the text even when it has no line breaks.
func WithBreakText(b bool) TextOption {
	return func(o *textOptions) { o.breakText = b }
}

// WithLineHeight sets the line height multiplier for wrapped text. Default 1.
func WithLineHeight(lh float64) TextOption {
	return func(o *textOptions) { o.lineHeight = lh }
}

// WithInverted draws the text upside down, flipping the field with it.
func WithInverted(b bool) TextOption {
	return func(o *textOptions) { o.inverted = b }
}

// Plan validates the arguments of a Text call, fits the text into its
// field and returns where each line would be drawn. It does not touch the
// canvas. Blank text yields an empty Layout.
func (d *Drawer) Plan(coords Coords, text, anchor, fontName string, opts ...TextOption) (Layout, error) {
	o := textOptions{maxSize: DefaultMaxFontSize, lineHeight: DefaultLineHeight}
	for _, opt := range opts {
		opt(&o)
	}
	if fontName == "" {
		fontName = d.defaultFont
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	ta, err := parseTextAnchor(anchor, isMultiline(text, o.breakText))
	if err != nil {
		return Layout{}, err
	}
	r, f, err := coords.resolve(ta.line)
	if err != nil {
		return Layout{}, err
	}
	if text == "" {
		return Layout{}, nil
	}

	fit, err := Fit(d.measurer, fontName, text, f.W, f.H, FitOptions{
		MaxSize:    o.maxSize,
		Wrap:       o.breakText,
		LineHeight: o.lineHeight,
	})
	if err != nil {
		return Layout{}, err
	}
	lay := planLayout(r, f, ta, fit, o.inverted)
	lay.Font = fontName
	return lay, nil
}

// Text draws text into the field described by coords, at the largest font
// size up to the configured maximum that fits. anchor is two characters
// (horizontal l/m/r, vertical a/m/d) plus, for multi-line text, an
// optional third character placing the block of lines (a/m/d).
//
// All validation and fitting happen before the canvas is touched, so on
// error the canvas is unchanged. Blank text draws nothing.
func (d *Drawer) Text(coords Coords, text, anchor, fontName string, style Style, opts ...TextOption) error {
	if style.Fill == nil {
		return fmt.Errorf("%w: fill", ErrMissingStyle)
	}
	lay, err := d.Plan(coords, text, anchor, fontName, opts...)
	if err != nil {
		return err
	}
	if len(lay.Placements) == 0 {
		Logger().Info("blank text skipped", "coords", coords.String())
		return nil
	}
	face, err := d.fonts.Face(lay.Font, lay.Size)
	if err != nil {
		return err
	}

	if !lay.Inverted {
		rasterize(d.img, face, lay.Placements, style)
		return nil
	}

	buf := image.NewRGBA(image.Rectangle{Max: lay.Buffer})
	rasterize(buf, face, lay.Placements, style)
	xdraw.Draw(d.img, lay.Paste, Rotate180(buf), image.Point{}, xdraw.Over)
	if !lay.Paste.In(d.img.Bounds()) {
		Logger().Info("inverted text clipped by canvas", "paste", lay.Paste.String(), "canvas", d.img.Bounds().String())
	}
	return nil
}

// rasterize draws placements onto dst, stroke first when one is configured.
func rasterize(dst *image.RGBA, face font.Face, placements []Placement, style Style) {
	dc := gg.NewContextForRGBA(dst)
	dc.SetFontFace(face)
	strokeWidth, strokeFill := strokeOf(style.Extra)

	for _, p := range placements {
		x, y := origin(p, measureLine(face, p.Text))
		if strokeWidth > 0 && strokeFill != nil {
			dc.SetColor(strokeFill)
			for dy := -strokeWidth; dy <= strokeWidth; dy++ {
				for dx := -strokeWidth; dx <= strokeWidth; dx++ {
					if dx*dx+dy*dy > strokeWidth*strokeWidth {
						continue
					}
					dc.DrawString(p.Text, x+float64(dx), y+float64(dy))
				}
			}
		}
		dc.SetColor(style.Fill)
		dc.DrawString(p.Text, x, y)
	}
}

// origin converts an anchored placement to the left end of its baseline.
// The result is snapped to whole pixels so the line's box stays on the
// field side of the anchor.
func origin(p Placement, b lineBox) (x, y float64) {
	switch p.Anchor.X {
	case AnchorLeft:
		x = math.Ceil(p.X) + float64(b.left)
	case AnchorMiddle:
		x = math.Floor(p.X-float64(b.width())/2) + float64(b.left)
	case AnchorRight:
		x = math.Floor(p.X) - float64(b.right)
	}
	switch p.Anchor.Y {
	case AnchorAscender:
		y = math.Ceil(p.Y) + float64(b.above)
	case AnchorMiddle:
		y = math.Floor(p.Y-float64(b.height())/2) + float64(b.above)
	case AnchorDescender:
		y = math.Floor(p.Y) - float64(b.below)
	}
	return x, y
}

func strokeOf(extra map[string]any) (int, color.Color) {
	var width int
	switch v := extra[StyleStrokeWidth].(type) {
	case int:
		width = v
	case int64:
		width = int(v)
	case float64:
		width = roundHalfUp(v)
	}
	c, _ := extra[StyleStrokeFill].(color.Color)
	return width, c
}

// Rotate180 returns a copy of src turned half a revolution, with bounds
// starting at the origin.
func Rotate180(src image.Image) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	s2d := f64.Aff3{
		-1, 0, float64(b.Max.X),
		0, -1, float64(b.Max.Y),
	}
	xdraw.NearestNeighbor.Transform(dst, s2d, src, b, xdraw.Src, nil)
	return dst
}

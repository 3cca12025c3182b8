package draw

import (
	"strings"

	"golang.org/x/image/font"
)

// Measurer reports the pixel size text would occupy when drawn with the
// named font at size pixels. Multi-line text is measured as one block.
// Implementations must be deterministic for a given input.
type Measurer interface {
	Measure(font string, size int, text string) (w, h int, err error)
}

// lineBox is the whole-pixel box one line of text occupies around the
// left end of its baseline. It covers the advance from ascender to
// descender and any ink reaching past it, such as accents over capitals.
type lineBox struct {
	left, right  int
	above, below int
}

func (b lineBox) width() int  { return b.left + b.right }
func (b lineBox) height() int { return b.above + b.below }

func measureLine(face font.Face, s string) lineBox {
	m := face.Metrics()
	ink, advance := font.BoundString(face, s)
	return lineBox{
		left:  (-min(ink.Min.X, 0)).Ceil(),
		right: max(ink.Max.X, advance).Ceil(),
		above: max(-ink.Min.Y, m.Ascent).Ceil(),
		below: max(ink.Max.Y, m.Descent).Ceil(),
	}
}

// FaceMeasurer measures text with faces from a FontSet. Lines of
// multi-line text are stacked without extra leading.
type FaceMeasurer struct {
	fonts *FontSet
}

var _ Measurer = (*FaceMeasurer)(nil)

// NewFaceMeasurer returns a measurer backed by fonts.
func NewFaceMeasurer(fonts *FontSet) *FaceMeasurer {
	return &FaceMeasurer{fonts: fonts}
}

// Measure implements Measurer.
func (m *FaceMeasurer) Measure(fontName string, size int, text string) (w, h int, err error) {
	face, err := m.fonts.Face(fontName, size)
	if err != nil {
		return 0, 0, err
	}
	for _, line := range strings.Split(text, "\n") {
		b := measureLine(face, line)
		w = max(w, b.width())
		h += b.height()
	}
	return w, h, nil
}

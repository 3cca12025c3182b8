package draw

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font"
)

func newTestDrawer(t *testing.T, w, h int) *Drawer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	return NewDrawer(img, NewFontSet(t.TempDir()))
}

// inkBounds returns the smallest rectangle holding every pixel with a
// non-zero alpha.
func inkBounds(img *image.RGBA) image.Rectangle {
	var ink image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y).A == 0 {
				continue
			}
			ink = ink.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return ink
}

func snapshot(img *image.RGBA) []byte {
	return append([]byte(nil), img.Pix...)
}

var black = Style{Fill: color.Black}

func TestTextDrawsInsideField(t *testing.T) {
	d := newTestDrawer(t, 300, 120)
	field := image.Rect(20, 30, 220, 90)
	if err := d.Text(XYXY(20, 30, 220, 90), "Hi", "mm", DefaultFont, black); err != nil {
		t.Fatalf("Text: %v", err)
	}
	ink := inkBounds(d.Image())
	if ink.Empty() {
		t.Fatal("nothing drawn")
	}
	if !ink.In(field) {
		t.Errorf("ink %v outside field %v", ink, field)
	}
}

func TestTextInkStaysInField(t *testing.T) {
	field := image.Rect(0, 50, 400, 90)
	for _, text := range []string{"gjpqy", "Égypte", "Égypte gjpqy", "ÅÇ|{}"} {
		for _, anchor := range []string{"la", "mm", "ld", "ra"} {
			t.Run(text+"/"+anchor, func(t *testing.T) {
				d := newTestDrawer(t, 400, 140)
				if err := d.Text(XYXY(0, 50, 400, 90), text, anchor, DefaultFont, black); err != nil {
					t.Fatalf("Text: %v", err)
				}
				ink := inkBounds(d.Image())
				if ink.Empty() {
					t.Fatal("nothing drawn")
				}
				if !ink.In(field) {
					t.Errorf("ink %v outside field %v", ink, field)
				}
			})
		}
	}
}

func TestTextBlankIsNoop(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		d := newTestDrawer(t, 100, 50)
		before := snapshot(d.Image())
		if err := d.Text(XYXY(0, 0, 100, 50), text, "mm", DefaultFont, black); err != nil {
			t.Errorf("Text(%q): %v", text, err)
		}
		if !bytes.Equal(before, d.Image().Pix) {
			t.Errorf("Text(%q) changed the canvas", text)
		}
	}
}

func TestTextRejectsWithoutDrawing(t *testing.T) {
	tests := []struct {
		name   string
		coords Coords
		text   string
		anchor string
		font   string
		style  Style
		opts   []TextOption
		want   error
	}{
		{"third anchor char on single line", XYXY(0, 0, 200, 60), "Hi", "mma", DefaultFont, black, nil, ErrAnchor},
		{"four anchor chars", XYXY(0, 0, 200, 60), "Hi\nthere", "mmaa", DefaultFont, black, nil, ErrAnchor},
		{"unknown anchor char", XYXY(0, 0, 200, 60), "Hi", "mq", DefaultFont, black, nil, ErrAnchor},
		{"missing fill", XYXY(0, 0, 200, 60), "Hi", "mm", DefaultFont, Style{}, nil, ErrMissingStyle},
		{"unknown coords", Coords{Kind: "ltrb"}, "Hi", "mm", DefaultFont, black, nil, ErrCoords},
		{"inverted field", XYXY(200, 0, 0, 60), "Hi", "mm", DefaultFont, black, nil, ErrCoords},
		{"missing font", XYXY(0, 0, 200, 60), "Hi", "mm", "NoSuchFont", black, nil, ErrFontNotFound},
		{"field too small", XYXY(0, 0, 0, 0), "Hi", "mm", DefaultFont, black, nil, ErrLayoutInfeasible},
		{"zero max size", XYXY(0, 0, 200, 60), "Hi", "mm", DefaultFont, black, []TextOption{WithMaxFontSize(0)}, ErrFontSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDrawer(t, 200, 60)
			before := snapshot(d.Image())
			err := d.Text(tt.coords, tt.text, tt.anchor, tt.font, tt.style, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("Text: got %v, want %v", err, tt.want)
			}
			if !bytes.Equal(before, d.Image().Pix) {
				t.Error("canvas changed on error")
			}
		})
	}
}

func TestTextMultilineBlock(t *testing.T) {
	d := newTestDrawer(t, 400, 300)
	text := "Dance to your heart's desire in tune to this waltz of malice,\nDrown in grandeur and pleasure!"
	lay, err := d.Plan(XYXY(25, 40, 375, 260), text, "mmm", DefaultFont, WithMaxFontSize(30), WithLineHeight(1.5))
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(lay.Placements) < 2 {
		t.Fatalf("expected wrapped lines, got %d", len(lay.Placements))
	}
	if lay.Size > 30 {
		t.Errorf("size %d above max", lay.Size)
	}
	for i := 1; i < len(lay.Placements); i++ {
		if lay.Placements[i].Y <= lay.Placements[i-1].Y {
			t.Errorf("line %d at y %v not below line %d at y %v", i, lay.Placements[i].Y, i-1, lay.Placements[i-1].Y)
		}
	}

	if err := d.Text(XYXY(25, 40, 375, 260), text, "mmm", DefaultFont, black, WithMaxFontSize(30), WithLineHeight(1.5)); err != nil {
		t.Fatalf("Text: %v", err)
	}
	ink := inkBounds(d.Image())
	if !ink.In(image.Rect(25, 40, 375, 260).Inset(-2)) {
		t.Errorf("ink %v outside field", ink)
	}
}

func TestTextBreakText(t *testing.T) {
	d := newTestDrawer(t, 200, 200)
	lay, err := d.Plan(XYXY(0, 0, 120, 200), "one two three four five six", "la", DefaultFont, WithBreakText(true), WithMaxFontSize(40))
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(lay.Placements) < 2 {
		t.Errorf("expected wrapping, got %d lines", len(lay.Placements))
	}
}

// Drawing inverted and turning the field over reads the same as drawing
// upright with the mirrored anchor.
func TestTextInvertedMatchesMirrored(t *testing.T) {
	tests := []struct {
		anchor string
		text   string
	}{
		{"lm", "Hello"},
		{"mm", "Hello"},
		{"rm", "Hello"},
		{"mmm", "Dance to your heart's desire\nDrown in grandeur"},
	}
	for _, tt := range tests {
		t.Run(tt.anchor, func(t *testing.T) {
			inv := newTestDrawer(t, 300, 200)
			if err := inv.Text(XYXY(0, 40, 300, 160), tt.text, tt.anchor, DefaultFont, black, WithMaxFontSize(40), WithInverted(true)); err != nil {
				t.Fatalf("inverted Text: %v", err)
			}
			a, err := ParseAnchor(tt.anchor[:2])
			if err != nil {
				t.Fatal(err)
			}
			up := newTestDrawer(t, 300, 200)
			if err := up.Text(XYXY(0, 40, 300, 160), tt.text, a.Mirror().String()+tt.anchor[2:], DefaultFont, black, WithMaxFontSize(40)); err != nil {
				t.Fatalf("upright Text: %v", err)
			}

			got := inkBounds(Rotate180(inv.Image()))
			want := inkBounds(up.Image())
			if want.Empty() || got.Empty() {
				t.Fatalf("empty ink: inverted %v, upright %v", got, want)
			}
			const tol = 2
			if abs(got.Min.X-want.Min.X) > tol || abs(got.Max.X-want.Max.X) > tol ||
				abs(got.Min.Y-want.Min.Y) > tol || abs(got.Max.Y-want.Max.Y) > tol {
				t.Errorf("inverted ink %v, upright ink %v", got, want)
			}
		})
	}
}

func TestTextStacksDraws(t *testing.T) {
	d := newTestDrawer(t, 200, 100)
	if err := d.Text(XYXY(0, 0, 200, 50), "top", "la", DefaultFont, black); err != nil {
		t.Fatal(err)
	}
	first := inkBounds(d.Image())
	if err := d.Text(XYXY(0, 50, 200, 100), "bottom", "la", DefaultFont, black); err != nil {
		t.Fatal(err)
	}
	both := inkBounds(d.Image())
	if !first.In(both) || both.Max.Y <= first.Max.Y {
		t.Errorf("second draw did not add below the first: %v then %v", first, both)
	}
}

func TestTextStroke(t *testing.T) {
	plain := newTestDrawer(t, 200, 80)
	stroked := newTestDrawer(t, 200, 80)
	if err := plain.Text(XYXY(10, 10, 190, 70), "Hi", "mm", DefaultFont, black, WithMaxFontSize(30)); err != nil {
		t.Fatal(err)
	}
	style := Style{Fill: color.Black, Extra: map[string]any{
		StyleStrokeWidth: 2,
		StyleStrokeFill:  color.RGBA{R: 255, A: 255},
		"ignored":        true,
	}}
	if err := stroked.Text(XYXY(10, 10, 190, 70), "Hi", "mm", DefaultFont, style, WithMaxFontSize(30)); err != nil {
		t.Fatal(err)
	}
	p, s := inkBounds(plain.Image()), inkBounds(stroked.Image())
	if s.Dx() <= p.Dx() || s.Dy() <= p.Dy() {
		t.Errorf("stroked ink %v not larger than plain ink %v", s, p)
	}
}

func TestRotate180(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 2))
	src.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	src.SetRGBA(2, 1, color.RGBA{G: 255, A: 255})
	dst := Rotate180(src)
	if got := dst.RGBAAt(2, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("(2,1) = %v, want red", got)
	}
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("(0,0) = %v, want green", got)
	}
}

func TestOrigin(t *testing.T) {
	b := lineBox{left: 2, right: 40, above: 15, below: 5}
	tests := []struct {
		anchor string
		x, y   float64
		wantX  float64
		wantY  float64
	}{
		{"la", 100, 50, 102, 65},
		{"mm", 100, 50, 81, 55},
		{"rd", 100, 50, 60, 45},
		{"la", 100.5, 50.5, 103, 66},
		{"rd", 100.5, 50.5, 60, 45},
	}
	for _, tt := range tests {
		a, _ := ParseAnchor(tt.anchor)
		x, y := origin(Placement{X: tt.x, Y: tt.y, Anchor: a}, b)
		if x != tt.wantX || y != tt.wantY {
			t.Errorf("%s at (%v, %v): origin (%v, %v), want (%v, %v)", tt.anchor, tt.x, tt.y, x, y, tt.wantX, tt.wantY)
		}
	}
}

func TestMeasureLineCoversInk(t *testing.T) {
	face, err := NewFontSet(t.TempDir()).Face(DefaultFont, 40)
	if err != nil {
		t.Fatal(err)
	}
	m := face.Metrics()
	for _, s := range []string{"ace", "gjpqy", "Égypte"} {
		b := measureLine(face, s)
		if b.height() < (m.Ascent + m.Descent).Ceil() {
			t.Errorf("%q: height %d below ascent+descent %d", s, b.height(), (m.Ascent + m.Descent).Ceil())
		}
		if b.height() <= 40 {
			t.Errorf("%q: height %d not taller than the em size", s, b.height())
		}
		ink, _ := font.BoundString(face, s)
		if -ink.Min.Y.Floor() > b.above || ink.Max.Y.Ceil() > b.below {
			t.Errorf("%q: ink %v outside box %+v", s, ink, b)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

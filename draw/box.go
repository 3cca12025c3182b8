package draw

import (
	"fmt"
	"image"
	"math"
)

// Rect is a field in corner form: top-left (X1, Y1), bottom-right (X2, Y2).
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Image returns r as an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Field is a field in anchor-relative form: the anchor point (X, Y) and the
// field dimensions.
type Field struct {
	X, Y, W, H int
}

// roundHalfUp rounds to the nearest integer, halves away from negative infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// halfRound is the single rounding rule for splitting a dimension in two.
func halfRound(n int) int {
	return roundHalfUp(float64(n) / 2)
}

// XYXYToXYWH converts a corner-form field to the anchor-relative form for
// anchor a.
//
//	x-anchor   x              y-anchor   y
//	l          x1             a          y1
//	m          (x1 + x2) / 2  m          (y1 + y2) / 2
//	r          x2             d          y2
func XYXYToXYWH(a Anchor, r Rect) (Field, error) {
	if err := a.validate(); err != nil {
		return Field{}, err
	}
	f := Field{W: r.X2 - r.X1, H: r.Y2 - r.Y1}
	switch a.X {
	case AnchorLeft:
		f.X = r.X1
	case AnchorMiddle:
		f.X = roundHalfUp(float64(r.X1+r.X2) / 2)
	case AnchorRight:
		f.X = r.X2
	}
	switch a.Y {
	case AnchorAscender:
		f.Y = r.Y1
	case AnchorMiddle:
		f.Y = roundHalfUp(float64(r.Y1+r.Y2) / 2)
	case AnchorDescender:
		f.Y = r.Y2
	}
	return f, nil
}

// XYWHToXYXY is the inverse of XYXYToXYWH.
//
//	x-anchor   x1        x2          y-anchor   y1        y2
//	l          x         x + w       a          y         y + h
//	m          x - w/2   x + w/2     m          y - h/2   y + h/2
//	r          x - w     x           d          y - h     y
//
// Middle anchors on odd dimensions round the half up on both sides, so a
// round trip through both conversions may differ by one pixel.
func XYWHToXYXY(a Anchor, f Field) (Rect, error) {
	if err := a.validate(); err != nil {
		return Rect{}, err
	}
	var r Rect
	switch a.X {
	case AnchorLeft:
		r.X1, r.X2 = f.X, f.X+f.W
	case AnchorMiddle:
		r.X1, r.X2 = f.X-halfRound(f.W), f.X+halfRound(f.W)
	case AnchorRight:
		r.X1, r.X2 = f.X-f.W, f.X
	}
	switch a.Y {
	case AnchorAscender:
		r.Y1, r.Y2 = f.Y, f.Y+f.H
	case AnchorMiddle:
		r.Y1, r.Y2 = f.Y-halfRound(f.H), f.Y+halfRound(f.H)
	case AnchorDescender:
		r.Y1, r.Y2 = f.Y-f.H, f.Y
	}
	return r, nil
}

// CoordsKind tags which form a Coords value is in.
type CoordsKind string

const (
	KindXYXY CoordsKind = "xyxy"
	KindXYWH CoordsKind = "xywh"
)

// Coords describes a text field either in corner form or in
// anchor-relative form.
type Coords struct {
	Kind CoordsKind
	V    [4]int
}

// XYXY returns corner-form coordinates.
func XYXY(x1, y1, x2, y2 int) Coords {
	return Coords{Kind: KindXYXY, V: [4]int{x1, y1, x2, y2}}
}

// XYWH returns anchor-relative coordinates.
func XYWH(x, y, w, h int) Coords {
	return Coords{Kind: KindXYWH, V: [4]int{x, y, w, h}}
}

func (c Coords) String() string {
	return fmt.Sprintf("%s(%d, %d, %d, %d)", c.Kind, c.V[0], c.V[1], c.V[2], c.V[3])
}

// validate checks the tag and that the field has no negative extent.
func (c Coords) validate() error {
	switch c.Kind {
	case KindXYXY:
		if c.V[2] < c.V[0] || c.V[3] < c.V[1] {
			return fmt.Errorf("%w: %s has x2 < x1 or y2 < y1", ErrCoords, c)
		}
	case KindXYWH:
		if c.V[2] < 0 || c.V[3] < 0 {
			return fmt.Errorf("%w: %s has a negative width or height", ErrCoords, c)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrCoords, c.Kind)
	}
	return nil
}

// resolve returns the field in both forms for anchor a.
func (c Coords) resolve(a Anchor) (Rect, Field, error) {
	if err := c.validate(); err != nil {
		return Rect{}, Field{}, err
	}
	if c.Kind == KindXYXY {
		r := Rect{X1: c.V[0], Y1: c.V[1], X2: c.V[2], Y2: c.V[3]}
		f, err := XYXYToXYWH(a, r)
		return r, f, err
	}
	f := Field{X: c.V[0], Y: c.V[1], W: c.V[2], H: c.V[3]}
	r, err := XYWHToXYXY(a, f)
	return r, f, err
}

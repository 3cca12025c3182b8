package draw

import "image"

// Placement is one line of text pinned at (X, Y) by Anchor.
type Placement struct {
	Text   string
	X, Y   float64
	Anchor Anchor
}

// Layout is the draw plan for one Text call.
type Layout struct {
	Font       string
	Size       int
	Placements []Placement

	// Inverted layouts are drawn into a transparent Buffer-sized scratch
	// image, rotated 180 degrees and composited over Paste on the canvas.
	// Placements are then relative to the scratch image.
	Inverted bool
	Buffer   image.Point
	Paste    image.Rectangle
}

// planLayout positions fitted text inside a field.
//
// Wrapped lines share the block height evenly and are stacked inside the
// field according to the block anchor. The inverted plan reserves half the
// text height above and below the field so the text is not clipped by the
// rotation, and mirrors the horizontal anchor so it reads from the same
// side once flipped.
func planLayout(r Rect, f Field, ta textAnchor, fit FitResult, inverted bool) Layout {
	lay := Layout{Size: fit.Size}
	anchor := ta.line
	fx, fy := float64(f.X), float64(f.Y)
	fh := f.H
	th := fit.Height

	if inverted {
		hth := roundHalfUp(float64(th) / 2)
		lhth := th - hth
		fh += th

		lay.Inverted = true
		lay.Buffer = image.Pt(f.W, fh)
		lay.Paste = image.Rect(r.X1, r.Y1-lhth, r.X1+f.W, r.Y1-lhth+fh)

		anchor = anchor.Mirror()
		switch ta.line.X {
		case AnchorLeft:
			fx = float64(f.W)
		case AnchorMiddle:
			fx = float64(roundHalfUp(float64(f.W) / 2))
		case AnchorRight:
			fx = 0
		}
		switch ta.line.Y {
		case AnchorAscender:
			fy = float64(fh - th - lhth)
		case AnchorMiddle:
			fy = float64(roundHalfUp(float64(fh) / 2))
		case AnchorDescender:
			fy = float64(th + lhth)
		}
	}

	if !fit.Multiline {
		lay.Placements = []Placement{{Text: fit.Lines[0], X: fx, Y: fy, Anchor: anchor}}
		return lay
	}

	var va float64
	switch ta.block {
	case AnchorAscender:
		va = float64(r.Y1)
		if inverted {
			va = float64(fh - th)
		}
	case AnchorMiddle:
		va = float64(r.Y1) + float64(fh-th)/2
		if inverted {
			va = float64(fh-th) / 2
		}
	case AnchorDescender:
		va = float64(r.Y1 + fh - th)
		if inverted {
			va = 0
		}
	}

	n := len(fit.Lines)
	slot := float64(th) / float64(n)
	first, step := roundHalfUp(slot/2), roundHalfUp(slot)
	lay.Placements = make([]Placement, n)
	for i, line := range fit.Lines {
		lay.Placements[i] = Placement{
			Text:   line,
			X:      fx,
			Y:      va + float64(first+i*step),
			Anchor: anchor,
		}
	}
	return lay
}

package draw

import (
	"fmt"
	"strings"
)

// Horizontal anchor characters.
const (
	AnchorLeft   byte = 'l'
	AnchorMiddle byte = 'm'
	AnchorRight  byte = 'r'
)

// Vertical anchor characters. AnchorMiddle is shared with the horizontal axis.
const (
	AnchorAscender  byte = 'a'
	AnchorDescender byte = 'd'
)

// Anchor selects which point of a text box is pinned to a reference
// coordinate, independently on each axis.
type Anchor struct {
	X byte // 'l', 'm' or 'r'
	Y byte // 'a', 'm' or 'd'
}

// ParseAnchor parses a two character anchor code such as "la" or "mm".
func ParseAnchor(s string) (Anchor, error) {
	if len(s) != 2 {
		return Anchor{}, fmt.Errorf("%w: %q must be two characters", ErrAnchor, s)
	}
	a := Anchor{X: s[0], Y: s[1]}
	if err := a.validate(); err != nil {
		return Anchor{}, err
	}
	return a, nil
}

func (a Anchor) String() string {
	return string([]byte{a.X, a.Y})
}

// Mirror swaps left and right. Middle and the vertical axis are unchanged.
func (a Anchor) Mirror() Anchor {
	switch a.X {
	case AnchorLeft:
		a.X = AnchorRight
	case AnchorRight:
		a.X = AnchorLeft
	}
	return a
}

func (a Anchor) validate() error {
	if !isHorizontal(a.X) {
		return fmt.Errorf("%w: horizontal anchor %q not one of l, m, r", ErrAnchor, a.X)
	}
	if !isVertical(a.Y) {
		return fmt.Errorf("%w: vertical anchor %q not one of a, m, d", ErrAnchor, a.Y)
	}
	return nil
}

func isHorizontal(c byte) bool {
	return c == AnchorLeft || c == AnchorMiddle || c == AnchorRight
}

func isVertical(c byte) bool {
	return c == AnchorAscender || c == AnchorMiddle || c == AnchorDescender
}

// textAnchor is a parsed anchor for one Text call: the line anchor plus,
// for multi-line text, the block anchor (third character, default 'm').
type textAnchor struct {
	line  Anchor
	block byte
}

// parseTextAnchor validates an anchor code against the kind of text it will
// position. Single-line text takes exactly two characters, multi-line text
// two or three.
func parseTextAnchor(s string, multiline bool) (textAnchor, error) {
	if len(s) < 2 {
		return textAnchor{}, fmt.Errorf("%w: %q is too short", ErrAnchor, s)
	}
	line, err := ParseAnchor(s[:2])
	if err != nil {
		return textAnchor{}, err
	}
	extra := s[2:]
	if !multiline {
		if extra != "" {
			return textAnchor{}, fmt.Errorf("%w: %q: single line text takes a two character anchor", ErrAnchor, s)
		}
		return textAnchor{line: line}, nil
	}
	if len(extra) > 1 {
		return textAnchor{}, fmt.Errorf("%w: %q: multi-line text takes at most three characters", ErrAnchor, s)
	}
	ta := textAnchor{line: line, block: AnchorMiddle}
	if extra != "" {
		if !isVertical(extra[0]) {
			return textAnchor{}, fmt.Errorf("%w: block anchor %q not one of a, m, d", ErrAnchor, extra)
		}
		ta.block = extra[0]
	}
	return ta, nil
}

// isMultiline reports whether text takes the multi-line path.
func isMultiline(text string, wrap bool) bool {
	return wrap || strings.Contains(text, "\n")
}

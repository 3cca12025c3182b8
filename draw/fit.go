package draw

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

const (
	// MinFontSize is the smallest size the fit solver tries before giving up.
	MinFontSize = 1

	// DefaultMaxFontSize is the starting size when none is given.
	DefaultMaxFontSize = 100

	// DefaultLineHeight is the default line height multiplier.
	DefaultLineHeight = 1.0
)

// FitOptions controls the fit solver.
type FitOptions struct {
	// MaxSize is the first (largest) font size tried.
	MaxSize int
	// Wrap forces the multi-line path even without line breaks in the text.
	Wrap bool
	// LineHeight multiplies the average line height of wrapped text.
	LineHeight float64
}

// FitResult is the outcome of fitting text into a field.
type FitResult struct {
	// Lines holds the text to draw. A single-line fit has exactly one entry.
	Lines []string
	// Multiline reports whether the multi-line path produced Lines.
	Multiline bool
	// Size is the accepted font size.
	Size int
	// Width and Height are the measured block size at Size.
	Width, Height int
}

// Fit finds the largest font size not above opts.MaxSize at which text fits
// in a fieldW x fieldH field, shrinking one pixel at a time.
//
// Text containing a line break, or any text when opts.Wrap is set, is
// word-wrapped. The wrap column comes from the average glyph width of the
// whole text at the candidate size, which can mis-wrap text mixing very
// narrow and very wide glyphs.
func Fit(m Measurer, font, text string, fieldW, fieldH int, opts FitOptions) (FitResult, error) {
	if opts.MaxSize < MinFontSize {
		return FitResult{}, fmt.Errorf("%w: max font size %d", ErrFontSize, opts.MaxSize)
	}
	if opts.LineHeight <= 0 {
		opts.LineHeight = DefaultLineHeight
	}
	if strings.TrimSpace(text) == "" {
		return FitResult{}, nil
	}
	if isMultiline(text, opts.Wrap) {
		return fitMultiline(m, font, text, fieldW, fieldH, opts)
	}
	return fitSingleLine(m, font, text, fieldW, fieldH, opts)
}

func fitSingleLine(m Measurer, font, text string, fieldW, fieldH int, opts FitOptions) (FitResult, error) {
	for size := opts.MaxSize; size >= MinFontSize; size-- {
		w, h, err := m.Measure(font, size, text)
		if err != nil {
			return FitResult{}, err
		}
		Logger().Debug("fit single line", "size", size, "w", w, "h", h, "field_w", fieldW, "field_h", fieldH)
		if w <= fieldW && h <= fieldH {
			return FitResult{Lines: []string{text}, Size: size, Width: w, Height: h}, nil
		}
	}
	return FitResult{}, fmt.Errorf("%w: %q in %dx%d at size %d or above", ErrLayoutInfeasible, text, fieldW, fieldH, MinFontSize)
}

func fitMultiline(m Measurer, font, text string, fieldW, fieldH int, opts FitOptions) (FitResult, error) {
	source := strings.Split(text, "\n")
	longest := 0
	for _, line := range source {
		longest = max(longest, runewidth.StringWidth(line))
	}
	if longest == 0 {
		longest = 1
	}

	for size := opts.MaxSize; size >= MinFontSize; size-- {
		rough := 0
		for _, line := range source {
			w, _, err := m.Measure(font, size, line)
			if err != nil {
				return FitResult{}, err
			}
			rough += w
		}

		fullW, _, err := m.Measure(font, size, text)
		if err != nil {
			return FitResult{}, err
		}
		cols := longest
		if fullW > 0 {
			cols = roundHalfUp(float64(fieldW) / (float64(fullW) / float64(longest)))
		}
		cols = max(cols, 1)

		lines := wrapLines(source, cols)
		if len(lines) == 0 {
			return FitResult{}, nil
		}
		blockW, sumH := 0, 0
		for _, line := range lines {
			w, h, err := m.Measure(font, size, line)
			if err != nil {
				return FitResult{}, err
			}
			blockW = max(blockW, w)
			sumH += h
		}
		n := len(lines)
		blockH := roundHalfUp(float64(n) * opts.LineHeight * (float64(sumH) / float64(n)))

		Logger().Debug("fit multiline",
			"size", size, "rough_w", rough, "cols", cols, "lines", n,
			"w", blockW, "h", blockH, "field_w", fieldW, "field_h", fieldH)
		if blockW <= fieldW && blockH <= fieldH {
			return FitResult{Lines: lines, Multiline: true, Size: size, Width: blockW, Height: blockH}, nil
		}
	}
	return FitResult{}, fmt.Errorf("%w: %d source lines in %dx%d at size %d or above", ErrLayoutInfeasible, len(source), fieldW, fieldH, MinFontSize)
}

// wrapLines greedily wraps each source line at cols columns, never
// splitting a word, and concatenates the results in order. Blank lines are
// dropped.
func wrapLines(source []string, cols int) []string {
	var out []string
	for _, line := range source {
		for _, part := range strings.Split(wordwrap.String(line, cols), "\n") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

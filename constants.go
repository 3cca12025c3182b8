package main

// Row is one editable line of the preview form.
type Row int

const (
	RowText Row = iota
	RowCoords
	RowAnchor
	RowFont
	RowFill
	RowMaxSize
	RowLineHeight
	RowBreak
	RowInverted
	numRows
)

var rowLabels = [numRows]string{
	RowText:       "text",
	RowCoords:     "coords",
	RowAnchor:     "anchor",
	RowFont:       "font",
	RowFill:       "fill",
	RowMaxSize:    "max size",
	RowLineHeight: "line height",
	RowBreak:      "break",
	RowInverted:   "inverted",
}

func (r Row) String() string {
	if r < 0 || r >= numRows {
		return "?"
	}
	return rowLabels[r]
}

// isToggle reports whether the row holds a boolean switched with space.
func (r Row) isToggle() bool {
	return r == RowBreak || r == RowInverted
}

type ActionType int

const (
	ActionEdit ActionType = iota
	ActionToggle
)

const (
	labelWidth  = 13
	maxUndoSize = 200
)

package main

import (
	"image"

	"slapimage/draw"
)

type model struct {
	width  int
	height int

	cfg    *Config
	fonts  *draw.FontSet
	base   *image.RGBA // loaded canvas, copied before every render
	drawer *draw.Drawer

	values    [numRows]string
	focus     Row
	cursorPos int

	undoStack []Action
	redoStack []Action

	output         string
	plan           draw.Layout
	planErr        error
	errorMessage   string
	successMessage string
	help           bool
}

type Action struct {
	Type      ActionType
	Row       Row
	OldValue  string
	NewValue  string
	OldCursor int
	NewCursor int
}

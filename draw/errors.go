package draw

import "errors"

// Sentinel errors returned by Drawer.Text and the helpers it is built on.
// Callers match them with errors.Is; the returned errors carry detail.
var (
	// ErrAnchor is returned for malformed anchor codes.
	ErrAnchor = errors.New("draw: invalid anchor")

	// ErrCoords is returned for an unknown coordinate kind or a negative field.
	ErrCoords = errors.New("draw: invalid coordinates")

	// ErrMissingStyle is returned when a mandatory style value (fill) is absent.
	ErrMissingStyle = errors.New("draw: missing style value")

	// ErrLayoutInfeasible is returned when no font size down to MinFontSize fits the field.
	ErrLayoutInfeasible = errors.New("draw: text does not fit field")

	// ErrFontSize is returned for a font size below MinFontSize.
	ErrFontSize = errors.New("draw: invalid font size")

	// ErrFontNotFound is returned when a font name resolves to no file or registration.
	ErrFontNotFound = errors.New("draw: font not found")
)

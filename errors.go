package outline

import "errors"

var (
	// ErrMalformedPath is returned when a drawing segment has no preceding
	// MoveTo in its subpath, a conic weight is not positive, or a coordinate
	// is not finite.
	ErrMalformedPath = errors.New("outline: malformed path")

	// ErrInvalidStroke is returned when a Stroke has a width that is not a
	// finite positive number or a miter limit that is NaN.
	ErrInvalidStroke = errors.New("outline: invalid stroke")
)

package outline

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/chewxy/math32"
)

// LineCap specifies the shape of open subpath endpoints.
type LineCap int

const (
	// LineCapButt ends the stroke exactly at the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound ends the stroke with a semicircle of radius width/2.
	LineCapRound
	// LineCapSquare extends the stroke by width/2 beyond the endpoint.
	LineCapSquare
)

// String returns the SVG name of the cap.
func (c LineCap) String() string {
	switch c {
	case LineCapButt:
		return "butt"
	case LineCapRound:
		return "round"
	case LineCapSquare:
		return "square"
	default:
		return fmt.Sprintf("LineCap(%d)", int(c))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c LineCap) MarshalText() ([]byte, error) {
	switch c {
	case LineCapButt, LineCapRound, LineCapSquare:
		return []byte(c.String()), nil
	}
	return nil, fmt.Errorf("outline: unknown line cap %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *LineCap) UnmarshalText(text []byte) error {
	switch string(text) {
	case "butt":
		*c = LineCapButt
	case "round":
		*c = LineCapRound
	case "square":
		*c = LineCapSquare
	default:
		return fmt.Errorf("outline: unknown line cap %q", text)
	}
	return nil
}

// LineJoin specifies the shape of corners between consecutive segments.
type LineJoin int

const (
	// LineJoinMiter extends the outer edges to a sharp point, limited by
	// the miter limit.
	LineJoinMiter LineJoin = iota
	// LineJoinRound fills the corner with a circular arc.
	LineJoinRound
	// LineJoinBevel cuts the corner with a straight line.
	LineJoinBevel
)

// String returns the SVG name of the join.
func (j LineJoin) String() string {
	switch j {
	case LineJoinMiter:
		return "miter"
	case LineJoinRound:
		return "round"
	case LineJoinBevel:
		return "bevel"
	default:
		return fmt.Sprintf("LineJoin(%d)", int(j))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (j LineJoin) MarshalText() ([]byte, error) {
	switch j {
	case LineJoinMiter, LineJoinRound, LineJoinBevel:
		return []byte(j.String()), nil
	}
	return nil, fmt.Errorf("outline: unknown line join %d", int(j))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (j *LineJoin) UnmarshalText(text []byte) error {
	switch string(text) {
	case "miter":
		*j = LineJoinMiter
	case "round":
		*j = LineJoinRound
	case "bevel":
		*j = LineJoinBevel
	default:
		return fmt.Errorf("outline: unknown line join %q", text)
	}
	return nil
}

// Stroke defines the style for stroking paths.
// It is a plain value: two strokes are interchangeable exactly when their
// Key values are equal, which makes Stroke usable in cache keys.
type Stroke struct {
	// Width is the full line width. Default: 1.0
	Width float32 `toml:"width"`

	// MiterLimit is the ratio of miter length to half-width above which a
	// miter join becomes a bevel. Default: 4.0
	MiterLimit float32 `toml:"miter-limit"`

	// Cap is the shape of open subpath endpoints. Default: LineCapButt
	Cap LineCap `toml:"cap"`

	// Join is the shape of corners. Default: LineJoinMiter
	Join LineJoin `toml:"join"`
}

// DefaultStroke returns a Stroke with default settings:
// a 1-unit line with butt caps and miter joins limited at 4.
func DefaultStroke() Stroke {
	return Stroke{
		Width:      1.0,
		MiterLimit: 4.0,
		Cap:        LineCapButt,
		Join:       LineJoinMiter,
	}
}

// StrokeWidth returns the default stroke with the given width.
func StrokeWidth(w float32) Stroke {
	return DefaultStroke().WithWidth(w)
}

// WithWidth returns a copy of the Stroke with the given width.
func (s Stroke) WithWidth(w float32) Stroke {
	s.Width = w
	return s
}

// WithCap returns a copy of the Stroke with the given line cap style.
func (s Stroke) WithCap(lineCap LineCap) Stroke {
	s.Cap = lineCap
	return s
}

// WithJoin returns a copy of the Stroke with the given line join style.
func (s Stroke) WithJoin(join LineJoin) Stroke {
	s.Join = join
	return s
}

// WithMiterLimit returns a copy of the Stroke with the given miter limit.
// A value of 1.0 effectively disables miter joins.
func (s Stroke) WithMiterLimit(limit float32) Stroke {
	s.MiterLimit = limit
	return s
}

// Validate reports ErrInvalidStroke for a width that is not a finite
// positive number, a NaN miter limit, or an unknown cap or join.
func (s Stroke) Validate() error {
	switch s.Cap {
	case LineCapButt, LineCapRound, LineCapSquare:
	default:
		return fmt.Errorf("%w: unknown line cap %d", ErrInvalidStroke, int(s.Cap))
	}
	switch s.Join {
	case LineJoinMiter, LineJoinRound, LineJoinBevel:
	default:
		return fmt.Errorf("%w: unknown line join %d", ErrInvalidStroke, int(s.Join))
	}
	if math32.IsNaN(s.Width) || math32.IsInf(s.Width, 0) || s.Width <= 0 {
		return fmt.Errorf("%w: width %v", ErrInvalidStroke, s.Width)
	}
	if math32.IsNaN(s.MiterLimit) {
		return fmt.Errorf("%w: miter limit is NaN", ErrInvalidStroke)
	}
	return nil
}

// StrokeKey is the bit-exact identity of a Stroke.
// Floats are stored by bit pattern, so NaN payloads and signed zeros are
// distinguished and the key is always comparable.
type StrokeKey struct {
	Width      uint32
	MiterLimit uint32
	Cap        LineCap
	Join       LineJoin
}

// Key returns the comparable bit-pattern identity of s.
func (s Stroke) Key() StrokeKey {
	return StrokeKey{
		Width:      math.Float32bits(s.Width),
		MiterLimit: math.Float32bits(s.MiterLimit),
		Cap:        s.Cap,
		Join:       s.Join,
	}
}

// Hash returns a 64-bit FNV-1a digest of the stroke's bit patterns.
// Strokes with equal keys hash identically.
func (s Stroke) Hash() uint64 {
	k := s.Key()
	var buf [10]byte
	binary.LittleEndian.PutUint32(buf[0:], k.Width)
	binary.LittleEndian.PutUint32(buf[4:], k.MiterLimit)
	buf[8] = byte(k.Cap)
	buf[9] = byte(k.Join)

	h := fnv.New64a()
	_, _ = h.Write(buf[:]) // fnv.Write never returns an error
	return h.Sum64()
}

// Thin returns a thin stroke (0.5 units).
func Thin() Stroke {
	return DefaultStroke().WithWidth(0.5)
}

// Thick returns a thick stroke (3 units).
func Thick() Stroke {
	return DefaultStroke().WithWidth(3.0)
}

// RoundStroke returns a stroke with round caps and joins.
func RoundStroke() Stroke {
	return DefaultStroke().WithCap(LineCapRound).WithJoin(LineJoinRound)
}

// SquareStroke returns a stroke with square caps.
func SquareStroke() Stroke {
	return DefaultStroke().WithCap(LineCapSquare)
}

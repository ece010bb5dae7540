package outline

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/chewxy/math32"
)

// Segment is a single element of a Curve.
// The concrete types are MoveTo, LineTo, QuadTo, ConicTo, CubicTo and Close.
type Segment interface {
	isSegment()
}

// MoveTo starts a new subpath at Point.
type MoveTo struct {
	Point Point
}

func (MoveTo) isSegment() {}

// LineTo draws a straight edge to Point.
type LineTo struct {
	Point Point
}

func (LineTo) isSegment() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isSegment() {}

// ConicTo draws a rational quadratic Bezier curve with the given control
// weight. Conics represent circular arcs exactly.
type ConicTo struct {
	Control Point
	Point   Point
	Weight  float32
}

func (ConicTo) isSegment() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isSegment() {}

// Close closes the current subpath back to its most recent MoveTo point.
type Close struct{}

func (Close) isSegment() {}

// segmentKind returns a short name for error messages and logs.
func segmentKind(seg Segment) string {
	switch seg.(type) {
	case MoveTo:
		return "move"
	case LineTo:
		return "line"
	case QuadTo:
		return "quad"
	case ConicTo:
		return "conic"
	case CubicTo:
		return "cubic"
	case Close:
		return "close"
	default:
		return fmt.Sprintf("%T", seg)
	}
}

// Curve is an ordered sequence of segments describing zero or more subpaths.
//
// Every subpath starts with exactly one MoveTo. The builder methods never
// fail; a drawing segment appended without a preceding MoveTo is recorded
// as-is and reported by Validate (and by StrokeCurve) as ErrMalformedPath.
type Curve struct {
	segments []Segment
	start    Point // Starting point of current subpath
	current  Point // Current point
	open     bool  // A subpath is open (MoveTo seen, no Close since)
}

// NewCurve creates a new empty curve.
func NewCurve() *Curve {
	return &Curve{
		segments: make([]Segment, 0, 16),
	}
}

// MoveTo starts a new subpath at p.
func (c *Curve) MoveTo(p Point) {
	c.segments = append(c.segments, MoveTo{Point: p})
	c.start = p
	c.current = p
	c.open = true
}

// LineTo draws a straight line to p.
func (c *Curve) LineTo(p Point) {
	c.segments = append(c.segments, LineTo{Point: p})
	c.current = p
}

// QuadTo draws a quadratic Bezier curve to p.
func (c *Curve) QuadTo(control, p Point) {
	c.segments = append(c.segments, QuadTo{Control: control, Point: p})
	c.current = p
}

// ConicTo draws a conic to p with the given control weight.
func (c *Curve) ConicTo(control, p Point, weight float32) {
	c.segments = append(c.segments, ConicTo{Control: control, Point: p, Weight: weight})
	c.current = p
}

// CubicTo draws a cubic Bezier curve to p.
func (c *Curve) CubicTo(control1, control2, p Point) {
	c.segments = append(c.segments, CubicTo{Control1: control1, Control2: control2, Point: p})
	c.current = p
}

// Close closes the current subpath.
func (c *Curve) Close() {
	c.segments = append(c.segments, Close{})
	c.current = c.start
	c.open = false
}

// Append adds a single segment, updating the current point.
func (c *Curve) Append(seg Segment) {
	switch s := seg.(type) {
	case MoveTo:
		c.MoveTo(s.Point)
	case LineTo:
		c.LineTo(s.Point)
	case QuadTo:
		c.QuadTo(s.Control, s.Point)
	case ConicTo:
		c.ConicTo(s.Control, s.Point, s.Weight)
	case CubicTo:
		c.CubicTo(s.Control1, s.Control2, s.Point)
	case Close:
		c.Close()
	}
}

// AppendCurve appends every segment of other in order.
func (c *Curve) AppendCurve(other *Curve) {
	for _, seg := range other.segments {
		c.Append(seg)
	}
}

// Segments returns the segments of the curve.
// The returned slice must not be modified.
func (c *Curve) Segments() []Segment {
	return c.segments
}

// Len returns the number of segments.
func (c *Curve) Len() int {
	return len(c.segments)
}

// IsEmpty reports whether the curve has no segments.
func (c *Curve) IsEmpty() bool {
	return len(c.segments) == 0
}

// CurrentPoint returns the current point and whether one exists.
func (c *Curve) CurrentPoint() (Point, bool) {
	return c.current, len(c.segments) > 0
}

// Clear removes all segments from the curve.
func (c *Curve) Clear() {
	c.segments = c.segments[:0]
	c.start = Point{}
	c.current = Point{}
	c.open = false
}

// Clone returns an independent copy of the curve.
func (c *Curve) Clone() *Curve {
	out := *c
	out.segments = make([]Segment, len(c.segments))
	copy(out.segments, c.segments)
	return &out
}

// Equal reports whether both curves hold the same segments.
func (c *Curve) Equal(other *Curve) bool {
	if len(c.segments) != len(other.segments) {
		return false
	}
	for i := range c.segments {
		if c.segments[i] != other.segments[i] {
			return false
		}
	}
	return true
}

// Hash returns a 64-bit FNV-1a digest of the segment kinds and the bit
// patterns of all coordinates. Bit-identical curves hash identically.
func (c *Curve) Hash() uint64 {
	h := fnv.New64a()
	buf := make([]byte, 0, 32)
	for _, seg := range c.segments {
		buf = buf[:0]
		switch s := seg.(type) {
		case MoveTo:
			buf = append(buf, 'M')
			buf = appendPoint(buf, s.Point)
		case LineTo:
			buf = append(buf, 'L')
			buf = appendPoint(buf, s.Point)
		case QuadTo:
			buf = append(buf, 'Q')
			buf = appendPoint(buf, s.Control)
			buf = appendPoint(buf, s.Point)
		case ConicTo:
			buf = append(buf, 'K')
			buf = appendPoint(buf, s.Control)
			buf = appendPoint(buf, s.Point)
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(s.Weight))
		case CubicTo:
			buf = append(buf, 'C')
			buf = appendPoint(buf, s.Control1)
			buf = appendPoint(buf, s.Control2)
			buf = appendPoint(buf, s.Point)
		case Close:
			buf = append(buf, 'Z')
		}
		_, _ = h.Write(buf) // fnv.Write never returns an error
	}
	return h.Sum64()
}

func appendPoint(buf []byte, p Point) []byte {
	buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(p.X))
	return binary.LittleEndian.AppendUint32(buf, math.Float32bits(p.Y))
}

// Validate checks that every drawing segment belongs to a subpath started by
// a MoveTo and that all coordinates are finite.
func (c *Curve) Validate() error {
	open := false
	for i, seg := range c.segments {
		if _, ok := seg.(MoveTo); !ok && !open {
			return fmt.Errorf("%w: %s at segment %d has no preceding move", ErrMalformedPath, segmentKind(seg), i)
		}
		switch s := seg.(type) {
		case MoveTo:
			open = true
		case Close:
			open = false
		case ConicTo:
			if math32.IsNaN(s.Weight) || math32.IsInf(s.Weight, 0) || s.Weight <= 0 {
				return fmt.Errorf("%w: conic at segment %d has weight %v", ErrMalformedPath, i, s.Weight)
			}
		}
		if !segmentFinite(seg) {
			return fmt.Errorf("%w: %s at segment %d has non-finite coordinates", ErrMalformedPath, segmentKind(seg), i)
		}
	}
	return nil
}

func segmentFinite(seg Segment) bool {
	switch s := seg.(type) {
	case MoveTo:
		return s.Point.IsFinite()
	case LineTo:
		return s.Point.IsFinite()
	case QuadTo:
		return s.Control.IsFinite() && s.Point.IsFinite()
	case ConicTo:
		return s.Control.IsFinite() && s.Point.IsFinite()
	case CubicTo:
		return s.Control1.IsFinite() && s.Control2.IsFinite() && s.Point.IsFinite()
	}
	return true
}

// Subpaths splits the curve into one curve per subpath, in order.
// A subpath ends at the next MoveTo, after a Close, or at the end.
func (c *Curve) Subpaths() []*Curve {
	var result []*Curve
	var cur *Curve
	for _, seg := range c.segments {
		if _, ok := seg.(MoveTo); ok || cur == nil {
			cur = NewCurve()
			result = append(result, cur)
		}
		cur.Append(seg)
		if _, ok := seg.(Close); ok {
			cur = nil
		}
	}
	return result
}

// Transform returns a new curve with every point mapped through m.
// Conic weights are invariant under affine maps.
func (c *Curve) Transform(m Affine) *Curve {
	result := NewCurve()
	for _, seg := range c.segments {
		switch s := seg.(type) {
		case MoveTo:
			result.MoveTo(m.TransformPoint(s.Point))
		case LineTo:
			result.LineTo(m.TransformPoint(s.Point))
		case QuadTo:
			result.QuadTo(m.TransformPoint(s.Control), m.TransformPoint(s.Point))
		case ConicTo:
			result.ConicTo(m.TransformPoint(s.Control), m.TransformPoint(s.Point), s.Weight)
		case CubicTo:
			result.CubicTo(m.TransformPoint(s.Control1), m.TransformPoint(s.Control2), m.TransformPoint(s.Point))
		case Close:
			result.Close()
		}
	}
	return result
}

// endPoint returns the point a segment ends at, or false for Close.
func endPoint(seg Segment) (Point, bool) {
	switch s := seg.(type) {
	case MoveTo:
		return s.Point, true
	case LineTo:
		return s.Point, true
	case QuadTo:
		return s.Point, true
	case ConicTo:
		return s.Point, true
	case CubicTo:
		return s.Point, true
	}
	return Point{}, false
}

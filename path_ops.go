package outline

import (
	"fmt"

	"github.com/chewxy/math32"
)

// windingTolerance is the flattening tolerance used for curved edges when
// counting ray crossings.
const windingTolerance = 0.05

// maxFlattenDepth bounds recursive flattening for pathological input.
const maxFlattenDepth = 16

// FillRule decides point-in-region membership from edge crossings.
type FillRule int

const (
	// NonZero: a point is inside if the signed sum of edge crossings along a
	// ray from the point is non-zero.
	NonZero FillRule = iota
	// EvenOdd: a point is inside if the number of crossings is odd.
	EvenOdd
)

// String returns the SVG name of the fill rule.
func (r FillRule) String() string {
	switch r {
	case NonZero:
		return "nonzero"
	case EvenOdd:
		return "evenodd"
	default:
		return fmt.Sprintf("FillRule(%d)", int(r))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r FillRule) MarshalText() ([]byte, error) {
	switch r {
	case NonZero, EvenOdd:
		return []byte(r.String()), nil
	}
	return nil, fmt.Errorf("outline: unknown fill rule %d", int(r))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *FillRule) UnmarshalText(text []byte) error {
	switch string(text) {
	case "nonzero", "non-zero":
		*r = NonZero
	case "evenodd", "even-odd":
		*r = EvenOdd
	default:
		return fmt.Errorf("outline: unknown fill rule %q", text)
	}
	return nil
}

// Winding returns the winding number of pt relative to the curve, using a
// horizontal ray towards +x. Each subpath is implicitly closed.
// Segments that appear before any MoveTo are ignored.
func (c *Curve) Winding(pt Point) int {
	var winding int
	var current, start Point
	started := false

	closeSubpath := func() {
		if started && current != start {
			winding += lineWinding(current, start, pt)
		}
		current = start
	}

	for _, seg := range c.segments {
		if _, ok := seg.(MoveTo); !ok && !started {
			continue
		}
		switch s := seg.(type) {
		case MoveTo:
			closeSubpath()
			start = s.Point
			current = s.Point
			started = true
		case LineTo:
			winding += lineWinding(current, s.Point, pt)
			current = s.Point
		case QuadTo:
			winding += quadWinding(QuadBez{P0: current, P1: s.Control, P2: s.Point}, pt)
			current = s.Point
		case ConicTo:
			winding += conicWinding(Conic{P0: current, P1: s.Control, P2: s.Point, W: s.Weight}, pt)
			current = s.Point
		case CubicTo:
			winding += cubicWinding(CubicBez{P0: current, P1: s.Control1, P2: s.Control2, P3: s.Point}, pt)
			current = s.Point
		case Close:
			closeSubpath()
			started = false
		}
	}
	closeSubpath()

	return winding
}

// Contains tests whether pt lies inside the curve under the given fill rule.
func (c *Curve) Contains(pt Point, rule FillRule) bool {
	w := c.Winding(pt)
	if rule == EvenOdd {
		return w%2 != 0
	}
	return w != 0
}

// Area returns the signed area enclosed by the curve, with every subpath
// implicitly closed. Curved segments are flattened first. The sign follows
// the shoelace formula: positive for clockwise subpaths in a y-down
// coordinate system. Oppositely wound subpaths cancel.
func (c *Curve) Area() float32 {
	var area float32
	var start, current Point
	open := false
	closeSubpath := func() {
		if open {
			area += lineArea(current, start)
		}
		open = false
	}

	tolSq := float32(windingTolerance * windingTolerance)
	edge := func(a, b Point) { area += lineArea(a, b) }

	for _, seg := range c.segments {
		if _, ok := seg.(MoveTo); !ok && !open {
			continue
		}
		switch s := seg.(type) {
		case MoveTo:
			closeSubpath()
			start, current, open = s.Point, s.Point, true
		case LineTo:
			edge(current, s.Point)
			current = s.Point
		case QuadTo:
			flattenQuadRecursive(QuadBez{P0: current, P1: s.Control, P2: s.Point}, tolSq, 0, edge)
			current = s.Point
		case ConicTo:
			flattenConicRecursive(Conic{P0: current, P1: s.Control, P2: s.Point, W: s.Weight}, tolSq, 0, edge)
			current = s.Point
		case CubicTo:
			flattenCubicRecursive(CubicBez{P0: current, P1: s.Control1, P2: s.Control2, P3: s.Point}, tolSq, 0, edge)
			current = s.Point
		case Close:
			closeSubpath()
		}
	}
	closeSubpath()
	return area
}

// lineArea is the shoelace contribution of the edge p0-p1.
func lineArea(p0, p1 Point) float32 {
	return 0.5 * (p0.X*p1.Y - p1.X*p0.Y)
}

// lineWinding computes the winding contribution of a line segment.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		// Upward crossing
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		// Downward crossing
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float32 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// quadWinding computes the winding contribution of a quadratic Bezier.
func quadWinding(q QuadBez, pt Point) int {
	minY := math32.Min(math32.Min(q.P0.Y, q.P1.Y), q.P2.Y)
	maxY := math32.Max(math32.Max(q.P0.Y, q.P1.Y), q.P2.Y)
	if pt.Y < minY || pt.Y > maxY {
		return 0
	}
	maxX := math32.Max(math32.Max(q.P0.X, q.P1.X), q.P2.X)
	if pt.X > maxX {
		return 0
	}
	// Entirely right of the point: the net crossing equals the chord's.
	if pt.X < math32.Min(math32.Min(q.P0.X, q.P1.X), q.P2.X) {
		return lineWinding(q.P0, q.P2, pt)
	}
	var winding int
	flattenQuadRecursive(q, windingTolerance*windingTolerance, 0, func(a, b Point) {
		winding += lineWinding(a, b, pt)
	})
	return winding
}

// cubicWinding computes the winding contribution of a cubic Bezier.
func cubicWinding(c CubicBez, pt Point) int {
	minY := math32.Min(math32.Min(c.P0.Y, c.P1.Y), math32.Min(c.P2.Y, c.P3.Y))
	maxY := math32.Max(math32.Max(c.P0.Y, c.P1.Y), math32.Max(c.P2.Y, c.P3.Y))
	if pt.Y < minY || pt.Y > maxY {
		return 0
	}
	maxX := math32.Max(math32.Max(c.P0.X, c.P1.X), math32.Max(c.P2.X, c.P3.X))
	if pt.X > maxX {
		return 0
	}
	if pt.X < math32.Min(math32.Min(c.P0.X, c.P1.X), math32.Min(c.P2.X, c.P3.X)) {
		return lineWinding(c.P0, c.P3, pt)
	}
	var winding int
	flattenCubicRecursive(c, windingTolerance*windingTolerance, 0, func(a, b Point) {
		winding += lineWinding(a, b, pt)
	})
	return winding
}

// conicWinding computes the winding contribution of a conic.
// The conic lies inside the triangle of its control points for W > 0.
func conicWinding(k Conic, pt Point) int {
	minY := math32.Min(math32.Min(k.P0.Y, k.P1.Y), k.P2.Y)
	maxY := math32.Max(math32.Max(k.P0.Y, k.P1.Y), k.P2.Y)
	if pt.Y < minY || pt.Y > maxY {
		return 0
	}
	maxX := math32.Max(math32.Max(k.P0.X, k.P1.X), k.P2.X)
	if pt.X > maxX {
		return 0
	}
	if pt.X < math32.Min(math32.Min(k.P0.X, k.P1.X), k.P2.X) {
		return lineWinding(k.P0, k.P2, pt)
	}
	var winding int
	flattenConicRecursive(k, windingTolerance*windingTolerance, 0, func(a, b Point) {
		winding += lineWinding(a, b, pt)
	})
	return winding
}

// flattenQuadRecursive emits chords of q until the control point is within
// the tolerance of its chord midpoint.
func flattenQuadRecursive(q QuadBez, toleranceSq float32, depth int, fn func(a, b Point)) {
	mid := q.P0.Lerp(q.P2, 0.5)
	if depth >= maxFlattenDepth || q.P1.Sub(mid).LengthSq()*0.25 <= toleranceSq {
		fn(q.P0, q.P2)
		return
	}
	a, b := q.Subdivide()
	flattenQuadRecursive(a, toleranceSq, depth+1, fn)
	flattenQuadRecursive(b, toleranceSq, depth+1, fn)
}

// flattenCubicRecursive emits chords of c until both control points are
// close to the chord.
func flattenCubicRecursive(c CubicBez, toleranceSq float32, depth int, fn func(a, b Point)) {
	if depth >= maxFlattenDepth || cubicFlatness(c) <= 16*toleranceSq {
		fn(c.P0, c.P3)
		return
	}
	a, b := c.Subdivide()
	flattenCubicRecursive(a, toleranceSq, depth+1, fn)
	flattenCubicRecursive(b, toleranceSq, depth+1, fn)
}

// cubicFlatness returns a bound on the squared distance between the curve
// and its chord, scaled by 16.
func cubicFlatness(c CubicBez) float32 {
	ux := 3.0*c.P1.X - 2.0*c.P0.X - c.P3.X
	uy := 3.0*c.P1.Y - 2.0*c.P0.Y - c.P3.Y
	vx := 3.0*c.P2.X - c.P0.X - 2.0*c.P3.X
	vy := 3.0*c.P2.Y - c.P0.Y - 2.0*c.P3.Y

	return math32.Max(ux*ux+uy*uy, vx*vx+vy*vy)
}

// flattenConicRecursive emits chords of k until the curve midpoint is within
// the tolerance of the chord midpoint.
func flattenConicRecursive(k Conic, toleranceSq float32, depth int, fn func(a, b Point)) {
	mid := k.Eval(0.5)
	chordMid := k.P0.Lerp(k.P2, 0.5)
	if depth >= maxFlattenDepth || mid.Sub(chordMid).LengthSq() <= toleranceSq {
		fn(k.P0, k.P2)
		return
	}
	a, b := k.Split(0.5)
	flattenConicRecursive(a, toleranceSq, depth+1, fn)
	flattenConicRecursive(b, toleranceSq, depth+1, fn)
}

// Flatten walks the curve as a polyline, calling fn for every edge. Curved
// segments are subdivided until within tolerance of the true curve. The
// implicit closing edge of closed subpaths is included.
func (c *Curve) Flatten(tolerance float32, fn func(a, b Point)) {
	if tolerance <= 0 {
		tolerance = windingTolerance
	}
	tolSq := tolerance * tolerance

	var current, start Point
	for _, seg := range c.segments {
		switch s := seg.(type) {
		case MoveTo:
			start = s.Point
			current = s.Point
		case LineTo:
			fn(current, s.Point)
			current = s.Point
		case QuadTo:
			flattenQuadRecursive(QuadBez{P0: current, P1: s.Control, P2: s.Point}, tolSq, 0, fn)
			current = s.Point
		case ConicTo:
			flattenConicRecursive(Conic{P0: current, P1: s.Control, P2: s.Point, W: s.Weight}, tolSq, 0, fn)
			current = s.Point
		case CubicTo:
			flattenCubicRecursive(CubicBez{P0: current, P1: s.Control1, P2: s.Control2, P3: s.Point}, tolSq, 0, fn)
			current = s.Point
		case Close:
			if current != start {
				fn(current, start)
			}
			current = start
		}
	}
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
// Conics are bounded by their control polygon.
func (c *Curve) BoundingBox() Rect {
	var bbox Rect
	first := true
	add := func(r Rect) {
		if first {
			bbox = r
			first = false
			return
		}
		bbox = bbox.Union(r)
	}

	var current Point
	for _, seg := range c.segments {
		switch s := seg.(type) {
		case MoveTo:
			add(NewRect(s.Point, s.Point))
			current = s.Point
		case LineTo:
			add(NewRect(current, s.Point))
			current = s.Point
		case QuadTo:
			add(QuadBez{P0: current, P1: s.Control, P2: s.Point}.BoundingBox())
			current = s.Point
		case ConicTo:
			add(NewRect(current, s.Point).Union(NewRect(s.Control, s.Control)))
			current = s.Point
		case CubicTo:
			add(CubicBez{P0: current, P1: s.Control1, P2: s.Control2, P3: s.Point}.BoundingBox())
			current = s.Point
		}
	}
	return bbox
}

// AppendReverse appends other's drawing segments in reverse traversal order,
// each one reversed in direction: lines run back to their start, quadratics
// and conics keep their control point (and weight), cubics swap their
// control points. A Close in other is reversed as its implicit closing line.
//
// If c has no open subpath the reversed run starts with a MoveTo at other's
// final point; otherwise a LineTo connects c's current point to it when they
// differ. Subpath boundaries inside other become LineTo connections.
func (c *Curve) AppendReverse(other *Curve) {
	segs := other.segments
	if len(segs) == 0 {
		return
	}

	// starts[i] is the point segment i begins at; for Close it is the point
	// the closing line begins at.
	starts := make([]Point, len(segs))
	subStarts := make([]Point, len(segs))
	var current, start Point
	for i, seg := range segs {
		starts[i] = current
		subStarts[i] = start
		switch s := seg.(type) {
		case MoveTo:
			start = s.Point
			current = s.Point
		case Close:
			current = start
		default:
			current, _ = endPoint(s)
		}
	}

	connect := func(p Point) {
		if !c.open {
			c.MoveTo(p)
			return
		}
		if c.current != p {
			c.LineTo(p)
		}
	}

	for i := len(segs) - 1; i >= 0; i-- {
		switch s := segs[i].(type) {
		case MoveTo:
			continue
		case LineTo:
			connect(s.Point)
			c.LineTo(starts[i])
		case QuadTo:
			connect(s.Point)
			c.QuadTo(s.Control, starts[i])
		case ConicTo:
			connect(s.Point)
			c.ConicTo(s.Control, starts[i], s.Weight)
		case CubicTo:
			connect(s.Point)
			c.CubicTo(s.Control2, s.Control1, starts[i])
		case Close:
			if starts[i] != subStarts[i] {
				connect(subStarts[i])
				c.LineTo(starts[i])
			}
		}
	}
}

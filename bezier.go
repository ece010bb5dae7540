package outline

import "github.com/chewxy/math32"

// Bezier primitives used by the path model and the stroker.
// Based on kurbo patterns, adapted to float32.

// Rect represents an axis-aligned rectangle.
// Min is the corner with the smallest coordinates.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math32.Min(p1.X, p2.X), Y: math32.Min(p1.Y, p2.Y)},
		Max: Point{X: math32.Max(p1.X, p2.X), Y: math32.Max(p1.Y, p2.Y)},
	}
}

// RectXYWH creates a rectangle from its origin and size.
func RectXYWH(x, y, w, h float32) Rect {
	return NewRect(Pt(x, y), Pt(x+w, y+h))
}

// Width returns the width of the rectangle.
func (r Rect) Width() float32 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float32 {
	return r.Max.Y - r.Min.Y
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math32.Min(r.Min.X, other.Min.X), Y: math32.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math32.Max(r.Max.X, other.Max.X), Y: math32.Max(r.Max.Y, other.Max.Y)},
	}
}

// Contains returns true if the point is inside the rectangle (edges included).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Outset returns the rectangle grown by d on every side (shrunk for d < 0).
func (r Rect) Outset(d float32) Rect {
	return Rect{
		Min: Point{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Point{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// -------------------------------------------------------------------
// QuadBez
// -------------------------------------------------------------------

// QuadBez represents a quadratic Bezier curve.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t using de Casteljau's algorithm.
func (q QuadBez) Eval(t float32) Point {
	p01 := q.P0.Lerp(q.P1, t)
	p12 := q.P1.Lerp(q.P2, t)
	return p01.Lerp(p12, t)
}

// Tangent returns the (unnormalized) tangent direction at t.
func (q QuadBez) Tangent(t float32) Vec2 {
	p01 := q.P0.Lerp(q.P1, t)
	p12 := q.P1.Lerp(q.P2, t)
	return p12.Sub(p01)
}

// Normal returns the unit normal at t.
// Where the derivative vanishes (a control point coinciding with an end
// point) the chord direction is used; a fully degenerate curve yields zero.
func (q QuadBez) Normal(t float32) Vec2 {
	n := q.Tangent(t).Hat().Normalize()
	if n.IsZero() {
		n = q.P2.Sub(q.P0).Hat().Normalize()
	}
	return n
}

// Split divides the curve at t into two curves using de Casteljau.
func (q QuadBez) Split(t float32) (QuadBez, QuadBez) {
	p01 := q.P0.Lerp(q.P1, t)
	p12 := q.P1.Lerp(q.P2, t)
	mid := p01.Lerp(p12, t)
	return QuadBez{P0: q.P0, P1: p01, P2: mid}, QuadBez{P0: mid, P1: p12, P2: q.P2}
}

// Subdivide splits the curve at t=0.5.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	return q.Split(0.5)
}

// IsDegenerate reports whether all control points coincide.
func (q QuadBez) IsDegenerate() bool {
	return q.P0 == q.P1 && q.P1 == q.P2
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (q QuadBez) BoundingBox() Rect {
	bbox := NewRect(q.P0, q.P2)

	// The derivative is linear: t = (P0-P1) / (P0-2P1+P2) per axis.
	d0 := q.P1.Sub(q.P0)
	dd := q.P2.Sub(q.P1).Sub(d0)
	if dd.X != 0 {
		if t := -d0.X / dd.X; t > 0 && t < 1 {
			p := q.Eval(t)
			bbox = bbox.Union(NewRect(p, p))
		}
	}
	if dd.Y != 0 {
		if t := -d0.Y / dd.Y; t > 0 && t < 1 {
			p := q.Eval(t)
			bbox = bbox.Union(NewRect(p, p))
		}
	}
	return bbox
}

// -------------------------------------------------------------------
// Conic
// -------------------------------------------------------------------

// Conic is a rational quadratic Bezier curve with end weights 1 and control
// weight W. W < 1 gives an ellipse arc, W == 1 a parabola (plain quadratic).
type Conic struct {
	P0, P1, P2 Point
	W          float32
}

// Eval evaluates the conic at t.
func (c Conic) Eval(t float32) Point {
	mt := 1 - t
	a := mt * mt
	b := 2 * c.W * mt * t
	d := t * t
	den := a + b + d
	return Point{
		X: (a*c.P0.X + b*c.P1.X + d*c.P2.X) / den,
		Y: (a*c.P0.Y + b*c.P1.Y + d*c.P2.Y) / den,
	}
}

// Tangent returns the (unnormalized) tangent direction at t.
func (c Conic) Tangent(t float32) Vec2 {
	// With N(t) the weighted numerator and D(t) the weight sum,
	// P'(t) = (N'D - ND') / D^2; only the direction matters here.
	mt := 1 - t
	a, b, d := mt*mt, 2*c.W*mt*t, t*t
	da, db, dd := -2*mt, 2*c.W*(1-2*t), 2*t

	den := a + b + d
	dden := da + db + dd

	nx := a*c.P0.X + b*c.P1.X + d*c.P2.X
	ny := a*c.P0.Y + b*c.P1.Y + d*c.P2.Y
	dnx := da*c.P0.X + db*c.P1.X + dd*c.P2.X
	dny := da*c.P0.Y + db*c.P1.Y + dd*c.P2.Y

	return Vec2{X: dnx*den - nx*dden, Y: dny*den - ny*dden}
}

// Normal returns the unit normal at t, falling back to the chord direction
// where the derivative vanishes.
func (c Conic) Normal(t float32) Vec2 {
	n := c.Tangent(t).Hat().Normalize()
	if n.IsZero() {
		n = c.P2.Sub(c.P0).Hat().Normalize()
	}
	return n
}

// Split divides the conic at t. Both halves are returned in standard form
// (end weights 1).
func (c Conic) Split(t float32) (Conic, Conic) {
	// de Casteljau in homogeneous coordinates.
	type hpoint struct{ x, y, w float32 }
	lerp := func(a, b hpoint) hpoint {
		return hpoint{a.x + (b.x-a.x)*t, a.y + (b.y-a.y)*t, a.w + (b.w-a.w)*t}
	}
	h0 := hpoint{c.P0.X, c.P0.Y, 1}
	h1 := hpoint{c.P1.X * c.W, c.P1.Y * c.W, c.W}
	h2 := hpoint{c.P2.X, c.P2.Y, 1}

	h01 := lerp(h0, h1)
	h12 := lerp(h1, h2)
	h012 := lerp(h01, h12)

	mid := Point{X: h012.x / h012.w, Y: h012.y / h012.w}
	root := math32.Sqrt(h012.w)

	return Conic{
			P0: c.P0,
			P1: Point{X: h01.x / h01.w, Y: h01.y / h01.w},
			P2: mid,
			W:  h01.w / root,
		}, Conic{
			P0: mid,
			P1: Point{X: h12.x / h12.w, Y: h12.y / h12.w},
			P2: c.P2,
			W:  h12.w / root,
		}
}

// IsDegenerate reports whether all control points coincide.
func (c Conic) IsDegenerate() bool {
	return c.P0 == c.P1 && c.P1 == c.P2
}

// -------------------------------------------------------------------
// CubicBez
// -------------------------------------------------------------------

// CubicBez represents a cubic Bezier curve.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t using de Casteljau's algorithm.
func (c CubicBez) Eval(t float32) Point {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	return p012.Lerp(p123, t)
}

// Tangent returns the (unnormalized) tangent direction at t.
func (c CubicBez) Tangent(t float32) Vec2 {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	return p123.Sub(p012)
}

// Normal returns the unit normal at t.
// When the derivative vanishes at an end point, the nearest distinct control
// point defines the direction instead.
func (c CubicBez) Normal(t float32) Vec2 {
	n := c.Tangent(t).Hat().Normalize()
	if !n.IsZero() {
		return n
	}
	var candidates [3]Vec2
	if t < 0.5 {
		candidates = [3]Vec2{c.P2.Sub(c.P0), c.P3.Sub(c.P0), c.P3.Sub(c.P1)}
	} else {
		candidates = [3]Vec2{c.P3.Sub(c.P1), c.P3.Sub(c.P0), c.P2.Sub(c.P0)}
	}
	for _, d := range candidates {
		if n := d.Hat().Normalize(); !n.IsZero() {
			return n
		}
	}
	return Vec2{}
}

// Split divides the curve at t into two curves using de Casteljau.
func (c CubicBez) Split(t float32) (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, t)
	p12 := c.P1.Lerp(c.P2, t)
	p23 := c.P2.Lerp(c.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	mid := p012.Lerp(p123, t)

	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// Subdivide splits the curve at t=0.5.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	return c.Split(0.5)
}

// IsDegenerate reports whether all control points coincide.
func (c CubicBez) IsDegenerate() bool {
	return c.P0 == c.P1 && c.P1 == c.P2 && c.P2 == c.P3
}

// BoundingBox returns the tight axis-aligned bounding box of the curve.
func (c CubicBez) BoundingBox() Rect {
	bbox := NewRect(c.P0, c.P3)

	d0 := c.P1.Sub(c.P0)
	d1 := c.P2.Sub(c.P1)
	d2 := c.P3.Sub(c.P2)

	// B'(t)/3 = a*t^2 + b*t + c per axis.
	for _, t := range solveQuadraticUnit(d0.X-2*d1.X+d2.X, 2*(d1.X-d0.X), d0.X) {
		p := c.Eval(t)
		bbox = bbox.Union(NewRect(p, p))
	}
	for _, t := range solveQuadraticUnit(d0.Y-2*d1.Y+d2.Y, 2*(d1.Y-d0.Y), d0.Y) {
		p := c.Eval(t)
		bbox = bbox.Union(NewRect(p, p))
	}
	return bbox
}

// solveQuadraticUnit returns the roots of a*t^2 + b*t + c in (0, 1).
func solveQuadraticUnit(a, b, c float32) []float32 {
	var roots []float32
	add := func(t float32) {
		if t > 0 && t < 1 {
			roots = append(roots, t)
		}
	}
	if math32.Abs(a) < 1e-9 {
		if b != 0 {
			add(-c / b)
		}
		return roots
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return roots
	}
	sq := math32.Sqrt(disc)
	add((-b + sq) / (2 * a))
	add((-b - sq) / (2 * a))
	return roots
}

package outline

import "github.com/chewxy/math32"

// offsetter approximates offset curves by recursive subdivision.
//
// Lines are offset exactly. Curves are offset by displacing their control
// polygon along normals sampled on the curve. The candidate at the
// reference parameter is compared with the source point there displaced
// along the start normal; it is accepted when that distance is within the
// error bound, or when the depth limit is reached. Otherwise the
// source curve is split at the reference parameter and both halves are
// offset independently. A source curve yields at most 2^maxDepth pieces.
type offsetter struct {
	maxDepth int
	maxError float32

	// leaves counts emitted curve pieces, capped counts pieces accepted
	// only because the depth limit was reached.
	leaves int
	capped int
}

func newOffsetter(o strokeOptions) *offsetter {
	return &offsetter{maxDepth: o.maxDepth, maxError: o.maxError}
}

// line offsets the segment p0-p1 by r along n, the segment's unit normal.
// The start of the offset is the current point of dst.
func (o *offsetter) line(dst *Curve, p1 Point, n Vec2, r float32) {
	dst.LineTo(p1.Add(n.Scale(r)))
}

// quad offsets q by r, emitting quadratic pieces.
func (o *offsetter) quad(dst *Curve, q QuadBez, r float32, depth int) {
	n0 := q.Normal(0)
	nm := q.Normal(0.5)
	n2 := q.Normal(1)

	cand := QuadBez{
		P0: q.P0.Add(n0.Scale(r)),
		P1: q.P1.Add(nm.Scale(r)),
		P2: q.P2.Add(n2.Scale(r)),
	}

	want := q.Eval(0.5).Add(n0.Scale(r))
	err := cand.Eval(0.5).Distance(want)

	if err < o.maxError || depth >= o.maxDepth {
		o.accept(err >= o.maxError)
		dst.QuadTo(cand.P1, cand.P2)
		return
	}

	a, b := q.Split(0.5)
	o.quad(dst, a, r, depth+1)
	o.quad(dst, b, r, depth+1)
}

// conic offsets k by r, emitting conic pieces that keep the source weight
// of each piece.
func (o *offsetter) conic(dst *Curve, k Conic, r float32, depth int) {
	n0 := k.Normal(0)
	nm := k.Normal(0.5)
	n2 := k.Normal(1)

	cand := Conic{
		P0: k.P0.Add(n0.Scale(r)),
		P1: k.P1.Add(nm.Scale(r)),
		P2: k.P2.Add(n2.Scale(r)),
		W:  k.W,
	}

	want := k.Eval(0.5).Add(n0.Scale(r))
	err := cand.Eval(0.5).Distance(want)

	if err < o.maxError || depth >= o.maxDepth {
		o.accept(err >= o.maxError)
		dst.ConicTo(cand.P1, cand.P2, cand.W)
		return
	}

	a, b := k.Split(0.5)
	o.conic(dst, a, r, depth+1)
	o.conic(dst, b, r, depth+1)
}

// cubic offsets c by r, emitting cubic pieces. The error bound scales with
// the offset distance.
func (o *offsetter) cubic(dst *Curve, c CubicBez, r float32, depth int) {
	const third = float32(1.0 / 3.0)

	n0 := c.Normal(0)
	n1 := c.Normal(third)
	n2 := c.Normal(2 * third)
	n3 := c.Normal(1)

	cand := CubicBez{
		P0: c.P0.Add(n0.Scale(r)),
		P1: c.P1.Add(n1.Scale(r)),
		P2: c.P2.Add(n2.Scale(r)),
		P3: c.P3.Add(n3.Scale(r)),
	}

	want := c.Eval(third).Add(n0.Scale(r))
	err := cand.Eval(third).Distance(want)
	limit := math32.Abs(r) * o.maxError

	if err < limit || depth >= o.maxDepth {
		o.accept(err >= limit)
		dst.CubicTo(cand.P1, cand.P2, cand.P3)
		return
	}

	a, b := c.Split(third)
	o.cubic(dst, a, r, depth+1)
	o.cubic(dst, b, r, depth+1)
}

func (o *offsetter) accept(capped bool) {
	o.leaves++
	if capped {
		o.capped++
	}
}

package outline

import "github.com/chewxy/math32"

// roundCapHandle is the cubic handle length, as a fraction of the radius,
// used to approximate each quarter of a round cap.
const roundCapHandle = 0.55

// sameNormalEpsilon is the per-component distance under which two unit
// normals are treated as equal and no join geometry is emitted.
const sameNormalEpsilon = 1e-6

// join connects the offset of the incoming segment (normal n0) to the offset
// of the outgoing segment (normal n1) around pivot, at signed distance r.
// The current point of dst is expected at pivot + n0*r.
func join(dst *Curve, pivot Point, n0, n1 Vec2, r float32, style LineJoin, miterLimit float32) {
	p1 := pivot.Add(n1.Scale(r))

	if n0.Approx(n1, sameNormalEpsilon) {
		if cur, _ := dst.CurrentPoint(); cur != p1 {
			dst.LineTo(p1)
		}
		return
	}

	// Inner side of the turn: the overlap is discarded by the NonZero rule.
	if n0.Cross(n1)*r > 0 {
		dst.LineTo(p1)
		return
	}

	switch style {
	case LineJoinMiter:
		miterJoin(dst, pivot, n0, n1, r, miterLimit)
	case LineJoinRound:
		roundJoin(dst, pivot, n0, n1, r)
	default:
		dst.LineTo(p1)
	}
}

// miterJoin extends both offset edges to their intersection, or bevels
// when the miter ratio reaches the limit.
func miterJoin(dst *Curve, pivot Point, n0, n1 Vec2, r, limit float32) {
	p1 := pivot.Add(n1.Scale(r))

	m := n0.Add(n1).Normalize()
	amount := m.Dot(n1)
	if m.IsZero() || 1/amount >= limit {
		dst.LineTo(p1)
		return
	}

	dst.LineTo(pivot.Add(m.Scale(r / amount)))
	dst.LineTo(p1)
}

// roundJoin emits a circular arc of radius |r| around pivot as two conics.
// Each conic spans half the turn and is an exact circle arc.
func roundJoin(dst *Curve, pivot Point, n0, n1 Vec2, r float32) {
	nmid := n0.Add(n1).Normalize()
	if nmid.IsZero() {
		// Full reversal: only the positive side wraps around the tip, the
		// other side crosses straight over the pivot.
		if r < 0 {
			dst.LineTo(pivot.Add(n1.Scale(r)))
			return
		}
		nmid = n0.Hat().Neg()
	}

	w := math32.Sqrt((1 + n0.Dot(nmid)) / 2)

	c0 := pivot.Add(n0.Add(nmid).Normalize().Scale(r / w))
	c1 := pivot.Add(n1.Add(nmid).Normalize().Scale(r / w))

	dst.ConicTo(c0, pivot.Add(nmid.Scale(r)), w)
	dst.ConicTo(c1, pivot.Add(n1.Scale(r)), w)
}

// lineCap closes an open end at p. n is the outward normal of the side
// being finished, t the outward tangent, and r the half-width. The current
// point of dst is expected at p - n*r; the cap ends at p + n*r.
func lineCap(dst *Curve, p Point, n, t Vec2, r float32, style LineCap) {
	p0 := p.Add(n.Scale(-r))
	p1 := p.Add(n.Scale(r))

	switch style {
	case LineCapRound:
		handleT := t.Scale(r * roundCapHandle)
		handleN := n.Scale(r * roundCapHandle)
		c := p.Add(t.Scale(r))

		dst.CubicTo(p0.Add(handleT), c.Add(handleN.Neg()), c)
		dst.CubicTo(c.Add(handleN), p1.Add(handleT), p1)
	case LineCapSquare:
		ext := t.Scale(r)

		dst.LineTo(p0.Add(ext))
		dst.LineTo(p1.Add(ext))
		dst.LineTo(p1)
	default:
		dst.LineTo(p1)
	}
}

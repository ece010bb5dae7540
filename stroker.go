package outline

import (
	"fmt"

	"github.com/gogpu/outline/internal/parallel"
)

// StrokeCurve converts c into a closed outline of the stroke s.
//
// The result is a new curve meant to be filled with the NonZero rule. An open
// subpath becomes one contour capped at both ends; a closed subpath becomes
// two oppositely wound contours bounding the stroke band. Subpaths without
// a drawable segment contribute nothing, and zero-length segments are
// skipped.
//
// StrokeCurve never modifies c. Identical inputs produce bit-identical
// output, including when WithWorkers is used.
//
// Errors: ErrInvalidStroke for an unusable stroke, ErrMalformedPath when c
// fails Validate.
func StrokeCurve(c *Curve, s Stroke, opts ...StrokeOption) (*Curve, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("stroke: %w", err)
	}

	o := defaultStrokeOptions()
	for _, opt := range opts {
		opt(&o)
	}

	subpaths := c.Subpaths()
	parts := make([]strokeResult, len(subpaths))
	st := &stroker{style: s, r: s.Width / 2, opts: o}

	if o.workers > 1 && len(subpaths) > 1 {
		pool := parallel.NewWorkerPool(min(o.workers, len(subpaths)))
		pool.Map(len(subpaths), func(i int) {
			parts[i] = st.subpath(subpaths[i])
		})
		pool.Close()
	} else {
		for i, sub := range subpaths {
			parts[i] = st.subpath(sub)
		}
	}

	out := NewCurve()
	var leaves, capped, skipped int
	for _, p := range parts {
		out.AppendCurve(p.curve)
		leaves += p.leaves
		capped += p.capped
		skipped += p.skipped
	}

	Logger().Debug("outline: stroke",
		"segments", c.Len(),
		"subpaths", len(subpaths),
		"output", out.Len(),
		"leaves", leaves,
		"depthCapped", capped,
		"skipped", skipped,
		"workers", o.workers)

	return out, nil
}

// Stroke is shorthand for StrokeCurve(c, s) with default options.
func (c *Curve) Stroke(s Stroke) (*Curve, error) {
	return StrokeCurve(c, s)
}

// stroker holds the immutable inputs of one StrokeCurve call.
// It is shared by all workers; per-subpath state lives in walkState.
type stroker struct {
	style Stroke
	r     float32
	opts  strokeOptions
}

// anchor is where the first drawable segment of a subpath starts.
type anchor struct {
	point  Point
	normal Vec2
}

// walkState is the state carried from one segment to the next.
type walkState struct {
	pos     Point
	normal  Vec2 // end normal of the previous drawable segment
	started bool // a drawable segment has been emitted; first and normal are set
	first   anchor
}

// strokeResult is the outline of one subpath plus its statistics.
type strokeResult struct {
	curve   *Curve
	leaves  int
	capped  int
	skipped int
}

// walk holds the two offset sides of the subpath being stroked: out at +r
// and outside at -r. Both are built in lockstep from the same segments.
type walk struct {
	*stroker
	off     *offsetter
	out     *Curve
	outside *Curve
	skipped int
}

// subpath strokes a single subpath (as produced by Curve.Subpaths).
func (s *stroker) subpath(sub *Curve) strokeResult {
	w := &walk{
		stroker: s,
		off:     newOffsetter(s.opts),
		out:     NewCurve(),
		outside: NewCurve(),
	}

	var st walkState
	for _, seg := range sub.segments {
		st = w.step(st, seg)
	}
	w.finishOpen(st)

	return strokeResult{
		curve:   w.out,
		leaves:  w.off.leaves,
		capped:  w.off.capped,
		skipped: w.skipped,
	}
}

// step advances the walk over one segment and returns the new state.
func (w *walk) step(st walkState, seg Segment) walkState {
	switch s := seg.(type) {
	case MoveTo:
		w.finishOpen(st)
		return walkState{pos: s.Point}
	case Close:
		return w.close(st)
	}

	end, _ := endPoint(seg)
	n1, nEnd := segmentNormals(st.pos, seg)
	if n1.IsZero() {
		w.skipped++
		st.pos = end
		return st
	}

	st = w.begin(st, n1)

	switch s := seg.(type) {
	case LineTo:
		w.off.line(w.out, s.Point, n1, w.r)
		w.off.line(w.outside, s.Point, n1, -w.r)
	case QuadTo:
		q := QuadBez{P0: st.pos, P1: s.Control, P2: s.Point}
		w.off.quad(w.out, q, w.r, 0)
		w.off.quad(w.outside, q, -w.r, 0)
	case ConicTo:
		k := Conic{P0: st.pos, P1: s.Control, P2: s.Point, W: s.Weight}
		w.off.conic(w.out, k, w.r, 0)
		w.off.conic(w.outside, k, -w.r, 0)
	case CubicTo:
		c := CubicBez{P0: st.pos, P1: s.Control1, P2: s.Control2, P3: s.Point}
		w.off.cubic(w.out, c, w.r, 0)
		w.off.cubic(w.outside, c, -w.r, 0)
	}

	st.normal = nEnd
	st.pos = end
	return st
}

// begin connects both sides to a segment starting at st.pos with normal n1:
// a join after a previous segment, or the start of both offset contours.
func (w *walk) begin(st walkState, n1 Vec2) walkState {
	if st.started {
		join(w.out, st.pos, st.normal, n1, w.r, w.style.Join, w.style.MiterLimit)
		join(w.outside, st.pos, st.normal, n1, -w.r, w.style.Join, w.style.MiterLimit)
		return st
	}

	w.out.MoveTo(st.pos.Add(n1.Scale(w.r)))
	w.outside.MoveTo(st.pos.Add(n1.Scale(-w.r)))
	st.started = true
	st.first = anchor{point: st.pos, normal: n1}
	return st
}

// close finishes a closed subpath as two contours: the +r side, and the -r
// side reversed so the band between them has non-zero winding.
func (w *walk) close(st walkState) walkState {
	if !st.started {
		return walkState{pos: st.pos}
	}
	first := st.first

	if st.pos != first.point {
		if n := first.point.Sub(st.pos).Hat().Normalize(); !n.IsZero() {
			join(w.out, st.pos, st.normal, n, w.r, w.style.Join, w.style.MiterLimit)
			join(w.outside, st.pos, st.normal, n, -w.r, w.style.Join, w.style.MiterLimit)
			w.off.line(w.out, first.point, n, w.r)
			w.off.line(w.outside, first.point, n, -w.r)
			st.normal = n
		}
	}

	join(w.out, first.point, st.normal, first.normal, w.r, w.style.Join, w.style.MiterLimit)
	join(w.outside, first.point, st.normal, first.normal, -w.r, w.style.Join, w.style.MiterLimit)

	w.out.Close()
	w.out.MoveTo(first.point.Add(first.normal.Scale(-w.r)))
	w.out.AppendReverse(w.outside)
	w.out.Close()
	w.outside.Clear()

	return walkState{pos: first.point}
}

// finishOpen caps an open subpath: end cap, the -r side reversed, start cap.
func (w *walk) finishOpen(st walkState) {
	if !st.started {
		return
	}
	r := w.r
	n0 := st.normal

	lineCap(w.out, st.pos, n0.Neg(), n0.Hat().Neg(), r, w.style.Cap)
	w.out.AppendReverse(w.outside)
	lineCap(w.out, st.first.point, st.first.normal, st.first.normal.Hat(), r, w.style.Cap)
	w.out.Close()
	w.outside.Clear()
}

// segmentNormals returns the unit normals at the start and end of a drawing
// segment starting at p0. Both are zero for a zero-length segment.
func segmentNormals(p0 Point, seg Segment) (start, end Vec2) {
	switch s := seg.(type) {
	case LineTo:
		n := s.Point.Sub(p0).Hat().Normalize()
		return n, n
	case QuadTo:
		q := QuadBez{P0: p0, P1: s.Control, P2: s.Point}
		if q.IsDegenerate() {
			return Vec2{}, Vec2{}
		}
		return q.Normal(0), q.Normal(1)
	case ConicTo:
		k := Conic{P0: p0, P1: s.Control, P2: s.Point, W: s.Weight}
		if k.IsDegenerate() {
			return Vec2{}, Vec2{}
		}
		return k.Normal(0), k.Normal(1)
	case CubicTo:
		c := CubicBez{P0: p0, P1: s.Control1, P2: s.Control2, P3: s.Point}
		if c.IsDegenerate() {
			return Vec2{}, Vec2{}
		}
		return c.Normal(0), c.Normal(1)
	}
	return Vec2{}, Vec2{}
}

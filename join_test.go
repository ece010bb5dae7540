package outline

import (
	"math"
	"testing"

	"github.com/chewxy/math32"
)

// turnNormals returns the normals of a horizontal incoming segment and an
// outgoing segment turned by angle radians.
func turnNormals(angle float64) (n0, n1 Vec2) {
	sin, cos := math32.Sincos(float32(angle))
	return V2(1, 0).Hat(), V2(cos, sin).Hat()
}

func joinCurve(pivot Point, n0, n1 Vec2, r float32, style LineJoin, limit float32) *Curve {
	c := NewCurve()
	c.MoveTo(pivot.Add(n0.Scale(r)))
	join(c, pivot, n0, n1, r, style, limit)
	return c
}

func TestJoin_ConcaveSideIsSingleLine(t *testing.T) {
	pivot := Pt(10, 0)
	n0, n1 := V2(0, 1), V2(-1, 0)

	for _, style := range []LineJoin{LineJoinMiter, LineJoinRound, LineJoinBevel} {
		t.Run(style.String(), func(t *testing.T) {
			// A left turn puts the positive side on the inside.
			c := joinCurve(pivot, n0, n1, 1, style, 4)
			want := []Segment{
				MoveTo{Point: Pt(10, 1)},
				LineTo{Point: Pt(9, 0)},
			}
			assertSegments(t, c, want)
		})
	}
}

func TestJoin_RightAngleMiter(t *testing.T) {
	pivot := Pt(10, 0)
	n0, n1 := turnNormals(math.Pi / 2)

	c := joinCurve(pivot, n0, n1, -1, LineJoinMiter, 4)
	segs := c.Segments()
	if len(segs) != 3 {
		t.Fatalf("got %d segments %v, want MoveTo + 2 LineTo", len(segs), segs)
	}
	apex := segs[1].(LineTo).Point
	if !apex.Vec2().Approx(V2(11, -1), 1e-5) {
		t.Errorf("miter apex = %v, want (11, -1)", apex)
	}
	end := segs[2].(LineTo).Point
	if !end.Vec2().Approx(V2(11, 0), 1e-5) {
		t.Errorf("join end = %v, want (11, 0)", end)
	}
}

func TestJoin_MiterEqualsBevelAtLimit(t *testing.T) {
	pivot := Pt(3, 4)
	tests := []struct {
		name     string
		angle    float64
		limit    float32
		wantApex bool
	}{
		{"90deg under limit", math.Pi / 2, 4, true},
		{"90deg over limit", math.Pi / 2, 1.2, false},
		{"150deg under limit", 150 * math.Pi / 180, 4, true},
		{"150deg over limit", 150 * math.Pi / 180, 3.5, false},
		{"near reversal", 179 * math.Pi / 180, 10, false},
		{"limit one", math.Pi / 4, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n0, n1 := turnNormals(tt.angle)
			miter := joinCurve(pivot, n0, n1, -2, LineJoinMiter, tt.limit)
			bevel := joinCurve(pivot, n0, n1, -2, LineJoinBevel, tt.limit)

			if tt.wantApex {
				if miter.Len() != bevel.Len()+1 {
					t.Errorf("miter has %d segments, want bevel's %d plus an apex", miter.Len(), bevel.Len())
				}
				return
			}
			if !miter.Equal(bevel) {
				t.Errorf("miter over the limit = %v, want bevel %v", miter.Segments(), bevel.Segments())
			}
		})
	}
}

func TestJoin_MiterRatioAtExactLimit(t *testing.T) {
	// 1/cos(45deg) is the ratio of a right angle; a limit at exactly that
	// ratio bevels.
	n0, n1 := turnNormals(math.Pi / 2)
	m := n0.Add(n1).Normalize()
	ratio := 1 / m.Dot(n1)

	miter := joinCurve(Pt(0, 0), n0, n1, -1, LineJoinMiter, ratio)
	bevel := joinCurve(Pt(0, 0), n0, n1, -1, LineJoinBevel, ratio)
	if !miter.Equal(bevel) {
		t.Error("miter at exactly the limit ratio should equal bevel")
	}
}

func TestJoin_RoundStaysOnCircle(t *testing.T) {
	pivot := Pt(5, 5)
	angles := []float64{0.1, math.Pi / 4, math.Pi / 2, 2.5, 179.9 * math.Pi / 180, math.Pi}

	for _, angle := range angles {
		for _, r := range []float32{-3, 3} {
			n0, n1 := turnNormals(angle)
			if n0.Cross(n1)*r > 0 {
				continue // inner side, no arc
			}
			c := joinCurve(pivot, n0, n1, r, LineJoinRound, 4)

			conics := 0
			forEachConic(c, func(k Conic) {
				conics++
				for i := 0; i <= 20; i++ {
					p := k.Eval(float32(i) / 20)
					d := p.Distance(pivot)
					if math32.Abs(d-math32.Abs(r)) > 1e-4*math32.Abs(r) {
						t.Errorf("angle %v r %v: point %v at distance %v, want %v", angle, r, p, d, math32.Abs(r))
					}
				}
			})
			if conics != 2 {
				t.Errorf("angle %v r %v: %d conics, want 2", angle, r, conics)
			}

			end, _ := c.CurrentPoint()
			if want := pivot.Add(n1.Scale(r)); !end.Vec2().Approx(want.Vec2(), 1e-4) {
				t.Errorf("angle %v r %v: arc ends at %v, want %v", angle, r, end, want)
			}
		}
	}
}

func TestJoin_RoundReversalWrapsOneSide(t *testing.T) {
	pivot := Pt(0, 0)
	n0, n1 := V2(0, 1), V2(0, -1)

	pos := joinCurve(pivot, n0, n1, 1, LineJoinRound, 4)
	neg := joinCurve(pivot, n0, n1, -1, LineJoinRound, 4)

	// The positive side goes around the tip, through the point ahead of
	// the pivot along the incoming direction.
	mid := pos.Segments()[1].(ConicTo).Point
	if !mid.Vec2().Approx(V2(1, 0), 1e-5) {
		t.Errorf("reversal arc midpoint = %v, want (1, 0)", mid)
	}
	want := []Segment{
		MoveTo{Point: Pt(0, -1)},
		LineTo{Point: Pt(0, 1)},
	}
	assertSegments(t, neg, want)
}

func TestJoin_SameNormalEmitsNothing(t *testing.T) {
	n := V2(0, 1)
	c := joinCurve(Pt(4, 0), n, n, 1, LineJoinRound, 4)
	if c.Len() != 1 {
		t.Errorf("collinear join emitted %v", c.Segments())
	}
}

func TestLineCap(t *testing.T) {
	p := Pt(10, 0)
	n := V2(0, -1)
	tangent := V2(1, 0)

	start := func() *Curve {
		c := NewCurve()
		c.MoveTo(Pt(10, 1))
		return c
	}

	t.Run("butt", func(t *testing.T) {
		c := start()
		lineCap(c, p, n, tangent, 1, LineCapButt)
		assertSegments(t, c, []Segment{
			MoveTo{Point: Pt(10, 1)},
			LineTo{Point: Pt(10, -1)},
		})
	})

	t.Run("square", func(t *testing.T) {
		c := start()
		lineCap(c, p, n, tangent, 1, LineCapSquare)
		assertSegments(t, c, []Segment{
			MoveTo{Point: Pt(10, 1)},
			LineTo{Point: Pt(11, 1)},
			LineTo{Point: Pt(11, -1)},
			LineTo{Point: Pt(10, -1)},
		})
	})

	t.Run("round", func(t *testing.T) {
		c := start()
		lineCap(c, p, n, tangent, 1, LineCapRound)
		segs := c.Segments()
		if len(segs) != 3 {
			t.Fatalf("round cap has %d segments, want MoveTo + 2 CubicTo", len(segs))
		}
		first, ok1 := segs[1].(CubicTo)
		second, ok2 := segs[2].(CubicTo)
		if !ok1 || !ok2 {
			t.Fatalf("round cap segments = %v, want cubics", segs)
		}
		if first.Point != Pt(11, 0) {
			t.Errorf("cap tip = %v, want (11, 0)", first.Point)
		}
		if second.Point != Pt(10, -1) {
			t.Errorf("cap end = %v, want (10, -1)", second.Point)
		}

		cur := Pt(10, 1)
		for _, cb := range []CubicTo{first, second} {
			bez := CubicBez{P0: cur, P1: cb.Control1, P2: cb.Control2, P3: cb.Point}
			for i := 0; i <= 10; i++ {
				q := bez.Eval(float32(i) / 10)
				if d := q.Distance(p); math32.Abs(d-1) > 0.01 {
					t.Errorf("round cap point %v at distance %v from center, want 1", q, d)
				}
			}
			cur = cb.Point
		}
	})
}

// forEachConic calls fn for every conic segment of c with its start point.
func forEachConic(c *Curve, fn func(Conic)) {
	var cur Point
	for _, seg := range c.Segments() {
		if k, ok := seg.(ConicTo); ok {
			fn(Conic{P0: cur, P1: k.Control, P2: k.Point, W: k.Weight})
		}
		if p, ok := endPoint(seg); ok {
			cur = p
		}
	}
}

package svgpath

import (
	"math"

	"github.com/tdewolff/parse/v2/strconv"

	"github.com/gogpu/outline"
)

// sigDigits is the number of significant digits written per coordinate,
// enough to reproduce any float32 within a few ulps.
const sigDigits = 7

// Format writes c as compact absolute SVG path data.
// Conics have no SVG counterpart and are written as cubics; quarter circle
// arcs come out as the usual 0.5523 handle cubics. Non-finite coordinates
// are written as 0.
func Format(c *outline.Curve) string {
	var b []byte
	var pos, start outline.Point

	for _, seg := range c.Segments() {
		switch s := seg.(type) {
		case outline.MoveTo:
			b = appendCommand(b, 'M', s.Point)
			pos, start = s.Point, s.Point
		case outline.LineTo:
			b = appendCommand(b, 'L', s.Point)
			pos = s.Point
		case outline.QuadTo:
			b = appendCommand(b, 'Q', s.Control, s.Point)
			pos = s.Point
		case outline.ConicTo:
			c1, c2 := conicHandles(pos, s.Control, s.Point, s.Weight)
			b = appendCommand(b, 'C', c1, c2, s.Point)
			pos = s.Point
		case outline.CubicTo:
			b = appendCommand(b, 'C', s.Control1, s.Control2, s.Point)
			pos = s.Point
		case outline.Close:
			b = append(b, 'z')
			pos = start
		}
	}
	return string(b)
}

// conicHandles returns the cubic control points that best match the conic
// p0, p1, p2 with weight w. The cubic is exact for w == 1.
func conicHandles(p0, p1, p2 outline.Point, w float32) (outline.Point, outline.Point) {
	k := 4 * w / (3 * (1 + w))
	return p0.Lerp(p1, k), p2.Lerp(p1, k)
}

func appendCommand(b []byte, cmd byte, pts ...outline.Point) []byte {
	b = append(b, cmd)
	first := true
	for _, p := range pts {
		for _, v := range [2]float32{p.X, p.Y} {
			b = appendNum(b, v, first)
			first = false
		}
	}
	return b
}

// appendNum writes v with sigDigits significant digits, preceded by a space
// unless it directly follows a command or starts with a minus sign.
func appendNum(b []byte, v float32, first bool) []byte {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	if !first && f >= 0 {
		b = append(b, ' ')
	}
	if f == 0 {
		return append(b, '0')
	}

	// AppendFloat truncates, so round to the written precision first and
	// nudge away from the digit boundary.
	exp := math.Floor(math.Log10(math.Abs(f)))
	scale := math.Pow(10, sigDigits-1-exp)
	f = math.Round(f*scale) / scale
	f *= 1 + 1e-12

	b, _ = strconv.AppendFloat(b, f, sigDigits)
	return b
}

package outline

import (
	"math"

	"github.com/chewxy/math32"
)

// quarterArcWeight is the conic weight of an exact 90 degree circular arc.
const quarterArcWeight = math.Sqrt2 / 2

// Rectangle adds a closed rectangle: four edges starting at r.Min, clockwise
// on screen (y-down), so its Area is positive.
func (c *Curve) Rectangle(r Rect) {
	c.MoveTo(r.Min)
	c.LineTo(Pt(r.Max.X, r.Min.Y))
	c.LineTo(r.Max)
	c.LineTo(Pt(r.Min.X, r.Max.Y))
	c.Close()
}

// Circle adds a closed circle made of four exact conic quarter arcs.
func (c *Curve) Circle(center Point, radius float32) {
	cx, cy, r := center.X, center.Y, radius

	c.MoveTo(Pt(cx+r, cy))
	c.ConicTo(Pt(cx+r, cy+r), Pt(cx, cy+r), quarterArcWeight)
	c.ConicTo(Pt(cx-r, cy+r), Pt(cx-r, cy), quarterArcWeight)
	c.ConicTo(Pt(cx-r, cy-r), Pt(cx, cy-r), quarterArcWeight)
	c.ConicTo(Pt(cx+r, cy-r), Pt(cx+r, cy), quarterArcWeight)
	c.Close()
}

// Ellipse adds a closed axis-aligned ellipse using cubic Bezier curves.
func (c *Curve) Ellipse(center Point, rx, ry float32) {
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	cx, cy := center.X, center.Y
	ox, oy := rx*k, ry*k

	c.MoveTo(Pt(cx+rx, cy))
	c.CubicTo(Pt(cx+rx, cy+oy), Pt(cx+ox, cy+ry), Pt(cx, cy+ry))
	c.CubicTo(Pt(cx-ox, cy+ry), Pt(cx-rx, cy+oy), Pt(cx-rx, cy))
	c.CubicTo(Pt(cx-rx, cy-oy), Pt(cx-ox, cy-ry), Pt(cx, cy-ry))
	c.CubicTo(Pt(cx+ox, cy-ry), Pt(cx+rx, cy-oy), Pt(cx+rx, cy))
	c.Close()
}

// RoundedRect adds a closed rectangle whose corners are exact circular arcs
// of the given radius. The radius is clamped to half the smaller side.
func (c *Curve) RoundedRect(rect Rect, radius float32) {
	r := math32.Min(radius, math32.Min(rect.Width(), rect.Height())/2)
	if r <= 0 {
		c.Rectangle(rect)
		return
	}
	x0, y0, x1, y1 := rect.Min.X, rect.Min.Y, rect.Max.X, rect.Max.Y

	c.MoveTo(Pt(x0+r, y0))
	c.LineTo(Pt(x1-r, y0))
	c.ConicTo(Pt(x1, y0), Pt(x1, y0+r), quarterArcWeight)
	c.LineTo(Pt(x1, y1-r))
	c.ConicTo(Pt(x1, y1), Pt(x1-r, y1), quarterArcWeight)
	c.LineTo(Pt(x0+r, y1))
	c.ConicTo(Pt(x0, y1), Pt(x0, y1-r), quarterArcWeight)
	c.LineTo(Pt(x0, y0+r))
	c.ConicTo(Pt(x0, y0), Pt(x0+r, y0), quarterArcWeight)
	c.Close()
}

// RegularPolygon adds a closed regular polygon with n sides inscribed in
// the circle of radius r around center, starting at angle rotation.
// Fewer than three sides adds nothing.
func (c *Curve) RegularPolygon(n int, center Point, r, rotation float32) {
	if n < 3 {
		return
	}
	step := float32(2 * math.Pi / float64(n))
	for i := range n {
		sin, cos := math32.Sincos(rotation + step*float32(i))
		p := Pt(center.X+r*cos, center.Y+r*sin)
		if i == 0 {
			c.MoveTo(p)
		} else {
			c.LineTo(p)
		}
	}
	c.Close()
}

// RectCurve returns a new curve holding the rectangle r.
func RectCurve(r Rect) *Curve {
	c := NewCurve()
	c.Rectangle(r)
	return c
}

// CircleCurve returns a new curve holding a circle.
func CircleCurve(center Point, radius float32) *Curve {
	c := NewCurve()
	c.Circle(center, radius)
	return c
}

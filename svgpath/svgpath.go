// Package svgpath converts between SVG path data and outline curves.
//
// Parse accepts the full path grammar of SVG 1.1 (absolute and relative
// commands, implicit repetition, smooth curves and elliptical arcs).
// Elliptical arcs become exact conic segments of at most 90 degrees each.
// Format writes the compact form with no redundant separators.
package svgpath

import (
	"errors"
	"fmt"
	"math"

	"github.com/tdewolff/parse/v2/strconv"

	"github.com/gogpu/outline"
)

// ErrSyntax is returned for path data that does not follow the SVG grammar.
var ErrSyntax = errors.New("svgpath: syntax error")

func isSeparator(c byte) bool {
	return c == ' ' || c == ',' || c == '\n' || c == '\r' || c == '\t' || c == '\f'
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'Z', 'z', 'L', 'l', 'H', 'h', 'V', 'v',
		'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a':
		return true
	}
	return false
}

type parser struct {
	data []byte
	pos  int
}

func (p *parser) skipSeparators() {
	for p.pos < len(p.data) && isSeparator(p.data[p.pos]) {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) num() (float64, error) {
	p.skipSeparators()
	f, n := strconv.ParseFloat(p.data[p.pos:])
	if n == 0 {
		return 0, p.errorf("expected number")
	}
	p.pos += n
	return f, nil
}

// flag reads an arc flag. Flags are a single digit and may be written
// without a separator ("a5 5 0 0110 10").
func (p *parser) flag() (bool, error) {
	p.skipSeparators()
	if p.pos >= len(p.data) || (p.data[p.pos] != '0' && p.data[p.pos] != '1') {
		return false, p.errorf("expected flag")
	}
	v := p.data[p.pos] == '1'
	p.pos++
	return v, nil
}

func (p *parser) nums(dst []float64) error {
	for i := range dst {
		f, err := p.num()
		if err != nil {
			return err
		}
		dst[i] = f
	}
	return nil
}

// Parse parses SVG path data. An empty string yields an empty curve.
// Drawing after a closepath continues from the closed subpath's start,
// which is made explicit with a MoveTo.
func Parse(s string) (*outline.Curve, error) {
	p := &parser{data: []byte(s)}
	c := outline.NewCurve()

	var x, y float64     // current point
	var sx, sy float64   // subpath start
	var cpx, cpy float64 // last control point, for S and T
	var prevCmd byte     // last executed command
	closed := false      // a closepath ended the last subpath
	var args [6]float64

	at := func(px, py float64) outline.Point { return outline.Pt(float32(px), float32(py)) }
	reopen := func() {
		if closed {
			c.MoveTo(at(sx, sy))
			closed = false
		}
	}

	for {
		p.skipSeparators()
		if p.pos >= len(p.data) {
			break
		}

		cmd := p.data[p.pos]
		if prevCmd == 0 && cmd != 'M' && cmd != 'm' {
			return nil, p.errorf("path must start with a moveto, got %q", cmd)
		}
		if isCommand(cmd) {
			p.pos++
		} else {
			switch prevCmd {
			case 'Z', 'z':
				return nil, p.errorf("unexpected %q after closepath", cmd)
			case 'M':
				cmd = 'L'
			case 'm':
				cmd = 'l'
			default:
				cmd = prevCmd
			}
		}
		rel := cmd >= 'a'
		var ox, oy float64
		if rel {
			ox, oy = x, y
		}

		switch cmd {
		case 'M', 'm':
			if err := p.nums(args[:2]); err != nil {
				return nil, err
			}
			x, y = ox+args[0], oy+args[1]
			sx, sy = x, y
			c.MoveTo(at(x, y))
			closed = false
		case 'Z', 'z':
			if !closed {
				c.Close()
			}
			x, y = sx, sy
			closed = true
		case 'L', 'l':
			if err := p.nums(args[:2]); err != nil {
				return nil, err
			}
			reopen()
			x, y = ox+args[0], oy+args[1]
			c.LineTo(at(x, y))
		case 'H', 'h':
			if err := p.nums(args[:1]); err != nil {
				return nil, err
			}
			reopen()
			x = ox + args[0]
			c.LineTo(at(x, y))
		case 'V', 'v':
			if err := p.nums(args[:1]); err != nil {
				return nil, err
			}
			reopen()
			y = oy + args[0]
			c.LineTo(at(x, y))
		case 'C', 'c':
			if err := p.nums(args[:6]); err != nil {
				return nil, err
			}
			reopen()
			c1x, c1y := ox+args[0], oy+args[1]
			cpx, cpy = ox+args[2], oy+args[3]
			x, y = ox+args[4], oy+args[5]
			c.CubicTo(at(c1x, c1y), at(cpx, cpy), at(x, y))
		case 'S', 's':
			if err := p.nums(args[:4]); err != nil {
				return nil, err
			}
			reopen()
			c1x, c1y := x, y
			switch prevCmd {
			case 'C', 'c', 'S', 's':
				c1x, c1y = 2*x-cpx, 2*y-cpy
			}
			cpx, cpy = ox+args[0], oy+args[1]
			x, y = ox+args[2], oy+args[3]
			c.CubicTo(at(c1x, c1y), at(cpx, cpy), at(x, y))
		case 'Q', 'q':
			if err := p.nums(args[:4]); err != nil {
				return nil, err
			}
			reopen()
			cpx, cpy = ox+args[0], oy+args[1]
			x, y = ox+args[2], oy+args[3]
			c.QuadTo(at(cpx, cpy), at(x, y))
		case 'T', 't':
			if err := p.nums(args[:2]); err != nil {
				return nil, err
			}
			reopen()
			qx, qy := x, y
			switch prevCmd {
			case 'Q', 'q', 'T', 't':
				qx, qy = 2*x-cpx, 2*y-cpy
			}
			cpx, cpy = qx, qy
			x, y = ox+args[0], oy+args[1]
			c.QuadTo(at(cpx, cpy), at(x, y))
		case 'A', 'a':
			if err := p.nums(args[:3]); err != nil {
				return nil, err
			}
			large, err := p.flag()
			if err != nil {
				return nil, err
			}
			sweep, err := p.flag()
			if err != nil {
				return nil, err
			}
			if err := p.nums(args[3:5]); err != nil {
				return nil, err
			}
			reopen()
			x2, y2 := ox+args[3], oy+args[4]
			arcTo(c, x, y, args[0], args[1], args[2], large, sweep, x2, y2)
			x, y = x2, y2
		}
		prevCmd = cmd
	}
	return c, nil
}

// arcTo appends the SVG elliptical arc from (x1,y1) to (x2,y2) as conics
// spanning at most a quarter turn each. Zero radii draw a straight line and
// coincident endpoints draw nothing. Radii too small to reach the endpoint
// are scaled up uniformly.
func arcTo(c *outline.Curve, x1, y1, rx, ry, rot float64, large, sweep bool, x2, y2 float64) {
	if x1 == x2 && y1 == y2 {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		c.LineTo(outline.Pt(float32(x2), float32(y2)))
		return
	}

	sinRot, cosRot := math.Sincos(rot * math.Pi / 180)
	x1p := cosRot*(x1-x2)/2 + sinRot*(y1-y2)/2
	y1p := -sinRot*(x1-x2)/2 + cosRot*(y1-y2)/2

	if lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); lambda > 1 {
		rx *= math.Sqrt(lambda)
		ry *= math.Sqrt(lambda)
	}

	sq := (rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p) / (rx*rx*y1p*y1p + ry*ry*x1p*x1p)
	coef := math.Sqrt(math.Max(sq, 0))
	if large == sweep {
		coef = -coef
	}
	cxp := coef * rx * y1p / ry
	cyp := -coef * ry * x1p / rx
	cx := cosRot*cxp - sinRot*cyp + (x1+x2)/2
	cy := sinRot*cxp + cosRot*cyp + (y1+y2)/2

	theta := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	delta := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx) - theta
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	// Maps a point on the unit circle onto the ellipse.
	ellipse := func(ux, uy float64) outline.Point {
		return outline.Pt(
			float32(cx+rx*cosRot*ux-ry*sinRot*uy),
			float32(cy+rx*sinRot*ux+ry*cosRot*uy),
		)
	}

	n := int(math.Ceil(math.Abs(delta)/(math.Pi/2) - 1e-9))
	n = max(n, 1)
	step := delta / float64(n)
	w := math.Cos(step / 2)
	for i := range n {
		a0 := theta + step*float64(i)
		mid := a0 + step/2
		sinMid, cosMid := math.Sincos(mid)
		control := ellipse(cosMid/w, sinMid/w)

		end := outline.Pt(float32(x2), float32(y2))
		if i < n-1 {
			sinEnd, cosEnd := math.Sincos(a0 + step)
			end = ellipse(cosEnd, sinEnd)
		}
		c.ConicTo(control, end, float32(w))
	}
}

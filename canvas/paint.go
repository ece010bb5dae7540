package canvas

import (
	"fmt"
	"image/color"

	"github.com/gogpu/outline"
)

// BlendMode specifies how a source color combines with the destination.
type BlendMode int

const (
	// BlendSourceOver draws the source over the destination.
	BlendSourceOver BlendMode = iota
	// BlendClear replaces the destination with zero.
	BlendClear
	// BlendSource replaces the destination with the source.
	BlendSource
	// BlendDestination keeps the destination untouched.
	BlendDestination
	// BlendDestinationOver draws the destination over the source.
	BlendDestinationOver
)

// String returns the name of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendSourceOver:
		return "source-over"
	case BlendClear:
		return "clear"
	case BlendSource:
		return "source"
	case BlendDestination:
		return "destination"
	case BlendDestinationOver:
		return "destination-over"
	default:
		return fmt.Sprintf("BlendMode(%d)", int(b))
	}
}

// Paint describes how a primitive is filled: a solid color, a blend mode
// and whether edges are anti-aliased.
type Paint struct {
	Color     color.NRGBA
	Blend     BlendMode
	AntiAlias bool
}

// DefaultPaint returns opaque black, source-over, anti-aliased.
func DefaultPaint() Paint {
	return Paint{
		Color:     color.NRGBA{A: 0xff},
		Blend:     BlendSourceOver,
		AntiAlias: true,
	}
}

// Solid returns the default paint with the given color.
func Solid(c color.Color) Paint {
	p := DefaultPaint()
	p.Color = color.NRGBAModel.Convert(c).(color.NRGBA)
	return p
}

// triggerPaint is invisible: transparent and leaves the destination intact.
func triggerPaint() Paint {
	return Paint{Blend: BlendDestination}
}

// Mask clips a layer to the inside of a curve.
type Mask struct {
	Curve *outline.Curve
	Rule  outline.FillRule
}

// RectMask returns a NonZero mask covering r.
func RectMask(r outline.Rect) Mask {
	return Mask{Curve: outline.RectCurve(r), Rule: outline.NonZero}
}

// Contains reports whether pt is inside the mask.
func (m Mask) Contains(pt outline.Point) bool {
	return m.Curve != nil && m.Curve.Contains(pt, m.Rule)
}

package canvas

import (
	"image"

	"github.com/gogpu/outline"
)

// ViewID identifies the interactive element that owns a layer.
type ViewID uint64

// Primitive is one entry of a canvas draw list.
// The concrete types are Rect, Fill, Stroke, Image and Layer.
type Primitive interface {
	isPrimitive()
}

// Rect is a filled axis-aligned rectangle.
type Rect struct {
	Rect  outline.Rect
	Paint Paint
}

// Fill is a curve filled with a fill rule.
type Fill struct {
	Curve *outline.Curve
	Rule  outline.FillRule
	Paint Paint
}

// Stroke is a stroked curve.
type Stroke struct {
	Curve *outline.Curve
	Style outline.Stroke
	Paint Paint
}

// Image is an image drawn with its top-left corner at Point.
type Image struct {
	Point outline.Point
	Image image.Image
}

// Layer groups primitives under a transform, an optional mask and an
// optional view. Transform maps layer space to parent space; the mask is
// in layer space.
type Layer struct {
	Primitives []Primitive
	Transform  outline.Affine
	Mask       *Mask
	View       *ViewID
}

func (Rect) isPrimitive()   {}
func (Fill) isPrimitive()   {}
func (Stroke) isPrimitive() {}
func (Image) isPrimitive()  {}
func (Layer) isPrimitive()  {}

// Bounds returns the rectangle the image covers.
func (i Image) Bounds() outline.Rect {
	if i.Image == nil {
		return outline.Rect{Min: i.Point, Max: i.Point}
	}
	b := i.Image.Bounds()
	return outline.RectXYWH(i.Point.X, i.Point.Y, float32(b.Dx()), float32(b.Dy()))
}

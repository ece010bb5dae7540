// Package canvas records drawing primitives and answers which view lies
// under a point.
//
// A Canvas is a draw list: rectangles, filled and stroked curves, images and
// layers. Layers nest, carry a transform, and may clip their content with a
// mask and claim it for a view. ViewAt walks the list from the topmost
// primitive down and reports the view owning the first primitive that
// contains the point.
//
//	c := canvas.New()
//	c.View(42, func(c *canvas.Canvas) {
//		c.Fill(outline.CircleCurve(outline.Pt(50, 50), 20), outline.NonZero, canvas.DefaultPaint())
//	})
//	id, ok := c.ViewAt(outline.Pt(55, 50)) // 42, true
//
// Strokes are hit-tested against their stroked outline, which is computed
// once per (curve, style) pair and kept in an LRU cache shared by the canvas
// and all its layers.
package canvas

import (
	"image"

	"github.com/gogpu/outline"
	"github.com/gogpu/outline/internal/cache"
)

// DefaultStrokeCacheSize is the number of stroked outlines kept for hit-testing.
const DefaultStrokeCacheSize = 256

// strokeKey identifies a stroked outline by curve content and style bits.
type strokeKey struct {
	curve uint64
	style outline.StrokeKey
}

// strokeEntry caches the stroker result, failures included.
type strokeEntry struct {
	stroked *outline.Curve
	err     error
}

// Option configures a Canvas.
type Option func(*options)

type options struct {
	cacheSize  int
	strokeOpts []outline.StrokeOption
}

// WithStrokeCacheSize sets how many stroked outlines are cached for
// hit-testing. Zero or less means unlimited.
func WithStrokeCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithStrokeOptions sets the stroker options used for stroke hit-testing.
func WithStrokeOptions(opts ...outline.StrokeOption) Option {
	return func(o *options) {
		o.strokeOpts = opts
	}
}

// Canvas is a list of primitives. Create one with New.
//
// Building a canvas is not safe for concurrent use. Once built, ViewAt may
// be called from multiple goroutines.
type Canvas struct {
	primitives []Primitive
	strokes    *cache.Cache[strokeKey, strokeEntry]
	strokeOpts []outline.StrokeOption
}

// New creates an empty canvas.
func New(opts ...Option) *Canvas {
	o := options{cacheSize: DefaultStrokeCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	return &Canvas{
		strokes:    cache.New[strokeKey, strokeEntry](o.cacheSize),
		strokeOpts: o.strokeOpts,
	}
}

// Primitives returns the recorded primitives, bottom first.
// The returned slice must not be modified.
func (c *Canvas) Primitives() []Primitive {
	return c.primitives
}

// Clear removes all primitives. Cached stroke outlines are kept.
func (c *Canvas) Clear() {
	c.primitives = nil
}

// Rect draws a rectangle.
func (c *Canvas) Rect(r outline.Rect, paint Paint) {
	c.primitives = append(c.primitives, Rect{Rect: r, Paint: paint})
}

// Trigger adds an invisible rectangle that only takes part in hit-testing.
func (c *Canvas) Trigger(r outline.Rect) {
	c.Rect(r, triggerPaint())
}

// Fill fills a curve. The canvas keeps curve; do not modify it afterwards.
func (c *Canvas) Fill(curve *outline.Curve, rule outline.FillRule, paint Paint) {
	c.primitives = append(c.primitives, Fill{Curve: curve, Rule: rule, Paint: paint})
}

// Stroke strokes a curve. The canvas keeps curve; do not modify it afterwards.
func (c *Canvas) Stroke(curve *outline.Curve, style outline.Stroke, paint Paint) {
	c.primitives = append(c.primitives, Stroke{Curve: curve, Style: style, Paint: paint})
}

// Image draws img with its top-left corner at pt.
func (c *Canvas) Image(pt outline.Point, img image.Image) {
	c.primitives = append(c.primitives, Image{Point: pt, Image: img})
}

// Layer records the primitives drawn by fn as one layer.
// mask and view may be nil.
func (c *Canvas) Layer(transform outline.Affine, mask *Mask, view *ViewID, fn func(*Canvas)) {
	sub := &Canvas{strokes: c.strokes, strokeOpts: c.strokeOpts}
	fn(sub)
	c.primitives = append(c.primitives, Layer{
		Primitives: sub.primitives,
		Transform:  transform,
		Mask:       mask,
		View:       view,
	})
}

// Transform records a layer drawn under transform.
func (c *Canvas) Transform(transform outline.Affine, fn func(*Canvas)) {
	c.Layer(transform, nil, nil, fn)
}

// Mask records a layer clipped to mask.
func (c *Canvas) Mask(mask Mask, fn func(*Canvas)) {
	c.Layer(outline.Identity(), &mask, nil, fn)
}

// View records a layer owned by view.
func (c *Canvas) View(view ViewID, fn func(*Canvas)) {
	c.Layer(outline.Identity(), nil, &view, fn)
}

// ViewAt returns the view owning the topmost primitive that contains pt.
// Layers without a view of their own inherit the enclosing one. A layer
// whose content yields no view does not stop the search, so the point
// falls through to the primitives below it; a hit on a top-level primitive
// outside any view does stop it, and the result is false.
func (c *Canvas) ViewAt(pt outline.Point) (ViewID, bool) {
	view := c.hit(c.primitives, nil, pt)
	if view == nil {
		return 0, false
	}
	return *view, true
}

// hit returns the view of the topmost primitive containing pt, or nil when
// nothing is hit or the hit belongs to no view.
func (c *Canvas) hit(primitives []Primitive, view *ViewID, pt outline.Point) *ViewID {
	for i := len(primitives) - 1; i >= 0; i-- {
		switch p := primitives[i].(type) {
		case Rect:
			if p.Rect.Contains(pt) {
				return view
			}
		case Fill:
			if p.Curve != nil && p.Curve.Contains(pt, p.Rule) {
				return view
			}
		case Stroke:
			if c.strokeContains(p, pt) {
				return view
			}
		case Image:
			if p.Bounds().Contains(pt) {
				return view
			}
		case Layer:
			inv, ok := p.Transform.Invert()
			if !ok {
				continue
			}
			local := inv.TransformPoint(pt)
			if p.Mask != nil && !p.Mask.Contains(local) {
				continue
			}
			inner := view
			if p.View != nil {
				inner = p.View
			}
			if v := c.hit(p.Primitives, inner, local); v != nil {
				return v
			}
		}
	}
	return nil
}

// strokeContains tests pt against the stroked outline of s under NonZero.
// Curves that cannot be stroked are never hit.
func (c *Canvas) strokeContains(s Stroke, pt outline.Point) bool {
	if s.Curve == nil {
		return false
	}
	key := strokeKey{curve: s.Curve.Hash(), style: s.Style.Key()}
	entry := c.strokes.GetOrCreate(key, func() strokeEntry {
		out, err := outline.StrokeCurve(s.Curve, s.Style, c.strokeOpts...)
		if err != nil {
			outline.Logger().Debug("canvas: stroke not hit-testable", "err", err)
		}
		return strokeEntry{stroked: out, err: err}
	})
	if entry.err != nil {
		return false
	}
	return entry.stroked.Contains(pt, outline.NonZero)
}

// CacheStats reports stroke outline cache activity.
type CacheStats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// StrokeCacheStats returns statistics of the stroke outline cache.
func (c *Canvas) StrokeCacheStats() CacheStats {
	s := c.strokes.Stats()
	return CacheStats{Len: s.Len, Hits: s.Hits, Misses: s.Misses, Evictions: s.Evictions}
}

// ResetStrokeCache drops every cached stroke outline and zeroes the cache
// statistics. Layers share the cache, so this affects all of them.
func (c *Canvas) ResetStrokeCache() {
	c.strokes.Clear()
	c.strokes.ResetStats()
}

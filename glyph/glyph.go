// Package glyph turns text into glyph outlines.
//
// Text is normalized to NFC, split into bidirectional runs, shaped with
// HarfBuzz (kerning, ligatures, mark positioning) and each shaped glyph's
// contours are loaded from the font as outline segments. The result is a
// single Curve in pixel units: the pen starts at the origin, the baseline is
// y = 0, and glyphs extend upward into negative y.
//
// Every glyph contour is closed, so the curve can be filled with NonZero or
// handed straight to outline.StrokeCurve.
package glyph

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/chewxy/math32"
	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/unicode/bidi"
	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/outline"
)

var (
	// ErrEmptyFont is returned when font data is empty.
	ErrEmptyFont = errors.New("glyph: empty font data")

	// ErrInvalidFont is returned when font data cannot be parsed.
	ErrInvalidFont = errors.New("glyph: invalid font data")

	// ErrInvalidSize is returned for a size that is not a finite positive number.
	ErrInvalidSize = errors.New("glyph: invalid size")
)

// Outliner converts text to outlines for one font.
// It is safe for concurrent use; calls are serialized.
type Outliner struct {
	mu     sync.Mutex
	face   *font.Face
	sfnt   *sfnt.Font
	buf    sfnt.Buffer
	shaper shaping.HarfbuzzShaper
}

// NewOutliner parses TrueType or OpenType font data.
func NewOutliner(data []byte) (*Outliner, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFont
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}
	return &Outliner{face: face, sfnt: f}, nil
}

// placed is a shaped glyph with its pen position.
type placed struct {
	gid    sfnt.GlyphIndex
	origin outline.Point
}

// Outline returns the outlines of text set at size pixels per em.
// Glyphs without contours (spaces) contribute only their advance.
func (o *Outliner) Outline(text string, size float32) (*outline.Curve, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	glyphs, _ := o.layout(text, size)
	ppem := fixed.Int26_6(size * 64)

	c := outline.NewCurve()
	for _, g := range glyphs {
		segs, err := o.sfnt.LoadGlyph(&o.buf, g.gid, ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("glyph: load glyph %d: %w", g.gid, err)
		}
		appendGlyph(c, segs, g.origin)
	}

	outline.Logger().Debug("glyph: outlined text",
		"runes", len([]rune(text)), "glyphs", len(glyphs), "segments", c.Len())
	return c, nil
}

// Advance returns the horizontal advance of text set at size pixels per em.
func (o *Outliner) Advance(text string, size float32) (float32, error) {
	if err := checkSize(size); err != nil {
		return 0, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	_, advance := o.layout(text, size)
	return advance, nil
}

func checkSize(size float32) error {
	if math32.IsNaN(size) || math32.IsInf(size, 0) || size <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidSize, size)
	}
	return nil
}

// layout shapes text run by run in visual order and returns the glyph
// origins and the total advance.
func (o *Outliner) layout(text string, size float32) ([]placed, float32) {
	text = norm.NFC.String(text)
	runes := []rune(text)
	if len(runes) == 0 {
		return nil, 0
	}

	var glyphs []placed
	var pen fixed.Int26_6
	for _, r := range splitRuns(text, len(runes)) {
		out := o.shaper.Shape(shaping.Input{
			Text:      runes,
			RunStart:  r.start,
			RunEnd:    r.end,
			Direction: r.dir,
			Face:      o.face,
			Size:      fixed.Int26_6(size * 64),
			Script:    detectScript(runes[r.start:r.end]),
			Language:  language.NewLanguage("en"),
		})
		for _, g := range out.Glyphs {
			// Shaper offsets are y-up.
			glyphs = append(glyphs, placed{
				gid:    sfnt.GlyphIndex(g.GlyphID),
				origin: outline.Pt(fixedToFloat(pen+g.XOffset), -fixedToFloat(g.YOffset)),
			})
			pen += g.XAdvance
		}
	}
	return glyphs, fixedToFloat(pen)
}

type textRun struct {
	start, end int // rune indices, end exclusive
	dir        di.Direction
}

// splitRuns splits text into directional runs in visual order. Text the
// bidi algorithm cannot order is treated as a single left-to-right run.
func splitRuns(text string, n int) []textRun {
	whole := []textRun{{start: 0, end: n, dir: di.DirectionLTR}}

	p := bidi.Paragraph{}
	if _, err := p.SetString(text, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return whole
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return whole
	}

	runs := make([]textRun, 0, ordering.NumRuns())
	for i := range ordering.NumRuns() {
		run := ordering.Run(i)
		start, end := run.Pos() // rune indices, end inclusive
		if start < 0 || end >= n || start > end {
			return whole
		}
		dir := di.DirectionLTR
		if run.Direction() == bidi.RightToLeft {
			dir = di.DirectionRTL
		}
		runs = append(runs, textRun{start: start, end: end + 1, dir: dir})
	}
	return runs
}

// detectScript returns the script of the first non-space rune.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// appendGlyph appends glyph segments translated to origin, closing every
// contour. Font contours are implicitly closed.
func appendGlyph(c *outline.Curve, segs sfnt.Segments, origin outline.Point) {
	at := func(p fixed.Point26_6) outline.Point {
		return outline.Pt(origin.X+fixedToFloat(p.X), origin.Y+fixedToFloat(p.Y))
	}

	open := false
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				c.Close()
			}
			c.MoveTo(at(seg.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			c.LineTo(at(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			c.QuadTo(at(seg.Args[0]), at(seg.Args[1]))
		case sfnt.SegmentOpCubeTo:
			c.CubicTo(at(seg.Args[0]), at(seg.Args[1]), at(seg.Args[2]))
		}
	}
	if open {
		c.Close()
	}
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

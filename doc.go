// Package outline converts vector paths and stroke styles into fillable
// outlines.
//
// # Overview
//
// A Curve is a list of segments (move, line, quadratic, conic, cubic, close)
// forming one or more subpaths. StrokeCurve turns a Curve plus a Stroke
// (width, cap, join, miter limit) into a new Curve whose NonZero fill is the
// stroked area. Contains answers point-in-path queries under either fill
// rule, which is all a hit-testing layer needs.
//
// # Quick Start
//
//	import "github.com/gogpu/outline"
//
//	c := outline.NewCurve()
//	c.MoveTo(outline.Pt(0, 0))
//	c.LineTo(outline.Pt(10, 0))
//	c.LineTo(outline.Pt(10, 10))
//
//	s := outline.DefaultStroke().WithWidth(2).WithJoin(outline.LineJoinRound)
//	out, err := outline.StrokeCurve(c, s)
//	if err != nil {
//		return err
//	}
//	hit := out.Contains(outline.Pt(10.5, 0.5), outline.NonZero)
//
// # Stroking
//
// Straight segments are offset exactly. Curved segments are offset by
// recursive subdivision until the offset midpoint is within an error bound
// of the true offset, or a depth limit is reached (see WithMaxError and
// WithMaxDepth). Open subpaths get caps at both ends; closed subpaths become
// two oppositely wound loops. Inner corners are joined by a straight line
// and the overlap is absorbed by the NonZero rule.
//
// Output is deterministic: the same Curve and Stroke always produce
// bit-identical segments, so (Curve.Hash, Stroke.Key) is a usable cache key.
//
// # Errors
//
// Drawing segments without a preceding MoveTo and non-finite coordinates
// are reported as ErrMalformedPath; unusable strokes as ErrInvalidStroke.
// Zero-length segments are skipped and never produce NaN.
//
// # Coordinate System
//
// Uses standard computer graphics coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Angles in radians
//
// # Subpackages
//
//   - svgpath: SVG path data to and from Curve
//   - glyph: text to glyph outlines
//   - canvas: primitive lists with layered hit-testing
package outline

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)

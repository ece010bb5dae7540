package outline

import "runtime"

const (
	// DefaultMaxDepth is the default recursion limit of the curve offset
	// approximator. A source curve yields at most 2^DefaultMaxDepth pieces.
	DefaultMaxDepth = 6

	// DefaultMaxError is the default offset approximation error bound, in
	// world units (scaled by the half-width for cubics).
	DefaultMaxError = 1.0
)

// StrokeOption configures a StrokeCurve call.
// Use functional options to customize approximation fidelity and
// concurrency.
//
// Example:
//
//	// Tighter curve fidelity after a large zoom
//	out, err := outline.StrokeCurve(c, s, outline.WithMaxError(0.05), outline.WithMaxDepth(10))
//
//	// Stroke independent subpaths on four goroutines
//	out, err := outline.StrokeCurve(c, s, outline.WithWorkers(4))
type StrokeOption func(*strokeOptions)

// strokeOptions holds optional configuration for stroking.
type strokeOptions struct {
	maxDepth int
	maxError float32
	workers  int
}

// defaultStrokeOptions returns the default stroke options.
func defaultStrokeOptions() strokeOptions {
	return strokeOptions{
		maxDepth: DefaultMaxDepth,
		maxError: DefaultMaxError,
		workers:  1,
	}
}

// WithMaxDepth sets the recursion limit of the curve offset approximator.
// Negative values are treated as zero (no subdivision).
func WithMaxDepth(depth int) StrokeOption {
	return func(o *strokeOptions) {
		o.maxDepth = max(depth, 0)
	}
}

// WithMaxError sets the offset approximation error bound in world units.
// The bound is absolute, so the same value gives a coarser result once the
// outline is scaled up; callers rendering under a zoom should divide by the
// zoom factor. Non-positive values force subdivision down to the depth
// limit.
func WithMaxError(maxError float32) StrokeOption {
	return func(o *strokeOptions) {
		o.maxError = maxError
	}
}

// WithWorkers strokes independent subpaths on n goroutines.
// Output is identical to sequential stroking. If n is 0 or negative,
// GOMAXPROCS is used; 1 (the default) strokes on the calling goroutine.
func WithWorkers(n int) StrokeOption {
	return func(o *strokeOptions) {
		if n <= 0 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

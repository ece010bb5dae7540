package outline

import (
	"runtime"
	"testing"
)

func TestDefaultStrokeOptions(t *testing.T) {
	o := defaultStrokeOptions()
	if o.maxDepth != DefaultMaxDepth {
		t.Errorf("maxDepth = %d, want %d", o.maxDepth, DefaultMaxDepth)
	}
	if o.maxError != DefaultMaxError {
		t.Errorf("maxError = %v, want %v", o.maxError, DefaultMaxError)
	}
	if o.workers != 1 {
		t.Errorf("workers = %d, want 1", o.workers)
	}
}

func TestWithMaxDepth(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{0, 0},
		{3, 3},
		{12, 12},
		{-4, 0},
	}
	for _, tt := range tests {
		o := defaultStrokeOptions()
		WithMaxDepth(tt.in)(&o)
		if o.maxDepth != tt.want {
			t.Errorf("WithMaxDepth(%d): maxDepth = %d, want %d", tt.in, o.maxDepth, tt.want)
		}
	}
}

func TestWithMaxError(t *testing.T) {
	o := defaultStrokeOptions()
	WithMaxError(0.125)(&o)
	if o.maxError != 0.125 {
		t.Errorf("maxError = %v, want 0.125", o.maxError)
	}
}

func TestWithWorkers(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{1, 1},
		{8, 8},
		{0, runtime.GOMAXPROCS(0)},
		{-1, runtime.GOMAXPROCS(0)},
	}
	for _, tt := range tests {
		o := defaultStrokeOptions()
		WithWorkers(tt.in)(&o)
		if o.workers != tt.want {
			t.Errorf("WithWorkers(%d): workers = %d, want %d", tt.in, o.workers, tt.want)
		}
	}
}

func TestStrokeOptions_LastWins(t *testing.T) {
	c := NewCurve()
	c.MoveTo(Pt(0, 0))
	c.QuadTo(Pt(500, 1000), Pt(1000, 0))
	s := DefaultStroke().WithWidth(200)

	fine := mustStroke(t, c, s, WithMaxError(1))
	overridden := mustStroke(t, c, s, WithMaxError(1000), WithMaxError(1))
	if !fine.Equal(overridden) {
		t.Error("later WithMaxError did not replace the earlier one")
	}
}

func TestStrokeOptions_FidelityAffectsOutput(t *testing.T) {
	c := NewCurve()
	c.MoveTo(Pt(0, 0))
	c.QuadTo(Pt(500, 1000), Pt(1000, 0))
	s := DefaultStroke().WithWidth(200)

	coarse := mustStroke(t, c, s, WithMaxDepth(0))
	fine := mustStroke(t, c, s)
	if coarse.Len() >= fine.Len() {
		t.Errorf("depth 0 gave %d segments, default gave %d; want fewer", coarse.Len(), fine.Len())
	}
	// Depth 0: one quad per side plus the caps and the closing move.
	if coarse.Len() != 6 {
		t.Errorf("depth 0 gave %d segments, want 6", coarse.Len())
	}
}

package glyph

import (
	"errors"
	"sync"
	"testing"

	"github.com/chewxy/math32"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/outline"
)

func newTestOutliner(t *testing.T) *Outliner {
	t.Helper()
	o, err := NewOutliner(goregular.TTF)
	if err != nil {
		t.Fatalf("NewOutliner: %v", err)
	}
	return o
}

func TestNewOutliner_Errors(t *testing.T) {
	if _, err := NewOutliner(nil); !errors.Is(err, ErrEmptyFont) {
		t.Errorf("nil data: err = %v, want ErrEmptyFont", err)
	}
	if _, err := NewOutliner([]byte("not a font")); !errors.Is(err, ErrInvalidFont) {
		t.Errorf("junk data: err = %v, want ErrInvalidFont", err)
	}
}

func TestOutline_Empty(t *testing.T) {
	o := newTestOutliner(t)
	c, err := o.Outline("", 16)
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if !c.IsEmpty() {
		t.Errorf("empty text gave %d segments", c.Len())
	}
}

func TestOutline_InvalidSize(t *testing.T) {
	o := newTestOutliner(t)
	for _, size := range []float32{0, -1, math32.NaN(), math32.Inf(1)} {
		if _, err := o.Outline("A", size); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Outline size %v: err = %v, want ErrInvalidSize", size, err)
		}
		if _, err := o.Advance("A", size); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Advance size %v: err = %v, want ErrInvalidSize", size, err)
		}
	}
}

func TestOutline_ContoursAreClosed(t *testing.T) {
	o := newTestOutliner(t)
	c, err := o.Outline("Bag", 64)
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	segs := c.Segments()
	if len(segs) == 0 {
		t.Fatal("no segments")
	}
	if _, ok := segs[len(segs)-1].(outline.Close); !ok {
		t.Error("last contour is not closed")
	}
	for i, seg := range segs {
		if _, ok := seg.(outline.MoveTo); ok && i > 0 {
			if _, ok := segs[i-1].(outline.Close); !ok {
				t.Errorf("segment %d: move without closing the previous contour", i)
			}
		}
	}
}

func TestOutline_Placement(t *testing.T) {
	o := newTestOutliner(t)
	c, err := o.Outline("H", 100)
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}

	bbox := c.BoundingBox()
	// Cap height sits above the baseline, which is y = 0 in y-down space.
	if bbox.Min.Y > -50 || bbox.Min.Y < -100 {
		t.Errorf("top = %v, want a cap height between 50 and 100 above the baseline", bbox.Min.Y)
	}
	if bbox.Max.Y > 1 {
		t.Errorf("bottom = %v, want H to rest on the baseline", bbox.Max.Y)
	}
	if bbox.Min.X < 0 {
		t.Errorf("left = %v, want a non-negative left side bearing", bbox.Min.X)
	}

	stem := outline.Pt(bbox.Min.X+2, (bbox.Min.Y+bbox.Max.Y)/2)
	if !c.Contains(stem, outline.NonZero) {
		t.Errorf("stem point %v is not inside H", stem)
	}
	above := outline.Pt((bbox.Min.X+bbox.Max.X)/2, bbox.Min.Y+2)
	if c.Contains(above, outline.NonZero) {
		t.Errorf("point %v between the stems is inside H", above)
	}
}

func TestOutline_SpaceHasAdvanceOnly(t *testing.T) {
	o := newTestOutliner(t)
	c, err := o.Outline(" ", 32)
	if err != nil {
		t.Fatalf("Outline: %v", err)
	}
	if !c.IsEmpty() {
		t.Errorf("space gave %d segments", c.Len())
	}
	adv, err := o.Advance(" ", 32)
	if err != nil {
		t.Fatalf("Advance: %v", err)
	}
	if adv <= 0 {
		t.Errorf("space advance = %v, want positive", adv)
	}
}

func TestAdvance_ScalesWithSize(t *testing.T) {
	o := newTestOutliner(t)
	small, err := o.Advance("outline", 10)
	if err != nil {
		t.Fatal(err)
	}
	large, err := o.Advance("outline", 20)
	if err != nil {
		t.Fatal(err)
	}
	if math32.Abs(large-2*small) > 0.25 {
		t.Errorf("advance at 20 = %v, want about twice %v", large, small)
	}
}

func TestOutline_GlyphsAdvance(t *testing.T) {
	o := newTestOutliner(t)
	one, err := o.Outline("I", 50)
	if err != nil {
		t.Fatal(err)
	}
	two, err := o.Outline("II", 50)
	if err != nil {
		t.Fatal(err)
	}
	adv, err := o.Advance("I", 50)
	if err != nil {
		t.Fatal(err)
	}

	if two.Len() != 2*one.Len() {
		t.Fatalf("II has %d segments, want %d", two.Len(), 2*one.Len())
	}
	b1, b2 := one.BoundingBox(), two.BoundingBox()
	if math32.Abs(b2.Max.X-(b1.Max.X+adv)) > 0.5 {
		t.Errorf("second I ends at %v, want about %v", b2.Max.X, b1.Max.X+adv)
	}
}

func TestOutline_NormalizesText(t *testing.T) {
	o := newTestOutliner(t)
	composed, err := o.Outline("caf\u00e9", 24)
	if err != nil {
		t.Fatal(err)
	}
	decomposed, err := o.Outline("cafe\u0301", 24)
	if err != nil {
		t.Fatal(err)
	}
	if !composed.Equal(decomposed) {
		t.Error("composed and decomposed forms outline differently")
	}
}

func TestOutline_Strokable(t *testing.T) {
	o := newTestOutliner(t)
	c, err := o.Outline("Go", 40)
	if err != nil {
		t.Fatal(err)
	}
	stroked, err := outline.StrokeCurve(c, outline.StrokeWidth(1))
	if err != nil {
		t.Fatalf("StrokeCurve: %v", err)
	}
	if stroked.IsEmpty() {
		t.Error("stroked text is empty")
	}
}

func TestOutline_Concurrent(t *testing.T) {
	o := newTestOutliner(t)
	want, err := o.Outline("concurrent", 18)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make([]*outline.Curve, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = o.Outline("concurrent", 18)
		}()
	}
	wg.Wait()

	for i, got := range results {
		if got == nil || !got.Equal(want) {
			t.Errorf("goroutine %d produced a different outline", i)
		}
	}
}

func TestSplitRuns_LeftToRight(t *testing.T) {
	runs := splitRuns("plain text", 10)
	total := 0
	for _, r := range runs {
		if r.end <= r.start {
			t.Errorf("empty run %+v", r)
		}
		total += r.end - r.start
	}
	if total != 10 {
		t.Errorf("runs cover %d runes, want 10", total)
	}
}

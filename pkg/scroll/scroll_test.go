package scroll

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/matzehuels/cartesian/pkg/animation"
	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
	"github.com/matzehuels/cartesian/pkg/ranges"
)

// result builds a measuring result with n entries at X = 0..n-1, each seg
// pixels wide, in a content area width pixels wide.
func result(seg, width float64, n int) layout.Result {
	return layout.Result{
		Content:    geom.RectOf(0, 0, width, 100),
		Dimensions: geom.Dimensions{EntryWidth: seg / 2, Margin: seg / 2},
		Ranges:     ranges.Ranges{X: geom.Range{Min: 0, Max: float64(n - 1)}, XStep: 1},
	}
}

func TestUpdateReclampsShrinkingMax(t *testing.T) {
	ctx := context.Background()
	c := New(DefaultOptions())
	var calls [][2]float64
	c.AddListener(func(v, m float64) { calls = append(calls, [2]float64{v, m}) })

	c.Update(ctx, result(20, 100, 10), 1)
	c.Scroll(ctx, End())
	if c.Value() != 100 || c.MaxValue() != 100 {
		t.Fatalf("value, max = %v, %v, want 100, 100", c.Value(), c.MaxValue())
	}

	c.Update(ctx, result(14, 100, 10), 1)
	if c.MaxValue() != 40 || c.Value() != 40 {
		t.Errorf("after shrink value, max = %v, %v, want 40, 40", c.Value(), c.MaxValue())
	}
	if last := calls[len(calls)-1]; last != [2]float64{40, 40} {
		t.Errorf("last listener call = %v, want [40 40]", last)
	}
}

func TestScrollClamps(t *testing.T) {
	ctx := context.Background()
	deltas := []float64{-1e12, -150, -1, 0, 1, 37.5, 99, 101, 1e12, math.Inf(1), math.Inf(-1), math.NaN()}
	for _, maxSeg := range []float64{10, 20, 50} {
		c := New(DefaultOptions())
		c.Update(ctx, result(maxSeg, 100, 10), 1)
		for _, d := range deltas {
			c.Scroll(ctx, ByPixels(d))
			if v := c.Value(); v < 0 || v > c.MaxValue() || math.IsNaN(v) {
				t.Errorf("max %v: after ByPixels(%v) value = %v", c.MaxValue(), d, v)
			}
		}
	}
}

func TestRequests(t *testing.T) {
	ctx := context.Background()
	c := New(DefaultOptions())
	c.Update(ctx, result(20, 100, 10), 1)

	tests := []struct {
		name string
		req  Request
		want float64
	}{
		{"x at leading edge", X(3, 0), 70},
		{"by x", ByX(1), 90},
		{"by pixels", ByPixels(-30), 60},
		{"x centered", X(2, 0.5), 0},
		{"x clamped", X(9, 0), 100},
		{"start", Start(), 0},
		{"pixels", Pixels(42), 42},
		{"end", End(), 100},
	}
	for _, tt := range tests {
		c.Scroll(ctx, tt.req)
		if math.Abs(c.Value()-tt.want) > 1e-9 {
			t.Errorf("%s: value = %v, want %v", tt.name, c.Value(), tt.want)
		}
	}
}

func TestInitialScroll(t *testing.T) {
	ctx := context.Background()
	c := New(Options{Enabled: true, Initial: InitialEnd})
	c.Update(ctx, layout.Result{Empty: true}, 1)
	if c.Value() != 0 {
		t.Fatalf("empty result moved the value to %v", c.Value())
	}
	c.Update(ctx, result(20, 100, 10), 1)
	if c.Value() != 100 {
		t.Errorf("initial end value = %v, want 100", c.Value())
	}
	c.Scroll(ctx, Pixels(10))
	c.Update(ctx, result(20, 100, 10), 1)
	if c.Value() != 10 {
		t.Errorf("initial scroll applied twice: value = %v", c.Value())
	}
}

func TestRestoreBeforeMeasure(t *testing.T) {
	ctx := context.Background()
	c := New(Options{Initial: InitialEnd})
	c.Restore(30)
	c.Update(ctx, result(20, 100, 10), 1)
	if c.Value() != 30 {
		t.Errorf("value = %v, want the restored 30", c.Value())
	}
	c.Restore(500)
	if c.Value() != 100 {
		t.Errorf("value = %v, want the restored value clamped to 100", c.Value())
	}
}

func TestAutoScrollOnGrowth(t *testing.T) {
	ctx := context.Background()
	c := New(Options{AutoScroll: OnModelGrowth})
	c.Update(ctx, result(20, 100, 10), 1)
	if c.Value() != 0 {
		t.Fatalf("value = %v before growth", c.Value())
	}
	c.Update(ctx, result(20, 100, 15), 1)
	if c.Value() != 200 {
		t.Errorf("value = %v after growth, want 200", c.Value())
	}

	n := New(Options{})
	n.Update(ctx, result(20, 100, 10), 1)
	n.Update(ctx, result(20, 100, 15), 1)
	if n.Value() != 0 {
		t.Errorf("value = %v without auto-scroll, want 0", n.Value())
	}
}

func TestAnimateScroll(t *testing.T) {
	ctx := context.Background()
	clock := animation.NewManualClock(time.Unix(0, 0))
	c := New(Options{Enabled: true, Animation: animation.Spec{Duration: 100 * time.Millisecond, Easing: animation.Linear}})
	c.Update(ctx, result(20, 100, 10), 1)

	c.AnimateScroll(ctx, End(), clock.Now())
	c.Tick(ctx, clock.Advance(50*time.Millisecond))
	if c.Value() != 50 {
		t.Fatalf("value mid-animation = %v, want 50", c.Value())
	}

	c.AnimateScroll(ctx, Start(), clock.Now())
	if c.Value() != 50 {
		t.Errorf("restart moved the value to %v", c.Value())
	}
	for c.Tick(ctx, clock.Advance(30*time.Millisecond)) {
	}
	if c.Value() != 0 || c.Animating() {
		t.Errorf("value = %v, animating = %v, want 0 and done", c.Value(), c.Animating())
	}

	c.AnimateScroll(ctx, End(), clock.Now())
	c.Tick(ctx, clock.Advance(10*time.Millisecond))
	c.Scroll(ctx, Pixels(5))
	if c.Tick(ctx, clock.Advance(time.Second)) || c.Value() != 5 {
		t.Errorf("instant scroll did not cancel the animation: value = %v", c.Value())
	}
}

func TestListenersOnlyOnChange(t *testing.T) {
	ctx := context.Background()
	c := New(DefaultOptions())
	calls := 0
	c.AddListener(func(float64, float64) { calls++ })
	c.Update(ctx, result(20, 100, 10), 1)
	calls = 0

	if c.Scroll(ctx, ByPixels(0)) || c.Scroll(ctx, ByPixels(-10)) {
		t.Error("Scroll reported a change at the lower bound")
	}
	c.Update(ctx, result(20, 100, 10), 1)
	if calls != 0 {
		t.Errorf("listeners fired %d times without a change", calls)
	}
	if !c.Scroll(ctx, ByPixels(10)) || calls != 1 {
		t.Errorf("listeners fired %d times for one change", calls)
	}
}

func TestCanScroll(t *testing.T) {
	ctx := context.Background()
	c := New(DefaultOptions())
	c.Update(ctx, result(20, 100, 10), 1)
	if c.CanScroll(-1) || !c.CanScroll(1) {
		t.Error("CanScroll at the start")
	}
	c.Scroll(ctx, End())
	if !c.CanScroll(-1) || c.CanScroll(1) {
		t.Error("CanScroll at the end")
	}
	if New(Options{}).CanScroll(1) {
		t.Error("disabled controller accepts gestures")
	}
}

func TestParse(t *testing.T) {
	if v, err := ParseInitial("END"); err != nil || v != InitialEnd {
		t.Errorf("ParseInitial(END) = %v, %v", v, err)
	}
	if _, err := ParseInitial("middle"); err == nil {
		t.Error("ParseInitial(middle) succeeded")
	}
	if v, err := ParseAutoScroll("on-growth"); err != nil || v != OnModelGrowth {
		t.Errorf("ParseAutoScroll(on-growth) = %v, %v", v, err)
	}
}

package geom

import (
	"math"
	"testing"

	errs "github.com/matzehuels/cartesian/pkg/errors"
)

func TestRectWidthHeight(t *testing.T) {
	tests := []struct {
		name  string
		rect  Rect
		wantW float64
		wantH float64
	}{
		{
			name:  "positive size",
			rect:  Rect{Left: 10, Top: 20, Right: 50, Bottom: 80},
			wantW: 40,
			wantH: 60,
		},
		{
			name:  "zero size",
			rect:  Rect{Left: 10, Top: 10, Right: 10, Bottom: 10},
			wantW: 0,
			wantH: 0,
		},
		{
			name:  "from origin",
			rect:  RectOf(0, 0, 100, 200),
			wantW: 100,
			wantH: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rect.Width(); got != tt.wantW {
				t.Errorf("Width() = %v, want %v", got, tt.wantW)
			}
			if got := tt.rect.Height(); got != tt.wantH {
				t.Errorf("Height() = %v, want %v", got, tt.wantH)
			}
		})
	}
}

func TestRectInset(t *testing.T) {
	r := RectOf(0, 0, 200, 100)
	in := Insets{Start: 30, Top: 5, End: 10, Bottom: 20}

	ltr := r.Inset(in, false)
	if ltr.Left != 30 || ltr.Right != 190 || ltr.Top != 5 || ltr.Bottom != 80 {
		t.Errorf("LTR Inset() = %+v", ltr)
	}

	rtl := r.Inset(in, true)
	if rtl.Left != 10 || rtl.Right != 170 {
		t.Errorf("RTL Inset() = %+v, want start inset on the right", rtl)
	}
}

func TestRectInsetNeverNegative(t *testing.T) {
	r := RectOf(0, 0, 50, 40)
	got := r.Inset(Insets{Start: 40, End: 40, Top: 30, Bottom: 30}, false)
	if got.Width() < 0 || got.Height() < 0 {
		t.Fatalf("Inset() produced negative size: %+v", got)
	}
	if !got.IsEmpty() {
		t.Errorf("over-inset rectangle should be empty: %+v", got)
	}
}

func TestInsetsMax(t *testing.T) {
	a := Insets{Start: 10, Top: 0, End: 5, Bottom: 20}
	b := Insets{Start: 4, Top: 8, End: 12, Bottom: 1}
	want := Insets{Start: 10, Top: 8, End: 12, Bottom: 20}
	if got := a.Max(b); got != want {
		t.Errorf("Max() = %+v, want %+v", got, want)
	}
}

func TestInsetsEdge(t *testing.T) {
	var in Insets
	for i, p := range Positions {
		in = in.WithEdge(p, float64(i+1))
	}
	for i, p := range Positions {
		if got := in.Edge(p); got != float64(i+1) {
			t.Errorf("Edge(%s) = %v, want %v", p, got, i+1)
		}
	}
}

func TestRangeFold(t *testing.T) {
	r := EmptyRange
	if !r.IsEmpty() {
		t.Fatal("EmptyRange should be empty")
	}
	for _, v := range []float64{3, -2, 7} {
		r = r.Include(v)
	}
	if r.Min != -2 || r.Max != 7 {
		t.Errorf("fold = %v, want [-2, 7]", r)
	}
	if got := EmptyRange.Union(r); got != r {
		t.Errorf("EmptyRange.Union(r) = %v, want %v", got, r)
	}
	if got := r.Union(EmptyRange); got != r {
		t.Errorf("r.Union(EmptyRange) = %v, want %v", got, r)
	}
}

func TestNewRange(t *testing.T) {
	if _, err := NewRange(5, 1); !errs.Is(err, errs.ErrCodeInvalidRange) {
		t.Errorf("NewRange(5, 1) error = %v, want INVALID_RANGE", err)
	}
	r, err := NewRange(1, 1)
	if err != nil {
		t.Fatalf("degenerate range should be valid: %v", err)
	}
	if r.Length() != 0 {
		t.Errorf("Length() = %v, want 0", r.Length())
	}
}

func TestRangeUsable(t *testing.T) {
	tests := []struct {
		name string
		in   Range
		want Range
	}{
		{"regular", Range{-5, 10}, Range{-5, 10}},
		{"degenerate zero", Range{0, 0}, Range{0, 1}},
		{"degenerate value", Range{4, 4}, Range{3, 5}},
		{"empty", EmptyRange, Range{0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Usable()
			if got != tt.want {
				t.Errorf("Usable() = %v, want %v", got, tt.want)
			}
			if got.Length() <= 0 {
				t.Errorf("Usable() length = %v, want > 0", got.Length())
			}
		})
	}
}

func TestPositionParse(t *testing.T) {
	for _, p := range Positions {
		got, err := ParsePosition(p.String())
		if err != nil || got != p {
			t.Errorf("ParsePosition(%q) = %v, %v", p.String(), got, err)
		}
	}
	if _, err := ParsePosition("middle"); err == nil {
		t.Error("ParsePosition(middle) should fail")
	}
	if !Start.IsLeft(false) || Start.IsLeft(true) || !End.IsLeft(true) {
		t.Error("IsLeft does not honor layout direction")
	}
}

func TestDimensions(t *testing.T) {
	d := Dimensions{EntryWidth: 8, Margin: 4, StartPadding: 6, EndPadding: 2}
	if d.SegmentWidth() != 12 {
		t.Errorf("SegmentWidth() = %v, want 12", d.SegmentWidth())
	}

	x := Range{Min: 0, Max: 9}
	if got := SegmentCount(x, 1); got != 10 {
		t.Errorf("SegmentCount() = %v, want 10", got)
	}
	if got := d.ContentWidth(x, 1); got != 128 {
		t.Errorf("ContentWidth() = %v, want 128", got)
	}

	z := d.Scaled(2)
	if z.SegmentWidth() != 24 || z.StartPadding != 6 {
		t.Errorf("Scaled(2) = %+v, paddings must not scale", z)
	}

	if got := d.ContentWidth(EmptyRange, 1); got != 0 {
		t.Errorf("ContentWidth(empty) = %v, want 0", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5.0, 0, 3); got != 3 {
		t.Errorf("Clamp(5, 0, 3) = %v", got)
	}
	if got := Clamp(-1, 0, 3); got != 0 {
		t.Errorf("Clamp(-1, 0, 3) = %v", got)
	}
	if got := Clamp(math.Inf(1), 0, 40); got != 40 {
		t.Errorf("Clamp(+Inf, 0, 40) = %v", got)
	}
}

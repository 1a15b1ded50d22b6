package axis

import (
	"fmt"
	"math"
	"slices"
	"testing"

	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/geom"
)

func ptr[T any](v T) *T { return &v }

func mustStep(t *testing.T, opts StepOptions) *StepPlacer {
	t.Helper()
	p, err := NewStepPlacer(opts)
	if err != nil {
		t.Fatalf("NewStepPlacer() error = %v", err)
	}
	return p
}

func mustCount(t *testing.T, opts CountOptions) *CountPlacer {
	t.Helper()
	p, err := NewCountPlacer(opts)
	if err != nil {
		t.Fatalf("NewCountPlacer() error = %v", err)
	}
	return p
}

func TestAutoStepEndToEnd(t *testing.T) {
	r := geom.Range{Min: -5, Max: 10}
	got, err := PlaceItems(r, 200, 20, AutoStep())
	if err != nil {
		t.Fatalf("PlaceItems() error = %v", err)
	}

	want := []float64{-5, 0, 5, 10}
	if !slices.Equal(got, want) {
		t.Errorf("labels = %v, want %v", got, want)
	}
	if len(got) > 10 {
		t.Errorf("got %d labels, want at most 10", len(got))
	}
	pxPerUnit := 200 / r.Length()
	for i := 1; i < len(got); i++ {
		if gap := (got[i] - got[i-1]) * pxPerUnit; gap < 20 {
			t.Errorf("labels %v and %v are %.1fpx apart, want >= 20", got[i-1], got[i], gap)
		}
	}
}

func TestStepPlacerRequestedStep(t *testing.T) {
	tests := []struct {
		name   string
		r      geom.Range
		height float64
		labelH float64
		step   float64
		want   []float64
	}{
		{
			name: "fits as requested", r: geom.Range{Min: 0, Max: 100},
			height: 1000, labelH: 20, step: 25,
			want: []float64{0, 25, 50, 75, 100},
		},
		{
			name: "raised to a multiple", r: geom.Range{Min: 0, Max: 100},
			height: 100, labelH: 20, step: 5,
			want: []float64{0, 20, 40, 60, 80, 100},
		},
		{
			name: "anchored at min", r: geom.Range{Min: 3, Max: 20},
			height: 170, labelH: 30, step: 2,
			want: []float64{3, 7, 11, 15, 19},
		},
		{
			name: "straddling zero", r: geom.Range{Min: -30, Max: 50},
			height: 80, labelH: 10, step: 3,
			want: []float64{-24, -12, 0, 12, 24, 36, 48},
		},
		{
			name: "entirely negative", r: geom.Range{Min: -10, Max: 0},
			height: 100, labelH: 10, step: 5,
			want: []float64{-10, -5, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustStep(t, StepOptions{Step: ptr(tt.step)})
			got := p.LabelValues(tt.r, tt.height, tt.labelH)
			if !slices.Equal(got, tt.want) {
				t.Errorf("LabelValues() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStepPlacerKeepsLabelSpacing(t *testing.T) {
	tests := []struct {
		name string
		p    *StepPlacer
		r    geom.Range
	}{
		{"small step over a huge range", mustStep(t, StepOptions{Step: ptr(3.0)}), geom.Range{Min: 0, Max: 1e9}},
		{"tiny step straddling zero", mustStep(t, StepOptions{Step: ptr(1e-6)}), geom.Range{Min: -4e8, Max: 6e8}},
		{"auto over a huge range", AutoStep(), geom.Range{Min: 0, Max: 1e15}},
		{"auto over a narrow range", AutoStep(), geom.Range{Min: 1e-3, Max: 2.7e-3}},
	}
	const height, labelH = 200.0, 20.0
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.LabelValues(tt.r, height, labelH)
			if len(got) == 0 || len(got) > int(height/labelH)+1 {
				t.Fatalf("got %d labels on a %vpx axis: %v", len(got), height, got)
			}
			pxPerUnit := height / tt.r.Length()
			for i := 1; i < len(got); i++ {
				if gap := (got[i] - got[i-1]) * pxPerUnit; gap < labelH*(1-1e-6) {
					t.Errorf("labels %v and %v are %.3gpx apart, want >= %v", got[i-1], got[i], gap, labelH)
				}
			}
		})
	}

	// The multiple is exact: 3 * 33333334 is the first multiple of 3 spanning
	// 20px of a 200px axis over [0, 1e9].
	if got := mustStep(t, StepOptions{Step: ptr(3.0)}).Step(geom.Range{Min: 0, Max: 1e9}, height, labelH); got != 3*33333334 {
		t.Errorf("Step() = %v, want %v", got, 3*33333334)
	}
}

func TestStepPlacerNoDrift(t *testing.T) {
	got := AutoStep().LabelValues(geom.Range{Min: 0.1, Max: 0.7}, 300, 20)
	if got[0] != 0.1 || got[len(got)-1] != 0.7 {
		t.Fatalf("labels = %v, want 0.1 .. 0.7", got)
	}
	if !slices.Contains(got, 0.3) {
		t.Errorf("labels = %v, want an exact 0.3", got)
	}
}

func TestCountPlacer(t *testing.T) {
	tests := []struct {
		name   string
		count  *int
		r      geom.Range
		height float64
		want   []float64
	}{
		{"fill", nil, geom.Range{Min: 0, Max: 100}, 100, []float64{0, 20, 40, 60, 80, 100}},
		{"capped", ptr(3), geom.Range{Min: 0, Max: 100}, 100, []float64{0, 50, 100}},
		{"cap above fit", ptr(50), geom.Range{Min: 0, Max: 100}, 100, []float64{0, 20, 40, 60, 80, 100}},
		{"single", ptr(1), geom.Range{Min: 10, Max: 100}, 100, []float64{10}},
		{"degenerate", nil, geom.Range{Min: 4, Max: 4}, 40, []float64{3, 4, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustCount(t, CountOptions{Count: tt.count})
			got := p.LabelValues(tt.r, tt.height, 20)
			if !slices.Equal(got, tt.want) {
				t.Errorf("LabelValues() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountPlacerStraddle(t *testing.T) {
	r := geom.Range{Min: -5, Max: 10}
	got := FillCount().LabelValues(r, 200, 20)
	if got[0] != -5 || got[len(got)-1] != 10 {
		t.Errorf("labels = %v, want -5 .. 10", got)
	}
	pxPerUnit := 200 / r.Length()
	for i := 1; i < len(got); i++ {
		if gap := (got[i] - got[i-1]) * pxPerUnit; gap < 20-1e-9 {
			t.Errorf("labels %v and %v are %.2fpx apart", got[i-1], got[i], gap)
		}
	}
}

func TestSplitIntervalsGivesLeftoverToSlack(t *testing.T) {
	// 7 intervals over [-7, 10] at 170px: 2 negative, 4 positive, 1 left.
	// With it, negative labels sit 70/3 = 23.3px apart, positive ones
	// 100/5 = 20px.
	tests := []struct {
		labelH   float64
		neg, pos int
	}{
		{15, 3, 4},
		{21, 3, 4},
		{25, 2, 4},
	}
	for _, tt := range tests {
		neg, pos := splitIntervals(geom.Range{Min: -7, Max: 10}, 7, 170, tt.labelH)
		if neg != tt.neg || pos != tt.pos {
			t.Errorf("splitIntervals(labelH=%v) = %d, %d, want %d, %d", tt.labelH, neg, pos, tt.neg, tt.pos)
		}
	}
}

func TestZeroIncludedOnce(t *testing.T) {
	ranges := []geom.Range{
		{Min: -5, Max: 10},
		{Min: -0.3, Max: 0.9},
		{Min: -1000, Max: 1},
		{Min: -1, Max: 1e6},
		{Min: -7.3, Max: 13.1},
	}
	placers := map[string]ItemPlacer{
		"auto step":  AutoStep(),
		"step 0.5":   mustStep(t, StepOptions{Step: ptr(0.5)}),
		"fill count": FillCount(),
		"count 4":    mustCount(t, CountOptions{Count: ptr(4)}),
	}
	for name, p := range placers {
		for _, r := range ranges {
			for _, h := range []float64{37, 200, 1000} {
				t.Run(fmt.Sprintf("%s/%v/%v", name, r, h), func(t *testing.T) {
					got := p.LabelValues(r, h, 16)
					zeros := 0
					for _, v := range got {
						if v == 0 {
							zeros++
						}
					}
					if zeros != 1 {
						t.Errorf("labels %v contain %d zeros, want 1", got, zeros)
					}
				})
			}
		}
	}
}

func TestPlacersAreIdempotent(t *testing.T) {
	placers := []ItemPlacer{
		AutoStep(),
		mustStep(t, StepOptions{Step: ptr(0.1)}),
		FillCount(),
		mustCount(t, CountOptions{Count: ptr(7)}),
	}
	ranges := []geom.Range{{Min: 0.1, Max: 0.7}, {Min: -3.3, Max: 17.9}, {Min: 1e-3, Max: 2e-3}}
	for _, p := range placers {
		for _, r := range ranges {
			a := p.LabelValues(r, 313, 18)
			b := p.LabelValues(r, 313, 18)
			if !slices.Equal(a, b) {
				t.Errorf("%T: %v then %v", p, a, b)
			}
			for i := 1; i < len(a); i++ {
				if a[i] <= a[i-1] {
					t.Errorf("%T: labels %v not ascending", p, a)
				}
			}
		}
	}
}

func TestTrivialPlacement(t *testing.T) {
	for _, p := range []ItemPlacer{AutoStep(), FillCount()} {
		if got := p.LabelValues(geom.Range{Min: 2, Max: 8}, 100, 0); !slices.Equal(got, []float64{2}) {
			t.Errorf("%T zero label height = %v, want [2]", p, got)
		}
		if got := p.LabelValues(geom.Range{Min: -2, Max: 8}, 0, 10); !slices.Equal(got, []float64{0}) {
			t.Errorf("%T zero height = %v, want [0]", p, got)
		}
	}
}

func TestShiftTopLines(t *testing.T) {
	r := geom.Range{Min: 0, Max: 100}
	p := mustStep(t, StepOptions{Step: ptr(30.0), ShiftTopLines: true})
	labels := p.LabelValues(r, 100, 20)
	lines := p.LineValues(r, 100, 20)
	if !slices.Equal(labels, []float64{0, 30, 60, 90}) {
		t.Fatalf("labels = %v", labels)
	}
	if !slices.Equal(lines, []float64{0, 30, 60, 90, 100}) {
		t.Errorf("lines = %v, want an extra line at the maximum", lines)
	}

	wide := mustStep(t, StepOptions{Step: ptr(30.0), ShiftTopLines: true, TopLineThreshold: 15})
	if got := wide.LineValues(r, 100, 20); len(got) != 4 {
		t.Errorf("lines = %v, a 10px gap is below the 15px threshold", got)
	}

	plain := mustStep(t, StepOptions{Step: ptr(30.0)})
	if got := plain.LineValues(r, 100, 20); !slices.Equal(got, labels) {
		t.Errorf("lines = %v, want labels when top lines are not shifted", got)
	}
}

func TestMeasurementValues(t *testing.T) {
	if got := AutoStep().MeasurementValues(geom.Range{Min: -5, Max: 10}); !slices.Equal(got, []float64{-5, 0, 10}) {
		t.Errorf("MeasurementValues() = %v", got)
	}
	if got := FillCount().MeasurementValues(geom.Range{Min: 0, Max: 0}); !slices.Equal(got, []float64{0, 1}) {
		t.Errorf("MeasurementValues(degenerate) = %v", got)
	}
}

func TestPreconditions(t *testing.T) {
	if _, err := NewStepPlacer(StepOptions{Step: ptr(-1.0)}); !errs.Is(err, errs.ErrCodeInvalidStep) {
		t.Errorf("negative step error = %v, want INVALID_STEP", err)
	}
	if _, err := NewStepPlacer(StepOptions{Step: ptr(0.0)}); !errs.Is(err, errs.ErrCodeInvalidStep) {
		t.Errorf("zero step error = %v, want INVALID_STEP", err)
	}
	if _, err := NewCountPlacer(CountOptions{Count: ptr(0)}); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("zero count error = %v, want INVALID_CONFIG", err)
	}
	if _, err := NewStepPlacer(StepOptions{TopLineThreshold: -1}); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("negative threshold error = %v, want INVALID_CONFIG", err)
	}
	if _, err := PlaceItems(geom.Range{Min: 5, Max: 1}, 100, 10, AutoStep()); !errs.Is(err, errs.ErrCodeInvalidRange) {
		t.Errorf("out-of-order range error = %v, want INVALID_RANGE", err)
	}
	if _, err := PlaceItems(geom.Range{Min: 0, Max: 1}, -1, 10, AutoStep()); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("negative height error = %v, want INVALID_CONFIG", err)
	}
	if _, err := PlaceItems(geom.Range{Min: 0, Max: 1}, 10, math.NaN(), AutoStep()); err == nil {
		t.Error("NaN label height should fail")
	}
}

func TestAlignedPlacer(t *testing.T) {
	x := geom.Range{Min: 0, Max: 9}
	tests := []struct {
		name    string
		p       AlignedPlacer
		visible geom.Range
		labelW  float64
		want    []float64
	}{
		{"auto spacing", AlignedPlacer{}, x, 25, []float64{0, 3, 6, 9}},
		{"narrow labels", AlignedPlacer{}, geom.Range{Min: 0, Max: 3}, 5, []float64{0, 1, 2, 3}},
		{"offset", AlignedPlacer{Spacing: 2, Offset: 1}, x, 5, []float64{1, 3, 5, 7, 9}},
		{"visible window", AlignedPlacer{Spacing: 3}, geom.Range{Min: 4.2, Max: 9}, 5, []float64{6, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.p.LabelValues(x, 1, tt.visible, 10, tt.labelW)
			if !slices.Equal(got, tt.want) {
				t.Errorf("LabelValues() = %v, want %v", got, tt.want)
			}
		})
	}

	lines := AlignedPlacer{Spacing: 3, ShiftExtremeLines: true}.LineValues(x, 1, x, 10, 5)
	if !slices.Equal(lines, []float64{-0.5, 2.5, 5.5, 8.5, 9.5}) {
		t.Errorf("LineValues() = %v", lines)
	}
	if _, err := NewAlignedPlacer(-1, 0, false); !errs.Is(err, errs.ErrCodeInvalidConfig) {
		t.Errorf("negative spacing error = %v", err)
	}
}

func ExamplePlaceItems() {
	values, err := PlaceItems(geom.Range{Min: -5, Max: 10}, 200, 20, AutoStep())
	if err != nil {
		panic(err)
	}
	fmt.Println(values)
	// Output: [-5 0 5 10]
}

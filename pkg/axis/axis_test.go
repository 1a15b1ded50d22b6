package axis

import (
	"math"
	"testing"

	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
	"github.com/matzehuels/cartesian/pkg/model"
	"github.com/matzehuels/cartesian/pkg/ranges"
	"github.com/matzehuels/cartesian/pkg/text"
)

type recorder struct {
	lines []geom.Point
	texts []string
}

func (r *recorder) Rect(geom.Rect, layout.Style)         {}
func (r *recorder) Polyline([]geom.Point, layout.Style)  {}
func (r *recorder) Line(a, b geom.Point, _ layout.Style) { r.lines = append(r.lines, a, b) }
func (r *recorder) Text(_ geom.Point, s string, _ layout.Anchor, _ layout.Style) {
	r.texts = append(r.texts, s)
}

func measureContext() *layout.MeasureContext {
	m := model.MustNew(model.NewColumns(geom.Start, model.Stacked,
		model.SeriesOf(4, -3), model.SeriesOf(6, -2)))
	return &layout.MeasureContext{
		Bounds:   geom.RectOf(0, 0, 300, 200),
		Model:    m,
		Ranges:   ranges.Aggregate(m),
		Measurer: text.NewMonospace(10),
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestVerticalAxisInsets(t *testing.T) {
	mc := measureContext()
	// Y range is [-5, 10]; the widest measurement label is "-5" or "10".
	labelW := mc.Measurer.Measure("10").Width
	labelH := mc.Measurer.Measure("10").Height

	start := New(geom.Start)
	in := start.Insets(mc, geom.Dimensions{})
	if !near(in.Top, labelH/2) || !near(in.Bottom, labelH/2) || in.Start != 0 {
		t.Errorf("Insets() = %+v, want half a label above and below", in)
	}

	s, e := start.HorizontalInsets(mc, 120)
	want := labelW + DefaultTickLength + DefaultLabelPadding + DefaultLineThickness
	if !near(s, want) || e != 0 {
		t.Errorf("start HorizontalInsets() = %v, %v, want %v, 0", s, e, want)
	}

	// Both heights place two-character labels only.
	s2, _ := start.HorizontalInsets(mc, 40)
	if s2 != s {
		t.Errorf("width changed with free height: %v vs %v", s2, s)
	}

	s, e = New(geom.End).HorizontalInsets(mc, 120)
	if s != 0 || !near(e, want) {
		t.Errorf("end HorizontalInsets() = %v, %v, want 0, %v", s, e, want)
	}
}

func TestVerticalAxisWidthCoversDrawnLabels(t *testing.T) {
	mc := measureContext()
	r := mc.Ranges.YRange(geom.Start).Usable()
	tests := []struct {
		name   string
		placer ItemPlacer
		height float64
	}{
		{"fill count", FillCount(), 200},
		{"count 4", mustCount(t, CountOptions{Count: ptr(4)}), 150},
		{"quarter step", mustStep(t, StepOptions{Step: ptr(0.25)}), 400},
		{"auto step", AutoStep(), 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(geom.Start)
			a.Placer = tt.placer
			s, _ := a.HorizontalInsets(mc, tt.height)

			labels := a.format(tt.placer.LabelValues(r, tt.height, a.labelHeight(mc.Measurer, r)))
			need := text.MaxWidth(mc.Measurer, labels) + a.TickLength + a.LabelPadding + a.LineThickness
			if s+1e-9 < need {
				t.Errorf("reserved %v, labels %v need %v", s, labels, need)
			}
		})
	}
}

func TestHorizontalAxisInsets(t *testing.T) {
	mc := measureContext()
	bottom := New(geom.Bottom)
	bottom.Title = "day"
	in := bottom.Insets(mc, geom.Dimensions{})
	lh := mc.Measurer.Measure("0").Height
	want := lh + DefaultTickLength + DefaultLabelPadding + DefaultLineThickness + lh + DefaultLabelPadding
	if !near(in.Bottom, want) || in.Top != 0 {
		t.Errorf("Insets() = %+v, want bottom %v", in, want)
	}
	if s, e := bottom.HorizontalInsets(mc, 100); s != 0 || e != 0 {
		t.Errorf("horizontal axis reported start/end insets %v, %v", s, e)
	}
}

func TestAxisInsetsEmpty(t *testing.T) {
	mc := &layout.MeasureContext{Ranges: ranges.Aggregate(nil)}
	a := New(geom.Start)
	if in := a.Insets(mc, geom.Dimensions{}); in != (geom.Insets{}) {
		t.Errorf("Insets(empty) = %+v", in)
	}
	if s, e := a.HorizontalInsets(mc, 100); s != 0 || e != 0 {
		t.Errorf("HorizontalInsets(empty) = %v, %v", s, e)
	}
}

func TestAxisDraw(t *testing.T) {
	mc := measureContext()
	res := layout.NewNegotiator(nil).Measure(t.Context(), *mc, nil,
		[]layout.InsetProvider{New(geom.Start), New(geom.Bottom)})
	if res.Empty {
		t.Fatal("measure result is empty")
	}

	a := New(geom.Start)
	a.Placer = mustStep(t, StepOptions{Step: ptr(5.0)})
	rec := &recorder{}
	dc := &layout.DrawContext{
		Canvas:    rec,
		Measurer:  mc.Measurer,
		Result:    res,
		Transform: layout.NewTransform(res, 1, 0),
	}
	a.Draw(dc)

	want := []string{"-5", "0", "5", "10"}
	if len(rec.texts) != len(want) {
		t.Fatalf("drew labels %v, want %v", rec.texts, want)
	}
	for i := range want {
		if rec.texts[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, rec.texts[i], want[i])
		}
	}
	// axis line + a tick and a guideline per value
	if got := len(rec.lines) / 2; got != 1+2*len(want) {
		t.Errorf("drew %d lines, want %d", got, 1+2*len(want))
	}
}

func TestEdgeTable(t *testing.T) {
	content := geom.RectOf(10, 20, 100, 50)
	tests := []struct {
		p        geom.Position
		rtl      bool
		baseline float64
		outward  float64
	}{
		{geom.Start, false, 10, -1},
		{geom.Start, true, 110, 1},
		{geom.End, false, 110, 1},
		{geom.End, true, 10, -1},
		{geom.Top, false, 20, -1},
		{geom.Bottom, true, 70, 1},
	}
	for _, tt := range tests {
		a := New(tt.p)
		if got := a.baseline(content, tt.rtl); got != tt.baseline {
			t.Errorf("%s rtl=%v baseline = %v, want %v", tt.p, tt.rtl, got, tt.baseline)
		}
		if got := a.outward(tt.rtl); got != tt.outward {
			t.Errorf("%s rtl=%v outward = %v, want %v", tt.p, tt.rtl, got, tt.outward)
		}
	}
}

func TestDefaultFormatter(t *testing.T) {
	for v, want := range map[float64]string{5: "5", -2.5: "-2.5", 0.125: "0.125", 1.0 / 3: "0.3333"} {
		if got := DefaultFormatter.Format(v); got != want {
			t.Errorf("Format(%v) = %q, want %q", v, got, want)
		}
	}
}

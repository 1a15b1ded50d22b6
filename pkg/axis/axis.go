// Package axis implements chart axes: where they sit, how much room they
// need, and which values get labels, ticks and guidelines.
//
// There is a single [Axis] type for all four edges. Everything that differs
// by edge lives in a small positional table, so a start axis and an end axis
// run the same code with different signs.
//
// Vertical axes delegate value selection to an [ItemPlacer] ([StepPlacer] or
// [CountPlacer]); horizontal axes use an [AlignedPlacer].
package axis

import (
	"math"

	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
	"github.com/matzehuels/cartesian/pkg/text"
)

// Default axis geometry in pixels.
const (
	DefaultTickLength    = 4.0
	DefaultLineThickness = 1.0
	DefaultLabelPadding  = 4.0
)

// Axis draws one edge of the content area.
type Axis struct {
	Position geom.Position

	// Placer selects values on vertical axes.
	Placer ItemPlacer
	// Aligned selects X values on horizontal axes.
	Aligned AlignedPlacer

	Formatter     text.Formatter
	Title         string
	TickLength    float64
	LineThickness float64
	LabelPadding  float64
	// Guidelines draws lines across the content area at each line value.
	Guidelines bool

	LineStyle      layout.Style
	GuidelineStyle layout.Style
	LabelStyle     layout.Style
}

// New returns an axis at p with default geometry and an auto step placer.
func New(p geom.Position) *Axis {
	return &Axis{
		Position:       p,
		Placer:         AutoStep(),
		Formatter:      DefaultFormatter,
		TickLength:     DefaultTickLength,
		LineThickness:  DefaultLineThickness,
		LabelPadding:   DefaultLabelPadding,
		Guidelines:     p.IsVertical(),
		LineStyle:      layout.Style{Stroke: "#555", StrokeWidth: DefaultLineThickness},
		GuidelineStyle: layout.Style{Stroke: "#ddd", StrokeWidth: DefaultLineThickness},
		LabelStyle:     layout.Style{Fill: "#333"},
	}
}

// DefaultFormatter prints as many fraction digits as the value needs, up to
// four.
var DefaultFormatter = text.FormatterFunc(func(v float64) string {
	return text.Decimal{Digits: min(text.DigitsFor(math.Abs(v)), 4)}.Format(v)
})

// edge is the positional geometry of one axis position.
type edge struct {
	vertical bool
	// leading is true for the start and top edges.
	leading bool
}

var edges = map[geom.Position]edge{
	geom.Start:  {vertical: true, leading: true},
	geom.Top:    {vertical: false, leading: true},
	geom.End:    {vertical: true, leading: false},
	geom.Bottom: {vertical: false, leading: false},
}

// outward returns the sign of the direction pointing away from the content
// area: -1 towards the left or top, +1 towards the right or bottom.
func (a *Axis) outward(rtl bool) float64 {
	e := edges[a.Position]
	if e.vertical && a.Position.IsLeft(rtl) {
		return -1
	}
	if !e.vertical && e.leading {
		return -1
	}
	return 1
}

// baseline returns the canvas coordinate of the axis line: an X for vertical
// axes, a Y for horizontal ones.
func (a *Axis) baseline(content geom.Rect, rtl bool) float64 {
	e := edges[a.Position]
	switch {
	case e.vertical && a.Position.IsLeft(rtl):
		return content.Left
	case e.vertical:
		return content.Right
	case e.leading:
		return content.Top
	default:
		return content.Bottom
	}
}

func (a *Axis) formatter() text.Formatter {
	if a.Formatter == nil {
		return DefaultFormatter
	}
	return a.Formatter
}

func (a *Axis) format(vs []float64) []string {
	f := a.formatter()
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = f.Format(v)
	}
	return out
}

func (a *Axis) measurer(mc *layout.MeasureContext) text.Measurer {
	if mc.Measurer == nil {
		return text.NewMonospace(0)
	}
	return mc.Measurer
}

// labelHeight returns the height of the tallest measurement label.
func (a *Axis) labelHeight(m text.Measurer, r geom.Range) float64 {
	return text.MaxHeight(m, a.format(a.placer().MeasurementValues(r)))
}

func (a *Axis) placer() ItemPlacer {
	if a.Placer == nil {
		return AutoStep()
	}
	return a.Placer
}

func (a *Axis) titleHeight(m text.Measurer) float64 {
	if a.Title == "" {
		return 0
	}
	return m.Measure(a.Title).Height + a.LabelPadding
}

func (a *Axis) yRange(mc *layout.MeasureContext) geom.Range {
	return mc.Ranges.YRange(a.Position).Usable()
}

// Insets reports the axis' space needs. Vertical axes reserve half a label
// above and below the content area so extreme labels are not clipped; their
// width follows in HorizontalInsets. Horizontal axes reserve their full
// height.
func (a *Axis) Insets(mc *layout.MeasureContext, _ geom.Dimensions) geom.Insets {
	m := a.measurer(mc)
	if a.Position.IsVertical() {
		if mc.Ranges.Empty {
			return geom.Insets{}
		}
		half := a.labelHeight(m, a.yRange(mc)) / 2
		return geom.Insets{Top: half, Bottom: half}
	}
	h := m.Measure("0").Height + a.TickLength + a.LabelPadding + a.LineThickness + a.titleHeight(m)
	return geom.Insets{}.WithEdge(a.Position, h)
}

// HorizontalInsets reports the width of a vertical axis: the widest of the
// measurement labels and the labels drawn at freeHeight. Labels depend on
// the height only, and the second margin pass does not change the height, so
// the reserved width covers every label drawn.
func (a *Axis) HorizontalInsets(mc *layout.MeasureContext, freeHeight float64) (start, end float64) {
	if !a.Position.IsVertical() || mc.Ranges.Empty {
		return 0, 0
	}
	m := a.measurer(mc)
	r := a.yRange(mc)
	values := a.placer().MeasurementValues(r)
	values = append(values, a.placer().LabelValues(r, freeHeight, a.labelHeight(m, r))...)
	w := text.MaxWidth(m, a.format(values))
	w += a.TickLength + a.LabelPadding + a.LineThickness + a.titleHeight(m)
	if a.Position == geom.Start {
		return w, 0
	}
	return 0, w
}

// Labels returns the label values a vertical axis shows for the result.
func (a *Axis) Labels(res layout.Result, m text.Measurer) []float64 {
	mc := layout.MeasureContext{Ranges: res.Ranges, Measurer: m}
	r := a.yRange(&mc)
	return a.placer().LabelValues(r, res.Content.Height(), a.labelHeight(a.measurer(&mc), r))
}

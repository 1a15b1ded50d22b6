package marker

import (
	"strings"

	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
	"github.com/matzehuels/cartesian/pkg/model"
	"github.com/matzehuels/cartesian/pkg/text"
)

// Marker highlights targets with a vertical line, a dot per point and a
// label above the content area.
type Marker struct {
	Formatter    text.Formatter
	LabelPadding float64
	PointSize    float64

	LineStyle  layout.Style
	PointStyle layout.Style
	LabelStyle layout.Style
}

// New returns a marker with default styling.
func New() *Marker {
	return &Marker{
		Formatter:    text.Decimal{Digits: 2},
		LabelPadding: 4,
		PointSize:    6,
		LineStyle:    layout.Style{Stroke: "#888", StrokeWidth: 1, Dashed: true},
		PointStyle:   layout.Style{Fill: "#fff", Stroke: "#333", StrokeWidth: 1},
		LabelStyle:   layout.Style{Fill: "#111"},
	}
}

// Insets reserves room above the content area for the label.
func (m *Marker) Insets(mc *layout.MeasureContext, _ geom.Dimensions) geom.Insets {
	measurer := mc.Measurer
	if measurer == nil {
		measurer = text.NewMonospace(0)
	}
	return geom.Insets{Top: measurer.Measure("0").Height + 2*m.LabelPadding}
}

// Label formats the values of targets, layer by layer.
func (m *Marker) Label(targets []Target) string {
	f := m.Formatter
	if f == nil {
		f = text.Decimal{Digits: 2}
	}
	var parts []string
	for _, t := range targets {
		for _, p := range t.Points {
			if t.Kind == model.Candlestick {
				parts = append(parts, "O "+f.Format(p.Candle.Open)+" H "+f.Format(p.Candle.High)+
					" L "+f.Format(p.Candle.Low)+" C "+f.Format(p.Candle.Close))
				continue
			}
			parts = append(parts, f.Format(p.Entry.Y))
		}
	}
	return strings.Join(parts, ", ")
}

// Draw paints the highlight for targets.
func (m *Marker) Draw(dc *layout.DrawContext, targets []Target) {
	if len(targets) == 0 || dc.Result.Empty {
		return
	}
	content := dc.Result.Content
	x := targets[0].CanvasX
	dc.Canvas.Line(geom.Point{X: x, Y: content.Top}, geom.Point{X: x, Y: content.Bottom}, m.LineStyle)

	half := m.PointSize / 2
	for _, t := range targets {
		for _, p := range t.Points {
			dc.Canvas.Rect(geom.Rect{Left: x - half, Top: p.CanvasY - half, Right: x + half, Bottom: p.CanvasY + half}, m.PointStyle)
		}
	}
	dc.Canvas.Text(geom.Point{X: x, Y: content.Top - m.LabelPadding}, m.Label(targets), layout.AnchorMiddle, m.LabelStyle)
}

// Package legend draws the series legend below or above the content area.
//
// Labels travel with the model in its extra store under [LabelsKey]. When
// the key is absent the series names of the model are used.
package legend

import (
	"github.com/samber/lo"

	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layer"
	"github.com/matzehuels/cartesian/pkg/layout"
	"github.com/matzehuels/cartesian/pkg/model"
	"github.com/matzehuels/cartesian/pkg/text"
)

// LabelsKey carries the legend labels in a model's extra store.
var LabelsKey = model.NewKey[[]string]("legend.labels")

// Legend lays out one item per label in rows that wrap at the bounds width.
type Legend struct {
	Position   geom.Position
	SymbolSize float64
	// Spacing separates a symbol from its label and neighboring items.
	Spacing float64
	Padding float64
	Palette layer.Palette
}

// New returns a legend at p. p must be geom.Top or geom.Bottom.
func New(p geom.Position) *Legend {
	return &Legend{Position: p, SymbolSize: 8, Spacing: 8, Padding: 4}
}

// Labels returns the labels of m.
func Labels(m *model.Model) []string {
	if m == nil {
		return nil
	}
	if labels, ok := model.Get(m.Extras, LabelsKey); ok {
		return labels
	}
	var names []string
	for _, d := range m.Datasets {
		names = append(names, lo.FilterMap(d.Series, func(s model.Series, _ int) (string, bool) {
			return s.Name, s.Name != ""
		})...)
	}
	return names
}

type item struct {
	label string
	at    geom.Point
	width float64
}

// rows wraps the items into rows no wider than width.
func (l *Legend) rows(measurer text.Measurer, labels []string, width float64) [][]item {
	var rows [][]item
	var row []item
	x := 0.0
	for _, label := range labels {
		w := l.SymbolSize + l.Spacing + measurer.Measure(label).Width
		if len(row) > 0 && x+w > width {
			rows = append(rows, row)
			row, x = nil, 0
		}
		row = append(row, item{label: label, at: geom.Point{X: x}, width: w})
		x += w + l.Spacing
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

func (l *Legend) rowHeight(measurer text.Measurer) float64 {
	return max(l.SymbolSize, measurer.Measure("0").Height)
}

// Insets reserves the height of all legend rows at the legend's edge.
func (l *Legend) Insets(mc *layout.MeasureContext, _ geom.Dimensions) geom.Insets {
	labels := Labels(mc.Model)
	if len(labels) == 0 || mc.Measurer == nil {
		return geom.Insets{}
	}
	rows := l.rows(mc.Measurer, labels, mc.Bounds.Width())
	h := l.rowsHeight(len(rows), l.rowHeight(mc.Measurer)) + 2*l.Padding
	return geom.Insets{}.WithEdge(l.Position, h)
}

func (l *Legend) rowsHeight(n int, rh float64) float64 {
	return float64(n)*rh + float64(n-1)*l.Spacing/2
}

// Draw paints the legend in the margin at its edge.
func (l *Legend) Draw(dc *layout.DrawContext, m *model.Model) {
	labels := Labels(m)
	if len(labels) == 0 || dc.Result.Empty {
		return
	}
	bounds := dc.Result.Bounds
	rows := l.rows(dc.Measurer, labels, bounds.Width())
	rh := l.rowHeight(dc.Measurer)

	top := bounds.Bottom - l.Padding - l.rowsHeight(len(rows), rh)
	if l.Position == geom.Top {
		top = bounds.Top + l.Padding
	}

	i := 0
	for r, row := range rows {
		y := top + float64(r)*(rh+l.Spacing/2)
		for _, it := range row {
			x := bounds.Left + it.at.X
			if dc.Result.RTL {
				x = bounds.Right - it.at.X - it.width
			}
			symbol := geom.RectOf(x, y+(rh-l.SymbolSize)/2, l.SymbolSize, l.SymbolSize)
			labelX, anchor := x+l.SymbolSize+l.Spacing, layout.AnchorStart
			if dc.Result.RTL {
				symbol = geom.RectOf(x+it.width-l.SymbolSize, symbol.Top, l.SymbolSize, l.SymbolSize)
				labelX, anchor = symbol.Left-l.Spacing, layout.AnchorEnd
			}
			dc.Canvas.Rect(symbol, layout.Style{Fill: l.Palette.Color(i)})
			dc.Canvas.Text(geom.Point{X: labelX, Y: y + rh/2}, it.label, anchor, layout.Style{Fill: "#333"})
			i++
		}
	}
}

package layer

import (
	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
	"github.com/matzehuels/cartesian/pkg/marker"
	"github.com/matzehuels/cartesian/pkg/model"
)

// Column draws column datasets, either grouped side by side or stacked.
type Column struct {
	// Thickness is the width of one column at zoom 1.
	Thickness float64
	// Spacing is the gap between the columns of a group at zoom 1.
	Spacing float64
	// Margin is the gap between neighboring groups at zoom 1.
	Margin  float64
	Palette Palette
}

// NewColumn returns a column layer with default geometry.
func NewColumn() *Column {
	return &Column{Thickness: 8, Spacing: 2, Margin: 16}
}

func (c *Column) Kind() model.Kind { return model.Column }

// Dimensions sizes the entry to fit one group of columns.
func (c *Column) Dimensions(mc *layout.MeasureContext) geom.Dimensions {
	n := 1
	if d, ok := mc.Model.Dataset(model.Column); ok && d.Merge == model.Grouped {
		n = max(1, len(d.Series))
	}
	return geom.Dimensions{EntryWidth: c.groupWidth(n, 1), Margin: c.Margin}
}

func (c *Column) groupWidth(n int, zoom float64) float64 {
	return (float64(n)*c.Thickness + float64(n-1)*c.Spacing) * zoom
}

func (c *Column) Draw(dc *layout.DrawContext, m *model.Model) marker.LayerPoints {
	out := marker.LayerPoints{Kind: model.Column}
	d, ok := m.Dataset(model.Column)
	if !ok || dc.Result.Empty {
		return out
	}
	t := dc.Transform
	zoom := zoomOf(dc)
	thickness := c.Thickness * zoom
	baseline := t.YRange(d.Axis).Clamp(0)

	for _, x := range visibleXs(t, d) {
		cx := t.CanvasX(x)
		col := marker.Column{X: x, CanvasX: cx}
		var pos, neg float64
		for i, s := range d.Series {
			e, ok := s.At(x)
			if !ok {
				continue
			}
			from, to := baseline, e.Y
			left, right := cx-thickness/2, cx+thickness/2
			if d.Merge == model.Stacked {
				if e.Y >= 0 {
					from, to = pos, pos+e.Y
					pos = to
				} else {
					from, to = neg, neg+e.Y
					neg = to
				}
			} else {
				left = c.groupLeft(cx, len(d.Series), i, zoom, t.RTL)
				right = left + thickness
			}
			y0, y1 := t.CanvasY(d.Axis, from), t.CanvasY(d.Axis, to)
			dc.Canvas.Rect(geom.Rect{Left: left, Top: min(y0, y1), Right: right, Bottom: max(y0, y1)},
				layout.Style{Fill: c.Palette.Color(i)})
			col.Points = append(col.Points, marker.Point{Series: i, Entry: e, CanvasY: y1})
		}
		if len(col.Points) > 0 {
			out.Columns = append(out.Columns, col)
		}
	}
	return out
}

// groupLeft returns the left edge of column i in a group of n centered at
// cx. In a right-to-left layout the first column is the rightmost one.
func (c *Column) groupLeft(cx float64, n, i int, zoom float64, rtl bool) float64 {
	thickness, spacing := c.Thickness*zoom, c.Spacing*zoom
	half := c.groupWidth(n, zoom) / 2
	if rtl {
		return cx + half - float64(i+1)*thickness - float64(i)*spacing
	}
	return cx - half + float64(i)*(thickness+spacing)
}

func zoomOf(dc *layout.DrawContext) float64 {
	if dc.Zoom <= 0 {
		return 1
	}
	return dc.Zoom
}

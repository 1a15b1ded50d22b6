package layer

import (
	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
	"github.com/matzehuels/cartesian/pkg/marker"
	"github.com/matzehuels/cartesian/pkg/model"
)

// Line draws line datasets as one polyline per series, with optional point
// dots.
type Line struct {
	Thickness float64
	PointSize float64
	// Spacing is the distance between neighboring points at zoom 1.
	Spacing float64
	Palette Palette
}

// NewLine returns a line layer with default geometry.
func NewLine() *Line {
	return &Line{Thickness: 2, PointSize: 0, Spacing: 32}
}

func (l *Line) Kind() model.Kind { return model.Line }

func (l *Line) Dimensions(*layout.MeasureContext) geom.Dimensions {
	return geom.Dimensions{EntryWidth: l.PointSize, Margin: max(0, l.Spacing-l.PointSize)}
}

// Insets keeps points and strokes at the range extremes from being cut off
// by the content edges.
func (l *Line) Insets(mc *layout.MeasureContext, _ geom.Dimensions) geom.Insets {
	if _, ok := mc.Model.Dataset(model.Line); !ok {
		return geom.Insets{}
	}
	half := max(l.PointSize, l.Thickness) / 2
	return geom.Insets{Top: half, Bottom: half}
}

func (l *Line) Draw(dc *layout.DrawContext, m *model.Model) marker.LayerPoints {
	out := marker.LayerPoints{Kind: model.Line}
	d, ok := m.Dataset(model.Line)
	if !ok || dc.Result.Empty {
		return out
	}
	t := dc.Transform
	vis := t.VisibleX()

	for i, s := range d.Series {
		var pts []geom.Point
		for _, e := range s.Entries {
			if vis.Contains(e.X) {
				pts = append(pts, geom.Point{X: t.CanvasX(e.X), Y: t.CanvasY(d.Axis, e.Y)})
			}
		}
		if len(pts) > 1 {
			dc.Canvas.Polyline(pts, layout.Style{Stroke: l.Palette.Color(i), StrokeWidth: l.Thickness})
		}
		if l.PointSize <= 0 {
			continue
		}
		half := l.PointSize / 2
		for _, p := range pts {
			dc.Canvas.Rect(geom.Rect{Left: p.X - half, Top: p.Y - half, Right: p.X + half, Bottom: p.Y + half},
				layout.Style{Fill: l.Palette.Color(i)})
		}
	}

	for _, x := range visibleXs(t, d) {
		col := marker.Column{X: x, CanvasX: t.CanvasX(x)}
		for i, s := range d.Series {
			if e, ok := s.At(x); ok {
				col.Points = append(col.Points, marker.Point{Series: i, Entry: e, CanvasY: t.CanvasY(d.Axis, e.Y)})
			}
		}
		out.Columns = append(out.Columns, col)
	}
	return out
}

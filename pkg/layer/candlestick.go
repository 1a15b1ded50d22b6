package layer

import (
	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
	"github.com/matzehuels/cartesian/pkg/marker"
	"github.com/matzehuels/cartesian/pkg/model"
)

// Candlestick draws candle datasets: a wick from low to high and a body from
// open to close.
type Candlestick struct {
	BodyWidth float64
	WickWidth float64
	Margin    float64
	Bullish   string
	Bearish   string
}

// NewCandlestick returns a candlestick layer with default geometry.
func NewCandlestick() *Candlestick {
	return &Candlestick{BodyWidth: 8, WickWidth: 1, Margin: 8, Bullish: "#26a69a", Bearish: "#ef5350"}
}

func (c *Candlestick) Kind() model.Kind { return model.Candlestick }

func (c *Candlestick) Dimensions(*layout.MeasureContext) geom.Dimensions {
	return geom.Dimensions{EntryWidth: c.BodyWidth, Margin: c.Margin}
}

func (c *Candlestick) Draw(dc *layout.DrawContext, m *model.Model) marker.LayerPoints {
	out := marker.LayerPoints{Kind: model.Candlestick}
	d, ok := m.Dataset(model.Candlestick)
	if !ok || dc.Result.Empty {
		return out
	}
	t := dc.Transform
	half := c.BodyWidth * zoomOf(dc) / 2
	vis := t.VisibleX()

	for _, k := range d.Candles {
		if !vis.Contains(k.X) {
			continue
		}
		color := c.Bearish
		if k.Bullish() {
			color = c.Bullish
		}
		cx := t.CanvasX(k.X)
		high, low := t.CanvasY(d.Axis, k.High), t.CanvasY(d.Axis, k.Low)
		dc.Canvas.Line(geom.Point{X: cx, Y: high}, geom.Point{X: cx, Y: low},
			layout.Style{Stroke: color, StrokeWidth: c.WickWidth})

		open, closing := t.CanvasY(d.Axis, k.Open), t.CanvasY(d.Axis, k.Close)
		body := geom.Rect{Left: cx - half, Top: min(open, closing), Right: cx + half, Bottom: max(open, closing)}
		if body.Height() < 1 {
			body.Bottom = body.Top + 1
		}
		dc.Canvas.Rect(body, layout.Style{Fill: color})

		out.Columns = append(out.Columns, marker.Column{
			X:       k.X,
			CanvasX: cx,
			Points:  []marker.Point{{Candle: k, CanvasY: closing}},
		})
	}
	return out
}

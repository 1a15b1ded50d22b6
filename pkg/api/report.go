package api

import (
	"github.com/matzehuels/cartesian/pkg/chart"
	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/marker"
	"github.com/matzehuels/cartesian/pkg/model"
)

// Rect is a rectangle in canvas pixels.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// Margins are the insets around the content rectangle.
type Margins struct {
	Start  float64 `json:"start"`
	Top    float64 `json:"top"`
	End    float64 `json:"end"`
	Bottom float64 `json:"bottom"`
}

// Range is a closed value interval.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Ranges are the aggregated model ranges. Empty ranges are null.
type Ranges struct {
	X     *Range                   `json:"x"`
	XStep float64                  `json:"x_step"`
	Y     map[geom.Position]*Range `json:"y"`
}

// Measurement describes one measured frame.
type Measurement struct {
	Empty        bool    `json:"empty"`
	Bounds       Rect    `json:"bounds"`
	Content      Rect    `json:"content"`
	Margins      Margins `json:"margins"`
	Ranges       Ranges  `json:"ranges"`
	ContentWidth float64 `json:"content_width"`
	Zoom         float64 `json:"zoom"`
	ZoomMin      float64 `json:"zoom_min"`
	ZoomMax      float64 `json:"zoom_max"`
	Scroll       float64 `json:"scroll"`
	MaxScroll    float64 `json:"max_scroll"`
}

// MarkerPoint is one highlighted value. Entry is set for series layers,
// Candle for the candlestick layer.
type MarkerPoint struct {
	Series  int           `json:"series"`
	Entry   *model.Entry  `json:"entry,omitempty"`
	Candle  *model.Candle `json:"candle,omitempty"`
	CanvasY float64       `json:"canvas_y"`
}

// MarkerTarget is the highlight for one layer.
type MarkerTarget struct {
	Layer   int           `json:"layer"`
	Kind    model.Kind    `json:"kind"`
	X       float64       `json:"x"`
	CanvasX float64       `json:"canvas_x"`
	Points  []MarkerPoint `json:"points"`
}

func rectOf(r geom.Rect) Rect {
	return Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}
}

func rangeOf(r geom.Range) *Range {
	if r.IsEmpty() {
		return nil
	}
	return &Range{Min: r.Min, Max: r.Max}
}

// Measure reports the last measuring pass of ch.
func Measure(ch *chart.Chart) Measurement {
	res := ch.Result()
	zoom := ch.Zoomer()
	out := Measurement{
		Empty:   res.Empty,
		Bounds:  rectOf(res.Bounds),
		Content: rectOf(res.Content),
		Margins: Margins{
			Start:  res.Margins.Start,
			Top:    res.Margins.Top,
			End:    res.Margins.End,
			Bottom: res.Margins.Bottom,
		},
		Ranges: Ranges{
			X:     rangeOf(res.Ranges.X),
			XStep: res.Ranges.XStep,
			Y:     make(map[geom.Position]*Range, len(res.Ranges.Y)),
		},
		Zoom:      zoom.Value(),
		ZoomMin:   zoom.ValueRange().Min,
		ZoomMax:   zoom.ValueRange().Max,
		Scroll:    ch.Scroller().Value(),
		MaxScroll: ch.Scroller().MaxValue(),
	}
	for p, r := range res.Ranges.Y {
		out.Ranges.Y[p] = rangeOf(r)
	}
	if !res.Empty {
		out.ContentWidth = res.ContentWidth(zoom.Value())
	}
	return out
}

// Targets converts resolved marker targets. The result is never nil.
func Targets(targets []marker.Target) []MarkerTarget {
	out := make([]MarkerTarget, 0, len(targets))
	for _, t := range targets {
		mt := MarkerTarget{
			Layer:   t.Layer,
			Kind:    t.Kind,
			X:       t.X,
			CanvasX: t.CanvasX,
			Points:  make([]MarkerPoint, 0, len(t.Points)),
		}
		for _, p := range t.Points {
			mp := MarkerPoint{Series: p.Series, CanvasY: p.CanvasY}
			if t.Kind == model.Candlestick {
				mp.Candle = &p.Candle
			} else {
				mp.Entry = &p.Entry
			}
			mt.Points = append(mt.Points, mp)
		}
		out = append(out, mt)
	}
	return out
}

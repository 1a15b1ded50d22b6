// Package layer draws the data of a chart: columns, lines and candlesticks.
//
// A layer reports its per-entry horizontal geometry during the measuring
// pass and paints its dataset during the draw pass. Drawing returns where
// every entry ended up on the canvas as [marker.LayerPoints], so markers can
// be resolved from the frame that was actually drawn.
//
// Layers are stateless between frames: everything they need arrives in the
// [layout.DrawContext] and the model.
package layer

import (
	"github.com/samber/lo"

	"github.com/matzehuels/cartesian/pkg/layout"
	"github.com/matzehuels/cartesian/pkg/marker"
	"github.com/matzehuels/cartesian/pkg/model"
)

// Layer is one visual series kind of a chart.
type Layer interface {
	layout.DimensionsProvider
	// Kind is the dataset kind the layer draws.
	Kind() model.Kind
	// Draw paints the layer's dataset of m and reports the drawn positions.
	// Nothing is drawn when m holds no dataset of the layer's kind.
	Draw(dc *layout.DrawContext, m *model.Model) marker.LayerPoints
}

// DefaultPalette is the series color cycle used when a layer has none.
var DefaultPalette = []string{"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f", "#edc948"}

// Palette cycles through colors by series index.
type Palette []string

// Color returns the color of series i.
func (p Palette) Color(i int) string {
	if len(p) == 0 {
		p = DefaultPalette
	}
	return p[i%len(p)]
}

// visibleXs returns the X values of d that fall in the visible range of the
// transform, ascending.
func visibleXs(t layout.Transform, d model.Dataset) []float64 {
	vis := t.VisibleX()
	return lo.Filter(d.Xs(), func(x float64, _ int) bool { return vis.Contains(x) })
}

// Find returns the layer drawing kind.
func Find(layers []Layer, kind model.Kind) (Layer, bool) {
	return lo.Find(layers, func(l Layer) bool { return l.Kind() == kind })
}

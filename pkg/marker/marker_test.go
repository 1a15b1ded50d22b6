package marker

import (
	"testing"

	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
	"github.com/matzehuels/cartesian/pkg/model"
	"github.com/matzehuels/cartesian/pkg/text"
)

// columns builds a layer with one single-point column per x, drawn 10px
// apart starting at canvas X 0.
func columns(kind model.Kind, xs ...float64) LayerPoints {
	lp := LayerPoints{Kind: kind}
	for _, x := range xs {
		lp.Columns = append(lp.Columns, Column{
			X:       x,
			CanvasX: x * 10,
			Points:  []Point{{Entry: model.Entry{X: x, Y: x * 2}, CanvasY: 50}},
		})
	}
	return lp
}

func TestResolveThreeLayersSameX(t *testing.T) {
	content := geom.RectOf(0, 0, 200, 100)
	layers := []LayerPoints{
		columns(model.Column, 4, 5, 6),
		columns(model.Line, 5),
		columns(model.Candlestick, 3, 5, 9),
	}
	got := Resolve(52, content, layers)
	if len(got) != 3 {
		t.Fatalf("Resolve() returned %d targets, want 3", len(got))
	}
	for i, tgt := range got {
		if tgt.Layer != i || tgt.Kind != layers[i].Kind {
			t.Errorf("target %d = layer %d (%s), want layer %d", i, tgt.Layer, tgt.Kind, i)
		}
		if tgt.X != 5 {
			t.Errorf("target %d X = %v, want 5", i, tgt.X)
		}
	}
}

func TestResolveNearestXWins(t *testing.T) {
	content := geom.RectOf(0, 0, 200, 100)
	layers := []LayerPoints{
		columns(model.Column, 2, 4),
		columns(model.Line, 3),
	}
	got := Resolve(31, content, layers)
	if len(got) != 1 || got[0].Layer != 1 || got[0].X != 3 {
		t.Fatalf("Resolve() = %+v, want the line layer at X=3", got)
	}
}

func TestResolveTieFavorsEarlierLayer(t *testing.T) {
	content := geom.RectOf(0, 0, 200, 100)
	layers := []LayerPoints{
		columns(model.Column, 2),
		columns(model.Line, 4),
	}
	got := Resolve(30, content, layers)
	if len(got) != 1 || got[0].Layer != 0 || got[0].X != 2 {
		t.Fatalf("Resolve() = %+v, want the first layer on a tie", got)
	}
}

func TestResolveOutsideContent(t *testing.T) {
	content := geom.RectOf(100, 0, 50, 100)
	layers := []LayerPoints{columns(model.Line, 1, 2, 3, 20)}

	if got := Resolve(40, content, layers); len(got) != 0 {
		t.Errorf("Resolve() = %+v, want no targets when nothing is visible", got)
	}
	if got := Resolve(40, content, nil); len(got) != 0 {
		t.Errorf("Resolve(nil) = %+v", got)
	}

	layers = append(layers, columns(model.Column, 12))
	got := Resolve(40, content, layers)
	if len(got) != 1 || got[0].X != 12 {
		t.Errorf("Resolve() = %+v, want the only visible column", got)
	}
}

func TestMarkerLabel(t *testing.T) {
	m := New()
	m.Formatter = text.Decimal{Digits: 1}
	targets := []Target{
		{Kind: model.Column, Points: []Point{{Entry: model.Entry{Y: 3}}, {Entry: model.Entry{Y: 4.25}}}},
		{Kind: model.Candlestick, Points: []Point{{Candle: model.Candle{Open: 1, High: 4, Low: 0.5, Close: 2}}}},
	}
	want := "3.0, 4.2, O 1.0 H 4.0 L 0.5 C 2.0"
	if got := m.Label(targets); got != want {
		t.Errorf("Label() = %q, want %q", got, want)
	}
}

func TestMarkerInsets(t *testing.T) {
	m := New()
	mc := &layout.MeasureContext{Measurer: text.NewMonospace(10)}
	in := m.Insets(mc, geom.Dimensions{})
	if in.Top != mc.Measurer.Measure("0").Height+8 || in.Start != 0 || in.Bottom != 0 {
		t.Errorf("Insets() = %+v", in)
	}
}

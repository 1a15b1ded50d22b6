package scroll

import (
	"github.com/matzehuels/cartesian/pkg/layout"
)

// Context is the geometry scroll requests resolve against: the latest
// measuring result and the zoom it is drawn at.
type Context struct {
	Result layout.Result
	Zoom   float64
}

func (c Context) transform() layout.Transform {
	zoom := c.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return layout.NewTransform(c.Result, zoom, 0)
}

// Request is a scroll target. Absolute requests ignore the current value;
// relative requests are offsets from it.
type Request interface {
	// Target returns the unclamped scroll value the request asks for.
	Target(sc Context, value, maxValue float64) float64
}

type pixels float64

func (p pixels) Target(_ Context, _, _ float64) float64 { return float64(p) }

// Pixels requests the absolute scroll value px.
func Pixels(px float64) Request { return pixels(px) }

type toX struct{ x, bias float64 }

func (r toX) Target(sc Context, _, _ float64) float64 {
	return sc.transform().Offset(r.x) - r.bias*sc.Result.Content.Width()
}

// X requests the scroll value that places the entry at x at fraction bias
// of the content width, measured from the leading edge: 0 aligns it with
// the leading edge, 0.5 centers it, 1 aligns it with the trailing edge.
func X(x, bias float64) Request { return toX{x: x, bias: bias} }

type edge bool

func (e edge) Target(_ Context, _, maxValue float64) float64 {
	if e {
		return maxValue
	}
	return 0
}

// Start requests the leading edge of the content.
func Start() Request { return edge(false) }

// End requests the trailing edge of the content.
func End() Request { return edge(true) }

type byPixels float64

func (d byPixels) Target(_ Context, value, _ float64) float64 { return value + float64(d) }

// ByPixels requests a scroll by d pixels from the current value.
func ByPixels(d float64) Request { return byPixels(d) }

type byX float64

func (d byX) Target(sc Context, value, _ float64) float64 {
	t := sc.transform()
	return value + float64(d)/t.XStep*t.Dimensions.SegmentWidth()
}

// ByX requests a scroll by dx data units from the current value.
func ByX(dx float64) Request { return byX(dx) }

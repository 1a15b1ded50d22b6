package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/cartesian/pkg/geom"
)

// Transform maps data values to canvas pixels for one frame.
type Transform struct {
	Content geom.Rect
	// Dimensions are already scaled by the current zoom.
	Dimensions geom.Dimensions
	X          geom.Range
	XStep      float64
	Y          map[geom.Position]geom.Range
	Scroll     float64
	RTL        bool
}

// NewTransform builds the transform for res at the given zoom and scroll.
func NewTransform(res Result, zoom, scroll float64) Transform {
	step := res.Ranges.XStep
	if step <= 0 {
		step = 1
	}
	return Transform{
		Content:    res.Content,
		Dimensions: res.Dimensions.Scaled(zoom),
		X:          res.Ranges.X,
		XStep:      step,
		Y:          res.Ranges.Y,
		Scroll:     scroll,
		RTL:        res.RTL,
	}
}

// Offset returns the distance in content pixels from the leading edge of the
// content area to the center of the entry at x, ignoring scroll.
func (t Transform) Offset(x float64) float64 {
	seg := t.Dimensions.SegmentWidth()
	return t.Dimensions.StartPadding + seg/2 + (x-t.X.Min)/t.XStep*seg
}

// CanvasX returns the canvas X of the center of the entry at x.
func (t Transform) CanvasX(x float64) float64 {
	off := t.Offset(x) - t.Scroll
	if t.RTL {
		return t.Content.Right - off
	}
	return t.Content.Left + off
}

// XAt inverts CanvasX. The result is not snapped to an entry.
func (t Transform) XAt(canvasX float64) float64 {
	seg := t.Dimensions.SegmentWidth()
	if seg <= 0 {
		return t.X.Min
	}
	off := canvasX - t.Content.Left
	if t.RTL {
		off = t.Content.Right - canvasX
	}
	off += t.Scroll
	return t.X.Min + (off-t.Dimensions.StartPadding-seg/2)/seg*t.XStep
}

// YRange returns the usable Y range of the axis at p, falling back to the
// union of all Y ranges.
func (t Transform) YRange(p geom.Position) geom.Range {
	if y, ok := t.Y[p]; ok {
		return y.Usable()
	}
	all := geom.EmptyRange
	for _, y := range t.Y {
		all = all.Union(y)
	}
	return all.Usable()
}

// CanvasY returns the canvas Y of value y on the axis at p.
func (t Transform) CanvasY(p geom.Position, y float64) float64 {
	return t.Content.Bottom - t.YRange(p).Fraction(y)*t.Content.Height()
}

// VisibleX returns the X range whose entry centers lie inside the content
// area, widened by one step on each side so partially visible entries are
// drawn too.
func (t Transform) VisibleX() geom.Range {
	a, b := t.XAt(t.Content.Left), t.XAt(t.Content.Right)
	lo, hi := math.Min(a, b)-t.XStep, math.Max(a, b)+t.XStep
	return geom.Range{Min: math.Max(lo, t.X.Min), Max: math.Min(hi, t.X.Max)}
}

func formatRect(r geom.Rect) string {
	return fmt.Sprintf("%.1fx%.1f@%.1f,%.1f", r.Width(), r.Height(), r.Left, r.Top)
}

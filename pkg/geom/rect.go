// Package geom holds the small geometric value types shared by the layout
// pipeline: rectangles, per-edge insets, numeric ranges, edge positions and
// per-entry horizontal dimensions.
//
// All coordinates are canvas pixels with the origin in the top-left corner,
// X growing rightwards and Y growing downwards.
package geom

import "golang.org/x/exp/constraints"

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	Left, Top     float64
	Right, Bottom float64
}

// RectOf builds a rectangle from its origin and size.
func RectOf(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Right: left + width, Bottom: top + height}
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// CenterX returns the horizontal center point of the rectangle.
func (r Rect) CenterX() float64 { return (r.Left + r.Right) / 2 }

// CenterY returns the vertical center point of the rectangle.
func (r Rect) CenterY() float64 { return (r.Top + r.Bottom) / 2 }

// IsEmpty reports whether the rectangle has no drawable area.
func (r Rect) IsEmpty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// ContainsX reports whether x lies within the horizontal span, inclusive.
func (r Rect) ContainsX(x float64) bool { return x >= r.Left && x <= r.Right }

// Contains reports whether the point lies inside the rectangle, inclusive.
func (r Rect) Contains(x, y float64) bool {
	return r.ContainsX(x) && y >= r.Top && y <= r.Bottom
}

// Inset shrinks the rectangle by the given insets resolved for the layout
// direction. The result never has a negative size: an edge that would cross
// its opposite edge is clamped onto it.
func (r Rect) Inset(in Insets, rtl bool) Rect {
	left, right := in.Left(rtl), in.Right(rtl)
	out := Rect{
		Left:   r.Left + left,
		Top:    r.Top + in.Top,
		Right:  r.Right - right,
		Bottom: r.Bottom - in.Bottom,
	}
	if out.Right < out.Left {
		out.Right = out.Left
	}
	if out.Bottom < out.Top {
		out.Bottom = out.Top
	}
	return out
}

// Clamp constrains v to [lo, hi]. If lo > hi, lo wins.
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// Point is a location in canvas pixels.
type Point struct {
	X, Y float64
}

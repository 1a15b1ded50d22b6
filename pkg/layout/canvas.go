package layout

import (
	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/text"
)

// Anchor is the horizontal alignment of drawn text.
type Anchor int

const (
	AnchorStart Anchor = iota
	AnchorMiddle
	AnchorEnd
)

// Style describes how a shape or text is painted. Colors are CSS color
// strings; an empty string means "none".
type Style struct {
	Fill        string
	Stroke      string
	StrokeWidth float64
	Opacity     float64
	Dashed      bool
	FontSize    float64
}

// Canvas is the drawing surface a chart paints on. Coordinates are canvas
// pixels; text is positioned at its baseline-center vertically.
type Canvas interface {
	Rect(r geom.Rect, s Style)
	Line(a, b geom.Point, s Style)
	Polyline(points []geom.Point, s Style)
	Text(at geom.Point, label string, anchor Anchor, s Style)
}

// DrawContext is the input of one draw pass.
type DrawContext struct {
	Canvas    Canvas
	Measurer  text.Measurer
	Result    Result
	Transform Transform
	Zoom      float64
}

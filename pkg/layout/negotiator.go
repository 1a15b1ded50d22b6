package layout

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/model"
	"github.com/matzehuels/cartesian/pkg/observability"
	"github.com/matzehuels/cartesian/pkg/ranges"
	"github.com/matzehuels/cartesian/pkg/text"
)

// MeasureContext is the read-only input of one measuring pass.
type MeasureContext struct {
	Bounds   geom.Rect
	RTL      bool
	Model    *model.Model
	Ranges   ranges.Ranges
	Measurer text.Measurer
}

// DimensionsProvider reports a layer's per-entry horizontal geometry.
type DimensionsProvider interface {
	Dimensions(mc *MeasureContext) geom.Dimensions
}

// InsetProvider reports the margins a component needs around the content
// area. dims are the combined, unzoomed layer dimensions.
type InsetProvider interface {
	Insets(mc *MeasureContext, dims geom.Dimensions) geom.Insets
}

// HorizontalInsetProvider is implemented by requesters whose start and end
// insets depend on the height left for the content area.
type HorizontalInsetProvider interface {
	HorizontalInsets(mc *MeasureContext, freeHeight float64) (start, end float64)
}

// Result is the outcome of a measuring pass.
type Result struct {
	Bounds     geom.Rect
	Content    geom.Rect
	Margins    geom.Insets
	Dimensions geom.Dimensions
	Ranges     ranges.Ranges
	RTL        bool
	// Empty is set when there is nothing to draw: no data, or no room left
	// for the content area.
	Empty bool
}

// ContentWidth returns the zoomed width of all entries, paddings included.
func (r Result) ContentWidth(zoom float64) float64 {
	return r.Dimensions.Scaled(zoom).ContentWidth(r.Ranges.X, r.Ranges.XStep)
}

// MaxScroll returns how far the content can scroll at the given zoom.
func (r Result) MaxScroll(zoom float64) float64 {
	if r.Empty {
		return 0
	}
	return max(0, r.ContentWidth(zoom)-r.Content.Width())
}

// Negotiator runs measuring passes.
type Negotiator struct {
	Logger *log.Logger
}

// NewNegotiator returns a negotiator that logs to logger. A nil logger
// discards output.
func NewNegotiator(logger *log.Logger) *Negotiator {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Negotiator{Logger: logger}
}

// Measure negotiates the content rectangle for mc.Bounds. It performs one
// dimension pass and exactly two margin passes.
func (n *Negotiator) Measure(ctx context.Context, mc MeasureContext, layers []DimensionsProvider, requesters []InsetProvider) Result {
	start := time.Now()
	hooks := observability.Layout()
	hooks.OnMeasureStart(ctx, len(layers), len(requesters))

	res := n.measure(mc, layers, requesters)

	hooks.OnMeasureComplete(ctx, res.Content.Width(), res.Content.Height(), res.Empty, time.Since(start))
	n.logger().Debug("measured",
		"bounds", formatRect(res.Bounds),
		"content", formatRect(res.Content),
		"empty", res.Empty)
	return res
}

func (n *Negotiator) measure(mc MeasureContext, layers []DimensionsProvider, requesters []InsetProvider) Result {
	res := Result{Bounds: mc.Bounds, Ranges: mc.Ranges, RTL: mc.RTL}
	if mc.Bounds.IsEmpty() {
		res.Content = geom.RectOf(mc.Bounds.Left, mc.Bounds.Top, 0, 0)
		res.Empty = true
		return res
	}

	var dims geom.Dimensions
	for _, l := range layers {
		dims = dims.Max(l.Dimensions(&mc))
	}
	res.Dimensions = dims

	var insets geom.Insets
	for _, r := range requesters {
		insets = insets.Max(nonNegative(r.Insets(&mc, dims)))
	}
	candidate := mc.Bounds.Inset(insets, mc.RTL)

	for _, r := range requesters {
		h, ok := r.(HorizontalInsetProvider)
		if !ok {
			continue
		}
		s, e := h.HorizontalInsets(&mc, candidate.Height())
		insets.Start = max(insets.Start, s)
		insets.End = max(insets.End, e)
	}

	res.Margins = insets
	res.Content = mc.Bounds.Inset(insets, mc.RTL)
	res.Empty = mc.Ranges.Empty || res.Content.IsEmpty()
	return res
}

func (n *Negotiator) logger() *log.Logger {
	if n.Logger == nil {
		n.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return n.Logger
}

func nonNegative(in geom.Insets) geom.Insets {
	return geom.Insets{
		Start:  max(in.Start, 0),
		Top:    max(in.Top, 0),
		End:    max(in.End, 0),
		Bottom: max(in.Bottom, 0),
	}
}

// Package chart wires the layout engine into one object a host can drive.
//
// A [Chart] owns the long-lived state of a chart view: the model (and its
// transition animation), the scroll and zoom controllers, and the result of
// the last measuring pass. The host calls, from a single goroutine:
//
//	c.Measure(ctx, bounds)      // when the view is laid out or resized
//	c.Draw(ctx, canvas)         // to paint a frame
//	c.Tick(ctx, now)            // once per frame while it returns true
//	c.Scroll / c.Zoom / c.MarkerTargets   // from gesture handlers
//
// Models produced on another goroutine are passed in through [Chart.Handoff]
// and picked up on the next Tick.
package chart

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cartesian/pkg/diff"
	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
	"github.com/matzehuels/cartesian/pkg/marker"
	"github.com/matzehuels/cartesian/pkg/model"
	"github.com/matzehuels/cartesian/pkg/ranges"
	"github.com/matzehuels/cartesian/pkg/scroll"
	"github.com/matzehuels/cartesian/pkg/state"
	"github.com/matzehuels/cartesian/pkg/text"
	"github.com/matzehuels/cartesian/pkg/zoom"
)

// Chart is one chart view. It is not safe for concurrent use, except for
// [Chart.Handoff].
type Chart struct {
	cfg        Config
	logger     *log.Logger
	negotiator *layout.Negotiator
	dims       []layout.DimensionsProvider
	requesters []layout.InsetProvider

	scroll  *scroll.Controller
	zoom    *zoom.Controller
	models  *diff.Animator
	handoff Handoff

	bounds   geom.Rect
	measured bool
	result   layout.Result
}

// New builds a chart from cfg.
func New(cfg Config) (*Chart, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if cfg.Measurer == nil {
		cfg.Measurer = text.NewMonospace(0)
	}
	if cfg.Scroll.Logger == nil {
		cfg.Scroll.Logger = logger
	}
	if cfg.Zoom.Logger == nil {
		cfg.Zoom.Logger = logger
	}

	c := &Chart{
		cfg:        cfg,
		logger:     logger,
		negotiator: layout.NewNegotiator(logger),
		scroll:     scroll.New(cfg.Scroll),
		zoom:       zoom.New(cfg.Zoom),
		models:     diff.NewAnimator(cfg.Animation, logger),
		result:     layout.Result{Empty: true},
	}
	for _, l := range cfg.Layers {
		c.dims = append(c.dims, l)
		if ip, ok := l.(layout.InsetProvider); ok {
			c.requesters = append(c.requesters, ip)
		}
	}
	for _, a := range cfg.Axes {
		c.requesters = append(c.requesters, a)
	}
	if cfg.Legend != nil {
		c.requesters = append(c.requesters, cfg.Legend)
	}
	if cfg.Marker != nil {
		c.requesters = append(c.requesters, cfg.Marker)
	}
	return c, nil
}

// Handoff returns the channel for models produced on other goroutines.
func (c *Chart) Handoff() *Handoff { return &c.handoff }

// Scroller returns the scroll controller, for listeners and state queries.
func (c *Chart) Scroller() *scroll.Controller { return c.scroll }

// Zoomer returns the zoom controller.
func (c *Chart) Zoomer() *zoom.Controller { return c.zoom }

// Model returns the model currently drawn, which is an interpolated model
// while a transition runs.
func (c *Chart) Model() *model.Model { return c.models.Current() }

// Result returns the last measuring result.
func (c *Chart) Result() layout.Result { return c.result }

// Transform returns the data-to-canvas mapping of the current frame.
func (c *Chart) Transform() layout.Transform {
	return layout.NewTransform(c.result, c.zoom.Value(), c.scroll.Value())
}

// SetModel starts the transition to m and re-measures.
func (c *Chart) SetModel(ctx context.Context, now time.Time, m *model.Model) {
	c.models.Start(ctx, now, m)
	c.remeasure(ctx)
}

// Measure runs a measuring pass for bounds and updates zoom and scroll
// bounds from it.
func (c *Chart) Measure(ctx context.Context, bounds geom.Rect) layout.Result {
	c.bounds, c.measured = bounds, true
	m := c.models.Current()
	mc := layout.MeasureContext{
		Bounds:   bounds,
		RTL:      c.cfg.RTL,
		Model:    m,
		Ranges:   ranges.AggregateWith(m, c.cfg.Overrides),
		Measurer: c.cfg.Measurer,
	}
	c.result = c.negotiator.Measure(ctx, mc, c.dims, c.requesters)
	c.zoom.Update(ctx, c.result)
	c.scroll.Update(ctx, c.result, c.zoom.Value())
	return c.result
}

func (c *Chart) remeasure(ctx context.Context) {
	if c.measured {
		c.Measure(ctx, c.bounds)
	}
}

// Tick picks up a handed-off model and advances the model and scroll
// animations. It returns true while another frame is needed.
func (c *Chart) Tick(ctx context.Context, now time.Time) bool {
	prev := c.models.Current()
	if m := c.handoff.Take(); m != nil {
		c.logger.Debug("model handoff", "datasets", len(m.Datasets))
		c.models.Start(ctx, now, m)
	}
	m, animating := c.models.Tick(ctx, now)
	if m != prev {
		c.remeasure(ctx)
	}
	scrolling := c.scroll.Tick(ctx, now)
	return animating || scrolling
}

func (c *Chart) drawContext(canvas Canvas) *layout.DrawContext {
	return &layout.DrawContext{
		Canvas:    canvas,
		Measurer:  c.cfg.Measurer,
		Result:    c.result,
		Transform: c.Transform(),
		Zoom:      c.zoom.Value(),
	}
}

// Draw paints the last measured frame: axes, then layers, then the legend.
// An empty result draws nothing.
func (c *Chart) Draw(ctx context.Context, canvas Canvas) {
	if c.result.Empty {
		return
	}
	dc := c.drawContext(canvas)
	for _, a := range c.cfg.Axes {
		a.Draw(dc)
	}
	c.drawLayers(dc)
	if c.cfg.Legend != nil {
		c.cfg.Legend.Draw(dc, c.models.Current())
	}
}

func (c *Chart) drawLayers(dc *layout.DrawContext) []marker.LayerPoints {
	m := c.models.Current()
	points := make([]marker.LayerPoints, 0, len(c.cfg.Layers))
	for _, l := range c.cfg.Layers {
		points = append(points, l.Draw(dc, m))
	}
	return points
}

// MarkerTargets resolves the entries under the canvas X pointerX in the
// current frame. It returns nil when nothing is drawn there.
func (c *Chart) MarkerTargets(pointerX float64) []marker.Target {
	if c.result.Empty {
		return nil
	}
	points := c.drawLayers(c.drawContext(discard{}))
	return marker.Resolve(pointerX, c.result.Content, points)
}

// DrawMarker paints the marker for targets. It does nothing without a
// configured marker.
func (c *Chart) DrawMarker(canvas Canvas, targets []marker.Target) {
	if c.cfg.Marker == nil || c.result.Empty {
		return
	}
	c.cfg.Marker.Draw(c.drawContext(canvas), targets)
}

// Scroll applies req at once. It reports whether the scroll value changed.
func (c *Chart) Scroll(ctx context.Context, req scroll.Request) bool {
	return c.scroll.Scroll(ctx, req)
}

// AnimateScroll animates towards req; advance it with Tick.
func (c *Chart) AnimateScroll(ctx context.Context, req scroll.Request, now time.Time) {
	c.scroll.AnimateScroll(ctx, req, now)
}

// Zoom multiplies the zoom by factor around the canvas X focalX and scrolls
// so the content under focalX stays in place. It reports whether the zoom
// changed.
func (c *Chart) Zoom(ctx context.Context, factor, focalX float64) bool {
	delta, ok := c.zoom.Zoom(factor, focalX, c.scroll.Value(), c.result.Content)
	if !ok {
		return false
	}
	// The target is taken before Update clamps the old value to the new
	// maximum.
	target := c.scroll.Value() + delta
	c.scroll.Update(ctx, c.result, c.zoom.Value())
	c.scroll.Scroll(ctx, scroll.Pixels(target))
	return true
}

// Snapshot returns the state to persist.
func (c *Chart) Snapshot() state.Snapshot {
	return state.Snapshot{
		ScrollValue:    c.scroll.Value(),
		ZoomValue:      c.zoom.Value(),
		ZoomOverridden: c.zoom.Overridden(),
	}
}

// Restore applies persisted state. Before the first measuring pass it is
// held back and applied by that pass.
func (c *Chart) Restore(ctx context.Context, s state.Snapshot) {
	c.zoom.Restore(s.ZoomValue, s.ZoomOverridden)
	if c.measured && !c.result.Empty {
		c.zoom.Update(ctx, c.result)
		c.scroll.Update(ctx, c.result, c.zoom.Value())
	}
	c.scroll.Restore(s.ScrollValue)
}

// Describe returns the accessibility description of the current frame, or
// "" without a Describer.
func (c *Chart) Describe() string {
	if c.cfg.Describer == nil {
		return ""
	}
	return c.cfg.Describer.Describe(c.models.Current(), c.result)
}

// discard is a canvas that draws nothing, used to collect layer positions.
type discard struct{}

func (discard) Rect(geom.Rect, layout.Style)                         {}
func (discard) Line(_, _ geom.Point, _ layout.Style)                 {}
func (discard) Polyline([]geom.Point, layout.Style)                  {}
func (discard) Text(geom.Point, string, layout.Anchor, layout.Style) {}

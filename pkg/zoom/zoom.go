// Package zoom owns the horizontal zoom factor of a chart.
//
// Bounds and the initial factor are expressed as [Spec] values that resolve
// against each measuring result, so "fit the content" stays correct as the
// content area and data change. The factor can never drop below the
// fit-content factor.
//
// [Controller.Zoom] applies a pinch or wheel gesture around a focal point
// and returns the scroll correction that keeps the data under the focal
// point in place.
package zoom

import (
	"context"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
)

// Listener is called after the zoom value changed.
type Listener func(value float64)

// Options configure a Controller.
type Options struct {
	// Enabled allows zoom gestures.
	Enabled bool
	Initial Spec
	Min     Spec
	Max     Spec
	Logger  *log.Logger
}

// DefaultOptions start at zoom 1 or the fit-content factor, whichever is
// larger, and allow zooming in up to 10x.
func DefaultOptions() Options {
	return Options{
		Enabled: true,
		Initial: Max(Fixed(1), Content()),
		Min:     Content(),
		Max:     Max(Fixed(10), Content()),
	}
}

// Controller is the zoom state of one chart. It is not safe for concurrent
// use.
type Controller struct {
	opts       Options
	logger     *log.Logger
	value      float64
	valueRange geom.Range
	overridden bool
	padding    float64
	rtl        bool
	listeners  []Listener
}

// New returns a controller at zoom 1. Nil specs take their defaults.
func New(opts Options) *Controller {
	def := DefaultOptions()
	if opts.Initial == nil {
		opts.Initial = def.Initial
	}
	if opts.Min == nil {
		opts.Min = def.Min
	}
	if opts.Max == nil {
		opts.Max = def.Max
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Controller{opts: opts, logger: logger, value: 1, valueRange: geom.Range{Min: 1, Max: 1}}
}

func (c *Controller) Value() float64         { return c.value }
func (c *Controller) ValueRange() geom.Range { return c.valueRange }
func (c *Controller) Enabled() bool          { return c.opts.Enabled }

// Overridden reports whether the user changed the zoom. Once overridden,
// Update no longer applies the initial spec.
func (c *Controller) Overridden() bool { return c.overridden }

// AddListener registers l.
func (c *Controller) AddListener(l Listener) { c.listeners = append(c.listeners, l) }

// Update resolves the bounds against res and re-clamps the value. Empty
// results leave the state untouched.
func (c *Controller) Update(ctx context.Context, res layout.Result) {
	if res.Empty {
		return
	}
	fit := Content().Resolve(res)
	lo := max(c.opts.Min.Resolve(res), fit)
	hi := max(c.opts.Max.Resolve(res), lo)
	c.valueRange = geom.Range{Min: lo, Max: hi}
	c.padding, c.rtl = res.Dimensions.StartPadding, res.RTL

	value := c.value
	if !c.overridden {
		value = c.opts.Initial.Resolve(res)
	}
	c.logger.Debug("zoom bounds", "min", lo, "max", hi, "overridden", c.overridden)
	c.set(value)
}

// Zoom multiplies the value by factor around the canvas X focalX. scroll is
// the current scroll value and content the current content area. It returns
// the scroll delta that keeps the content under focalX in place, and
// whether the value changed. At a bound it changes nothing and fires no
// listeners.
func (c *Controller) Zoom(factor, focalX, scroll float64, content geom.Rect) (float64, bool) {
	if !c.opts.Enabled || factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return 0, false
	}
	old := c.value
	next := c.valueRange.Clamp(old * factor)
	if next == old {
		return 0, false
	}

	off := focalX - content.Left
	if c.rtl {
		off = content.Right - focalX
	}
	// Paddings do not scale, so only the part past the start padding moves.
	axis := scroll + off - c.padding
	delta := axis*next/old - axis

	c.overridden = true
	c.set(next)
	return delta, true
}

// Set applies an absolute zoom value, clamped to the current bounds, and
// marks the zoom as overridden. It reports whether the value changed.
func (c *Controller) Set(value float64) bool {
	c.overridden = true
	return c.set(value)
}

// Restore applies persisted state. The value is clamped on the next Update.
func (c *Controller) Restore(value float64, overridden bool) {
	c.overridden = overridden
	if value > 0 && !math.IsInf(value, 0) {
		c.value = value
	}
}

func (c *Controller) set(value float64) bool {
	if math.IsNaN(value) {
		return false
	}
	value = c.valueRange.Clamp(value)
	if value == c.value {
		return false
	}
	c.value = value
	for _, l := range c.listeners {
		l(value)
	}
	return true
}

// Package scroll owns the horizontal scroll offset of a chart.
//
// The [Controller] keeps the value within [0, MaxValue] at all times.
// MaxValue is recomputed on every measuring pass by [Controller.Update],
// which also re-clamps the value, so a value never outlives a shrinking
// content area. Scrolls are either applied at once with
// [Controller.Scroll] or animated frame by frame with
// [Controller.AnimateScroll] and [Controller.Tick].
package scroll

import (
	"context"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cartesian/pkg/animation"
	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/geom"
	"github.com/matzehuels/cartesian/pkg/layout"
)

// Initial is the scroll position applied on the first measured frame.
type Initial int

const (
	InitialStart Initial = iota
	InitialEnd
)

// ParseInitial parses "start" or "end".
func ParseInitial(s string) (Initial, error) {
	switch strings.ToLower(s) {
	case "", "start":
		return InitialStart, nil
	case "end":
		return InitialEnd, nil
	}
	return InitialStart, errs.New(errs.ErrCodeInvalidConfig, "unknown initial scroll %q", s)
}

// AutoScroll decides when a model change scrolls to the end.
type AutoScroll int

const (
	Never AutoScroll = iota
	// OnModelGrowth scrolls to the end when the X range grows.
	OnModelGrowth
)

// ParseAutoScroll parses "never" or "on-growth".
func ParseAutoScroll(s string) (AutoScroll, error) {
	switch strings.ToLower(s) {
	case "", "never":
		return Never, nil
	case "on-growth", "on-model-growth":
		return OnModelGrowth, nil
	}
	return Never, errs.New(errs.ErrCodeInvalidConfig, "unknown auto-scroll condition %q", s)
}

// Listener is called after the value or its bound changed.
type Listener func(value, maxValue float64)

// Options configure a Controller.
type Options struct {
	// Enabled allows user scroll gestures. Programmatic scrolls always apply.
	Enabled    bool
	Initial    Initial
	AutoScroll AutoScroll
	Animation  animation.Spec
	Logger     *log.Logger
}

// DefaultOptions enables scrolling from the start with the default
// animation.
func DefaultOptions() Options {
	return Options{Enabled: true, Animation: animation.DefaultSpec}
}

// Controller is the scroll state of one chart. It is not safe for
// concurrent use; the host calls it from its UI goroutine.
type Controller struct {
	opts     Options
	logger   *log.Logger
	value    float64
	maxValue float64
	sc       Context
	measured bool
	restored *float64
	lastX    geom.Range

	animator  *animation.Animator
	listeners []Listener
}

// New returns a controller at value 0.
func New(opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if opts.Animation.Easing == nil {
		opts.Animation.Easing = animation.DefaultSpec.Easing
	}
	return &Controller{
		opts:     opts,
		logger:   logger,
		lastX:    geom.EmptyRange,
		animator: animation.NewAnimator("scroll", logger),
	}
}

func (c *Controller) Value() float64    { return c.value }
func (c *Controller) MaxValue() float64 { return c.maxValue }
func (c *Controller) Enabled() bool     { return c.opts.Enabled }

// Animating reports whether an animated scroll is in flight.
func (c *Controller) Animating() bool { return c.animator.Running() }

// AddListener registers l.
func (c *Controller) AddListener(l Listener) { c.listeners = append(c.listeners, l) }

// CanScroll reports whether a user scroll by delta pixels would move the
// content.
func (c *Controller) CanScroll(delta float64) bool {
	if !c.opts.Enabled {
		return false
	}
	return delta < 0 && c.value > 0 || delta > 0 && c.value < c.maxValue
}

// Update recomputes MaxValue from a measuring result drawn at zoom and
// re-clamps the value. The first non-empty result applies the initial
// scroll; later ones apply the auto-scroll condition.
func (c *Controller) Update(ctx context.Context, res layout.Result, zoom float64) {
	c.sc = Context{Result: res, Zoom: zoom}
	maxValue := res.MaxScroll(zoom)
	value := c.value
	x := res.Ranges.X

	switch {
	case res.Empty:
	case !c.measured:
		c.measured = true
		switch {
		case c.restored != nil:
			value = *c.restored
			c.restored = nil
		case c.opts.Initial == InitialEnd:
			value = maxValue
		}
		c.logger.Debug("initial scroll", "value", value, "max", maxValue)
	case c.opts.AutoScroll == OnModelGrowth && !c.lastX.IsEmpty() && x.Max > c.lastX.Max:
		c.animator.Cancel(ctx)
		value = maxValue
		c.logger.Debug("auto-scroll", "x", x.String(), "value", value)
	}
	if !res.Empty {
		c.lastX = x
	}
	c.set(value, maxValue)
}

// Scroll applies req at once and cancels any animated scroll. It reports
// whether the value changed.
func (c *Controller) Scroll(ctx context.Context, req Request) bool {
	c.animator.Cancel(ctx)
	return c.set(req.Target(c.sc, c.value, c.maxValue), c.maxValue)
}

// AnimateScroll starts an animated scroll from the current value to the
// clamped target of req. A scroll already in flight is cancelled and the
// value stays at its last applied frame.
func (c *Controller) AnimateScroll(ctx context.Context, req Request, now time.Time) {
	from := c.value
	to := geom.Clamp(req.Target(c.sc, c.value, c.maxValue), 0, c.maxValue)
	c.animator.Start(ctx, now, c.opts.Animation, func(p float64) {
		c.set(from+(to-from)*p, c.maxValue)
	})
}

// Tick advances an animated scroll. It returns true while frames remain.
func (c *Controller) Tick(ctx context.Context, now time.Time) bool {
	return c.animator.Tick(ctx, now)
}

// Restore sets the value from persisted state. Before the first measured
// frame the value is held back and replaces the initial scroll.
func (c *Controller) Restore(value float64) {
	if !c.measured {
		c.restored = &value
		return
	}
	c.set(value, c.maxValue)
}

func (c *Controller) set(value, maxValue float64) bool {
	maxValue = max(0, maxValue)
	if math.IsNaN(value) {
		value = c.value
	}
	value = geom.Clamp(value, 0, maxValue)
	if value == c.value && maxValue == c.maxValue {
		return false
	}
	c.value, c.maxValue = value, maxValue
	for _, l := range c.listeners {
		l(value, maxValue)
	}
	return true
}

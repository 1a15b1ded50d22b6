// Package animation drives frame-based transitions.
//
// An [Animator] is an explicit state machine: Idle until started, Animating
// while frames are pending, and Idle again once the last frame was applied
// or the animation was cancelled. It never spawns goroutines or timers; the
// host calls [Animator.Tick] once per frame with the frame timestamp, and
// the animator invokes the frame callback with eased progress.
//
// Cancellation is cooperative: Tick checks the running flag before applying
// a frame, so a cancelled animation never applies another one.
package animation

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/cartesian/pkg/errors"
	"github.com/matzehuels/cartesian/pkg/observability"
)

// State is the phase of an animator.
type State int

const (
	Idle State = iota
	Animating
)

func (s State) String() string {
	if s == Animating {
		return "animating"
	}
	return "idle"
}

// Spec configures one animation.
type Spec struct {
	Duration time.Duration
	Easing   Easing
}

// DefaultSpec is used by controllers when no spec is configured.
var DefaultSpec = Spec{Duration: 300 * time.Millisecond, Easing: EaseInOut}

// NewSpec validates and returns a spec. A nil easing selects EaseInOut.
func NewSpec(d time.Duration, e Easing) (Spec, error) {
	if err := errs.ValidateDuration("animation duration", d); err != nil {
		return Spec{}, err
	}
	if e == nil {
		e = EaseInOut
	}
	return Spec{Duration: d, Easing: e}, nil
}

// Frame receives eased progress in [0, 1].
type Frame func(progress float64)

// Animator runs at most one animation at a time.
type Animator struct {
	// Name identifies the animator in hooks and logs.
	Name   string
	Logger *log.Logger

	state   State
	running bool
	gen     int
	started time.Time
	spec    Spec
	frame   Frame
}

// NewAnimator returns an idle animator.
func NewAnimator(name string, logger *log.Logger) *Animator {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Animator{Name: name, Logger: logger}
}

// State returns the current phase.
func (a *Animator) State() State { return a.state }

// Running reports whether frames are pending.
func (a *Animator) Running() bool { return a.running }

// Start begins an animation at now. A running animation is cancelled first,
// so its frame callback is never invoked again.
func (a *Animator) Start(ctx context.Context, now time.Time, spec Spec, frame Frame) {
	a.Cancel(ctx)
	if spec.Easing == nil {
		spec.Easing = EaseInOut
	}
	a.gen++
	a.state, a.running = Animating, true
	a.started, a.spec, a.frame = now, spec, frame
	observability.Animation().OnAnimationStart(ctx, a.Name, spec.Duration)
	a.logger().Debug("animation started", "name", a.Name, "duration", spec.Duration)
}

// Tick applies the frame for now. It returns true while more frames are
// pending. The final frame always receives progress 1.
func (a *Animator) Tick(ctx context.Context, now time.Time) bool {
	if !a.running {
		return false
	}
	p := 1.0
	if a.spec.Duration > 0 {
		p = min(1, max(0, float64(now.Sub(a.started))/float64(a.spec.Duration)))
	}
	eased := a.spec.Easing(p)
	if p >= 1 {
		eased = 1
	}
	gen := a.gen
	a.frame(eased)
	if a.gen != gen || !a.running {
		// the frame restarted or cancelled the animation
		return a.running
	}
	if p < 1 {
		return true
	}
	a.finish()
	observability.Animation().OnAnimationComplete(ctx, a.Name)
	a.logger().Debug("animation complete", "name", a.Name)
	return false
}

// Cancel stops the running animation, leaving whatever its last applied
// frame produced.
func (a *Animator) Cancel(ctx context.Context) {
	if !a.running {
		return
	}
	a.finish()
	observability.Animation().OnAnimationCancel(ctx, a.Name)
	a.logger().Debug("animation cancelled", "name", a.Name)
}

func (a *Animator) finish() {
	a.state, a.running = Idle, false
	a.frame = nil
}

func (a *Animator) logger() *log.Logger {
	if a.Logger == nil {
		a.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return a.Logger
}

package diff

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cartesian/pkg/animation"
	"github.com/matzehuels/cartesian/pkg/model"
)

// Animator runs one model transition at a time on an [animation.Animator].
// It is Idle while Current is a published model and Animating while Current
// is an interpolated frame.
type Animator struct {
	spec    animation.Spec
	anim    *animation.Animator
	logger  *log.Logger
	plan    *plan
	current *model.Model
}

// NewAnimator returns an idle animator using spec for every transition.
func NewAnimator(spec animation.Spec, logger *log.Logger) *Animator {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Animator{spec: spec, anim: animation.NewAnimator("model", logger), logger: logger}
}

// Current returns the model to draw.
func (a *Animator) Current() *model.Model { return a.current }

// State returns the phase of the running transition.
func (a *Animator) State() animation.State { return a.anim.State() }

// Start begins the transition from the current model to next. A running
// transition is cancelled and its matched values are dropped before the
// new ones are built, so it continues from the frame that was last shown.
// With a zero duration next is shown at once.
func (a *Animator) Start(ctx context.Context, now time.Time, next *model.Model) {
	a.anim.Cancel(ctx)
	a.plan = nil

	if a.spec.Duration <= 0 {
		a.current = next
		return
	}
	a.plan = newPlan(a.current, next)
	a.logger.Debug("model transition", "datasets", len(a.plan.datasets))
	a.anim.Start(ctx, now, a.spec, func(p float64) {
		a.current = a.plan.at(p)
	})
	a.current = a.plan.at(0)
}

// Tick advances the transition and returns the model to draw and whether
// frames remain. After the last frame the plan is released.
func (a *Animator) Tick(ctx context.Context, now time.Time) (*model.Model, bool) {
	more := a.anim.Tick(ctx, now)
	if !more {
		a.plan = nil
	}
	return a.current, more
}

// Cancel stops the running transition, leaving the last frame shown.
func (a *Animator) Cancel(ctx context.Context) {
	a.anim.Cancel(ctx)
	a.plan = nil
}

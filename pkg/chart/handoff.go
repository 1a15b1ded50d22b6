package chart

import (
	"sync/atomic"

	"github.com/matzehuels/cartesian/pkg/model"
)

// Handoff passes models from a producer goroutine to the goroutine that
// draws the chart. Only the latest published model is kept; intermediate
// ones are dropped.
type Handoff struct {
	p atomic.Pointer[model.Model]
}

// Publish makes m the next model. It is safe to call from any goroutine.
// Publishing nil is ignored.
func (h *Handoff) Publish(m *model.Model) {
	if m != nil {
		h.p.Store(m)
	}
}

// Take returns the pending model and clears it, or nil if none is pending.
func (h *Handoff) Take() *model.Model {
	return h.p.Swap(nil)
}

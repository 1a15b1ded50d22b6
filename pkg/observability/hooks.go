// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about measuring passes, animations, state persistence and
// API requests.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so the layout engine never
// imports a metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetLayoutHooks(&myLayoutHooks{})
//	    observability.SetStoreHooks(&myStoreHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Layout().OnMeasureStart(ctx, len(layers), len(requesters))
//	// ... negotiate ...
//	observability.Layout().OnMeasureComplete(ctx, width, height, empty, duration)
//
// Layout and animation hooks are called on the drawing goroutine once per
// frame; implementations must be cheap and must not block.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the measuring pass.
type LayoutHooks interface {
	// OnMeasureStart fires before the dimension pass.
	OnMeasureStart(ctx context.Context, layers, requesters int)

	// OnMeasureComplete fires after the second margin pass with the final
	// content size. empty is set when nothing can be drawn.
	OnMeasureComplete(ctx context.Context, width, height float64, empty bool, duration time.Duration)
}

// =============================================================================
// Animation Hooks
// =============================================================================

// AnimationHooks receives events from scroll and model transitions.
type AnimationHooks interface {
	OnAnimationStart(ctx context.Context, name string, duration time.Duration)
	OnAnimationCancel(ctx context.Context, name string)
	OnAnimationComplete(ctx context.Context, name string)
}

// =============================================================================
// Store Hooks
// =============================================================================

// StoreHooks receives events from state persistence.
type StoreHooks interface {
	// OnStoreLoad records a snapshot lookup. found is false when err is set.
	OnStoreLoad(ctx context.Context, backend string, found bool, duration time.Duration, err error)

	// OnStoreSave records a snapshot write.
	OnStoreSave(ctx context.Context, backend string, duration time.Duration, err error)

	// OnStoreDelete records a snapshot removal.
	OnStoreDelete(ctx context.Context, backend string, duration time.Duration, err error)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the API server.
type HTTPHooks interface {
	// OnRequest records an incoming request.
	OnRequest(ctx context.Context, method, path string)

	// OnResponse records the response status and latency.
	OnResponse(ctx context.Context, method, path string, statusCode int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopLayoutHooks is a no-op implementation of LayoutHooks.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnMeasureStart(context.Context, int, int) {}
func (NoopLayoutHooks) OnMeasureComplete(context.Context, float64, float64, bool, time.Duration) {
}

// NoopAnimationHooks is a no-op implementation of AnimationHooks.
type NoopAnimationHooks struct{}

func (NoopAnimationHooks) OnAnimationStart(context.Context, string, time.Duration) {}
func (NoopAnimationHooks) OnAnimationCancel(context.Context, string)               {}
func (NoopAnimationHooks) OnAnimationComplete(context.Context, string)             {}

// NoopStoreHooks is a no-op implementation of StoreHooks.
type NoopStoreHooks struct{}

func (NoopStoreHooks) OnStoreLoad(context.Context, string, bool, time.Duration, error) {}
func (NoopStoreHooks) OnStoreSave(context.Context, string, time.Duration, error)       {}
func (NoopStoreHooks) OnStoreDelete(context.Context, string, time.Duration, error)     {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	layoutHooks    LayoutHooks    = NoopLayoutHooks{}
	animationHooks AnimationHooks = NoopAnimationHooks{}
	storeHooks     StoreHooks     = NoopStoreHooks{}
	httpHooks      HTTPHooks      = NoopHTTPHooks{}
	hooksMu        sync.RWMutex
)

// SetLayoutHooks registers custom layout hooks.
// This should be called once at application startup before any chart is measured.
func SetLayoutHooks(h LayoutHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		layoutHooks = h
	}
}

// SetAnimationHooks registers custom animation hooks.
func SetAnimationHooks(h AnimationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		animationHooks = h
	}
}

// SetStoreHooks registers custom store hooks.
func SetStoreHooks(h StoreHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		storeHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return layoutHooks
}

// Animation returns the registered animation hooks.
func Animation() AnimationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return animationHooks
}

// Store returns the registered store hooks.
func Store() StoreHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return storeHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	layoutHooks = NoopLayoutHooks{}
	animationHooks = NoopAnimationHooks{}
	storeHooks = NoopStoreHooks{}
	httpHooks = NoopHTTPHooks{}
}

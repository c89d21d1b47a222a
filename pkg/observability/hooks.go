// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about placement resolution and visibility transitions.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks take plain strings and booleans so this package imports nothing
// from the rest of the module.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetPlacementHooks(&myPlacementHooks{})
//	    observability.SetVisibilityHooks(&myVisibilityHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Placement().OnResolve(requested, resolved, flipped)
package observability

import "sync"

// =============================================================================
// Placement Hooks
// =============================================================================

// PlacementHooks receives events from the position resolver.
type PlacementHooks interface {
	// OnResolve records a completed resolution. requested and resolved are
	// placement tokens; they differ when the panel was flipped.
	OnResolve(requested, resolved string, flipped bool)

	// OnUnmeasured records a resolution skipped because an element could not
	// be measured. what names the element ("trigger", "viewport", "panel").
	OnUnmeasured(what string)
}

// =============================================================================
// Visibility Hooks
// =============================================================================

// VisibilityHooks receives events from visibility controllers.
type VisibilityHooks interface {
	// OnTransition records a requested transition. controlled is true when
	// the controller only relayed the request to its owner.
	OnTransition(mode string, visible, controlled bool)

	// OnListenerAttach records registration of the click-outside listener.
	OnListenerAttach(mode string)

	// OnListenerRelease records removal of the click-outside listener.
	OnListenerRelease(mode string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPlacementHooks is a no-op implementation of PlacementHooks.
type NoopPlacementHooks struct{}

func (NoopPlacementHooks) OnResolve(string, string, bool) {}
func (NoopPlacementHooks) OnUnmeasured(string)            {}

// NoopVisibilityHooks is a no-op implementation of VisibilityHooks.
type NoopVisibilityHooks struct{}

func (NoopVisibilityHooks) OnTransition(string, bool, bool) {}
func (NoopVisibilityHooks) OnListenerAttach(string)         {}
func (NoopVisibilityHooks) OnListenerRelease(string)        {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	placementHooks  PlacementHooks  = NoopPlacementHooks{}
	visibilityHooks VisibilityHooks = NoopVisibilityHooks{}
	hooksMu         sync.RWMutex
)

// SetPlacementHooks registers custom placement hooks.
// This should be called once at application startup before any resolution.
func SetPlacementHooks(h PlacementHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		placementHooks = h
	}
}

// SetVisibilityHooks registers custom visibility hooks.
// This should be called once at application startup before any controller
// is created.
func SetVisibilityHooks(h VisibilityHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		visibilityHooks = h
	}
}

// Placement returns the registered placement hooks.
func Placement() PlacementHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return placementHooks
}

// Visibility returns the registered visibility hooks.
func Visibility() VisibilityHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return visibilityHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	placementHooks = NoopPlacementHooks{}
	visibilityHooks = NoopVisibilityHooks{}
}

// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about renders, font loading, and encoding.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetRenderHooks(&myRenderHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRenderStart(width, height, len(text))
//	// ... render ...
//	observability.Render().OnRenderComplete(len(text), duration, err)
//
// Rendering is synchronous and not cancellable, so hooks take no context.
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from the image synthesis pipeline.
type RenderHooks interface {
	// OnRenderStart is called before a render begins.
	OnRenderStart(width, height, glyphs int)

	// OnRenderComplete is called when a render finishes or fails.
	OnRenderComplete(glyphs int, duration time.Duration, err error)
}

// =============================================================================
// Font Hooks
// =============================================================================

// FontHooks receives events from font table construction.
type FontHooks interface {
	// OnFontsLoaded records the one-time construction of a font table.
	OnFontsLoaded(entries int, duration time.Duration, err error)
}

// =============================================================================
// Encode Hooks
// =============================================================================

// EncodeHooks receives events from the output sink.
type EncodeHooks interface {
	// OnEncode records one encoded image.
	OnEncode(format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(int, int, int)                {}
func (NoopRenderHooks) OnRenderComplete(int, time.Duration, error) {}

// NoopFontHooks is a no-op implementation of FontHooks.
type NoopFontHooks struct{}

func (NoopFontHooks) OnFontsLoaded(int, time.Duration, error) {}

// NoopEncodeHooks is a no-op implementation of EncodeHooks.
type NoopEncodeHooks struct{}

func (NoopEncodeHooks) OnEncode(string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	renderHooks RenderHooks = NoopRenderHooks{}
	fontHooks   FontHooks   = NoopFontHooks{}
	encodeHooks EncodeHooks = NoopEncodeHooks{}
	hooksMu     sync.RWMutex
)

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any render.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetFontHooks registers custom font hooks.
func SetFontHooks(h FontHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		fontHooks = h
	}
}

// SetEncodeHooks registers custom encode hooks.
func SetEncodeHooks(h EncodeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		encodeHooks = h
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Fonts returns the registered font hooks.
func Fonts() FontHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return fontHooks
}

// Encode returns the registered encode hooks.
func Encode() EncodeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return encodeHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	renderHooks = NoopRenderHooks{}
	fontHooks = NoopFontHooks{}
	encodeHooks = NoopEncodeHooks{}
}

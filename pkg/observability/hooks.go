// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries emit events through hook interfaces with no-op defaults; the
// binary may register real implementations once at startup. This keeps the
// completion core free of any particular metrics backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCompletionHooks(&myCompletionHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Completion().OnCompletionStart(ctx, uri)
//	// ... resolve and build ...
//	observability.Completion().OnCompletionComplete(ctx, kind, items, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Completion Hooks
// =============================================================================

// CompletionHooks receives events from completion requests.
type CompletionHooks interface {
	OnCompletionStart(ctx context.Context, document string)
	OnCompletionComplete(ctx context.Context, kind string, items int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the crate data caches.
// space names the cache, e.g. "index" or "search".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, space string)
	OnCacheMiss(ctx context.Context, space string)
	OnCacheSet(ctx context.Context, space string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from registry HTTP calls.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, host, path string)
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCompletionHooks is a no-op implementation of CompletionHooks.
type NoopCompletionHooks struct{}

func (NoopCompletionHooks) OnCompletionStart(context.Context, string) {}
func (NoopCompletionHooks) OnCompletionComplete(context.Context, string, int, time.Duration, error) {
}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	completionHooks CompletionHooks = NoopCompletionHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	httpHooks       HTTPHooks       = NoopHTTPHooks{}
	hooksMu         sync.RWMutex
)

// SetCompletionHooks registers custom completion hooks. Nil is ignored.
func SetCompletionHooks(h CompletionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		completionHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Completion returns the registered completion hooks.
func Completion() CompletionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return completionHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	completionHooks = NoopCompletionHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}

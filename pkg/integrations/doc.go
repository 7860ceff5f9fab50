// Package integrations provides the shared HTTP plumbing for registry clients.
//
// The [Client] type wraps an [http.Client] with default headers, retry with
// exponential backoff for transient failures (network errors, 429, 5xx) and
// an optional response cache backed by any [cache.Cache]. Registry-specific
// clients embed it; the only one today is [crates] for crates.io.
//
// # Error Classification
//
//   - [ErrNotFound]: the registry answered 404
//   - [ErrNetwork]: connection failure or non-2xx status
//   - [ErrMalformed]: the body was not the expected JSON
//
// Callers higher up turn all three into a fetch failure and degrade to an
// empty suggestion list.
package integrations

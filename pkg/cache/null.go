package cache

import (
	"context"
	"time"
)

// NullCache is the "none" response backend. Every version-index lookup
// falls through to the registry, so crate data lives only in the in-memory
// tiers of the running process. It is the default, and --no-cache forces it.
type NullCache struct{}

// NewNullCache returns the backend used when backend = "none".
func NewNullCache() Cache {
	return NullCache{}
}

// Get reports a miss.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, nil
}

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error {
	return nil
}

func (NullCache) Delete(context.Context, string) error { return nil }

func (NullCache) Close() error { return nil }

var _ Cache = NullCache{}

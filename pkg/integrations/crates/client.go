package crates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/matzehuels/cargoassist/pkg/cache"
	"github.com/matzehuels/cargoassist/pkg/integrations"
)

const (
	// DefaultBaseURL is the crates.io API root.
	DefaultBaseURL = "https://crates.io/api/v1"

	// DefaultUserAgent identifies the client, as crates.io policy requires.
	DefaultUserAgent = "cargoassist/1.0 (https://github.com/matzehuels/cargoassist)"
)

// Index is the version index of a crate, as returned by
// GET /crates/{name}/versions. Versions are in registry order
// (crates.io returns newest first, but nothing here relies on it).
type Index struct {
	Versions []Version `json:"versions"`
}

// Version is one published release of a crate.
//
// Features maps each feature name to the features and optional
// dependencies it enables. Completion only uses the key set.
type Version struct {
	Num      string              `json:"num"`
	Crate    string              `json:"crate"`
	Features map[string][]string `json:"features"`
	Yanked   bool                `json:"yanked"`
}

// Search is the result of a fuzzy crate search (GET /crates?q=...).
type Search struct {
	Crates []SearchResult `json:"crates"`
	Meta   struct {
		Total int `json:"total"`
	} `json:"meta"`
}

// SearchResult describes one crate in a search response.
// MaxStableVersion is empty when the crate has no stable release.
type SearchResult struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	MaxStableVersion string `json:"max_stable_version"`
	NewestVersion    string `json:"newest_version"`
}

// PreferredVersion returns the version to suggest for a crate: the newest
// stable release, or the newest release when there is no stable one.
func (r SearchResult) PreferredVersion() string {
	if r.MaxStableVersion != "" {
		return r.MaxStableVersion
	}
	return r.NewestVersion
}

// Client provides access to the crates.io registry API.
// It handles HTTP requests with automatic retries; version indexes are
// also kept in the response backend.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// Option configures a [Client].
type Option func(*options)

type options struct {
	baseURL   string
	userAgent string
	attempts  int
	keyer     cache.Keyer
}

// WithBaseURL points the client at another registry API root
// (a mirror, or a test server).
func WithBaseURL(u string) Option { return func(o *options) { o.baseURL = u } }

// WithUserAgent sets the descriptive client identifier sent with every request.
func WithUserAgent(ua string) Option { return func(o *options) { o.userAgent = ua } }

// WithRetries sets how many attempts are made for transient failures.
func WithRetries(n int) Option { return func(o *options) { o.attempts = n } }

// WithKeyer sets the key builder used for the response backend.
func WithKeyer(k cache.Keyer) Option { return func(o *options) { o.keyer = k } }

// NewClient creates a crates.io client.
//
// Parameters:
//   - backend: response cache (use cache.NewNullCache() for no caching)
//   - cacheTTL: how long responses stay in the backend
func NewClient(backend cache.Cache, cacheTTL time.Duration, opts ...Option) *Client {
	o := options{baseURL: DefaultBaseURL, userAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(&o)
	}

	headers := map[string]string{
		"User-Agent": o.userAgent,
		"Accept":     "application/json",
	}
	c := integrations.NewClient(backend, "crates", cacheTTL, headers)
	if o.attempts > 0 {
		c.SetRetry(o.attempts, 500*time.Millisecond)
	}
	c.SetKeyer(o.keyer)
	return &Client{Client: c, baseURL: o.baseURL}
}

// FetchIndex retrieves the version index of a crate.
//
// Returns:
//   - the index on success (never nil when err is nil)
//   - [integrations.ErrNotFound] if the crate doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures
//   - [integrations.ErrMalformed] for undecodable bodies
func (c *Client) FetchIndex(ctx context.Context, name string) (*Index, error) {
	var idx Index
	err := c.Cached(ctx, "index:"+name, false, &idx, func() error {
		url := fmt.Sprintf("%s/crates/%s/versions", c.baseURL, integrations.PathEscape(name))
		if err := c.Get(ctx, url, &idx); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: crate %s", err, name)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &idx, nil
}

// FetchSearch runs a fuzzy crate search for query.
// An empty query is sent as-is; crates.io answers it with popular crates.
//
// Searches bypass the response backend: their lifetime is the search TTL of
// the in-memory tier, and a backend entry would outlive it.
func (c *Client) FetchSearch(ctx context.Context, query string) (*Search, error) {
	var res Search
	err := c.Fetch(ctx, func() error {
		url := fmt.Sprintf("%s/crates?q=%s", c.baseURL, integrations.URLEncode(query))
		return c.Get(ctx, url, &res)
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

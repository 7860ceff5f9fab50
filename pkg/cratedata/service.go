// Package cratedata holds the in-memory registry data used by completion.
//
// A [Service] owns two independent stores keyed by crate name or query:
//
//   - an index store: fixed capacity, least-recently-used eviction, no expiry
//   - a search store: fixed capacity and a fixed TTL measured from insertion;
//     reads do not extend an entry's life
//
// Both follow a get-or-fetch contract. Concurrent misses for the same key
// share one registry call. Values are replaced whole and never mutated after
// insertion, so callers must treat returned indexes and searches as read-only.
//
// The service is created once per process and passed explicitly to the
// components that need it. Nothing invalidates entries on document edits;
// staleness up to the TTL (searches) or until eviction (indexes) is accepted.
package cratedata

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/cargoassist/pkg/errors"
	"github.com/matzehuels/cargoassist/pkg/integrations/crates"
	"github.com/matzehuels/cargoassist/pkg/observability"
)

// Defaults for [Options].
const (
	DefaultIndexCapacity  = 100
	DefaultSearchCapacity = 100
	DefaultSearchTTL      = 3 * time.Minute
)

// Cache spaces reported to [observability.CacheHooks].
const (
	SpaceIndex  = "index"
	SpaceSearch = "search"
)

// Fetcher is the registry collaborator. [crates.Client] implements it.
type Fetcher interface {
	FetchIndex(ctx context.Context, name string) (*crates.Index, error)
	FetchSearch(ctx context.Context, query string) (*crates.Search, error)
}

// Options configures a [Service]. Zero values select the defaults.
type Options struct {
	IndexCapacity  int
	SearchCapacity int
	SearchTTL      time.Duration
	Logger         *log.Logger
}

// Service is the two-tier crate data cache. It is safe for concurrent use.
type Service struct {
	fetcher Fetcher
	index   *lru.Cache[string, *crates.Index]
	search  *expirable.LRU[string, *crates.Search]
	flight  singleflight.Group
	logger  *log.Logger
}

// New creates a Service backed by fetcher.
func New(fetcher Fetcher, opts Options) (*Service, error) {
	if fetcher == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cratedata: nil fetcher")
	}
	if opts.IndexCapacity <= 0 {
		opts.IndexCapacity = DefaultIndexCapacity
	}
	if opts.SearchCapacity <= 0 {
		opts.SearchCapacity = DefaultSearchCapacity
	}
	if opts.SearchTTL <= 0 {
		opts.SearchTTL = DefaultSearchTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	index, err := lru.New[string, *crates.Index](opts.IndexCapacity)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "index cache")
	}

	return &Service{
		fetcher: fetcher,
		index:   index,
		search:  expirable.NewLRU[string, *crates.Search](opts.SearchCapacity, nil, opts.SearchTTL),
		logger:  opts.Logger,
	}, nil
}

// Index returns the version index of the named crate, fetching it on a miss.
// Invalid crate names fail with INVALID_PACKAGE before any network call;
// registry failures are reported as FETCH_FAILURE.
func (s *Service) Index(ctx context.Context, name string) (*crates.Index, error) {
	if err := errors.ValidateCratesPackageName(name); err != nil {
		return nil, err
	}

	hooks := observability.Cache()
	if idx, ok := s.index.Get(name); ok {
		hooks.OnCacheHit(ctx, SpaceIndex)
		return idx, nil
	}
	hooks.OnCacheMiss(ctx, SpaceIndex)

	v, err, shared := s.do(ctx, SpaceIndex+":"+name, func(fctx context.Context) (any, error) {
		idx, err := s.fetcher.FetchIndex(fctx, name)
		if err != nil {
			return nil, err
		}
		s.index.Add(name, idx)
		hooks.OnCacheSet(ctx, SpaceIndex, len(idx.Versions))
		return idx, nil
	})
	if err != nil {
		s.logger.Debug("index fetch failed", "crate", name, "error", err)
		return nil, errors.Wrap(errors.ErrCodeFetchFailure, err, "fetch index for %s", name)
	}
	s.logger.Debug("index fetched", "crate", name, "shared", shared)
	return v.(*crates.Index), nil
}

// Search returns the crate search results for query, fetching on a miss or
// after the cached entry has expired.
func (s *Service) Search(ctx context.Context, query string) (*crates.Search, error) {
	hooks := observability.Cache()
	if res, ok := s.search.Get(query); ok {
		hooks.OnCacheHit(ctx, SpaceSearch)
		return res, nil
	}
	hooks.OnCacheMiss(ctx, SpaceSearch)

	v, err, shared := s.do(ctx, SpaceSearch+":"+query, func(fctx context.Context) (any, error) {
		res, err := s.fetcher.FetchSearch(fctx, query)
		if err != nil {
			return nil, err
		}
		s.search.Add(query, res)
		hooks.OnCacheSet(ctx, SpaceSearch, len(res.Crates))
		return res, nil
	})
	if err != nil {
		s.logger.Debug("search failed", "query", query, "error", err)
		return nil, errors.Wrap(errors.ErrCodeFetchFailure, err, "search %q", query)
	}
	s.logger.Debug("search fetched", "query", query, "shared", shared)
	return v.(*crates.Search), nil
}

// do runs fetch once per key across concurrent callers. The shared fetch is
// detached from any single caller's cancellation; a caller whose ctx ends
// stops waiting without affecting the others.
func (s *Service) do(ctx context.Context, key string, fetch func(context.Context) (any, error)) (any, error, bool) {
	fctx := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(key, func() (any, error) {
		return fetch(fctx)
	})
	select {
	case r := <-ch:
		return r.Val, r.Err, r.Shared
	case <-ctx.Done():
		return nil, ctx.Err(), false
	}
}

// Stats reports the current entry counts of both stores.
type Stats struct {
	Indexes  int `json:"indexes"`
	Searches int `json:"searches"`
}

// Stats returns the current entry counts.
func (s *Service) Stats() Stats {
	return Stats{Indexes: s.index.Len(), Searches: s.search.Len()}
}

// Purge empties both stores.
func (s *Service) Purge() {
	s.index.Purge()
	s.search.Purge()
}

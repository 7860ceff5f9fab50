// Package pkg holds the libraries behind cargoassist, a completion engine
// for the dependency tables of Cargo.toml manifests.
//
// # Overview
//
// The packages split along the path of one completion request:
//
//  1. [manifest] - line-oriented scan of a manifest into its dependency
//     tables, plus workspace discovery
//  2. [completion] - cursor classification, version matching and
//     suggestion building
//  3. [cratedata] - in-memory index and search caches in front of the
//     registry
//  4. [integrations] - the crates.io HTTP client and its response backend
//     ([cache])
//
// [errors] and [observability] are shared by all of them.
//
// # Architecture
//
//	editor / HTTP client / CLI
//	         ↓
//	    completion.Engine ── manifest.Workspace (memoized Structure)
//	         ↓
//	    cratedata.Service (LRU index, TTL search, singleflight)
//	         ↓
//	    crates.Client ── cache.Cache (file | redis | none)
//	         ↓
//	    crates.io API
//
// # Quick Start
//
//	client := crates.NewClient(cache.NewNullCache(), time.Hour)
//	data, _ := cratedata.New(client, cratedata.Options{})
//	engine := completion.NewEngine(data, nil, nil)
//
//	list := engine.Complete(ctx, completion.Request{
//	    Document: manifest.NewTextDocument(text),
//	    Position: manifest.Position{Line: 7, Character: 12},
//	})
//
// [manifest]: github.com/matzehuels/cargoassist/pkg/manifest
// [completion]: github.com/matzehuels/cargoassist/pkg/completion
// [cratedata]: github.com/matzehuels/cargoassist/pkg/cratedata
// [integrations]: github.com/matzehuels/cargoassist/pkg/integrations
// [cache]: github.com/matzehuels/cargoassist/pkg/cache
// [errors]: github.com/matzehuels/cargoassist/pkg/errors
// [observability]: github.com/matzehuels/cargoassist/pkg/observability
package pkg

// Package crates provides an HTTP client for the crates.io API.
//
// # Overview
//
// Two endpoints are used:
//
//   - GET /crates/{name}/versions: the version index of a crate, including
//     the feature table of every release ([Client.FetchIndex])
//   - GET /crates?q={query}: fuzzy search returning name, description,
//     max_stable_version and newest_version ([Client.FetchSearch])
//
// # Usage
//
//	client := crates.NewClient(cache.NewNullCache(), time.Hour)
//
//	idx, err := client.FetchIndex(ctx, "serde")
//	if err != nil {
//	    return err
//	}
//	for _, v := range idx.Versions {
//	    fmt.Println(v.Num, len(v.Features))
//	}
//
// # Caching
//
// Responses are stored in the backend passed to [NewClient] for the given
// TTL. The in-memory LRU and TTL tiers used during editing live in package
// cratedata, above this client.
//
// # User-Agent
//
// crates.io rejects anonymous clients; every request carries a descriptive
// User-Agent ([DefaultUserAgent] unless overridden with [WithUserAgent]).
package crates

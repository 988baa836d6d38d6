// Package pathfinder searches the registered transform.Registry adapters
// for a way to connect two typesystem.TypeDesc values, bounded to a chain
// of at most two adapters (the adapter universe is small and shallow by
// construction, so an unbounded walk would never find anything a 2-hop
// search misses).
//
// Find mirrors dfs.TopologicalSort's shape: a deterministic, pure
// traversal over a small closed universe, driven by a single public entry
// point and returning sentinel-free structured results rather than
// panicking on an unreachable case. Results are cached per (from, to,
// Context) key behind a singleflight.Group so concurrent UI-triggered
// lookups for the same pair never duplicate the search.
package pathfinder

// Package cache provides the generic LRU cache behind the memoized
// resolvers.
//
// Resolving a color conversion or a kernel record for the same inputs
// happens once per frame for every frame of a stream, so results are kept
// keyed by their comparable inputs:
//
//	c := cache.New[key, f64.Aff4](64)
//	m := c.GetOrCreate(k, func() f64.Aff4 { return build(k) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache

// Package cmap provides a string-keyed concurrent map split into shards.
//
// Keys are routed to a shard by their murmur3 hash, and each shard has its
// own RWMutex. The benchmark runner uses it to collect per-kernel samples
// from concurrent trial workers:
//
//	m := cmap.New[[]time.Duration]()
//	m.Update("fibonacci", func(v []time.Duration, _ bool) []time.Duration {
//		return append(v, elapsed)
//	})
//
// Iteration locks one shard at a time, so Range does not see a consistent
// snapshot while writers are active.
package cmap

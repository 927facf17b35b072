// Package cache provides sharded, in-memory key/value caches behind one
// uniform interface, each constructor selecting a different eviction
// policy: classic LRU, k-promotion LRU-k, frequency-based LFU (with
// optional aging), and Adaptive Replacement Cache (ARC) — plain or
// sharded.
//
// Every policy is reachable through the Cache[K, V] interface and shares
// the same sharding convention: keys are routed to one of a power-of-two
// number of shards by an FNV-1a hash, and each shard/core independently
// enforces ceil(capacity/shards) resident entries.
package cache

package cache

import "context"

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictPolicy — removed by a hook-engine policy's own admission rules
	// (2Q's A1in overflow). Evictions made inside LRU-k, LFU and ARC cores
	// are reported as EvictCapacity.
	EvictPolicy EvictReason = iota
	// EvictCapacity — removed because the shard/core was over its entry
	// capacity and needed a victim.
	EvictCapacity
)

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
}

// Options holds the optional, non-sizing knobs every constructor accepts
// via functional Option values. Capacity, shard count, and policy-specific
// parameters (k, maxAvgFreq, ...) are plain positional arguments on each
// New* constructor instead, matching spec.md §6's signatures directly.
type Options[K comparable, V any] struct {
	// Loader fetches a value on cache miss. Used by GetOrLoad.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called on eviction under the owning shard/core's lock;
	// keep callbacks lightweight.
	OnEvict func(k K, v V, reason EvictReason)
	Metrics Metrics
}

// Option configures optional Cache behavior at construction time.
type Option[K comparable, V any] func(*Options[K, V])

// WithLoader sets the Loader used by GetOrLoad.
func WithLoader[K comparable, V any](fn func(ctx context.Context, k K) (V, error)) Option[K, V] {
	return func(o *Options[K, V]) { o.Loader = fn }
}

// WithOnEvict sets a callback invoked whenever an entry is evicted.
func WithOnEvict[K comparable, V any](fn func(k K, v V, reason EvictReason)) Option[K, V] {
	return func(o *Options[K, V]) { o.OnEvict = fn }
}

// WithMetrics sets the Metrics sink. Defaults to NoopMetrics.
func WithMetrics[K comparable, V any](m Metrics) Option[K, V] {
	return func(o *Options[K, V]) { o.Metrics = m }
}

func buildOptions[K comparable, V any](opts []Option[K, V]) Options[K, V] {
	var o Options[K, V]
	for _, apply := range opts {
		apply(&o)
	}
	if o.Metrics == nil {
		o.Metrics = NoopMetrics{}
	}
	return o
}

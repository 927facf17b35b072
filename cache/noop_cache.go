package cache

import "context"

// noopCache backs every constructor's capacity == 0 case: spec.md requires
// a zero-capacity cache to construct successfully and behave as a working
// no-op (every Get/Contains misses, every Put/Add/Remove does nothing),
// unlike a genuinely negative or overflowing capacity, which panics.
type noopCache[K comparable, V any] struct {
	opt Options[K, V]
}

func newNoopCache[K comparable, V any](opt Options[K, V]) Cache[K, V] {
	return &noopCache[K, V]{opt: opt}
}

func (c *noopCache[K, V]) Add(K, V) bool { return false }

func (c *noopCache[K, V]) Set(K, V) {}

func (c *noopCache[K, V]) Get(K) (V, bool) {
	c.opt.Metrics.Miss()
	var zero V
	return zero, false
}

func (c *noopCache[K, V]) Contains(K) bool { return false }

func (c *noopCache[K, V]) Remove(K) bool { return false }

func (c *noopCache[K, V]) Len() int { return 0 }

func (c *noopCache[K, V]) Close() error { return nil }

// GetOrLoad still honors a configured Loader — a zero-capacity cache has
// nowhere to store the result, so it calls through on every request
// instead of ever reporting a hit.
func (c *noopCache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}
	return c.opt.Loader(ctx, k)
}

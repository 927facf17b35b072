package cache

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/polycache/polycache/internal/singleflight"
	"github.com/polycache/polycache/internal/util"
	"github.com/polycache/polycache/policy"
)

// coreFactory builds one self-contained policy.Core for a given per-shard
// capacity. onEvict is invoked by the core, under its own lock, whenever it
// drops an entry to stay within capacity — the engine uses it to drive
// Options.OnEvict and Metrics.Evict. LRU-k, LFU, and ARC each supply one of
// these via their own New(...) constructors.
type coreFactory[K comparable, V any] func(capacity int, onEvict func(k K, v V)) policy.Core[K, V]

// coreCache is a sharded in-memory KV store built on self-contained policy
// cores (LRU-k, LFU, ARC): each shard *is* a policy.Core that owns its own
// index, lists, and lock. The engine only routes by key hash.
// All methods are safe for concurrent use by multiple goroutines.
type coreCache[K comparable, V any] struct {
	shards []policy.Core[K, V]
	hash   func(K) uint64
	closed atomic.Bool

	opt Options[K, V]
	sf  singleflight.Group[K, V]
}

// newCoreCache constructs a core-engine cache with the provided capacity,
// shard count, and per-shard core factory. capacity == 0 returns a no-op
// cache; capacity < 0 panics. shards == 0 means "auto" (same convention as
// the hook engine: ≈2*GOMAXPROCS, rounded up to the next power of two);
// shards < 0 panics.
func newCoreCache[K comparable, V any](capacity int, shards int, opt Options[K, V], factory coreFactory[K, V]) Cache[K, V] {
	if capacity < 0 {
		panic("cache: capacity must be >= 0")
	}
	if shards < 0 {
		panic("cache: shards must be >= 0")
	}
	if capacity == 0 {
		return newNoopCache[K, V](opt)
	}

	sh := shards
	if sh == 0 {
		auto := 2 * runtime.GOMAXPROCS(0)
		sh = int(util.NextPow2(uint64(auto)))
		if sh < 1 {
			sh = 1
		}
	} else {
		sh = int(util.NextPow2(uint64(sh)))
	}

	cc := &coreCache[K, V]{
		hash: util.Fnv64a[K],
		opt:  opt,
	}

	cs := make([]policy.Core[K, V], sh)
	perShardCap := (capacity + sh - 1) / sh
	onEvict := func(k K, v V) {
		cc.opt.Metrics.Evict(EvictCapacity)
		if cb := cc.opt.OnEvict; cb != nil {
			cb(k, v, EvictCapacity)
		}
	}
	for i := 0; i < sh; i++ {
		cs[i] = factory(perShardCap, onEvict)
	}
	cc.shards = cs
	return cc
}

func (c *coreCache[K, V]) Add(k K, v V) bool {
	if c.closed.Load() {
		return false
	}
	ok := c.getShard(k).Add(k, v)
	if ok {
		c.opt.Metrics.Size(c.Len())
	}
	return ok
}

func (c *coreCache[K, V]) Set(k K, v V) {
	if c.closed.Load() {
		return
	}
	c.getShard(k).Put(k, v)
	c.opt.Metrics.Size(c.Len())
}

func (c *coreCache[K, V]) Get(k K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	v, ok := c.getShard(k).Get(k)
	if ok {
		c.opt.Metrics.Hit()
	} else {
		c.opt.Metrics.Miss()
	}
	return v, ok
}

func (c *coreCache[K, V]) Contains(k K) bool {
	if c.closed.Load() {
		return false
	}
	return c.getShard(k).Contains(k)
}

func (c *coreCache[K, V]) Remove(k K) bool {
	if c.closed.Load() {
		return false
	}
	return c.getShard(k).Remove(k)
}

func (c *coreCache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

func (c *coreCache[K, V]) Close() error {
	c.closed.Store(true)
	return nil
}

func (c *coreCache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if v, ok := c.Get(k); ok {
		return v, nil
	}
	if c.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}

	return c.sf.Do(ctx, k, func() (V, error) {
		if v, ok := c.Get(k); ok {
			return v, nil
		}
		v, err := c.opt.Loader(ctx, k)
		if err == nil {
			c.Set(k, v)
		}
		return v, err
	})
}

func (c *coreCache[K, V]) getShard(k K) policy.Core[K, V] {
	h := c.hash(k)
	idx := int(h) & (len(c.shards) - 1)
	return c.shards[idx]
}

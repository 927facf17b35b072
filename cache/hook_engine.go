package cache

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/polycache/polycache/internal/singleflight"
	"github.com/polycache/polycache/internal/util"
	"github.com/polycache/polycache/policy"
)

// hookCache is a sharded in-memory KV store built on hook-driven policies
// (plain LRU, 2Q): every shard owns one intrusive MRU/LRU list, and the
// plugged policy only ever manipulates that one list.
// All methods are safe for concurrent use by multiple goroutines.
type hookCache[K comparable, V any] struct {
	shards []*hookShard[K, V]
	hash   func(K) uint64
	closed atomic.Bool

	opt Options[K, V]
	sf  singleflight.Group[K, V]
}

// newHookCache constructs a hook-engine cache with the provided capacity,
// shard count, and policy. capacity == 0 returns a no-op cache; capacity <
// 0 panics. shards == 0 means auto, rounded up to the next power of two;
// shards < 0 panics.
func newHookCache[K comparable, V any](capacity int, shards int, pol policy.Policy[K, V], opt Options[K, V]) Cache[K, V] {
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

	cs := make([]*hookShard[K, V], sh)
	perShardCap := (capacity + sh - 1) / sh // split capacity evenly (ceil)
	for i := 0; i < sh; i++ {
		cs[i] = newHookShard[K, V](perShardCap, pol, opt)
	}

	return &hookCache[K, V]{
		shards: cs,
		hash:   util.Fnv64a[K],
		opt:    opt,
	}
}

func (c *hookCache[K, V]) Add(k K, v V) bool {
	if c.closed.Load() {
		return false
	}
	return c.getShard(k).Add(k, v)
}

func (c *hookCache[K, V]) Set(k K, v V) {
	if c.closed.Load() {
		return
	}
	c.getShard(k).Put(k, v)
}

func (c *hookCache[K, V]) Get(k K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	return c.getShard(k).Get(k)
}

func (c *hookCache[K, V]) Contains(k K) bool {
	if c.closed.Load() {
		return false
	}
	return c.getShard(k).Contains(k)
}

func (c *hookCache[K, V]) Remove(k K) bool {
	if c.closed.Load() {
		return false
	}
	return c.getShard(k).Remove(k)
}

func (c *hookCache[K, V]) Len() int {
	total := 0
	for _, s := range c.shards {
		total += s.Len()
	}
	return total
}

func (c *hookCache[K, V]) Close() error {
	c.closed.Store(true)
	return nil
}

func (c *hookCache[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
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

// getShard picks a shard by hashing the key and masking with len-1.
// len(c.shards) is guaranteed to be a power of two.
func (c *hookCache[K, V]) getShard(k K) *hookShard[K, V] {
	h := c.hash(k)
	idx := int(h) & (len(c.shards) - 1)
	return c.shards[idx]
}

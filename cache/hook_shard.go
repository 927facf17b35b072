package cache

import (
	"sync"

	"github.com/polycache/polycache/internal/util"
	"github.com/polycache/polycache/policy"
)

// hookShard is an independent partition of a hook-engine cache, with its
// own lock, map, and an intrusive doubly linked list (head=MRU, tail=LRU).
// The plugged policy manipulates that one list through Hooks; the shard
// owns the map and performs the actual insert/delete bookkeeping.
type hookShard[K comparable, V any] struct {
	mu   sync.RWMutex
	m    map[K]*node[K, V]
	head *node[K, V] // MRU
	tail *node[K, V] // LRU
	len  int         // number of resident entries
	cap  int         // per-shard entry capacity

	pol policy.ShardPolicy[K, V]
	opt Options[K, V]

	_      util.CacheLinePad
	hits   util.PaddedAtomicInt64
	misses util.PaddedAtomicInt64
	evicts util.PaddedAtomicUint64
}

// newHookShard initializes a shard with per-shard capacity and a policy factory.
func newHookShard[K comparable, V any](capacity int, pol policy.Policy[K, V], opt Options[K, V]) *hookShard[K, V] {
	s := &hookShard[K, V]{
		m:   make(map[K]*node[K, V], capacity),
		cap: capacity,
		opt: opt,
	}
	s.pol = pol.New(hookHooks[K, V]{s: s})
	return s
}

// Add inserts a NEW entry (no update) as MRU via policy hooks.
// Returns false if the key already exists.
func (s *hookShard[K, V]) Add(k K, v V) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.m[k]; exists {
		return false
	}
	n := &node[K, V]{key: k, val: v}
	s.m[k] = n

	if ev := s.pol.OnAdd(n); ev != nil {
		s.evictNode(ev.(*node[K, V]))
	}
	s.enforceCapacityLocked()
	return true
}

// Put inserts or updates an entry and promotes it according to the policy.
func (s *hookShard[K, V]) Put(k K, v V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n, ok := s.m[k]; ok {
		n.val = v
		s.pol.OnUpdate(n)
		s.enforceCapacityLocked()
		return
	}

	n := &node[K, V]{key: k, val: v}
	s.m[k] = n

	if ev := s.pol.OnAdd(n); ev != nil {
		s.evictNode(ev.(*node[K, V]))
	}
	s.enforceCapacityLocked()
}

// Get returns the value and promotes the entry according to the policy.
func (s *hookShard[K, V]) Get(k K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.m[k]
	if !ok {
		s.misses.Add(1)
		s.opt.Metrics.Miss()
		var zero V
		return zero, false
	}

	s.pol.OnGet(n)
	s.hits.Add(1)
	s.opt.Metrics.Hit()
	return n.val, true
}

// Contains reports presence without promoting the entry.
func (s *hookShard[K, V]) Contains(k K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.m[k]
	return ok
}

// Remove deletes an entry by key. Returns true if the entry existed.
func (s *hookShard[K, V]) Remove(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.m[k]
	if !ok {
		return false
	}
	s.pol.OnRemove(n)
	s.unlink(n)
	delete(s.m, k)
	return true
}

// Len returns the number of resident entries in this shard.
func (s *hookShard[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.len
}

// -------------------- internals (mu held) --------------------

// insertFront inserts n at MRU in O(1).
func (s *hookShard[K, V]) insertFront(n *node[K, V]) {
	n.prev = nil
	n.next = s.head
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
	s.len++
}

// moveToFront promotes n to MRU in O(1).
func (s *hookShard[K, V]) moveToFront(n *node[K, V]) {
	if n == s.head {
		return
	}
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if s.tail == n {
		s.tail = n.prev
	}
	n.prev = nil
	n.next = s.head
	if s.head != nil {
		s.head.prev = n
	}
	s.head = n
	if s.tail == nil {
		s.tail = n
	}
}

// unlink removes n from the list and updates the length in O(1).
// It does not touch the map; callers handle that separately.
func (s *hookShard[K, V]) unlink(n *node[K, V]) {
	if n.prev != nil {
		n.prev.next = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	if s.head == n {
		s.head = n.next
	}
	if s.tail == n {
		s.tail = n.prev
	}
	n.prev, n.next = nil, nil
	s.len--
}

// back returns the current LRU node in O(1), or nil if empty.
func (s *hookShard[K, V]) back() *node[K, V] { return s.tail }

// evictNode removes the node, updates metrics/counters, and calls OnEvict.
func (s *hookShard[K, V]) evictNode(n *node[K, V]) {
	s.pol.OnRemove(n)
	s.unlink(n)
	delete(s.m, n.key)
	s.evicts.Add(1)
	s.opt.Metrics.Evict(EvictPolicy)
	if cb := s.opt.OnEvict; cb != nil {
		cb(n.key, n.val, EvictPolicy)
	}
}

// enforceCapacityLocked evicts entries, as chosen by the policy, until the
// shard is back within capacity.
func (s *hookShard[K, V]) enforceCapacityLocked() {
	for s.len > s.cap {
		victim, ok := s.pol.Evict()
		if !ok {
			break
		}
		n := victim.(*node[K, V])
		s.pol.OnRemove(n)
		s.unlink(n)
		delete(s.m, n.key)
		s.evicts.Add(1)
		s.opt.Metrics.Evict(EvictCapacity)
		if cb := s.opt.OnEvict; cb != nil {
			cb(n.key, n.val, EvictCapacity)
		}
	}
	s.opt.Metrics.Size(s.len)
}

// -------------------- policy hooks --------------------

// hookHooks adapts the shard's list operations to policy.Hooks.
type hookHooks[K comparable, V any] struct{ s *hookShard[K, V] }

func (h hookHooks[K, V]) MoveToFront(x policy.Node[K, V]) { h.s.moveToFront(x.(*node[K, V])) }
func (h hookHooks[K, V]) PushFront(x policy.Node[K, V])   { h.s.insertFront(x.(*node[K, V])) }
func (h hookHooks[K, V]) Remove(x policy.Node[K, V])      { h.s.unlink(x.(*node[K, V])) }

// Back returns the current LRU node as an interface, or a true nil
// interface (not a non-nil interface wrapping a nil *node) when the list
// is empty — callers compare the result against nil.
func (h hookHooks[K, V]) Back() policy.Node[K, V] {
	n := h.s.back()
	if n == nil {
		return nil
	}
	return n
}

func (h hookHooks[K, V]) Len() int { return h.s.len }

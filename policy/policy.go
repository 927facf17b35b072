// Package policy defines the contracts eviction policies implement.
//
// Two shapes coexist. The hook shape (Node/Hooks/ShardPolicy/Policy) is for
// policies that only ever need to manipulate one shared intrusive recency
// list owned by the engine — plain LRU and the bonus 2Q policy. The core
// shape (Core) is for policies that own their entire state (index plus
// one or more lists) themselves, because their admission/eviction logic
// can't be expressed as "move or drop a node in the engine's one list" —
// LRU-k, LFU, and ARC.
package policy

// Node is the minimal contract a cache entry must satisfy for a policy.
// It provides read-only access to the key and a pointer to the value.
// The pointer allows in-place updates without re-linking the intrusive node.
type Node[K comparable, V any] interface {
	Key() K
	Value() *V
}

// Hooks expose O(1) list operations that a policy can use to manipulate
// the shard's intrusive MRU/LRU list. Implementations are provided by the shard.
//
// Concurrency: all hook calls happen under the shard lock.
// Important: hooks manage only the list; the shard owns the key->node map.
type Hooks[K comparable, V any] interface {
	// MoveToFront promotes the node to MRU.
	MoveToFront(Node[K, V])
	// PushFront inserts the node at MRU (used on admission).
	PushFront(Node[K, V])
	// Remove detaches the node from the list (map bookkeeping is done by the shard).
	Remove(Node[K, V])
	// Back returns the current LRU node (or nil if empty).
	Back() Node[K, V]
	// Len returns the number of resident nodes in the shard.
	Len() int
}

// ShardPolicy is a per-shard eviction policy instance bound to shard hooks.
// All methods are invoked under the shard lock.
//
// Semantics:
//   - OnAdd may return an eviction candidate (e.g., LRU of a probation queue).
//     The shard will evict that node and subsequently call OnRemove for it.
//   - OnGet/OnUpdate typically promote the node (e.g., move to MRU).
//   - OnRemove is a notification to update policy-internal state
//     (e.g., maintain ghost queues). The shard performs actual deletion.
//   - Evict returns the policy's current eviction candidate (e.g. the tail
//     of the resident list); the shard calls it once per entry it needs to
//     drop to get back under capacity.
type ShardPolicy[K comparable, V any] interface {
	OnAdd(Node[K, V]) (evict Node[K, V])
	OnGet(Node[K, V])
	OnUpdate(Node[K, V])
	OnRemove(Node[K, V])
	Evict() (victim Node[K, V], ok bool)
}

// Policy is a factory that creates shard-local policy instances
// bound to a particular shard's hooks.
type Policy[K comparable, V any] interface {
	New(Hooks[K, V]) ShardPolicy[K, V]
}

// Core is the capability a self-contained policy core satisfies: it owns
// its own index, its own list(s), and its own lock, and can be sharded by
// routing keys to independent Core instances. This is spec §4.1's
// CachePolicy capability applied directly — the policy decides everything
// about its own storage, with no list machinery shared with the engine.
type Core[K comparable, V any] interface {
	// Add inserts k->v only if k is absent, atomically under the core's own
	// lock. Returns false if k was already present (no update performed).
	Add(k K, v V) bool
	// Put inserts or updates k->v.
	Put(k K, v V)
	// Get returns the value for k and a presence flag, promoting on hit.
	Get(k K) (V, bool)
	// Contains reports whether k is resident, without promoting it.
	Contains(k K) bool
	// Remove deletes k if present and reports whether it existed.
	Remove(k K) bool
	// Len returns the number of resident entries.
	Len() int
}

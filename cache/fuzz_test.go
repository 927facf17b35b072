//go:build go1.18

package cache

import (
	"strings"
	"testing"
)

// Fuzz basic Set/Get/Add/Remove semantics under arbitrary string inputs,
// across every policy family. Guards against panics and ensures the
// uniform interface's core invariants hold regardless of eviction policy.
func FuzzCache_SetGetRemove(f *testing.F) {
	f.Add("", "")
	f.Add("a", "1")
	f.Add("b", "2")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		const limit = 1 << 12 // 4096
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		ctors := map[string]func() Cache[string, string]{
			"lru":  func() Cache[string, string] { return NewLRU[string, string](16) },
			"lruk": func() Cache[string, string] { return NewLRUK[string, string](16, 0, 1) },
			"lfu":  func() Cache[string, string] { return NewLFU[string, string](16, 0) },
			"arc":  func() Cache[string, string] { return NewARC[string, string](16) },
		}

		for name, ctor := range ctors {
			c := ctor()

			// Set -> Get must return the same value.
			c.Set(k, v)
			got, ok := c.Get(k)
			if !ok || got != v {
				t.Fatalf("[%s] after Set/Get: want %q, got %q ok=%v", name, v, got, ok)
			}

			// Add duplicate must not overwrite and must return false.
			if c.Add(k, "other") {
				t.Fatalf("[%s] Add duplicate returned true", name)
			}
			if got2, ok := c.Get(k); !ok || got2 != v {
				t.Fatalf("[%s] after duplicate Add: want %q, got %q ok=%v", name, v, got2, ok)
			}

			// Remove must delete and return true once.
			if !c.Remove(k) {
				t.Fatalf("[%s] Remove must return true", name)
			}
			if _, ok := c.Get(k); ok {
				t.Fatalf("[%s] key must be absent after Remove", name)
			}

			// After removal, Add should succeed again.
			if !c.Add(k, v) {
				t.Fatalf("[%s] Add after Remove must return true", name)
			}

			_ = c.Close()
		}
	})
}

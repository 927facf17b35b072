package lruk

import "testing"

func newCore(capacity, historyCapacity, k int) *lruk[string, int] {
	factory := New[string, int](historyCapacity, k)
	return factory(capacity, nil).(*lruk[string, int])
}

// A key must be referenced k times before Get ever returns it.
func TestLRUK_PromotionThreshold(t *testing.T) {
	t.Parallel()

	c := newCore(4, 0, 2)

	if _, ok := c.Get("a"); ok {
		t.Fatal("first reference must miss")
	}
	if c.Contains("a") {
		t.Fatal("a must not be resident before k references")
	}

	// Second reference, carrying a value: now admitted.
	c.Put("a", 1)
	if !c.Contains("a") {
		t.Fatal("a must be resident after its k-th reference")
	}
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("Get a want 1, got %v ok=%v", v, ok)
	}
}

// Add on a resident key must report false and not overwrite.
func TestLRUK_AddRejectsDuplicate(t *testing.T) {
	t.Parallel()

	c := newCore(4, 0, 1) // k=1: immediate admission

	if !c.Add("a", 1) {
		t.Fatal("first Add must succeed")
	}
	if c.Add("a", 2) {
		t.Fatal("Add on a resident key must return false")
	}
	if v, _ := c.Get("a"); v != 1 {
		t.Fatalf("value must be unchanged by rejected Add, got %v", v)
	}
}

// Resident entries evict classic-LRU once the cap is exceeded.
func TestLRUK_ResidentCapacityEviction(t *testing.T) {
	t.Parallel()

	var evicted []string
	factory := New[string, int](4, 1)
	c := factory(2, func(k string, _ int) { evicted = append(evicted, k) }).(*lruk[string, int])

	c.Add("a", 1)
	c.Add("b", 2)
	c.Get("a") // promote a to MRU
	c.Add("c", 3)

	if !c.Contains("a") || !c.Contains("c") {
		t.Fatal("a and c must survive")
	}
	if c.Contains("b") {
		t.Fatal("b must have been evicted (LRU among resident entries)")
	}
	if len(evicted) != 1 || evicted[0] != "b" {
		t.Fatalf("onEvict must report b, got %v", evicted)
	}
}

// A key that falls out of the bounded history before reaching k starts
// over from zero.
func TestLRUK_HistoryEviction(t *testing.T) {
	t.Parallel()

	c := newCore(4, 1, 3) // history holds only 1 key at a time

	c.Get("a") // a: count 1
	c.Get("b") // b displaces a from the 1-slot history

	c.Put("a", 1) // a is back to a fresh history entry: count 1, not 2
	if c.Contains("a") {
		t.Fatal("a's history must have been reset when it fell out of the bounded history")
	}
}

// Package store holds the portal's in-memory state: customers, their XP
// records and synced orders, guarded by a single lock.
package store

// Collection is an ordered list of items of type T with a key per item.
// Keys may repeat; lookups by key resolve to the first item holding it.
// It is not safe for concurrent use on its own; MemoryStore serializes all
// access.
type Collection[T any] struct {
	items []T
	keys  []string
	first map[string]int // key -> index of its first item
}

// NewCollection creates an empty collection.
func NewCollection[T any]() *Collection[T] {
	c := &Collection[T]{}
	c.Reset()
	return c
}

// Set stores an item under key. When key is present the first item holding
// it is overwritten in place; otherwise the item is appended.
func (c *Collection[T]) Set(key string, item T) {
	if i, exists := c.first[key]; exists {
		c.items[i] = item
		return
	}
	c.first[key] = len(c.items)
	c.items = append(c.items, item)
	c.keys = append(c.keys, key)
}

// Get returns the first item stored under key.
func (c *Collection[T]) Get(key string) (T, bool) {
	if i, ok := c.first[key]; ok {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Has reports whether any item is stored under key.
func (c *Collection[T]) Has(key string) bool {
	_, ok := c.first[key]
	return ok
}

// Len returns the number of items, repeated keys included.
func (c *Collection[T]) Len() int {
	return len(c.items)
}

// List returns all items in order.
func (c *Collection[T]) List() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the first item, in order, matching predicate.
func (c *Collection[T]) Find(predicate func(key string, item T) bool) (T, bool) {
	for i, item := range c.items {
		if predicate(c.keys[i], item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Snapshot returns a copy of the items keyed by key. For a repeated key
// only the first item is included.
func (c *Collection[T]) Snapshot() map[string]T {
	out := make(map[string]T, len(c.first))
	for k, i := range c.first {
		out[k] = c.items[i]
	}
	return out
}

// Replace drops every item and stores items in the given order, keeping
// all of them even when keys repeat.
func (c *Collection[T]) Replace(items []T, key func(T) string) {
	c.items = make([]T, 0, len(items))
	c.keys = make([]string, 0, len(items))
	c.first = make(map[string]int, len(items))
	for _, item := range items {
		k := key(item)
		if _, exists := c.first[k]; !exists {
			c.first[k] = len(c.items)
		}
		c.items = append(c.items, item)
		c.keys = append(c.keys, k)
	}
}

// Reset removes all items.
func (c *Collection[T]) Reset() {
	c.items = make([]T, 0)
	c.keys = make([]string, 0)
	c.first = make(map[string]int)
}

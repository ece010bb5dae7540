// Package cache provides a generic, thread-safe LRU cache.
//
//	c := cache.New[string, int](100)
//	value := c.GetOrCreate("key", func() int { return expensive() })
//
// Lookups, insertions and evictions are O(1): entries live in a map and in a
// doubly-linked recency list. When an insertion pushes the cache over its
// capacity the least recently used entry is evicted.
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache

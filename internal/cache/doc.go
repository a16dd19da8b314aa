// Package cache implements the small in-memory value cache kept by each
// Storage node.
//
// The eviction policy is an age counter, not recency or frequency: every
// Get and every Add ages every resident key by one, and when an Add would
// exceed capacity the key with the greatest age is evicted. This is
// deliberately O(n) in the cache size — the cache is meant to hold a
// handful of hot keys (default capacity 5), not act as a general-purpose
// store.
package cache

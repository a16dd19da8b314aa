// Package lock implements the per-key reader/writer lock table used by
// Storage.
//
// Each key known to a Storage node has its own RWLock. Readers may
// coexist; a writer excludes everyone else. The one non-standard piece
// is TryAcquireRead: it never blocks, and it treats "a writer currently
// holds the lock" as busy rather than queueing behind the writer. That
// is deliberate — it lets a client-facing read get a fast busy response
// while a cluster-wide write coordination is in flight on that key,
// instead of stalling until the writer (which may itself be waiting on
// the Manager) finishes.
package lock

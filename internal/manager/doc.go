// Package manager implements the Manager coordinator: the registry of
// live Storage nodes and connected clients, the two-phase prepare/
// commit/abort coordination for PUT and DEL, the majority-quorum read
// for GET, client routing, and the heartbeat liveness loop.
package manager

// Package idgen generates the random positive 31-bit integer identifiers
// the Manager hands out for server_id and client_id.
//
// IDs are opaque: callers should not assume anything about their
// distribution beyond "positive and fitting in 31 bits." Generation
// resamples on collision against a caller-supplied "still live" check,
// rather than tracking its own exhausted-ID set, since the Manager's
// registry is the only authority on which IDs are currently live.
package idgen

package idgen

import "math/rand/v2"

// maxID is the largest value a positive 31-bit integer can hold
// (2^31 - 1), matching spec's "random positive 31-bit integer" IDs.
const maxID = 1<<31 - 1

// New generates a random ID in [1, 2^31-1], resampling while taken
// reports the candidate is already in use. taken must be safe to call
// concurrently with itself if New is called from multiple goroutines;
// callers typically implement it as a registry lookup under their own
// lock.
func New(taken func(id int32) bool) int32 {
	for {
		candidate := int32(rand.Int32N(maxID)) + 1
		if taken == nil || !taken(candidate) {
			return candidate
		}
	}
}

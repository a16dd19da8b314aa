package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsPositive(t *testing.T) {
	for i := 0; i < 1000; i++ {
		id := New(nil)
		assert.Greater(t, id, int32(0))
	}
}

func TestNewResamplesOnCollision(t *testing.T) {
	seen := map[int32]bool{1: true, 2: true, 3: true}
	calls := 0
	id := New(func(candidate int32) bool {
		calls++
		if calls < 4 {
			return true // force a few collisions
		}
		return seen[candidate]
	})
	assert.False(t, seen[id])
	assert.GreaterOrEqual(t, calls, 4)
}

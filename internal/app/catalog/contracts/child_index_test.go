package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChildIndex_ClaimAssignsPositionsPerCar(t *testing.T) {
	ix := NewChildIndex()
	ix.Observe("car-1", 0, "exterior", "a.jpg")
	ix.Observe("car-1", 4, "exterior", "b.jpg")

	_, exists := ix.Claim("car-1", "exterior", "a.jpg")
	assert.True(t, exists)

	pos, exists := ix.Claim("car-1", "interior", "c.jpg")
	assert.False(t, exists)
	assert.Equal(t, int64(5), pos)

	pos, exists = ix.Claim("car-2", "interior", "c.jpg")
	assert.False(t, exists)
	assert.Equal(t, int64(0), pos)
}

func TestChildIndex_RepeatedKeyBecomesUpdate(t *testing.T) {
	ix := NewChildIndex()

	pos, exists := ix.Claim("car-1", "Single owner")
	assert.False(t, exists)
	assert.Equal(t, int64(0), pos)

	_, exists = ix.Claim("car-1", "Single owner")
	assert.True(t, exists)

	pos, _ = ix.Claim("car-1", "Low km")
	assert.Equal(t, int64(1), pos)
}

func TestChildIndex_KeysDoNotCollideAcrossParts(t *testing.T) {
	ix := NewChildIndex()
	ix.Observe("car-1", 0, "a", "bc")

	_, exists := ix.Claim("car-1", "ab", "c")
	assert.False(t, exists)
}

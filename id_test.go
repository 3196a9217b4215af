package kademlia

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashStringDeterministic(t *testing.T) {
	a := HashString("alice", 160)
	b := HashString("alice", 160)
	assert.True(t, a.Equal(b))
	assert.Equal(t, 160, a.Bits())
}

func TestHashStringDiffers(t *testing.T) {
	a := HashString("alice", 160)
	b := HashString("bob", 160)
	assert.False(t, a.Equal(b))
}

func TestHashWidthSelectsDigest(t *testing.T) {
	narrow := HashString("carol", 160)
	wide := HashString("carol", 256)
	assert.Equal(t, 160, narrow.Bits())
	assert.Equal(t, 256, wide.Bits())
	// Different widths truncate different digests; values need not agree.
	assert.NotEqual(t, narrow.String(), wide.String())
}

func TestDistanceSelfIsZero(t *testing.T) {
	a := HashString("dave", 160)
	d := Distance(a, a)
	assert.True(t, d.IsZero())
}

func TestDistanceSymmetric(t *testing.T) {
	a := HashString("eve", 160)
	b := HashString("frank", 160)
	d1 := Distance(a, b)
	d2 := Distance(b, a)
	assert.True(t, d1.Eq(&d2))
}

func TestLessOrdersByProximity(t *testing.T) {
	target := HashString("target", 160)
	a := HashString("a", 160)
	b := HashString("b", 160)

	da := Distance(a, target)
	db := Distance(b, target)
	if da.Lt(&db) {
		assert.True(t, Less(target, a, b))
		assert.False(t, Less(target, b, a))
	} else {
		assert.True(t, Less(target, b, a))
	}
}

func TestBucketIndexSelfHasNone(t *testing.T) {
	self := HashString("self", 160)
	_, ok := BucketIndex(self, self)
	assert.False(t, ok)
}

func TestBucketIndexWithinRange(t *testing.T) {
	self := HashString("self", 160)
	other := HashString("other", 160)
	idx, ok := BucketIndex(self, other)
	require.True(t, ok)
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, 160)
}

package kademlia

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFindsExistingPeer(t *testing.T) {
	cfg := DefaultConfig()
	cfg.K = 5
	cfg.Alpha = 3
	nodes := newTestCluster(t, 8, cfg)

	target := nodes[5].ID()
	res, err := discover(context.Background(), nodes[1], target, ID{}, modeFindNodes)
	require.NoError(t, err)

	var sawTarget bool
	for _, c := range res.shortlist {
		if c.ID.Equal(target) {
			sawTarget = true
		}
	}
	assert.True(t, sawTarget, "discover should converge on the target node among the k closest")
}

func TestDiscoverShortlistNeverExceedsK(t *testing.T) {
	cfg := DefaultConfig()
	cfg.K = 3
	nodes := newTestCluster(t, 10, cfg)

	res, err := discover(context.Background(), nodes[0], nodes[9].ID(), ID{}, modeFindNodes)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.shortlist), cfg.K)
}

func TestDiscoverValueEarlyExitsOnHit(t *testing.T) {
	cfg := DefaultConfig()
	nodes := newTestCluster(t, 6, cfg)

	ns := HashString("ns", cfg.IDBits)
	key := HashString("findable-key", cfg.IDBits)
	holder := nodes[3]
	holder.Store().StoreValue(ns, key, []byte("treasure"))

	res, err := discover(context.Background(), nodes[0], key, ns, modeFindValue)
	require.NoError(t, err)
	require.NotNil(t, res.found)
	assert.Equal(t, ResultValue, res.kind)
	assert.Equal(t, []byte("treasure"), res.value)
}

func TestDiscoverValueMissReturnsShortlist(t *testing.T) {
	cfg := DefaultConfig()
	nodes := newTestCluster(t, 6, cfg)

	ns := HashString("ns", cfg.IDBits)
	key := HashString("absent-key", cfg.IDBits)

	res, err := discover(context.Background(), nodes[0], key, ns, modeFindValue)
	require.NoError(t, err)
	assert.Nil(t, res.found)
	assert.NotEmpty(t, res.shortlist)
}

func TestMergeContactsDeduplicates(t *testing.T) {
	cfg := DefaultConfig()
	a := newStubContact("a", true, cfg)
	b := newStubContact("b", true, cfg)

	merged := mergeContacts([]*Contact{a}, []*Contact{a, b})
	assert.Len(t, merged, 2)
}

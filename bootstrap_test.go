package kademlia

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBootstrapSeedsRoutingTable(t *testing.T) {
	seed, err := NewNode("seed", DefaultConfig())
	require.NoError(t, err)
	joiner, err := NewNode("joiner", DefaultConfig())
	require.NoError(t, err)

	err = joiner.Bootstrap(context.Background(), seed.AsContact())
	require.NoError(t, err)

	assert.Greater(t, joiner.RoutingTable().Len(), 0)
}

func TestBootstrapFailurePropagatesAsBootstrapError(t *testing.T) {
	joiner, err := NewNode("joiner-2", DefaultConfig())
	require.NoError(t, err)

	deadSeedID := HashString("dead-seed", joiner.Config().IDBits)
	deadSeed := &Contact{
		ID:   deadSeedID,
		Peer: &failingPeer{id: deadSeedID, err: errors.New("connection refused")},
	}

	err = joiner.Bootstrap(context.Background(), deadSeed)
	require.Error(t, err)
	var bErr *BootstrapError
	assert.ErrorAs(t, err, &bErr)
}

func TestBootstrapAndRefreshSeedsRoutingTable(t *testing.T) {
	nodes := newTestCluster(t, 5, DefaultConfig())

	fresh, err := NewNode("latecomer", DefaultConfig())
	require.NoError(t, err)

	err = fresh.BootstrapAndRefresh(context.Background(), nodes[0].AsContact())
	require.NoError(t, err)
	assert.Greater(t, fresh.RoutingTable().Len(), 0)
}

package kademlia

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNodeDerivesIDFromName(t *testing.T) {
	n, err := NewNode("node-alpha", DefaultConfig())
	require.NoError(t, err)
	assert.True(t, n.ID().Equal(HashString("node-alpha", n.Config().IDBits)))
}

func TestNewNodeRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.K = 0
	_, err := NewNode("node-beta", cfg)
	assert.Error(t, err)
}

func TestLocalPeerPingOffersCallerToRoutingTable(t *testing.T) {
	n, err := NewNode("node-gamma", DefaultConfig())
	require.NoError(t, err)

	caller, err := NewNode("caller", DefaultConfig())
	require.NoError(t, err)

	ok, err := n.Peer().Ping(context.Background(), caller.AsContact())
	require.NoError(t, err)
	assert.True(t, ok)

	idx, _ := BucketIndex(n.ID(), caller.ID())
	assert.Equal(t, 1, n.RoutingTable().BucketLen(idx))
}

func TestLocalPeerFindNodeReturnsClosest(t *testing.T) {
	n, err := NewNode("node-delta", DefaultConfig())
	require.NoError(t, err)
	other, err := NewNode("node-epsilon", DefaultConfig())
	require.NoError(t, err)

	n.RoutingTable().AddContact(other.AsContact())

	found, err := n.Peer().FindNode(context.Background(), other.AsContact(), n.ID(), 5)
	require.NoError(t, err)
	assert.NotEmpty(t, found)
}

func TestLocalPeerStoreAndFindValue(t *testing.T) {
	n, err := NewNode("node-zeta", DefaultConfig())
	require.NoError(t, err)
	caller, err := NewNode("caller-2", DefaultConfig())
	require.NoError(t, err)

	ns := HashString("ns", n.Config().IDBits)
	key := HashString("key", n.Config().IDBits)

	err = n.Peer().Store(context.Background(), caller.AsContact(), ns, key, []byte("hello"))
	require.NoError(t, err)

	res, err := n.Peer().FindValue(context.Background(), caller.AsContact(), ns, key)
	require.NoError(t, err)
	assert.Equal(t, ResultValue, res.Kind)
	assert.Equal(t, []byte("hello"), res.Value)
}

func TestLocalPeerFindValueFallsBackToCloser(t *testing.T) {
	n, err := NewNode("node-eta", DefaultConfig())
	require.NoError(t, err)
	caller, err := NewNode("caller-3", DefaultConfig())
	require.NoError(t, err)

	ns := HashString("ns", n.Config().IDBits)
	key := HashString("missing", n.Config().IDBits)

	res, err := n.Peer().FindValue(context.Background(), caller.AsContact(), ns, key)
	require.NoError(t, err)
	assert.Equal(t, ResultCloser, res.Kind)
}

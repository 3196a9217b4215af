package kademlia

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// failingPeer answers every RPC with err, standing in for an unreachable
// remote node.
type failingPeer struct {
	id  ID
	err error
}

func (p *failingPeer) ID() ID { return p.id }
func (p *failingPeer) Ping(ctx context.Context, caller *Contact) (bool, error) {
	return false, p.err
}
func (p *failingPeer) FindNode(ctx context.Context, caller *Contact, target ID, limit int) ([]*Contact, error) {
	return nil, p.err
}
func (p *failingPeer) FindValue(ctx context.Context, caller *Contact, namespace, keyHash ID) (FindValueResult, error) {
	return FindValueResult{}, p.err
}
func (p *failingPeer) Store(ctx context.Context, caller *Contact, namespace, keyHash ID, value []byte) error {
	return p.err
}
func (p *failingPeer) Reference(ctx context.Context, caller *Contact, namespace, keyHash ID, primary *Contact) error {
	return p.err
}

// newTestCluster builds n nodes and bootstraps each of them 1..n-1 through
// node 0, giving every node at least a partial view of the network the way
// a real swarm converges after each peer joins through a known seed.
func newTestCluster(t *testing.T, n int, cfg Config) []*Node {
	t.Helper()
	nodes := make([]*Node, n)
	for i := 0; i < n; i++ {
		node, err := NewNode(fmt.Sprintf("cluster-node-%d", i), cfg)
		require.NoError(t, err)
		nodes[i] = node
	}
	for i := 1; i < n; i++ {
		err := nodes[i].Bootstrap(context.Background(), nodes[0].AsContact())
		require.NoError(t, err)
	}
	return nodes
}

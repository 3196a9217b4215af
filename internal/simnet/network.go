// Package simnet is an in-process peer arena used by cmd/kadsim. The design
// notes in spec.md are explicit that a process-wide registry of every peer
// is a test/bootstrap fixture, not a production component, and that the
// core package must never rely on one — so this lives outside the kademlia
// package entirely and is injected explicitly by whatever uses it. The
// kademlia package's own tests do not import it; they use in-package test
// doubles.
package simnet

import (
	"context"
	"sync"

	"github.com/kadlab/kadht"
)

// Network is a lookup table from node identifier to node, standing in for
// whatever out-of-band mechanism (DNS, a config file, a directory service)
// a real deployment would use to learn a peer's address before the first
// Bootstrap call.
type Network struct {
	mu    sync.RWMutex
	nodes map[kademlia.ID]*kademlia.Node
}

// New creates an empty arena.
func New() *Network {
	return &Network{nodes: make(map[kademlia.ID]*kademlia.Node)}
}

// Register makes n reachable by identifier through Contact/Any. It does
// not touch any routing table.
func (net *Network) Register(n *kademlia.Node) {
	net.mu.Lock()
	defer net.mu.Unlock()
	net.nodes[n.ID()] = n
}

// Contact returns the contact handle for a previously registered node.
func (net *Network) Contact(id kademlia.ID) (*kademlia.Contact, bool) {
	net.mu.RLock()
	defer net.mu.RUnlock()
	n, ok := net.nodes[id]
	if !ok {
		return nil, false
	}
	return n.AsContact(), true
}

// Any returns an arbitrary registered node's contact — handy as a
// bootstrap seed when a test doesn't care which peer a new node joins
// through.
func (net *Network) Any() (*kademlia.Contact, bool) {
	net.mu.RLock()
	defer net.mu.RUnlock()
	for _, n := range net.nodes {
		return n.AsContact(), true
	}
	return nil, false
}

// Nodes returns every registered node, in no particular order.
func (net *Network) Nodes() []*kademlia.Node {
	net.mu.RLock()
	defer net.mu.RUnlock()
	out := make([]*kademlia.Node, 0, len(net.nodes))
	for _, n := range net.nodes {
		out = append(out, n)
	}
	return out
}

// Len reports how many nodes are registered.
func (net *Network) Len() int {
	net.mu.RLock()
	defer net.mu.RUnlock()
	return len(net.nodes)
}

// FaultyPeer wraps a Peer so its liveness can be flipped on demand, making
// it fail the bucket eviction challenge in RoutingTable.AddContact. Nothing
// in this module wraps a peer with it.
type FaultyPeer struct {
	kademlia.Peer
	mu   sync.Mutex
	down bool
}

// NewFaultyPeer wraps p; it behaves exactly like p until SetPingDown(true).
func NewFaultyPeer(p kademlia.Peer) *FaultyPeer {
	return &FaultyPeer{Peer: p}
}

// SetPingDown controls whether Ping reports failure.
func (f *FaultyPeer) SetPingDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}

// Ping reports failure while the peer is marked down, otherwise delegates.
func (f *FaultyPeer) Ping(ctx context.Context, caller *kademlia.Contact) (bool, error) {
	f.mu.Lock()
	down := f.down
	f.mu.Unlock()
	if down {
		return false, nil
	}
	return f.Peer.Ping(ctx, caller)
}

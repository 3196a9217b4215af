package kademlia

import "context"

// LocalPeer is a Node's implementation of the Peer interface: the in-process
// RPC handlers a real transport would dispatch incoming wire requests to
// (spec §4.4). Every method offers the caller to this node's routing table
// before returning, exactly as an incoming wire request would.
type LocalPeer struct {
	node *Node
}

// NewLocalPeer wraps n so it satisfies Peer.
func NewLocalPeer(n *Node) *LocalPeer { return &LocalPeer{node: n} }

// ID reports the owning node's identifier.
func (lp *LocalPeer) ID() ID { return lp.node.id }

// Ping always reports alive for a live, in-process node; a transport-backed
// Peer would report false on timeout or transport error instead.
func (lp *LocalPeer) Ping(ctx context.Context, caller *Contact) (bool, error) {
	lp.node.routingTable.AddContact(caller)
	return true, nil
}

// FindNode answers with this node's closest known contacts to target.
func (lp *LocalPeer) FindNode(ctx context.Context, caller *Contact, target ID, limit int) ([]*Contact, error) {
	lp.node.routingTable.AddContact(caller)
	return lp.node.routingTable.ClosestTo(target, limit), nil
}

// FindValue answers with the owned value, a reference to its holder, or
// this node's closest contacts to keyHash if it knows neither.
func (lp *LocalPeer) FindValue(ctx context.Context, caller *Contact, namespace, keyHash ID) (FindValueResult, error) {
	lp.node.routingTable.AddContact(caller)

	if v, ok := lp.node.store.FetchValue(namespace, keyHash); ok {
		return FindValueResult{Kind: ResultValue, Value: v}, nil
	}
	if ref, ok := lp.node.store.FetchReference(namespace, keyHash); ok {
		return FindValueResult{Kind: ResultReference, Reference: ref}, nil
	}
	closer := lp.node.routingTable.ClosestTo(keyHash, lp.node.cfg.K)
	return FindValueResult{Kind: ResultCloser, Closer: closer}, nil
}

// Store installs Owned(value) at (namespace, keyHash).
func (lp *LocalPeer) Store(ctx context.Context, caller *Contact, namespace, keyHash ID, value []byte) error {
	lp.node.routingTable.AddContact(caller)
	lp.node.store.StoreValue(namespace, keyHash, value)
	return nil
}

// Reference installs Reference(primary) at (namespace, keyHash).
func (lp *LocalPeer) Reference(ctx context.Context, caller *Contact, namespace, keyHash ID, primary *Contact) error {
	lp.node.routingTable.AddContact(caller)
	lp.node.store.StoreReference(namespace, keyHash, primary)
	return nil
}

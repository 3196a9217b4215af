package kademlia

import (
	"context"
	"fmt"
)

// DHT is a namespaced Put/Get façade built on discover (spec §4.6). A
// namespace is a logical partition of the keyspace identified by the hash
// of an application-chosen label; keys in different namespaces never
// collide even on the same Node.
type DHT struct {
	node      *Node
	namespace ID
	log       *logHelper
}

// NewDHT scopes a DHT to namespaceLabel on node.
func NewDHT(node *Node, namespaceLabel string) *DHT {
	return &DHT{
		node:      node,
		namespace: HashString(namespaceLabel, node.cfg.IDBits),
		log:       newLogger("dht").with(node.id),
	}
}

// Put stores value under key: discover locates the k closest peers to
// hash(key), STORE goes to the closest (the primary), and the remaining
// k-1 get either a REFERENCE to the primary (UseReferences, the default)
// or a full copy (spec §4.6).
func (d *DHT) Put(ctx context.Context, key string, value []byte) error {
	h := HashString(key, d.node.cfg.IDBits)

	res, err := discover(ctx, d.node, h, d.namespace, modeFindNodes)
	if err != nil && (res == nil || len(res.shortlist) == 0) {
		return fmt.Errorf("kademlia: put %q: %w", key, ErrNoPeers)
	}
	shortlist := res.shortlist
	if len(shortlist) == 0 {
		return fmt.Errorf("kademlia: put %q: %w", key, ErrNoPeers)
	}

	primary := shortlist[0]
	caller := d.node.AsContact()
	sctx, cancel := context.WithTimeout(ctx, d.node.cfg.RPCTimeout)
	storeErr := primary.Peer.Store(sctx, caller, d.namespace, h, value)
	cancel()
	if storeErr != nil {
		return fmt.Errorf("kademlia: put %q: %w", key, ErrStoreFailed)
	}

	for _, c := range shortlist[1:] {
		rctx, rcancel := context.WithTimeout(ctx, d.node.cfg.RPCTimeout)
		var replicaErr error
		if d.node.cfg.UseReferences {
			replicaErr = c.Peer.Reference(rctx, caller, d.namespace, h, primary)
		} else {
			replicaErr = c.Peer.Store(rctx, caller, d.namespace, h, value)
		}
		rcancel()
		if replicaErr != nil {
			// Best-effort: a replica failure never fails the put (spec §4.8).
			d.log.withError(replicaErr).Warn("replication to shortlist peer failed")
		}
	}
	return nil
}

// Get retrieves the value stored under key: discover runs in value-seeking
// mode and early-exits on the first peer holding the value or a reference
// to it; a reference costs one extra hop to the primary (spec §4.6).
func (d *DHT) Get(ctx context.Context, key string) ([]byte, error) {
	h := HashString(key, d.node.cfg.IDBits)

	res, err := discover(ctx, d.node, h, d.namespace, modeFindValue)
	if err != nil && res == nil {
		return nil, fmt.Errorf("kademlia: get %q: %w", key, ErrNotFound)
	}
	if res.found == nil {
		return nil, fmt.Errorf("kademlia: get %q: %w", key, ErrNotFound)
	}

	switch res.kind {
	case ResultValue:
		return res.value, nil
	case ResultReference:
		gctx, cancel := context.WithTimeout(ctx, d.node.cfg.RPCTimeout)
		defer cancel()
		fv, err := res.reference.Peer.FindValue(gctx, d.node.AsContact(), d.namespace, h)
		if err != nil || fv.Kind != ResultValue {
			return nil, fmt.Errorf("kademlia: get %q: %w", key, ErrNotFound)
		}
		return fv.Value, nil
	default:
		return nil, fmt.Errorf("kademlia: get %q: %w", key, ErrNotFound)
	}
}

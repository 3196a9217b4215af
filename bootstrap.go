package kademlia

import "context"

// Bootstrap populates the node's routing table from a single known peer
// (spec §4.7): the peer is added as a contact, then asked to FIND_NODE the
// node's own identifier — the peers it names back are the ones best
// positioned to be future neighbours in this node's own bucket region.
// This is one RPC to one seed, not a full discover.
func (n *Node) Bootstrap(ctx context.Context, known *Contact) error {
	n.routingTable.AddContact(known)

	fctx, cancel := context.WithTimeout(ctx, n.cfg.RPCTimeout)
	defer cancel()
	nodes, err := known.Peer.FindNode(fctx, n.AsContact(), n.id, n.cfg.K)
	if err != nil {
		return &BootstrapError{Peer: known.ID.String(), Cause: err}
	}
	for _, c := range nodes {
		n.routingTable.AddContact(c)
	}
	n.log.Info("bootstrap seeded routing table from known peer")
	return nil
}

// BootstrapAndRefresh runs Bootstrap and then an additional discover on the
// node's own identifier, to populate buckets a single FIND_NODE reply
// cannot reach (spec §4.7 step 4, optional).
func (n *Node) BootstrapAndRefresh(ctx context.Context, known *Contact) error {
	if err := n.Bootstrap(ctx, known); err != nil {
		return err
	}
	_, err := discover(ctx, n, n.id, ID{}, modeFindNodes)
	return err
}

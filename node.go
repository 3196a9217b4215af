package kademlia

// Node is a DHT participant: an identifier, a routing table, a local
// store, and the LocalPeer other nodes reach it through (spec §6
// Node::new / Node::bootstrap). Node is the unit of identity the rest of
// the package operates on; DHT layers namespaced Put/Get on top of it.
type Node struct {
	id           ID
	cfg          Config
	routingTable *RoutingTable
	store        *Store
	local        *LocalPeer
	log          *logHelper
}

// NewNode derives the node's identifier from name (spec: "Node identifiers
// are derived by hashing an application-level string name") and wires up
// an empty routing table, local store, and LocalPeer.
func NewNode(name string, cfg Config) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	id := HashString(name, cfg.IDBits)
	n := &Node{
		id:    id,
		cfg:   cfg,
		store: NewStore(),
		log:   newLogger("node"),
	}
	n.routingTable = NewRoutingTable(id, cfg)
	n.local = NewLocalPeer(n)
	n.routingTable.SetSelfPeer(n.local)
	n.log = n.log.with(id)
	return n, nil
}

// ID returns the node's identifier.
func (n *Node) ID() ID { return n.id }

// Peer returns the node's own Peer implementation, the handle other nodes
// call into.
func (n *Node) Peer() *LocalPeer { return n.local }

// RoutingTable exposes the node's routing table for inspection and
// maintenance (PruneStale, diagnostics).
func (n *Node) RoutingTable() *RoutingTable { return n.routingTable }

// Store exposes the node's local store for inspection.
func (n *Node) Store() *Store { return n.store }

// Config returns the node's configuration.
func (n *Node) Config() Config { return n.cfg }

// AsContact returns a Contact referring to this node, suitable for handing
// to another node (e.g. as the bootstrap seed, or as the caller parameter
// of an outgoing RPC).
func (n *Node) AsContact() *Contact {
	return &Contact{ID: n.id, Peer: n.local, Status: StatusGood}
}

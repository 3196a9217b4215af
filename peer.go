package kademlia

import "context"

// FindValueKind distinguishes the three shapes a FIND_VALUE response can
// take (spec §4.4).
type FindValueKind int

const (
	// ResultCloser means the peer does not hold the key; Closer carries the
	// k nodes it knows that are closest to it.
	ResultCloser FindValueKind = iota
	// ResultValue means the peer owns the value directly.
	ResultValue
	// ResultReference means the peer knows which other peer owns the value.
	ResultReference
)

// FindValueResult is the sum type FIND_VALUE returns.
type FindValueResult struct {
	Kind      FindValueKind
	Value     []byte
	Reference *Contact
	Closer    []*Contact
}

// Peer is the minimal RPC surface every DHT node exposes to its peers (spec
// §4.4): PING, FIND_NODE, FIND_VALUE, STORE, REFERENCE. A Peer is anything
// that answers these five calls — a LocalPeer for in-process callers, a
// transport-backed stub for a real remote node, or a test double. This
// interface is the single point of polymorphism the design notes call for:
// no inheritance, just duck typing over five methods.
//
// caller identifies the node issuing the RPC. Every implementation MUST
// offer caller to its own routing table via AddContact before returning,
// mirroring real Kademlia where every inbound request's sender is a
// routing-table candidate.
type Peer interface {
	// ID reports this peer's own identifier.
	ID() ID

	// Ping is a liveness probe.
	Ping(ctx context.Context, caller *Contact) (bool, error)

	// FindNode returns this peer's closest known contacts to target.
	FindNode(ctx context.Context, caller *Contact, target ID, limit int) ([]*Contact, error)

	// FindValue returns the value, a reference to its holder, or the peer's
	// closest contacts to keyHash if it knows neither.
	FindValue(ctx context.Context, caller *Contact, namespace, keyHash ID) (FindValueResult, error)

	// Store installs an Owned(value) record at (namespace, keyHash).
	Store(ctx context.Context, caller *Contact, namespace, keyHash ID, value []byte) error

	// Reference installs a Reference(primary) record at (namespace, keyHash).
	Reference(ctx context.Context, caller *Contact, namespace, keyHash ID, primary *Contact) error
}

package kademlia

import "time"

// NodeStatus is a peer's liveness classification (grounded on the teacher's
// dht.NodeStatus three-state model).
type NodeStatus uint8

const (
	StatusUnknown NodeStatus = iota
	StatusBad
	StatusGood
)

// PingStats tracks liveness history for a contact.
type PingStats struct {
	PingCount    uint32
	SuccessCount uint32
	FailureCount uint32
	LastSeen     time.Time
}

// TimeProvider abstracts time so bucket recency and staleness tests are
// deterministic rather than wall-clock dependent.
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

var defaultTimeProvider TimeProvider = realTimeProvider{}

// SetDefaultTimeProvider overrides the package-level time source. Pass nil
// to restore wall-clock time. Intended for tests.
func SetDefaultTimeProvider(tp TimeProvider) {
	if tp == nil {
		tp = realTimeProvider{}
	}
	defaultTimeProvider = tp
}

// Contact is the peer handle a routing table stores: an identifier plus
// whatever reaches the remote node (spec §3 "Peer handle"). Peer is the
// transport-addressable seam — a LocalPeer for in-process callers, or a
// transport-backed stub for a real remote node.
type Contact struct {
	ID     ID
	Peer   Peer
	Status NodeStatus
	Stats  PingStats
}

// NewContact wraps a Peer in a fresh, unknown-status contact.
func NewContact(id ID, peer Peer) *Contact {
	return &Contact{
		ID:     id,
		Peer:   peer,
		Status: StatusUnknown,
		Stats:  PingStats{LastSeen: defaultTimeProvider.Now()},
	}
}

// recordPing updates liveness bookkeeping after a PING attempt.
func (c *Contact) recordPing(alive bool) {
	c.Stats.PingCount++
	if alive {
		c.Stats.SuccessCount++
		c.Stats.LastSeen = defaultTimeProvider.Now()
		c.Status = StatusGood
	} else {
		c.Stats.FailureCount++
		c.Status = StatusBad
	}
}

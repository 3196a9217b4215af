package kademlia

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers of the DHT façade (spec §7). RPC-level
// failures (timeouts, transport errors) are absorbed inside discover and
// never reach this list directly — they show up as one of NoPeers,
// NotFound, or StoreFailed once the façade gives up.
var (
	// ErrNoPeers means discover returned an empty shortlist — the node is
	// isolated.
	ErrNoPeers = errors.New("kademlia: no peers available")
	// ErrNotFound means Get could not locate the key after lookup converged.
	ErrNotFound = errors.New("kademlia: key not found")
	// ErrStoreFailed means the primary STORE RPC failed.
	ErrStoreFailed = errors.New("kademlia: primary store failed")
)

// BootstrapError reports a failed bootstrap attempt against a specific seed
// peer, mirroring the teacher's BootstrapError (peer, cause) shape.
type BootstrapError struct {
	Peer  string
	Cause error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("kademlia: bootstrap via %s failed: %v", e.Peer, e.Cause)
}

func (e *BootstrapError) Unwrap() error { return e.Cause }

// Package kademlia implements a Kademlia-style distributed hash table: a
// peer-to-peer key/value overlay in which every node independently
// maintains a routing table of other nodes and collectively provides
// Put/Get over the network without a central coordinator in steady state.
//
// # Architecture
//
// Each Node owns a RoutingTable (k-buckets organized by XOR distance from
// the node's own identifier), a Store (the node's local namespace/key-hash
// records), and a LocalPeer — the node's implementation of the Peer
// interface that remote nodes call into.
//
// Key components:
//
//   - ID / Hash / Distance / BucketIndex: the identifier space and XOR metric
//   - RoutingTable / KBucket: k-bucket routing with recency/eviction discipline
//   - Peer: the five-operation RPC surface (PING, STORE, REFERENCE, FIND_NODE,
//     FIND_VALUE) that makes a node reachable — satisfied by LocalPeer for
//     in-process callers and by any transport-backed stub for remote ones
//   - discover: the iterative node lookup that converges on the k nodes
//     closest to a target identifier
//   - DHT: the namespaced Put/Get façade layered on discover, including the
//     primary-plus-reference storage optimisation
//
// # Bootstrap
//
// A joining node populates its routing table from one already-connected
// peer:
//
//	node, _ := kademlia.NewNode("alice", kademlia.DefaultConfig())
//	err := node.Bootstrap(ctx, knownPeer)
//
// # Put / Get
//
// Once bootstrapped, a node can participate in a namespaced key/value space:
//
//	dht := kademlia.NewDHT(node, "address-book")
//	err := dht.Put(ctx, "alice@example.com", []byte("203.0.113.4:33445"))
//	v, err := dht.Get(ctx, "alice@example.com")
//
// # Scope
//
// This package covers the routing and lookup engine only. Wire transport,
// message serialization, bootstrap-node discovery above "the caller
// supplies one peer address", and any end-user-facing application are
// left to the embedder — see the Peer interface, which is the single
// seam a transport implementation needs to satisfy.
package kademlia

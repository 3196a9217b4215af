package kademlia

import (
	"context"
	"sort"
	"sync"
)

// lookupMode selects whether a discover round issues FIND_NODE (converging
// on the k closest peers) or FIND_VALUE (early-exiting on the first peer
// that holds the value or a reference to it).
type lookupMode int

const (
	modeFindNodes lookupMode = iota
	modeFindValue
)

// discoverResult is what discover converges on: either the k closest
// contacts (modeFindNodes, or modeFindValue with nothing found), or the
// peer that answered Value/Reference along with that answer.
type discoverResult struct {
	shortlist []*Contact
	found     *Contact
	kind      FindValueKind
	value     []byte
	reference *Contact
}

// discover is the iterative node-lookup procedure (spec §4.5): given a
// target identifier, it converges on the k peers in the network whose IDs
// are closest to it, querying up to alpha peers in parallel per round and
// terminating when a round makes no progress. In value-seeking mode it
// returns as soon as any queried peer reports it holds the value or a
// reference to it.
func discover(ctx context.Context, n *Node, target ID, namespace ID, mode lookupMode) (*discoverResult, error) {
	cfg := n.cfg
	rt := n.routingTable
	caller := n.AsContact()

	shortlist := rt.ClosestTo(target, cfg.K)
	seen := map[ID]bool{n.id: true}

	topK := func(list []*Contact) []ID {
		n := len(list)
		if n > cfg.K {
			n = cfg.K
		}
		ids := make([]ID, n)
		for i := 0; i < n; i++ {
			ids[i] = list[i].ID
		}
		return ids
	}
	sameIDs := func(a, b []ID) bool {
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			return &discoverResult{shortlist: shortlist}, ctx.Err()
		default:
		}

		var toQuery []*Contact
		for _, c := range shortlist {
			if seen[c.ID] {
				continue
			}
			toQuery = append(toQuery, c)
			if len(toQuery) == cfg.Alpha {
				break
			}
		}
		if len(toQuery) == 0 {
			return &discoverResult{shortlist: shortlist}, nil
		}

		prevClosest := topK(shortlist)

		type outcome struct {
			peer  *Contact
			nodes []*Contact
			hit   *discoverResult
		}
		results := make([]outcome, len(toQuery))
		var wg sync.WaitGroup
		for i, peer := range toQuery {
			wg.Add(1)
			go func(i int, peer *Contact) {
				defer wg.Done()
				qctx, cancel := context.WithTimeout(ctx, cfg.RPCTimeout)
				defer cancel()

				if mode == modeFindValue {
					res, err := peer.Peer.FindValue(qctx, caller, namespace, target)
					if err != nil {
						// RPC failure: treated as an empty result, never as
						// permanent death (spec §4.8).
						return
					}
					switch res.Kind {
					case ResultValue:
						results[i] = outcome{peer: peer, hit: &discoverResult{found: peer, kind: ResultValue, value: res.Value}}
					case ResultReference:
						results[i] = outcome{peer: peer, hit: &discoverResult{found: peer, kind: ResultReference, reference: res.Reference}}
					default:
						results[i] = outcome{peer: peer, nodes: res.Closer}
					}
					return
				}

				nodes, err := peer.Peer.FindNode(qctx, caller, target, cfg.K)
				if err != nil {
					return
				}
				results[i] = outcome{peer: peer, nodes: nodes}
			}(i, peer)
		}
		wg.Wait()

		var newContacts []*Contact
		for _, o := range results {
			if o.peer == nil {
				continue // RPC failed; peer stays un-seen so a later round may retry it
			}
			seen[o.peer.ID] = true
			rt.AddContact(o.peer)
			if o.hit != nil {
				return o.hit, nil
			}
			for _, c := range o.nodes {
				rt.AddContact(c)
				newContacts = append(newContacts, c)
			}
		}

		merged := mergeContacts(shortlist, newContacts)
		sort.SliceStable(merged, func(i, j int) bool {
			return Less(target, merged[i].ID, merged[j].ID)
		})
		if len(merged) > cfg.K {
			merged = merged[:cfg.K]
		}
		shortlist = merged

		if sameIDs(prevClosest, topK(shortlist)) {
			return &discoverResult{shortlist: shortlist}, nil
		}
	}
}

// mergeContacts deduplicates by ID, keeping the first occurrence (existing
// shortlist entries win over newly discovered duplicates).
func mergeContacts(existing, fresh []*Contact) []*Contact {
	seen := make(map[ID]bool, len(existing)+len(fresh))
	out := make([]*Contact, 0, len(existing)+len(fresh))
	for _, c := range existing {
		if !seen[c.ID] {
			seen[c.ID] = true
			out = append(out, c)
		}
	}
	for _, c := range fresh {
		if !seen[c.ID] {
			seen[c.ID] = true
			out = append(out, c)
		}
	}
	return out
}

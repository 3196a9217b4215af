package kademlia

import (
	"context"
	"sort"
	"sync"
	"time"
)

// KBucket is an ordered, capped list of contacts sharing a distance prefix
// from the owning node (spec §3, §4.3). Order encodes recency: index 0 is
// least-recently-seen, the tail is most-recently-seen.
//
// dataMu guards the contacts slice. evictMu serializes the "bucket is full"
// path, which issues a PING: the spec requires that PING happen outside the
// bucket's critical section (to avoid a node deadlocking against itself
// when the head happens to be local), while still linearising add_contact
// per bucket so two concurrent challenges never both evict the same head.
type KBucket struct {
	dataMu   sync.Mutex
	evictMu  sync.Mutex
	contacts []*Contact
	capacity int
}

func newKBucket(capacity int) *KBucket {
	return &KBucket{contacts: make([]*Contact, 0, capacity), capacity: capacity}
}

// touch moves an existing contact to the tail and reports whether it was
// present.
func (kb *KBucket) touch(id ID) bool {
	kb.dataMu.Lock()
	defer kb.dataMu.Unlock()
	for i, c := range kb.contacts {
		if c.ID == id {
			kb.contacts = append(kb.contacts[:i], kb.contacts[i+1:]...)
			kb.contacts = append(kb.contacts, c)
			return true
		}
	}
	return false
}

// tryAppend appends c if there is room, reporting success.
func (kb *KBucket) tryAppend(c *Contact) bool {
	kb.dataMu.Lock()
	defer kb.dataMu.Unlock()
	if len(kb.contacts) >= kb.capacity {
		return false
	}
	kb.contacts = append(kb.contacts, c)
	return true
}

// peekHead returns the least-recently-seen contact without removing it, or
// nil if the bucket is empty.
func (kb *KBucket) peekHead() *Contact {
	kb.dataMu.Lock()
	defer kb.dataMu.Unlock()
	if len(kb.contacts) == 0 {
		return nil
	}
	return kb.contacts[0]
}

// evictHeadAndAppend drops the current head (by ID, to tolerate a
// concurrent mutation) and appends c at the tail.
func (kb *KBucket) evictHeadAndAppend(headID ID, c *Contact) {
	kb.dataMu.Lock()
	defer kb.dataMu.Unlock()
	for i, existing := range kb.contacts {
		if existing.ID == headID {
			kb.contacts = append(kb.contacts[:i], kb.contacts[i+1:]...)
			break
		}
	}
	if len(kb.contacts) < kb.capacity {
		kb.contacts = append(kb.contacts, c)
	}
}

// remove drops a contact by ID, reporting whether it was present.
func (kb *KBucket) remove(id ID) bool {
	kb.dataMu.Lock()
	defer kb.dataMu.Unlock()
	for i, c := range kb.contacts {
		if c.ID == id {
			kb.contacts = append(kb.contacts[:i], kb.contacts[i+1:]...)
			return true
		}
	}
	return false
}

// snapshot returns a copy of the bucket's contacts, oldest first.
func (kb *KBucket) snapshot() []*Contact {
	kb.dataMu.Lock()
	defer kb.dataMu.Unlock()
	out := make([]*Contact, len(kb.contacts))
	copy(out, kb.contacts)
	return out
}

func (kb *KBucket) len() int {
	kb.dataMu.Lock()
	defer kb.dataMu.Unlock()
	return len(kb.contacts)
}

// RoutingTable is a node's view of the network: one KBucket per bit of the
// identifier space, holding up to K contacts each (spec §4.3). It is safe
// for concurrent use; each bucket locks independently so a slow PING
// challenge in one bucket never blocks lookups that touch others.
type RoutingTable struct {
	self        ID
	selfContact *Contact // installed once via SetSelfPeer; included in every ClosestTo result
	buckets     []*KBucket
	k           int
	pingTimeout time.Duration
	log         *logHelper
}

// NewRoutingTable creates an empty routing table with one bucket per bit of
// cfg.IDBits, each capped at cfg.K contacts.
func NewRoutingTable(self ID, cfg Config) *RoutingTable {
	rt := &RoutingTable{
		self:        self,
		buckets:     make([]*KBucket, cfg.IDBits),
		k:           cfg.K,
		pingTimeout: cfg.RPCTimeout,
		log:         newLogger("routing"),
	}
	for i := range rt.buckets {
		rt.buckets[i] = newKBucket(cfg.K)
	}
	return rt
}

// SetSelfPeer installs the Peer implementation for the table's own node, so
// self can be offered as a ClosestTo candidate (spec §4.3 "include self as
// a candidate"). Called once at Node construction, before any concurrent
// use begins.
func (rt *RoutingTable) SetSelfPeer(p Peer) {
	rt.selfContact = &Contact{ID: rt.self, Peer: p, Status: StatusGood}
}

// SelfID returns the identifier this table is routing for.
func (rt *RoutingTable) SelfID() ID { return rt.self }

// AddContact implements the spec §4.3 insertion policy. A nil contact or a
// contact equal to self is a no-op (spec §8 boundary: add_contact(self) is
// a no-op).
func (rt *RoutingTable) AddContact(c *Contact) {
	if c == nil {
		return
	}
	idx, ok := BucketIndex(rt.self, c.ID)
	if !ok {
		return
	}
	kb := rt.buckets[idx]

	if kb.touch(c.ID) {
		return
	}
	if kb.tryAppend(c) {
		return
	}

	// Bucket full: challenge the head. Must linearise per bucket (evictMu)
	// but must NOT hold dataMu while the PING is in flight.
	kb.evictMu.Lock()
	defer kb.evictMu.Unlock()

	// Re-check: another goroutine may have freed a slot or already added c
	// while we waited for evictMu.
	if kb.touch(c.ID) {
		return
	}
	if kb.tryAppend(c) {
		return
	}
	head := kb.peekHead()
	if head == nil {
		kb.tryAppend(c)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), rt.pingTimeout)
	alive, err := head.Peer.Ping(ctx, rt.selfContact)
	cancel()
	head.recordPing(err == nil && alive)

	if err == nil && alive {
		// Head answered: it stays, the challenger is dropped.
		kb.touch(head.ID)
		rt.log.Debug("bucket full, head alive, candidate dropped")
		return
	}
	// Head is unresponsive: it is evicted, the challenger takes its place.
	kb.evictHeadAndAppend(head.ID, c)
	rt.log.Debug("bucket full, head evicted, candidate inserted")
}

// RemoveContact removes a contact by ID from whichever bucket it occupies.
// PruneStale uses it; a head that fails its PING challenge in AddContact is
// removed by the eviction path itself.
func (rt *RoutingTable) RemoveContact(id ID) bool {
	idx, ok := BucketIndex(rt.self, id)
	if !ok {
		return false
	}
	return rt.buckets[idx].remove(id)
}

// ClosestTo returns up to limit contacts (including self) whose IDs are
// closest to target, ascending by distance (spec §4.3). limit < 0 returns
// every known contact plus self.
func (rt *RoutingTable) ClosestTo(target ID, limit int) []*Contact {
	start, ok := BucketIndex(rt.self, target)
	if !ok {
		start = 0
	}

	seen := make(map[ID]bool)
	var candidates []*Contact
	add := func(c *Contact) {
		if c == nil || seen[c.ID] {
			return
		}
		seen[c.ID] = true
		candidates = append(candidates, c)
	}
	collect := func(i int) {
		if i < 0 || i >= len(rt.buckets) {
			return
		}
		for _, c := range rt.buckets[i].snapshot() {
			add(c)
		}
	}

	collect(start)
	lo, hi := start-1, start+1
	for lo >= 0 || hi < len(rt.buckets) {
		if limit >= 0 && len(candidates) >= limit {
			break
		}
		if lo >= 0 {
			collect(lo)
			lo--
		}
		if hi < len(rt.buckets) {
			collect(hi)
			hi++
		}
	}

	add(rt.selfContact)

	sort.SliceStable(candidates, func(i, j int) bool {
		return Less(target, candidates[i].ID, candidates[j].ID)
	})

	if limit < 0 || limit > len(candidates) {
		return candidates
	}
	return candidates[:limit]
}

// AllContacts returns every contact known across all buckets (not
// including self). Useful for diagnostics and the invariant tests in
// spec.md §8.
func (rt *RoutingTable) AllContacts() []*Contact {
	var all []*Contact
	for _, b := range rt.buckets {
		all = append(all, b.snapshot()...)
	}
	return all
}

// BucketContacts returns the contacts in a single bucket, or nil for an
// out-of-range index.
func (rt *RoutingTable) BucketContacts(index int) []*Contact {
	if index < 0 || index >= len(rt.buckets) {
		return nil
	}
	return rt.buckets[index].snapshot()
}

// BucketLen reports how many contacts occupy a single bucket.
func (rt *RoutingTable) BucketLen(index int) int {
	if index < 0 || index >= len(rt.buckets) {
		return 0
	}
	return rt.buckets[index].len()
}

// ContactsByStatus returns every known contact with the given status.
func (rt *RoutingTable) ContactsByStatus(status NodeStatus) []*Contact {
	var out []*Contact
	for _, c := range rt.AllContacts() {
		if c.Status == status {
			out = append(out, c)
		}
	}
	return out
}

// Len reports the total number of contacts across all buckets.
func (rt *RoutingTable) Len() int {
	total := 0
	for _, b := range rt.buckets {
		total += b.len()
	}
	return total
}

// PruneStale removes contacts whose Stats.LastSeen is older than maxAge.
// LastSeen is set when NewContact creates a contact and on every successful
// PING. Not invoked automatically — replica/refresh timers are out of
// scope (spec.md §1 Non-goals) — but kept as a maintenance primitive a host
// application may schedule itself, mirroring the teacher's
// RemoveStaleNodes.
func (rt *RoutingTable) PruneStale(maxAge time.Duration) int {
	removed := 0
	now := defaultTimeProvider.Now()
	for _, c := range rt.AllContacts() {
		if now.Sub(c.Stats.LastSeen) > maxAge {
			if rt.RemoveContact(c.ID) {
				removed++
			}
		}
	}
	return removed
}

package kademlia

import "sync"

type recordKind int

const (
	recordNone recordKind = iota
	recordOwned
	recordReference
)

type record struct {
	kind      recordKind
	value     []byte
	reference *Contact
}

// namespaceShard is one namespace's key-hash -> record map (spec §4.2).
type namespaceShard struct {
	mu      sync.RWMutex
	records map[ID]record
}

// Store is a node's local two-level namespace -> (key-hash -> record)
// mapping. A record is either Owned(value) or Reference(peer); a node never
// holds both for the same (namespace, key_hash) — the second write simply
// overwrites the first (spec §3, §4.2).
type Store struct {
	mu         sync.Mutex
	namespaces map[ID]*namespaceShard
}

// NewStore creates an empty local store.
func NewStore() *Store {
	return &Store{namespaces: make(map[ID]*namespaceShard)}
}

func (s *Store) shard(namespace ID) *namespaceShard {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.namespaces[namespace]
	if !ok {
		ns = &namespaceShard{records: make(map[ID]record)}
		s.namespaces[namespace] = ns
	}
	return ns
}

// StoreValue installs Owned(value), overwriting any prior record.
func (s *Store) StoreValue(namespace, keyHash ID, value []byte) {
	ns := s.shard(namespace)
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.records[keyHash] = record{kind: recordOwned, value: value}
}

// StoreReference installs Reference(peer), overwriting any prior record.
func (s *Store) StoreReference(namespace, keyHash ID, peer *Contact) {
	ns := s.shard(namespace)
	ns.mu.Lock()
	defer ns.mu.Unlock()
	ns.records[keyHash] = record{kind: recordReference, reference: peer}
}

// FetchValue returns the value iff the record at (namespace, keyHash) is
// Owned.
func (s *Store) FetchValue(namespace, keyHash ID) ([]byte, bool) {
	ns := s.shard(namespace)
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	r, ok := ns.records[keyHash]
	if !ok || r.kind != recordOwned {
		return nil, false
	}
	return r.value, true
}

// FetchReference returns the peer iff the record at (namespace, keyHash) is
// a Reference.
func (s *Store) FetchReference(namespace, keyHash ID) (*Contact, bool) {
	ns := s.shard(namespace)
	ns.mu.RLock()
	defer ns.mu.RUnlock()
	r, ok := ns.records[keyHash]
	if !ok || r.kind != recordReference {
		return nil, false
	}
	return r.reference, true
}

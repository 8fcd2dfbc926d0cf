// Package kv defines the key-value collaborator the SQL layer runs against.
//
// The engine only ever needs four operations: point get/put/delete and an
// ordered prefix scan. Anything that can provide those (an embedded map, a
// remote store behind a client) can back a database.
package kv

// Entry is one (key, value) pair returned by Scan.
type Entry struct {
	Key   []byte
	Value []byte
}

// Store is the abstract ordered key-value store.
//
// Scan must return every entry whose key starts with prefix, ordered
// lexicographically by key bytes. No atomicity is assumed across calls;
// the SQL layer issues them sequentially and relies on read-your-writes
// visibility only.
type Store interface {
	// Get returns the value for key, or ok=false if the key is absent.
	Get(key []byte) (value []byte, ok bool, err error)

	// Put stores value under key, replacing any previous value.
	Put(key, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key []byte) error

	// Scan returns all entries under prefix in key order.
	Scan(prefix []byte) ([]Entry, error)
}

// Package storage provides key-value slots that hold persisted state.
//
// A slot maps a string key to a string value, in the shape of the
// browser localStorage API:
//
//	GetItem(key) (value, ok, err)
//	SetItem(key, value) error
//	RemoveItem(key) error
//
// Values are replaced wholesale on every SetItem. There are no partial
// updates and no versioning.
//
// # Backends
//
//   - "file": one file per key under a data directory, written atomically
//   - "sqlite": a single kv table in a pure-Go SQLite database
//   - "memory": a process-local map, for tests and dry runs
package storage

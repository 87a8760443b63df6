package storage

import (
	"errors"
	"fmt"
	"strings"
)

// Kind names a storage backend.
type Kind string

const (
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindMemory Kind = "memory"
)

// ErrInvalidKey is returned for keys that cannot name a slot.
var ErrInvalidKey = errors.New("invalid storage key")

// Storage is a key-value slot store.
type Storage interface {
	// GetItem returns the value stored under key. ok is false when the
	// key has never been written or was removed.
	GetItem(key string) (value string, ok bool, err error)
	// SetItem replaces the value stored under key.
	SetItem(key, value string) error
	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error
	// Close releases backend resources.
	Close() error
}

// Kinds returns the accepted backend names.
func Kinds() []Kind {
	return []Kind{KindFile, KindSQLite, KindMemory}
}

// ParseKind normalizes a backend name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	names := make([]string, 0, len(Kinds()))
	for _, known := range Kinds() {
		names = append(names, string(known))
	}
	return "", fmt.Errorf("unknown storage %q (expected %s)", s, strings.Join(names, "|"))
}

// Open opens the backend named by kind rooted at dir.
// dir is ignored by the memory backend.
func Open(kind, dir string) (Storage, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return nil, err
	}
	switch k {
	case KindFile:
		return NewFileStorage(dir)
	case KindSQLite:
		return OpenSQLite(dir)
	default:
		return NewMemoryStorage(), nil
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

package storage

// MemoryStorage keeps slots in a map. It is not safe for concurrent use.
type MemoryStorage struct {
	items map[string]string
}

// NewMemoryStorage returns an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (m *MemoryStorage) GetItem(key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	v, ok := m.items[key]
	return v, ok, nil
}

func (m *MemoryStorage) SetItem(key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	m.items[key] = value
	return nil
}

func (m *MemoryStorage) RemoveItem(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	delete(m.items, key)
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

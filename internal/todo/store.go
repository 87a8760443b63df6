package todo

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/storage"
)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey sets the storage key holding the sequence.
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for heal and persistence events.
func WithLogger(logger *log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type observer struct {
	id int
	fn func(Change)
}

// Store owns the item sequence and writes it through to a storage slot.
// It is not safe for concurrent use; callers run on a single event loop.
type Store struct {
	storage   storage.Storage
	key       string
	logger    *log.Logger
	items     []Item
	observers []observer
	nextID    int
}

// NewStore returns a Store backed by st. Call Load before use.
func NewStore(st storage.Storage, opts ...StoreOption) *Store {
	s := &Store{
		storage: st,
		key:     DefaultKey,
		logger:  logging.Discard(),
		items:   []Item{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Load reads the persisted sequence, healing it to empty when it is
// missing or invalid, and writes the result back.
func (s *Store) Load() error {
	items, err := s.read()
	if err != nil {
		return err
	}
	s.items = items
	return s.persist()
}

// Reload re-reads the persisted sequence and notifies observers.
func (s *Store) Reload() error {
	if err := s.Load(); err != nil {
		return err
	}
	s.notify(Change{Op: OpReload, Index: -1})
	return nil
}

func (s *Store) read() ([]Item, error) {
	raw, ok, err := s.storage.GetItem(s.key)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	if !ok {
		s.logger.Debug("no stored items, starting empty", "key", s.key)
		return []Item{}, nil
	}

	result := Validate([]byte(raw))
	if !result.Valid {
		s.logger.Warn("stored items invalid, resetting to empty",
			"key", s.key, "errors", len(result.Errors), "first", result.Errors[0])
		return []Item{}, nil
	}
	for _, w := range result.Warnings {
		s.logger.Debug("renumbering stored item", "key", s.key, "detail", w)
	}
	items := result.Items
	if items == nil {
		items = []Item{}
	}
	renumber(items)
	return items, nil
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}
	if err := s.storage.SetItem(s.key, string(data)); err != nil {
		s.logger.Error("persist items failed", "key", s.key, "err", err)
		return fmt.Errorf("persist items: %w", err)
	}
	return nil
}

// Items re-syncs the persisted copy and returns a copy of the sequence.
func (s *Store) Items() ([]Item, error) {
	if err := s.persist(); err != nil {
		return nil, err
	}
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// Stats counts completed and active items.
func (s *Store) Stats() Stats {
	st := Stats{Total: len(s.items)}
	for _, item := range s.items {
		if item.Completed {
			st.Completed++
		}
	}
	st.Active = st.Total - st.Completed
	return st
}

// Add appends a new incomplete item. Empty text is ignored.
func (s *Store) Add(text string) error {
	if text == "" {
		return nil
	}
	index := len(s.items)
	s.items = append(s.items, Item{
		Description: text,
		Completed:   false,
		Index:       index,
	})
	if err := s.persist(); err != nil {
		return err
	}
	s.notify(Change{Op: OpAdd, Index: index})
	return nil
}

// Update replaces the description of the item at index.
// Observers are not notified.
func (s *Store) Update(text string, index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.items[index].Description = text
	return s.persist()
}

// Toggle sets the completion flag of the item at index.
func (s *Store) Toggle(index int, completed bool) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.items[index].Completed = completed
	if err := s.persist(); err != nil {
		return err
	}
	s.notify(Change{Op: OpToggle, Index: index})
	return nil
}

// Delete removes the item at index and renumbers the rest.
func (s *Store) Delete(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.items = append(s.items[:index], s.items[index+1:]...)
	renumber(s.items)
	if err := s.persist(); err != nil {
		return err
	}
	s.notify(Change{Op: OpDelete, Index: index})
	return nil
}

// ClearCompleted drops every completed item and renumbers the rest.
func (s *Store) ClearCompleted() error {
	kept := make([]Item, 0, len(s.items))
	for _, item := range s.items {
		if !item.Completed {
			kept = append(kept, item)
		}
	}
	renumber(kept)
	s.items = kept
	if err := s.persist(); err != nil {
		return err
	}
	s.notify(Change{Op: OpClear, Index: -1})
	return nil
}

// OnChange registers fn to run after every mutation that needs a
// re-render. The returned func removes the registration.
func (s *Store) OnChange(fn func(Change)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.observers = append(s.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(c Change) {
	s.logger.Debug("items changed", "op", c.Op, "index", c.Index, "len", len(s.items))
	// Observers may unsubscribe while running.
	snapshot := make([]observer, len(s.observers))
	copy(snapshot, s.observers)
	for _, o := range snapshot {
		o.fn(c)
	}
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.items) {
		return indexError(index, len(s.items))
	}
	return nil
}

func renumber(items []Item) {
	for i := range items {
		items[i].Index = i
	}
}

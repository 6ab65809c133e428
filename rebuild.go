package accounts

import (
	"fmt"

	"github.com/etnz/accounts/link"
)

// rebuilder maps the IDs found in a source to the IDs allocated in a store.
type rebuilder struct {
	mapping map[ID]ID
}

// add records that the source ID old is now id.
func (r *rebuilder) add(old, id ID) error {
	if _, exists := r.mapping[old]; exists {
		return &DuplicateSourceKeyError{ID: old}
	}
	r.mapping[old] = id
	return nil
}

// resolve returns the new ID of old. None stays None.
func (r *rebuilder) resolve(reason string, old ID) (ID, error) {
	if old.IsNone() {
		return None, nil
	}
	id, ok := r.mapping[old]
	if !ok {
		return None, &UnresolvedReferenceError{Reason: reason, ID: old}
	}
	return id, nil
}

// Load builds a store from items, like the ones returned by Serialize.
//
// Every item gets a new ID, in the order of items, and every reference
// between items is rewritten to the new IDs. Load fails if two items have the
// same ID, if an item refers to an ID that is not in items, or if two items
// break the uniqueness rule of their collection. On error no store is
// returned.
//
// The records in items are owned by the returned store.
func Load(items []Item) (*Store, error) { return LoadWithConfig(items, link.DefaultConfig) }

// LoadWithConfig is like Load with a given link cache configuration.
func LoadWithConfig(items []Item, config link.Config) (*Store, error) {
	s := NewWithConfig(config)
	if err := s.rebuild(items); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) rebuild(items []Item) error {
	r := rebuilder{mapping: make(map[ID]ID, len(items))}
	for i, item := range items {
		if item.Record == nil {
			return fmt.Errorf("item %d (id %v) has no record", i, item.ID)
		}
		id := s.arena.Insert(item.Record)
		if err := r.add(item.ID, id); err != nil {
			return err
		}
	}
	for _, id := range s.arena.ids {
		rec := s.arena.records[id]
		if err := rec.rebuild(r.resolve); err != nil {
			return fmt.Errorf("cannot rebuild %s %v: %w", rec.Kind(), id, err)
		}
		if err := s.collect(id, rec); err != nil {
			return err
		}
	}
	return nil
}

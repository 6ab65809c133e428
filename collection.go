package accounts

import (
	"fmt"
	"slices"
)

// collection is the secondary index of one kind of records: their IDs in
// order of insertion, and a unique key per record (plus optional aliases).
type collection[K comparable] struct {
	kind Kind
	keys map[K]ID
	ids  []ID
}

func newCollection[K comparable](kind Kind) *collection[K] {
	return &collection[K]{kind: kind, keys: make(map[K]ID)}
}

// check returns a *DuplicateError if key is used by another record than id.
func (c *collection[K]) check(key K, id ID) error {
	if existing, found := c.keys[key]; found && existing != id {
		return &DuplicateError{Kind: c.kind, Key: fmt.Sprint(key), Existing: existing}
	}
	return nil
}

// checkNew returns a *DuplicateError if any of the keys of a new record is
// already used, or repeated.
func (c *collection[K]) checkNew(keys ...K) error {
	for i, key := range keys {
		if err := c.check(key, None); err != nil {
			return err
		}
		if slices.Contains(keys[:i], key) {
			return &DuplicateError{Kind: c.kind, Key: fmt.Sprint(key)}
		}
	}
	return nil
}

// add records id under its keys. Nothing changes on error.
func (c *collection[K]) add(id ID, keys ...K) error {
	if err := c.checkNew(keys...); err != nil {
		return err
	}
	for _, key := range keys {
		c.keys[key] = id
	}
	c.ids = append(c.ids, id)
	return nil
}

// alias adds one more key to an existing record.
func (c *collection[K]) alias(id ID, key K) error {
	if err := c.check(key, id); err != nil {
		return err
	}
	c.keys[key] = id
	return nil
}

func (c *collection[K]) get(key K) (ID, bool) {
	id, ok := c.keys[key]
	return id, ok
}

func (c *collection[K]) has(key K) bool {
	_, ok := c.keys[key]
	return ok
}

// IDs returns the IDs of the collection in order of insertion.
func (c *collection[K]) IDs() []ID { return slices.Clone(c.ids) }

func (c *collection[K]) Len() int { return len(c.ids) }

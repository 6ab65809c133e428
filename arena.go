package accounts

import (
	"iter"
	"slices"
)

// Arena owns every record of a store, by ID.
//
// IDs are allocated in increasing order and never reused, so the arena scans
// its records in ascending ID order.
type Arena struct {
	records map[ID]Record
	ids     []ID // ascending
	alloc   allocator
}

func newArena() *Arena {
	return &Arena{records: make(map[ID]Record)}
}

// Insert allocates a fresh ID for rec and stores it.
func (a *Arena) Insert(rec Record) ID {
	id := a.alloc.nextFree(func(id ID) bool {
		_, exists := a.records[id]
		return exists
	})
	a.records[id] = rec
	a.ids = append(a.ids, id)
	return id
}

// Get returns the record of ID id.
func (a *Arena) Get(id ID) (Record, bool) {
	rec, ok := a.records[id]
	return rec, ok
}

// Lookup returns the record of ID id if it exists and is a T.
func Lookup[T Record](a *Arena, id ID) (T, bool) {
	rec, ok := a.records[id]
	if !ok {
		var zero T
		return zero, false
	}
	return Narrow[T](rec)
}

// Len returns the number of records.
func (a *Arena) Len() int { return len(a.ids) }

// IDs returns all IDs in ascending order.
func (a *Arena) IDs() []ID { return slices.Clone(a.ids) }

// Matching returns the IDs of the records accepted by pred, in ascending
// order. A nil pred accepts everything.
//
// The sequence is lazy and can be iterated again.
func (a *Arena) Matching(pred func(ID, Record) bool) iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for _, id := range a.ids {
			if pred != nil && !pred(id, a.records[id]) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// OfKind returns the IDs of the records of a kind, in ascending order.
func (a *Arena) OfKind(kind Kind) iter.Seq[ID] {
	return a.Matching(func(_ ID, rec Record) bool { return rec.Kind() == kind })
}

// Package ordered provides Index, a date-ordered multi-map of references.
//
// An Index keeps references grouped in one bucket per date, buckets sorted in
// chronological order, references of a bucket in insertion order. Memory is
// proportional to the number of distinct dates plus the number of references,
// and finding the start of a date range is a binary search over the dates.
//
// Index never rejects duplicates: the same reference may legitimately appear
// twice on the same day, it is up to the owner to avoid unwanted repeats.
package ordered

import (
	"encoding/json"
	"iter"
	"slices"

	"github.com/etnz/accounts/date"
	"gopkg.in/yaml.v3"
)

// bucket holds all the references for a single date.
type bucket[K comparable] struct {
	on   date.Date
	refs []K // never empty
}

// Index is a date-ordered multi-map from dates to references of type K.
//
// Its zero value is an empty index ready to use.
type Index[K comparable] struct {
	buckets []bucket[K]
	count   int
}

// search returns the position of the bucket for 'on', and whether it exists.
// If it does not exist, the position is where it should be inserted.
func (ix *Index[K]) search(on date.Date) (int, bool) {
	return slices.BinarySearchFunc(ix.buckets, on, func(b bucket[K], on date.Date) int {
		return b.on.Compare(on)
	})
}

// Insert appends ref to the references of date 'on'.
func (ix *Index[K]) Insert(on date.Date, ref K) {
	i, found := ix.search(on)
	if found {
		ix.buckets[i].refs = append(ix.buckets[i].refs, ref)
	} else {
		ix.buckets = slices.Insert(ix.buckets, i, bucket[K]{on: on, refs: []K{ref}})
	}
	ix.count++
}

// Len returns the number of references in the index.
func (ix *Index[K]) Len() int { return ix.count }

// Clear removes all references.
func (ix *Index[K]) Clear() {
	ix.buckets = ix.buckets[:0]
	ix.count = 0
}

// Clone returns a deep copy of the index.
func (ix *Index[K]) Clone() Index[K] {
	c := Index[K]{buckets: make([]bucket[K], len(ix.buckets)), count: ix.count}
	for i, b := range ix.buckets {
		c.buckets[i] = bucket[K]{on: b.on, refs: slices.Clone(b.refs)}
	}
	return c
}

// OfDate returns a copy of the references on a given date, in insertion order.
func (ix *Index[K]) OfDate(on date.Date) []K {
	i, found := ix.search(on)
	if !found {
		return nil
	}
	return slices.Clone(ix.buckets[i].refs)
}

// Contains reports whether ref is recorded on date 'on'.
func (ix *Index[K]) Contains(on date.Date, ref K) bool {
	i, found := ix.search(on)
	return found && slices.Contains(ix.buckets[i].refs, ref)
}

// Dates returns an iterator over the distinct dates in chronological order.
func (ix *Index[K]) Dates() iter.Seq[date.Date] {
	return func(yield func(date.Date) bool) {
		for _, b := range ix.buckets {
			if !yield(b.on) {
				return
			}
		}
	}
}

// All returns an iterator over all (date, reference) pairs in order.
func (ix *Index[K]) All() iter.Seq2[date.Date, K] {
	return func(yield func(date.Date, K) bool) {
		for _, b := range ix.buckets {
			for _, ref := range b.refs {
				if !yield(b.on, ref) {
					return
				}
			}
		}
	}
}

// InRange returns an iterator over the references whose date is within r
// (r.From included, r.To excluded), in order.
//
// A range with a zero From is empty and yields nothing, use date.Until for
// every reference before a date.
//
// Each call to the returned iterator walks the index again.
func (ix *Index[K]) InRange(r date.Range) iter.Seq[K] {
	return func(yield func(K) bool) {
		if r.IsEmpty() {
			return
		}
		start, _ := ix.search(r.From)
		for _, b := range ix.buckets[start:] {
			if !b.on.Before(r.To) {
				return
			}
			for _, ref := range b.refs {
				if !yield(ref) {
					return
				}
			}
		}
	}
}

// Rebuild replaces every reference by remap(reference).
//
// It stops at the first error, which is returned as is, leaving the index
// partially remapped: the owner is expected to be discarded.
func (ix *Index[K]) Rebuild(remap func(K) (K, error)) error {
	for i := range ix.buckets {
		refs := ix.buckets[i].refs
		for j, ref := range refs {
			n, err := remap(ref)
			if err != nil {
				return err
			}
			refs[j] = n
		}
	}
	return nil
}

// entry is the persisted form of a single reference.
type entry[K comparable] struct {
	On  date.Date `json:"date" yaml:"date"`
	Ref K         `json:"ref" yaml:"ref"`
}

func (ix Index[K]) entries() []entry[K] {
	list := make([]entry[K], 0, ix.count)
	for on, ref := range ix.All() {
		list = append(list, entry[K]{On: on, Ref: ref})
	}
	return list
}

func (ix *Index[K]) load(list []entry[K]) {
	ix.Clear()
	for _, e := range list {
		ix.Insert(e.On, e.Ref)
	}
}

// MarshalJSON writes the index as a flat ordered list of {date, ref} objects.
func (ix Index[K]) MarshalJSON() ([]byte, error) { return json.Marshal(ix.entries()) }

// UnmarshalJSON reads an index from a list of {date, ref} objects.
func (ix *Index[K]) UnmarshalJSON(data []byte) error {
	var list []entry[K]
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	ix.load(list)
	return nil
}

// MarshalYAML writes the index as a flat ordered list of {date, ref} mappings.
func (ix Index[K]) MarshalYAML() (any, error) { return ix.entries(), nil }

// UnmarshalYAML reads an index from a list of {date, ref} mappings.
func (ix *Index[K]) UnmarshalYAML(node *yaml.Node) error {
	var list []entry[K]
	if err := node.Decode(&list); err != nil {
		return err
	}
	ix.load(list)
	return nil
}

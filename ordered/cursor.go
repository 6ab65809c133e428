package ordered

import "github.com/etnz/accounts/date"

// Cursor is a position in an Index.
//
// A Cursor is a plain value: it stays meaningful only as long as the index
// it came from is not modified.
type Cursor struct {
	valid  bool
	bucket int
	ofs    int
}

// IsValid returns true if the cursor points at a reference.
func (c Cursor) IsValid() bool { return c.valid }

// First returns a cursor on the first reference, invalid if the index is empty.
func (ix *Index[K]) First() Cursor {
	if len(ix.buckets) == 0 {
		return Cursor{}
	}
	return Cursor{valid: true}
}

// Last returns a cursor on the last reference, invalid if the index is empty.
func (ix *Index[K]) Last() Cursor {
	if len(ix.buckets) == 0 {
		return Cursor{}
	}
	return ix.endOf(len(ix.buckets) - 1)
}

func (ix *Index[K]) endOf(i int) Cursor {
	return Cursor{valid: true, bucket: i, ofs: len(ix.buckets[i].refs) - 1}
}

// At returns a cursor for the date 'on'.
//
// When 'on' has references, the cursor is on its first reference if
// firstOfDay is true, on its last one otherwise, and exact is true.
//
// Otherwise exact is false and the cursor is on the nearest reference in the
// requested direction: the first reference of the next date if firstOfDay is
// true, the last reference of the previous date if not. When there is no such
// date, the cursor falls back on the nearest reference on the other side.
//
// On an empty index the cursor is invalid.
func (ix *Index[K]) At(on date.Date, firstOfDay bool) (c Cursor, exact bool) {
	n := len(ix.buckets)
	if n == 0 {
		return Cursor{}, false
	}
	i, found := ix.search(on)
	switch {
	case found && firstOfDay:
		return Cursor{valid: true, bucket: i}, true
	case found:
		return ix.endOf(i), true
	case firstOfDay && i < n: // start of the next date
		return Cursor{valid: true, bucket: i}, false
	case firstOfDay: // nothing after 'on'
		return ix.endOf(n - 1), false
	case i > 0: // end of the previous date
		return ix.endOf(i - 1), false
	default: // nothing before 'on'
		return Cursor{valid: true}, false
	}
}

// Next moves the cursor to the following reference.
//
// It returns false, and leaves the cursor unmoved, if there is none.
func (ix *Index[K]) Next(c *Cursor) bool {
	if !c.valid {
		return false
	}
	switch {
	case c.ofs+1 < len(ix.buckets[c.bucket].refs):
		c.ofs++
	case c.bucket+1 < len(ix.buckets):
		c.bucket++
		c.ofs = 0
	default:
		return false
	}
	return true
}

// Prev moves the cursor to the preceding reference.
//
// It returns false, and leaves the cursor unmoved, if there is none.
func (ix *Index[K]) Prev(c *Cursor) bool {
	if !c.valid {
		return false
	}
	switch {
	case c.ofs > 0:
		c.ofs--
	case c.bucket > 0:
		*c = ix.endOf(c.bucket - 1)
	default:
		return false
	}
	return true
}

// Date returns the date of the reference under the cursor.
func (ix *Index[K]) Date(c Cursor) (date.Date, bool) {
	if !c.valid {
		return date.Date{}, false
	}
	return ix.buckets[c.bucket].on, true
}

// Ref returns the reference under the cursor.
func (ix *Index[K]) Ref(c Cursor) (K, bool) {
	if !c.valid {
		var zero K
		return zero, false
	}
	return ix.buckets[c.bucket].refs[c.ofs], true
}

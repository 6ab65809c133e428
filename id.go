package accounts

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is the surrogate key of a record in the store.
//
// IDs are assigned by the store when a record is added or loaded, they carry
// no meaning outside of it, and they are not stable across loads.
type ID uint64

// None is the reserved absent ID. It is never assigned to a record.
const None ID = 0

// IsNone reports whether id is the absent ID.
func (id ID) IsNone() bool { return id == None }

// String returns the decimal form of id, or "none".
func (id ID) String() string {
	if id == None {
		return "none"
	}
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID parses a decimal ID, optionally prefixed with '#'.
func ParseID(s string) (ID, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if s == "none" || s == "" {
		return None, nil
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return None, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return ID(n), nil
}

// allocator hands out increasing IDs.
type allocator struct {
	next ID
}

// nextFree returns the lowest ID not below the counter that is neither None
// nor in use, and moves the counter past it.
func (a *allocator) nextFree(inUse func(ID) bool) ID {
	for a.next == None || inUse(a.next) {
		a.next++
	}
	id := a.next
	a.next++
	return id
}

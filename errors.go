package accounts

import (
	"errors"
	"fmt"
)

// Sentinel errors, use with errors.Is.
var (
	// ErrDuplicateSourceKey is returned by Load when two items share the same ID.
	ErrDuplicateSourceKey = errors.New("duplicate source id")

	// ErrUnresolvedReference is returned by Load when an item refers to an ID
	// that is not part of the loaded items.
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrDuplicate is returned when adding a record whose key is already used
	// in its collection.
	ErrDuplicate = errors.New("duplicate record")

	// ErrNotFound is returned when an ID, a name or a key matches no record.
	ErrNotFound = errors.New("record not found")

	// ErrWrongKind is returned when a record exists but is not of the expected kind.
	ErrWrongKind = errors.New("wrong record kind")

	// ErrAccountMismatch is returned when a bank transaction does not belong
	// to the account it is imported into.
	ErrAccountMismatch = errors.New("account mismatch")

	// ErrCurrencyMismatch is returned when amounts in different currencies
	// would be added together.
	ErrCurrencyMismatch = errors.New("currency mismatch")
)

// DuplicateSourceKeyError reports an ID found twice in the loaded items.
type DuplicateSourceKeyError struct {
	ID ID
}

func (e *DuplicateSourceKeyError) Error() string {
	return fmt.Sprintf("duplicate item id %v in source", e.ID)
}

func (e *DuplicateSourceKeyError) Unwrap() error { return ErrDuplicateSourceKey }

// UnresolvedReferenceError reports a reference to an ID missing from the
// loaded items. Reason names the field holding the reference.
type UnresolvedReferenceError struct {
	Reason string
	ID     ID
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("no item with id %v for %s", e.ID, e.Reason)
}

func (e *UnresolvedReferenceError) Unwrap() error { return ErrUnresolvedReference }

// DuplicateError reports a record rejected by its collection's uniqueness check.
type DuplicateError struct {
	Kind     Kind
	Key      string
	Existing ID
}

func (e *DuplicateError) Error() string {
	if e.Existing.IsNone() {
		return fmt.Sprintf("%s %q is repeated", e.Kind, e.Key)
	}
	return fmt.Sprintf("%s %q already exists as %v", e.Kind, e.Key, e.Existing)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// notFound returns an ErrNotFound for a kind and a key.
func notFound(kind Kind, key any) error {
	return fmt.Errorf("%s %v: %w", kind, key, ErrNotFound)
}

// wrongKind returns an ErrWrongKind for a record that should be of kind want.
func wrongKind(id ID, want Kind, got Record) error {
	return fmt.Errorf("%v is a %s not a %s: %w", id, got.Kind(), want, ErrWrongKind)
}

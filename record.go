package accounts

import "fmt"

// Kind is the type tag of a record.
type Kind string

const (
	KindAccount         Kind = "account"
	KindFund            Kind = "fund"
	KindRelatedParty    Kind = "party"
	KindBankTransaction Kind = "bank-transaction"
	KindTransaction     Kind = "transaction"
	KindInvoice         Kind = "invoice"
)

// Kinds lists every record kind.
var Kinds = []Kind{KindAccount, KindFund, KindRelatedParty, KindBankTransaction, KindTransaction, KindInvoice}

// ParseKind parses a kind name, singular or plural.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if s == string(k) || s == string(k)+"s" {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown record kind %q, want one of %v", s, Kinds)
}

// Record is one of *Account, *Fund, *RelatedParty, *BankTransaction,
// *Transaction or *Invoice.
type Record interface {
	// Kind returns the record's type tag, it never changes.
	Kind() Kind

	// rebuild rewrites every ID held by the record through remap.
	rebuild(remap remapFunc) error
	// clone returns a deep copy.
	clone() Record
}

// remapFunc maps an ID read from a source to its ID in the store. reason
// names the field being remapped.
type remapFunc func(reason string, old ID) (ID, error)

// index adapts a remapFunc to the ordered index.
func (f remapFunc) index(reason string) func(ID) (ID, error) {
	return func(old ID) (ID, error) { return f(reason, old) }
}

// Item is a record with its ID: the unit of persistence.
type Item struct {
	ID     ID
	Record Record
}

// Narrow returns rec as a T if it is one.
func Narrow[T Record](rec Record) (T, bool) {
	t, ok := rec.(T)
	return t, ok
}

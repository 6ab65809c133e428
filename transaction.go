package accounts

import (
	"fmt"
	"slices"

	"github.com/etnz/accounts/date"
)

// TransactionType says what a ledger transaction does.
type TransactionType string

const (
	TxUnknown  TransactionType = ""
	TxTransfer TransactionType = "transfer" // between funds
	TxPayment  TransactionType = "payment"  // to a related party
	TxReceipt  TransactionType = "receipt"  // from a related party
)

// ParseTransactionType parses a transaction type name.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if slices.Contains([]TransactionType{TxUnknown, TxTransfer, TxPayment, TxReceipt}, t) {
		return t, nil
	}
	return TxUnknown, fmt.Errorf("unknown transaction type %q", s)
}

// IsToRelatedParty reports whether the transaction pays a related party.
func (t TransactionType) IsToRelatedParty() bool { return t == TxPayment }

// Transaction is a ledger entry moving Amount from Debit to Credit, each a
// fund or a related party.
type Transaction struct {
	Date        date.Date       `json:"date" yaml:"date"`
	Type        TransactionType `json:"type,omitempty" yaml:"type,omitempty"`
	Amount      Amount          `json:"amount" yaml:"amount"`
	Debit       ID              `json:"debit,omitempty" yaml:"debit,omitempty"`
	Credit      ID              `json:"credit,omitempty" yaml:"credit,omitempty"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`

	// BankTransaction is the statement line this entry accounts for, if any.
	BankTransaction ID `json:"bankTransaction,omitempty" yaml:"bankTransaction,omitempty"`
}

func (t *Transaction) Kind() Kind { return KindTransaction }

func (t *Transaction) rebuild(remap remapFunc) (err error) {
	if t.Debit, err = remap("transaction debit", t.Debit); err != nil {
		return err
	}
	if t.Credit, err = remap("transaction credit", t.Credit); err != nil {
		return err
	}
	t.BankTransaction, err = remap("transaction bank transaction", t.BankTransaction)
	return err
}

func (t *Transaction) clone() Record {
	c := *t
	return &c
}

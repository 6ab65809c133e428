package accounts

import (
	"iter"

	"github.com/etnz/accounts/date"
	"github.com/etnz/accounts/ordered"
)

// Account is a bank account and the statement of its bank transactions.
type Account struct {
	Org  string      `json:"org,omitempty" yaml:"org,omitempty"`
	Name string      `json:"name" yaml:"name"`
	Desc AccountDesc `json:"desc" yaml:"desc"`

	// Transactions are the IDs of the account's bank transactions, in
	// statement order.
	Transactions ordered.Index[ID] `json:"transactions" yaml:"transactions"`
}

// NewAccount returns an account without transactions.
func NewAccount(org, name string, desc AccountDesc) *Account {
	return &Account{Org: org, Name: name, Desc: desc}
}

func (a *Account) Kind() Kind { return KindAccount }

func (a *Account) rebuild(remap remapFunc) error {
	return a.Transactions.Rebuild(remap.index("account transaction"))
}

func (a *Account) clone() Record {
	c := *a
	c.Transactions = a.Transactions.Clone()
	return &c
}

// TransactionsInRange returns the IDs of the bank transactions within r.
func (a *Account) TransactionsInRange(r date.Range) iter.Seq[ID] {
	return a.Transactions.InRange(r)
}

// currency returns the balance of the first transaction of the statement, a
// neutral zero if there is none. a may be nil.
func (a *Account) currency(s *Store) Amount {
	if a == nil {
		return Amount{}
	}
	c := a.Transactions.First()
	if !c.IsValid() {
		return Amount{}
	}
	id, _ := a.Transactions.Ref(c)
	if tx, ok := Lookup[*BankTransaction](s.arena, id); ok {
		return tx.Balance
	}
	return Amount{}
}

// BalanceMismatch is a bank transaction whose balance does not follow from
// the previous one.
type BalanceMismatch struct {
	Transaction ID
	Date        date.Date
	Expected    Amount // previous balance plus credit minus debit
	Balance     Amount // as recorded
}

// Validate walks the statement and reports every transaction whose balance
// is not the previous balance plus its credit minus its debit.
//
// The first transaction sets the opening balance. A transaction in another
// currency is a mismatch, expecting the previous balance.
func (a *Account) Validate(s *Store) []BalanceMismatch {
	var mismatches []BalanceMismatch
	var prev *BankTransaction
	c := a.Transactions.First()
	for ok := c.IsValid(); ok; ok = a.Transactions.Next(&c) {
		id, _ := a.Transactions.Ref(c)
		tx, found := Lookup[*BankTransaction](s.arena, id)
		if !found {
			continue
		}
		if prev != nil && !SameCurrency(prev.Balance, tx.Debit, tx.Credit, tx.Balance) {
			mismatches = append(mismatches, BalanceMismatch{Transaction: id, Date: tx.Date, Expected: prev.Balance, Balance: tx.Balance})
		} else if prev != nil {
			expected := prev.Balance.Add(tx.Delta())
			if !expected.Equal(tx.Balance) {
				mismatches = append(mismatches, BalanceMismatch{
					Transaction: id,
					Date:        tx.Date,
					Expected:    expected,
					Balance:     tx.Balance,
				})
			}
		}
		prev = tx
	}
	return mismatches
}

// Balance returns the balance after the last transaction on or before 'on',
// and false if there is none.
func (a *Account) Balance(s *Store, on date.Date) (Amount, bool) {
	c, exact := a.Transactions.At(on, false)
	if !c.IsValid() {
		return Amount{}, false
	}
	if d, _ := a.Transactions.Date(c); !exact && d.After(on) {
		return Amount{}, false // every transaction is after 'on'
	}
	id, _ := a.Transactions.Ref(c)
	tx, found := Lookup[*BankTransaction](s.arena, id)
	if !found {
		return Amount{}, false
	}
	return tx.Balance, true
}

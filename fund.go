package accounts

import (
	"iter"
	"slices"

	"github.com/etnz/accounts/date"
	"github.com/etnz/accounts/ordered"
)

// Fund is an earmarked pot of money, like a building fund or the general
// fund, followed through ledger transactions.
type Fund struct {
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description,omitempty" yaml:"description,omitempty"`
	Aliases      []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	StartBalance Amount   `json:"startBalance" yaml:"startBalance"`

	// Transactions are the IDs of the ledger transactions of the fund.
	Transactions ordered.Index[ID] `json:"transactions" yaml:"transactions"`
}

func NewFund(name, description string) *Fund {
	return &Fund{Name: name, Description: description}
}

func (f *Fund) Kind() Kind { return KindFund }

func (f *Fund) rebuild(remap remapFunc) error {
	return f.Transactions.Rebuild(remap.index("fund transaction"))
}

func (f *Fund) clone() Record {
	c := *f
	c.Aliases = slices.Clone(f.Aliases)
	c.Transactions = f.Transactions.Clone()
	return &c
}

// names returns the name followed by the aliases.
func (f *Fund) names() []string { return append([]string{f.Name}, f.Aliases...) }

// TransactionsInRange returns the IDs of the ledger transactions within r.
func (f *Fund) TransactionsInRange(r date.Range) iter.Seq[ID] {
	return f.Transactions.InRange(r)
}

// Currency returns the ISO code of the fund's currency, the one of its start
// balance.
func (f *Fund) Currency() string { return f.StartBalance.Currency() }

func (f *Fund) accepts(a Amount) bool { return a.neutral() || a.Currency() == f.Currency() }

// Balance returns the fund's balance at the end of the day 'on': its start
// balance, plus what it was credited, minus what it was debited.
//
// Transactions in another currency than the fund's are ignored.
func (f *Fund) Balance(s *Store, id ID, on date.Date) Amount {
	balance := f.StartBalance
	for d, tid := range f.Transactions.All() {
		if d.After(on) {
			break
		}
		tx, ok := Lookup[*Transaction](s.arena, tid)
		if !ok || !f.accepts(tx.Amount) {
			continue
		}
		if tx.Credit == id {
			balance = balance.Add(tx.Amount)
		}
		if tx.Debit == id {
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance
}

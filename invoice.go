package accounts

import (
	"fmt"

	"github.com/etnz/accounts/date"
	"github.com/etnz/accounts/ordered"
)

// Invoice is a bill from a supplier, settled by payment transactions.
type Invoice struct {
	Reason     string `json:"reason" yaml:"reason"`
	Filename   string `json:"filename,omitempty" yaml:"filename,omitempty"`
	SupplierID ID     `json:"supplier" yaml:"supplier"`
	Amount     Amount `json:"amount" yaml:"amount"`

	// Transactions are the IDs of the payments of the invoice.
	Transactions ordered.Index[ID] `json:"transactions" yaml:"transactions"`
}

func NewInvoice(supplier ID, reason, filename string, amount Amount) *Invoice {
	return &Invoice{SupplierID: supplier, Reason: reason, Filename: filename, Amount: amount}
}

func (inv *Invoice) Kind() Kind { return KindInvoice }

func (inv *Invoice) rebuild(remap remapFunc) (err error) {
	if inv.SupplierID, err = remap("invoice supplier", inv.SupplierID); err != nil {
		return err
	}
	return inv.Transactions.Rebuild(remap.index("invoice transaction"))
}

func (inv *Invoice) clone() Record {
	c := *inv
	c.Transactions = inv.Transactions.Clone()
	return &c
}

// checkPayment returns the problems of using ledger transaction id as a
// payment of the invoice.
func (inv *Invoice) checkPayment(s *Store, id ID) (*Transaction, []string) {
	tx, ok := Lookup[*Transaction](s.arena, id)
	if !ok {
		return nil, []string{fmt.Sprintf("item %v is not a transaction", id)}
	}
	var problems []string
	if !tx.Type.IsToRelatedParty() {
		problems = append(problems, fmt.Sprintf("transaction %v has type %q, not a payment", id, tx.Type))
	}
	if tx.Credit != inv.SupplierID {
		problems = append(problems, fmt.Sprintf("transaction %v credits %v, not the supplier %v", id, tx.Credit, inv.SupplierID))
	}
	if !SameCurrency(inv.Amount, tx.Amount) {
		problems = append(problems, fmt.Sprintf("transaction %v is in %s, the invoice in %s", id, tx.Amount.Currency(), inv.Amount.Currency()))
	}
	return tx, problems
}

// Validate returns the problems of the invoice: payments that are not
// payments to the supplier, and an outstanding balance.
func (inv *Invoice) Validate(s *Store) []string {
	var problems []string
	outstanding := inv.Amount
	for _, id := range inv.Transactions.All() {
		tx, p := inv.checkPayment(s, id)
		if len(p) > 0 {
			problems = append(problems, p...)
			continue
		}
		outstanding = outstanding.Sub(tx.Amount)
	}
	if !outstanding.IsZero() {
		problems = append(problems, fmt.Sprintf("invoice %q ends with outstanding balance %v", inv.Reason, outstanding))
	}
	return problems
}

// Outstanding returns the amount still due on date 'on'.
func (inv *Invoice) Outstanding(s *Store, on date.Date) Amount {
	outstanding := inv.Amount
	for d, id := range inv.Transactions.All() {
		if d.After(on) {
			break
		}
		if tx, p := inv.checkPayment(s, id); len(p) == 0 {
			outstanding = outstanding.Sub(tx.Amount)
		}
	}
	return outstanding
}

package accounts

import (
	"errors"
	"fmt"

	"github.com/etnz/accounts/link"
)

// ImportReport summarizes an import of bank transactions.
type ImportReport struct {
	Added      []ID // new bank transactions, in statement order
	Duplicates int  // transactions already in the store
	Linked     int  // new transactions linked to a related party
	Unlinked   int  // new transactions left without a related party
}

// ImportBankTransactions adds a statement to an account.
//
// Every transaction must belong to the account and be in its currency,
// otherwise nothing is imported. Transactions already in the store are
// skipped. New transactions without a related party are linked through their
// description when possible.
//
// The statement is checked and linked before any transaction is added: on
// error the store is unchanged.
func (s *Store) ImportBankTransactions(accountID ID, txs []*BankTransaction) (ImportReport, error) {
	var report ImportReport
	account, err := s.Account(accountID)
	if err != nil {
		return report, err
	}
	var fresh []*BankTransaction
	parties := make(map[*BankTransaction]ID)
	seen := make(map[string]bool)
	for i, tx := range txs {
		if !tx.AccountDesc.IsZero() && tx.AccountDesc != account.Desc {
			return report, fmt.Errorf("transaction %d is for %v, not %v: %w", i+1, tx.AccountDesc, account.Desc, ErrAccountMismatch)
		}
		c := *tx
		c.AccountDesc = account.Desc
		fp := c.fingerprint()
		if seen[fp] || s.bankTxs.has(fp) {
			report.Duplicates++
			continue
		}
		seen[fp] = true
		if err := s.checkRef(tx.RelatedParty, KindRelatedParty); err != nil {
			return report, err
		}
		party := tx.RelatedParty
		if party.IsNone() {
			party, err = s.LinkDescription(tx.Description)
			switch {
			case err == nil:
			case errors.Is(err, link.ErrNoMatch), errors.Is(err, link.ErrExhausted):
				party = None
			default:
				return report, err
			}
		}
		parties[tx] = party
		fresh = append(fresh, tx)
	}
	if err := checkStatementCurrency(account.currency(s), fresh...); err != nil {
		return report, err
	}

	for _, tx := range fresh {
		tx.AccountID, tx.AccountDesc, tx.RelatedParty = accountID, account.Desc, parties[tx]
		id, err := s.AddBankTransaction(tx)
		if err != nil {
			return report, err
		}
		report.Added = append(report.Added, id)
		if tx.RelatedParty.IsNone() {
			report.Unlinked++
		} else {
			report.Linked++
		}
	}
	return report, nil
}

// LinkBankTransactions links every bank transaction without a related party,
// and returns how many were linked and how many are left unlinked.
func (s *Store) LinkBankTransactions() (linked, unlinked int, err error) {
	for _, id := range s.bankTxs.ids {
		tx, _ := Lookup[*BankTransaction](s.arena, id)
		if !tx.RelatedParty.IsNone() {
			continue
		}
		party, err := s.LinkDescription(tx.Description)
		switch {
		case err == nil:
			tx.RelatedParty = party
			linked++
		case errors.Is(err, link.ErrNoMatch), errors.Is(err, link.ErrExhausted):
			unlinked++
		default:
			return linked, unlinked, err
		}
	}
	return linked, unlinked, nil
}

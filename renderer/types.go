package renderer

import (
	"fmt"
	"slices"
	"strings"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/date"
)

// cell makes free text safe in a table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

// amount renders a non zero amount, and nothing for zero.
func amount(a accounts.Amount) string {
	if a.IsZero() {
		return ""
	}
	return a.String()
}

// desc renders an account description, and nothing for the absent one.
func desc(d accounts.AccountDesc) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// name returns the name of a fund, a related party or an account.
func name(s *accounts.Store, id accounts.ID) string {
	rec, ok := s.Get(id)
	if !ok {
		return ""
	}
	switch r := rec.(type) {
	case *accounts.Fund:
		return cell(r.Name)
	case *accounts.RelatedParty:
		return cell(r.Name)
	case *accounts.Account:
		return cell(r.Name)
	}
	return id.String()
}

// AccountList is the list of accounts with their balance on a date.
type AccountList struct {
	Date     date.Date    `json:"date"`
	Accounts []AccountRow `json:"accounts"`
}

// AccountRow is a single account.
type AccountRow struct {
	ID           accounts.ID `json:"id"`
	Org          string      `json:"org,omitempty"`
	Name         string      `json:"name"`
	Desc         string      `json:"desc,omitempty"`
	Transactions int         `json:"transactions"`
	// Balance is empty when the account has no transaction yet.
	Balance string `json:"balance,omitempty"`
}

func newAccountRow(s *accounts.Store, id accounts.ID, a *accounts.Account, on date.Date) AccountRow {
	row := AccountRow{
		ID:           id,
		Org:          cell(a.Org),
		Name:         cell(a.Name),
		Desc:         desc(a.Desc),
		Transactions: a.Transactions.Len(),
	}
	if b, ok := a.Balance(s, on); ok {
		row.Balance = b.String()
	}
	return row
}

// NewAccountList lists every account of the store.
func NewAccountList(s *accounts.Store, on date.Date) *AccountList {
	l := &AccountList{Date: on, Accounts: make([]AccountRow, 0)}
	for _, id := range s.AccountIDs() {
		a, err := s.Account(id)
		if err != nil {
			continue
		}
		l.Accounts = append(l.Accounts, newAccountRow(s, id, a, on))
	}
	return l
}

// Statement is the list of bank transactions of an account over a range.
type Statement struct {
	Account AccountRow      `json:"account"`
	Range   date.Range      `json:"range"`
	Opening string          `json:"opening,omitempty"`
	Credits string          `json:"credits,omitempty"`
	Debits  string          `json:"debits,omitempty"`
	Closing string          `json:"closing,omitempty"`
	Lines   []StatementLine `json:"lines"`
}

// StatementLine is a single bank transaction.
type StatementLine struct {
	ID          accounts.ID `json:"id"`
	Date        date.Date   `json:"date"`
	Type        string      `json:"type,omitempty"`
	Description string      `json:"description"`
	Debit       string      `json:"debit,omitempty"`
	Credit      string      `json:"credit,omitempty"`
	Balance     string      `json:"balance"`
	Party       string      `json:"party,omitempty"`
}

// NewStatement builds the statement of an account. An empty range means
// every transaction.
func NewStatement(s *accounts.Store, accountID accounts.ID, r date.Range) (*Statement, error) {
	a, err := s.Account(accountID)
	if err != nil {
		return nil, err
	}
	on := date.Today()
	if !r.IsEmpty() {
		on = r.Last()
	}
	st := &Statement{
		Account: newAccountRow(s, accountID, a, on),
		Range:   r,
		Lines:   make([]StatementLine, 0),
	}
	ids := a.Transactions.InRange(r)
	if r.IsEmpty() {
		ids = func(yield func(accounts.ID) bool) {
			for _, id := range a.Transactions.All() {
				if !yield(id) {
					return
				}
			}
		}
	}
	var credits, debits accounts.Amount
	var first, last *accounts.BankTransaction
	for id := range ids {
		tx, err := s.BankTransaction(id)
		if err != nil {
			return nil, err
		}
		if first == nil {
			first = tx
		}
		last = tx
		if !accounts.SameCurrency(credits, debits, tx.Credit, tx.Debit, tx.Balance) {
			return nil, fmt.Errorf("bank transaction %v: %w", id, accounts.ErrCurrencyMismatch)
		}
		credits, debits = credits.Add(tx.Credit), debits.Add(tx.Debit)
		st.Lines = append(st.Lines, StatementLine{
			ID:          id,
			Date:        tx.Date,
			Type:        string(tx.Type),
			Description: cell(tx.Description),
			Debit:       amount(tx.Debit),
			Credit:      amount(tx.Credit),
			Balance:     tx.Balance.String(),
			Party:       name(s, tx.RelatedParty),
		})
	}
	if first != nil {
		st.Opening = first.Balance.Sub(first.Delta()).String()
		st.Closing = last.Balance.String()
		st.Credits, st.Debits = credits.String(), debits.String()
	}
	return st, nil
}

// FundList is the list of funds with their balance on a date.
type FundList struct {
	Date  date.Date `json:"date"`
	Funds []FundRow `json:"funds"`
	Total string    `json:"total"`
}

// FundRow is a single fund.
type FundRow struct {
	ID          accounts.ID `json:"id"`
	Name        string      `json:"name"`
	Aliases     string      `json:"aliases,omitempty"`
	Description string      `json:"description,omitempty"`
	Balance     string      `json:"balance"`

	balance accounts.Amount
}

func newFundRow(s *accounts.Store, id accounts.ID, f *accounts.Fund, on date.Date) FundRow {
	b := f.Balance(s, id, on)
	return FundRow{
		ID:          id,
		Name:        cell(f.Name),
		Aliases:     cell(strings.Join(f.Aliases, ", ")),
		Description: cell(f.Description),
		Balance:     b.String(),
		balance:     b,
	}
}

// NewFundList lists every fund of the store.
func NewFundList(s *accounts.Store, on date.Date) *FundList {
	l := &FundList{Date: on, Funds: make([]FundRow, 0)}
	var total accounts.Amount
	mixed := false
	for _, id := range s.FundIDs() {
		f, err := s.Fund(id)
		if err != nil {
			continue
		}
		row := newFundRow(s, id, f, on)
		if accounts.SameCurrency(total, row.balance) {
			total = total.Add(row.balance)
		} else {
			mixed = true
		}
		l.Funds = append(l.Funds, row)
	}
	l.Total = total.String()
	if mixed {
		l.Total = "mixed currencies"
	}
	return l
}

// FundStatement is the list of ledger transactions of a fund over a range.
type FundStatement struct {
	Fund  FundRow    `json:"fund"`
	Range date.Range `json:"range"`
	Lines []FundLine `json:"lines"`
}

// FundLine is a single ledger transaction seen from the fund.
type FundLine struct {
	ID           accounts.ID `json:"id"`
	Date         date.Date   `json:"date"`
	Type         string      `json:"type,omitempty"`
	Description  string      `json:"description,omitempty"`
	Counterparty string      `json:"counterparty,omitempty"`
	In           string      `json:"in,omitempty"`
	Out          string      `json:"out,omitempty"`
}

// NewFundStatement builds the statement of a fund. An empty range means
// every transaction.
func NewFundStatement(s *accounts.Store, fundID accounts.ID, r date.Range) (*FundStatement, error) {
	f, err := s.Fund(fundID)
	if err != nil {
		return nil, err
	}
	on := date.Today()
	if !r.IsEmpty() {
		on = r.Last()
	}
	st := &FundStatement{Fund: newFundRow(s, fundID, f, on), Range: r, Lines: make([]FundLine, 0)}
	for d, id := range f.Transactions.All() {
		if !r.IsEmpty() && !r.Contains(d) {
			continue
		}
		tx, err := s.Transaction(id)
		if err != nil {
			return nil, err
		}
		line := FundLine{ID: id, Date: tx.Date, Type: string(tx.Type), Description: cell(tx.Description)}
		switch fundID {
		case tx.Credit:
			line.In, line.Counterparty = tx.Amount.String(), name(s, tx.Debit)
		case tx.Debit:
			line.Out, line.Counterparty = tx.Amount.String(), name(s, tx.Credit)
		}
		st.Lines = append(st.Lines, line)
	}
	return st, nil
}

// PartyList is the list of related parties.
type PartyList struct {
	Parties []PartyRow `json:"parties"`
}

// PartyRow is a single related party.
type PartyRow struct {
	ID          accounts.ID `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type,omitempty"`
	Aliases     string      `json:"aliases,omitempty"`
	Descriptors string      `json:"descriptors,omitempty"`
}

// NewPartyList lists the related parties of the store, all of them if typ
// is accounts.PartyUnknown.
func NewPartyList(s *accounts.Store, typ accounts.PartyType) *PartyList {
	l := &PartyList{Parties: make([]PartyRow, 0)}
	for _, id := range s.RelatedPartyIDs() {
		p, err := s.RelatedParty(id)
		if err != nil || (typ != accounts.PartyUnknown && p.Type != typ) {
			continue
		}
		l.Parties = append(l.Parties, PartyRow{
			ID:          id,
			Name:        cell(p.Name),
			Type:        string(p.Type),
			Aliases:     cell(strings.Join(p.Aliases, ", ")),
			Descriptors: cell(strings.Join(p.Descriptors, ", ")),
		})
	}
	return l
}

// InvoiceList is the list of invoices and what is still due on a date.
type InvoiceList struct {
	Date     date.Date    `json:"date"`
	Invoices []InvoiceRow `json:"invoices"`
}

// InvoiceRow is a single invoice.
type InvoiceRow struct {
	ID          accounts.ID `json:"id"`
	Reason      string      `json:"reason"`
	Supplier    string      `json:"supplier"`
	Amount      string      `json:"amount"`
	Paid        string      `json:"paid,omitempty"`
	Outstanding string      `json:"outstanding,omitempty"`
	Filename    string      `json:"filename,omitempty"`
}

// NewInvoiceList lists the invoices of the store. When outstanding is true,
// only invoices with an amount still due are listed.
func NewInvoiceList(s *accounts.Store, on date.Date, outstanding bool) *InvoiceList {
	l := &InvoiceList{Date: on, Invoices: make([]InvoiceRow, 0)}
	for _, id := range s.InvoiceIDs() {
		inv, err := s.Invoice(id)
		if err != nil {
			continue
		}
		due := inv.Outstanding(s, on)
		if outstanding && due.IsZero() {
			continue
		}
		l.Invoices = append(l.Invoices, InvoiceRow{
			ID:          id,
			Reason:      cell(inv.Reason),
			Supplier:    name(s, inv.SupplierID),
			Amount:      inv.Amount.String(),
			Paid:        amount(inv.Amount.Sub(due)),
			Outstanding: amount(due),
			Filename:    cell(inv.Filename),
		})
	}
	return l
}

// RecordList is the result of a query.
type RecordList struct {
	Query   string      `json:"query"`
	Records []RecordRow `json:"records"`
}

// RecordRow is a single record, summarized.
type RecordRow struct {
	ID      accounts.ID   `json:"id"`
	Kind    accounts.Kind `json:"kind"`
	Date    date.Date     `json:"date,omitempty"`
	Summary string        `json:"summary"`
}

// NewRecordList summarizes the records selected by q.
func NewRecordList(s *accounts.Store, q accounts.Query) *RecordList {
	l := &RecordList{Query: cell(q.String()), Records: make([]RecordRow, 0)}
	for id := range s.Query(q) {
		rec, _ := s.Get(id)
		row := RecordRow{ID: id, Kind: rec.Kind(), Summary: cell(Summary(s, rec))}
		switch r := rec.(type) {
		case *accounts.BankTransaction:
			row.Date = r.Date
		case *accounts.Transaction:
			row.Date = r.Date
		}
		l.Records = append(l.Records, row)
	}
	slices.SortStableFunc(l.Records, func(a, b RecordRow) int { return a.Date.Compare(b.Date) })
	return l
}

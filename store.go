package accounts

import (
	"fmt"
	"iter"
	"log"
	"slices"

	"github.com/etnz/accounts/link"
)

// Store is the in-memory accounts database.
//
// It owns every record in its Arena, and indexes them in one collection per
// kind. Records refer to each other by ID only.
//
// A Store is not safe for concurrent use.
type Store struct {
	arena        *Arena
	accounts     *collection[AccountDesc]
	funds        *collection[string] // name and aliases
	parties      *collection[string] // name and aliases
	bankTxs      *collection[string] // fingerprint
	transactions *collection[string] // no key
	invoices     *collection[string] // reason

	links *link.Cache[ID]
}

// New returns an empty store with the default link configuration.
func New() *Store { return NewWithConfig(link.DefaultConfig) }

// NewWithConfig returns an empty store.
func NewWithConfig(config link.Config) *Store {
	return &Store{
		arena:        newArena(),
		accounts:     newCollection[AccountDesc](KindAccount),
		funds:        newCollection[string](KindFund),
		parties:      newCollection[string](KindRelatedParty),
		bankTxs:      newCollection[string](KindBankTransaction),
		transactions: newCollection[string](KindTransaction),
		invoices:     newCollection[string](KindInvoice),
		links:        link.New[ID](config),
	}
}

// Arena returns the store's arena, for ad hoc queries.
func (s *Store) Arena() *Arena { return s.arena }

// Get returns the record of ID id.
func (s *Store) Get(id ID) (Record, bool) { return s.arena.Get(id) }

// Len returns the number of records.
func (s *Store) Len() int { return s.arena.Len() }

func accountKeys(a *Account) []AccountDesc {
	if a.Desc.IsZero() {
		return nil
	}
	return []AccountDesc{a.Desc}
}

// checkNew validates rec against the uniqueness rule of its collection.
func (s *Store) checkNew(rec Record) error {
	switch r := rec.(type) {
	case *Account:
		return s.accounts.checkNew(accountKeys(r)...)
	case *Fund:
		return s.funds.checkNew(r.names()...)
	case *RelatedParty:
		return s.parties.checkNew(r.names()...)
	case *BankTransaction:
		return s.bankTxs.checkNew(r.fingerprint())
	case *Transaction:
		return nil
	case *Invoice:
		return s.invoices.checkNew(r.Reason)
	}
	return fmt.Errorf("unsupported record %T", rec)
}

// collect adds the record id to its collection.
func (s *Store) collect(id ID, rec Record) error {
	switch r := rec.(type) {
	case *Account:
		return s.accounts.add(id, accountKeys(r)...)
	case *Fund:
		return s.funds.add(id, r.names()...)
	case *RelatedParty:
		return s.parties.add(id, r.names()...)
	case *BankTransaction:
		return s.bankTxs.add(id, r.fingerprint())
	case *Transaction:
		return s.transactions.add(id)
	case *Invoice:
		return s.invoices.add(id, r.Reason)
	}
	return fmt.Errorf("unsupported record %T", rec)
}

// insert checks rec's uniqueness, then allocates its ID and indexes it.
func (s *Store) insert(rec Record) (ID, error) {
	if err := s.checkNew(rec); err != nil {
		return None, err
	}
	id := s.arena.Insert(rec)
	return id, s.collect(id, rec)
}

// lookup returns the record id as a T.
func lookup[T Record](s *Store, kind Kind, id ID) (T, error) {
	var zero T
	rec, ok := s.arena.Get(id)
	if !ok {
		return zero, notFound(kind, id)
	}
	t, ok := Narrow[T](rec)
	if !ok {
		return zero, wrongKind(id, kind, rec)
	}
	return t, nil
}

// checkRef returns an error if id is set but not one of the kinds.
func (s *Store) checkRef(id ID, kinds ...Kind) error {
	if id.IsNone() {
		return nil
	}
	rec, ok := s.arena.Get(id)
	if !ok {
		return notFound(kinds[0], id)
	}
	if !slices.Contains(kinds, rec.Kind()) {
		return wrongKind(id, kinds[0], rec)
	}
	return nil
}

// AddAccount adds an account. Accounts are unique by description.
func (s *Store) AddAccount(a *Account) (ID, error) { return s.insert(a) }

// AddFund adds a fund. Funds are unique by name and aliases.
func (s *Store) AddFund(f *Fund) (ID, error) { return s.insert(f) }

// AddRelatedParty adds a related party. Parties are unique by name and aliases.
//
// A party with descriptors needs one of at least the link minimum length,
// otherwise a *link.ShortDescriptorError is returned.
func (s *Store) AddRelatedParty(p *RelatedParty) (ID, error) {
	if err := s.checkDescriptors(p.Name, p.Descriptors); err != nil {
		return None, err
	}
	id, err := s.insert(p)
	if err == nil && len(p.Descriptors) > 0 {
		s.ResetLinks()
	}
	return id, err
}

// AddInvoice adds an invoice from a known supplier. Invoices are unique by reason.
func (s *Store) AddInvoice(inv *Invoice) (ID, error) {
	if inv.SupplierID.IsNone() {
		return None, fmt.Errorf("invoice %q has no supplier", inv.Reason)
	}
	if err := s.checkRef(inv.SupplierID, KindRelatedParty); err != nil {
		return None, err
	}
	return s.insert(inv)
}

// AddBankTransaction adds a bank transaction to its account's statement.
//
// The account is found by ID, or by description if the ID is not set. Bank
// transactions are unique by account, date, description and balance, and
// a statement has a single currency. On error tx is left unchanged.
func (s *Store) AddBankTransaction(tx *BankTransaction) (ID, error) {
	accountID, desc := tx.AccountID, tx.AccountDesc
	var account *Account
	switch {
	case !accountID.IsNone():
		a, err := lookup[*Account](s, KindAccount, accountID)
		if err != nil {
			return None, err
		}
		if !desc.IsZero() && desc != a.Desc {
			return None, fmt.Errorf("bank transaction for %v added to account %v (%v): %w", desc, accountID, a.Desc, ErrAccountMismatch)
		}
		desc, account = a.Desc, a
	case !desc.IsZero():
		if id, ok := s.accounts.get(desc); ok {
			accountID = id
			account, _ = Lookup[*Account](s.arena, id)
		}
	}
	if err := s.checkRef(tx.RelatedParty, KindRelatedParty); err != nil {
		return None, err
	}
	if err := checkStatementCurrency(account.currency(s), tx); err != nil {
		return None, err
	}
	c := *tx
	c.AccountID, c.AccountDesc = accountID, desc
	if err := s.checkNew(&c); err != nil {
		return None, err
	}
	tx.AccountID, tx.AccountDesc = accountID, desc
	id, err := s.insert(tx)
	if err != nil {
		return None, err
	}
	if account != nil {
		account.Transactions.Insert(tx.Date, id)
	}
	return id, nil
}

// checkStatementCurrency returns an error if the amounts of txs are not all
// in the currency of amount.
func checkStatementCurrency(amount Amount, txs ...*BankTransaction) error {
	amounts := []Amount{amount}
	for _, tx := range txs {
		amounts = append(amounts, tx.Debit, tx.Credit, tx.Balance)
		if !SameCurrency(amounts...) {
			return fmt.Errorf("bank transaction %q of %v: %w", tx.Description, tx.Date, ErrCurrencyMismatch)
		}
	}
	return nil
}

// AddTransaction adds a ledger transaction, and files it in the funds it
// debits or credits.
func (s *Store) AddTransaction(tx *Transaction) (ID, error) {
	for _, ref := range []ID{tx.Debit, tx.Credit} {
		if err := s.checkRef(ref, KindFund, KindRelatedParty); err != nil {
			return None, err
		}
	}
	if err := s.checkRef(tx.BankTransaction, KindBankTransaction); err != nil {
		return None, err
	}
	for _, ref := range []ID{tx.Debit, tx.Credit} {
		if f, ok := Lookup[*Fund](s.arena, ref); ok && !f.accepts(tx.Amount) {
			return None, fmt.Errorf("transaction of %v in fund %q of currency %s: %w", tx.Amount, f.Name, f.Currency(), ErrCurrencyMismatch)
		}
	}
	id, err := s.insert(tx)
	if err != nil {
		return None, err
	}
	for _, ref := range []ID{tx.Debit, tx.Credit} {
		if f, ok := Lookup[*Fund](s.arena, ref); ok && !f.Transactions.Contains(tx.Date, id) {
			f.Transactions.Insert(tx.Date, id)
		}
	}
	return id, nil
}

// AddFundTransaction files a ledger transaction in a fund. The same
// transaction cannot be filed twice.
func (s *Store) AddFundTransaction(fundID, txID ID) error {
	f, err := s.Fund(fundID)
	if err != nil {
		return err
	}
	tx, err := s.Transaction(txID)
	if err != nil {
		return err
	}
	if f.Transactions.Contains(tx.Date, txID) {
		return fmt.Errorf("transaction %v already in fund %q: %w", txID, f.Name, ErrDuplicate)
	}
	if !f.accepts(tx.Amount) {
		return fmt.Errorf("transaction %v of %v in fund %q of currency %s: %w", txID, tx.Amount, f.Name, f.Currency(), ErrCurrencyMismatch)
	}
	f.Transactions.Insert(tx.Date, txID)
	return nil
}

// AddFundAlias adds an alternative name to a fund.
func (s *Store) AddFundAlias(id ID, alias string) error {
	f, err := s.Fund(id)
	if err != nil {
		return err
	}
	if err := s.funds.alias(id, alias); err != nil {
		return err
	}
	if !slices.Contains(f.names(), alias) {
		f.Aliases = append(f.Aliases, alias)
	}
	return nil
}

// AddRelatedPartyAlias adds an alternative name to a related party.
func (s *Store) AddRelatedPartyAlias(id ID, alias string) error {
	p, err := s.RelatedParty(id)
	if err != nil {
		return err
	}
	if err := s.parties.alias(id, alias); err != nil {
		return err
	}
	if !slices.Contains(p.names(), alias) {
		p.Aliases = append(p.Aliases, alias)
	}
	return nil
}

// AddRelatedPartyDescriptor adds a bank description text to a related party.
// Like AddRelatedParty, it rejects a party left without a descriptor long
// enough to be linked.
func (s *Store) AddRelatedPartyDescriptor(id ID, descriptor string) error {
	p, err := s.RelatedParty(id)
	if err != nil {
		return err
	}
	if slices.Contains(p.Descriptors, descriptor) {
		return nil
	}
	descriptors := append(slices.Clone(p.Descriptors), descriptor)
	if err := s.checkDescriptors(id, descriptors); err != nil {
		return err
	}
	p.Descriptors = descriptors
	s.ResetLinks()
	return nil
}

// checkDescriptors returns a *link.ShortDescriptorError if none of the
// descriptors is long enough to be found by the link cache. A key can have no
// descriptors at all.
func (s *Store) checkDescriptors(key any, descriptors []string) error {
	n := s.links.Config().MinLen
	long := func(d string) bool { return len(d) >= n }
	if len(descriptors) == 0 || slices.ContainsFunc(descriptors, long) {
		return nil
	}
	return &link.ShortDescriptorError{Key: key, Descriptors: descriptors, Len: n}
}

// AddInvoiceTransactions records payments of an invoice.
//
// Transactions that are not payments to the supplier, or already recorded,
// are skipped and described in the returned problems.
func (s *Store) AddInvoiceTransactions(invoiceID ID, ids ...ID) ([]string, error) {
	inv, err := s.Invoice(invoiceID)
	if err != nil {
		return nil, err
	}
	var problems []string
	for _, id := range ids {
		tx, p := inv.checkPayment(s, id)
		switch {
		case len(p) > 0:
			problems = append(problems, p...)
		case inv.Transactions.Contains(tx.Date, id):
			problems = append(problems, fmt.Sprintf("transaction %v is already a payment of %q", id, inv.Reason))
		default:
			inv.Transactions.Insert(tx.Date, id)
		}
	}
	return problems, nil
}

func (s *Store) Account(id ID) (*Account, error) { return lookup[*Account](s, KindAccount, id) }
func (s *Store) Fund(id ID) (*Fund, error)       { return lookup[*Fund](s, KindFund, id) }
func (s *Store) RelatedParty(id ID) (*RelatedParty, error) {
	return lookup[*RelatedParty](s, KindRelatedParty, id)
}
func (s *Store) BankTransaction(id ID) (*BankTransaction, error) {
	return lookup[*BankTransaction](s, KindBankTransaction, id)
}
func (s *Store) Transaction(id ID) (*Transaction, error) {
	return lookup[*Transaction](s, KindTransaction, id)
}
func (s *Store) Invoice(id ID) (*Invoice, error) { return lookup[*Invoice](s, KindInvoice, id) }

// AccountByDesc returns the ID of the account with description d.
func (s *Store) AccountByDesc(d AccountDesc) (ID, error) {
	if id, ok := s.accounts.get(d); ok {
		return id, nil
	}
	return None, notFound(KindAccount, d)
}

// AccountByName returns the ID of the first account named name.
func (s *Store) AccountByName(name string) (ID, error) {
	for _, id := range s.accounts.ids {
		if a, _ := Lookup[*Account](s.arena, id); a.Name == name {
			return id, nil
		}
	}
	return None, notFound(KindAccount, name)
}

// FundByName returns the ID of the fund with name or alias name.
func (s *Store) FundByName(name string) (ID, error) {
	if id, ok := s.funds.get(name); ok {
		return id, nil
	}
	return None, notFound(KindFund, name)
}

// RelatedPartyByName returns the ID of the related party with name or alias name.
func (s *Store) RelatedPartyByName(name string) (ID, error) {
	if id, ok := s.parties.get(name); ok {
		return id, nil
	}
	return None, notFound(KindRelatedParty, name)
}

// InvoiceByReason returns the ID of the invoice with the given reason.
func (s *Store) InvoiceByReason(reason string) (ID, error) {
	if id, ok := s.invoices.get(reason); ok {
		return id, nil
	}
	return None, notFound(KindInvoice, reason)
}

// The IDs of each collection, in order of insertion.

func (s *Store) AccountIDs() []ID         { return s.accounts.IDs() }
func (s *Store) FundIDs() []ID            { return s.funds.IDs() }
func (s *Store) RelatedPartyIDs() []ID    { return s.parties.IDs() }
func (s *Store) BankTransactionIDs() []ID { return s.bankTxs.IDs() }
func (s *Store) TransactionIDs() []ID     { return s.transactions.IDs() }
func (s *Store) InvoiceIDs() []ID         { return s.invoices.IDs() }

// partyIDs returns a restartable sequence over the related parties.
func (s *Store) partyIDs() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for _, id := range s.parties.ids {
			if !yield(id) {
				return
			}
		}
	}
}

func (s *Store) partyDescriptors(id ID) []string {
	if p, ok := Lookup[*RelatedParty](s.arena, id); ok {
		return p.Descriptors
	}
	return nil
}

// LinkDescription returns the related party a bank description refers to.
//
// The link cache grows as needed. The errors link.ErrNoMatch and
// link.ErrExhausted mean the description cannot be linked automatically.
func (s *Store) LinkDescription(text string) (ID, error) {
	before := s.links.Len()
	id, err := s.links.Resolve(text, s.partyIDs(), s.partyDescriptors)
	if levels := s.links.Levels(); len(levels) > before {
		log.Printf("link cache grown to prefix length %d", levels[len(levels)-1])
	}
	return id, err
}

// ResetLinks drops the link cache. It is rebuilt on the next link.
func (s *Store) ResetLinks() { s.links.Reset() }

// LinkConfig returns the link cache configuration.
func (s *Store) LinkConfig() link.Config { return s.links.Config() }

// Serialize returns a copy of every record, by ascending ID.
func (s *Store) Serialize() []Item {
	items := make([]Item, 0, s.arena.Len())
	for _, id := range s.arena.ids {
		items = append(items, Item{ID: id, Record: s.arena.records[id].clone()})
	}
	return items
}

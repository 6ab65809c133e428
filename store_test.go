package accounts

import (
	"errors"
	"slices"
	"testing"

	"github.com/etnz/accounts/link"
)

func TestFixture(t *testing.T) {
	f := newFixture(t)
	want := []ID{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	if got := f.s.Arena().IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs() = %v want %v", got, want)
	}
	if got := f.s.RelatedPartyIDs(); !slices.Equal(got, []ID{f.john, f.kate, f.water}) {
		t.Errorf("RelatedPartyIDs() = %v", got)
	}
	a, err := f.s.Account(f.account)
	if err != nil {
		t.Fatalf("Account() error = %v", err)
	}
	if a.Transactions.Len() != 3 {
		t.Errorf("account has %d transactions want 3", a.Transactions.Len())
	}
	tx, _ := f.s.BankTransaction(f.bank1)
	if tx.AccountID != f.account {
		t.Errorf("bank transaction account = %v want %v", tx.AccountID, f.account)
	}
	g, _ := f.s.Fund(f.general)
	if got := g.Transactions.OfDate(aug(29)); !slices.Equal(got, []ID{f.payment}) {
		t.Errorf("general fund transactions = %v want [%v]", got, f.payment)
	}
}

func TestAdd_Duplicates(t *testing.T) {
	testCases := []struct {
		name string
		add  func(f fixture) error
	}{
		{"account description", func(f fixture) error {
			_, err := f.s.AddAccount(NewAccount("Other", "Copy", current))
			return err
		}},
		{"fund name", func(f fixture) error {
			_, err := f.s.AddFund(NewFund("General", ""))
			return err
		}},
		{"fund name is an alias", func(f fixture) error {
			_, err := f.s.AddFund(NewFund("Build", ""))
			return err
		}},
		{"fund repeats its alias", func(f fixture) error {
			_, err := f.s.AddFund(&Fund{Name: "Music", Aliases: []string{"Music"}})
			return err
		}},
		{"party alias", func(f fixture) error {
			_, err := f.s.AddRelatedParty(&RelatedParty{Name: "Someone", Aliases: []string{"Katie"}})
			return err
		}},
		{"bank transaction", func(f fixture) error {
			_, err := f.s.AddBankTransaction(&BankTransaction{
				Date:        aug(28),
				AccountDesc: current,
				Description: "NAME REASON",
				Credit:      gbp("20"),
				Balance:     gbp("12004.61"),
			})
			return err
		}},
		{"invoice reason", func(f fixture) error {
			_, err := f.s.AddInvoice(NewInvoice(f.water, "Water Q3", "", gbp("1")))
			return err
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			before := f.s.Len()
			err := tc.add(f)
			if !errors.Is(err, ErrDuplicate) {
				t.Errorf("add error = %v want %v", err, ErrDuplicate)
			}
			if f.s.Len() != before {
				t.Errorf("a rejected record was allocated: %d records want %d", f.s.Len(), before)
			}
		})
	}
}

// TestAdd_NextIDAfterRejection checks that a rejected record does not
// consume an ID.
func TestAdd_NextIDAfterRejection(t *testing.T) {
	f := newFixture(t)
	if _, err := f.s.AddFund(NewFund("General", "")); err == nil {
		t.Fatalf("AddFund() of a duplicate: want an error")
	}
	id, err := f.s.AddFund(NewFund("Music", ""))
	if err != nil {
		t.Fatalf("AddFund() error = %v", err)
	}
	if id != 12 {
		t.Errorf("AddFund() = %v want 12", id)
	}
}

func TestAdd_References(t *testing.T) {
	f := newFixture(t)
	if _, err := f.s.AddInvoice(NewInvoice(99, "Ghost", "", gbp("1"))); !errors.Is(err, ErrNotFound) {
		t.Errorf("AddInvoice() of an unknown supplier error = %v want %v", err, ErrNotFound)
	}
	if _, err := f.s.AddInvoice(NewInvoice(f.general, "Fund", "", gbp("1"))); !errors.Is(err, ErrWrongKind) {
		t.Errorf("AddInvoice() of a fund supplier error = %v want %v", err, ErrWrongKind)
	}
	if _, err := f.s.AddInvoice(NewInvoice(None, "Nobody", "", gbp("1"))); err == nil {
		t.Errorf("AddInvoice() without supplier: want an error")
	}
	if _, err := f.s.AddTransaction(&Transaction{Date: aug(1), Debit: f.account}); !errors.Is(err, ErrWrongKind) {
		t.Errorf("AddTransaction() debiting an account error = %v want %v", err, ErrWrongKind)
	}
	other, _ := ParseUK("11-22-33", 1)
	_, err := f.s.AddBankTransaction(&BankTransaction{AccountID: f.account, AccountDesc: other, Date: aug(1)})
	if !errors.Is(err, ErrAccountMismatch) {
		t.Errorf("AddBankTransaction() to the wrong account error = %v want %v", err, ErrAccountMismatch)
	}
}

func TestLookups(t *testing.T) {
	f := newFixture(t)
	testCases := []struct {
		name string
		get  func() (ID, error)
		want ID
	}{
		{"fund by name", func() (ID, error) { return f.s.FundByName("General") }, f.general},
		{"fund by alias", func() (ID, error) { return f.s.FundByName("Build") }, f.building},
		{"party by alias", func() (ID, error) { return f.s.RelatedPartyByName("Katie") }, f.kate},
		{"account by name", func() (ID, error) { return f.s.AccountByName("Current") }, f.account},
		{"account by desc", func() (ID, error) { return f.s.AccountByDesc(current) }, f.account},
		{"invoice by reason", func() (ID, error) { return f.s.InvoiceByReason("Water Q3") }, f.invoice},
	}
	for _, tc := range testCases {
		got, err := tc.get()
		if err != nil || got != tc.want {
			t.Errorf("%s = %v, %v want %v", tc.name, got, err, tc.want)
		}
	}
	if _, err := f.s.FundByName("Nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("FundByName(unknown) error = %v want %v", err, ErrNotFound)
	}
	if _, err := f.s.Fund(f.john); !errors.Is(err, ErrWrongKind) {
		t.Errorf("Fund(party) error = %v want %v", err, ErrWrongKind)
	}
}

func TestAliases(t *testing.T) {
	f := newFixture(t)
	if err := f.s.AddFundAlias(f.general, "Gen"); err != nil {
		t.Fatalf("AddFundAlias() error = %v", err)
	}
	if id, _ := f.s.FundByName("Gen"); id != f.general {
		t.Errorf("FundByName(Gen) = %v want %v", id, f.general)
	}
	if err := f.s.AddFundAlias(f.general, "Build"); !errors.Is(err, ErrDuplicate) {
		t.Errorf("AddFundAlias() of another fund's alias error = %v want %v", err, ErrDuplicate)
	}
	if err := f.s.AddFundAlias(f.general, "Gen"); err != nil {
		t.Errorf("AddFundAlias() repeated error = %v", err)
	}
	g, _ := f.s.Fund(f.general)
	if !slices.Equal(g.Aliases, []string{"Gen"}) {
		t.Errorf("Aliases = %v want [Gen]", g.Aliases)
	}
	if err := f.s.AddRelatedPartyAlias(f.john, "Johnny"); err != nil {
		t.Fatalf("AddRelatedPartyAlias() error = %v", err)
	}
	if id, _ := f.s.RelatedPartyByName("Johnny"); id != f.john {
		t.Errorf("RelatedPartyByName(Johnny) = %v want %v", id, f.john)
	}
}

func TestAddFundTransaction(t *testing.T) {
	f := newFixture(t)
	if err := f.s.AddFundTransaction(f.building, f.payment); err != nil {
		t.Fatalf("AddFundTransaction() error = %v", err)
	}
	if err := f.s.AddFundTransaction(f.building, f.payment); !errors.Is(err, ErrDuplicate) {
		t.Errorf("AddFundTransaction() twice error = %v want %v", err, ErrDuplicate)
	}
	if err := f.s.AddFundTransaction(f.building, f.bank1); !errors.Is(err, ErrWrongKind) {
		t.Errorf("AddFundTransaction() of a bank transaction error = %v want %v", err, ErrWrongKind)
	}
}

func TestFund_Balance(t *testing.T) {
	f := newFixture(t)
	g, _ := f.s.Fund(f.general)
	if got := g.Balance(f.s, f.general, aug(28)); !got.IsZero() {
		t.Errorf("Balance(28) = %v want 0", got)
	}
	if got := g.Balance(f.s, f.general, aug(29)); !got.Equal(gbp("-35.50")) {
		t.Errorf("Balance(29) = %v want -35.50", got)
	}
	b, _ := f.s.Fund(f.building)
	if got := b.Balance(f.s, f.building, aug(31)); !got.Equal(gbp("1000")) {
		t.Errorf("Balance() = %v want 1000", got)
	}
}

func TestLinkDescription(t *testing.T) {
	f := newFixture(t)
	testCases := []struct {
		text    string
		want    ID
		wantErr error
	}{
		{"SMITH-K 0042", f.kate, nil},
		{"SMITH-J SUBS", f.john, nil},
		{"WATER CO DD", f.water, nil},
		{"JONES", None, link.ErrNoMatch},
	}
	for _, tc := range testCases {
		got, err := f.s.LinkDescription(tc.text)
		if got != tc.want || !errors.Is(err, tc.wantErr) {
			t.Errorf("LinkDescription(%q) = %v, %v want %v, %v", tc.text, got, err, tc.want, tc.wantErr)
		}
	}

	// a new party sharing a prefix resets the cache.
	if _, err := f.s.AddRelatedParty(&RelatedParty{Name: "Jo Smith", Descriptors: []string{"SMITH-JO"}}); err != nil {
		t.Fatalf("AddRelatedParty() error = %v", err)
	}
	if _, err := f.s.LinkDescription("SMITH-J SUBS"); !errors.Is(err, link.ErrExhausted) {
		t.Errorf("LinkDescription() with SMITH-J and SMITH-JO error = %v want %v", err, link.ErrExhausted)
	}
}

func TestAddRelatedParty_ShortDescriptor(t *testing.T) {
	f := newFixture(t)
	before := f.s.Len()
	_, err := f.s.AddRelatedParty(&RelatedParty{Name: "BT", Descriptors: []string{"BT"}})
	var short *link.ShortDescriptorError
	if !errors.As(err, &short) {
		t.Fatalf("AddRelatedParty() error = %v want a *link.ShortDescriptorError", err)
	}
	if short.Len != testLinks.MinLen || short.Key != "BT" {
		t.Errorf("ShortDescriptorError = %+v want key BT and length %d", short, testLinks.MinLen)
	}
	if f.s.Len() != before {
		t.Errorf("a rejected party was allocated: %d records want %d", f.s.Len(), before)
	}
	// linking is not affected by the rejected party.
	if got, err := f.s.LinkDescription("WATER CO BILL"); err != nil || got != f.water {
		t.Errorf("LinkDescription() = %v, %v want %v", got, err, f.water)
	}

	// a short descriptor is fine next to a long one.
	bt, err := f.s.AddRelatedParty(&RelatedParty{Name: "BT", Descriptors: []string{"BT", "BT GROUP"}})
	if err != nil {
		t.Fatalf("AddRelatedParty() with a long descriptor error = %v", err)
	}
	if got, err := f.s.LinkDescription("BT GROUP PLC"); err != nil || got != bt {
		t.Errorf("LinkDescription() = %v, %v want %v", got, err, bt)
	}
}

func TestAddRelatedPartyDescriptor_Short(t *testing.T) {
	f := newFixture(t)
	gas, err := f.s.AddRelatedParty(NewRelatedParty("Gas Co", PartySupplier))
	if err != nil {
		t.Fatalf("AddRelatedParty() error = %v", err)
	}
	var short *link.ShortDescriptorError
	if err := f.s.AddRelatedPartyDescriptor(gas, "GC"); !errors.As(err, &short) {
		t.Errorf("AddRelatedPartyDescriptor(GC) error = %v want a *link.ShortDescriptorError", err)
	}
	if p, _ := f.s.RelatedParty(gas); len(p.Descriptors) != 0 {
		t.Errorf("rejected descriptor was added: %q", p.Descriptors)
	}
	if err := f.s.AddRelatedPartyDescriptor(gas, "GAS CO"); err != nil {
		t.Fatalf("AddRelatedPartyDescriptor(GAS CO) error = %v", err)
	}
	if err := f.s.AddRelatedPartyDescriptor(gas, "GC"); err != nil {
		t.Errorf("AddRelatedPartyDescriptor(GC) next to GAS CO error = %v", err)
	}
	if got, err := f.s.LinkDescription("GAS CO DD"); err != nil || got != gas {
		t.Errorf("LinkDescription() = %v, %v want %v", got, err, gas)
	}
}

func TestAddBankTransaction_RejectedLeavesPayload(t *testing.T) {
	f := newFixture(t)
	tx := &BankTransaction{
		Date:        aug(28),
		AccountID:   f.account,
		Description: "NAME REASON",
		Credit:      gbp("20"),
		Balance:     gbp("12004.61"),
	}
	if _, err := f.s.AddBankTransaction(tx); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("AddBankTransaction() error = %v want %v", err, ErrDuplicate)
	}
	if !tx.AccountDesc.IsZero() || tx.AccountID != f.account {
		t.Errorf("rejected transaction was changed to account %v (%v)", tx.AccountID, tx.AccountDesc)
	}
}

func TestAdd_CurrencyMismatch(t *testing.T) {
	f := newFixture(t)
	before := f.s.Len()
	_, err := f.s.AddTransaction(&Transaction{Date: aug(30), Type: TxPayment, Amount: MustParseAmount("40 EUR"), Debit: f.general, Credit: f.water})
	if !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("AddTransaction() in EUR from a GBP fund error = %v want %v", err, ErrCurrencyMismatch)
	}
	_, err = f.s.AddBankTransaction(&BankTransaction{Date: aug(30), AccountID: f.account, Description: "EURO", Credit: MustParseAmount("1 EUR"), Balance: MustParseAmount("11990.11 EUR")})
	if !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("AddBankTransaction() in EUR to a GBP statement error = %v want %v", err, ErrCurrencyMismatch)
	}
	if f.s.Len() != before {
		t.Errorf("a rejected record was allocated: %d records want %d", f.s.Len(), before)
	}

	euro, err := f.s.AddFund(&Fund{Name: "Euro", StartBalance: MustParseAmount("0 EUR")})
	if err != nil {
		t.Fatalf("AddFund() error = %v", err)
	}
	if _, err := f.s.AddTransaction(&Transaction{Date: aug(30), Type: TxReceipt, Amount: MustParseAmount("40 EUR"), Debit: f.kate, Credit: euro}); err != nil {
		t.Fatalf("AddTransaction() in EUR to a EUR fund error = %v", err)
	}
	if err := f.s.AddFundTransaction(euro, f.payment); !errors.Is(err, ErrCurrencyMismatch) {
		t.Errorf("AddFundTransaction() of a GBP payment to a EUR fund error = %v want %v", err, ErrCurrencyMismatch)
	}
	e, _ := f.s.Fund(euro)
	if got := e.Balance(f.s, euro, aug(31)); !got.Equal(MustParseAmount("40 EUR")) {
		t.Errorf("Balance() = %v want 40 EUR", got)
	}
}

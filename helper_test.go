package accounts

import (
	"testing"
	"time"

	"github.com/etnz/accounts/date"
	"github.com/etnz/accounts/link"
)

// gbp is a helper for tests to create amounts from const.
func gbp(s string) Amount { return MustParseAmount(s) }

// aug is a helper for tests to create dates in August 2024.
func aug(d int) date.Date { return date.New(2024, time.August, d) }

// testLinks is the link configuration of the fixture: "SMITH-J" and
// "SMITH-K" are told apart at the third level.
var testLinks = link.Config{MinLen: 3, MaxLen: 7, Step: 2}

var current, _ = ParseAccountDesc("30-91-74:02344812")

// fixture is a small store used across tests.
type fixture struct {
	s                   *Store
	account             ID
	john, kate, water   ID
	general, building   ID
	bank1, bank2, bank3 ID
	payment, invoice    ID
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	var f fixture
	f.s = NewWithConfig(testLinks)
	must := func(id ID, err error) ID {
		t.Helper()
		if err != nil {
			t.Fatalf("cannot build fixture: %v", err)
		}
		return id
	}
	f.account = must(f.s.AddAccount(NewAccount("Club", "Current", current)))
	f.john = must(f.s.AddRelatedParty(&RelatedParty{Name: "John Smith", Type: PartyMember, Descriptors: []string{"SMITH-J"}}))
	f.kate = must(f.s.AddRelatedParty(&RelatedParty{Name: "Kate Smith", Type: PartyMember, Aliases: []string{"Katie"}, Descriptors: []string{"SMITH-K"}}))
	f.water = must(f.s.AddRelatedParty(&RelatedParty{Name: "Water Co", Type: PartySupplier, Descriptors: []string{"WATER CO"}}))
	f.general = must(f.s.AddFund(NewFund("General", "day to day")))
	f.building = must(f.s.AddFund(&Fund{Name: "Building", Aliases: []string{"Build"}, StartBalance: gbp("1000")}))

	bank := func(on date.Date, description, debit, credit, balance string, party ID) ID {
		return must(f.s.AddBankTransaction(&BankTransaction{
			Date:         on,
			Type:         BankFasterPaymentIn,
			AccountDesc:  current,
			Description:  description,
			Debit:        gbp(debit),
			Credit:       gbp(credit),
			Balance:      gbp(balance),
			RelatedParty: party,
		}))
	}
	f.bank1 = bank(aug(28), "NAME REASON", "", "20.00", "12004.61", None)
	f.bank2 = bank(aug(28), "SMITH-J SUBS", "", "20.00", "12024.61", f.john)
	f.bank3 = bank(aug(29), "WATER CO DD", "35.50", "", "11989.11", f.water)

	f.payment = must(f.s.AddTransaction(&Transaction{
		Date:            aug(29),
		Type:            TxPayment,
		Amount:          gbp("35.50"),
		Debit:           f.general,
		Credit:          f.water,
		BankTransaction: f.bank3,
	}))
	f.invoice = must(f.s.AddInvoice(NewInvoice(f.water, "Water Q3", "water-q3.pdf", gbp("35.50"))))
	problems, err := f.s.AddInvoiceTransactions(f.invoice, f.payment)
	if err != nil || len(problems) > 0 {
		t.Fatalf("cannot pay the fixture invoice: %v %v", err, problems)
	}
	return f
}

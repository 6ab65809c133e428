package accounts

import (
	"strings"
	"testing"
)

func TestInvoice_Validate(t *testing.T) {
	f := newFixture(t)
	inv, _ := f.s.Invoice(f.invoice)
	if got := inv.Validate(f.s); len(got) != 0 {
		t.Errorf("Validate() = %v want no problem", got)
	}
	if got := inv.Outstanding(f.s, aug(28)); !got.Equal(gbp("35.50")) {
		t.Errorf("Outstanding(28) = %v want 35.50", got)
	}
	if got := inv.Outstanding(f.s, aug(29)); !got.IsZero() {
		t.Errorf("Outstanding(29) = %v want 0", got)
	}

	second, err := f.s.AddInvoice(NewInvoice(f.water, "Water Q4", "", gbp("40")))
	if err != nil {
		t.Fatalf("AddInvoice() error = %v", err)
	}
	inv, _ = f.s.Invoice(second)
	problems := inv.Validate(f.s)
	if len(problems) != 1 || !strings.Contains(problems[0], "outstanding balance £40.00") {
		t.Errorf("Validate() = %q want an outstanding balance of £40.00", problems)
	}
}

func TestAddInvoiceTransactions(t *testing.T) {
	f := newFixture(t)
	receipt, err := f.s.AddTransaction(&Transaction{Date: aug(30), Type: TxReceipt, Amount: gbp("5"), Debit: f.john, Credit: f.general})
	if err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	problems, err := f.s.AddInvoiceTransactions(f.invoice, f.payment, receipt, f.bank1)
	if err != nil {
		t.Fatalf("AddInvoiceTransactions() error = %v", err)
	}
	// the payment is already recorded, the receipt is not a payment to the
	// supplier (two problems), and a bank transaction is not a transaction.
	if len(problems) != 4 {
		t.Errorf("AddInvoiceTransactions() problems = %q want 4", problems)
	}
	inv, _ := f.s.Invoice(f.invoice)
	if inv.Transactions.Len() != 1 {
		t.Errorf("invoice has %d payments want 1", inv.Transactions.Len())
	}
	if _, err := f.s.AddInvoiceTransactions(f.general); err == nil {
		t.Errorf("AddInvoiceTransactions() on a fund: want an error")
	}
}

func TestAddInvoiceTransactions_Currency(t *testing.T) {
	f := newFixture(t)
	euros, err := f.s.AddInvoice(NewInvoice(f.water, "Water abroad", "", MustParseAmount("40 EUR")))
	if err != nil {
		t.Fatalf("AddInvoice() error = %v", err)
	}
	pounds, err := f.s.AddTransaction(&Transaction{Date: aug(30), Type: TxPayment, Amount: gbp("40"), Debit: f.general, Credit: f.water})
	if err != nil {
		t.Fatalf("AddTransaction() error = %v", err)
	}
	problems, err := f.s.AddInvoiceTransactions(euros, pounds)
	if err != nil {
		t.Fatalf("AddInvoiceTransactions() error = %v", err)
	}
	if len(problems) != 1 || !strings.Contains(problems[0], "GBP, the invoice in EUR") {
		t.Errorf("AddInvoiceTransactions() problems = %q want a currency problem", problems)
	}
	inv, _ := f.s.Invoice(euros)
	if inv.Transactions.Len() != 0 {
		t.Errorf("invoice has %d payments want 0", inv.Transactions.Len())
	}
	if got := inv.Outstanding(f.s, aug(31)); !got.Equal(MustParseAmount("40 EUR")) {
		t.Errorf("Outstanding() = %v want 40 EUR", got)
	}
	if got := inv.Validate(f.s); len(got) != 1 {
		t.Errorf("Validate() = %q want an outstanding balance", got)
	}
}

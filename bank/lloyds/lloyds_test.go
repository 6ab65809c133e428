package lloyds

import (
	"errors"
	"strings"
	"testing"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/date"
)

const statement = `Transaction Date,Transaction Type,Sort Code,Account Number,Transaction Description,Debit Amount,Credit Amount,Balance
29/08/2024,DD,'30-91-74,02344812,WATER CO DD,35.50,,11989.11
28/08/2024,FPI,'30-91-74,02344812,SMITH-J SUBS,,20.00,12024.61
28/08/2024,FPI,'30-91-74,02344812,NAME REASON,,20.00,12004.61
`

func TestReadTransactions(t *testing.T) {
	txs, err := ReadTransactions(strings.NewReader(statement))
	if err != nil {
		t.Fatalf("ReadTransactions() error = %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("ReadTransactions() returned %d transactions want 3", len(txs))
	}
	desc, _ := accounts.ParseUK("30-91-74", 2344812)
	testCases := []struct {
		description string
		on          date.Date
		ordering    int
		typ         accounts.BankTransactionType
		delta       string
		balance     string
	}{
		{"NAME REASON", date.MustParse("2024-08-28"), 1, accounts.BankFasterPaymentIn, "20", "12004.61"},
		{"SMITH-J SUBS", date.MustParse("2024-08-28"), 2, accounts.BankFasterPaymentIn, "20", "12024.61"},
		{"WATER CO DD", date.MustParse("2024-08-29"), 1, accounts.BankDirectDebit, "-35.5", "11989.11"},
	}
	for i, tc := range testCases {
		tx := txs[i]
		if tx.Description != tc.description || tx.Date != tc.on || tx.Ordering != tc.ordering || tx.Type != tc.typ {
			t.Errorf("transaction %d = %q %v #%d %q want %q %v #%d %q", i, tx.Description, tx.Date, tx.Ordering, tx.Type, tc.description, tc.on, tc.ordering, tc.typ)
		}
		if !tx.Delta().Equal(accounts.MustParseAmount(tc.delta)) || !tx.Balance.Equal(accounts.MustParseAmount(tc.balance)) {
			t.Errorf("transaction %d delta, balance = %v, %v want %v, %v", i, tx.Delta(), tx.Balance, tc.delta, tc.balance)
		}
		if tx.AccountDesc != desc {
			t.Errorf("transaction %d account = %v want %v", i, tx.AccountDesc, desc)
		}
	}
}

func TestReadTransactions_BrokenBalance(t *testing.T) {
	broken := strings.Replace(statement, "11989.11", "11989.12", 1)
	_, err := ReadTransactions(strings.NewReader(broken))
	if !errors.Is(err, ErrBalance) {
		t.Errorf("ReadTransactions() error = %v want %v", err, ErrBalance)
	}
}

func TestReadTransactions_MixedAccounts(t *testing.T) {
	mixed := strings.Replace(statement, "'30-91-74,02344812,WATER", "'30-91-74,09999999,WATER", 1)
	if _, err := ReadTransactions(strings.NewReader(mixed)); err == nil {
		t.Errorf("ReadTransactions() with two accounts: want an error")
	}
}

func TestReadTransactions_Errors(t *testing.T) {
	testCases := []struct {
		name string
		csv  string
	}{
		{"missing column", "Transaction Date,Balance\n28/08/2024,1.00\n"},
		{"no balance", strings.Replace(statement, ",12004.61", ",", 1)},
		{"bad date", strings.Replace(statement, "28/08/2024,FPI,'30-91-74,02344812,NAME", "31/02/2024,FPI,'30-91-74,02344812,NAME", 1)},
		{"bad amount", strings.Replace(statement, "35.50", "3x.50", 1)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ReadTransactions(strings.NewReader(tc.csv)); err == nil {
				t.Errorf("ReadTransactions() want an error")
			}
		})
	}
}

func TestReadTransactions_Empty(t *testing.T) {
	txs, err := ReadTransactions(strings.NewReader(""))
	if err != nil || len(txs) != 0 {
		t.Errorf("ReadTransactions(\"\") = %v, %v want nothing", txs, err)
	}
}

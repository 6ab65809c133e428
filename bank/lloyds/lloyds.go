// Package lloyds reads the CSV statements exported by Lloyds Bank.
//
// A statement looks like:
//
//	Transaction Date,Transaction Type,Sort Code,Account Number,Transaction Description,Debit Amount,Credit Amount,Balance
//	28/08/2024,FPI,'30-91-74,02344812,NAME REASON,,20.00,12004.61
//
// newest transaction first.
package lloyds

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/date"
)

// Column names of a statement.
const (
	colDate        = "Transaction Date"
	colType        = "Transaction Type"
	colSortCode    = "Sort Code"
	colAccount     = "Account Number"
	colDescription = "Transaction Description"
	colDebit       = "Debit Amount"
	colCredit      = "Credit Amount"
	colBalance     = "Balance"
)

var columns = []string{colDate, colType, colSortCode, colAccount, colDescription, colDebit, colCredit, colBalance}

// ErrBalance is returned when a statement's balances do not chain.
var ErrBalance = errors.New("balance mismatch")

// ReadTransactions reads a statement and returns its transactions oldest
// first, numbered within each day.
//
// All the transactions must be for the same account, and each balance must
// be the previous balance plus the credit minus the debit.
func ReadTransactions(r io.Reader) ([]*accounts.BankTransaction, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, c := range columns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("missing column %q in header %q", c, header)
		}
	}

	var txs []*accounts.BankTransaction
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		get := func(c string) string {
			if i := index[c]; i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}
		tx, err := parse(get)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	slices.Reverse(txs)

	if err := check(txs); err != nil {
		return nil, err
	}
	order(txs)
	return txs, nil
}

// parse converts one row.
func parse(get func(string) string) (*accounts.BankTransaction, error) {
	if get(colBalance) == "" {
		return nil, fmt.Errorf("transaction has no balance")
	}
	on, err := date.Parse(get(colDate))
	if err != nil {
		return nil, err
	}
	tx := &accounts.BankTransaction{
		Date:        on,
		Type:        accounts.ParseBankTransactionType(get(colType)),
		Description: get(colDescription),
	}
	if tx.Debit, err = accounts.ParseAmount(get(colDebit)); err != nil {
		return nil, err
	}
	if tx.Credit, err = accounts.ParseAmount(get(colCredit)); err != nil {
		return nil, err
	}
	if tx.Balance, err = accounts.ParseAmount(get(colBalance)); err != nil {
		return nil, err
	}
	if sc := strings.TrimPrefix(get(colSortCode), "'"); sc != "" {
		number, err := strconv.ParseUint(get(colAccount), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid account number %q: %w", get(colAccount), err)
		}
		if tx.AccountDesc, err = accounts.ParseUK(sc, number); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

// check verifies that txs, oldest first, are for one account and chain.
func check(txs []*accounts.BankTransaction) error {
	for i := 1; i < len(txs); i++ {
		if txs[i].AccountDesc != txs[0].AccountDesc {
			return fmt.Errorf("entry %d is for account %v, not %v like the first entry", i+1, txs[i].AccountDesc, txs[0].AccountDesc)
		}
		expected := txs[i-1].Balance.Add(txs[i].Delta())
		if !expected.Equal(txs[i].Balance) {
			return fmt.Errorf("entry %d on %v: balance %v, expected %v: %w", i+1, txs[i].Date, txs[i].Balance, expected, ErrBalance)
		}
	}
	return nil
}

// order numbers the transactions of each day from 1.
func order(txs []*accounts.BankTransaction) {
	for i, tx := range txs {
		tx.Ordering = 1
		if i > 0 && txs[i-1].Date == tx.Date {
			tx.Ordering = txs[i-1].Ordering + 1
		}
	}
}

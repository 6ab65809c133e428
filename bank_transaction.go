package accounts

import (
	"fmt"

	"github.com/etnz/accounts/date"
)

// BankTransactionType is the bank's transaction code.
type BankTransactionType string

const (
	BankUnknown          BankTransactionType = ""
	BankStandingOrder    BankTransactionType = "SO"
	BankBacsIn           BankTransactionType = "BGC"
	BankFasterPaymentIn  BankTransactionType = "FPI"
	BankFasterPaymentOut BankTransactionType = "FPO"
	BankDirectDebit      BankTransactionType = "DD"
	BankDeposit          BankTransactionType = "DEP"
	BankDebitCard        BankTransactionType = "DEB"
	BankTransfer         BankTransactionType = "TFR"
	BankCashpoint        BankTransactionType = "CPT"
	BankCharge           BankTransactionType = "PAY"
)

var bankTypeNames = map[BankTransactionType]string{
	BankUnknown:          "unknown",
	BankStandingOrder:    "standing order",
	BankBacsIn:           "bank giro credit",
	BankFasterPaymentIn:  "faster payment in",
	BankFasterPaymentOut: "faster payment out",
	BankDirectDebit:      "direct debit",
	BankDeposit:          "deposit",
	BankDebitCard:        "debit card",
	BankTransfer:         "transfer",
	BankCashpoint:        "cashpoint",
	BankCharge:           "payment",
}

// ParseBankTransactionType maps a bank code to a type. Unknown codes are
// BankUnknown.
func ParseBankTransactionType(code string) BankTransactionType {
	t := BankTransactionType(code)
	if _, known := bankTypeNames[t]; known {
		return t
	}
	return BankUnknown
}

// Name returns a human name for the type.
func (t BankTransactionType) Name() string {
	if n, ok := bankTypeNames[t]; ok {
		return n
	}
	return string(t)
}

// BankTransaction is one line of a bank statement.
type BankTransaction struct {
	Date date.Date `json:"date" yaml:"date"`
	// Ordering is the position within the day, starting at 1. Zero is unknown.
	Ordering    int                 `json:"ordering,omitempty" yaml:"ordering,omitempty"`
	Type        BankTransactionType `json:"type,omitempty" yaml:"type,omitempty"`
	AccountID   ID                  `json:"account,omitempty" yaml:"account,omitempty"`
	AccountDesc AccountDesc         `json:"accountDesc" yaml:"accountDesc"`
	Description string              `json:"description" yaml:"description"`
	Debit       Amount              `json:"debit" yaml:"debit"`
	Credit      Amount              `json:"credit" yaml:"credit"`
	Balance     Amount              `json:"balance" yaml:"balance"` // after the transaction

	// RelatedParty is the party this transaction is with, None until linked.
	RelatedParty ID `json:"relatedParty,omitempty" yaml:"relatedParty,omitempty"`
}

func (t *BankTransaction) Kind() Kind { return KindBankTransaction }

func (t *BankTransaction) rebuild(remap remapFunc) (err error) {
	if t.AccountID, err = remap("bank transaction account", t.AccountID); err != nil {
		return err
	}
	t.RelatedParty, err = remap("bank transaction related party", t.RelatedParty)
	return err
}

func (t *BankTransaction) clone() Record {
	c := *t
	return &c
}

// Delta returns the change of balance: credit minus debit.
func (t *BankTransaction) Delta() Amount { return t.Credit.Sub(t.Debit) }

// fingerprint identifies a statement line: the same line imported twice has
// the same fingerprint.
func (t *BankTransaction) fingerprint() string {
	return fmt.Sprintf("%v|%v|%s|%s", t.AccountDesc, t.Date, t.Description, t.Balance.text())
}

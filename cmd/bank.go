package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/bank/lloyds"
	"github.com/etnz/accounts/renderer"
	"github.com/google/subcommands"
)

// --- import-lloyds ---

type importLloydsCmd struct {
	account string
}

func (*importLloydsCmd) Name() string     { return "import-lloyds" }
func (*importLloydsCmd) Synopsis() string { return "import Lloyds CSV statements" }
func (*importLloydsCmd) Usage() string {
	return `acc import-lloyds -a <account> <file.csv>...

  Imports statements exported from Lloyds online banking. Lines already
  imported are skipped, new lines are linked to related parties through
  their description.
`
}

func (c *importLloydsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name, number or id")
}

func (c *importLloydsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" || f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	account, err := resolve(s, c.account, accounts.KindAccount)
	if err != nil {
		return fail("%v", err)
	}
	for _, name := range f.Args() {
		txs, err := readStatement(name)
		if err != nil {
			return fail("%v", err)
		}
		report, err := s.ImportBankTransactions(account, txs)
		if err != nil {
			return fail("importing %q: %v", name, err)
		}
		fmt.Printf("%s: %d added (%d linked, %d unlinked), %d duplicates\n",
			name, len(report.Added), report.Linked, report.Unlinked, report.Duplicates)
	}
	return SaveStore(s)
}

func readStatement(name string) ([]*accounts.BankTransaction, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	txs, err := lloyds.ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", name, err)
	}
	return txs, nil
}

// --- transaction-add ---

type transactionAddCmd struct {
	on          string
	typ         string
	amount      string
	debit       string
	credit      string
	bank        string
	description string
}

func (*transactionAddCmd) Name() string     { return "transaction-add" }
func (*transactionAddCmd) Synopsis() string { return "add a ledger transaction" }
func (*transactionAddCmd) Usage() string {
	return `acc transaction-add -d <date> -type <type> -amount <amount> -debit <from> -credit <to> [-bank <id>] [-m <description>]

  Adds a ledger transaction moving an amount from a fund or related party
  to another. Types are transfer (between funds), payment (to a related
  party) and receipt (from a related party).
`
}

func (c *transactionAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "d", "", "Date of the transaction (defaults to today)")
	f.StringVar(&c.typ, "type", "", "transfer, payment or receipt")
	f.StringVar(&c.amount, "amount", "", "Amount moved")
	f.StringVar(&c.debit, "debit", "", "Fund or related party the money comes from")
	f.StringVar(&c.credit, "credit", "", "Fund or related party the money goes to")
	f.StringVar(&c.bank, "bank", "", "Id of the bank transaction this accounts for")
	f.StringVar(&c.description, "m", "", "Description")
}

func (c *transactionAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" || c.debit == "" || c.credit == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	on, err := parseOn(c.on)
	if err != nil {
		return fail("%v", err)
	}
	typ, err := accounts.ParseTransactionType(c.typ)
	if err != nil {
		return fail("%v", err)
	}
	amount, err := accounts.ParseAmount(c.amount)
	if err != nil {
		return fail("%v", err)
	}
	bank, err := accounts.ParseID(c.bank)
	if err != nil {
		return fail("%v", err)
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	debit, err := resolve(s, c.debit, accounts.KindFund, accounts.KindRelatedParty)
	if err != nil {
		return fail("%v", err)
	}
	credit, err := resolve(s, c.credit, accounts.KindFund, accounts.KindRelatedParty)
	if err != nil {
		return fail("%v", err)
	}
	tx := &accounts.Transaction{
		Date:            on,
		Type:            typ,
		Amount:          amount,
		Debit:           debit,
		Credit:          credit,
		Description:     c.description,
		BankTransaction: bank,
	}
	id, err := s.AddTransaction(tx)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Added %s with id %v\n", renderer.Summary(s, tx), id)
	return SaveStore(s)
}

package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/renderer"
	"github.com/google/subcommands"
)

// --- account-add ---

type accountAddCmd struct {
	org      string
	name     string
	sortCode string
	number   uint64
}

func (*accountAddCmd) Name() string     { return "account-add" }
func (*accountAddCmd) Synopsis() string { return "add a bank account" }
func (*accountAddCmd) Usage() string {
	return `acc account-add -name <name> -sort-code <sort code> -number <account number> [-org <organization>]

  Adds a bank account. Accounts are unique by sort code and number.
`
}

func (c *accountAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.org, "org", "", "Organization holding the account")
	f.StringVar(&c.name, "name", "", "Account name")
	f.StringVar(&c.sortCode, "sort-code", "", "Sort code like 30-91-74")
	f.Uint64Var(&c.number, "number", 0, "Account number")
}

func (c *accountAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" || c.sortCode == "" || c.number == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	desc, err := accounts.ParseUK(c.sortCode, c.number)
	if err != nil {
		return fail("%v", err)
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	id, err := s.AddAccount(accounts.NewAccount(c.org, c.name, desc))
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Added account %q (%v) with id %v\n", c.name, desc, id)
	return SaveStore(s)
}

// --- accounts ---

type accountsCmd struct {
	on string
}

func (*accountsCmd) Name() string     { return "accounts" }
func (*accountsCmd) Synopsis() string { return "list bank accounts and their balance" }
func (*accountsCmd) Usage() string {
	return `acc accounts [-d <date>]

  Lists the bank accounts with their balance at the end of the day.
`
}

func (c *accountsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "d", "", "Date of the balances (defaults to today)")
}

func (c *accountsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseOn(c.on)
	if err != nil {
		return fail("%v", err)
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(renderer.RenderAccountList(renderer.NewAccountList(s, on)))
	return subcommands.ExitSuccess
}

// --- account-validate ---

type accountValidateCmd struct{}

func (*accountValidateCmd) Name() string     { return "account-validate" }
func (*accountValidateCmd) Synopsis() string { return "check that account balances add up" }
func (*accountValidateCmd) Usage() string {
	return `acc account-validate [<account>...]

  Checks that every bank transaction's balance is the previous balance plus
  its credit minus its debit. All accounts are checked by default.
`
}

func (*accountValidateCmd) SetFlags(f *flag.FlagSet) {}

func (*accountValidateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	ids, err := resolveAll(s, f.Args(), s.AccountIDs(), accounts.KindAccount)
	if err != nil {
		return fail("%v", err)
	}
	v := renderer.NewValidation(s, ids...)
	printMarkdown(renderer.ValidationMarkdown(v))
	if !v.OK() {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// --- account-transactions ---

type accountTransactionsCmd struct {
	account   string
	noSummary bool
	rangeFlags
}

func (*accountTransactionsCmd) Name() string     { return "account-transactions" }
func (*accountTransactionsCmd) Synopsis() string { return "show the statement of a bank account" }
func (*accountTransactionsCmd) Usage() string {
	return `acc account-transactions -a <account> [-p <period> [-d <date>] | -from <date> [-to <date>]]

  Shows the bank transactions of an account, all of them by default.
`
}

func (c *accountTransactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.account, "a", "", "Account name, number or id")
	f.BoolVar(&c.noSummary, "no-summary", false, "Do not show the opening and closing balances")
	c.rangeFlags.SetFlags(f)
}

func (c *accountTransactionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.account == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	r, err := c.Range()
	if err != nil {
		return fail("%v", err)
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	id, err := resolve(s, c.account, accounts.KindAccount)
	if err != nil {
		return fail("%v", err)
	}
	st, err := renderer.NewStatement(s, id, r)
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(renderer.RenderStatement(st, renderer.StatementRenderOptions{SkipSummary: c.noSummary}))
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/renderer"
	"github.com/google/subcommands"
)

// --- fund-add ---

type fundAddCmd struct {
	name        string
	description string
	start       string
	aliases     listFlag
}

func (*fundAddCmd) Name() string     { return "fund-add" }
func (*fundAddCmd) Synopsis() string { return "add a fund" }
func (*fundAddCmd) Usage() string {
	return `acc fund-add -name <name> [-description <text>] [-start <amount>] [-alias <alias>...]

  Adds a fund, money earmarked for a purpose. Funds are unique by name and
  alias.
`
}

func (c *fundAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Fund name")
	f.StringVar(&c.description, "description", "", "What the fund is for")
	f.StringVar(&c.start, "start", "", "Start balance")
	f.Var(&c.aliases, "alias", "Alternative name, can be repeated")
}

func (c *fundAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	start, err := accounts.ParseAmount(c.start)
	if err != nil {
		return fail("%v", err)
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	fund := accounts.NewFund(c.name, c.description)
	fund.StartBalance = start
	fund.Aliases = c.aliases
	id, err := s.AddFund(fund)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Added fund %q with id %v\n", c.name, id)
	return SaveStore(s)
}

// --- fund-alias ---

type fundAliasCmd struct{}

func (*fundAliasCmd) Name() string     { return "fund-alias" }
func (*fundAliasCmd) Synopsis() string { return "add an alternative name to a fund" }
func (*fundAliasCmd) Usage() string {
	return `acc fund-alias <fund> <alias>
`
}

func (*fundAliasCmd) SetFlags(f *flag.FlagSet) {}

func (*fundAliasCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	id, err := resolve(s, f.Arg(0), accounts.KindFund)
	if err != nil {
		return fail("%v", err)
	}
	if err := s.AddFundAlias(id, f.Arg(1)); err != nil {
		return fail("%v", err)
	}
	return SaveStore(s)
}

// --- funds ---

type fundsCmd struct {
	on string
}

func (*fundsCmd) Name() string     { return "funds" }
func (*fundsCmd) Synopsis() string { return "list funds and their balance" }
func (*fundsCmd) Usage() string {
	return `acc funds [-d <date>]

  Lists the funds with their balance at the end of the day.
`
}

func (c *fundsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "d", "", "Date of the balances (defaults to today)")
}

func (c *fundsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseOn(c.on)
	if err != nil {
		return fail("%v", err)
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(renderer.RenderFundList(renderer.NewFundList(s, on)))
	return subcommands.ExitSuccess
}

// --- fund-transactions ---

type fundTransactionsCmd struct {
	fund string
	rangeFlags
}

func (*fundTransactionsCmd) Name() string     { return "fund-transactions" }
func (*fundTransactionsCmd) Synopsis() string { return "show the ledger transactions of a fund" }
func (*fundTransactionsCmd) Usage() string {
	return `acc fund-transactions -f <fund> [-p <period> [-d <date>] | -from <date> [-to <date>]]
`
}

func (c *fundTransactionsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.fund, "f", "", "Fund name, alias or id")
	c.rangeFlags.SetFlags(f)
}

func (c *fundTransactionsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.fund == "" {
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
	id, err := resolve(s, c.fund, accounts.KindFund)
	if err != nil {
		return fail("%v", err)
	}
	st, err := renderer.NewFundStatement(s, id, r)
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(renderer.RenderFundStatement(st))
	return subcommands.ExitSuccess
}

package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/link"
	"github.com/etnz/accounts/renderer"
	"github.com/google/subcommands"
)

// --- party-add ---

type partyAddCmd struct {
	name        string
	typ         string
	aliases     listFlag
	descriptors listFlag
}

func (*partyAddCmd) Name() string     { return "party-add" }
func (*partyAddCmd) Synopsis() string { return "add a related party" }
func (*partyAddCmd) Usage() string {
	return `acc party-add -name <name> [-type <type>] [-alias <alias>...] [-descriptor <text>...]

  Adds a related party: a member, supplier, customer, bank or other.
  Descriptors are the texts the party appears as in bank descriptions.
`
}

func (c *partyAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Party name")
	f.StringVar(&c.typ, "type", "", "member, supplier, customer, bank or other")
	f.Var(&c.aliases, "alias", "Alternative name, can be repeated")
	f.Var(&c.descriptors, "descriptor", "Bank description text, can be repeated")
}

func (c *partyAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.name == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	typ, err := accounts.ParsePartyType(c.typ)
	if err != nil {
		return fail("%v", err)
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	p := accounts.NewRelatedParty(c.name, typ)
	p.Aliases = c.aliases
	p.Descriptors = c.descriptors
	id, err := s.AddRelatedParty(p)
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Added party %q with id %v\n", c.name, id)
	return SaveStore(s)
}

// --- party-alias ---

type partyAliasCmd struct{}

func (*partyAliasCmd) Name() string     { return "party-alias" }
func (*partyAliasCmd) Synopsis() string { return "add an alternative name to a related party" }
func (*partyAliasCmd) Usage() string {
	return `acc party-alias <party> <alias>
`
}

func (*partyAliasCmd) SetFlags(f *flag.FlagSet) {}

func (*partyAliasCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	id, err := resolve(s, f.Arg(0), accounts.KindRelatedParty)
	if err != nil {
		return fail("%v", err)
	}
	if err := s.AddRelatedPartyAlias(id, f.Arg(1)); err != nil {
		return fail("%v", err)
	}
	return SaveStore(s)
}

// --- party-descriptor ---

type partyDescriptorCmd struct{}

func (*partyDescriptorCmd) Name() string { return "party-descriptor" }
func (*partyDescriptorCmd) Synopsis() string {
	return "add a bank description text to a related party"
}
func (*partyDescriptorCmd) Usage() string {
	return `acc party-descriptor <party> <descriptor>

  Adds a text the party appears as in bank descriptions. Run 'acc link'
  afterwards to link the bank transactions.
`
}

func (*partyDescriptorCmd) SetFlags(f *flag.FlagSet) {}

func (*partyDescriptorCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	id, err := resolve(s, f.Arg(0), accounts.KindRelatedParty)
	if err != nil {
		return fail("%v", err)
	}
	if err := s.AddRelatedPartyDescriptor(id, f.Arg(1)); err != nil {
		return fail("%v", err)
	}
	return SaveStore(s)
}

// --- parties ---

type partiesCmd struct {
	typ string
}

func (*partiesCmd) Name() string     { return "parties" }
func (*partiesCmd) Synopsis() string { return "list related parties" }
func (*partiesCmd) Usage() string {
	return `acc parties [-type <type>]
`
}

func (c *partiesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.typ, "type", "", "Only list parties of this type")
}

func (c *partiesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	typ, err := accounts.ParsePartyType(c.typ)
	if err != nil {
		return fail("%v", err)
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(renderer.RenderPartyList(renderer.NewPartyList(s, typ)))
	return subcommands.ExitSuccess
}

// --- link ---

type linkCmd struct{}

func (*linkCmd) Name() string     { return "link" }
func (*linkCmd) Synopsis() string { return "link bank descriptions to related parties" }
func (*linkCmd) Usage() string {
	return `acc link [<description>]

  Without argument, links every bank transaction that has no related party
  yet, and saves the database.

  With a description, prints the related party it links to.
`
}

func (*linkCmd) SetFlags(f *flag.FlagSet) {}

func (*linkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	if f.NArg() == 1 {
		id, err := s.LinkDescription(f.Arg(0))
		switch {
		case errors.Is(err, link.ErrNoMatch):
			return fail("no related party matches %q", f.Arg(0))
		case errors.Is(err, link.ErrExhausted):
			return fail("%q matches several related parties, add a longer descriptor", f.Arg(0))
		case err != nil:
			return fail("%v", err)
		}
		rec, _ := s.Get(id)
		fmt.Println(renderer.Summary(s, rec))
		return subcommands.ExitSuccess
	}
	linked, unlinked, err := s.LinkBankTransactions()
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Linked %d bank transactions, %d left unlinked\n", linked, unlinked)
	return SaveStore(s)
}

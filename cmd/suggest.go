package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"slices"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type suggestCmd struct {
	apply bool
}

func (*suggestCmd) Name() string     { return "suggest" }
func (*suggestCmd) Synopsis() string { return "ask Gemini for the related party of unlinked bank transactions" }
func (*suggestCmd) Usage() string {
	return `acc suggest [-apply]

  Sends the descriptions of the bank transactions that could not be linked,
  and the list of related parties, to Gemini. It suggests a related party and
  a descriptor for each description.

  With -apply, the descriptors are added to the parties, bank transactions
  are linked again and the database is saved.

  The Gemini client is configured from the environment (GEMINI_API_KEY).
`
}

func (c *suggestCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.apply, "apply", false, "Add the suggested descriptors and link")
}

func (c *suggestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	descriptions := unlinkedDescriptions(s)
	if len(descriptions) == 0 {
		fmt.Println("Every bank transaction is linked.")
		return subcommands.ExitSuccess
	}
	prompt, err := agent.Prompt(promptParties(s), descriptions)
	if err != nil {
		return fail("%v", err)
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error initializing Gemini's client:", err)
		return subcommands.ExitFailure
	}
	bookkeeper := agent.NewBookkeeper()
	if err := bookkeeper.Start(ctx, client); err != nil {
		return fail("%v", err)
	}
	answer, err := bookkeeper.Ask(ctx, prompt)
	if err != nil {
		return fail("%v", err)
	}
	suggestions, err := agent.ParseSuggestions(answer)
	if err != nil {
		return fail("%v", err)
	}

	for _, sg := range suggestions {
		fmt.Printf("%q -> %s (descriptor %q)\n", sg.Description, sg.Party, sg.Descriptor)
	}
	if !c.apply {
		return subcommands.ExitSuccess
	}
	for _, sg := range suggestions {
		id, err := s.RelatedPartyByName(sg.Party)
		if err != nil {
			log.Printf("skipping suggestion for %q: %v", sg.Description, err)
			continue
		}
		if err := s.AddRelatedPartyDescriptor(id, sg.Descriptor); err != nil {
			log.Printf("skipping suggestion for %q: %v", sg.Description, err)
		}
	}
	linked, unlinked, err := s.LinkBankTransactions()
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Linked %d bank transactions, %d left unlinked\n", linked, unlinked)
	return SaveStore(s)
}

// unlinkedDescriptions returns the distinct descriptions of the bank
// transactions without a related party.
func unlinkedDescriptions(s *accounts.Store) []string {
	var descriptions []string
	for _, id := range s.BankTransactionIDs() {
		tx, err := s.BankTransaction(id)
		if err != nil || !tx.RelatedParty.IsNone() {
			continue
		}
		if !slices.Contains(descriptions, tx.Description) {
			descriptions = append(descriptions, tx.Description)
		}
	}
	return descriptions
}

func promptParties(s *accounts.Store) []agent.Party {
	var parties []agent.Party
	for _, id := range s.RelatedPartyIDs() {
		p, err := s.RelatedParty(id)
		if err != nil {
			continue
		}
		parties = append(parties, agent.Party{Name: p.Name, Type: string(p.Type), Descriptors: p.Descriptors})
	}
	return parties
}

// Package cmd implements the CLI application to manage the accounts of a
// small organization.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/accounts"
	"github.com/etnz/accounts/link"
	"github.com/google/subcommands"
	"github.com/mattn/go-isatty"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&accountAddCmd{}, "accounts")
	c.Register(&accountsCmd{}, "accounts")
	c.Register(&accountValidateCmd{}, "accounts")
	c.Register(&accountTransactionsCmd{}, "accounts")

	c.Register(&fundAddCmd{}, "funds")
	c.Register(&fundAliasCmd{}, "funds")
	c.Register(&fundsCmd{}, "funds")
	c.Register(&fundTransactionsCmd{}, "funds")

	c.Register(&partyAddCmd{}, "parties")
	c.Register(&partyAliasCmd{}, "parties")
	c.Register(&partyDescriptorCmd{}, "parties")
	c.Register(&partiesCmd{}, "parties")
	c.Register(&linkCmd{}, "parties")

	c.Register(&invoiceAddCmd{}, "invoices")
	c.Register(&invoicePayCmd{}, "invoices")
	c.Register(&invoicesCmd{}, "invoices")
	c.Register(&invoiceValidateCmd{}, "invoices")

	c.Register(&importLloydsCmd{}, "bank")
	c.Register(&transactionAddCmd{}, "bank")
	c.Register(&suggestCmd{}, "bank")

	c.Register(&queryCmd{}, "database")
	c.Register(&getCmd{}, "database")
	c.Register(&writeCmd{}, "database")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	dbFile   = flag.String("db", defaultDB(), "Path to the accounts database (.jsonl, .json, .yaml or .yml). Defaults to $"+EnvDB+".")
	linkMin  = flag.Int("link-min", link.DefaultConfig.MinLen, "Prefix length of the first level of the link cache")
	linkMax  = flag.Int("link-max", link.DefaultConfig.MaxLen, "Maximum prefix length of the link cache")
	linkStep = flag.Int("link-step", link.DefaultConfig.Step, "Prefix length increment between link cache levels")
)

func defaultDB() string {
	if db := os.Getenv(EnvDB); db != "" {
		return db
	}
	return "accounts.jsonl"
}

// LinkConfig returns the link cache configuration set on the command line.
func LinkConfig() link.Config {
	return link.Config{MinLen: *linkMin, MaxLen: *linkMax, Step: *linkStep}
}

// OpenStore is the central function to open the accounts database.
func OpenStore() (*accounts.Store, error) {
	s, err := accounts.OpenStore(*dbFile, LinkConfig())
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, database does not exist, creating an empty one")
		return accounts.NewWithConfig(LinkConfig()), nil
	}
	return s, err
}

// SaveStore writes the accounts database back.
func SaveStore(s *accounts.Store) subcommands.ExitStatus {
	if err := accounts.SaveStore(*dbFile, s); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing database %q: %v\n", *dbFile, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// printMarkdown renders markdown on a terminal, and prints it as is
// otherwise.
func printMarkdown(md string) {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail prints an error and returns the failure status.
func fail(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	return subcommands.ExitFailure
}

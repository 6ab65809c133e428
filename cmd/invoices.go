package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/renderer"
	"github.com/google/subcommands"
)

// --- invoice-add ---

type invoiceAddCmd struct {
	supplier string
	reason   string
	file     string
	amount   string
}

func (*invoiceAddCmd) Name() string     { return "invoice-add" }
func (*invoiceAddCmd) Synopsis() string { return "add an invoice from a supplier" }
func (*invoiceAddCmd) Usage() string {
	return `acc invoice-add -s <supplier> -r <reason> -amount <amount> [-file <filename>]

  Adds an invoice. Invoices are unique by reason.
`
}

func (c *invoiceAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.supplier, "s", "", "Supplier, a related party")
	f.StringVar(&c.reason, "r", "", "Reason, like 'Water Q3 2025'")
	f.StringVar(&c.file, "file", "", "File of the scanned invoice")
	f.StringVar(&c.amount, "amount", "", "Amount due")
}

func (c *invoiceAddCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.supplier == "" || c.reason == "" || c.amount == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}
	amount, err := accounts.ParseAmount(c.amount)
	if err != nil {
		return fail("%v", err)
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	supplier, err := resolve(s, c.supplier, accounts.KindRelatedParty)
	if err != nil {
		return fail("%v", err)
	}
	id, err := s.AddInvoice(accounts.NewInvoice(supplier, c.reason, c.file, amount))
	if err != nil {
		return fail("%v", err)
	}
	fmt.Printf("Added invoice %q with id %v\n", c.reason, id)
	return SaveStore(s)
}

// --- invoice-pay ---

type invoicePayCmd struct {
	invoice string
}

func (*invoicePayCmd) Name() string     { return "invoice-pay" }
func (*invoicePayCmd) Synopsis() string { return "record payments of an invoice" }
func (*invoicePayCmd) Usage() string {
	return `acc invoice-pay -i <invoice> <transaction id>...

  Records ledger transactions as payments of an invoice. Transactions that
  are not payments to the invoice supplier are reported and skipped.
`
}

func (c *invoicePayCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.invoice, "i", "", "Invoice reason or id")
}

func (c *invoicePayCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.invoice == "" || f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	invoice, err := resolve(s, c.invoice, accounts.KindInvoice)
	if err != nil {
		return fail("%v", err)
	}
	ids := make([]accounts.ID, 0, f.NArg())
	for _, arg := range f.Args() {
		id, err := accounts.ParseID(arg)
		if err != nil {
			return fail("%v", err)
		}
		ids = append(ids, id)
	}
	problems, err := s.AddInvoiceTransactions(invoice, ids...)
	if err != nil {
		return fail("%v", err)
	}
	for _, p := range problems {
		fmt.Fprintln(os.Stderr, "skipped:", p)
	}
	return SaveStore(s)
}

// --- invoices ---

type invoicesCmd struct {
	on          string
	outstanding bool
}

func (*invoicesCmd) Name() string     { return "invoices" }
func (*invoicesCmd) Synopsis() string { return "list invoices and what is still due" }
func (*invoicesCmd) Usage() string {
	return `acc invoices [-d <date>] [-outstanding]
`
}

func (c *invoicesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "d", "", "Date of the outstanding amounts (defaults to today)")
	f.BoolVar(&c.outstanding, "outstanding", false, "Only list invoices not fully paid")
}

func (c *invoicesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseOn(c.on)
	if err != nil {
		return fail("%v", err)
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	printMarkdown(renderer.RenderInvoiceList(renderer.NewInvoiceList(s, on, c.outstanding)))
	return subcommands.ExitSuccess
}

// --- invoice-validate ---

type invoiceValidateCmd struct{}

func (*invoiceValidateCmd) Name() string     { return "invoice-validate" }
func (*invoiceValidateCmd) Synopsis() string { return "check that invoices are paid" }
func (*invoiceValidateCmd) Usage() string {
	return `acc invoice-validate [<invoice>...]

  Checks that the payments of the invoices are payments to their supplier
  and that nothing is left to pay. All invoices are checked by default.
`
}

func (*invoiceValidateCmd) SetFlags(f *flag.FlagSet) {}

func (*invoiceValidateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	ids, err := resolveAll(s, f.Args(), s.InvoiceIDs(), accounts.KindInvoice)
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

package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/accounts"
)

// Validation gathers the problems of accounts and invoices.
type Validation struct {
	Accounts []AccountProblems `json:"accounts"`
	Invoices []InvoiceProblems `json:"invoices"`
}

// AccountProblems are the balance mismatches of an account.
type AccountProblems struct {
	ID         accounts.ID                `json:"id"`
	Name       string                     `json:"name"`
	Mismatches []accounts.BalanceMismatch `json:"mismatches"`
}

// InvoiceProblems are the problems of an invoice.
type InvoiceProblems struct {
	ID       accounts.ID `json:"id"`
	Reason   string      `json:"reason"`
	Problems []string    `json:"problems"`
}

// NewValidation validates the accounts and invoices among ids. Other
// records are ignored.
func NewValidation(s *accounts.Store, ids ...accounts.ID) *Validation {
	v := &Validation{}
	for _, id := range ids {
		rec, ok := s.Get(id)
		if !ok {
			continue
		}
		switch r := rec.(type) {
		case *accounts.Account:
			if m := r.Validate(s); len(m) > 0 {
				v.Accounts = append(v.Accounts, AccountProblems{ID: id, Name: r.Name, Mismatches: m})
			}
		case *accounts.Invoice:
			if p := r.Validate(s); len(p) > 0 {
				v.Invoices = append(v.Invoices, InvoiceProblems{ID: id, Reason: r.Reason, Problems: p})
			}
		}
	}
	return v
}

// OK reports whether no problem was found.
func (v *Validation) OK() bool { return len(v.Accounts) == 0 && len(v.Invoices) == 0 }

// ValidationMarkdown renders the validation report.
func ValidationMarkdown(v *Validation) string {
	r := &validationRenderer{Builder: &strings.Builder{}}
	r.Printf("# Validation\n\n")
	if v.OK() {
		r.Printf("No problem found.\n")
		return r.String()
	}
	ConditionalBlock(r, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Accounts\n\n")
		for _, a := range v.Accounts {
			fmt.Fprintf(w, "### %s (%v)\n\n", cell(a.Name), a.ID)
			fmt.Fprintln(w, "| Transaction | Date | Expected | Balance |")
			fmt.Fprintln(w, "|---:|:---|---:|---:|")
			for _, m := range a.Mismatches {
				fmt.Fprintf(w, "| %v | %v | %v | %v |\n", m.Transaction, m.Date, m.Expected, m.Balance)
			}
			fmt.Fprintln(w)
		}
		return len(v.Accounts) > 0
	})
	ConditionalBlock(r, func(w io.Writer) bool {
		fmt.Fprintf(w, "## Invoices\n\n")
		for _, inv := range v.Invoices {
			fmt.Fprintf(w, "### %s (%v)\n\n", cell(inv.Reason), inv.ID)
			for _, p := range inv.Problems {
				fmt.Fprintf(w, "- %s\n", p)
			}
			fmt.Fprintln(w)
		}
		return len(v.Invoices) > 0
	})
	return r.String()
}

// validationRenderer formats the validation report into a markdown string.
type validationRenderer struct {
	*strings.Builder
}

// Printf formats according to a format specifier and writes to the renderer's buffer.
func (r *validationRenderer) Printf(format string, args ...any) {
	fmt.Fprintf(r, format, args...)
}

// Package renderer turns the records of an accounts store into Markdown
// reports.
//
// Each report is a plain struct, built from the store by a New function, and
// rendered by a text/template embedded in the package.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// StatementRenderOptions holds configuration for rendering a statement.
type StatementRenderOptions struct {
	SkipSummary bool // Do not render the opening and closing balances.
}

// RenderAccountList renders the AccountList struct to a markdown string.
func RenderAccountList(l *AccountList) string {
	return renderTemplate("accounts", "accounts.md", nil, l)
}

// RenderStatement renders the Statement struct to a markdown string.
func RenderStatement(st *Statement, opts StatementRenderOptions) string {
	partials := map[string]string{
		"statement_lines":   "statement_lines.md",
		"statement_summary": "statement_summary.md",
	}
	// An empty file name results in an empty template.
	if opts.SkipSummary {
		partials["statement_summary"] = ""
	}
	return renderTemplate("statement", "statement.md", partials, st)
}

// RenderFundList renders the FundList struct to a markdown string.
func RenderFundList(l *FundList) string {
	return renderTemplate("funds", "funds.md", nil, l)
}

// RenderFundStatement renders the FundStatement struct to a markdown string.
func RenderFundStatement(st *FundStatement) string {
	return renderTemplate("fundStatement", "fund_statement.md", nil, st)
}

// RenderPartyList renders the PartyList struct to a markdown string.
func RenderPartyList(l *PartyList) string {
	return renderTemplate("parties", "parties.md", nil, l)
}

// RenderInvoiceList renders the InvoiceList struct to a markdown string.
func RenderInvoiceList(l *InvoiceList) string {
	return renderTemplate("invoices", "invoices.md", nil, l)
}

// RenderRecordList renders the RecordList struct to a markdown string.
func RenderRecordList(l *RecordList) string {
	return renderTemplate("records", "records.md", nil, l)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		if file != "" {
			content, err = fs.ReadFile(templates, file)
			if err != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, err)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}

package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/accounts"
)

// Summary renders a record to a one line string.
func Summary(s *accounts.Store, rec accounts.Record) string {
	switch v := rec.(type) {
	case *accounts.Account:
		return strings.TrimSpace(fmt.Sprintf("%s %s %s", v.Org, v.Name, desc(v.Desc)))
	case *accounts.Fund:
		if v.Description == "" {
			return v.Name
		}
		return fmt.Sprintf("%s (%s)", v.Name, v.Description)
	case *accounts.RelatedParty:
		if v.Type == accounts.PartyUnknown {
			return v.Name
		}
		return fmt.Sprintf("%s, %s", v.Name, v.Type)
	case *accounts.BankTransaction:
		str := fmt.Sprintf("%s %s", v.Description, v.Delta())
		switch {
		case v.RelatedParty.IsNone():
		case v.Delta().IsNegative():
			str += " to " + name(s, v.RelatedParty)
		default:
			str += " from " + name(s, v.RelatedParty)
		}
		return str
	case *accounts.Transaction:
		typ := string(v.Type)
		if typ == "" {
			typ = "transaction"
		}
		return fmt.Sprintf("%s of %s from %s to %s", typ, v.Amount, name(s, v.Debit), name(s, v.Credit))
	case *accounts.Invoice:
		return fmt.Sprintf("%s from %s, %s", v.Reason, name(s, v.SupplierID), v.Amount)
	default:
		return string(rec.Kind())
	}
}

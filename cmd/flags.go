package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/date"
)

// listFlag is a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// rangeFlags select a range of dates, either a calendar period or explicit
// bounds.
type rangeFlags struct {
	period string
	on     string
	from   string
	to     string
}

func (r *rangeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.period, "p", "", "Calendar period (day, week, month, quarter, year) containing the -d date")
	f.StringVar(&r.on, "d", date.Today().String(), "Date within the period")
	f.StringVar(&r.from, "from", "", "First date of the range. Overrides -p.")
	f.StringVar(&r.to, "to", "", "Last date of the range, included. Alone, every date up to it.")
}

// Range returns the selected range, empty when nothing is selected.
func (r *rangeFlags) Range() (date.Range, error) {
	switch {
	case r.from != "":
		from, err := date.Parse(r.from)
		if err != nil {
			return date.Range{}, err
		}
		var to date.Date
		if r.to != "" {
			if to, err = date.Parse(r.to); err != nil {
				return date.Range{}, err
			}
		}
		if !to.IsZero() && to.Before(from) {
			return date.Range{}, fmt.Errorf("range ends on %v before it starts on %v", to, from)
		}
		return date.Between(from, to), nil
	case r.to != "":
		to, err := date.Parse(r.to)
		if err != nil {
			return date.Range{}, err
		}
		return date.Until(to), nil
	case r.period != "":
		period, err := date.ParsePeriod(r.period)
		if err != nil {
			return date.Range{}, err
		}
		on, err := date.Parse(r.on)
		if err != nil {
			return date.Range{}, err
		}
		return period.Range(on), nil
	}
	return date.Range{}, nil
}

// parseOn parses the date of a report.
func parseOn(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}

// resolve finds a record of one of the kinds from its ID ("12" or "#12"),
// or from its natural key: an account name or number, a fund or party name
// or alias, an invoice reason.
func resolve(s *accounts.Store, text string, kinds ...accounts.Kind) (accounts.ID, error) {
	if id, err := accounts.ParseID(text); err == nil && !id.IsNone() {
		rec, ok := s.Get(id)
		if !ok {
			return accounts.None, fmt.Errorf("no record with id %v: %w", id, accounts.ErrNotFound)
		}
		for _, k := range kinds {
			if rec.Kind() == k {
				return id, nil
			}
		}
		return accounts.None, fmt.Errorf("record %v is a %s, want %v: %w", id, rec.Kind(), kinds, accounts.ErrWrongKind)
	}
	for _, k := range kinds {
		var id accounts.ID
		var err error
		switch k {
		case accounts.KindAccount:
			id, err = s.AccountByName(text)
			if err != nil {
				if d, derr := accounts.ParseAccountDesc(text); derr == nil && !d.IsZero() {
					id, err = s.AccountByDesc(d)
				}
			}
		case accounts.KindFund:
			id, err = s.FundByName(text)
		case accounts.KindRelatedParty:
			id, err = s.RelatedPartyByName(text)
		case accounts.KindInvoice:
			id, err = s.InvoiceByReason(text)
		default:
			continue
		}
		if err == nil {
			return id, nil
		}
	}
	return accounts.None, fmt.Errorf("no %v named %q: %w", kinds, text, accounts.ErrNotFound)
}

// resolveAll resolves every argument, or returns all the IDs when there is none.
func resolveAll(s *accounts.Store, args []string, all []accounts.ID, kind accounts.Kind) ([]accounts.ID, error) {
	if len(args) == 0 {
		return all, nil
	}
	ids := make([]accounts.ID, 0, len(args))
	for _, arg := range args {
		id, err := resolve(s, arg, kind)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

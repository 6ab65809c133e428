package date

import (
	"fmt"
	"strings"
)

// Period is a standard calendar period used to build ranges of dates.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

var periodNames = [...]string{"daily", "weekly", "monthly", "quarterly", "yearly"}

// periodAliases are the short names accepted on the command line.
var periodAliases = map[string]Period{
	"day":     Daily,
	"week":    Weekly,
	"month":   Monthly,
	"quarter": Quarterly,
	"year":    Yearly,
}

func (p Period) String() string {
	if p < 0 || int(p) >= len(periodNames) {
		panic(fmt.Sprintf("unknown period %d", p))
	}
	return periodNames[p]
}

// Range returns the range of this period that contains d.
func (p Period) Range(d Date) Range { return NewRange(d, p) }

// ParsePeriod parses a period name, both "monthly" and "month" forms are accepted.
func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(p)
	for i, name := range periodNames {
		if p == name {
			return Period(i), nil
		}
	}
	if period, ok := periodAliases[p]; ok {
		return period, nil
	}
	return Daily, fmt.Errorf("unknown period %s", p)
}

package date

import (
	"fmt"
	"time"
)

// Range represents the half-open range of dates [From, To).
//
// A Range whose From is zero, or whose To is not after From, is empty.
type Range struct{ From, To Date }

// NewRange return a well known period
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period).Add(1)}
}

// Between returns the range from 'from' up to and including 'last'.
//
// A zero 'last' means the single day 'from'.
func Between(from, last Date) Range {
	if last.IsZero() {
		last = from
	}
	return Range{From: from, To: last.Add(1)}
}

// Until returns the range of every date up to and including 'last'.
//
// A zero From would make the range empty, it starts on January 1st of year 1.
func Until(last Date) Range {
	return Range{From: New(1, time.January, 1), To: last.Add(1)}
}

// IsEmpty reports whether the range contains no date at all.
func (r Range) IsEmpty() bool { return r.From.IsZero() || !r.To.After(r.From) }

// Days returns the number of days in the range.
func (r Range) Days() int {
	if r.IsEmpty() {
		return 0
	}
	return r.To.DaysSince(r.From)
}

// Last returns the last date included in the range.
func (r Range) Last() Date { return r.To.Add(-1) }

// Contains return true if date is included in the range (From included, To excluded).
func (r Range) Contains(date Date) bool {
	if r.IsEmpty() || date.IsZero() {
		return false
	}
	return !date.Before(r.From) && date.Before(r.To)
}

// return the period of this range if it's a standard one.
func (r Range) Period() (p Period, ok bool) {
	last := r.Last()
	switch {
	case r.IsEmpty():
		return Daily, false
	case r.From == last:
		return Daily, true
	case r.From.StartOf(Weekly) == r.From && r.From.EndOf(Weekly) == last:
		return Weekly, true
	case r.From.StartOf(Monthly) == r.From && r.From.EndOf(Monthly) == last:
		return Monthly, true
	case r.From.StartOf(Quarterly) == r.From && r.From.EndOf(Quarterly) == last:
		return Quarterly, true
	case r.From.StartOf(Yearly) == r.From && r.From.EndOf(Yearly) == last:
		return Yearly, true
	default:
		return Daily, false
	}
}

// Name the period range
func (r Range) Name() string {
	p, ok := r.Period()
	if ok {
		return p.String()
	}
	return "special"
}

// Identifier compute a unique identifier for the Range.
// If the period is defined, use a short insighful name
func (r Range) Identifier() string {
	p, ok := r.Period()
	if !ok {
		return fmt.Sprintf("%s_%s", r.From, r.Last())
	}

	switch p {
	case Daily:
		return r.From.String()
	case Weekly:
		_, week := r.From.ISOWeek()
		return fmt.Sprintf("%d-W%02d", r.From.Year(), week)
	case Monthly:
		return r.From.Format("2006-01")
	case Quarterly:
		return fmt.Sprintf("%d-Q%d", r.From.Year(), (r.From.Month()-1)/3+1)
	case Yearly:
		return r.From.Format("2006")
	default:
		panic("unknown period")
	}
}

// String formats the range for humans.
func (r Range) String() string {
	if r.IsEmpty() {
		return "<no dates>"
	}
	return fmt.Sprintf("%s to %s", r.From, r.Last())
}

package date

import (
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	testCases := []struct {
		name   string
		in     Date
		period Period
		want   Range
	}{
		{"Single Day", New(2025, time.September, 8), Daily, Range{New(2025, time.September, 8), New(2025, time.September, 9)}},
		{"A Wednesday", New(2025, time.September, 10), Weekly, Range{New(2025, time.September, 8), New(2025, time.September, 15)}},
		{"Mid Month", New(2025, time.February, 14), Monthly, Range{New(2025, time.February, 1), New(2025, time.March, 1)}},
		{"Leap Month", New(2024, time.February, 29), Monthly, Range{New(2024, time.February, 1), New(2024, time.March, 1)}},
		{"Third Quarter", New(2025, time.August, 3), Quarterly, Range{New(2025, time.July, 1), New(2025, time.October, 1)}},
		{"Year", New(2025, time.December, 31), Yearly, Range{New(2025, time.January, 1), New(2026, time.January, 1)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewRange(tc.in, tc.period); got != tc.want {
				t.Errorf("NewRange(%v, %v) = %v, want %v", tc.in, tc.period, got, tc.want)
			}
		})
	}
}

func TestRange_Contains(t *testing.T) {
	r := Range{From: New(2025, time.March, 10), To: New(2025, time.March, 20)}
	testCases := []struct {
		in   Date
		want bool
	}{
		{New(2025, time.March, 9), false},
		{New(2025, time.March, 10), true},
		{New(2025, time.March, 19), true},
		{New(2025, time.March, 20), false}, // half-open
		{Date{}, false},
	}
	for _, tc := range testCases {
		if got := r.Contains(tc.in); got != tc.want {
			t.Errorf("Contains(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if (Range{}).Contains(New(2025, time.March, 12)) {
		t.Errorf("empty range must not contain anything")
	}
	if got := r.Days(); got != 10 {
		t.Errorf("Days() = %v, want 10", got)
	}
}

func TestBetween(t *testing.T) {
	d := New(2025, time.May, 4)
	if got, want := Between(d, Date{}), NewRange(d, Daily); got != want {
		t.Errorf("Between(d, zero) = %v, want %v", got, want)
	}
	if got := Between(d, d.Add(-1)); !got.IsEmpty() {
		t.Errorf("Between(d, d-1) = %v, want empty", got)
	}
}

func TestRange_Name(t *testing.T) {
	testCases := []struct {
		name string
		in   Range
		want string
	}{
		{"Single Day", NewRange(New(2025, time.September, 8), Daily), "daily"},
		{"Standard Week", NewRange(New(2025, time.September, 8), Weekly), "weekly"},
		{"Standard Month", NewRange(New(2025, time.September, 1), Monthly), "monthly"},
		{"Standard Quarter", NewRange(New(2025, time.July, 1), Quarterly), "quarterly"},
		{"Standard Year", NewRange(New(2025, time.January, 1), Yearly), "yearly"},
		{"Non-Standard Range", Between(New(2025, time.September, 2), New(2025, time.September, 10)), "special"},
		{"Multi Year", Between(New(2025, time.January, 1), New(2026, time.December, 31)), "special"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Name(); got != tc.want {
				t.Errorf("Name() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRange_Identifier(t *testing.T) {
	testCases := []struct {
		name string
		in   Range
		want string
	}{
		{"Daily Identifier", NewRange(New(2025, time.September, 8), Daily), "2025-09-08"},
		{"Weekly Identifier", NewRange(New(2025, time.September, 8), Weekly), "2025-W37"},
		{"Monthly Identifier", NewRange(New(2025, time.September, 1), Monthly), "2025-09"},
		{"Quarterly Identifier", NewRange(New(2025, time.July, 1), Quarterly), "2025-Q3"},
		{"Yearly Identifier", NewRange(New(2025, time.January, 1), Yearly), "2025"},
		{"Custom Range Identifier", Between(New(2025, time.September, 2), New(2025, time.September, 10)), "2025-09-02_2025-09-10"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.Identifier(); got != tc.want {
				t.Errorf("Identifier() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"daily", Daily, false},
		{"Weekly", Weekly, false},
		{"month", Monthly, false},
		{"quarter", Quarterly, false},
		{"year", Yearly, false},
		{"fortnight", Daily, true},
	}

	for _, tc := range testCases {
		got, err := ParsePeriod(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePeriod(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestUntil(t *testing.T) {
	last := New(2025, time.March, 20)
	r := Until(last)
	if r.IsEmpty() {
		t.Fatalf("Until(%v) is empty", last)
	}
	for _, d := range []Date{New(1999, time.December, 31), New(2025, time.March, 1), last} {
		if !r.Contains(d) {
			t.Errorf("Until(%v).Contains(%v) = false, want true", last, d)
		}
	}
	if r.Contains(last.Add(1)) {
		t.Errorf("Until(%v).Contains(%v) = true, want false", last, last.Add(1))
	}
	if got := r.Last(); got != last {
		t.Errorf("Until(%v).Last() = %v", last, got)
	}
	if !(Range{To: last}).IsEmpty() {
		t.Errorf("a range with a zero From must be empty")
	}
}

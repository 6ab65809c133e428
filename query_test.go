package accounts

import (
	"slices"
	"testing"

	"github.com/etnz/accounts/date"
)

func TestQuery(t *testing.T) {
	f := newFixture(t)
	testCases := []struct {
		name  string
		query Query
		want  []ID
	}{
		{"kind", Query{Kind: KindRelatedParty}, []ID{f.john, f.kate, f.water}},
		{"name prefix", Query{Name: "Water"}, []ID{f.water, f.invoice}},
		{"name alias", Query{Kind: KindFund, Name: "Bui"}, []ID{f.building}},
		{"name regexp", Query{Name: "^[JK].* Smith$"}, []ID{f.john, f.kate}},
		{"party type", Query{PartyType: PartySupplier}, []ID{f.water}},
		{"description prefix", Query{Kind: KindBankTransaction, Desc: "SMITH"}, []ID{f.bank2}},
		{"description regexp", Query{Desc: "DD$"}, []ID{f.bank3}},
		{"date range", Query{Range: date.Between(aug(29), aug(31))}, []ID{f.bank3, f.payment}},
		{"references", Query{Ref: f.water}, []ID{f.water, f.bank3, f.payment, f.invoice}},
		{"references of a kind", Query{Kind: KindTransaction, Ref: f.general}, []ID{f.payment}},
		{"no match", Query{Name: "Nobody"}, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := slices.Collect(f.s.Query(tc.query))
			if !slices.Equal(got, tc.want) {
				t.Errorf("Query(%v) = %v want %v", tc.query, got, tc.want)
			}
		})
	}
	if n := len(slices.Collect(f.s.Query(Query{}))); n != f.s.Len() {
		t.Errorf("Query(all) returned %d records want %d", n, f.s.Len())
	}
}

func TestQuery_InvalidRegexpIsAPrefix(t *testing.T) {
	f := newFixture(t)
	f.s.AddFund(NewFund("[General", ""))
	got := slices.Collect(f.s.Query(Query{Name: "[Gen"}))
	if len(got) != 1 {
		t.Errorf("Query([Gen) = %v want the [General fund", got)
	}
}

func TestQuery_String(t *testing.T) {
	q := Query{Kind: KindFund, Name: "Gen"}
	if got, want := q.String(), "kind=fund name=Gen"; got != want {
		t.Errorf("String() = %q want %q", got, want)
	}
	if got := (Query{}).String(); got != "all" {
		t.Errorf("String() = %q want all", got)
	}
}

package accounts

import (
	"fmt"
	"iter"
	"regexp"
	"slices"
	"strings"

	"github.com/etnz/accounts/date"
)

// Query selects records. The zero Query selects every record, each field
// set narrows the selection.
type Query struct {
	Kind Kind // record kind

	// Ref selects the record Ref and the records referring to it.
	Ref ID

	// Name is a prefix of one of the record's names, or a regular expression
	// if it contains any of "*?$^[]".
	Name string

	// Desc is a prefix of the record's description, or a regular expression
	// like Name.
	Desc string

	PartyType PartyType // related parties only
	Range     date.Range
}

func (q Query) String() string {
	var parts []string
	add := func(name string, v any) { parts = append(parts, fmt.Sprintf("%s=%v", name, v)) }
	if q.Kind != "" {
		add("kind", q.Kind)
	}
	if !q.Ref.IsNone() {
		add("ref", q.Ref)
	}
	if q.Name != "" {
		add("name", q.Name)
	}
	if q.Desc != "" {
		add("desc", q.Desc)
	}
	if q.PartyType != PartyUnknown {
		add("type", q.PartyType)
	}
	if !q.Range.IsEmpty() {
		add("dates", q.Range)
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " ")
}

// textMatcher matches a prefix or a regular expression.
type textMatcher func(string) bool

func newTextMatcher(pattern string) textMatcher {
	if pattern == "" {
		return nil
	}
	if strings.ContainsAny(pattern, "*?$^[]") {
		if re, err := regexp.Compile(pattern); err == nil {
			return re.MatchString
		}
	}
	return func(s string) bool { return strings.HasPrefix(s, pattern) }
}

// matchesAny returns true if m is not set or matches one of the texts.
func (m textMatcher) matchesAny(texts ...string) bool {
	return m == nil || slices.ContainsFunc(texts, (func(string) bool)(m))
}

// fields returns the query-able fields of a record.
func fields(rec Record) (names, descs []string, on date.Date, refs []ID) {
	switch r := rec.(type) {
	case *Account:
		return []string{r.Name, r.Org}, []string{r.Desc.String()}, date.Date{}, nil
	case *Fund:
		return r.names(), []string{r.Description}, date.Date{}, nil
	case *RelatedParty:
		return r.names(), r.Descriptors, date.Date{}, nil
	case *BankTransaction:
		return nil, []string{r.Description}, r.Date, []ID{r.AccountID, r.RelatedParty}
	case *Transaction:
		return nil, []string{r.Description}, r.Date, []ID{r.Debit, r.Credit, r.BankTransaction}
	case *Invoice:
		return []string{r.Reason}, []string{r.Filename}, date.Date{}, []ID{r.SupplierID}
	}
	return nil, nil, date.Date{}, nil
}

// Matcher returns the predicate of the query, for Arena.Matching.
func (q Query) Matcher() func(ID, Record) bool {
	name, desc := newTextMatcher(q.Name), newTextMatcher(q.Desc)
	return func(id ID, rec Record) bool {
		if q.Kind != "" && rec.Kind() != q.Kind {
			return false
		}
		if q.PartyType != PartyUnknown {
			if p, ok := rec.(*RelatedParty); !ok || p.Type != q.PartyType {
				return false
			}
		}
		names, descs, on, refs := fields(rec)
		if !q.Ref.IsNone() && id != q.Ref && !slices.Contains(refs, q.Ref) {
			return false
		}
		if !q.Range.IsEmpty() && !q.Range.Contains(on) {
			return false
		}
		return name.matchesAny(names...) && desc.matchesAny(descs...)
	}
}

// Query returns the IDs of the records selected by q, in ascending order.
func (s *Store) Query(q Query) iter.Seq[ID] {
	return s.arena.Matching(q.Matcher())
}

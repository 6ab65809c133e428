package accounts

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// jsonl encodes items, failing the test on error.
func jsonl(t *testing.T, items []Item) string {
	t.Helper()
	var buf bytes.Buffer
	if err := EncodeJSONL(&buf, items); err != nil {
		t.Fatalf("EncodeJSONL() error = %v", err)
	}
	return buf.String()
}

func TestLoad_RoundTrip(t *testing.T) {
	f := newFixture(t)
	want := jsonl(t, f.s.Serialize())

	s, err := Load(f.s.Serialize())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(want, jsonl(t, s.Serialize())); diff != "" {
		t.Errorf("Load(Serialize()) mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Remaps(t *testing.T) {
	account := NewAccount("", "Current", current)
	account.Transactions.Insert(aug(28), 20)
	items := []Item{
		{ID: 30, Record: account},
		{ID: 10, Record: &RelatedParty{Name: "John Smith"}},
		{ID: 20, Record: &BankTransaction{Date: aug(28), AccountID: 30, AccountDesc: current, RelatedParty: 10, Balance: gbp("1")}},
	}
	s, err := Load(items)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	a, err := s.Account(1)
	if err != nil {
		t.Fatalf("Account(1) error = %v", err)
	}
	if got := a.Transactions.OfDate(aug(28)); len(got) != 1 || got[0] != 3 {
		t.Errorf("account transactions = %v want [3]", got)
	}
	tx, err := s.BankTransaction(3)
	if err != nil {
		t.Fatalf("BankTransaction(3) error = %v", err)
	}
	if tx.AccountID != 1 || tx.RelatedParty != 2 {
		t.Errorf("bank transaction refers to %v and %v want 1 and 2", tx.AccountID, tx.RelatedParty)
	}
	if id, _ := s.AccountByDesc(current); id != 1 {
		t.Errorf("AccountByDesc() = %v want 1", id)
	}
}

func TestLoad_DuplicateSourceKey(t *testing.T) {
	items := []Item{
		{ID: 7, Record: NewFund("A", "")},
		{ID: 3, Record: NewFund("B", "")},
		{ID: 3, Record: NewFund("C", "")},
	}
	s, err := Load(items)
	var dup *DuplicateSourceKeyError
	if !errors.As(err, &dup) || dup.ID != 3 {
		t.Fatalf("Load() error = %v want a duplicate of id 3", err)
	}
	if !errors.Is(err, ErrDuplicateSourceKey) {
		t.Errorf("Load() error = %v does not wrap %v", err, ErrDuplicateSourceKey)
	}
	if s != nil {
		t.Errorf("Load() returned a store on error")
	}
}

func TestLoad_UnresolvedReference(t *testing.T) {
	items := []Item{
		{ID: 1, Record: NewAccount("", "Current", current)},
		{ID: 2, Record: &BankTransaction{Date: aug(1), AccountID: 99}},
	}
	s, err := Load(items)
	var unresolved *UnresolvedReferenceError
	if !errors.As(err, &unresolved) {
		t.Fatalf("Load() error = %v want an unresolved reference", err)
	}
	if unresolved.ID != 99 || unresolved.Reason != "bank transaction account" {
		t.Errorf("UnresolvedReferenceError = %+v want id 99 for the bank transaction account", unresolved)
	}
	if s != nil {
		t.Errorf("Load() returned a store on error")
	}

	fund := NewFund("General", "")
	fund.Transactions.Insert(aug(1), 42)
	if _, err := Load([]Item{{ID: 1, Record: fund}}); !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("Load() of a fund with a dangling transaction error = %v want %v", err, ErrUnresolvedReference)
	}
}

func TestLoad_DuplicateKey(t *testing.T) {
	items := []Item{
		{ID: 1, Record: NewFund("General", "")},
		{ID: 2, Record: NewFund("General", "")},
	}
	if _, err := Load(items); !errors.Is(err, ErrDuplicate) {
		t.Errorf("Load() of two funds with the same name error = %v want %v", err, ErrDuplicate)
	}
}

func TestLoad_NoneStaysNone(t *testing.T) {
	items := []Item{
		{ID: 5, Record: &Transaction{Date: aug(1), Amount: gbp("1")}},
	}
	s, err := Load(items)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	tx, _ := s.Transaction(1)
	if !tx.Debit.IsNone() || !tx.Credit.IsNone() || !tx.BankTransaction.IsNone() {
		t.Errorf("Load() resolved absent references to %v %v %v", tx.Debit, tx.Credit, tx.BankTransaction)
	}
}

func TestLoad_Deterministic(t *testing.T) {
	f := newFixture(t)
	data := jsonl(t, f.s.Serialize())
	var got []string
	for range 2 {
		items, err := DecodeJSONL(bytes.NewBufferString(data))
		if err != nil {
			t.Fatalf("DecodeJSONL() error = %v", err)
		}
		// shift every source ID, keeping the order.
		for i := range items {
			items[i].ID += 100
		}
		s, err := Load(offset(t, items))
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		got = append(got, jsonl(t, s.Serialize()))
	}
	if got[0] != got[1] || got[0] != data {
		t.Errorf("Load() is not deterministic:\n%s\n%s", got[0], got[1])
	}
}

// offset rewrites the references of items shifted by 100, through the
// rebuild machinery itself.
func offset(t *testing.T, items []Item) []Item {
	t.Helper()
	shift := func(_ string, old ID) (ID, error) {
		if old.IsNone() {
			return None, nil
		}
		return old + 100, nil
	}
	for _, it := range items {
		if err := it.Record.rebuild(shift); err != nil {
			t.Fatalf("rebuild() error = %v", err)
		}
	}
	return items
}

func TestSerialize_IsACopy(t *testing.T) {
	f := newFixture(t)
	items := f.s.Serialize()
	items[0].Record.(*Account).Name = "Changed"
	a, _ := f.s.Account(f.account)
	if a.Name != "Current" {
		t.Errorf("changing a serialized record changed the store")
	}
}

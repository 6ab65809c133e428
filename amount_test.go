package accounts

import (
	"encoding/json"
	"testing"
)

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		input    string
		want     string
		currency string
		wantErr  bool
	}{
		{"20.00", "£20.00", "GBP", false},
		{"-1,234.5", "-£1,234.50", "GBP", false},
		{"£12.30", "£12.30", "GBP", false},
		{"", "£0.00", "GBP", false},
		{"12.30 EUR", "12,30 €", "EUR", false},
		{"12.30 XYZ", "", "", true},
		{"twelve", "", "", true},
	}
	for _, tc := range testCases {
		got, err := ParseAmount(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseAmount(%q) error = %v want error %v", tc.input, err, tc.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if got.Currency() != tc.currency {
			t.Errorf("ParseAmount(%q).Currency() = %q want %q", tc.input, got.Currency(), tc.currency)
		}
		if tc.currency == "GBP" && got.String() != tc.want {
			t.Errorf("ParseAmount(%q).String() = %q want %q", tc.input, got.String(), tc.want)
		}
	}
}

func TestAmount_Arithmetic(t *testing.T) {
	if got := Pence(1050).Add(gbp("0.50")); !got.Equal(gbp("11")) {
		t.Errorf("Add() = %v want £11.00", got)
	}
	if got := gbp("5").Sub(gbp("7.25")); !got.Equal(gbp("-2.25")) || !got.IsNegative() {
		t.Errorf("Sub() = %v want -£2.25", got)
	}
	if gbp("1").Equal(MustParseAmount("1 EUR")) {
		t.Errorf("Equal() across currencies must be false")
	}
}

func TestAmount_JSON(t *testing.T) {
	type row struct {
		A Amount `json:"a"`
	}
	testCases := []struct {
		amount Amount
		want   string
	}{
		{gbp("12.30"), `{"a":12.3}`},
		{Amount{}, `{"a":0}`},
		{MustParseAmount("7 EUR"), `{"a":"7 EUR"}`},
	}
	for _, tc := range testCases {
		data, err := json.Marshal(row{tc.amount})
		if err != nil {
			t.Fatalf("json.Marshal() error = %v", err)
		}
		if string(data) != tc.want {
			t.Errorf("json.Marshal(%v) = %s want %s", tc.amount, data, tc.want)
		}
		var back row
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("json.Unmarshal() error = %v", err)
		}
		if !back.A.Equal(tc.amount) {
			t.Errorf("json round trip = %v want %v", back.A, tc.amount)
		}
	}
}

func TestAccountDesc(t *testing.T) {
	d, err := ParseUK("309174", 2344812)
	if err != nil {
		t.Fatalf("ParseUK() error = %v", err)
	}
	if got := d.String(); got != "30-91-74:02344812" {
		t.Errorf("String() = %q want 30-91-74:02344812", got)
	}
	back, err := ParseAccountDesc(d.String())
	if err != nil || back != d {
		t.Errorf("ParseAccountDesc(%q) = %v, %v want %v", d, back, err, d)
	}
	for _, bad := range []string{"30-91-7:1", "30-91-74", "30-91-74:abc"} {
		if _, err := ParseAccountDesc(bad); err == nil {
			t.Errorf("ParseAccountDesc(%q) want an error", bad)
		}
	}
	if zero, err := ParseAccountDesc(""); err != nil || !zero.IsZero() {
		t.Errorf("ParseAccountDesc(\"\") = %v, %v want the zero description", zero, err)
	}
}

func TestSameCurrency(t *testing.T) {
	testCases := []struct {
		amounts []Amount
		want    bool
	}{
		{nil, true},
		{[]Amount{gbp("1"), MustParseAmount("2 GBP")}, true},
		{[]Amount{{}, MustParseAmount("2 EUR")}, true},
		{[]Amount{gbp("1"), MustParseAmount("2 EUR")}, false},
		{[]Amount{MustParseAmount("0 EUR"), gbp("0.01")}, false},
	}
	for _, tc := range testCases {
		if got := SameCurrency(tc.amounts...); got != tc.want {
			t.Errorf("SameCurrency(%v) = %v want %v", tc.amounts, got, tc.want)
		}
	}
}

func TestAmount_CurrencyArithmetic(t *testing.T) {
	if got := (Amount{}).Add(MustParseAmount("3 EUR")); got.Currency() != "EUR" {
		t.Errorf("zero + 3 EUR is in %s want EUR", got.Currency())
	}
	if got := gbp("3").Sub(MustParseAmount("1 GBP")); !got.Equal(gbp("2")) {
		t.Errorf("£3 - 1 GBP = %v want £2.00", got)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("40 EUR - £40 did not panic")
		}
	}()
	MustParseAmount("40 EUR").Sub(gbp("40"))
}

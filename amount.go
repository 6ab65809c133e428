package accounts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultCurrency is the currency of an Amount that does not name one.
var DefaultCurrency = money.GBP

// Amount is a monetary value in major units (pounds, not pence).
//
// Its zero value is zero in the default currency.
type Amount struct {
	value decimal.Decimal
	cur   string // "" means DefaultCurrency
}

// NewAmount returns an amount of value in the default currency.
func NewAmount(value decimal.Decimal) Amount { return Amount{value: value} }

// Pence returns an amount of minor units in the default currency.
func Pence(n int64) Amount { return Amount{value: decimal.New(n, -2)} }

// ParseAmount parses an amount like "20.00", "-1,234.56", "£12.30" or
// "12.30 EUR". An empty string is a zero amount.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, nil
	}
	var a Amount
	if value, code, ok := strings.Cut(s, " "); ok {
		if money.GetCurrency(strings.ToUpper(code)) == nil {
			return Amount{}, fmt.Errorf("invalid amount %q: unknown currency %q", s, code)
		}
		a.cur, s = strings.ToUpper(code), value
	}
	s = strings.ReplaceAll(s, ",", "")
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "£")
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if neg {
		v = v.Neg()
	}
	a.value = v
	return a, nil
}

// MustParseAmount is like ParseAmount but panics on error.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Currency returns the ISO code of the amount's currency.
func (a Amount) Currency() string {
	if a.cur == "" {
		return DefaultCurrency
	}
	return a.cur
}

// currency returns the full currency, never nil.
func (a Amount) currency() money.Currency {
	return *money.New(0, a.Currency()).Currency()
}

// String formats the amount with its currency symbol, like "£1,234.56".
func (a Amount) String() string {
	cur := a.currency()
	minor := a.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// Decimal returns the value in major units.
func (a Amount) Decimal() decimal.Decimal { return a.value }

func (a Amount) IsZero() bool           { return a.value.IsZero() }
func (a Amount) IsNegative() bool       { return a.value.IsNegative() }
func (a Amount) Equal(b Amount) bool    { return a.value.Equal(b.value) && a.Currency() == b.Currency() }
func (a Amount) Cmp(b Amount) int       { return a.value.Cmp(b.value) }
func (a Amount) Neg() Amount            { return Amount{value: a.value.Neg(), cur: a.cur} }

// Add and Sub panic if a and b are in different currencies, check with
// SameCurrency first when the amounts come from different records.
func (a Amount) Add(b Amount) Amount    { return Amount{value: a.value.Add(b.value), cur: cur(a, b)} }
func (a Amount) Sub(b Amount) Amount    { return Amount{value: a.value.Sub(b.value), cur: cur(a, b)} }
func (a Amount) LessThan(b Amount) bool { return a.value.LessThan(b.value) }

// neutral reports whether a is a zero that names no currency, like the zero
// Amount. It adds to an amount of any currency.
func (a Amount) neutral() bool { return a.cur == "" && a.value.IsZero() }

// SameCurrency reports whether the amounts can be added together: they are
// all in the same currency, neutral zeros aside.
func SameCurrency(amounts ...Amount) bool {
	code := ""
	for _, a := range amounts {
		switch {
		case a.neutral():
		case code == "":
			code = a.Currency()
		case a.Currency() != code:
			return false
		}
	}
	return true
}

func cur(a, b Amount) string {
	switch {
	case a.neutral():
		return b.cur
	case b.neutral(), a.Currency() == b.Currency():
		return a.cur
	}
	panic(fmt.Sprintf("currency mismatch %s != %s", a.Currency(), b.Currency()))
}

// text is the persisted form: the plain decimal in the default currency,
// followed by the code otherwise.
func (a Amount) text() string {
	if a.Currency() == DefaultCurrency {
		return a.value.String()
	}
	return a.value.String() + " " + a.cur
}

// MarshalJSON writes a number in the default currency, a string otherwise.
func (a Amount) MarshalJSON() ([]byte, error) {
	if a.Currency() == DefaultCurrency {
		return []byte(a.value.String()), nil
	}
	return json.Marshal(a.text())
}

// UnmarshalJSON reads a number or a string.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		*a = Amount{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalYAML writes a plain number in the default currency, a string otherwise.
func (a Amount) MarshalYAML() (any, error) {
	if a.Currency() != DefaultCurrency {
		return a.text(), nil
	}
	tag := "!!int"
	if strings.Contains(a.value.String(), ".") {
		tag = "!!float"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: a.value.String()}, nil
}

// UnmarshalYAML reads a number or a string.
func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseAmount(node.Value)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

var (
	_ json.Marshaler   = Amount{}
	_ json.Unmarshaler = (*Amount)(nil)
	_ yaml.Marshaler   = Amount{}
	_ yaml.Unmarshaler = (*Amount)(nil)
)

package accounts

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// AccountDesc identifies a bank account the way the bank does.
//
// The only form supported is a UK sort code with an account number. The zero
// value is the absent description.
type AccountDesc struct {
	SortCode uint32 // six digits, 309174 for 30-91-74
	Number   uint64
}

var sortCodeRE = regexp.MustCompile(`^(\d{2})-?(\d{2})-?(\d{2})$`)

// ParseUK builds a description from a sort code like "30-91-74" or "309174"
// and an account number.
func ParseUK(sortCode string, number uint64) (AccountDesc, error) {
	m := sortCodeRE.FindStringSubmatch(strings.TrimSpace(sortCode))
	if m == nil {
		return AccountDesc{}, fmt.Errorf("invalid sort code %q", sortCode)
	}
	sc, _ := strconv.ParseUint(m[1]+m[2]+m[3], 10, 32)
	return AccountDesc{SortCode: uint32(sc), Number: number}, nil
}

// ParseAccountDesc parses the String form "30-91-74:02344812". An empty
// string is the absent description.
func ParseAccountDesc(s string) (AccountDesc, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "<none>" {
		return AccountDesc{}, nil
	}
	sc, num, ok := strings.Cut(s, ":")
	if !ok {
		return AccountDesc{}, fmt.Errorf("invalid account %q: want sort-code:number", s)
	}
	n, err := strconv.ParseUint(num, 10, 64)
	if err != nil {
		return AccountDesc{}, fmt.Errorf("invalid account number in %q: %w", s, err)
	}
	return ParseUK(sc, n)
}

// IsZero reports whether d is the absent description.
func (d AccountDesc) IsZero() bool { return d == AccountDesc{} }

// String returns "30-91-74:02344812", or "<none>".
func (d AccountDesc) String() string {
	if d.IsZero() {
		return "<none>"
	}
	sc := d.SortCode
	return fmt.Sprintf("%02d-%02d-%02d:%08d", sc/10000%100, sc/100%100, sc%100, d.Number)
}

func (d AccountDesc) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return nil, nil
	}
	return []byte(d.String()), nil
}

func (d *AccountDesc) UnmarshalText(text []byte) error {
	v, err := ParseAccountDesc(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

func (d AccountDesc) MarshalYAML() (any, error) {
	text, _ := d.MarshalText()
	return string(text), nil
}

func (d *AccountDesc) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}

package accounts

import (
	"fmt"
	"slices"
)

// PartyType classifies related parties.
type PartyType string

const (
	PartyUnknown  PartyType = ""
	PartyMember   PartyType = "member"
	PartySupplier PartyType = "supplier"
	PartyCustomer PartyType = "customer"
	PartyBank     PartyType = "bank"
	PartyOther    PartyType = "other"
)

var partyTypes = []PartyType{PartyUnknown, PartyMember, PartySupplier, PartyCustomer, PartyBank, PartyOther}

// ParsePartyType parses a party type name.
func ParsePartyType(s string) (PartyType, error) {
	t := PartyType(s)
	if slices.Contains(partyTypes, t) {
		return t, nil
	}
	return PartyUnknown, fmt.Errorf("unknown party type %q", s)
}

// RelatedParty is somebody the organisation does business with: a member,
// a supplier, a customer.
type RelatedParty struct {
	Name    string    `json:"name" yaml:"name"`
	Type    PartyType `json:"type,omitempty" yaml:"type,omitempty"`
	Aliases []string  `json:"aliases,omitempty" yaml:"aliases,omitempty"`

	// Descriptors are the texts the party appears as in bank transaction
	// descriptions, used to link bank transactions to the party.
	Descriptors []string `json:"descriptors,omitempty" yaml:"descriptors,omitempty"`
}

func NewRelatedParty(name string, typ PartyType) *RelatedParty {
	return &RelatedParty{Name: name, Type: typ}
}

func (p *RelatedParty) Kind() Kind { return KindRelatedParty }

func (p *RelatedParty) rebuild(remapFunc) error { return nil }

func (p *RelatedParty) clone() Record {
	c := *p
	c.Aliases = slices.Clone(p.Aliases)
	c.Descriptors = slices.Clone(p.Descriptors)
	return &c
}

func (p *RelatedParty) names() []string { return append([]string{p.Name}, p.Aliases...) }

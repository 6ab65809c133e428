// Package agent asks a Gemini model for the related party of bank
// transactions whose description could not be linked automatically.
package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const model = "gemini-2.5-flash"

// NewBookkeeper returns the expert that matches bank descriptions to related
// parties. It answers in JSON, see ParseSuggestions.
func NewBookkeeper() *Expert {
	return &Expert{
		Name:        "Bookkeeper",
		Description: `Matches bank statement descriptions to the related parties of a club.`,
		ModelName:   model,
		Config: &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are the bookkeeper of a small club. You are given the list of its related
			parties (members, suppliers, customers) and bank statement descriptions that
			could not be matched to any of them.

			For each description, pick the related party it most likely refers to, and the
			shortest leading part of the description that identifies that party (the
			descriptor). Skip descriptions you are not confident about.

			Answer with a JSON array of objects with the fields "description", "party"
			and "descriptor". Use the party names exactly as given.
		`}}},
		},
	}
}

// Party is a related party as presented to the bookkeeper.
type Party struct {
	Name        string   `json:"name"`
	Type        string   `json:"type,omitempty"`
	Descriptors []string `json:"descriptors,omitempty"`
}

// Suggestion is the bookkeeper's answer for a single description.
type Suggestion struct {
	Description string `json:"description"`
	Party       string `json:"party"`
	Descriptor  string `json:"descriptor"`
}

// Prompt builds the question for the bookkeeper.
func Prompt(parties []Party, descriptions []string) (string, error) {
	p, err := json.MarshalIndent(parties, "", "  ")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Related parties:\n\n%s\n\nDescriptions:\n\n", p)
	for _, d := range descriptions {
		fmt.Fprintf(&b, "- %s\n", d)
	}
	return b.String(), nil
}

// ParseSuggestions reads the bookkeeper's answer.
//
// Suggestions whose descriptor is not a prefix of the description are
// dropped: they could never link it.
func ParseSuggestions(answer string) ([]Suggestion, error) {
	answer = strings.TrimSpace(answer)
	// models sometimes wrap JSON in a fenced block.
	answer = strings.TrimPrefix(answer, "```json")
	answer = strings.TrimPrefix(answer, "```")
	answer = strings.TrimSuffix(answer, "```")

	var all []Suggestion
	if err := json.Unmarshal([]byte(answer), &all); err != nil {
		return nil, fmt.Errorf("invalid suggestions: %w", err)
	}
	valid := all[:0]
	for _, s := range all {
		if s.Party == "" || s.Descriptor == "" || !strings.HasPrefix(s.Description, s.Descriptor) {
			continue
		}
		valid = append(valid, s)
	}
	return valid, nil
}

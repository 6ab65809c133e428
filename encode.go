package accounts

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/etnz/accounts/link"
	"gopkg.in/yaml.v3"
)

// newRecord returns an empty record of a kind.
func newRecord(kind Kind) (Record, error) {
	switch kind {
	case KindAccount:
		return new(Account), nil
	case KindFund:
		return new(Fund), nil
	case KindRelatedParty:
		return new(RelatedParty), nil
	case KindBankTransaction:
		return new(BankTransaction), nil
	case KindTransaction:
		return new(Transaction), nil
	case KindInvoice:
		return new(Invoice), nil
	}
	return nil, fmt.Errorf("unknown record kind %q", kind)
}

// itemHeader is the tag of a persisted item.
type itemHeader struct {
	ID   ID   `json:"id" yaml:"id"`
	Kind Kind `json:"kind" yaml:"kind"`
}

// MarshalJSON writes an item as a single object: "id" and "kind" first, then
// the record's fields.
func (it Item) MarshalJSON() ([]byte, error) {
	if it.Record == nil {
		return nil, fmt.Errorf("item %v has no record", it.ID)
	}
	var w jsonObjectWriter
	w.Append("id", it.ID).Append("kind", it.Record.Kind()).EmbedFrom(it.Record)
	return w.MarshalJSON()
}

// UnmarshalJSON reads the "kind" of the item first, then the matching record.
func (it *Item) UnmarshalJSON(data []byte) error {
	var h itemHeader
	if err := json.Unmarshal(data, &h); err != nil {
		return fmt.Errorf("could not identify item in %q: %w", data, err)
	}
	rec, err := newRecord(h.Kind)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, rec); err != nil {
		return fmt.Errorf("invalid %s %v: %w", h.Kind, h.ID, err)
	}
	*it = Item{ID: h.ID, Record: rec}
	return nil
}

// MarshalYAML writes an item as a single mapping: "id" and "kind" first,
// then the record's fields.
func (it Item) MarshalYAML() (any, error) {
	if it.Record == nil {
		return nil, fmt.Errorf("item %v has no record", it.ID)
	}
	var body yaml.Node
	if err := body.Encode(it.Record); err != nil {
		return nil, err
	}
	head := []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: "id"},
		{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(uint64(it.ID), 10)},
		{Kind: yaml.ScalarNode, Value: "kind"},
		{Kind: yaml.ScalarNode, Value: string(it.Record.Kind())},
	}
	body.Content = append(head, body.Content...)
	return &body, nil
}

// UnmarshalYAML reads the "kind" of the item first, then the matching record.
func (it *Item) UnmarshalYAML(node *yaml.Node) error {
	var h itemHeader
	if err := node.Decode(&h); err != nil {
		return fmt.Errorf("could not identify item at line %d: %w", node.Line, err)
	}
	rec, err := newRecord(h.Kind)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	if err := node.Decode(rec); err != nil {
		return fmt.Errorf("invalid %s %v: %w", h.Kind, h.ID, err)
	}
	*it = Item{ID: h.ID, Record: rec}
	return nil
}

// maxLineSize bounds a JSONL line: an account holds all its transaction IDs.
const maxLineSize = 64 << 20

// EncodeJSONL writes one item per line.
func EncodeJSONL(w io.Writer, items []Item) error {
	for _, it := range items {
		data, err := json.Marshal(it)
		if err != nil {
			return err
		}
		data = append(data, '\n')
		if _, err := w.Write(data); err != nil {
			return err
		}
	}
	return nil
}

// DecodeJSONL reads one item per line. Empty lines are skipped.
func DecodeJSONL(r io.Reader) ([]Item, error) {
	var items []Item
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		var it Item
		if err := json.Unmarshal(data, &it); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, it)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return items, nil
}

// EncodeJSON writes the items as an indented JSON array.
func EncodeJSON(w io.Writer, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}

// DecodeJSON reads a JSON array of items.
func DecodeJSON(r io.Reader) ([]Item, error) {
	var items []Item
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, err
	}
	return items, nil
}

// EncodeYAML writes the items as a YAML sequence.
func EncodeYAML(w io.Writer, items []Item) error {
	if items == nil {
		items = []Item{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(items); err != nil {
		return err
	}
	return enc.Close()
}

// DecodeYAML reads a YAML sequence of items. An empty document has no items.
func DecodeYAML(r io.Reader) ([]Item, error) {
	var items []Item
	if err := yaml.NewDecoder(r).Decode(&items); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return items, nil
}

// Format is a file format for items.
type Format string

const (
	FormatJSONL Format = "jsonl"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// FormatOf returns the format of a file from its extension.
func FormatOf(name string) (Format, error) {
	switch filepath.Ext(name) {
	case ".jsonl":
		return FormatJSONL, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown file extension for %q, want .jsonl, .json, .yaml or .yml", name)
}

// Encode writes items in format f.
func (f Format) Encode(w io.Writer, items []Item) error {
	switch f {
	case FormatJSONL:
		return EncodeJSONL(w, items)
	case FormatJSON:
		return EncodeJSON(w, items)
	case FormatYAML:
		return EncodeYAML(w, items)
	}
	return fmt.Errorf("unknown format %q", f)
}

// Decode reads items in format f.
func (f Format) Decode(r io.Reader) ([]Item, error) {
	switch f {
	case FormatJSONL:
		return DecodeJSONL(r)
	case FormatJSON:
		return DecodeJSON(r)
	case FormatYAML:
		return DecodeYAML(r)
	}
	return nil, fmt.Errorf("unknown format %q", f)
}

// EncodeFile writes items to a file, in the format of its extension.
func EncodeFile(name string, items []Item) error {
	format, err := FormatOf(name)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := format.Encode(&buf, items); err != nil {
		return fmt.Errorf("cannot encode %q: %w", name, err)
	}
	return os.WriteFile(name, buf.Bytes(), 0o644)
}

// DecodeFile reads items from a file, in the format of its extension.
func DecodeFile(name string) ([]Item, error) {
	format, err := FormatOf(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	items, err := format.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode %q: %w", name, err)
	}
	return items, nil
}

// SaveStore writes the store to a file.
func SaveStore(name string, s *Store) error {
	return EncodeFile(name, s.Serialize())
}

// OpenStore loads a store from a file.
func OpenStore(name string, config link.Config) (*Store, error) {
	items, err := DecodeFile(name)
	if err != nil {
		return nil, err
	}
	s, err := LoadWithConfig(items, config)
	if err != nil {
		return nil, fmt.Errorf("cannot load %q: %w", name, err)
	}
	return s, nil
}

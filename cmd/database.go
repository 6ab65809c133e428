package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/accounts"
	"github.com/etnz/accounts/renderer"
	"github.com/google/subcommands"
)

// --- query ---

type queryCmd struct {
	kind     string
	ref      string
	name     string
	desc     string
	typ      string
	jsonpath string
	rangeFlags
}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "search the database" }
func (*queryCmd) Usage() string {
	return `acc query [-kind <kind>] [-ref <id>] [-name <text>] [-desc <text>] [-type <party type>] [-p <period> | -from <date> -to <date>] [-jsonpath <path>]

  Lists the records matching every filter. -name and -desc are prefixes, or
  regular expressions when they contain any of *?$^[].

  With -jsonpath, prints the result of the path on the JSON form of each
  record instead, like -jsonpath '$.balance'.
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "", "Record kind: account, fund, party, bank-transaction, transaction or invoice")
	f.StringVar(&c.ref, "ref", "", "Id of a record: selects it and the records referring to it")
	f.StringVar(&c.name, "name", "", "Name prefix or regular expression")
	f.StringVar(&c.desc, "desc", "", "Description prefix or regular expression")
	f.StringVar(&c.typ, "type", "", "Related party type")
	f.StringVar(&c.jsonpath, "jsonpath", "", "JSONPath applied to each record")
	c.rangeFlags.SetFlags(f)
}

func (c *queryCmd) query() (q accounts.Query, err error) {
	if c.kind != "" {
		if q.Kind, err = accounts.ParseKind(c.kind); err != nil {
			return q, err
		}
	}
	if q.Ref, err = accounts.ParseID(c.ref); err != nil {
		return q, err
	}
	if q.PartyType, err = accounts.ParsePartyType(c.typ); err != nil {
		return q, err
	}
	if q.Range, err = c.Range(); err != nil {
		return q, err
	}
	q.Name, q.Desc = c.name, c.desc
	return q, nil
}

func (c *queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	q, err := c.query()
	if err != nil {
		return fail("%v", err)
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	if c.jsonpath == "" {
		printMarkdown(renderer.RenderRecordList(renderer.NewRecordList(s, q)))
		return subcommands.ExitSuccess
	}
	for id := range s.Query(q) {
		rec, _ := s.Get(id)
		val, err := project(c.jsonpath, accounts.Item{ID: id, Record: rec})
		if err != nil {
			return fail("record %v: %v", id, err)
		}
		fmt.Printf("%v\t%s\n", id, val)
	}
	return subcommands.ExitSuccess
}

// project applies a JSONPath to the JSON form of an item, and returns the
// result as JSON.
func project(path string, item accounts.Item) ([]byte, error) {
	data, err := json.Marshal(item)
	if err != nil {
		return nil, err
	}
	var obj any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	val, err := jsonpath.Get(path, obj)
	if err != nil {
		return nil, fmt.Errorf("error applying %q: %w", path, err)
	}
	return json.Marshal(val)
}

// --- get ---

type getCmd struct{}

func (*getCmd) Name() string     { return "get" }
func (*getCmd) Synopsis() string { return "print records as YAML" }
func (*getCmd) Usage() string {
	return `acc get <id>...
`
}

func (*getCmd) SetFlags(f *flag.FlagSet) {}

func (*getCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	items := make([]accounts.Item, 0, f.NArg())
	for _, arg := range f.Args() {
		id, err := accounts.ParseID(arg)
		if err != nil {
			return fail("%v", err)
		}
		rec, ok := s.Get(id)
		if !ok {
			return fail("no record with id %v", id)
		}
		items = append(items, accounts.Item{ID: id, Record: rec})
	}
	if err := accounts.EncodeYAML(os.Stdout, items); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}

// --- write ---

type writeCmd struct{}

func (*writeCmd) Name() string     { return "write" }
func (*writeCmd) Synopsis() string { return "write the database to a file" }
func (*writeCmd) Usage() string {
	return `acc write [<file>]

  Writes the database in the format of the file extension: .jsonl, .json,
  .yaml or .yml. Without a file, the database is rewritten in place, which
  checks it and normalizes its layout.
`
}

func (*writeCmd) SetFlags(f *flag.FlagSet) {}

func (*writeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, err := OpenStore()
	if err != nil {
		return fail("%v", err)
	}
	if f.NArg() == 0 {
		return SaveStore(s)
	}
	if err := accounts.EncodeFile(f.Arg(0), s.Serialize()); err != nil {
		return fail("%v", err)
	}
	return subcommands.ExitSuccess
}

package main

import (
	"flag"
	"io"

	"github.com/etnz/accounts"
	"github.com/etnz/accounts/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// argPredictors complete the positional arguments of some commands.
var argPredictors = map[string]complete.Predictor{
	"import-lloyds": predict.Files("*.csv"),
	"write":         predict.Files("*"),
}

// completion builds the shell completion of the command tree from the flags
// the commands declare.
func completion(commander *subcommands.Commander) *complete.Command {
	root := &complete.Command{
		Sub:   map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{},
	}
	commander.VisitAll(func(f *flag.Flag) { root.Flags[f.Name] = flagPredictor(f) })

	commander.VisitCommands(func(_ *subcommands.CommandGroup, c subcommands.Command) {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}, Args: argPredictors[c.Name()]}
		fs.VisitAll(func(f *flag.Flag) { sub.Flags[f.Name] = flagPredictor(f) })
		root.Sub[c.Name()] = sub
	})

	if topics, err := docs.GetAllTopics(); err == nil {
		if sub, ok := root.Sub["topic"]; ok {
			sub.Args = predict.Set(topics)
		}
	}
	return root
}

func flagPredictor(f *flag.Flag) complete.Predictor {
	if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
		return nil
	}
	switch f.Name {
	case "db", "file":
		return predict.Files("*")
	case "kind":
		kinds := make(predict.Set, 0, len(accounts.Kinds))
		for _, k := range accounts.Kinds {
			kinds = append(kinds, string(k))
		}
		return kinds
	case "p":
		return predict.Set{"day", "week", "month", "quarter", "year"}
	}
	return predict.Set{}
}

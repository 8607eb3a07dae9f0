package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/billing/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: when invoked by the shell's completion hook, this
	// prints the candidates and exits.
	completion().Complete("bil")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))

	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command tree for shell completion.
func completion() *complete.Command {
	client := map[string]complete.Predictor{"client": predict.Something}
	sub := map[string]*complete.Command{
		"list":     {},
		"services": {Flags: client},
		"invoices": {Flags: client},
		"add":      {},
		"rate":     {Flags: client},
		"taxes":    {Flags: client},
		"address":  {Flags: client},
		"name":     {Flags: client},
		"show":     {Flags: client},
		"invoice":  {Flags: client},
		"paid":     {Flags: client},
		"remove":   {Flags: client},
		"topic":    {Args: predict.Something},
	}
	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"file": predict.Files("*.history"),
			"y":    predict.Nothing,
		},
	}
}

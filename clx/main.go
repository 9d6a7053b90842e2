package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/fromtaoyuanhsinchuuuu/CryptoLedger/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: 'COMP_INSTALL=1 clx' installs it. Complete returns
	// immediately when not running as a completer.
	completion().Complete("clx")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	files := map[string]complete.Predictor{
		"ledger-file": predict.Files("*.jsonl"),
		"prices-file": predict.Files("*.jsonl"),
	}
	sub := map[string]*complete.Command{
		"buy":          {Flags: files},
		"sell":         {Flags: files},
		"exchange":     {Flags: files},
		"transfer-in":  {Flags: files},
		"transfer-out": {Flags: files},
		"tx":           {Flags: files},
		"fmt":          {Flags: files},
		"report":       {Flags: files},
		"portfolio":    {Flags: files},
		"unrealized":   {Flags: files},
		"fetch":        {Flags: files},
		"import-csv":   {Flags: files, Args: predict.Files("*.csv")},
		"export-csv":   {Flags: files, Args: predict.Files("*.csv")},
		"topic":        {},
	}
	return &complete.Command{Sub: sub, Flags: files}
}

package main

import (
	"context"
	"flag"
	"os"
	"path"

	"facturas/cmd"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// A .env file is optional; flags and the real environment win.
	godotenv.Load()

	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion installs shell completion; Complete returns immediately when
// the process is not running in completion mode.
func completion() {
	files := predict.Files("*")
	flags := map[string]complete.Predictor{
		"inventory-file": files,
		"invoices-file":  files,
		"currency":       predict.Nothing,
		"y":              predict.Nothing,
	}
	sub := map[string]*complete.Command{}
	for _, name := range []string{
		"add", "products", "search", "update", "delete",
		"create", "invoices", "show", "edit", "void",
		"fmt", "query", "topic",
	} {
		sub[name] = &complete.Command{}
	}
	c := complete.Command{Sub: sub, Flags: flags}
	c.Complete("fac")
}

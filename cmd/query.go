package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"facturas"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "run a JSONPath expression over the invoice log" }
func (*queryCmd) Usage() string {
	return `fac query <jsonpath>

  Evaluates a JSONPath expression against the invoice log and prints the
  result as JSON.

Usage Examples:
# All customer names.
$ fac query '$[*].cliente'
# Quantities of every line of invoice 1.
$ fac query '$[?(@.id == 1)].items[*].quantity'
`
}

func (*queryCmd) SetFlags(f *flag.FlagSet) {}

func (*queryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one JSONPath expression.")
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	invoices, err := facturas.NewLedger(store).List()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	// jsonpath evaluates over generic containers, so round-trip the
	// invoices through JSON first.
	raw, err := json.Marshal(invoices)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	result, err := jsonpath.Get(f.Arg(0), doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error evaluating %q: %v\n", f.Arg(0), err)
		return subcommands.ExitFailure
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println(string(out))
	return subcommands.ExitSuccess
}

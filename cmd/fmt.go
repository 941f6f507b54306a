package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"facturas"

	"github.com/google/subcommands"
)

type fmtCmd struct{}

func (*fmtCmd) Name() string { return "fmt" }
func (*fmtCmd) Synopsis() string {
	return "rewrite both data files into their canonical form"
}
func (*fmtCmd) Usage() string {
	return `fac fmt

  Reads the inventory and the invoice log leniently, drops malformed
  lines, and writes both files back in canonical form. Reports how many
  lines were dropped from each file.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	products, skippedProducts, err := decodeProductsFile(inventoryPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	invoices, skippedInvoices, err := decodeInvoicesFile(invoicesPath())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if err := store.SaveProducts(products); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := store.SaveInvoices(invoices); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Inventory: %d products, %d malformed lines dropped.\n", len(products), skippedProducts)
	fmt.Printf("Invoices: %d invoices, %d malformed lines dropped.\n", len(invoices), skippedInvoices)
	return subcommands.ExitSuccess
}

func decodeProductsFile(path string) ([]facturas.Product, int, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return facturas.DecodeProducts(f)
}

func decodeInvoicesFile(path string) ([]facturas.Invoice, int, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return facturas.DecodeInvoices(f)
}

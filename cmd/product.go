package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"facturas"
	"facturas/renderer"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addProductCmd struct {
	name  string
	price string
	stock int
}

func (*addProductCmd) Name() string     { return "add" }
func (*addProductCmd) Synopsis() string { return "add a new product to the inventory" }
func (*addProductCmd) Usage() string {
	return `fac add -name <name> -price <price> [-stock <n>]

  Adds a product to the inventory. The name must not collide with an
  existing product (case-insensitive); price and stock must not be
  negative. The new product gets the next free id.
`
}

func (p *addProductCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.name, "name", "", "Product name.")
	f.StringVar(&p.price, "price", "0", "Unit price, e.g. 12000.50.")
	f.IntVar(&p.stock, "stock", 0, "Initial stock.")
}

func (p *addProductCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.name == "" {
		fmt.Fprintln(os.Stderr, "Error: -name is required.")
		return subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(p.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid price %q.\n", p.price)
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	product, err := facturas.NewCatalog(store).Add(p.name, price, p.stock)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Product added with ID %d.\n", product.ID)
	return subcommands.ExitSuccess
}

type listProductsCmd struct{}

func (*listProductsCmd) Name() string     { return "products" }
func (*listProductsCmd) Synopsis() string { return "list all products in the inventory" }
func (*listProductsCmd) Usage() string {
	return `fac products

  Lists the whole inventory with id, name, price and stock.
`
}

func (*listProductsCmd) SetFlags(f *flag.FlagSet) {}

func (*listProductsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	products, err := facturas.NewCatalog(store).List()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.Products(products, displayCurrency()))
	return subcommands.ExitSuccess
}

type searchProductCmd struct{}

func (*searchProductCmd) Name() string     { return "search" }
func (*searchProductCmd) Synopsis() string { return "search products by id or name" }
func (*searchProductCmd) Usage() string {
	return `fac search <term>

  Searches the inventory. An all-digits term matches by exact id, anything
  else matches product names containing the term, case-insensitively.
`
}

func (*searchProductCmd) SetFlags(f *flag.FlagSet) {}

func (*searchProductCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one search term.")
		return subcommands.ExitUsageError
	}
	term := f.Arg(0)
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	matches, err := facturas.NewCatalog(store).Find(term)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SearchResults(term, matches, displayCurrency()))
	return subcommands.ExitSuccess
}

type updateProductCmd struct{}

func (*updateProductCmd) Name() string     { return "update" }
func (*updateProductCmd) Synopsis() string { return "update a product's price or stock" }
func (*updateProductCmd) Usage() string {
	return `fac update <id|name> <price|stock> <value>

  Updates one product. When the term matches several products the command
  fails and lists the candidate ids; retry with the id.
`
}

func (*updateProductCmd) SetFlags(f *flag.FlagSet) {}

func (*updateProductCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: expected <id|name> <price|stock> <value>.")
		return subcommands.ExitUsageError
	}
	field, err := facturas.ParseField(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	product, err := facturas.NewCatalog(store).Update(f.Arg(0), field, f.Arg(2))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Product %d updated.\n", product.ID)
	return subcommands.ExitSuccess
}

type deleteProductCmd struct{}

func (*deleteProductCmd) Name() string     { return "delete" }
func (*deleteProductCmd) Synopsis() string { return "delete a product from the inventory" }
func (*deleteProductCmd) Usage() string {
	return `fac delete <id|name>

  Deletes one product after confirmation. Invoices that reference it keep
  their own name and price snapshots.
`
}

func (*deleteProductCmd) SetFlags(f *flag.FlagSet) {}

func (*deleteProductCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one term.")
		return subcommands.ExitUsageError
	}
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	catalog := facturas.NewCatalog(store)
	matches, err := catalog.Find(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if len(matches) == 1 && !confirm(fmt.Sprintf("Confirm deletion of %q", matches[0].Name)) {
		fmt.Println("Operation cancelled.")
		return subcommands.ExitSuccess
	}
	product, err := catalog.Delete(f.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Product %q deleted.\n", product.Name)
	return subcommands.ExitSuccess
}

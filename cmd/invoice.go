package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"facturas"
	"facturas/renderer"

	"github.com/google/subcommands"
)

// lineSpecs collects repeatable -item id:qty flags.
type lineSpecs []facturas.LineSpec

func (s *lineSpecs) String() string {
	parts := make([]string, len(*s))
	for i, spec := range *s {
		parts[i] = fmt.Sprintf("%d:%d", spec.ProductID, spec.Quantity)
	}
	return strings.Join(parts, ",")
}

func (s *lineSpecs) Set(value string) error {
	id, qty, ok := strings.Cut(value, ":")
	if !ok {
		return fmt.Errorf("expected <product-id>:<quantity>, got %q", value)
	}
	pid, err := strconv.Atoi(id)
	if err != nil {
		return fmt.Errorf("bad product id %q", id)
	}
	n, err := strconv.Atoi(qty)
	if err != nil {
		return fmt.Errorf("bad quantity %q", qty)
	}
	*s = append(*s, facturas.LineSpec{ProductID: pid, Quantity: n})
	return nil
}

type createInvoiceCmd struct {
	customer string
	items    lineSpecs
}

func (*createInvoiceCmd) Name() string     { return "create" }
func (*createInvoiceCmd) Synopsis() string { return "create a new invoice" }
func (*createInvoiceCmd) Usage() string {
	return `fac create -c <customer> [-item <id>:<qty> ...]

  Creates an invoice. Without -item flags the cart is built interactively:
  enter a product id and a quantity per line, an empty id finishes the
  cart. Each line snapshots the product's current name and price; stock is
  re-validated once more when the invoice is committed. An empty cart
  cancels the operation with no side effects.
`
}

func (p *createInvoiceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.customer, "c", "", "Customer name.")
	f.Var(&p.items, "item", "Invoice line as <product-id>:<quantity>. May be repeated.")
}

func (p *createInvoiceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger := facturas.NewLedger(store)

	customer := p.customer
	if customer == "" {
		var ok bool
		if customer, ok = readLine("Customer name: "); !ok || customer == "" {
			fmt.Fprintln(os.Stderr, "Error: customer name must not be empty.")
			return subcommands.ExitFailure
		}
	}

	cart, err := ledger.NewCart()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if len(p.items) > 0 {
		for _, spec := range p.items {
			if _, err := cart.Add(spec.ProductID, spec.Quantity); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return subcommands.ExitFailure
			}
		}
	} else {
		fillCart(cart)
	}

	if cart.Empty() {
		fmt.Println("Empty invoice, cancelled.")
		return subcommands.ExitSuccess
	}

	inv, err := ledger.CreateInvoice(customer, cart)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Invoice created with ID %d.\n", inv.ID)
	printMarkdown(renderer.InvoiceDetail(inv, displayCurrency()))
	return subcommands.ExitSuccess
}

// fillCart runs the interactive cart loop. Bad lines are reported and
// skipped; the loop ends on an empty product id.
func fillCart(cart *facturas.Cart) {
	for {
		line, ok := readLine("Product ID (ENTER to finish): ")
		if !ok || line == "" {
			return
		}
		id, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid id %q.\n", line)
			continue
		}
		product, ok := cart.Product(id)
		if !ok {
			fmt.Fprintln(os.Stderr, "Product not found.")
			continue
		}
		fmt.Printf("Selected: %s | Price: %s | Stock: %d\n",
			product.Name, renderer.Amount(product.Price, displayCurrency()), product.Stock)

		qline, ok := readLine("Quantity: ")
		if !ok {
			return
		}
		qty, err := strconv.Atoi(qline)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid quantity %q.\n", qline)
			continue
		}
		if _, err := cart.Add(id, qty); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}

type listInvoicesCmd struct{}

func (*listInvoicesCmd) Name() string     { return "invoices" }
func (*listInvoicesCmd) Synopsis() string { return "list all invoices" }
func (*listInvoicesCmd) Usage() string {
	return `fac invoices

  Lists every invoice with id, date, customer and total.
`
}

func (*listInvoicesCmd) SetFlags(f *flag.FlagSet) {}

func (*listInvoicesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	printMarkdown(renderer.Invoices(invoices, displayCurrency()))
	return subcommands.ExitSuccess
}

type showInvoiceCmd struct{}

func (*showInvoiceCmd) Name() string     { return "show" }
func (*showInvoiceCmd) Synopsis() string { return "show one invoice in detail" }
func (*showInvoiceCmd) Usage() string {
	return `fac show <invoice-id>

  Shows an invoice's items and totals.
`
}

func (*showInvoiceCmd) SetFlags(f *flag.FlagSet) {}

func (*showInvoiceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := invoiceIDArg(f)
	if status != subcommands.ExitSuccess {
		return status
	}
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	inv, err := facturas.NewLedger(store).Get(id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.InvoiceDetail(inv, displayCurrency()))
	return subcommands.ExitSuccess
}

type editInvoiceCmd struct {
	items lineSpecs
}

func (*editInvoiceCmd) Name() string     { return "edit" }
func (*editInvoiceCmd) Synopsis() string { return "replace an invoice's items" }
func (*editInvoiceCmd) Usage() string {
	return `fac edit [-item <id>:<qty> ...] <invoice-id>

  Replaces the invoice's item list. New items are priced at the current
  catalog price. A quantity of 0 removes the product from the invoice.
  Stock moves by the net difference between the old and the new
  quantities; the edit aborts without changes if any increase cannot be
  covered. An edit that empties the invoice asks whether to delete it.
`
}

func (p *editInvoiceCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&p.items, "item", "New line as <product-id>:<quantity>; 0 removes the product. May be repeated.")
}

func (p *editInvoiceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := invoiceIDArg(f)
	if status != subcommands.ExitSuccess {
		return status
	}
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger := facturas.NewLedger(store)

	specs := []facturas.LineSpec(p.items)
	if len(specs) == 0 {
		inv, err := ledger.Get(id)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.InvoiceDetail(inv, displayCurrency()))
		specs = collectEditSpecs(store)
	}

	inv, err := ledger.EditInvoice(id, specs)
	if errors.Is(err, facturas.ErrEmptyInvoice) {
		if !confirm("The invoice would be empty. Delete it and restore stock?") {
			fmt.Println("Edit cancelled, no changes.")
			return subcommands.ExitSuccess
		}
		if err := ledger.DeleteInvoice(id); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		fmt.Println("Invoice deleted and stock restored.")
		return subcommands.ExitSuccess
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println("Invoice updated.")
	printMarkdown(renderer.InvoiceDetail(inv, displayCurrency()))
	return subcommands.ExitSuccess
}

// collectEditSpecs runs the interactive edit loop against the current
// catalog. It only gathers the new (product, quantity) pairs; validation
// happens in the ledger when the edit is applied.
func collectEditSpecs(store facturas.Store) []facturas.LineSpec {
	products, err := store.LoadProducts()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil
	}
	byID := make(map[int]facturas.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var specs []facturas.LineSpec
	for {
		line, ok := readLine("Product ID to set (ENTER to finish): ")
		if !ok || line == "" {
			return specs
		}
		id, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid id %q.\n", line)
			continue
		}
		product, ok := byID[id]
		if !ok {
			fmt.Fprintln(os.Stderr, "Product not found.")
			continue
		}
		qline, ok := readLine("New quantity (0 to remove): ")
		if !ok {
			return specs
		}
		qty, err := strconv.Atoi(qline)
		if err != nil || qty < 0 {
			fmt.Fprintf(os.Stderr, "Invalid quantity %q.\n", qline)
			continue
		}
		if qty == 0 {
			fmt.Printf("%s will be removed.\n", product.Name)
		}
		specs = append(specs, facturas.LineSpec{ProductID: id, Quantity: qty})
	}
}

type voidInvoiceCmd struct{}

func (*voidInvoiceCmd) Name() string     { return "void" }
func (*voidInvoiceCmd) Synopsis() string { return "delete an invoice and restore its stock" }
func (*voidInvoiceCmd) Usage() string {
	return `fac void <invoice-id>

  Deletes an invoice after confirmation, crediting every line's quantity
  back to its product. Products no longer in the catalog are skipped.
`
}

func (*voidInvoiceCmd) SetFlags(f *flag.FlagSet) {}

func (*voidInvoiceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	id, status := invoiceIDArg(f)
	if status != subcommands.ExitSuccess {
		return status
	}
	if !confirm("Confirm deletion and stock reversal") {
		fmt.Println("Operation cancelled.")
		return subcommands.ExitSuccess
	}
	store, err := openStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := facturas.NewLedger(store).DeleteInvoice(id); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Println("Invoice deleted and stock restored.")
	return subcommands.ExitSuccess
}

// invoiceIDArg parses the single positional invoice id argument.
func invoiceIDArg(f *flag.FlagSet) (int, subcommands.ExitStatus) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one invoice id.")
		return 0, subcommands.ExitUsageError
	}
	id, err := strconv.Atoi(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid invoice id %q.\n", f.Arg(0))
		return 0, subcommands.ExitUsageError
	}
	return id, subcommands.ExitSuccess
}

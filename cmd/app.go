// Package cmd implements the CLI application to manage the inventory and
// the invoice log.
package cmd

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"facturas"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Register registers all subcommands on the commander.
// A main package calls Register(), then Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&addProductCmd{}, "inventory")
	c.Register(&listProductsCmd{}, "inventory")
	c.Register(&searchProductCmd{}, "inventory")
	c.Register(&updateProductCmd{}, "inventory")
	c.Register(&deleteProductCmd{}, "inventory")

	c.Register(&createInvoiceCmd{}, "invoices")
	c.Register(&listInvoicesCmd{}, "invoices")
	c.Register(&showInvoiceCmd{}, "invoices")
	c.Register(&editInvoiceCmd{}, "invoices")
	c.Register(&voidInvoiceCmd{}, "invoices")

	c.Register(&fmtCmd{}, "")
	c.Register(&queryCmd{}, "")
	c.Register(&topicCmd{}, "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok
// to use global variables for the shared flags.

var (
	inventoryFile = flag.String("inventory-file", "", "Path to the pipe-delimited inventory file (default inventario.txt, env FAC_INVENTORY_FILE)")
	invoicesFile  = flag.String("invoices-file", "", "Path to the invoice log file, JSONL format (default facturas.txt, env FAC_INVOICES_FILE)")
	currency      = flag.String("currency", "", "ISO 4217 code used to display amounts (default COP, env FAC_CURRENCY)")
	assumeYes     = flag.Bool("y", false, "Assume yes on every confirmation prompt")
)

// orEnv resolves a setting from its flag, then the environment, then the
// built-in default. Flags register before main loads the .env file, so the
// environment is read lazily here.
func orEnv(flagValue, envKey, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fallback
}

func inventoryPath() string { return orEnv(*inventoryFile, "FAC_INVENTORY_FILE", "inventario.txt") }
func invoicesPath() string  { return orEnv(*invoicesFile, "FAC_INVOICES_FILE", "facturas.txt") }
func displayCurrency() string {
	return strings.ToUpper(orEnv(*currency, "FAC_CURRENCY", "COP"))
}

// openStore builds the file store from the global flags, creating the
// backing files on first use.
func openStore() (*facturas.FileStore, error) {
	s := facturas.NewFileStore(inventoryPath(), invoicesPath())
	if err := s.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

// printMarkdown renders a markdown document for the terminal, falling back
// to the raw text when the renderer fails.
func printMarkdown(doc string) {
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		fmt.Print(doc)
		return
	}
	fmt.Print(out)
}

// input is shared by every interactive prompt so buffered lines are not
// lost between reads.
var input = bufio.NewScanner(os.Stdin)

// readLine prompts and returns the next stdin line, trimmed. ok is false
// on EOF.
func readLine(prompt string) (line string, ok bool) {
	fmt.Print(prompt)
	if !input.Scan() {
		fmt.Println()
		return "", false
	}
	return strings.TrimSpace(input.Text()), true
}

// confirm asks a yes/no question. Declining leaves the pending operation
// with zero side effects. The -y flag skips the prompt.
func confirm(question string) bool {
	if *assumeYes {
		return true
	}
	line, ok := readLine(question + " (s/N): ")
	if !ok {
		return false
	}
	switch strings.ToLower(line) {
	case "s", "si", "y", "yes":
		return true
	}
	return false
}

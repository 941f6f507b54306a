package facturas

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// InventoryHeader is the first line of the inventory file.
const InventoryHeader = "id|nombre|precio|stock"

// This file contains the codecs for the two flat files. Both are
// human-readable and git-friendly: the inventory is a pipe-delimited table
// with a header line, the invoice log is one JSON object per line.
//
// Reads are lenient: a malformed line is dropped and counted instead of
// failing the whole load, so one corrupt record never makes the files
// unreadable. Writes always produce the canonical form.

// DecodeProducts reads the pipe-delimited inventory format. It returns the
// products, the number of malformed lines that were dropped, and any read
// error.
func DecodeProducts(r io.Reader) (products []Product, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		lineNo++
		if line == "" {
			continue
		}
		if lineNo == 1 && strings.HasPrefix(strings.ToLower(line), InventoryHeader) {
			continue
		}
		p, perr := parseProductLine(line)
		if perr != nil {
			skipped++
			continue
		}
		products = append(products, p)
	}
	return products, skipped, scanner.Err()
}

func parseProductLine(line string) (Product, error) {
	parts := strings.Split(line, "|")
	if len(parts) != 4 {
		return Product{}, fmt.Errorf("expected 4 fields, got %d", len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return Product{}, fmt.Errorf("bad id %q: %w", parts[0], err)
	}
	price, err := decimal.NewFromString(parts[2])
	if err != nil {
		return Product{}, fmt.Errorf("bad price %q: %w", parts[2], err)
	}
	stock, err := strconv.Atoi(parts[3])
	if err != nil {
		return Product{}, fmt.Errorf("bad stock %q: %w", parts[3], err)
	}
	return Product{ID: id, Name: parts[1], Price: price, Stock: stock}, nil
}

// EncodeProducts writes the canonical inventory format, header included.
func EncodeProducts(w io.Writer, products []Product) error {
	b := bufio.NewWriter(w)
	fmt.Fprintln(b, InventoryHeader)
	for _, p := range products {
		fmt.Fprintf(b, "%d|%s|%s|%d\n", p.ID, p.Name, p.Price.String(), p.Stock)
	}
	return b.Flush()
}

// DecodeInvoices decodes the invoice log from a stream of JSONL data. It
// returns the invoices, the number of malformed lines that were dropped,
// and any read error.
func DecodeInvoices(r io.Reader) (invoices []Invoice, skipped int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var inv Invoice
		if err := json.Unmarshal([]byte(line), &inv); err != nil {
			skipped++
			continue
		}
		invoices = append(invoices, inv)
	}
	return invoices, skipped, scanner.Err()
}

// EncodeInvoice writes a single invoice as one JSON line.
func EncodeInvoice(w io.Writer, inv Invoice) error {
	data, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("could not encode invoice %d: %w", inv.ID, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return err
	}
	return nil
}

// EncodeInvoices writes the whole invoice log in JSONL form.
func EncodeInvoices(w io.Writer, invoices []Invoice) error {
	for _, inv := range invoices {
		if err := EncodeInvoice(w, inv); err != nil {
			return err
		}
	}
	return nil
}

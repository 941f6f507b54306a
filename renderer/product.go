package renderer

import (
	"bytes"
	"strconv"

	"facturas"

	md "github.com/nao1215/markdown"
)

// Products renders the whole catalog as a markdown table.
func Products(products []facturas.Product, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Inventory")
	if len(products) == 0 {
		doc.PlainText("No products in the inventory.")
		return doc.String()
	}
	doc.Table(productTable(products, currency))
	return doc.String()
}

// SearchResults renders the products matching a search term.
func SearchResults(term string, products []facturas.Product, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Search Results")
	if len(products) == 0 {
		doc.PlainText("No products match " + strconv.Quote(term) + ".")
		return doc.String()
	}
	doc.Table(productTable(products, currency))
	return doc.String()
}

func productTable(products []facturas.Product, currency string) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"ID", "Name", "Price", "Stock"},
	}
	for _, p := range products {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(p.ID),
			p.Name,
			Amount(p.Price, currency),
			strconv.Itoa(p.Stock),
		})
	}
	return table
}

package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"facturas"

	md "github.com/nao1215/markdown"
)

// Invoices renders the invoice log as a markdown table.
func Invoices(invoices []facturas.Invoice, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Invoices")
	if len(invoices) == 0 {
		doc.PlainText("No invoices recorded.")
		return doc.String()
	}
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"ID", "Date", "Customer", "Total"},
	}
	for _, inv := range invoices {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(inv.ID),
			inv.Date,
			inv.Customer,
			Amount(inv.Total, currency),
		})
	}
	doc.Table(table)
	return doc.String()
}

// InvoiceDetail renders one invoice with its items and totals.
func InvoiceDetail(inv facturas.Invoice, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Invoice %d", inv.ID))
	doc.PlainText(fmt.Sprintf("Date: %s", inv.Date))
	doc.PlainText(fmt.Sprintf("Customer: %s", inv.Customer))

	doc.H2("Items")
	items := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignRight,
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"ProdID", "Name", "Qty", "Unit Price", "Total"},
	}
	for _, it := range inv.Items {
		items.Rows = append(items.Rows, []string{
			strconv.Itoa(it.ProductID),
			it.ProductName,
			strconv.Itoa(it.Quantity),
			Amount(it.UnitPrice, currency),
			Amount(it.LineTotal, currency),
		})
	}
	doc.Table(items)

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Subtotal", Amount(inv.Subtotal, currency)},
		Rows: [][]string{
			{"IVA (19%)", Amount(inv.Tax, currency)},
			{md.Bold("Total"), md.Bold(Amount(inv.Total, currency))},
		},
	})
	return doc.String()
}

package facturas

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate is the fixed VAT rate applied to every invoice subtotal.
var TaxRate = decimal.NewFromFloat(0.19)

// DateFormat is the timestamp layout persisted in the invoice log.
const DateFormat = "2006-01-02 15:04:05"

// LineItem is one line of an invoice. Name and unit price are snapshots
// taken from the catalog when the line was built: later catalog changes do
// not alter persisted invoices. Only an edit replacing the whole item list
// can change a line.
type LineItem struct {
	ProductID   int             `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// NewLineItem snapshots p into an invoice line. The line total is derived
// here, rounded to 2 decimals at the point of computation.
func NewLineItem(p Product, quantity int) LineItem {
	return LineItem{
		ProductID:   p.ID,
		ProductName: p.Name,
		Quantity:    quantity,
		UnitPrice:   p.Price,
		LineTotal:   p.Price.Mul(decimal.NewFromInt(int64(quantity))).Round(2),
	}
}

// Invoice is a committed sale. Subtotal, Tax and Total are always derived
// from Items, never set independently; they are recomputed on every create
// and edit. The json tags match the historical file format.
type Invoice struct {
	ID       int             `json:"id"`
	Date     string          `json:"fecha"`
	Customer string          `json:"cliente"`
	Items    []LineItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"iva"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals derives subtotal, tax and total from items. Subtotal and
// tax are each rounded to 2 decimals; the total is their plain sum, so
// rounding is not compounded further.
func ComputeTotals(items []LineItem) (subtotal, tax, total decimal.Decimal) {
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal)
	}
	subtotal = subtotal.Round(2)
	tax = subtotal.Mul(TaxRate).Round(2)
	total = subtotal.Add(tax)
	return subtotal, tax, total
}

func newInvoice(id int, customer string, items []LineItem, now time.Time) Invoice {
	subtotal, tax, total := ComputeTotals(items)
	return Invoice{
		ID:       id,
		Date:     now.Format(DateFormat),
		Customer: customer,
		Items:    items,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    total,
	}
}

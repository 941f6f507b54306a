package facturas

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Identity is the numeric ID. The name is
// checked for uniqueness only when the product is created, never
// retroactively.
type Product struct {
	ID    int
	Name  string
	Price decimal.Decimal
	Stock int
}

// NewProduct validates the fields and returns a product without an ID.
// The catalog assigns IDs when the product is added.
func NewProduct(name string, price decimal.Decimal, stock int) (Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Product{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	// The inventory file is pipe-delimited with one record per line and
	// no escaping, so these characters cannot survive a round trip.
	if strings.ContainsAny(name, "|\n\r") {
		return Product{}, &ValidationError{Field: "name", Reason: "must not contain '|' or line breaks"}
	}
	if price.IsNegative() {
		return Product{}, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if stock < 0 {
		return Product{}, &ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	return Product{Name: name, Price: price, Stock: stock}, nil
}

// Field selects which product attribute an update targets.
type Field int

const (
	FieldPrice Field = iota
	FieldStock
)

func (f Field) String() string {
	switch f {
	case FieldPrice:
		return "price"
	case FieldStock:
		return "stock"
	default:
		return "unknown"
	}
}

// ParseField parses a string into a Field.
func ParseField(s string) (Field, error) {
	switch s {
	case "price":
		return FieldPrice, nil
	case "stock":
		return FieldStock, nil
	default:
		return 0, fmt.Errorf("unknown field: %q", s)
	}
}

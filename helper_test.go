package facturas

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// d parses a decimal literal for tests.
func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// tp builds a test product.
func tp(id int, name, price string, stock int) Product {
	return Product{ID: id, Name: name, Price: d(price), Stock: stock}
}

var testNow = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

// newTestLedger returns a ledger over the store with a fixed clock.
func newTestLedger(store *MemStore) *Ledger {
	l := NewLedger(store)
	l.now = func() time.Time { return testNow }
	return l
}

// sameProduct compares products field by field; decimal values compare by
// numeric equality, not representation.
func sameProduct(a, b Product) bool {
	return a.ID == b.ID && a.Name == b.Name && a.Stock == b.Stock && a.Price.Equal(b.Price)
}

func sameProducts(a, b []Product) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameProduct(a[i], b[i]) {
			return false
		}
	}
	return true
}

// stockOf returns the stock of a product in the store, failing the test
// when the product is missing.
func stockOf(t *testing.T, store *MemStore, id int) int {
	t.Helper()
	for _, p := range store.Products {
		if p.ID == id {
			return p.Stock
		}
	}
	t.Fatalf("product %d not in store", id)
	return 0
}

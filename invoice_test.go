package facturas

import (
	"testing"
)

func TestNewLineItem(t *testing.T) {
	testCases := []struct {
		name          string
		price         string
		quantity      int
		wantLineTotal string
	}{
		{name: "whole numbers", price: "100", quantity: 3, wantLineTotal: "300"},
		{name: "cents", price: "12000.50", quantity: 2, wantLineTotal: "24001"},
		{name: "rounded at computation", price: "0.335", quantity: 3, wantLineTotal: "1.01"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := tp(7, "Widget", tc.price, 99)
			it := NewLineItem(p, tc.quantity)
			if it.ProductID != 7 || it.ProductName != "Widget" {
				t.Errorf("NewLineItem() snapshot = (%d, %q), want (7, Widget)", it.ProductID, it.ProductName)
			}
			if !it.UnitPrice.Equal(d(tc.price)) {
				t.Errorf("NewLineItem() unit price = %s, want %s", it.UnitPrice, tc.price)
			}
			if !it.LineTotal.Equal(d(tc.wantLineTotal)) {
				t.Errorf("NewLineItem() line total = %s, want %s", it.LineTotal, tc.wantLineTotal)
			}
		})
	}
}

func TestComputeTotals(t *testing.T) {
	testCases := []struct {
		name         string
		lineTotals   []string
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name:         "empty",
			wantSubtotal: "0", wantTax: "0", wantTotal: "0",
		},
		{
			name:       "single line",
			lineTotals: []string{"300"},
			// 300 * 0.19 = 57
			wantSubtotal: "300", wantTax: "57", wantTotal: "357",
		},
		{
			name:       "tax rounds",
			lineTotals: []string{"10.01", "0.02"},
			// 10.03 * 0.19 = 1.9057 -> 1.91
			wantSubtotal: "10.03", wantTax: "1.91", wantTotal: "11.94",
		},
		{
			name:       "total is sum of rounded parts",
			lineTotals: []string{"0.53"},
			// 0.53 * 0.19 = 0.1007 -> 0.10; total 0.63, not round(0.6307)
			wantSubtotal: "0.53", wantTax: "0.1", wantTotal: "0.63",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var items []LineItem
			for _, lt := range tc.lineTotals {
				items = append(items, LineItem{LineTotal: d(lt)})
			}
			subtotal, tax, total := ComputeTotals(items)
			if !subtotal.Equal(d(tc.wantSubtotal)) {
				t.Errorf("subtotal = %s, want %s", subtotal, tc.wantSubtotal)
			}
			if !tax.Equal(d(tc.wantTax)) {
				t.Errorf("tax = %s, want %s", tax, tc.wantTax)
			}
			if !total.Equal(d(tc.wantTotal)) {
				t.Errorf("total = %s, want %s", total, tc.wantTotal)
			}
		})
	}
}

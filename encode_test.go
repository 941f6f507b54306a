package facturas

import (
	"strings"
	"testing"
)

func TestDecodeProducts(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		want        []Product
		wantSkipped int
	}{
		{
			name: "canonical file",
			input: "id|nombre|precio|stock\n" +
				"1|Widget|100|10\n" +
				"2|Gadget|12000.5|7\n",
			want: []Product{tp(1, "Widget", "100", 10), tp(2, "Gadget", "12000.5", 7)},
		},
		{
			name:  "headerless first record",
			input: "1|Widget|100|10\n",
			want:  []Product{tp(1, "Widget", "100", 10)},
		},
		{
			name: "malformed lines dropped and counted",
			input: "id|nombre|precio|stock\n" +
				"1|Widget|100|10\n" +
				"not a product line\n" +
				"2|Gadget|twelve|7\n" +
				"3|Gizmo|5|x\n" +
				"4|Doohickey|2.50|3\n",
			want:        []Product{tp(1, "Widget", "100", 10), tp(4, "Doohickey", "2.5", 3)},
			wantSkipped: 3,
		},
		{
			name: "blank lines ignored",
			input: "id|nombre|precio|stock\n" +
				"\n" +
				"1|Widget|100|10\n" +
				"\n",
			want: []Product{tp(1, "Widget", "100", 10)},
		},
		{
			name:  "fields get trimmed",
			input: "id|nombre|precio|stock\n 1 | Widget | 100 | 10 \n",
			want:  []Product{tp(1, "Widget", "100", 10)},
		},
		{name: "empty file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, skipped, err := DecodeProducts(strings.NewReader(tc.input))
			if err != nil {
				t.Fatalf("DecodeProducts() error = %v", err)
			}
			if skipped != tc.wantSkipped {
				t.Errorf("skipped = %d, want %d", skipped, tc.wantSkipped)
			}
			if !sameProducts(got, tc.want) {
				t.Errorf("DecodeProducts() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestEncodeProducts(t *testing.T) {
	var b strings.Builder
	err := EncodeProducts(&b, []Product{
		tp(1, "Widget", "12000.5", 7),
		tp(2, "Gadget", "100", 0),
	})
	if err != nil {
		t.Fatalf("EncodeProducts() error = %v", err)
	}
	want := "id|nombre|precio|stock\n" +
		"1|Widget|12000.5|7\n" +
		"2|Gadget|100|0\n"
	if b.String() != want {
		t.Errorf("EncodeProducts() =\n%q\nwant\n%q", b.String(), want)
	}
}

func TestProductRoundTrip(t *testing.T) {
	original := []Product{
		tp(1, "Widget", "100", 10),
		tp(2, "Café con leche", "3500.99", 0),
	}
	var b strings.Builder
	if err := EncodeProducts(&b, original); err != nil {
		t.Fatalf("EncodeProducts() error = %v", err)
	}
	got, skipped, err := DecodeProducts(strings.NewReader(b.String()))
	if err != nil || skipped != 0 {
		t.Fatalf("DecodeProducts() = skipped %d, error %v", skipped, err)
	}
	if !sameProducts(got, original) {
		t.Errorf("round trip = %+v, want %+v", got, original)
	}
}

func TestEncodeInvoice(t *testing.T) {
	item := NewLineItem(tp(1, "Widget", "100", 10), 3)
	inv := newInvoice(1, "Alice", []LineItem{item}, testNow)

	var b strings.Builder
	if err := EncodeInvoice(&b, inv); err != nil {
		t.Fatalf("EncodeInvoice() error = %v", err)
	}
	want := `{"id":1,"fecha":"2026-08-28 10:00:00","cliente":"Alice",` +
		`"items":[{"product_id":1,"product_name":"Widget","quantity":3,"unit_price":100,"line_total":300}],` +
		`"subtotal":300,"iva":57,"total":357}` + "\n"
	if b.String() != want {
		t.Errorf("EncodeInvoice() =\n%s\nwant\n%s", b.String(), want)
	}
}

func TestDecodeInvoices(t *testing.T) {
	input := `{"id":1,"fecha":"2026-08-28 10:00:00","cliente":"Alice","items":[{"product_id":1,"product_name":"Widget","quantity":3,"unit_price":100,"line_total":300}],"subtotal":300,"iva":57,"total":357}` + "\n" +
		"this line is not json\n" +
		"\n" +
		`{"id":2,"fecha":"2026-08-28 11:00:00","cliente":"Bob","items":[],"subtotal":0,"iva":0,"total":0}` + "\n"

	invoices, skipped, err := DecodeInvoices(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeInvoices() error = %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(invoices) != 2 {
		t.Fatalf("decoded %d invoices, want 2", len(invoices))
	}
	if invoices[0].Customer != "Alice" || invoices[1].Customer != "Bob" {
		t.Errorf("customers = %q, %q", invoices[0].Customer, invoices[1].Customer)
	}
	if !invoices[0].Total.Equal(d("357")) {
		t.Errorf("total = %s, want 357", invoices[0].Total)
	}
	if len(invoices[0].Items) != 1 || invoices[0].Items[0].Quantity != 3 {
		t.Errorf("items = %+v", invoices[0].Items)
	}
}

func TestInvoiceRoundTrip(t *testing.T) {
	original := []Invoice{
		newInvoice(1, "Alice", []LineItem{NewLineItem(tp(1, "Widget", "100", 10), 3)}, testNow),
		newInvoice(2, "Bob", []LineItem{NewLineItem(tp(2, "Gadget", "0.335", 9), 3)}, testNow),
	}
	var b strings.Builder
	if err := EncodeInvoices(&b, original); err != nil {
		t.Fatalf("EncodeInvoices() error = %v", err)
	}
	got, skipped, err := DecodeInvoices(strings.NewReader(b.String()))
	if err != nil || skipped != 0 {
		t.Fatalf("DecodeInvoices() = skipped %d, error %v", skipped, err)
	}
	if len(got) != 2 {
		t.Fatalf("decoded %d invoices, want 2", len(got))
	}
	for i := range got {
		if got[i].ID != original[i].ID || got[i].Date != original[i].Date {
			t.Errorf("invoice %d = %+v, want %+v", i, got[i], original[i])
		}
		if !got[i].Total.Equal(original[i].Total) {
			t.Errorf("invoice %d total = %s, want %s", i, got[i].Total, original[i].Total)
		}
	}
}

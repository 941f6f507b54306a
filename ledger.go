package facturas

import (
	"errors"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ErrEmptyInvoice is returned by EditInvoice when the new item set would be
// empty. The caller decides whether to delete the invoice instead; deletion
// requires its own explicit confirmation.
var ErrEmptyInvoice = errors.New("invoice would have no items")

// LineSpec names a product and a quantity for an invoice edit. A zero
// quantity means "omit this product from the new item set".
type LineSpec struct {
	ProductID int
	Quantity  int
}

// Ledger manages the invoice log and keeps product stock consistent with
// it. Stock always reflects all committed invoices: it is debited when an
// invoice is committed, credited back when one is deleted, and moved by
// the net per-product delta when one is edited.
//
// On the dual writes the catalog is always persisted before the invoice
// log. A crash between the two leaves stock debited with the invoice
// missing, which is the recoverable direction.
type Ledger struct {
	store Store
	now   func() time.Time
}

// NewLedger creates a ledger over the given store.
func NewLedger(store Store) *Ledger {
	return &Ledger{store: store, now: time.Now}
}

// Cart accumulates invoice lines against a catalog snapshot taken once
// when the cart was opened. Line quantities are checked against the
// snapshotted stock as they are added; CreateInvoice re-validates the
// aggregate demand against live stock before committing.
type Cart struct {
	products map[int]Product
	items    []LineItem
}

// NewCart opens a cart over the current catalog snapshot.
func (l *Ledger) NewCart() (*Cart, error) {
	products, err := l.store.LoadProducts()
	if err != nil {
		return nil, err
	}
	byID := make(map[int]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Cart{products: byID}, nil
}

// Product looks up a product in the cart's snapshot.
func (c *Cart) Product(id int) (Product, bool) {
	p, ok := c.products[id]
	return p, ok
}

// Add appends a line for the given product, snapshotting its name and
// price. The quantity must be positive and not exceed the snapshotted
// stock.
func (c *Cart) Add(productID, quantity int) (LineItem, error) {
	p, ok := c.products[productID]
	if !ok {
		return LineItem{}, &NotFoundError{Kind: "product", Term: strconv.Itoa(productID)}
	}
	if quantity <= 0 {
		return LineItem{}, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	if quantity > p.Stock {
		return LineItem{}, &InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: quantity, Available: p.Stock}
	}
	item := NewLineItem(p, quantity)
	c.items = append(c.items, item)
	return item, nil
}

// Items returns a copy of the cart lines, in insertion order.
func (c *Cart) Items() []LineItem {
	return slices.Clone(c.items)
}

// Empty reports whether no line was added.
func (c *Cart) Empty() bool {
	return len(c.items) == 0
}

// aggregate sums line quantities per product id.
func aggregate(items []LineItem) map[int]int {
	agg := make(map[int]int)
	for _, it := range items {
		agg[it.ProductID] += it.Quantity
	}
	return agg
}

func nextInvoiceID(invoices []Invoice) int {
	max := 0
	for _, inv := range invoices {
		if inv.ID > max {
			max = inv.ID
		}
	}
	return max + 1
}

// CreateInvoice commits the cart as a new invoice. The catalog is re-read
// and the aggregate demand per product re-validated against live stock, so
// a snapshot gone stale during cart entry aborts the whole operation with
// no mutation. On success stock is debited, the catalog persisted, and the
// invoice appended with derived totals.
func (l *Ledger) CreateInvoice(customer string, cart *Cart) (Invoice, error) {
	customer = strings.TrimSpace(customer)
	if customer == "" {
		return Invoice{}, &ValidationError{Field: "customer", Reason: "must not be empty"}
	}
	if cart == nil || cart.Empty() {
		return Invoice{}, &ValidationError{Field: "items", Reason: "cart is empty"}
	}

	products, err := l.store.LoadProducts()
	if err != nil {
		return Invoice{}, err
	}
	index := make(map[int]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}

	demand := aggregate(cart.items)
	for _, pid := range slices.Sorted(maps.Keys(demand)) {
		i, ok := index[pid]
		if !ok {
			return Invoice{}, &NotFoundError{Kind: "product", Term: strconv.Itoa(pid)}
		}
		if products[i].Stock < demand[pid] {
			p := products[i]
			return Invoice{}, &InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: demand[pid], Available: p.Stock}
		}
	}

	invoices, err := l.store.LoadInvoices()
	if err != nil {
		return Invoice{}, err
	}

	for pid, qty := range demand {
		products[index[pid]].Stock -= qty
	}
	if err := l.store.SaveProducts(products); err != nil {
		return Invoice{}, err
	}

	inv := newInvoice(nextInvoiceID(invoices), customer, cart.Items(), l.now())
	if err := l.store.AppendInvoice(inv); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

// Get returns the invoice with the given id.
func (l *Ledger) Get(id int) (Invoice, error) {
	invoices, err := l.store.LoadInvoices()
	if err != nil {
		return Invoice{}, err
	}
	for _, inv := range invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return Invoice{}, &NotFoundError{Kind: "invoice", Term: strconv.Itoa(id)}
}

// List returns all invoices in the log, in file order.
func (l *Ledger) List() ([]Invoice, error) {
	return l.store.LoadInvoices()
}

// DeleteInvoice removes an invoice and credits every line's quantity back
// to its product. Products deleted from the catalog since the invoice was
// written are silently skipped. The catalog is persisted before the log:
// if the catalog write fails, the invoice removal is not persisted either.
func (l *Ledger) DeleteInvoice(id int) error {
	invoices, err := l.store.LoadInvoices()
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(invoices, func(inv Invoice) bool { return inv.ID == id })
	if idx < 0 {
		return &NotFoundError{Kind: "invoice", Term: strconv.Itoa(id)}
	}

	products, err := l.store.LoadProducts()
	if err != nil {
		return err
	}
	index := make(map[int]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}
	for _, it := range invoices[idx].Items {
		if i, ok := index[it.ProductID]; ok {
			products[i].Stock += it.Quantity
		}
	}
	if err := l.store.SaveProducts(products); err != nil {
		return err
	}

	invoices = append(invoices[:idx], invoices[idx+1:]...)
	return l.store.SaveInvoices(invoices)
}

// EditInvoice replaces the invoice's item list with specs. New items are
// re-priced at the current catalog price, not the original invoice price.
// Stock moves by the net per-product delta between the old and the new
// quantities; every delta is computed and validated before any stock
// mutation is applied, so a failing edit mutates nothing.
//
// If the effective new item set is empty, ErrEmptyInvoice is returned and
// the invoice is left untouched.
func (l *Ledger) EditInvoice(id int, specs []LineSpec) (Invoice, error) {
	invoices, err := l.store.LoadInvoices()
	if err != nil {
		return Invoice{}, err
	}
	idx := slices.IndexFunc(invoices, func(inv Invoice) bool { return inv.ID == id })
	if idx < 0 {
		return Invoice{}, &NotFoundError{Kind: "invoice", Term: strconv.Itoa(id)}
	}
	inv := invoices[idx]

	products, err := l.store.LoadProducts()
	if err != nil {
		return Invoice{}, err
	}
	index := make(map[int]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}

	// Build the new item set. Zero quantities drop the product; the rest
	// snapshot the current catalog name and price.
	var newItems []LineItem
	for _, spec := range specs {
		if spec.Quantity == 0 {
			continue
		}
		if spec.Quantity < 0 {
			return Invoice{}, &ValidationError{Field: "quantity", Reason: "must not be negative"}
		}
		i, ok := index[spec.ProductID]
		if !ok {
			return Invoice{}, &NotFoundError{Kind: "product", Term: strconv.Itoa(spec.ProductID)}
		}
		newItems = append(newItems, NewLineItem(products[i], spec.Quantity))
	}
	if len(newItems) == 0 {
		return Invoice{}, ErrEmptyInvoice
	}

	// Net stock delta per product over the union of both key sets.
	newQty := aggregate(newItems)
	oldQty := aggregate(inv.Items)
	delta := make(map[int]int)
	for pid, q := range newQty {
		delta[pid] = q - oldQty[pid]
	}
	for pid, q := range oldQty {
		if _, ok := newQty[pid]; !ok {
			delta[pid] = -q
		}
	}

	for _, pid := range slices.Sorted(maps.Keys(delta)) {
		d := delta[pid]
		if d <= 0 {
			continue
		}
		i, ok := index[pid]
		if !ok {
			return Invoice{}, &NotFoundError{Kind: "product", Term: strconv.Itoa(pid)}
		}
		if products[i].Stock < d {
			p := products[i]
			return Invoice{}, &InsufficientStockError{ProductID: p.ID, Name: p.Name, Requested: d, Available: p.Stock}
		}
	}

	// All checks passed; apply every delta. A negative delta increases
	// stock. Products gone from the catalog are skipped, as in delete.
	for pid, d := range delta {
		if i, ok := index[pid]; ok {
			products[i].Stock -= d
		}
	}
	if err := l.store.SaveProducts(products); err != nil {
		return Invoice{}, err
	}

	inv.Items = newItems
	inv.Subtotal, inv.Tax, inv.Total = ComputeTotals(newItems)
	invoices[idx] = inv
	if err := l.store.SaveInvoices(invoices); err != nil {
		return Invoice{}, err
	}
	return inv, nil
}

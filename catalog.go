package facturas

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Catalog manages the product list. Every operation loads the full
// snapshot from the store, mutates it in memory, and writes it back.
type Catalog struct {
	store Store
}

// NewCatalog creates a catalog over the given store.
func NewCatalog(store Store) *Catalog {
	return &Catalog{store: store}
}

func nextProductID(products []Product) int {
	max := 0
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}

// Add validates and appends a new product, assigning the next free id.
// The name must not collide, case-insensitively, with an existing product.
func (c *Catalog) Add(name string, price decimal.Decimal, stock int) (Product, error) {
	p, err := NewProduct(name, price, stock)
	if err != nil {
		return Product{}, err
	}
	products, err := c.store.LoadProducts()
	if err != nil {
		return Product{}, err
	}
	for _, q := range products {
		if strings.EqualFold(q.Name, p.Name) {
			return Product{}, &ValidationError{Field: "name", Reason: fmt.Sprintf("product %q already exists", q.Name)}
		}
	}
	p.ID = nextProductID(products)
	products = append(products, p)
	if err := c.store.SaveProducts(products); err != nil {
		return Product{}, err
	}
	return p, nil
}

// List returns the full catalog.
func (c *Catalog) List() ([]Product, error) {
	return c.store.LoadProducts()
}

// Get returns the product with the given id.
func (c *Catalog) Get(id int) (Product, error) {
	products, err := c.store.LoadProducts()
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, &NotFoundError{Kind: "product", Term: strconv.Itoa(id)}
}

// Find matches products by term. An all-digits term matches by exact id,
// anything else matches names containing the term case-insensitively.
// An empty result is not an error.
func (c *Catalog) Find(term string) ([]Product, error) {
	products, err := c.store.LoadProducts()
	if err != nil {
		return nil, err
	}
	return findProducts(products, term), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func findProducts(products []Product, term string) []Product {
	var matches []Product
	if isDigits(term) {
		id, _ := strconv.Atoi(term)
		for _, p := range products {
			if p.ID == id {
				matches = append(matches, p)
			}
		}
		return matches
	}
	lower := strings.ToLower(term)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), lower) {
			matches = append(matches, p)
		}
	}
	return matches
}

// resolveOne narrows term to the index of exactly one product, failing
// with NotFoundError on zero matches and AmbiguousError on several.
func resolveOne(products []Product, term string) (int, error) {
	matches := findProducts(products, term)
	switch len(matches) {
	case 0:
		return 0, &NotFoundError{Kind: "product", Term: term}
	case 1:
		for i, p := range products {
			if p.ID == matches[0].ID {
				return i, nil
			}
		}
		return 0, &NotFoundError{Kind: "product", Term: term}
	default:
		ids := make([]int, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return 0, &AmbiguousError{Term: term, IDs: ids}
	}
}

// Update sets the price or the stock of the single product matching term,
// under the same non-negativity constraints as Add.
func (c *Catalog) Update(term string, field Field, value string) (Product, error) {
	products, err := c.store.LoadProducts()
	if err != nil {
		return Product{}, err
	}
	i, err := resolveOne(products, term)
	if err != nil {
		return Product{}, err
	}
	switch field {
	case FieldPrice:
		price, perr := decimal.NewFromString(value)
		if perr != nil || price.IsNegative() {
			return Product{}, &ValidationError{Field: "price", Reason: fmt.Sprintf("%q is not a non-negative number", value)}
		}
		products[i].Price = price
	case FieldStock:
		stock, serr := strconv.Atoi(value)
		if serr != nil || stock < 0 {
			return Product{}, &ValidationError{Field: "stock", Reason: fmt.Sprintf("%q is not a non-negative integer", value)}
		}
		products[i].Stock = stock
	default:
		return Product{}, &ValidationError{Field: "field", Reason: "must be price or stock"}
	}
	if err := c.store.SaveProducts(products); err != nil {
		return Product{}, err
	}
	return products[i], nil
}

// Delete removes the single product matching term and returns it.
// Historical invoices keep their own name and price snapshots, so no
// referential check is made against the invoice log.
func (c *Catalog) Delete(term string) (Product, error) {
	products, err := c.store.LoadProducts()
	if err != nil {
		return Product{}, err
	}
	i, err := resolveOne(products, term)
	if err != nil {
		return Product{}, err
	}
	removed := products[i]
	products = append(products[:i], products[i+1:]...)
	if err := c.store.SaveProducts(products); err != nil {
		return Product{}, err
	}
	return removed, nil
}

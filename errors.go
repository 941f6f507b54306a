package facturas

import "fmt"

// ValidationError reports a user-supplied value that violates a field
// constraint. The operation that raised it has not persisted anything.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a term or id that resolves to no entity.
type NotFoundError struct {
	Kind string // "product" or "invoice"
	Term string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Term)
}

// AmbiguousError reports a search term that matches more than one product.
// Callers must retry with one of the listed ids.
type AmbiguousError struct {
	Term string
	IDs  []int
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("term %q matches several products %v, use an id", e.Term, e.IDs)
}

// InsufficientStockError reports a requested or derived quantity that
// exceeds a product's available stock, either at cart-build time or at
// commit time.
type InsufficientStockError struct {
	ProductID int
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (%s): requested %d, available %d",
		e.ProductID, e.Name, e.Requested, e.Available)
}

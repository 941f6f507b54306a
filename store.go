package facturas

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"slices"
)

// Store persists the product catalog and the invoice log as
// whole-collection snapshots. There are no partial updates: every consumer
// reads a full snapshot, mutates it in memory, and writes it back.
//
// Concurrent external writers are unsupported; the contract is
// single-process read-modify-write with no interleaving within a call.
type Store interface {
	LoadProducts() ([]Product, error)
	SaveProducts([]Product) error
	LoadInvoices() ([]Invoice, error)
	SaveInvoices([]Invoice) error
	// AppendInvoice is an optimized append path, semantically equivalent
	// to saving the whole log with one more invoice.
	AppendInvoice(Invoice) error
}

// FileStore is the flat-file Store: a pipe-delimited inventory file and a
// JSONL invoice log. Missing files read as empty collections; malformed
// lines are dropped on load and reported through the standard logger.
type FileStore struct {
	InventoryPath string
	InvoicesPath  string
}

func NewFileStore(inventoryPath, invoicesPath string) *FileStore {
	return &FileStore{InventoryPath: inventoryPath, InvoicesPath: invoicesPath}
}

// Init creates the backing files when they are missing, writing the
// inventory header. Existing files are left untouched.
func (s *FileStore) Init() error {
	if _, err := os.Stat(s.InventoryPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(s.InventoryPath, []byte(InventoryHeader+"\n"), 0644); err != nil {
			return fmt.Errorf("could not create inventory file %q: %w", s.InventoryPath, err)
		}
	}
	if _, err := os.Stat(s.InvoicesPath); errors.Is(err, fs.ErrNotExist) {
		if err := os.WriteFile(s.InvoicesPath, nil, 0644); err != nil {
			return fmt.Errorf("could not create invoices file %q: %w", s.InvoicesPath, err)
		}
	}
	return nil
}

func (s *FileStore) LoadProducts() ([]Product, error) {
	f, err := os.Open(s.InventoryPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open inventory file %q: %w", s.InventoryPath, err)
	}
	defer f.Close()

	products, skipped, err := DecodeProducts(f)
	if err != nil {
		return nil, fmt.Errorf("could not read inventory file %q: %w", s.InventoryPath, err)
	}
	if skipped > 0 {
		log.Printf("warning: dropped %d malformed lines from %q", skipped, s.InventoryPath)
	}
	return products, nil
}

func (s *FileStore) SaveProducts(products []Product) error {
	f, err := os.Create(s.InventoryPath)
	if err != nil {
		return fmt.Errorf("could not write inventory file %q: %w", s.InventoryPath, err)
	}
	defer f.Close()
	return EncodeProducts(f, products)
}

func (s *FileStore) LoadInvoices() ([]Invoice, error) {
	f, err := os.Open(s.InvoicesPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not open invoices file %q: %w", s.InvoicesPath, err)
	}
	defer f.Close()

	invoices, skipped, err := DecodeInvoices(f)
	if err != nil {
		return nil, fmt.Errorf("could not read invoices file %q: %w", s.InvoicesPath, err)
	}
	if skipped > 0 {
		log.Printf("warning: dropped %d malformed lines from %q", skipped, s.InvoicesPath)
	}
	return invoices, nil
}

func (s *FileStore) SaveInvoices(invoices []Invoice) error {
	f, err := os.Create(s.InvoicesPath)
	if err != nil {
		return fmt.Errorf("could not write invoices file %q: %w", s.InvoicesPath, err)
	}
	defer f.Close()
	return EncodeInvoices(f, invoices)
}

func (s *FileStore) AppendInvoice(inv Invoice) error {
	f, err := os.OpenFile(s.InvoicesPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("could not open invoices file %q: %w", s.InvoicesPath, err)
	}
	defer f.Close()
	return EncodeInvoice(f, inv)
}

// MemStore is an in-memory Store used as a test double. Loads return
// copies and saves store copies, so callers keep the same snapshot
// semantics as the file store.
type MemStore struct {
	Products []Product
	Invoices []Invoice

	// SaveProductsErr and SaveInvoicesErr, when set, force the matching
	// save to fail. Tests use them to exercise partial-failure handling.
	SaveProductsErr error
	SaveInvoicesErr error
}

func (s *MemStore) LoadProducts() ([]Product, error) {
	return slices.Clone(s.Products), nil
}

func (s *MemStore) SaveProducts(products []Product) error {
	if s.SaveProductsErr != nil {
		return s.SaveProductsErr
	}
	s.Products = slices.Clone(products)
	return nil
}

func (s *MemStore) LoadInvoices() ([]Invoice, error) {
	return slices.Clone(s.Invoices), nil
}

func (s *MemStore) SaveInvoices(invoices []Invoice) error {
	if s.SaveInvoicesErr != nil {
		return s.SaveInvoicesErr
	}
	s.Invoices = slices.Clone(invoices)
	return nil
}

func (s *MemStore) AppendInvoice(inv Invoice) error {
	if s.SaveInvoicesErr != nil {
		return s.SaveInvoicesErr
	}
	s.Invoices = append(s.Invoices, inv)
	return nil
}

// Package repositories defines the persistence ports the core services
// depend on. Each service owns its own store: the sales service never reads
// the journal or product tables directly.
package repositories

import (
	"context"
	"time"

	"github.com/retailops/retail-suite/internal/core/domain"
)

// SaleRepositoryFacade combines read and write operations for sale records.
type SaleRepositoryFacade interface {
	// SaveSale persists a new sale and fills in its generated row ID.
	SaveSale(ctx context.Context, sale *domain.Sale) error

	// FindSaleByNumber retrieves a sale by its sale number.
	// Returns apperrors.ErrNotFound when absent.
	FindSaleByNumber(ctx context.Context, saleNumber string) (*domain.Sale, error)

	// ListSales retrieves all sales, newest first.
	ListSales(ctx context.Context) ([]domain.Sale, error)

	// FindSalesByCustomer retrieves sales whose customer name contains the
	// given fragment, case-insensitively.
	FindSalesByCustomer(ctx context.Context, customerName string) ([]domain.Sale, error)

	// FindSalesByDateRange retrieves sales whose sale date falls within
	// [start, end] inclusive.
	FindSalesByDateRange(ctx context.Context, start, end time.Time) ([]domain.Sale, error)
}

// JournalRepositoryFacade combines read and write operations for journal
// entries.
type JournalRepositoryFacade interface {
	// SaveEntry persists a new journal entry and fills in its generated row
	// ID. Returns apperrors.ErrDuplicate when the entry number collides.
	SaveEntry(ctx context.Context, entry *domain.JournalEntry) error

	// UpdateEntry persists status, approval and reversal fields of an
	// existing entry. Returns apperrors.ErrNotFound when absent.
	UpdateEntry(ctx context.Context, entry domain.JournalEntry) error

	// FindEntryByNumber retrieves an entry by its entry number.
	// Returns apperrors.ErrNotFound when absent.
	FindEntryByNumber(ctx context.Context, entryNumber string) (*domain.JournalEntry, error)

	// ListEntries retrieves all journal entries, newest first.
	ListEntries(ctx context.Context) ([]domain.JournalEntry, error)

	// FindEntriesByStatus retrieves entries in the given status.
	FindEntriesByStatus(ctx context.Context, status domain.EntryStatus) ([]domain.JournalEntry, error)

	// FindEntriesByAccountCode retrieves entries posted against an account.
	FindEntriesByAccountCode(ctx context.Context, accountCode string) ([]domain.JournalEntry, error)

	// FindEntriesByReference retrieves entries linked to a source document,
	// e.g. every line generated by one sale.
	FindEntriesByReference(ctx context.Context, referenceNumber string) ([]domain.JournalEntry, error)

	// FindEntriesByDateRange retrieves entries whose transaction date falls
	// within [start, end] inclusive.
	FindEntriesByDateRange(ctx context.Context, start, end time.Time) ([]domain.JournalEntry, error)
}

// ProductRepositoryFacade combines read and write operations for products.
type ProductRepositoryFacade interface {
	// SaveProduct persists a new product and fills in its generated ID.
	// Returns apperrors.ErrDuplicate when the SKU collides.
	SaveProduct(ctx context.Context, product *domain.Product) error

	// UpdateProduct persists the full state of an existing product.
	// Returns apperrors.ErrNotFound when absent.
	UpdateProduct(ctx context.Context, product domain.Product) error

	// FindProductByID retrieves a product by ID.
	// Returns apperrors.ErrNotFound when absent.
	FindProductByID(ctx context.Context, id int64) (*domain.Product, error)

	// ListProducts retrieves all products.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// FindProductsByCategory retrieves products in a category.
	FindProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)

	// FindLowStockProducts retrieves active products at or below their
	// minimum stock level.
	FindLowStockProducts(ctx context.Context) ([]domain.Product, error)
}

// Package services defines the service facades the HTTP handlers depend on.
package services

import (
	"context"
	"time"

	"github.com/retailops/retail-suite/internal/core/domain"
	"github.com/retailops/retail-suite/internal/dto"
)

// SaleSvcFacade is the inbound surface of the sales service.
type SaleSvcFacade interface {
	// CreateSale runs the sale saga: validate remote stock, persist the
	// sale, push the stock decrement, and emit the balanced pair of journal
	// entries. Stock and accounting pushes are best-effort once the sale is
	// committed.
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*domain.Sale, error)

	GetSaleByNumber(ctx context.Context, saleNumber string) (*domain.Sale, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
	ListSalesByCustomer(ctx context.Context, customerName string) ([]domain.Sale, error)
	ListSalesByDateRange(ctx context.Context, start, end time.Time) ([]domain.Sale, error)
}

// JournalSvcFacade is the inbound surface of the accounting service.
type JournalSvcFacade interface {
	// CreateEntry persists a new entry. Entries always start in draft; an
	// entry number is minted when the request carries none.
	CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)

	GetEntryByNumber(ctx context.Context, entryNumber string) (*domain.JournalEntry, error)
	ListEntries(ctx context.Context) ([]domain.JournalEntry, error)
	ListEntriesByStatus(ctx context.Context, status domain.EntryStatus) ([]domain.JournalEntry, error)
	ListEntriesByAccountCode(ctx context.Context, accountCode string) ([]domain.JournalEntry, error)
	ListEntriesByDateRange(ctx context.Context, start, end time.Time) ([]domain.JournalEntry, error)

	// PostEntry moves a draft entry to posted.
	PostEntry(ctx context.Context, entryNumber string) (*domain.JournalEntry, error)
	// ApproveEntry moves a draft entry to approved, recording the approver.
	ApproveEntry(ctx context.Context, entryNumber, approvedBy string) (*domain.JournalEntry, error)
	// ReverseEntry moves a posted or approved entry to reversed, recording
	// the reversing entry's number.
	ReverseEntry(ctx context.Context, entryNumber, reversedByEntry string) (*domain.JournalEntry, error)
}

// ProductSvcFacade is the inbound surface of the product service.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)
	GetProductByID(ctx context.Context, id int64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id int64, req dto.UpdateProductRequest) (*domain.Product, error)
	UpdateProductStock(ctx context.Context, id int64, stockQuantity int) (*domain.Product, error)
	ListProductsByCategory(ctx context.Context, category string) ([]domain.Product, error)
	ListLowStockProducts(ctx context.Context) ([]domain.Product, error)
}

// Package gateways defines the remote-service boundaries the sale
// orchestrator depends on. Implementations are thin HTTP clients; retry and
// backoff behavior lives in explicit wrappers, not hidden in the transport.
package gateways

import (
	"context"

	"github.com/retailops/retail-suite/internal/core/domain"
)

// ProductStockGateway reads and mutates remote product state.
type ProductStockGateway interface {
	// GetProduct fetches the current product state by ID.
	// Returns apperrors.ErrNotFound when the product does not exist.
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)

	// UpdateProduct pushes the full product state, including the decremented
	// stock quantity, and returns the state the remote service accepted.
	UpdateProduct(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// LedgerGateway submits journal entries to the remote accounting service.
type LedgerGateway interface {
	// CreateEntry submits one journal entry. Returns apperrors.ErrDuplicate
	// when the entry number collides with an existing entry.
	CreateEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error)
}

// SagaEventSink receives the tolerated failures of the sale saga: conditions
// that do not fail the sale but must be observable for out-of-band
// reconciliation.
type SagaEventSink interface {
	// StockUpdateFailed reports that the stock decrement could not be pushed
	// after the sale was already committed.
	StockUpdateFailed(ctx context.Context, sale domain.Sale, err error)

	// AccountingPostingFailed reports that a journal entry submission failed
	// after the sale was already committed.
	AccountingPostingFailed(ctx context.Context, sale domain.Sale, entryNumber string, err error)
}

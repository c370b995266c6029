package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/retailops/retail-suite/internal/apperrors"
	"github.com/retailops/retail-suite/internal/core/domain"
	"github.com/retailops/retail-suite/internal/core/ports/gateways"
	portsrepo "github.com/retailops/retail-suite/internal/core/ports/repositories"
	portssvc "github.com/retailops/retail-suite/internal/core/ports/services"
	"github.com/retailops/retail-suite/internal/dto"
	"github.com/retailops/retail-suite/internal/middleware"
	"github.com/shopspring/decimal"
)

// Account codes for the balanced pair every sale posts to the ledger.
const (
	accountsReceivableCode = "1200"
	accountsReceivableName = "Accounts Receivable"
	salesRevenueCode       = "4100"
	salesRevenueName       = "Sales Revenue"

	salesDepartment    = "SALES"
	journalEntryAuthor = "SALES_SERVICE"
)

// saleService runs the sale saga and serves sale reads.
type saleService struct {
	saleRepo portsrepo.SaleRepositoryFacade
	products gateways.ProductStockGateway
	ledger   gateways.LedgerGateway
	events   gateways.SagaEventSink
	now      func() time.Time
}

// NewSaleService creates a new SaleService. The ledger gateway is expected
// to already carry the duplicate-entry retry wrapper.
func NewSaleService(saleRepo portsrepo.SaleRepositoryFacade, products gateways.ProductStockGateway, ledger gateways.LedgerGateway, events gateways.SagaEventSink) portssvc.SaleSvcFacade {
	return &saleService{
		saleRepo: saleRepo,
		products: products,
		ledger:   ledger,
		events:   events,
		now:      time.Now,
	}
}

// Ensure saleService implements the portssvc.SaleSvcFacade interface
var _ portssvc.SaleSvcFacade = (*saleService)(nil)

// CreateSale executes the sale saga.
//
// Steps 1-3 (product fetch, stock validation, sale persistence) are fatal:
// any failure aborts the operation with no sale recorded. Persisting the
// sale is the commit point. Steps 4-5 (stock decrement push, journal entry
// submission) are best-effort relative to the committed sale: their failures
// are reported through the event sink and the sale still succeeds, so they
// can be reconciled out-of-band.
func (s *saleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// 1. Fetch current product state.
	product, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product %d: %w", req.ProductID, err)
	}

	// 2. Validate stock availability before any write.
	if product.StockQuantity < req.Quantity {
		return nil, &apperrors.InsufficientStockError{Available: product.StockQuantity, Requested: req.Quantity}
	}

	// 3. Build and persist the sale. The unit price comes from the fetched
	// product, never from the client.
	now := s.now().UTC()
	sale := domain.Sale{
		SaleNumber:         domain.NewSaleNumber(),
		ProductID:          req.ProductID,
		Quantity:           req.Quantity,
		UnitPrice:          product.Price,
		DiscountPercentage: decimal.Zero,
		DiscountAmount:     decimal.Zero,
		SaleDate:           now,
		CustomerName:       req.CustomerName,
		PaymentMethod:      "cash",
		PaymentStatus:      domain.PaymentPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	sale.Recalculate()

	if err := s.saleRepo.SaveSale(ctx, &sale); err != nil {
		logger.Error("Failed to save sale", slog.String("error", err.Error()), slog.String("sale_number", sale.SaleNumber))
		return nil, fmt.Errorf("failed to save sale: %w", err)
	}
	// Commit point: from here on the sale has happened.

	// 4. Push the decremented stock back to the product service.
	product.StockQuantity -= req.Quantity
	if _, err := s.products.UpdateProduct(ctx, *product); err != nil {
		logger.Error("Failed to push stock decrement after sale commit",
			slog.String("sale_number", sale.SaleNumber),
			slog.Int64("product_id", product.ID),
			slog.String("error", err.Error()))
		s.events.StockUpdateFailed(ctx, sale, err)
	}

	// 5. Emit the balanced pair of journal entries.
	s.postAccountingEntries(ctx, sale)

	logger.Info("Sale created successfully",
		slog.String("sale_number", sale.SaleNumber),
		slog.Int64("product_id", sale.ProductID),
		slog.String("total_amount", sale.TotalAmount.String()))
	return &sale, nil
}

// postAccountingEntries submits the debit/credit pair for a committed sale.
// The first failure stops the sequence; both outcomes are reported through
// the event sink rather than propagated, and the sale still succeeds.
func (s *saleService) postAccountingEntries(ctx context.Context, sale domain.Sale) {
	logger := middleware.GetLoggerFromCtx(ctx)

	debit := s.buildJournalEntry(sale, accountsReceivableCode, accountsReceivableName, domain.BalanceDebit)
	credit := s.buildJournalEntry(sale, salesRevenueCode, salesRevenueName, domain.BalanceCredit)

	for _, entry := range []domain.JournalEntry{debit, credit} {
		if _, err := s.ledger.CreateEntry(ctx, entry); err != nil {
			logger.Error("Failed to submit journal entry for sale",
				slog.String("sale_number", sale.SaleNumber),
				slog.String("entry_number", entry.EntryNumber),
				slog.String("account_code", entry.AccountCode),
				slog.String("error", err.Error()))
			s.events.AccountingPostingFailed(ctx, sale, entry.EntryNumber, err)
			return
		}
	}

	logger.Info("Accounting entries created for sale", slog.String("sale_number", sale.SaleNumber))
}

// buildJournalEntry constructs one side of the double-entry pair. Both
// sides carry the sale's total amount, so their debit and credit totals
// balance.
func (s *saleService) buildJournalEntry(sale domain.Sale, accountCode, accountName string, balanceType domain.BalanceType) domain.JournalEntry {
	now := s.now().UTC()
	entry := domain.JournalEntry{
		EntryNumber:     domain.NewEntryNumber(now),
		TransactionDate: now,
		AccountCode:     accountCode,
		AccountName:     accountName,
		Description:     fmt.Sprintf("Sale - %s - Product ID: %d", sale.SaleNumber, sale.ProductID),
		ReferenceNumber: sale.SaleNumber,
		DebitAmount:     decimal.Zero,
		CreditAmount:    decimal.Zero,
		BalanceType:     balanceType,
		Department:      salesDepartment,
		CurrencyCode:    "USD",
		ExchangeRate:    decimal.NewFromInt(1),
		CreatedBy:       journalEntryAuthor,
		Status:          domain.StatusDraft,
		Notes:           "Automatic entry created from product sale",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if balanceType == domain.BalanceDebit {
		entry.DebitAmount = sale.TotalAmount
	} else {
		entry.CreditAmount = sale.TotalAmount
	}
	return entry
}

// GetSaleByNumber retrieves a sale by its sale number.
func (s *saleService) GetSaleByNumber(ctx context.Context, saleNumber string) (*domain.Sale, error) {
	sale, err := s.saleRepo.FindSaleByNumber(ctx, saleNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to find sale %s: %w", saleNumber, err)
	}
	return sale, nil
}

// ListSales retrieves all sales.
func (s *saleService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	return s.saleRepo.ListSales(ctx)
}

// ListSalesByCustomer retrieves sales matching a customer name fragment.
func (s *saleService) ListSalesByCustomer(ctx context.Context, customerName string) ([]domain.Sale, error) {
	return s.saleRepo.FindSalesByCustomer(ctx, customerName)
}

// ListSalesByDateRange retrieves sales within a date range, inclusive.
func (s *saleService) ListSalesByDateRange(ctx context.Context, start, end time.Time) ([]domain.Sale, error) {
	return s.saleRepo.FindSalesByDateRange(ctx, start, end)
}

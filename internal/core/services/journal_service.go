package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/retailops/retail-suite/internal/core/domain"
	portsrepo "github.com/retailops/retail-suite/internal/core/ports/repositories"
	portssvc "github.com/retailops/retail-suite/internal/core/ports/services"
	"github.com/retailops/retail-suite/internal/dto"
	"github.com/retailops/retail-suite/internal/middleware"
	"github.com/shopspring/decimal"
)

// journalService provides journal entry operations for the accounting
// service: creation, lifecycle transitions and filtered reads.
type journalService struct {
	journalRepo portsrepo.JournalRepositoryFacade
	now         func() time.Time
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		journalRepo: journalRepo,
		now:         time.Now,
	}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// CreateEntry persists a new journal entry. Entries always land in draft
// regardless of what the caller supplied; transitions happen only through
// the post/approve/reverse operations. An entry number is minted when the
// request carries none.
func (s *journalService) CreateEntry(ctx context.Context, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := s.now().UTC()
	entryNumber := req.EntryNumber
	if entryNumber == "" {
		entryNumber = domain.NewEntryNumber(now)
	}
	transactionDate := now
	if req.TransactionDate != nil {
		transactionDate = *req.TransactionDate
	}
	currencyCode := req.CurrencyCode
	if currencyCode == "" {
		currencyCode = "USD"
	}
	exchangeRate := req.ExchangeRate
	if exchangeRate.IsZero() {
		exchangeRate = decimal.NewFromInt(1)
	}

	entry := domain.JournalEntry{
		EntryNumber:     entryNumber,
		TransactionDate: transactionDate,
		AccountCode:     req.AccountCode,
		AccountName:     req.AccountName,
		Description:     req.Description,
		ReferenceNumber: req.ReferenceNumber,
		DebitAmount:     req.DebitAmount,
		CreditAmount:    req.CreditAmount,
		BalanceType:     domain.BalanceType(req.BalanceType),
		Department:      req.Department,
		CostCenter:      req.CostCenter,
		ProjectCode:     req.ProjectCode,
		CurrencyCode:    currencyCode,
		ExchangeRate:    exchangeRate,
		SourceDocument:  req.SourceDocument,
		CreatedBy:       req.CreatedBy,
		Status:          domain.StatusDraft,
		Notes:           req.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := s.journalRepo.SaveEntry(ctx, &entry); err != nil {
		// ErrDuplicate propagates unchanged so callers (and the sales
		// service's retry wrapper) can branch on it.
		return nil, err
	}

	logger.Info("Journal entry created",
		slog.String("entry_number", entry.EntryNumber),
		slog.String("account_code", entry.AccountCode),
		slog.String("reference", entry.ReferenceNumber))
	return &entry, nil
}

// GetEntryByNumber retrieves a journal entry by its entry number.
func (s *journalService) GetEntryByNumber(ctx context.Context, entryNumber string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByNumber(ctx, entryNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryNumber, err)
	}
	return entry, nil
}

// ListEntries retrieves all journal entries.
func (s *journalService) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	return s.journalRepo.ListEntries(ctx)
}

// ListEntriesByStatus retrieves entries in the given status.
func (s *journalService) ListEntriesByStatus(ctx context.Context, status domain.EntryStatus) ([]domain.JournalEntry, error) {
	return s.journalRepo.FindEntriesByStatus(ctx, status)
}

// ListEntriesByAccountCode retrieves entries posted against an account.
func (s *journalService) ListEntriesByAccountCode(ctx context.Context, accountCode string) ([]domain.JournalEntry, error) {
	return s.journalRepo.FindEntriesByAccountCode(ctx, accountCode)
}

// ListEntriesByDateRange retrieves entries within a transaction date range.
func (s *journalService) ListEntriesByDateRange(ctx context.Context, start, end time.Time) ([]domain.JournalEntry, error) {
	return s.journalRepo.FindEntriesByDateRange(ctx, start, end)
}

// PostEntry transitions a draft entry to posted.
func (s *journalService) PostEntry(ctx context.Context, entryNumber string) (*domain.JournalEntry, error) {
	return s.transition(ctx, entryNumber, func(entry *domain.JournalEntry) error {
		return entry.Post(s.now().UTC())
	})
}

// ApproveEntry transitions a draft entry to approved, recording the
// approver identity and timestamp.
func (s *journalService) ApproveEntry(ctx context.Context, entryNumber, approvedBy string) (*domain.JournalEntry, error) {
	return s.transition(ctx, entryNumber, func(entry *domain.JournalEntry) error {
		return entry.Approve(approvedBy, s.now().UTC())
	})
}

// ReverseEntry transitions a posted or approved entry to reversed,
// recording the reversing entry's number.
func (s *journalService) ReverseEntry(ctx context.Context, entryNumber, reversedByEntry string) (*domain.JournalEntry, error) {
	return s.transition(ctx, entryNumber, func(entry *domain.JournalEntry) error {
		return entry.Reverse(reversedByEntry, s.now().UTC())
	})
}

// transition loads an entry, applies a lifecycle change, and persists it.
func (s *journalService) transition(ctx context.Context, entryNumber string, apply func(*domain.JournalEntry) error) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.journalRepo.FindEntryByNumber(ctx, entryNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryNumber, err)
	}

	if err := apply(entry); err != nil {
		logger.Warn("Journal entry transition rejected",
			slog.String("entry_number", entryNumber),
			slog.String("status", string(entry.Status)),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.journalRepo.UpdateEntry(ctx, *entry); err != nil {
		logger.Error("Failed to persist journal entry transition",
			slog.String("entry_number", entryNumber),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update journal entry %s: %w", entryNumber, err)
	}

	logger.Info("Journal entry transitioned",
		slog.String("entry_number", entryNumber),
		slog.String("status", string(entry.Status)))
	return entry, nil
}

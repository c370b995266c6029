package dto

import (
	"time"

	"github.com/retailops/retail-suite/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalEntryRequest is the inbound payload for creating a journal
// entry. The entry number is optional; the service mints one when absent.
// Any caller-supplied status is ignored: entries always start in draft.
type CreateJournalEntryRequest struct {
	EntryNumber     string          `json:"journalEntryNumber"`
	TransactionDate *time.Time      `json:"transactionDate"`
	AccountCode     string          `json:"accountCode" binding:"required"`
	AccountName     string          `json:"accountName"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	BalanceType     string          `json:"balanceType" binding:"required,oneof=D C"`
	Department      string          `json:"department"`
	CostCenter      string          `json:"costCenter"`
	ProjectCode     string          `json:"projectCode"`
	CurrencyCode    string          `json:"currencyCode"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	SourceDocument  string          `json:"sourceDocument"`
	CreatedBy       string          `json:"createdBy"`
	Notes           string          `json:"notes"`
}

// ApproveEntryRequest carries the approver identity for an approval.
type ApproveEntryRequest struct {
	ApprovedBy string `json:"approvedBy" binding:"required"`
}

// ReverseEntryRequest carries the number of the entry that reverses the
// target entry.
type ReverseEntryRequest struct {
	ReversedByEntry string `json:"reversedByEntry" binding:"required"`
}

// JournalEntryResponse is the external representation of a journal entry.
type JournalEntryResponse struct {
	ID              int64           `json:"id"`
	EntryNumber     string          `json:"journalEntryNumber"`
	TransactionDate time.Time       `json:"transactionDate"`
	PostingDate     *time.Time      `json:"postingDate,omitempty"`
	AccountCode     string          `json:"accountCode"`
	AccountName     string          `json:"accountName"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"`
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	BalanceType     string          `json:"balanceType"`
	Department      string          `json:"department,omitempty"`
	CostCenter      string          `json:"costCenter,omitempty"`
	ProjectCode     string          `json:"projectCode,omitempty"`
	CurrencyCode    string          `json:"currencyCode"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	SourceDocument  string          `json:"sourceDocument,omitempty"`
	CreatedBy       string          `json:"createdBy"`
	ApprovedBy      string          `json:"approvedBy,omitempty"`
	ApprovalDate    *time.Time      `json:"approvalDate,omitempty"`
	Status          string          `json:"status"`
	ReversedByEntry string          `json:"reversedByEntry,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ToJournalEntryResponse converts a domain JournalEntry to its external
// representation.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	return JournalEntryResponse{
		ID:              e.ID,
		EntryNumber:     e.EntryNumber,
		TransactionDate: e.TransactionDate,
		PostingDate:     e.PostingDate,
		AccountCode:     e.AccountCode,
		AccountName:     e.AccountName,
		Description:     e.Description,
		ReferenceNumber: e.ReferenceNumber,
		DebitAmount:     e.DebitAmount,
		CreditAmount:    e.CreditAmount,
		BalanceType:     string(e.BalanceType),
		Department:      e.Department,
		CostCenter:      e.CostCenter,
		ProjectCode:     e.ProjectCode,
		CurrencyCode:    e.CurrencyCode,
		ExchangeRate:    e.ExchangeRate,
		SourceDocument:  e.SourceDocument,
		CreatedBy:       e.CreatedBy,
		ApprovedBy:      e.ApprovedBy,
		ApprovalDate:    e.ApprovalDate,
		Status:          string(e.Status),
		ReversedByEntry: e.ReversedByEntry,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// ToJournalEntryResponses converts a slice of domain JournalEntries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	responses := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToJournalEntryResponse(&entries[i])
	}
	return responses
}

// FromJournalEntry builds a create request from a domain entry. Used by the
// ledger gateway client to serialize saga-generated entries.
func FromJournalEntry(e domain.JournalEntry) CreateJournalEntryRequest {
	txnDate := e.TransactionDate
	return CreateJournalEntryRequest{
		EntryNumber:     e.EntryNumber,
		TransactionDate: &txnDate,
		AccountCode:     e.AccountCode,
		AccountName:     e.AccountName,
		Description:     e.Description,
		ReferenceNumber: e.ReferenceNumber,
		DebitAmount:     e.DebitAmount,
		CreditAmount:    e.CreditAmount,
		BalanceType:     string(e.BalanceType),
		Department:      e.Department,
		CostCenter:      e.CostCenter,
		ProjectCode:     e.ProjectCode,
		CurrencyCode:    e.CurrencyCode,
		ExchangeRate:    e.ExchangeRate,
		SourceDocument:  e.SourceDocument,
		CreatedBy:       e.CreatedBy,
		Notes:           e.Notes,
	}
}

// ToJournalEntry converts an accepted response back to a domain entry.
func (r JournalEntryResponse) ToJournalEntry() domain.JournalEntry {
	return domain.JournalEntry{
		ID:              r.ID,
		EntryNumber:     r.EntryNumber,
		TransactionDate: r.TransactionDate,
		PostingDate:     r.PostingDate,
		AccountCode:     r.AccountCode,
		AccountName:     r.AccountName,
		Description:     r.Description,
		ReferenceNumber: r.ReferenceNumber,
		DebitAmount:     r.DebitAmount,
		CreditAmount:    r.CreditAmount,
		BalanceType:     domain.BalanceType(r.BalanceType),
		Department:      r.Department,
		CostCenter:      r.CostCenter,
		ProjectCode:     r.ProjectCode,
		CurrencyCode:    r.CurrencyCode,
		ExchangeRate:    r.ExchangeRate,
		SourceDocument:  r.SourceDocument,
		CreatedBy:       r.CreatedBy,
		ApprovedBy:      r.ApprovedBy,
		ApprovalDate:    r.ApprovalDate,
		Status:          domain.EntryStatus(r.Status),
		ReversedByEntry: r.ReversedByEntry,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

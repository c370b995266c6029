package domain

import (
	"fmt"
	"time"

	"github.com/retailops/retail-suite/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	StatusDraft    EntryStatus = "draft"
	StatusPosted   EntryStatus = "posted"
	StatusApproved EntryStatus = "approved"
	StatusReversed EntryStatus = "reversed"
)

// BalanceType tags which side of the entry carries the amount. It is
// redundant with the debit/credit split but stored explicitly.
type BalanceType string

const (
	BalanceDebit  BalanceType = "D"
	BalanceCredit BalanceType = "C"
)

// maxEntryNumberLen bounds the journal_entry_number column.
const maxEntryNumberLen = 20

// JournalEntry is one line of the double-entry journal. Exactly one of
// DebitAmount and CreditAmount is non-zero.
type JournalEntry struct {
	ID              int64           `json:"id"`
	EntryNumber     string          `json:"journalEntryNumber"`
	TransactionDate time.Time       `json:"transactionDate"`
	PostingDate     *time.Time      `json:"postingDate,omitempty"`
	AccountCode     string          `json:"accountCode"`
	AccountName     string          `json:"accountName"`
	Description     string          `json:"description"`
	ReferenceNumber string          `json:"referenceNumber"` // links back to the originating document, e.g. a sale number
	DebitAmount     decimal.Decimal `json:"debitAmount"`
	CreditAmount    decimal.Decimal `json:"creditAmount"`
	BalanceType     BalanceType     `json:"balanceType"`
	Department      string          `json:"department"`
	CostCenter      string          `json:"costCenter"`
	ProjectCode     string          `json:"projectCode"`
	CurrencyCode    string          `json:"currencyCode"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	SourceDocument  string          `json:"sourceDocument"`
	CreatedBy       string          `json:"createdBy"`
	ApprovedBy      string          `json:"approvedBy"`
	ApprovalDate    *time.Time      `json:"approvalDate,omitempty"`
	Status          EntryStatus     `json:"status"`
	ReversedByEntry string          `json:"reversedByEntry"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// NewEntryNumber generates a journal entry number of the form
// JE-YYYYMMDD-<5 digits><3 digits>, built from the millisecond timestamp and
// a nanosecond suffix so that two entries minted in the same millisecond
// still differ with high probability. The result is always 20 characters.
func NewEntryNumber(now time.Time) string {
	millis := now.UnixMilli() % 100000
	nanos := now.UnixNano() % 1000
	return fmt.Sprintf("JE-%s-%05d%03d", now.Format("20060102"), millis, nanos)
}

// Validate checks the single-entry invariants: a bounded entry number, a
// positive amount on exactly one side, and a balance type that agrees with
// the side carrying the amount.
func (e *JournalEntry) Validate() error {
	if e.EntryNumber == "" {
		return fmt.Errorf("%w: journal entry number is required", apperrors.ErrValidation)
	}
	if len(e.EntryNumber) > maxEntryNumberLen {
		return fmt.Errorf("%w: journal entry number %q exceeds %d characters", apperrors.ErrValidation, e.EntryNumber, maxEntryNumberLen)
	}
	if e.AccountCode == "" {
		return fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	if e.DebitAmount.IsNegative() || e.CreditAmount.IsNegative() {
		return fmt.Errorf("%w: debit and credit amounts must not be negative", apperrors.ErrValidation)
	}

	debitSet := !e.DebitAmount.IsZero()
	creditSet := !e.CreditAmount.IsZero()
	if debitSet == creditSet {
		return fmt.Errorf("%w: exactly one of debit amount and credit amount must be non-zero", apperrors.ErrValidation)
	}
	if debitSet && e.BalanceType != BalanceDebit {
		return fmt.Errorf("%w: balance type must be %s for a debit entry", apperrors.ErrValidation, BalanceDebit)
	}
	if creditSet && e.BalanceType != BalanceCredit {
		return fmt.Errorf("%w: balance type must be %s for a credit entry", apperrors.ErrValidation, BalanceCredit)
	}
	return nil
}

// Amount returns the value carried by whichever side of the entry is set.
func (e *JournalEntry) Amount() decimal.Decimal {
	if !e.DebitAmount.IsZero() {
		return e.DebitAmount
	}
	return e.CreditAmount
}

// Post transitions the entry from draft to posted and stamps the posting
// date if it is not already set.
func (e *JournalEntry) Post(now time.Time) error {
	if e.Status != StatusDraft {
		return fmt.Errorf("%w: cannot post entry %s in status %s", apperrors.ErrInvalidTransition, e.EntryNumber, e.Status)
	}
	e.Status = StatusPosted
	if e.PostingDate == nil {
		postingDate := now
		e.PostingDate = &postingDate
	}
	e.UpdatedAt = now
	return nil
}

// Approve transitions the entry from draft to approved, recording who
// approved it and when.
func (e *JournalEntry) Approve(approvedBy string, now time.Time) error {
	if e.Status != StatusDraft {
		return fmt.Errorf("%w: cannot approve entry %s in status %s", apperrors.ErrInvalidTransition, e.EntryNumber, e.Status)
	}
	if approvedBy == "" {
		return fmt.Errorf("%w: approver is required", apperrors.ErrValidation)
	}
	e.Status = StatusApproved
	e.ApprovedBy = approvedBy
	approvalDate := now
	e.ApprovalDate = &approvalDate
	e.UpdatedAt = now
	return nil
}

// Reverse marks a posted or approved entry as reversed and records the
// number of the entry that reverses it. A reversed entry never leaves that
// status.
func (e *JournalEntry) Reverse(reversedByEntry string, now time.Time) error {
	if e.Status != StatusPosted && e.Status != StatusApproved {
		return fmt.Errorf("%w: cannot reverse entry %s in status %s", apperrors.ErrInvalidTransition, e.EntryNumber, e.Status)
	}
	if reversedByEntry == "" {
		return fmt.Errorf("%w: reversing entry number is required", apperrors.ErrValidation)
	}
	e.Status = StatusReversed
	e.ReversedByEntry = reversedByEntry
	e.UpdatedAt = now
	return nil
}

// ParseEntryStatus validates a status string from an external caller.
func ParseEntryStatus(s string) (EntryStatus, error) {
	switch EntryStatus(s) {
	case StatusDraft, StatusPosted, StatusApproved, StatusReversed:
		return EntryStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown journal entry status %q", apperrors.ErrValidation, s)
}

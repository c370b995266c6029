package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/retailops/retail-suite/internal/apperrors"
	"github.com/retailops/retail-suite/internal/core/domain"
	portsrepo "github.com/retailops/retail-suite/internal/core/ports/repositories"
)

type PgxJournalRepository struct {
	pool *pgxpool.Pool
}

// NewPgxJournalRepository creates a new repository for journal entries.
func NewPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{pool: pool}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalColumns = `id, journal_entry_number, transaction_date, posting_date, account_code,
	account_name, description, reference_number, debit_amount, credit_amount, balance_type,
	department, cost_center, project_code, currency_code, exchange_rate, source_document,
	created_by, approved_by, approval_date, status, reversed_by_entry, notes, created_at, updated_at`

// SaveEntry inserts a new journal entry and fills in the generated row ID.
// The unique index on journal_entry_number surfaces as ErrDuplicate so the
// caller can retry with a fresh number.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (journal_entry_number, transaction_date, posting_date, account_code,
			account_name, description, reference_number, debit_amount, credit_amount, balance_type,
			department, cost_center, project_code, currency_code, exchange_rate, source_document,
			created_by, approved_by, approval_date, status, reversed_by_entry, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		RETURNING id;
	`
	err := r.pool.QueryRow(ctx, query,
		entry.EntryNumber,
		entry.TransactionDate,
		entry.PostingDate,
		entry.AccountCode,
		entry.AccountName,
		entry.Description,
		entry.ReferenceNumber,
		entry.DebitAmount,
		entry.CreditAmount,
		entry.BalanceType,
		entry.Department,
		entry.CostCenter,
		entry.ProjectCode,
		entry.CurrencyCode,
		entry.ExchangeRate,
		entry.SourceDocument,
		entry.CreatedBy,
		entry.ApprovedBy,
		entry.ApprovalDate,
		entry.Status,
		entry.ReversedByEntry,
		entry.Notes,
		entry.CreatedAt,
		entry.UpdatedAt,
	).Scan(&entry.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: journal entry with number %s already exists", apperrors.ErrDuplicate, entry.EntryNumber)
		}
		return fmt.Errorf("failed to save journal entry %s: %w", entry.EntryNumber, err)
	}
	return nil
}

// UpdateEntry persists the mutable fields of an existing entry.
func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	query := `
		UPDATE journal_entries
		SET posting_date = $2, approved_by = $3, approval_date = $4, status = $5,
			reversed_by_entry = $6, notes = $7, updated_at = $8
		WHERE journal_entry_number = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		entry.EntryNumber,
		entry.PostingDate,
		entry.ApprovedBy,
		entry.ApprovalDate,
		entry.Status,
		entry.ReversedByEntry,
		entry.Notes,
		entry.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update journal entry %s: %w", entry.EntryNumber, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entry.EntryNumber)
	}
	return nil
}

// FindEntryByNumber retrieves an entry by its entry number.
func (r *PgxJournalRepository) FindEntryByNumber(ctx context.Context, entryNumber string) (*domain.JournalEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE journal_entry_number = $1;`, journalColumns)

	row := r.pool.QueryRow(ctx, query, entryNumber)
	entry, err := scanJournalEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: journal entry %s", apperrors.ErrNotFound, entryNumber)
		}
		return nil, fmt.Errorf("failed to find journal entry by number %s: %w", entryNumber, err)
	}
	return entry, nil
}

// ListEntries retrieves all journal entries, newest first.
func (r *PgxJournalRepository) ListEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM journal_entries ORDER BY transaction_date DESC, id DESC;`, journalColumns)
	return r.queryEntries(ctx, query)
}

// FindEntriesByStatus retrieves entries in the given status.
func (r *PgxJournalRepository) FindEntriesByStatus(ctx context.Context, status domain.EntryStatus) ([]domain.JournalEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE status = $1 ORDER BY transaction_date DESC, id DESC;`, journalColumns)
	return r.queryEntries(ctx, query, status)
}

// FindEntriesByAccountCode retrieves entries posted against an account.
func (r *PgxJournalRepository) FindEntriesByAccountCode(ctx context.Context, accountCode string) ([]domain.JournalEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE account_code = $1 ORDER BY transaction_date DESC, id DESC;`, journalColumns)
	return r.queryEntries(ctx, query, accountCode)
}

// FindEntriesByReference retrieves entries linked to a source document.
func (r *PgxJournalRepository) FindEntriesByReference(ctx context.Context, referenceNumber string) ([]domain.JournalEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE reference_number = $1 ORDER BY id ASC;`, journalColumns)
	return r.queryEntries(ctx, query, referenceNumber)
}

// FindEntriesByDateRange retrieves entries within [start, end] inclusive.
func (r *PgxJournalRepository) FindEntriesByDateRange(ctx context.Context, start, end time.Time) ([]domain.JournalEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM journal_entries WHERE transaction_date >= $1 AND transaction_date <= $2 ORDER BY transaction_date DESC, id DESC;`, journalColumns)
	return r.queryEntries(ctx, query, start, end)
}

func (r *PgxJournalRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.JournalEntry{}
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating journal entry rows: %w", err)
	}
	return entries, nil
}

func scanJournalEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var entry domain.JournalEntry
	err := row.Scan(
		&entry.ID,
		&entry.EntryNumber,
		&entry.TransactionDate,
		&entry.PostingDate,
		&entry.AccountCode,
		&entry.AccountName,
		&entry.Description,
		&entry.ReferenceNumber,
		&entry.DebitAmount,
		&entry.CreditAmount,
		&entry.BalanceType,
		&entry.Department,
		&entry.CostCenter,
		&entry.ProjectCode,
		&entry.CurrencyCode,
		&entry.ExchangeRate,
		&entry.SourceDocument,
		&entry.CreatedBy,
		&entry.ApprovedBy,
		&entry.ApprovalDate,
		&entry.Status,
		&entry.ReversedByEntry,
		&entry.Notes,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

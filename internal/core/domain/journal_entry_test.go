package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailops/retail-suite/internal/apperrors"
	"github.com/retailops/retail-suite/internal/core/domain"
)

func draftEntry() domain.JournalEntry {
	return domain.JournalEntry{
		EntryNumber:  "JE-20240115-1234567",
		AccountCode:  "1200",
		DebitAmount:  decimal.NewFromInt(100),
		CreditAmount: decimal.Zero,
		BalanceType:  domain.BalanceDebit,
		Status:       domain.StatusDraft,
	}
}

func TestNewEntryNumber_Format(t *testing.T) {
	now := time.Date(2024, 1, 15, 10, 30, 45, 123456789, time.UTC)
	number := domain.NewEntryNumber(now)

	assert.Len(t, number, 20)
	assert.Regexp(t, `^JE-20240115-\d{8}$`, number)
}

func TestJournalEntry_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.JournalEntry)
		wantErr bool
	}{
		{"valid debit entry", func(e *domain.JournalEntry) {}, false},
		{"valid credit entry", func(e *domain.JournalEntry) {
			e.DebitAmount = decimal.Zero
			e.CreditAmount = decimal.NewFromInt(100)
			e.BalanceType = domain.BalanceCredit
		}, false},
		{"missing entry number", func(e *domain.JournalEntry) {
			e.EntryNumber = ""
		}, true},
		{"entry number too long", func(e *domain.JournalEntry) {
			e.EntryNumber = "JE-20240115-123456789012345"
		}, true},
		{"missing account code", func(e *domain.JournalEntry) {
			e.AccountCode = ""
		}, true},
		{"both sides set", func(e *domain.JournalEntry) {
			e.CreditAmount = decimal.NewFromInt(100)
		}, true},
		{"both sides zero", func(e *domain.JournalEntry) {
			e.DebitAmount = decimal.Zero
		}, true},
		{"negative debit", func(e *domain.JournalEntry) {
			e.DebitAmount = decimal.NewFromInt(-5)
		}, true},
		{"balance type disagrees with debit side", func(e *domain.JournalEntry) {
			e.BalanceType = domain.BalanceCredit
		}, true},
		{"balance type disagrees with credit side", func(e *domain.JournalEntry) {
			e.DebitAmount = decimal.Zero
			e.CreditAmount = decimal.NewFromInt(100)
			e.BalanceType = domain.BalanceDebit
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := draftEntry()
			tt.mutate(&entry)
			err := entry.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJournalEntry_Post(t *testing.T) {
	now := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)

	entry := draftEntry()
	require.NoError(t, entry.Post(now))
	assert.Equal(t, domain.StatusPosted, entry.Status)
	require.NotNil(t, entry.PostingDate)
	assert.Equal(t, now, *entry.PostingDate)

	// Posting again is not allowed.
	err := entry.Post(now)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestJournalEntry_Post_KeepsExistingPostingDate(t *testing.T) {
	existing := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	entry := draftEntry()
	entry.PostingDate = &existing

	require.NoError(t, entry.Post(time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, existing, *entry.PostingDate)
}

func TestJournalEntry_Approve(t *testing.T) {
	now := time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC)

	entry := draftEntry()
	require.NoError(t, entry.Approve("controller", now))
	assert.Equal(t, domain.StatusApproved, entry.Status)
	assert.Equal(t, "controller", entry.ApprovedBy)
	require.NotNil(t, entry.ApprovalDate)
	assert.Equal(t, now, *entry.ApprovalDate)
}

func TestJournalEntry_Approve_RequiresApprover(t *testing.T) {
	entry := draftEntry()
	err := entry.Approve("", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, domain.StatusDraft, entry.Status)
}

func TestJournalEntry_Approve_NotFromPosted(t *testing.T) {
	entry := draftEntry()
	require.NoError(t, entry.Post(time.Now()))

	err := entry.Approve("controller", time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestJournalEntry_Reverse(t *testing.T) {
	now := time.Date(2024, 1, 17, 9, 0, 0, 0, time.UTC)

	t.Run("from posted", func(t *testing.T) {
		entry := draftEntry()
		require.NoError(t, entry.Post(now))
		require.NoError(t, entry.Reverse("JE-20240117-0000001", now))
		assert.Equal(t, domain.StatusReversed, entry.Status)
		assert.Equal(t, "JE-20240117-0000001", entry.ReversedByEntry)
	})

	t.Run("from approved", func(t *testing.T) {
		entry := draftEntry()
		require.NoError(t, entry.Approve("controller", now))
		require.NoError(t, entry.Reverse("JE-20240117-0000002", now))
		assert.Equal(t, domain.StatusReversed, entry.Status)
	})

	t.Run("not from draft", func(t *testing.T) {
		entry := draftEntry()
		err := entry.Reverse("JE-20240117-0000003", now)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("reversed is terminal", func(t *testing.T) {
		entry := draftEntry()
		require.NoError(t, entry.Post(now))
		require.NoError(t, entry.Reverse("JE-20240117-0000004", now))

		assert.ErrorIs(t, entry.Post(now), apperrors.ErrInvalidTransition)
		assert.ErrorIs(t, entry.Approve("controller", now), apperrors.ErrInvalidTransition)
		assert.ErrorIs(t, entry.Reverse("JE-20240117-0000005", now), apperrors.ErrInvalidTransition)
	})

	t.Run("requires reversing entry number", func(t *testing.T) {
		entry := draftEntry()
		require.NoError(t, entry.Post(now))
		err := entry.Reverse("", now)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, domain.StatusPosted, entry.Status)
	})
}

func TestParseEntryStatus(t *testing.T) {
	for _, valid := range []string{"draft", "posted", "approved", "reversed"} {
		status, err := domain.ParseEntryStatus(valid)
		require.NoError(t, err)
		assert.Equal(t, domain.EntryStatus(valid), status)
	}

	_, err := domain.ParseEntryStatus("pending")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestJournalEntry_Amount(t *testing.T) {
	entry := draftEntry()
	assert.True(t, entry.Amount().Equal(decimal.NewFromInt(100)))

	entry.DebitAmount = decimal.Zero
	entry.CreditAmount = decimal.NewFromInt(42)
	assert.True(t, entry.Amount().Equal(decimal.NewFromInt(42)))
}

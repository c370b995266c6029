package remote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retailops/retail-suite/internal/apperrors"
	"github.com/retailops/retail-suite/internal/core/domain"
	"github.com/retailops/retail-suite/internal/core/ports/gateways"
	"github.com/retailops/retail-suite/internal/middleware"
)

const (
	ledgerRetryAttempts = 3
	ledgerRetryBackoff  = 20 * time.Millisecond
)

// RetryingLedgerGateway wraps a LedgerGateway and retries entry creation when
// the remote side rejects the entry number as a duplicate. Each retry mints a
// fresh entry number before resubmitting. Any other error is returned as is.
type RetryingLedgerGateway struct {
	inner    gateways.LedgerGateway
	attempts int
	backoff  time.Duration
	now      func() time.Time
}

// NewRetryingLedgerGateway returns a gateway that retries duplicate entry
// numbers up to a fixed number of attempts with a fixed backoff between them.
func NewRetryingLedgerGateway(inner gateways.LedgerGateway) *RetryingLedgerGateway {
	return &RetryingLedgerGateway{
		inner:    inner,
		attempts: ledgerRetryAttempts,
		backoff:  ledgerRetryBackoff,
		now:      time.Now,
	}
}

// CreateEntry submits the entry, regenerating its number on duplicate
// rejections. When all attempts are spent the last duplicate error is wrapped
// in ErrRetryExhausted.
func (g *RetryingLedgerGateway) CreateEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	var lastErr error
	for attempt := 1; attempt <= g.attempts; attempt++ {
		created, err := g.inner.CreateEntry(ctx, entry)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		lastErr = err
		logger.Warn("duplicate journal entry number, retrying with a fresh one",
			"entryNumber", entry.EntryNumber,
			"attempt", attempt,
			"maxAttempts", g.attempts)
		if attempt == g.attempts {
			break
		}
		entry.EntryNumber = domain.NewEntryNumber(g.now())
		select {
		case <-time.After(g.backoff):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("creating journal entry after %d attempts: %w (%w)", g.attempts, apperrors.ErrRetryExhausted, lastErr)
}

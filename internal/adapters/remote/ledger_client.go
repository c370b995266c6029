package remote

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/retailops/retail-suite/internal/apperrors"
	"github.com/retailops/retail-suite/internal/core/domain"
	"github.com/retailops/retail-suite/internal/core/ports/gateways"
	"github.com/retailops/retail-suite/internal/dto"
	"resty.dev/v3"
)

// LedgerClient implements gateways.LedgerGateway against the accounting
// service's journal API. It does no retrying itself; wrap it in a
// RetryingLedgerGateway for the duplicate-entry-number policy.
type LedgerClient struct {
	client *resty.Client
}

// NewLedgerClient creates a ledger gateway client. All calls are bounded by
// the given timeout.
func NewLedgerClient(baseURL string, timeout time.Duration) *LedgerClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &LedgerClient{client: client}
}

var _ gateways.LedgerGateway = (*LedgerClient)(nil)

// CreateEntry submits one journal entry. A 409 from the accounting service
// means the entry number collided and maps to apperrors.ErrDuplicate.
func (c *LedgerClient) CreateEntry(ctx context.Context, entry domain.JournalEntry) (*domain.JournalEntry, error) {
	var body dto.JournalEntryResponse
	res, err := c.client.R().
		SetContext(ctx).
		SetBody(dto.FromJournalEntry(entry)).
		SetResult(&body).
		Post("/api/accounting/journal")
	if err != nil {
		return nil, &apperrors.RemoteError{Service: "accounting", Err: err}
	}
	switch {
	case res.StatusCode() == http.StatusConflict:
		return nil, fmt.Errorf("journal entry %s: %w", entry.EntryNumber, apperrors.ErrDuplicate)
	case res.IsError():
		return nil, &apperrors.RemoteError{Service: "accounting", StatusCode: res.StatusCode()}
	}

	created := body.ToJournalEntry()
	return &created, nil
}

// Close releases the underlying HTTP client resources.
func (c *LedgerClient) Close() error {
	return c.client.Close()
}

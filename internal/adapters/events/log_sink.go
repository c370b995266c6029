package events

import (
	"context"

	"github.com/retailops/retail-suite/internal/core/domain"
	"github.com/retailops/retail-suite/internal/middleware"
)

// LogSink reports saga step failures through the request-scoped structured
// logger. The sale itself has already been persisted when these fire, so the
// events are operational signals rather than errors returned to the caller.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) StockUpdateFailed(ctx context.Context, sale domain.Sale, err error) {
	middleware.GetLoggerFromCtx(ctx).Error("stock update failed after sale was persisted",
		"saleNumber", sale.SaleNumber,
		"productID", sale.ProductID,
		"quantity", sale.Quantity,
		"error", err)
}

func (s *LogSink) AccountingPostingFailed(ctx context.Context, sale domain.Sale, entryNumber string, err error) {
	middleware.GetLoggerFromCtx(ctx).Error("accounting posting failed after sale was persisted",
		"saleNumber", sale.SaleNumber,
		"entryNumber", entryNumber,
		"error", err)
}

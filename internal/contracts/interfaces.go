package contracts

import "context"

// PriceProvider supplies daily bar history for a sector-level composite.
// Implementations return ErrDataUnavailable (possibly wrapped) when the
// sector is unknown or no data exists in range.
type PriceProvider interface {
	FetchPriceHistory(ctx context.Context, sector, startDate, endDate string) (PriceHistory, error)
}

// TradingCalendar answers whether a YYYYMMDD date is a trading day.
// Used by the scheduler, not by the signal computation itself.
type TradingCalendar interface {
	IsTradingDay(date string) bool
}

// HistorySink stores collected daily bars. Implemented by the postgres
// repository; the signal service itself never writes.
type HistorySink interface {
	SaveHistory(ctx context.Context, sector string, history PriceHistory) error
}

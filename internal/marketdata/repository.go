package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/sectorpulse/internal/contracts"
)

// Repository stores sector price history in PostgreSQL. It implements both
// contracts.HistorySink and contracts.PriceProvider, so a populated table can
// replace the live API for backfilled runs.
// ⭐ SSOT: 섹터 가격 저장소는 여기서만
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new sector price repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// SaveHistory upserts one sector's bars keyed on (sector, trade_date).
func (r *Repository) SaveHistory(ctx context.Context, sector string, history contracts.PriceHistory) error {
	if len(history) == 0 {
		return nil
	}

	query := `
		INSERT INTO market.sector_prices (sector_name, trade_date, open_price, high_price, low_price, close_price, volume)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (sector_name, trade_date) DO UPDATE SET
			open_price = EXCLUDED.open_price,
			high_price = EXCLUDED.high_price,
			low_price = EXCLUDED.low_price,
			close_price = EXCLUDED.close_price,
			volume = EXCLUDED.volume
	`

	for _, bar := range history {
		tradeDate, err := time.Parse(contracts.DateFormat, bar.Date)
		if err != nil {
			return fmt.Errorf("bad bar date %q for %s: %w", bar.Date, sector, err)
		}
		if _, err := r.pool.Exec(ctx, query,
			sector, tradeDate, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume,
		); err != nil {
			return fmt.Errorf("save bar %s/%s: %w", sector, bar.Date, err)
		}
	}
	return nil
}

// FetchPriceHistory implements contracts.PriceProvider from stored rows.
// Sectors with no rows in the window map to contracts.ErrDataUnavailable.
func (r *Repository) FetchPriceHistory(ctx context.Context, sector, startDate, endDate string) (contracts.PriceHistory, error) {
	start, err := time.Parse(contracts.DateFormat, startDate)
	if err != nil {
		return nil, fmt.Errorf("bad start date %q: %w", startDate, err)
	}
	end, err := time.Parse(contracts.DateFormat, endDate)
	if err != nil {
		return nil, fmt.Errorf("bad end date %q: %w", endDate, err)
	}

	query := `
		SELECT trade_date, open_price, high_price, low_price, close_price, volume
		FROM market.sector_prices
		WHERE sector_name = $1 AND trade_date BETWEEN $2 AND $3
		ORDER BY trade_date ASC
	`

	rows, err := r.pool.Query(ctx, query, sector, start, end)
	if err != nil {
		return nil, fmt.Errorf("query history for %s: %w", sector, err)
	}
	defer rows.Close()

	var history contracts.PriceHistory
	for rows.Next() {
		var tradeDate time.Time
		var bar contracts.PriceBar
		if err := rows.Scan(&tradeDate, &bar.Open, &bar.High, &bar.Low, &bar.Close, &bar.Volume); err != nil {
			return nil, fmt.Errorf("scan history row for %s: %w", sector, err)
		}
		bar.Date = tradeDate.Format(contracts.DateFormat)
		history = append(history, bar)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(history) == 0 {
		return nil, fmt.Errorf("%w: no stored history for %s", contracts.ErrDataUnavailable, sector)
	}
	return history, nil
}

package contracts

import (
	"fmt"
	"time"
)

// DateFormat is the wire format for calendar dates (YYYYMMDD).
const DateFormat = "20060102"

// DateRange is a closed calendar-date interval in YYYYMMDD form.
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Validate checks both dates parse and start <= end.
func (r DateRange) Validate() error {
	start, err := time.Parse(DateFormat, r.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start_date %q: %w", r.StartDate, err)
	}
	end, err := time.Parse(DateFormat, r.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end_date %q: %w", r.EndDate, err)
	}
	if start.After(end) {
		return fmt.Errorf("start_date %s after end_date %s", r.StartDate, r.EndDate)
	}
	return nil
}

// PriceBar is one trading day of a sector-level composite instrument.
type PriceBar struct {
	Date   string  `json:"date"` // YYYYMMDD
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// PriceHistory is an ordered daily bar series for one sector.
// Bars are ascending by date with no duplicates; never mutated after creation.
type PriceHistory []PriceBar

// Closes returns the close-price series in bar order.
func (h PriceHistory) Closes() []float64 {
	closes := make([]float64, len(h))
	for i, bar := range h {
		closes[i] = bar.Close
	}
	return closes
}

// Validate checks ordering and duplicate-date invariants.
func (h PriceHistory) Validate() error {
	for i, bar := range h {
		if _, err := time.Parse(DateFormat, bar.Date); err != nil {
			return fmt.Errorf("bar %d: invalid date %q: %w", i, bar.Date, err)
		}
		if i > 0 && bar.Date <= h[i-1].Date {
			return fmt.Errorf("bar %d: date %s not after %s", i, bar.Date, h[i-1].Date)
		}
	}
	return nil
}

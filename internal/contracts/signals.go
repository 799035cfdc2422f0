package contracts

// Signal classifies one bar for one (sector, strategy) pair.
type Signal string

const (
	SignalBuy  Signal = "BUY"
	SignalSell Signal = "SELL"
	SignalHold Signal = "HOLD"
)

// SignalPoint is the classification attached to a single bar, together with
// the indicator values that produced it. Indicator keys depend on the
// strategy (e.g. "rsi", or "macd"/"signal"/"histogram").
type SignalPoint struct {
	Date      string             `json:"date"` // YYYYMMDD
	Signal    Signal             `json:"signal_value"`
	Indicator map[string]float64 `json:"indicator_value"`
}

// SectorStrategyResult is the signal series one strategy produced for one
// sector. LatestSignal is the point for the most recent date in range and is
// the field consumers act on; a Hold point with no date when the series is
// empty.
type SectorStrategyResult struct {
	SectorName   string        `json:"sector_name"`
	StrategyName string        `json:"strategy_name"`
	Signals      []SignalPoint `json:"signals"`
	LatestSignal SignalPoint   `json:"latest_signal"`
}

// FailedPair records a (sector, strategy) computation that was dropped from a
// batch. StrategyName is empty when the whole sector's history fetch failed.
type FailedPair struct {
	SectorName   string `json:"sector_name"`
	StrategyName string `json:"strategy_name,omitempty"`
	Reason       string `json:"reason"`
}

// SectorSignalResult is the aggregate of one batch computation.
// SectorOrder preserves the request's sector ordering; SectorSignals holds
// one entry per sector that produced at least one strategy result.
type SectorSignalResult struct {
	TotalSectors   int                               `json:"total_sectors"`
	StrategiesUsed []string                          `json:"strategies_used"`
	StartDate      string                            `json:"start_date"`
	EndDate        string                            `json:"end_date"`
	SectorOrder    []string                          `json:"sector_order"`
	SectorSignals  map[string][]SectorStrategyResult `json:"sector_signals"`
	Failures       []FailedPair                      `json:"failures,omitempty"`
}

// Empty reports whether the batch produced no sector results.
func (r *SectorSignalResult) Empty() bool {
	return r == nil || len(r.SectorSignals) == 0
}

// Results returns the strategy results for a sector, in effective strategy
// order, or nil when the sector is absent.
func (r *SectorSignalResult) Results(sector string) []SectorStrategyResult {
	if r == nil {
		return nil
	}
	return r.SectorSignals[sector]
}

// SignalSummary is a read-only aggregation over a SectorSignalResult:
// latest-signal counts across all (sector, strategy) pairs and the sectors
// whose latest signals form a strict Buy or Sell majority.
type SignalSummary struct {
	TotalSectors        int      `json:"total_sectors"`
	StrategiesUsed      []string `json:"strategies_used"`
	BuyCount            int      `json:"buy_count"`
	SellCount           int      `json:"sell_count"`
	HoldCount           int      `json:"hold_count"`
	MajorityBuySectors  []string `json:"majority_buy_sectors"`
	MajoritySellSectors []string `json:"majority_sell_sectors"`
}

// TotalSignals returns the number of latest signals counted.
func (s SignalSummary) TotalSignals() int {
	return s.BuyCount + s.SellCount + s.HoldCount
}

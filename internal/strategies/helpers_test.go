package strategies

import (
	"time"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/strategyconfig"
)

// barsFromCloses builds a daily history with the given close prices,
// starting 2025-01-01.
func barsFromCloses(closes ...float64) contracts.PriceHistory {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	history := make(contracts.PriceHistory, len(closes))
	for i, c := range closes {
		history[i] = contracts.PriceBar{
			Date:   base.AddDate(0, 0, i).Format(contracts.DateFormat),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return history
}

func defaultParams(name string) strategyconfig.Params {
	p, err := strategyconfig.New().StrategyParams(name)
	if err != nil {
		panic(err)
	}
	return p
}

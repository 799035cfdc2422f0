package sectorsignal

import (
	"github.com/wonny/sectorpulse/internal/contracts"
)

// Summarize condenses a batch result into headline counts. Counts are taken
// from each pair's latest signal only. A sector lands in a majority bucket
// when strictly more than half of its successful strategies agree.
func Summarize(result *contracts.SectorSignalResult) contracts.SignalSummary {
	summary := contracts.SignalSummary{}
	if result == nil || result.Empty() {
		return summary
	}

	summary.TotalSectors = result.TotalSectors
	summary.StrategiesUsed = append([]string(nil), result.StrategiesUsed...)

	for _, sector := range result.SectorOrder {
		results := result.SectorSignals[sector]

		var buy, sell, hold int
		for _, r := range results {
			switch r.LatestSignal.Signal {
			case contracts.SignalBuy:
				buy++
			case contracts.SignalSell:
				sell++
			default:
				hold++
			}
		}
		summary.BuyCount += buy
		summary.SellCount += sell
		summary.HoldCount += hold

		total := len(results)
		switch {
		case buy*2 > total:
			summary.MajorityBuySectors = append(summary.MajorityBuySectors, sector)
		case sell*2 > total:
			summary.MajoritySellSectors = append(summary.MajoritySellSectors, sector)
		}
	}
	return summary
}

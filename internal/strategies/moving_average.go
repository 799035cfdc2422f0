package strategies

import (
	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/strategyconfig"
)

// MovingAverage is the SMA crossover strategy: Buy when the short average
// crosses from strictly below the long average to at/above it, Sell on the
// symmetric downward cross, Hold otherwise.
type MovingAverage struct{}

func (MovingAverage) Name() string { return strategyconfig.StrategyMovingAverage }

func (MovingAverage) MinBars(p strategyconfig.Params) int {
	return p.Int(strategyconfig.ParamLongPeriod)
}

func (s MovingAverage) Compute(history contracts.PriceHistory, p strategyconfig.Params) ([]contracts.SignalPoint, error) {
	short := p.Int(strategyconfig.ParamShortPeriod)
	long := p.Int(strategyconfig.ParamLongPeriod)
	if len(history) < long {
		return nil, insufficientHistory(s.Name(), long, len(history))
	}

	closes := history.Closes()
	smaShort := SMA(closes, short)
	smaLong := SMA(closes, long)

	// Bars before long-1 have no long average and are excluded. The first
	// emitted bar has no prior averages to cross against, so it is Hold.
	points := make([]contracts.SignalPoint, 0, len(history)-long+1)
	for i := long - 1; i < len(history); i++ {
		signal := contracts.SignalHold
		if i >= long {
			switch {
			case smaShort[i-1] < smaLong[i-1] && smaShort[i] >= smaLong[i]:
				signal = contracts.SignalBuy
			case smaShort[i-1] > smaLong[i-1] && smaShort[i] <= smaLong[i]:
				signal = contracts.SignalSell
			}
		}
		points = append(points, contracts.SignalPoint{
			Date:   history[i].Date,
			Signal: signal,
			Indicator: map[string]float64{
				"sma_short": smaShort[i],
				"sma_long":  smaLong[i],
			},
		})
	}
	return points, nil
}

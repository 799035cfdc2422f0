package strategies

import (
	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/strategyconfig"
)

// RSI is the Relative Strength Index strategy with Wilder smoothing: the
// average gain/loss is seeded with the simple mean of the first period
// changes and then exponentially smoothed. Sell at/above the overbought
// threshold, Buy at/below the oversold threshold.
type RSI struct{}

func (RSI) Name() string { return strategyconfig.StrategyRSI }

func (RSI) MinBars(p strategyconfig.Params) int {
	// period price changes need period+1 bars.
	return p.Int(strategyconfig.ParamPeriod) + 1
}

func (s RSI) Compute(history contracts.PriceHistory, p strategyconfig.Params) ([]contracts.SignalPoint, error) {
	period := p.Int(strategyconfig.ParamPeriod)
	oversold := p[strategyconfig.ParamOversold]
	overbought := p[strategyconfig.ParamOverbought]
	if len(history) < period+1 {
		return nil, insufficientHistory(s.Name(), period+1, len(history))
	}

	closes := history.Closes()

	var gainSum, lossSum float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gainSum += change
		} else {
			lossSum -= change
		}
	}
	avgGain := gainSum / float64(period)
	avgLoss := lossSum / float64(period)

	// First period bars have no RSI and are excluded.
	points := make([]contracts.SignalPoint, 0, len(history)-period)
	points = append(points, s.point(history[period], avgGain, avgLoss, oversold, overbought))

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)

		points = append(points, s.point(history[i], avgGain, avgLoss, oversold, overbought))
	}
	return points, nil
}

func (RSI) point(bar contracts.PriceBar, avgGain, avgLoss, oversold, overbought float64) contracts.SignalPoint {
	// Zero average loss means RSI is 100 by definition, no division.
	rsi := 100.0
	if avgLoss != 0 {
		rs := avgGain / avgLoss
		rsi = 100 - 100/(1+rs)
	}

	signal := contracts.SignalHold
	switch {
	case rsi >= overbought:
		signal = contracts.SignalSell
	case rsi <= oversold:
		signal = contracts.SignalBuy
	}

	return contracts.SignalPoint{
		Date:      bar.Date,
		Signal:    signal,
		Indicator: map[string]float64{"rsi": rsi},
	}
}

package strategies

import (
	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/strategyconfig"
)

// MACD trades crossovers of the MACD line (fast EMA minus slow EMA) over its
// signal line (EMA of the MACD line).
type MACD struct{}

func (MACD) Name() string { return strategyconfig.StrategyMACD }

func (MACD) MinBars(p strategyconfig.Params) int {
	return p.Int(strategyconfig.ParamSlowPeriod) + p.Int(strategyconfig.ParamSignalPeriod)
}

func (s MACD) Compute(history contracts.PriceHistory, p strategyconfig.Params) ([]contracts.SignalPoint, error) {
	fast := p.Int(strategyconfig.ParamFastPeriod)
	slow := p.Int(strategyconfig.ParamSlowPeriod)
	signalPeriod := p.Int(strategyconfig.ParamSignalPeriod)

	minBars := slow + signalPeriod
	if len(history) < minBars {
		return nil, insufficientHistory(s.Name(), minBars, len(history))
	}

	closes := history.Closes()
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	// MACD line is valid from slow-1; the signal line is an EMA over it, so
	// it is valid from slow+signalPeriod-2.
	macdStart := slow - 1
	macdLine := make([]float64, len(closes))
	for i := macdStart; i < len(closes); i++ {
		macdLine[i] = emaFast[i] - emaSlow[i]
	}

	signalTail := EMA(macdLine[macdStart:], signalPeriod)
	signalLine := make([]float64, len(closes))
	copy(signalLine[macdStart:], signalTail)

	// Bars before slow+signalPeriod-1 produce no signal: the first bar with
	// a valid signal line only anchors cross detection for its successor.
	start := slow + signalPeriod - 1
	points := make([]contracts.SignalPoint, 0, len(history)-start)
	for i := start; i < len(history); i++ {
		signal := contracts.SignalHold
		switch {
		case macdLine[i-1] < signalLine[i-1] && macdLine[i] >= signalLine[i]:
			signal = contracts.SignalBuy
		case macdLine[i-1] > signalLine[i-1] && macdLine[i] <= signalLine[i]:
			signal = contracts.SignalSell
		}
		points = append(points, contracts.SignalPoint{
			Date:   history[i].Date,
			Signal: signal,
			Indicator: map[string]float64{
				"macd":      macdLine[i],
				"signal":    signalLine[i],
				"histogram": macdLine[i] - signalLine[i],
			},
		})
	}
	return points, nil
}

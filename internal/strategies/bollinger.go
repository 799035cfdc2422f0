package strategies

import (
	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/strategyconfig"
)

// BollingerBands signals mean reversion against the band envelope: Buy when
// the close touches or breaks the lower band, Sell at/above the upper band.
// With zero variance the bands collapse onto the middle average and the
// close-to-lower comparison decides first.
type BollingerBands struct{}

func (BollingerBands) Name() string { return strategyconfig.StrategyBollingerBands }

func (BollingerBands) MinBars(p strategyconfig.Params) int {
	return p.Int(strategyconfig.ParamPeriod)
}

func (s BollingerBands) Compute(history contracts.PriceHistory, p strategyconfig.Params) ([]contracts.SignalPoint, error) {
	period := p.Int(strategyconfig.ParamPeriod)
	mult := p[strategyconfig.ParamStdDev]
	if len(history) < period {
		return nil, insufficientHistory(s.Name(), period, len(history))
	}

	closes := history.Closes()
	middle := SMA(closes, period)
	std := RollingStd(closes, period)

	// First period-1 bars have no complete window and are excluded.
	points := make([]contracts.SignalPoint, 0, len(history)-period+1)
	for i := period - 1; i < len(history); i++ {
		width := mult * std[i]
		upper := middle[i] + width
		lower := middle[i] - width

		signal := contracts.SignalHold
		switch {
		case closes[i] <= lower:
			signal = contracts.SignalBuy
		case closes[i] >= upper:
			signal = contracts.SignalSell
		}

		points = append(points, contracts.SignalPoint{
			Date:   history[i].Date,
			Signal: signal,
			Indicator: map[string]float64{
				"middle_band": middle[i],
				"upper_band":  upper,
				"lower_band":  lower,
			},
		})
	}
	return points, nil
}

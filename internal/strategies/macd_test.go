package strategies

import (
	"errors"
	"testing"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/strategyconfig"
)

func macdParams(fast, slow, signal int) strategyconfig.Params {
	return strategyconfig.Params{
		strategyconfig.ParamFastPeriod:   float64(fast),
		strategyconfig.ParamSlowPeriod:   float64(slow),
		strategyconfig.ParamSignalPeriod: float64(signal),
	}
}

func TestMACD_GoldenCross(t *testing.T) {
	// Accelerating decline then sharp recovery: the MACD line crosses above
	// its signal line exactly once, at bar 5.
	history := barsFromCloses(20, 19, 17, 14, 10, 11, 15, 20)

	points, err := MACD{}.Compute(history, macdParams(2, 3, 2))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	// Output starts at slow+signal-1 = 4.
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	if points[0].Date != history[4].Date {
		t.Errorf("first point at %s, want %s", points[0].Date, history[4].Date)
	}

	var buys []string
	for _, pt := range points {
		switch pt.Signal {
		case contracts.SignalBuy:
			buys = append(buys, pt.Date)
		case contracts.SignalSell:
			t.Errorf("unexpected sell at %s", pt.Date)
		}
	}
	if len(buys) != 1 || buys[0] != history[5].Date {
		t.Errorf("buy signals = %v, want exactly one at %s", buys, history[5].Date)
	}
}

func TestMACD_DeathCross(t *testing.T) {
	// Mirror image of the golden-cross series.
	history := barsFromCloses(20, 21, 23, 26, 30, 29, 25, 20)

	points, err := MACD{}.Compute(history, macdParams(2, 3, 2))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	var sells []string
	for _, pt := range points {
		switch pt.Signal {
		case contracts.SignalSell:
			sells = append(sells, pt.Date)
		case contracts.SignalBuy:
			t.Errorf("unexpected buy at %s", pt.Date)
		}
	}
	if len(sells) != 1 || sells[0] != history[5].Date {
		t.Errorf("sell signals = %v, want exactly one at %s", sells, history[5].Date)
	}
}

func TestMACD_HistogramConsistency(t *testing.T) {
	history := barsFromCloses(20, 19, 17, 14, 10, 11, 15, 20)

	points, err := MACD{}.Compute(history, macdParams(2, 3, 2))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	for _, pt := range points {
		macd := pt.Indicator["macd"]
		signal := pt.Indicator["signal"]
		hist := pt.Indicator["histogram"]
		if diff := hist - (macd - signal); diff > 1e-12 || diff < -1e-12 {
			t.Errorf("%s: histogram %v != macd-signal %v", pt.Date, hist, macd-signal)
		}
	}
}

func TestMACD_InsufficientHistory(t *testing.T) {
	// Defaults need slow+signal = 35 bars.
	closes := make([]float64, 34)
	for i := range closes {
		closes[i] = float64(i + 1)
	}

	_, err := MACD{}.Compute(barsFromCloses(closes...), defaultParams(strategyconfig.StrategyMACD))
	if !errors.Is(err, contracts.ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory for 34 bars, got %v", err)
	}
}

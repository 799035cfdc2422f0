package strategies

import (
	"errors"
	"math"
	"testing"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/strategyconfig"
)

func bbParams(period int, stdDev float64) strategyconfig.Params {
	return strategyconfig.Params{
		strategyconfig.ParamPeriod: float64(period),
		strategyconfig.ParamStdDev: stdDev,
	}
}

func TestBollingerBands_LowerTouchBuys(t *testing.T) {
	// A sharp drop through the lower band on the final bar.
	history := barsFromCloses(10, 11, 10, 11, 4)

	points, err := BollingerBands{}.Compute(history, bbParams(3, 1))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	// First period-1 bars excluded.
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	if points[0].Signal != contracts.SignalHold || points[1].Signal != contracts.SignalHold {
		t.Errorf("expected holds before the drop, got %s, %s", points[0].Signal, points[1].Signal)
	}
	if points[2].Signal != contracts.SignalBuy {
		t.Errorf("final signal = %s, want BUY", points[2].Signal)
	}
}

func TestBollingerBands_UpperTouchSells(t *testing.T) {
	history := barsFromCloses(10, 11, 10, 11, 18)

	points, err := BollingerBands{}.Compute(history, bbParams(3, 1))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if got := points[len(points)-1].Signal; got != contracts.SignalSell {
		t.Errorf("final signal = %s, want SELL", got)
	}
}

func TestBollingerBands_BandGeometry(t *testing.T) {
	history := barsFromCloses(10, 11, 10, 11, 18)

	points, err := BollingerBands{}.Compute(history, bbParams(3, 2))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	last := points[len(points)-1].Indicator
	middle, upper, lower := last["middle_band"], last["upper_band"], last["lower_band"]

	// Window [10, 11, 18]: mean 13, sample std sqrt(19).
	if math.Abs(middle-13) > 1e-9 {
		t.Errorf("middle_band = %v, want 13", middle)
	}
	wantWidth := 2 * math.Sqrt(19)
	if math.Abs((upper-lower)-2*wantWidth) > 1e-9 {
		t.Errorf("band width = %v, want %v", upper-lower, 2*wantWidth)
	}
	if math.Abs((upper+lower)/2-middle) > 1e-9 {
		t.Error("bands not centered on middle band")
	}
}

func TestBollingerBands_ZeroVariance(t *testing.T) {
	// Constant series: bands collapse onto the average. The comparison
	// stays well defined; no NaN escapes.
	history := barsFromCloses(10, 10, 10, 10, 10)

	points, err := BollingerBands{}.Compute(history, bbParams(3, 2))
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	for _, pt := range points {
		for key, v := range pt.Indicator {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Errorf("%s: %s = %v", pt.Date, key, v)
			}
		}
		if pt.Indicator["upper_band"] != pt.Indicator["lower_band"] {
			t.Errorf("%s: bands did not collapse", pt.Date)
		}
	}
}

func TestBollingerBands_InsufficientHistory(t *testing.T) {
	_, err := BollingerBands{}.Compute(barsFromCloses(10, 10), bbParams(3, 2))
	if !errors.Is(err, contracts.ErrInsufficientHistory) {
		t.Errorf("expected ErrInsufficientHistory, got %v", err)
	}
}

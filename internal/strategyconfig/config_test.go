package strategyconfig

import (
	"errors"
	"testing"
	"time"

	"github.com/wonny/sectorpulse/internal/contracts"
)

func TestRegistry_StrategyParams(t *testing.T) {
	r := New()

	p, err := r.StrategyParams(StrategyMACD)
	if err != nil {
		t.Fatalf("StrategyParams(MACD) failed: %v", err)
	}
	if p.Int(ParamFastPeriod) != 12 || p.Int(ParamSlowPeriod) != 26 || p.Int(ParamSignalPeriod) != 9 {
		t.Errorf("unexpected MACD defaults: %v", p)
	}

	// Returned set is a copy; mutating it must not touch the registry.
	p[ParamFastPeriod] = 5
	p2, _ := r.StrategyParams(StrategyMACD)
	if p2.Int(ParamFastPeriod) != 12 {
		t.Error("registry defaults mutated through returned copy")
	}

	if _, err := r.StrategyParams("macd"); !errors.Is(err, contracts.ErrUnknownStrategy) {
		t.Errorf("lowercase lookup should fail with ErrUnknownStrategy, got %v", err)
	}
	if _, err := r.StrategyParams("Momentum"); !errors.Is(err, contracts.ErrUnknownStrategy) {
		t.Errorf("unregistered lookup error = %v", err)
	}
}

func TestRegistry_Names_StableOrder(t *testing.T) {
	want := []string{StrategyMACD, StrategyRSI, StrategyBollingerBands, StrategyMovingAverage}

	for i := 0; i < 10; i++ {
		names := New().Names()
		if len(names) != len(want) {
			t.Fatalf("expected %d strategies, got %d", len(want), len(names))
		}
		for j, name := range want {
			if names[j] != name {
				t.Fatalf("iteration %d: names[%d] = %s, want %s", i, j, names[j], name)
			}
		}
	}
}

func TestRegistry_AllStrategyParams(t *testing.T) {
	all := New().AllStrategyParams()
	if len(all) != 4 {
		t.Fatalf("expected 4 strategies, got %d", len(all))
	}
	if all[StrategyRSI][ParamOverbought] != 70 {
		t.Errorf("RSI overbought = %v, want 70", all[StrategyRSI][ParamOverbought])
	}
	if all[StrategyBollingerBands][ParamStdDev] != 2.0 {
		t.Errorf("BollingerBands std_dev = %v, want 2.0", all[StrategyBollingerBands][ParamStdDev])
	}
}

func TestRegistry_IsKnown(t *testing.T) {
	r := New()
	for _, name := range []string{StrategyMACD, StrategyRSI, StrategyBollingerBands, StrategyMovingAverage} {
		if !r.IsKnown(name) {
			t.Errorf("IsKnown(%s) = false", name)
		}
	}
	for _, name := range []string{"", "rsi", "InvalidStrategy", "MOVINGAVERAGE"} {
		if r.IsKnown(name) {
			t.Errorf("IsKnown(%q) = true", name)
		}
	}
}

func TestRegistry_DefaultDateRange(t *testing.T) {
	fixed := time.Date(2025, 3, 31, 15, 0, 0, 0, time.UTC)
	r := New().WithClock(func() time.Time { return fixed })

	got := r.DefaultDateRange()
	want := contracts.DateRange{StartDate: "20241231", EndDate: "20250331"}
	if got != want {
		t.Errorf("DefaultDateRange() = %+v, want %+v", got, want)
	}

	// Reproducible for a fixed clock.
	if again := r.DefaultDateRange(); again != got {
		t.Errorf("second call differs: %+v vs %+v", again, got)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("default range invalid: %v", err)
	}
}

func TestValidateParams(t *testing.T) {
	tests := []struct {
		name     string
		strategy string
		params   Params
		wantErr  bool
	}{
		{"macd defaults", StrategyMACD, Params{ParamFastPeriod: 12, ParamSlowPeriod: 26, ParamSignalPeriod: 9}, false},
		{"macd fast >= slow", StrategyMACD, Params{ParamFastPeriod: 26, ParamSlowPeriod: 26, ParamSignalPeriod: 9}, true},
		{"macd zero period", StrategyMACD, Params{ParamFastPeriod: 0, ParamSlowPeriod: 26, ParamSignalPeriod: 9}, true},
		{"macd fractional period", StrategyMACD, Params{ParamFastPeriod: 12.5, ParamSlowPeriod: 26, ParamSignalPeriod: 9}, true},
		{"rsi defaults", StrategyRSI, Params{ParamPeriod: 14, ParamOversold: 30, ParamOverbought: 70}, false},
		{"rsi thresholds inverted", StrategyRSI, Params{ParamPeriod: 14, ParamOversold: 70, ParamOverbought: 30}, true},
		{"rsi overbought at 100", StrategyRSI, Params{ParamPeriod: 14, ParamOversold: 30, ParamOverbought: 100}, true},
		{"bollinger defaults", StrategyBollingerBands, Params{ParamPeriod: 20, ParamStdDev: 2.0}, false},
		{"bollinger zero std", StrategyBollingerBands, Params{ParamPeriod: 20, ParamStdDev: 0}, true},
		{"ma defaults", StrategyMovingAverage, Params{ParamShortPeriod: 5, ParamLongPeriod: 20}, false},
		{"ma short >= long", StrategyMovingAverage, Params{ParamShortPeriod: 20, ParamLongPeriod: 20}, true},
		{"unknown strategy", "Momentum", Params{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateParams(tt.strategy, tt.params)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateParams() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParams_Merge(t *testing.T) {
	base := Params{ParamPeriod: 14, ParamOversold: 30, ParamOverbought: 70}
	merged := base.Merge(Params{ParamPeriod: 7})

	if merged.Int(ParamPeriod) != 7 {
		t.Errorf("merged period = %d, want 7", merged.Int(ParamPeriod))
	}
	if merged[ParamOversold] != 30 {
		t.Errorf("merged oversold = %v, want 30", merged[ParamOversold])
	}
	if base.Int(ParamPeriod) != 14 {
		t.Error("Merge mutated the receiver")
	}
}

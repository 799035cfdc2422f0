// Package strategies implements the technical-analysis strategies behind
// sector signal computation. Each strategy is a stateless variant selected
// by name through the dispatch table; parameters come from the
// strategyconfig registry.
package strategies

import (
	"fmt"

	"github.com/wonny/sectorpulse/internal/contracts"
	"github.com/wonny/sectorpulse/internal/strategyconfig"
)

// Strategy computes per-bar Buy/Sell/Hold classifications from a price
// history and a parameter set.
type Strategy interface {
	Name() string

	// MinBars is the minimum history length the formula needs to emit at
	// least one signal.
	MinBars(p strategyconfig.Params) int

	// Compute returns one SignalPoint per bar that has a defined signal,
	// in bar order. Histories shorter than MinBars fail with
	// contracts.ErrInsufficientHistory; anything longer never fails.
	Compute(history contracts.PriceHistory, p strategyconfig.Params) ([]contracts.SignalPoint, error)
}

// Dispatch table keyed by registry strategy name.
var table = map[string]Strategy{
	strategyconfig.StrategyMACD:           MACD{},
	strategyconfig.StrategyRSI:            RSI{},
	strategyconfig.StrategyBollingerBands: BollingerBands{},
	strategyconfig.StrategyMovingAverage:  MovingAverage{},
}

// ForName resolves a strategy by its registry name.
func ForName(name string) (Strategy, bool) {
	s, ok := table[name]
	return s, ok
}

func insufficientHistory(name string, need, got int) error {
	return fmt.Errorf("%s: %w: need %d bars, got %d", name, contracts.ErrInsufficientHistory, need, got)
}

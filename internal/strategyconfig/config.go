package strategyconfig

import (
	"time"

	"github.com/wonny/sectorpulse/internal/contracts"
)

// Registered strategy names. Lookup is case-sensitive.
const (
	StrategyMACD           = "MACD"
	StrategyRSI            = "RSI"
	StrategyBollingerBands = "BollingerBands"
	StrategyMovingAverage  = "MovingAverage"
)

// Parameter keys.
const (
	ParamFastPeriod   = "fast_period"
	ParamSlowPeriod   = "slow_period"
	ParamSignalPeriod = "signal_period"
	ParamPeriod       = "period"
	ParamOversold     = "oversold"
	ParamOverbought   = "overbought"
	ParamStdDev       = "std_dev"
	ParamShortPeriod  = "short_period"
	ParamLongPeriod   = "long_period"
)

// DefaultRangeDays is the trailing calendar window used when a caller omits
// an explicit date range.
const DefaultRangeDays = 90

// Params is one strategy's parameter set, a name → numeric value mapping.
// Registry lookups return copies; callers may mutate their copy freely.
type Params map[string]float64

// Clone returns an independent copy.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Int returns the parameter truncated to int, 0 when absent.
func (p Params) Int(key string) int {
	return int(p[key])
}

// Merge returns a copy of p with values from override applied on top.
func (p Params) Merge(override Params) Params {
	out := p.Clone()
	for k, v := range override {
		out[k] = v
	}
	return out
}

// Registry is the single source of truth for strategy parameters and the
// default analysis window. Built once at startup, read-only afterwards, safe
// for concurrent readers.
type Registry struct {
	names  []string // registration order
	params map[string]Params
	days   int
	now    func() time.Time
}

// New builds the registry with the default parameter sets.
func New() *Registry {
	r := &Registry{
		params: make(map[string]Params),
		days:   DefaultRangeDays,
		now:    time.Now,
	}
	r.register(StrategyMACD, Params{
		ParamFastPeriod:   12,
		ParamSlowPeriod:   26,
		ParamSignalPeriod: 9,
	})
	r.register(StrategyRSI, Params{
		ParamPeriod:     14,
		ParamOversold:   30,
		ParamOverbought: 70,
	})
	r.register(StrategyBollingerBands, Params{
		ParamPeriod: 20,
		ParamStdDev: 2.0,
	})
	r.register(StrategyMovingAverage, Params{
		ParamShortPeriod: 5,
		ParamLongPeriod:  20,
	})
	return r
}

// WithClock replaces the time source used for the default date range.
// Intended for tests and reproducible runs.
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

func (r *Registry) register(name string, p Params) {
	r.names = append(r.names, name)
	r.params[name] = p
}

// DefaultDateRange returns the trailing default window ending "today".
// Deterministic for a fixed clock.
func (r *Registry) DefaultDateRange() contracts.DateRange {
	end := r.now()
	start := end.AddDate(0, 0, -r.days)
	return contracts.DateRange{
		StartDate: start.Format(contracts.DateFormat),
		EndDate:   end.Format(contracts.DateFormat),
	}
}

// StrategyParams returns a copy of the parameter set for name, or
// contracts.ErrUnknownStrategy for an unregistered name.
func (r *Registry) StrategyParams(name string) (Params, error) {
	p, ok := r.params[name]
	if !ok {
		return nil, contracts.ErrUnknownStrategy
	}
	return p.Clone(), nil
}

// AllStrategyParams returns every registered strategy keyed by name.
// Use Names for a stable iteration order.
func (r *Registry) AllStrategyParams() map[string]Params {
	out := make(map[string]Params, len(r.params))
	for name, p := range r.params {
		out[name] = p.Clone()
	}
	return out
}

// Names returns strategy names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// IsKnown reports whether name is registered. No side effects; the batch
// service uses it to skip unknown strategies instead of failing.
func (r *Registry) IsKnown(name string) bool {
	_, ok := r.params[name]
	return ok
}

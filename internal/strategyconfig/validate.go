package strategyconfig

import "fmt"

// ValidationError is a parameter constraint violation. These are programmer
// or configuration errors and abort startup rather than being absorbed.
type ValidationError struct {
	Strategy string
	Field    string
	Message  string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Strategy, e.Field, e.Message)
}

// ValidateParams checks the invariants for one strategy's parameter set.
func ValidateParams(name string, p Params) error {
	switch name {
	case StrategyMACD:
		if err := positivePeriod(name, p, ParamFastPeriod, ParamSlowPeriod, ParamSignalPeriod); err != nil {
			return err
		}
		if p.Int(ParamFastPeriod) >= p.Int(ParamSlowPeriod) {
			return ValidationError{name, ParamFastPeriod, "must be < slow_period"}
		}
	case StrategyRSI:
		if err := positivePeriod(name, p, ParamPeriod); err != nil {
			return err
		}
		oversold, overbought := p[ParamOversold], p[ParamOverbought]
		if oversold <= 0 || overbought >= 100 || oversold >= overbought {
			return ValidationError{name, ParamOversold, "must satisfy 0 < oversold < overbought < 100"}
		}
	case StrategyBollingerBands:
		if err := positivePeriod(name, p, ParamPeriod); err != nil {
			return err
		}
		if p[ParamStdDev] <= 0 {
			return ValidationError{name, ParamStdDev, "must be > 0"}
		}
	case StrategyMovingAverage:
		if err := positivePeriod(name, p, ParamShortPeriod, ParamLongPeriod); err != nil {
			return err
		}
		if p.Int(ParamShortPeriod) >= p.Int(ParamLongPeriod) {
			return ValidationError{name, ParamShortPeriod, "must be < long_period"}
		}
	default:
		return ValidationError{name, "", "unknown strategy"}
	}
	return nil
}

// Validate checks every registered parameter set. Run at startup after
// overrides are applied.
func (r *Registry) Validate() error {
	for _, name := range r.names {
		if err := ValidateParams(name, r.params[name]); err != nil {
			return err
		}
	}
	if r.days <= 0 {
		return ValidationError{"default_range", "days", "must be > 0"}
	}
	return nil
}

func positivePeriod(strategy string, p Params, keys ...string) error {
	for _, key := range keys {
		v := p[key]
		if v < 1 || v != float64(int(v)) {
			return ValidationError{strategy, key, "must be a positive integer"}
		}
	}
	return nil
}

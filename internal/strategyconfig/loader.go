package strategyconfig

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the YAML override surface. Absent fields keep the registry
// defaults; typed fields plus KnownFields(true) make typos fail at load.
type fileConfig struct {
	DefaultRangeDays *int `yaml:"default_range_days"`

	MACD struct {
		FastPeriod   *int `yaml:"fast_period"`
		SlowPeriod   *int `yaml:"slow_period"`
		SignalPeriod *int `yaml:"signal_period"`
	} `yaml:"macd"`

	RSI struct {
		Period     *int     `yaml:"period"`
		Oversold   *float64 `yaml:"oversold"`
		Overbought *float64 `yaml:"overbought"`
	} `yaml:"rsi"`

	BollingerBands struct {
		Period *int     `yaml:"period"`
		StdDev *float64 `yaml:"std_dev"`
	} `yaml:"bollinger_bands"`

	MovingAverage struct {
		ShortPeriod *int `yaml:"short_period"`
		LongPeriod  *int `yaml:"long_period"`
	} `yaml:"moving_average"`
}

// Load builds a registry from the defaults with overrides from a YAML file
// applied, and returns the raw file bytes for audit. Unknown fields fail
// immediately.
func Load(path string) (*Registry, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil {
		return nil, nil, err
	}

	r := New()
	if fc.DefaultRangeDays != nil {
		r.days = *fc.DefaultRangeDays
	}

	setInt := func(strategy, key string, v *int) {
		if v != nil {
			r.params[strategy][key] = float64(*v)
		}
	}
	setFloat := func(strategy, key string, v *float64) {
		if v != nil {
			r.params[strategy][key] = *v
		}
	}

	setInt(StrategyMACD, ParamFastPeriod, fc.MACD.FastPeriod)
	setInt(StrategyMACD, ParamSlowPeriod, fc.MACD.SlowPeriod)
	setInt(StrategyMACD, ParamSignalPeriod, fc.MACD.SignalPeriod)

	setInt(StrategyRSI, ParamPeriod, fc.RSI.Period)
	setFloat(StrategyRSI, ParamOversold, fc.RSI.Oversold)
	setFloat(StrategyRSI, ParamOverbought, fc.RSI.Overbought)

	setInt(StrategyBollingerBands, ParamPeriod, fc.BollingerBands.Period)
	setFloat(StrategyBollingerBands, ParamStdDev, fc.BollingerBands.StdDev)

	setInt(StrategyMovingAverage, ParamShortPeriod, fc.MovingAverage.ShortPeriod)
	setInt(StrategyMovingAverage, ParamLongPeriod, fc.MovingAverage.LongPeriod)

	if err := r.Validate(); err != nil {
		return nil, data, err
	}
	return r, data, nil
}

// Hash returns a deterministic SHA-256 of the effective configuration, for
// tagging runs and reports with the parameter set that produced them.
func (r *Registry) Hash() (string, error) {
	type entry struct {
		Name   string `json:"name"`
		Params Params `json:"params"`
	}
	canonical := struct {
		Strategies []entry `json:"strategies"`
		RangeDays  int     `json:"range_days"`
	}{RangeDays: r.days}

	for _, name := range r.names {
		canonical.Strategies = append(canonical.Strategies, entry{name, r.params[name]})
	}

	jsonBytes, err := json.Marshal(canonical)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}

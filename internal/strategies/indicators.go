package strategies

import "math"

// Rolling helpers shared by the strategy variants. All return series the
// same length as the input; entries before index period-1 are zero and must
// not be read. Callers respect validity by construction (they only emit
// signals from their own warm-up index onward).

// SMA computes the simple moving average over a trailing window.
func SMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out
}

// EMA computes the exponential moving average, seeded with the simple
// average of the first period values. Valid from index period-1.
func EMA(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) < period {
		return out
	}

	var sum float64
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	out[period-1] = sum / float64(period)

	multiplier := 2.0 / (float64(period) + 1.0)
	for i := period; i < len(values); i++ {
		out[i] = values[i]*multiplier + out[i-1]*(1-multiplier)
	}
	return out
}

// RollingStd computes the rolling sample standard deviation (n-1 divisor).
// Valid from index period-1; zero-variance windows yield 0, not NaN.
func RollingStd(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if period < 2 {
		return out
	}
	for i := period - 1; i < len(values); i++ {
		window := values[i-period+1 : i+1]

		var mean float64
		for _, v := range window {
			mean += v
		}
		mean /= float64(period)

		var sq float64
		for _, v := range window {
			d := v - mean
			sq += d * d
		}
		out[i] = math.Sqrt(sq / float64(period-1))
	}
	return out
}

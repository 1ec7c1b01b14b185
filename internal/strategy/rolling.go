package strategy

import "math"

// Rolling pre-pass helpers. Warm-up slots with insufficient history carry
// NaN as an explicit undefined sentinel; callers must gate every comparison
// through defined() so an undefined value always reads as "condition false"
// rather than leaking into arithmetic.

// undefined returns the sentinel for slots with insufficient history.
func undefined() float64 { return math.NaN() }

// defined reports whether v carries a real value.
func defined(v float64) bool { return !math.IsNaN(v) }

// returnsOver computes close[t]/close[t-lag] - 1 for each t. The first lag
// slots are undefined. lag=1 gives daily returns, lag=5 weekly returns, and
// lag=lookback the momentum filter.
func returnsOver(close []float64, lag int) []float64 {
	out := make([]float64, len(close))
	for t := range close {
		if t < lag {
			out[t] = undefined()
			continue
		}
		out[t] = close[t]/close[t-lag] - 1
	}
	return out
}

// sma computes the simple moving average over period. The first period-1
// slots are undefined.
func sma(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	for t := range values {
		sum += values[t]
		if t >= period {
			sum -= values[t-period]
		}
		if t < period-1 {
			out[t] = undefined()
			continue
		}
		out[t] = sum / float64(period)
	}
	return out
}

// rollingMean computes the mean over a trailing window of period values.
// A window containing any undefined value is itself undefined, so the
// warm-up of the input propagates through.
func rollingMean(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	var sum float64
	var undef int // undefined values inside the current window
	for t := range values {
		if defined(values[t]) {
			sum += values[t]
		} else {
			undef++
		}
		if t >= period {
			if defined(values[t-period]) {
				sum -= values[t-period]
			} else {
				undef--
			}
		}
		if t < period-1 || undef > 0 {
			out[t] = undefined()
			continue
		}
		out[t] = sum / float64(period)
	}
	return out
}

// lagOne shifts the exposure series forward by one day: the decision made
// with day-t information is applied starting day t+1, and day 0 becomes 0.
// Every strategy applies this once, uniformly, to its finished series.
func lagOne(raw []float64) []float64 {
	out := make([]float64, len(raw))
	if len(raw) == 0 {
		return out
	}
	out[0] = 0
	copy(out[1:], raw[:len(raw)-1])
	return out
}

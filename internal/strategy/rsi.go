package strategy

import "fmt"

// Compile-time interface check.
var _ Strategy = (*RSIMeanReversion)(nil)

// RSIMeanReversion enters long when the relative-strength index drops below
// buyBelow and exits when it rises above sellAbove. Between the two
// thresholds the position is held unchanged.
type RSIMeanReversion struct {
	period    int
	buyBelow  float64
	sellAbove float64
}

// NewRSIMeanReversion creates an RSI mean-reversion strategy.
func NewRSIMeanReversion(period int, buyBelow, sellAbove float64) (*RSIMeanReversion, error) {
	if period <= 0 {
		return nil, fmt.Errorf("rsi: period must be positive, got %d", period)
	}
	if buyBelow >= sellAbove {
		return nil, fmt.Errorf("rsi: buy threshold %v must be < sell threshold %v", buyBelow, sellAbove)
	}
	return &RSIMeanReversion{period: period, buyBelow: buyBelow, sellAbove: sellAbove}, nil
}

// Name returns "rsi".
func (s *RSIMeanReversion) Name() string { return "rsi" }

// Positions runs the RSI state machine over the close series and returns the
// lagged exposure series. Days with an undefined RSI (warm-up, or a window
// with neither gains nor losses) hold the prior position.
func (s *RSIMeanReversion) Positions(close []float64) ([]float64, error) {
	n := len(close)
	raw := make([]float64, n)
	if n == 0 {
		return raw, nil
	}

	rsi := relativeStrength(close, s.period)

	inPos := 0
	for t := 1; t < n; t++ {
		if !defined(rsi[t]) {
			raw[t] = float64(inPos)
			continue
		}
		if inPos == 0 && rsi[t] < s.buyBelow {
			inPos = 1
		} else if inPos == 1 && rsi[t] > s.sellAbove {
			inPos = 0
		}
		raw[t] = float64(inPos)
	}

	return lagOne(raw), nil
}

// relativeStrength computes the RSI from rolling-mean average gains and
// losses over period. Values are undefined during warm-up and when both
// averages are zero (a flat window: 0/0 is "no signal", not an error). A
// window with gains but zero losses saturates at 100.
func relativeStrength(close []float64, period int) []float64 {
	n := len(close)
	gains := make([]float64, n)
	losses := make([]float64, n)
	gains[0] = undefined()
	losses[0] = undefined()
	for t := 1; t < n; t++ {
		delta := close[t] - close[t-1]
		if delta > 0 {
			gains[t] = delta
		} else {
			losses[t] = -delta
		}
	}

	avgGain := rollingMean(gains, period)
	avgLoss := rollingMean(losses, period)

	rsi := make([]float64, n)
	for t := range rsi {
		switch {
		case !defined(avgGain[t]) || !defined(avgLoss[t]):
			rsi[t] = undefined()
		case avgLoss[t] == 0 && avgGain[t] == 0:
			rsi[t] = undefined()
		case avgLoss[t] == 0:
			rsi[t] = 100
		default:
			rs := avgGain[t] / avgLoss[t]
			rsi[t] = 100 - 100/(1+rs)
		}
	}
	return rsi
}

package strategy

import "fmt"

// Compile-time interface check.
var _ Strategy = (*SMACross)(nil)

// SMACross is a stateless moving-average crossover: long while the fast SMA
// is above the slow SMA, flat otherwise.
type SMACross struct {
	fast int
	slow int
}

// NewSMACross creates an SMA crossover strategy. The fast period must be
// strictly shorter than the slow period.
func NewSMACross(fast, slow int) (*SMACross, error) {
	if fast <= 0 || slow <= 0 {
		return nil, fmt.Errorf("sma-cross: periods must be positive, got fast=%d slow=%d", fast, slow)
	}
	if fast >= slow {
		return nil, fmt.Errorf("sma-cross: fast period %d must be < slow period %d", fast, slow)
	}
	return &SMACross{fast: fast, slow: slow}, nil
}

// Name returns "sma-cross".
func (s *SMACross) Name() string { return "sma-cross" }

// Positions returns 1 wherever the fast SMA exceeds the slow SMA, lagged by
// one day. Days where either average is still warming up stay flat.
func (s *SMACross) Positions(close []float64) ([]float64, error) {
	raw := make([]float64, len(close))
	fast := sma(close, s.fast)
	slow := sma(close, s.slow)

	for t := range close {
		if defined(fast[t]) && defined(slow[t]) && fast[t] > slow[t] {
			raw[t] = 1.0
		}
	}

	return lagOne(raw), nil
}

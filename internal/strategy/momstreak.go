package strategy

import "fmt"

// Compile-time interface check.
var _ Strategy = (*MomentumStreak)(nil)

// MomentumStreak layers a momentum filter over the streak engine: while the
// lookback-day return is positive it force-holds long and keeps the streak
// counters reset; otherwise the streak rules apply. It is the regime engine
// without the crash-mode layer and without leverage.
type MomentumStreak struct {
	lookback int
	downDays int
	upDays   int
}

// NewMomentumStreak creates a momentum-else-streak strategy.
func NewMomentumStreak(lookback, downDays, upDays int) (*MomentumStreak, error) {
	if lookback <= 0 {
		return nil, fmt.Errorf("mom-streak: lookback must be positive, got %d", lookback)
	}
	if downDays <= 0 || upDays <= 0 {
		return nil, fmt.Errorf("mom-streak: thresholds must be positive, got down=%d up=%d", downDays, upDays)
	}
	return &MomentumStreak{lookback: lookback, downDays: downDays, upDays: upDays}, nil
}

// Name returns "mom-streak".
func (s *MomentumStreak) Name() string { return "mom-streak" }

// Positions runs the momentum-else-streak walk and returns the lagged
// exposure series.
func (s *MomentumStreak) Positions(close []float64) ([]float64, error) {
	n := len(close)
	raw := make([]float64, n)
	if n == 0 {
		return raw, nil
	}

	mom := returnsOver(close, s.lookback)
	rets := returnsOver(close, 1)

	inPos := 0
	downStreak := 0
	upStreak := 0

	for t := 1; t < n; t++ {
		if defined(mom[t]) && mom[t] > 0 {
			inPos = 1
			downStreak = 0
			upStreak = 0
			raw[t] = 1.0
			continue
		}

		r := rets[t]
		if !defined(r) {
			raw[t] = float64(inPos)
			continue
		}

		switch {
		case r < 0:
			downStreak++
			upStreak = 0
		case r > 0:
			upStreak++
			downStreak = 0
		default:
			downStreak = 0
			upStreak = 0
		}

		if inPos == 0 && downStreak >= s.downDays {
			inPos = 1
		} else if inPos == 1 && upStreak >= s.upDays {
			inPos = 0
		}

		raw[t] = float64(inPos)
	}

	return lagOne(raw), nil
}

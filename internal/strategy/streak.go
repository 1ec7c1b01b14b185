package strategy

import "fmt"

// Compile-time interface check.
var _ Strategy = (*Streak)(nil)

// Streak is the consecutive-reversal engine in isolation: enter long after
// downDays consecutive negative returns, exit after upDays consecutive
// positive returns. A zero-return day resets both counters.
type Streak struct {
	downDays int
	upDays   int
}

// NewStreak creates a streak mean-reversion strategy.
func NewStreak(downDays, upDays int) (*Streak, error) {
	if downDays <= 0 || upDays <= 0 {
		return nil, fmt.Errorf("streak: thresholds must be positive, got down=%d up=%d", downDays, upDays)
	}
	return &Streak{downDays: downDays, upDays: upDays}, nil
}

// Name returns "streak".
func (s *Streak) Name() string { return "streak" }

// Positions runs the streak state machine and returns the lagged exposure
// series.
func (s *Streak) Positions(close []float64) ([]float64, error) {
	n := len(close)
	raw := make([]float64, n)
	if n == 0 {
		return raw, nil
	}

	rets := returnsOver(close, 1)

	inPos := 0
	downStreak := 0
	upStreak := 0

	for t := 1; t < n; t++ {
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

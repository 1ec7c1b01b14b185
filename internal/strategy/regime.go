package strategy

import "fmt"

// Compile-time interface check.
var _ Strategy = (*Regime)(nil)

// RegimeConfig holds the rule parameters for the regime-switching engine.
type RegimeConfig struct {
	// Lookback is the momentum filter window in trading days.
	Lookback int

	// DownDays and UpDays are the streak thresholds used outside crash mode:
	// enter long after DownDays consecutive down days, exit after UpDays
	// consecutive up days.
	DownDays int
	UpDays   int

	// CrashWeekDrop triggers crash mode when the 5-day return falls to
	// -CrashWeekDrop or below (e.g. 0.08 for an 8% weekly drop).
	CrashWeekDrop float64

	// CrashHoldDays keeps crash mode active for this many trading days after
	// a trigger, starting the day after the triggering close.
	CrashHoldDays int

	// CrashDownDays and CrashUpDays are the faster streak thresholds used
	// while crash mode is active.
	CrashDownDays int
	CrashUpDays   int

	// DownLeverage is the exposure applied when long in the momentum-down
	// regime (e.g. 1.3 for 130% long).
	DownLeverage float64

	// DisableLeverageInCrash forces exposure back to 1x while crash mode is
	// active, to avoid levering into a panic.
	DisableLeverageInCrash bool
}

// Validate checks that all rule parameters are in range.
func (c RegimeConfig) Validate() error {
	switch {
	case c.Lookback <= 0:
		return fmt.Errorf("regime: lookback must be positive, got %d", c.Lookback)
	case c.DownDays <= 0 || c.UpDays <= 0:
		return fmt.Errorf("regime: streak thresholds must be positive, got down=%d up=%d", c.DownDays, c.UpDays)
	case c.CrashWeekDrop <= 0:
		return fmt.Errorf("regime: crash week drop must be positive, got %v", c.CrashWeekDrop)
	case c.CrashHoldDays <= 0:
		return fmt.Errorf("regime: crash hold days must be positive, got %d", c.CrashHoldDays)
	case c.CrashDownDays <= 0 || c.CrashUpDays <= 0:
		return fmt.Errorf("regime: crash streak thresholds must be positive, got down=%d up=%d", c.CrashDownDays, c.CrashUpDays)
	case c.DownLeverage <= 0:
		return fmt.Errorf("regime: down leverage must be positive, got %v", c.DownLeverage)
	}
	return nil
}

// Regime is the full regime-switching engine. It layers three interacting
// rules over a single forward walk:
//
//  1. Momentum override: while the Lookback-day return is positive and crash
//     mode is off, hold long at 1x and keep the streak counters reset.
//  2. Streak mean reversion: otherwise enter long after a run of down days
//     and exit after a run of up days, at DownLeverage exposure.
//  3. Crash mode: a weekly drop of CrashWeekDrop or more switches the engine
//     to faster streak thresholds for CrashHoldDays days, suppresses the
//     momentum override, and (by default) the leverage.
type Regime struct {
	cfg RegimeConfig
}

// NewRegime creates the regime-switching engine, validating cfg up front.
func NewRegime(cfg RegimeConfig) (*Regime, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Regime{cfg: cfg}, nil
}

// Name returns "regime".
func (s *Regime) Name() string { return "regime" }

// Positions runs the engine over the close series and returns the lagged
// exposure series. Single forward pass, O(n).
func (s *Regime) Positions(close []float64) ([]float64, error) {
	cfg := s.cfg
	n := len(close)
	raw := make([]float64, n)
	if n == 0 {
		return raw, nil
	}

	mom := returnsOver(close, cfg.Lookback)
	rets := returnsOver(close, 1)
	week := returnsOver(close, 5)

	inPos := 0
	downStreak := 0
	upStreak := 0

	// lastTrigger is the most recent day whose weekly return breached the
	// crash threshold. A trigger on day k keeps crash mode active for days
	// k+1 through k+CrashHoldDays inclusive.
	lastTrigger := -1

	for t := 1; t < n; t++ {
		if defined(week[t-1]) && week[t-1] <= -cfg.CrashWeekDrop {
			lastTrigger = t - 1
		}
		inCrash := lastTrigger >= 0 && t-lastTrigger <= cfg.CrashHoldDays

		momIsPos := defined(mom[t]) && mom[t] > 0

		// Momentum override: force-hold long at 1x, skip streak logic.
		if !inCrash && momIsPos {
			inPos = 1
			downStreak = 0
			upStreak = 0
			raw[t] = 1.0
			continue
		}

		dd := cfg.DownDays
		ud := cfg.UpDays
		if inCrash {
			dd = cfg.CrashDownDays
			ud = cfg.CrashUpDays
		}

		r := rets[t]
		if !defined(r) {
			// No return to classify: hold state, recompute exposure only.
			raw[t] = s.leverage(momIsPos, inCrash) * float64(inPos)
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

		if inPos == 0 && downStreak >= dd {
			inPos = 1
		} else if inPos == 1 && upStreak >= ud {
			inPos = 0
		}

		raw[t] = s.leverage(momIsPos, inCrash) * float64(inPos)
	}

	return lagOne(raw), nil
}

// leverage selects the exposure multiple for the current regime flags.
func (s *Regime) leverage(momIsPos, inCrash bool) float64 {
	lev := 1.0
	if !momIsPos {
		lev = s.cfg.DownLeverage
		if s.cfg.DisableLeverageInCrash && inCrash {
			lev = 1.0
		}
	}
	return lev
}

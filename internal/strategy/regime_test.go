package strategy

import (
	"reflect"
	"testing"
)

func TestRegimeConfigValidate(t *testing.T) {
	valid := RegimeConfig{
		Lookback:      50,
		DownDays:      2,
		UpDays:        1,
		CrashWeekDrop: 0.08,
		CrashHoldDays: 5,
		CrashDownDays: 1,
		CrashUpDays:   1,
		DownLeverage:  1.3,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid config: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*RegimeConfig)
	}{
		{"zero lookback", func(c *RegimeConfig) { c.Lookback = 0 }},
		{"zero down days", func(c *RegimeConfig) { c.DownDays = 0 }},
		{"negative up days", func(c *RegimeConfig) { c.UpDays = -1 }},
		{"zero crash drop", func(c *RegimeConfig) { c.CrashWeekDrop = 0 }},
		{"zero crash hold", func(c *RegimeConfig) { c.CrashHoldDays = 0 }},
		{"zero crash down days", func(c *RegimeConfig) { c.CrashDownDays = 0 }},
		{"zero crash up days", func(c *RegimeConfig) { c.CrashUpDays = 0 }},
		{"zero leverage", func(c *RegimeConfig) { c.DownLeverage = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
			if _, err := NewRegime(cfg); err == nil {
				t.Error("NewRegime() = nil error, want error")
			}
		})
	}
}

// While the lookback return is positive and no crash is active, the engine
// force-holds long at exactly 1x, regardless of DownLeverage.
func TestRegimeMomentumOverrideHoldsOneTimes(t *testing.T) {
	s, err := NewRegime(RegimeConfig{
		Lookback:      3,
		DownDays:      1,
		UpDays:        1,
		CrashWeekDrop: 0.5,
		CrashHoldDays: 1,
		CrashDownDays: 1,
		CrashUpDays:   1,
		DownLeverage:  2.0,
	})
	if err != nil {
		t.Fatalf("NewRegime: %v", err)
	}

	close := []float64{100, 101, 102, 103, 104, 105, 106, 107}
	want := []float64{0, 0, 0, 0, 1, 1, 1, 1}

	got, err := s.Positions(close)
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Positions = %v, want %v", got, want)
	}
}

// A weekly drop breaching the threshold on day k activates crash mode for
// days k+1 through k+CrashHoldDays, and with DisableLeverageInCrash the
// exposure drops from DownLeverage back to 1x for exactly that window.
func TestRegimeCrashWindowSuppressesLeverage(t *testing.T) {
	s, err := NewRegime(RegimeConfig{
		Lookback:               100, // longer than the series: momentum never fires
		DownDays:               2,
		UpDays:                 99, // never exit, so the leverage change is isolated
		CrashWeekDrop:          0.05,
		CrashHoldDays:          3,
		CrashDownDays:          1,
		CrashUpDays:            99,
		DownLeverage:           2.0,
		DisableLeverageInCrash: true,
	})
	if err != nil {
		t.Fatalf("NewRegime: %v", err)
	}

	// The weekly return first breaches -5% at index 5 (93/100 - 1 = -7%).
	// Crash mode covers indices 6..8; with the one-day lag that shows in
	// the exposure at indices 7..9.
	close := []float64{100, 99, 98, 98.5, 99, 93, 99.5, 100, 100.5, 100.8, 101, 101.5}
	want := []float64{0, 0, 0, 2, 2, 2, 2, 1, 1, 1, 2, 2}

	got, err := s.Positions(close)
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Positions = %v, want %v", got, want)
	}
}

// Crash mode wins over the momentum override: the same series with the
// crash trigger disabled keeps the override long, while an active crash
// forces the engine back onto the streak rules.
func TestRegimeCrashOverridesMomentum(t *testing.T) {
	cfg := RegimeConfig{
		Lookback:               10,
		DownDays:               2,
		UpDays:                 1,
		CrashWeekDrop:          0.05,
		CrashHoldDays:          3,
		CrashDownDays:          1,
		CrashUpDays:            1,
		DownLeverage:           1.3,
		DisableLeverageInCrash: true,
	}

	// A steady rise, a one-day plunge at index 11 (110/118 - 1 = -6.8%
	// weekly), then a mild recovery. The 10-day momentum stays positive
	// through the plunge.
	close := []float64{100, 103, 106, 109, 112, 115, 118, 121, 124, 127, 130, 110, 111, 112}

	withCrash, err := NewRegime(cfg)
	if err != nil {
		t.Fatalf("NewRegime: %v", err)
	}
	got, err := withCrash.Positions(close)
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	// The decision at index 12 is made in crash mode: the up day exits the
	// position even though momentum is still positive.
	if got[12] != 1 {
		t.Errorf("positions[12] = %v, want 1 (override decision from index 11)", got[12])
	}
	if got[13] != 0 {
		t.Errorf("positions[13] = %v, want 0 (crash-mode exit)", got[13])
	}

	// With an unreachable crash threshold the override keeps the engine
	// long through the plunge.
	cfg.CrashWeekDrop = 0.99
	noCrash, err := NewRegime(cfg)
	if err != nil {
		t.Fatalf("NewRegime: %v", err)
	}
	got, err = noCrash.Positions(close)
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	if got[13] != 1 {
		t.Errorf("positions[13] = %v, want 1 (momentum override)", got[13])
	}
}

// With AllowLeverageInCrash the engine keeps DownLeverage through the crash
// window.
func TestRegimeLeverageKeptWhenAllowed(t *testing.T) {
	s, err := NewRegime(RegimeConfig{
		Lookback:      100,
		DownDays:      2,
		UpDays:        99,
		CrashWeekDrop: 0.05,
		CrashHoldDays: 3,
		CrashDownDays: 1,
		CrashUpDays:   99,
		DownLeverage:  2.0,
	})
	if err != nil {
		t.Fatalf("NewRegime: %v", err)
	}

	close := []float64{100, 99, 98, 98.5, 99, 93, 99.5, 100, 100.5, 100.8, 101, 101.5}
	want := []float64{0, 0, 0, 2, 2, 2, 2, 2, 2, 2, 2, 2}

	got, err := s.Positions(close)
	if err != nil {
		t.Fatalf("Positions: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Positions = %v, want %v", got, want)
	}
}

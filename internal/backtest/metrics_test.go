package backtest

import (
	"math"
	"testing"
	"time"
)

func TestCAGRDoublingOverOneYear(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{start, start.Add(time.Duration(365.25 * 24 * float64(time.Hour)))}
	equity := []float64{1, 2}

	got := cagr(equity, dates)
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("cagr = %v, want 1", got)
	}
}

func TestCAGRQuadruplingOverTwoYears(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{start, start.Add(time.Duration(2 * 365.25 * 24 * float64(time.Hour)))}
	equity := []float64{1, 4}

	got := cagr(equity, dates)
	if math.Abs(got-1) > 1e-9 {
		t.Errorf("cagr = %v, want 1", got)
	}
}

func TestCAGRDegenerateInputs(t *testing.T) {
	d := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	if got := cagr([]float64{1}, []time.Time{d}); !math.IsNaN(got) {
		t.Errorf("cagr on single point = %v, want NaN", got)
	}
	if got := cagr([]float64{1, 2}, []time.Time{d, d}); !math.IsNaN(got) {
		t.Errorf("cagr with zero elapsed time = %v, want NaN", got)
	}
}

func TestAnnualizedVol(t *testing.T) {
	returns := []float64{0.01, -0.01}

	// Sample standard deviation of {0.01, -0.01} is sqrt(0.0002).
	want := math.Sqrt(0.0002) * math.Sqrt(252)
	got := annualizedVol(returns)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("annualizedVol = %v, want %v", got, want)
	}

	if got := annualizedVol([]float64{0.01}); !math.IsNaN(got) {
		t.Errorf("annualizedVol on single return = %v, want NaN", got)
	}
}

func TestSharpe(t *testing.T) {
	want := math.Sqrt(252) * 0.02 / math.Sqrt(0.0002)
	got := sharpe([]float64{0.01, 0.03}, 0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("sharpe = %v, want %v", got, want)
	}

	// Zero variance has no meaningful Sharpe.
	if got := sharpe([]float64{0.01, 0.01, 0.01}, 0); !math.IsNaN(got) {
		t.Errorf("sharpe on constant returns = %v, want NaN", got)
	}
}

func TestMaxDrawdown(t *testing.T) {
	equity := []float64{1, 1.2, 0.9, 1.3, 1.04}

	// The deepest decline is 0.9 from the 1.2 peak, a -25% drawdown; the
	// later -20% dip from 1.3 is shallower.
	got := maxDrawdown(equity)
	if math.Abs(got-(-0.25)) > 1e-12 {
		t.Errorf("maxDrawdown = %v, want -0.25", got)
	}

	if got := maxDrawdown([]float64{1, 1.1, 1.2}); got != 0 {
		t.Errorf("maxDrawdown on rising curve = %v, want 0", got)
	}
}

func TestTradeCount(t *testing.T) {
	// Deltas: 1, 0, 1, 1.3, 1.3 sum to 4.6, truncated to 4.
	positions := []float64{0, 1, 1, 0, 1.3, 0}
	if got := tradeCount(positions); got != 4 {
		t.Errorf("tradeCount = %d, want 4", got)
	}

	if got := tradeCount([]float64{0, 0, 0}); got != 0 {
		t.Errorf("tradeCount on flat exposure = %d, want 0", got)
	}
}

func TestWinRate(t *testing.T) {
	positions := []float64{0, 1, 1, 1, 0}
	returns := []float64{0.5, 0.01, -0.02, 0.03, 0.9}

	// Three active days, two of them positive. The flat days do not count
	// even when the asset moved.
	got := winRate(positions, returns)
	if math.Abs(got-2.0/3.0) > 1e-12 {
		t.Errorf("winRate = %v, want %v", got, 2.0/3.0)
	}

	if got := winRate([]float64{0, 0}, []float64{0, 0}); !math.IsNaN(got) {
		t.Errorf("winRate never active = %v, want NaN", got)
	}
}

func TestSummarize(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{start, start.AddDate(0, 0, 1), start.AddDate(0, 0, 2)}
	close := []float64{100, 110, 99}

	res, err := Simulate(close, []float64{0, 1, 1}, 0)
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}

	sum := Summarize(res, dates)
	if sum.Trades != 1 {
		t.Errorf("Trades = %d, want 1", sum.Trades)
	}
	if math.Abs(sum.WinRate-0.5) > 1e-12 {
		t.Errorf("WinRate = %v, want 0.5", sum.WinRate)
	}
	if sum.MaxDrawdown >= 0 {
		t.Errorf("MaxDrawdown = %v, want negative", sum.MaxDrawdown)
	}
	if math.IsNaN(sum.CAGR) || math.IsNaN(sum.AnnualVol) {
		t.Errorf("CAGR = %v, AnnualVol = %v, want both defined", sum.CAGR, sum.AnnualVol)
	}
}

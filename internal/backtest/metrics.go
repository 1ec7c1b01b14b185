package backtest

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// tradingDays is the annualization factor for daily returns.
const tradingDays = 252

// Summary is the fixed set of risk/return statistics reported for a run.
// Statistics that cannot be computed (too little data, zero variance, never
// in the market) are NaN.
type Summary struct {
	CAGR        float64
	AnnualVol   float64
	Sharpe      float64
	MaxDrawdown float64
	Trades      int
	WinRate     float64
}

// Summarize computes summary statistics from a simulation result and the
// matching trading dates.
func Summarize(res Result, dates []time.Time) Summary {
	return Summary{
		CAGR:        cagr(res.Equity, dates),
		AnnualVol:   annualizedVol(res.Returns),
		Sharpe:      sharpe(res.Returns, 0),
		MaxDrawdown: maxDrawdown(res.Equity),
		Trades:      tradeCount(res.Positions),
		WinRate:     winRate(res.Positions, res.Returns),
	}
}

// cagr computes the compound annual growth rate from the equity curve using
// calendar days between the first and last trading dates.
func cagr(equity []float64, dates []time.Time) float64 {
	if len(equity) < 2 || len(dates) != len(equity) {
		return math.NaN()
	}
	start := equity[0]
	end := equity[len(equity)-1]
	days := dates[len(dates)-1].Sub(dates[0]).Hours() / 24
	if days <= 0 || start <= 0 {
		return math.NaN()
	}
	years := days / 365.25
	return math.Pow(end/start, 1/years) - 1
}

// annualizedVol is the sample standard deviation of daily returns scaled to
// a 252-day year.
func annualizedVol(returns []float64) float64 {
	if len(returns) < 2 {
		return math.NaN()
	}
	return stat.StdDev(returns, nil) * math.Sqrt(tradingDays)
}

// sharpe is the annualized Sharpe ratio of daily returns over a constant
// annual risk-free rate.
func sharpe(returns []float64, rfAnnual float64) float64 {
	if len(returns) < 2 {
		return math.NaN()
	}
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - rfAnnual/tradingDays
	}
	std := stat.StdDev(excess, nil)
	if std == 0 || math.IsNaN(std) {
		return math.NaN()
	}
	return math.Sqrt(tradingDays) * stat.Mean(excess, nil) / std
}

// maxDrawdown is the deepest decline from a running equity peak, as a
// negative fraction.
func maxDrawdown(equity []float64) float64 {
	if len(equity) == 0 {
		return math.NaN()
	}
	peak := equity[0]
	worst := 0.0
	for _, e := range equity {
		if e > peak {
			peak = e
		}
		if dd := e/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}

// tradeCount counts exposure changes: the sum of |Δposition| truncated to an
// integer, so a round trip at 1x counts as two trades.
func tradeCount(positions []float64) int {
	var sum float64
	for t := 1; t < len(positions); t++ {
		d := positions[t] - positions[t-1]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return int(sum)
}

// winRate is the fraction of in-market days with a positive strategy return.
// NaN when the strategy was never in the market.
func winRate(positions, returns []float64) float64 {
	var active, wins int
	for t := range positions {
		if positions[t] == 0 {
			continue
		}
		active++
		if returns[t] > 0 {
			wins++
		}
	}
	if active == 0 {
		return math.NaN()
	}
	return float64(wins) / float64(active)
}

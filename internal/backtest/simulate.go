// Package backtest turns a close-price series and an exposure series into a
// compounded equity curve and summary risk/return statistics.
package backtest

import "fmt"

// Result holds the per-day series produced by a simulation, aligned
// index-for-index with the input close series.
type Result struct {
	// Equity is the compounded growth of $1, starting at 1+return of day 0.
	Equity []float64

	// Returns is the per-day strategy return: exposure times asset return,
	// net of fees.
	Returns []float64

	// Positions is the exposure series the simulation was run with.
	Positions []float64
}

// Simulate replays the exposure series against the close series, charging a
// proportional fee of feeBps basis points on every change in exposure
// (entry, exit, or leverage resize).
//
// Equity compounds multiplicatively and is deliberately not clamped: with
// leverage above 1 a single-day loss beyond 100% drives equity to zero or
// below and it stays there, which is the realistic representation of
// leveraged ruin.
func Simulate(close, positions []float64, feeBps float64) (Result, error) {
	if len(close) != len(positions) {
		return Result{}, fmt.Errorf("simulate: %d closes but %d positions", len(close), len(positions))
	}

	n := len(close)
	returns := make([]float64, n)
	equity := make([]float64, n)

	feeRate := feeBps / 10000.0
	compounded := 1.0

	for t := 0; t < n; t++ {
		var assetRet, turnover float64
		if t > 0 {
			assetRet = close[t]/close[t-1] - 1
			turnover = positions[t] - positions[t-1]
			if turnover < 0 {
				turnover = -turnover
			}
		}

		returns[t] = positions[t]*assetRet - feeRate*turnover
		compounded *= 1 + returns[t]
		equity[t] = compounded
	}

	return Result{Equity: equity, Returns: returns, Positions: positions}, nil
}

// BuyHold returns the buy-and-hold benchmark simulation for a close series:
// full exposure every day, no fees.
func BuyHold(close []float64) Result {
	positions := make([]float64, len(close))
	for i := range positions {
		positions[i] = 1.0
	}
	res, _ := Simulate(close, positions, 0)
	return res
}

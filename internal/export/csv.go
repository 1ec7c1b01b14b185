// Package export writes backtest results to files: a per-day CSV and an
// equity-curve SVG chart.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"regimebt/internal/backtest"
)

// WriteBacktestCSV writes one row per trading day with the close price,
// exposure, strategy return, and compounded equity.
func WriteBacktestCSV(path string, dates []time.Time, close []float64, res backtest.Result) error {
	if len(dates) != len(close) || len(close) != len(res.Equity) {
		return fmt.Errorf("csv export: misaligned series (dates=%d closes=%d equity=%d)",
			len(dates), len(close), len(res.Equity))
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"date", "close", "exposure", "strategy_return", "equity"}); err != nil {
		return err
	}
	for i := range dates {
		row := []string{
			dates[i].Format("2006-01-02"),
			ftoa(close[i]),
			ftoa(res.Positions[i]),
			ftoa(res.Returns[i]),
			ftoa(res.Equity[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func ftoa(x float64) string { return fmt.Sprintf("%.8f", x) }

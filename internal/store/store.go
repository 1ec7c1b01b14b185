// Package store defines storage interfaces for the local daily-bar cache and
// the backtest run history, with Parquet and SQLite implementations.
package store

import (
	"context"
	"time"

	"regimebt/internal/domain"
)

// BarStore persists and retrieves daily OHLCV bar data.
type BarStore interface {
	// WriteBars persists a batch of bars, merging with any already stored.
	WriteBars(ctx context.Context, bars []domain.Bar) error

	// ReadBars returns bars for the given symbol within [start, end].
	ReadBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)

	// ListSymbols returns all distinct symbols with cached bars.
	ListSymbols(ctx context.Context) ([]string, error)
}

// Run is one completed backtest: what was run, over what range, and the
// summary statistics it produced.
type Run struct {
	ID          int64
	Symbol      string
	Strategy    string
	Tag         string
	Start       time.Time
	End         time.Time
	FeeBps      float64
	CAGR        float64
	AnnualVol   float64
	Sharpe      float64
	MaxDrawdown float64
	Trades      int
	WinRate     float64
	CreatedAt   time.Time
}

// RunStore persists and retrieves backtest run records.
type RunStore interface {
	// SaveRun inserts a run record and fills in its ID and CreatedAt.
	SaveRun(ctx context.Context, run *Run) error

	// ListRuns returns the most recent runs for a symbol, newest first, up
	// to limit. An empty symbol matches all runs.
	ListRuns(ctx context.Context, symbol string, limit int) ([]Run, error)
}

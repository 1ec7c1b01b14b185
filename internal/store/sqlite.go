package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// Compile-time interface check.
var _ RunStore = (*SQLiteStore)(nil)

// SQLiteStore implements RunStore backed by a SQLite database, keeping the
// history of completed backtests queryable across invocations.
type SQLiteStore struct {
	db *sql.DB
}

const runsSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	symbol       TEXT NOT NULL,
	strategy     TEXT NOT NULL,
	tag          TEXT NOT NULL,
	start_date   TEXT NOT NULL,
	end_date     TEXT NOT NULL,
	fee_bps      REAL NOT NULL,
	cagr         REAL,
	annual_vol   REAL,
	sharpe       REAL,
	max_drawdown REAL,
	trades       INTEGER NOT NULL,
	win_rate     REAL,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_symbol ON runs(symbol, created_at);
`

// NewSQLiteStore opens (or creates) a SQLite database at dbPath, creates the
// schema if needed, and returns a ready-to-use SQLiteStore.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(runsSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating runs schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun inserts a run record and fills in its ID and CreatedAt.
func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) error {
	run.CreatedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
			(symbol, strategy, tag, start_date, end_date, fee_bps,
			 cagr, annual_vol, sharpe, max_drawdown, trades, win_rate, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Symbol, run.Strategy, run.Tag,
		run.Start.Format("2006-01-02"), run.End.Format("2006-01-02"), run.FeeBps,
		nullable(run.CAGR), nullable(run.AnnualVol), nullable(run.Sharpe),
		nullable(run.MaxDrawdown), run.Trades, nullable(run.WinRate),
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading run id: %w", err)
	}
	run.ID = id
	return nil
}

// ListRuns returns the most recent runs, newest first, up to limit. An empty
// symbol matches all runs.
func (s *SQLiteStore) ListRuns(ctx context.Context, symbol string, limit int) ([]Run, error) {
	query := `
		SELECT id, symbol, strategy, tag, start_date, end_date, fee_bps,
		       cagr, annual_vol, sharpe, max_drawdown, trades, win_rate, created_at
		FROM runs`
	args := []any{}
	if symbol != "" {
		query += ` WHERE symbol = ?`
		args = append(args, symbol)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var start, end, created string
		var cagr, vol, sharpe, mdd, winRate sql.NullFloat64
		if err := rows.Scan(&r.ID, &r.Symbol, &r.Strategy, &r.Tag, &start, &end, &r.FeeBps,
			&cagr, &vol, &sharpe, &mdd, &r.Trades, &winRate, &created); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.CAGR = fromNull(cagr)
		r.AnnualVol = fromNull(vol)
		r.Sharpe = fromNull(sharpe)
		r.MaxDrawdown = fromNull(mdd)
		r.WinRate = fromNull(winRate)
		r.Start, _ = time.Parse("2006-01-02", start)
		r.End, _ = time.Parse("2006-01-02", end)
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// nullable maps NaN statistics to SQL NULL: NaN means "not computable", and
// NULL is how that survives a round trip through REAL columns.
func nullable(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func fromNull(n sql.NullFloat64) float64 {
	if !n.Valid {
		return math.NaN()
	}
	return n.Float64
}

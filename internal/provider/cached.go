package provider

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"regimebt/internal/domain"
	"regimebt/internal/store"
)

// Compile-time interface check.
var _ Provider = (*Cached)(nil)

// BarFetcher is the upstream a Cached provider fills its cache from.
type BarFetcher interface {
	FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error)
}

// Cached is a Provider that serves bars from a local BarStore, fetching only
// the missing head or tail of the requested range from the upstream source.
type Cached struct {
	store  store.BarStore
	source BarFetcher
	log    *slog.Logger
}

// coverageSlack is how far a cache boundary may fall inside the requested
// range before the gap is treated as missing data. Requested boundaries
// routinely land on weekends and holidays, so an exact match is impossible.
const coverageSlack = 5 * 24 * time.Hour

// NewCached creates a caching provider over the given store and upstream.
func NewCached(s store.BarStore, source BarFetcher) *Cached {
	return &Cached{
		store:  s,
		source: source,
		log:    slog.Default().With("provider", "cached"),
	}
}

// DailyCloses returns the close series for symbol over [start, end],
// fetching whatever the cache is missing and persisting it for next time.
func (c *Cached) DailyCloses(ctx context.Context, symbol string, start, end time.Time) (domain.Series, error) {
	bars, err := c.store.ReadBars(ctx, symbol, start, end)
	if err != nil {
		return domain.Series{}, fmt.Errorf("reading cached bars for %s: %w", symbol, err)
	}

	var missing [][2]time.Time
	if len(bars) == 0 {
		missing = append(missing, [2]time.Time{start, end})
	} else {
		first, last := barSpan(bars)
		if first.After(start.Add(coverageSlack)) {
			missing = append(missing, [2]time.Time{start, first.Add(-24 * time.Hour)})
		}
		if last.Before(end.Add(-coverageSlack)) {
			missing = append(missing, [2]time.Time{last.Add(24 * time.Hour), end})
		}
	}

	for _, span := range missing {
		c.log.Debug("cache miss", "symbol", symbol,
			"from", span[0].Format("2006-01-02"), "to", span[1].Format("2006-01-02"))

		fetched, err := c.source.FetchBars(ctx, symbol, span[0], span[1])
		if err != nil {
			return domain.Series{}, err
		}
		if len(fetched) == 0 {
			continue
		}
		if err := c.store.WriteBars(ctx, fetched); err != nil {
			return domain.Series{}, fmt.Errorf("caching bars for %s: %w", symbol, err)
		}
		bars = append(bars, fetched...)
	}

	if len(bars) == 0 {
		return domain.Series{}, fmt.Errorf("%s %s to %s: %w",
			symbol, start.Format("2006-01-02"), end.Format("2006-01-02"), ErrNoData)
	}

	series, err := domain.NewSeries(symbol, bars)
	if err != nil {
		return domain.Series{}, fmt.Errorf("building series for %s: %w", symbol, err)
	}
	return series, nil
}

// barSpan returns the earliest and latest timestamps in bars.
func barSpan(bars []domain.Bar) (first, last time.Time) {
	first, last = bars[0].Timestamp, bars[0].Timestamp
	for _, b := range bars[1:] {
		if b.Timestamp.Before(first) {
			first = b.Timestamp
		}
		if b.Timestamp.After(last) {
			last = b.Timestamp
		}
	}
	return first, last
}

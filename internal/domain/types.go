// Package domain defines the core data types shared across the backtester:
// daily OHLCV bars as fetched from the market-data provider, and the
// validated close-price series the strategies consume.
package domain

import (
	"fmt"
	"sort"
	"time"
)

// Bar is a single daily OHLCV bar for one symbol.
type Bar struct {
	Symbol     string
	Timestamp  time.Time
	Open       float64
	High       float64
	Low        float64
	Close      float64
	Volume     int64
	TradeCount int64
	VWAP       float64
}

// Series is an ordered daily close-price series for a single symbol. Dates
// and Closes are aligned index-for-index. A Series is built once by a
// provider and treated as immutable by everything downstream.
type Series struct {
	Symbol string
	Dates  []time.Time
	Closes []float64
}

// Len returns the number of trading days in the series.
func (s Series) Len() int { return len(s.Closes) }

// Validate checks the series invariants: aligned date/close slices, strictly
// increasing dates (no duplicates), and positive closes.
func (s Series) Validate() error {
	if len(s.Dates) != len(s.Closes) {
		return fmt.Errorf("series %s: %d dates but %d closes", s.Symbol, len(s.Dates), len(s.Closes))
	}
	for i := range s.Closes {
		if s.Closes[i] <= 0 {
			return fmt.Errorf("series %s: non-positive close %v at %s",
				s.Symbol, s.Closes[i], s.Dates[i].Format("2006-01-02"))
		}
		if i > 0 && !s.Dates[i].After(s.Dates[i-1]) {
			return fmt.Errorf("series %s: dates not strictly increasing at index %d (%s then %s)",
				s.Symbol, i, s.Dates[i-1].Format("2006-01-02"), s.Dates[i].Format("2006-01-02"))
		}
	}
	return nil
}

// NewSeries builds a validated close-price series from daily bars. Bars are
// sorted by timestamp and deduplicated on date, keeping the last bar seen for
// each date.
func NewSeries(symbol string, bars []Bar) (Series, error) {
	sorted := make([]Bar, len(bars))
	copy(sorted, bars)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	s := Series{Symbol: symbol}
	for _, b := range sorted {
		day := b.Timestamp.Truncate(24 * time.Hour)
		if n := len(s.Dates); n > 0 && s.Dates[n-1].Equal(day) {
			s.Closes[n-1] = b.Close
			continue
		}
		s.Dates = append(s.Dates, day)
		s.Closes = append(s.Closes, b.Close)
	}

	if err := s.Validate(); err != nil {
		return Series{}, err
	}
	return s, nil
}

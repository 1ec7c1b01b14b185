// Package provider resolves a ticker and date range into a validated daily
// close-price series, fetching from the Alpaca market-data API with an
// optional local Parquet cache in front.
package provider

import (
	"context"
	"errors"
	"time"

	"regimebt/internal/domain"
)

// ErrNoData is returned when the provider has no bars for the requested
// symbol and range.
var ErrNoData = errors.New("no price data for requested range")

// Provider resolves a symbol and date range into a daily close-price series.
type Provider interface {
	// DailyCloses returns the validated close-price series for symbol over
	// [start, end].
	DailyCloses(ctx context.Context, symbol string, start, end time.Time) (domain.Series, error)
}

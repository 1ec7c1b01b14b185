package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"regimebt/internal/domain"
	"regimebt/internal/util"
)

// Compile-time interface check.
var _ Provider = (*AlpacaProvider)(nil)

// AlpacaProvider fetches daily bars from the Alpaca market-data API.
type AlpacaProvider struct {
	client *marketdata.Client
	log    *slog.Logger
}

// NewAlpacaProvider creates an AlpacaProvider with the given credentials.
// dataURL overrides the default API endpoint when non-empty.
func NewAlpacaProvider(apiKey, apiSecret, dataURL string) *AlpacaProvider {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}

	return &AlpacaProvider{
		client: marketdata.NewClient(opts),
		log:    slog.Default().With("provider", "alpaca"),
	}
}

// DailyCloses fetches daily bars for the symbol over [start, end] and
// returns the validated close series. Transient API failures are retried
// with backoff.
func (p *AlpacaProvider) DailyCloses(ctx context.Context, symbol string, start, end time.Time) (domain.Series, error) {
	bars, err := p.FetchBars(ctx, symbol, start, end)
	if err != nil {
		return domain.Series{}, err
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

// FetchBars fetches raw daily bars for the symbol over [start, end]. The
// fetch tool uses this directly to fill the cache.
func (p *AlpacaProvider) FetchBars(ctx context.Context, symbol string, start, end time.Time) ([]domain.Bar, error) {
	symbol = strings.ToUpper(symbol)

	var alpacaBars []marketdata.Bar
	err := util.Retry(ctx, 3, 500*time.Millisecond, func() error {
		var ferr error
		alpacaBars, ferr = p.client.GetBars(symbol, marketdata.GetBarsRequest{
			TimeFrame: marketdata.OneDay,
			Start:     start,
			End:       end,
		})
		return ferr
	})
	if err != nil {
		return nil, fmt.Errorf("fetching %s bars: %w", symbol, err)
	}

	p.log.Debug("fetched bars", "symbol", symbol, "count", len(alpacaBars))

	bars := make([]domain.Bar, 0, len(alpacaBars))
	for _, ab := range alpacaBars {
		bars = append(bars, domain.Bar{
			Symbol:     symbol,
			Timestamp:  ab.Timestamp,
			Open:       ab.Open,
			High:       ab.High,
			Low:        ab.Low,
			Close:      ab.Close,
			Volume:     int64(ab.Volume),
			TradeCount: int64(ab.TradeCount),
			VWAP:       ab.VWAP,
		})
	}
	return bars, nil
}

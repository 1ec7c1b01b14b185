// Command regimebt-fetch pre-fills the local Parquet bar cache from the
// Alpaca market-data API so backtests can run offline afterwards.
//
// Usage:
//
//	regimebt-fetch -symbols SPY,QQQ,IWM -start 2005-01-01 -end 2024-12-31
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"regimebt/internal/config"
	"regimebt/internal/provider"
	"regimebt/internal/store"
	"regimebt/internal/util"
)

func main() {
	cfgPath := "config/regimebt.yaml"
	if p := os.Getenv("REGIMEBT_CONFIG"); p != "" {
		cfgPath = p
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var (
		symbols   = flag.String("symbols", cfg.Backtest.Ticker, "comma-separated ticker symbols to fetch")
		start     = flag.String("start", cfg.Backtest.Start, "start date (YYYY-MM-DD)")
		end       = flag.String("end", cfg.Backtest.End, "end date (YYYY-MM-DD)")
		perMinute = flag.Int("rate-limit", 200, "maximum API requests per minute")
	)
	flag.Parse()

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		log.Fatalf("invalid start date %q: %v", *start, err)
	}
	endDate, err := time.Parse("2006-01-02", *end)
	if err != nil {
		log.Fatalf("invalid end date %q: %v", *end, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	barStore := store.NewParquetStore(cfg.Storage.DataDir)
	alpaca := provider.NewAlpacaProvider(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.DataURL)
	limiter := util.NewRateLimiter(*perMinute)

	runStart := time.Now()
	fetched := 0
	for _, symbol := range strings.Split(*symbols, ",") {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			log.Fatalf("cancelled: %v", err)
		}

		bars, err := alpaca.FetchBars(ctx, symbol, startDate, endDate)
		if err != nil {
			logger.Error("fetch failed", "symbol", symbol, "err", err)
			continue
		}
		if len(bars) == 0 {
			logger.Warn("no bars returned", "symbol", symbol)
			continue
		}

		if err := barStore.WriteBars(ctx, bars); err != nil {
			logger.Error("cache write failed", "symbol", symbol, "err", err)
			continue
		}

		fetched++
		logger.Info("cached", "symbol", symbol, "bars", len(bars))
	}

	logger.Info("fetch complete",
		"symbols", fetched,
		"elapsed", time.Since(runStart).Round(time.Second),
	)
}

// Command regimebt backtests rule-based regime-switching strategies on a
// single ticker's daily closes and reports summary statistics against a
// buy-and-hold benchmark.
//
// Usage:
//
//	regimebt -ticker SPY -start 2005-01-01 -end 2024-12-31
//	regimebt -strategy sma-cross -fast 50 -slow 200
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"regimebt/internal/backtest"
	"regimebt/internal/config"
	"regimebt/internal/export"
	"regimebt/internal/provider"
	"regimebt/internal/store"
	"regimebt/internal/strategy"
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
	bt := cfg.Backtest

	var (
		ticker = flag.String("ticker", bt.Ticker, "ticker symbol to backtest")
		start  = flag.String("start", bt.Start, "start date (YYYY-MM-DD)")
		end    = flag.String("end", bt.End, "end date (YYYY-MM-DD)")
		feeBps = flag.Float64("fee-bps", bt.FeeBps, "fee in basis points charged on exposure changes")

		stratName = flag.String("strategy", "regime", "strategy: regime, sma-cross, rsi, streak, mom-streak")

		lookback = flag.Int("lookback", bt.Lookback, "lookback days for the momentum filter")
		downDays = flag.Int("down-days", bt.DownDays, "buy after N down days in a row (when momentum <= 0)")
		upDays   = flag.Int("up-days", bt.UpDays, "sell after N up days in a row (when momentum <= 0)")

		crashWeekDrop = flag.Float64("crash-week-drop", bt.CrashWeekDrop, "trigger crash mode when 5-day return <= -this (0.08 = -8%)")
		crashHoldDays = flag.Int("crash-hold-days", bt.CrashHoldDays, "keep crash mode active for this many trading days after a trigger")
		crashDownDays = flag.Int("crash-down-days", bt.CrashDownDays, "buy streak during crash mode")
		crashUpDays   = flag.Int("crash-up-days", bt.CrashUpDays, "sell streak during crash mode")

		downLeverage         = flag.Float64("down-leverage", bt.DownLeverage, "exposure when long in the momentum-down regime (1.3 = 130% long)")
		allowLeverageInCrash = flag.Bool("allow-leverage-in-crash", bt.AllowLeverageInCrash, "apply leverage during crash mode as well (not recommended)")

		fast = flag.Int("fast", 50, "fast SMA period for sma-cross")
		slow = flag.Int("slow", 200, "slow SMA period for sma-cross")

		rsiPeriod = flag.Int("rsi-period", 14, "RSI period for rsi")
		buyBelow  = flag.Float64("buy-below", 30, "enter when RSI drops below this")
		sellAbove = flag.Float64("sell-above", 70, "exit when RSI rises above this")

		outDir = flag.String("out", cfg.Storage.OutputDir, "directory for CSV and chart output")
		debug  = flag.Bool("debug", false, "print exposure sanity checks")
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

	registry := strategy.NewRegistry()
	for _, build := range []func() (strategy.Strategy, error){
		func() (strategy.Strategy, error) {
			return strategy.NewRegime(strategy.RegimeConfig{
				Lookback:               *lookback,
				DownDays:               *downDays,
				UpDays:                 *upDays,
				CrashWeekDrop:          *crashWeekDrop,
				CrashHoldDays:          *crashHoldDays,
				CrashDownDays:          *crashDownDays,
				CrashUpDays:            *crashUpDays,
				DownLeverage:           *downLeverage,
				DisableLeverageInCrash: !*allowLeverageInCrash,
			})
		},
		func() (strategy.Strategy, error) { return strategy.NewSMACross(*fast, *slow) },
		func() (strategy.Strategy, error) { return strategy.NewRSIMeanReversion(*rsiPeriod, *buyBelow, *sellAbove) },
		func() (strategy.Strategy, error) { return strategy.NewStreak(*downDays, *upDays) },
		func() (strategy.Strategy, error) { return strategy.NewMomentumStreak(*lookback, *downDays, *upDays) },
	} {
		s, err := build()
		if err != nil {
			log.Fatalf("invalid configuration: %v", err)
		}
		registry.Register(s)
	}

	strat, ok := registry.Get(*stratName)
	if !ok {
		log.Fatalf("unknown strategy %q (available: %v)", *stratName, registry.List())
	}

	ctx := context.Background()

	barStore := store.NewParquetStore(cfg.Storage.DataDir)
	runStore, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening run store: %v", err)
	}
	defer runStore.Close()

	alpaca := provider.NewAlpacaProvider(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.DataURL)
	prices := provider.NewCached(barStore, alpaca)

	series, err := prices.DailyCloses(ctx, *ticker, startDate, endDate)
	if err != nil {
		log.Fatalf("fetching prices: %v", err)
	}
	logger.Info("loaded price series",
		"symbol", series.Symbol,
		"days", series.Len(),
		"from", series.Dates[0].Format("2006-01-02"),
		"to", series.Dates[series.Len()-1].Format("2006-01-02"),
	)

	positions, err := strat.Positions(series.Closes)
	if err != nil {
		log.Fatalf("computing positions: %v", err)
	}

	if *debug {
		printExposureDebug(positions)
	}

	res, err := backtest.Simulate(series.Closes, positions, *feeBps)
	if err != nil {
		log.Fatalf("simulating: %v", err)
	}
	hold := backtest.BuyHold(series.Closes)

	stratSummary := backtest.Summarize(res, series.Dates)
	holdSummary := backtest.Summarize(hold, series.Dates)

	fmt.Printf("\nStrategy: %s | Ticker: %s\n", strat.Name(), series.Symbol)
	fmt.Printf("Period: %s to %s\n\n",
		series.Dates[0].Format("2006-01-02"),
		series.Dates[series.Len()-1].Format("2006-01-02"))
	fmt.Println(backtest.Render(stratSummary, holdSummary))

	tag := runTag(strat.Name(), series.Symbol, *start, *end,
		*lookback, *downDays, *upDays, *crashWeekDrop, *crashHoldDays,
		*crashDownDays, *crashUpDays, *downLeverage)

	csvPath := filepath.Join(*outDir, tag+"_backtest.csv")
	if err := export.WriteBacktestCSV(csvPath, series.Dates, series.Closes, res); err != nil {
		log.Fatalf("writing CSV: %v", err)
	}

	svgPath := filepath.Join(*outDir, tag+"_equity.svg")
	title := fmt.Sprintf("Equity Curve - %s (%s)", series.Symbol, strat.Name())
	if err := export.WriteEquitySVG(svgPath, title, series.Dates, res.Equity, hold.Equity); err != nil {
		log.Fatalf("writing chart: %v", err)
	}

	run := &store.Run{
		Symbol:      series.Symbol,
		Strategy:    strat.Name(),
		Tag:         tag,
		Start:       startDate,
		End:         endDate,
		FeeBps:      *feeBps,
		CAGR:        stratSummary.CAGR,
		AnnualVol:   stratSummary.AnnualVol,
		Sharpe:      stratSummary.Sharpe,
		MaxDrawdown: stratSummary.MaxDrawdown,
		Trades:      stratSummary.Trades,
		WinRate:     stratSummary.WinRate,
	}
	if err := runStore.SaveRun(ctx, run); err != nil {
		log.Fatalf("saving run: %v", err)
	}

	fmt.Printf("Saved CSV  -> %s\n", csvPath)
	fmt.Printf("Saved plot -> %s\n", svgPath)
	logger.Info("run recorded", "id", run.ID, "tag", tag)
}

// runTag builds the output file prefix encoding the run parameters, so every
// parameter combination gets distinct output files.
func runTag(stratName, symbol, start, end string,
	lookback, downDays, upDays int, crashWeekDrop float64, crashHoldDays, crashDownDays, crashUpDays int,
	downLeverage float64) string {

	if stratName != "regime" {
		return fmt.Sprintf("%s_%s_%s_to_%s", symbol, stratName, start, end)
	}
	return fmt.Sprintf("%s_mom%d_d%d_u%d_cr%dw_ch%d_cd%d_cu%d_lev%.2f_%s_to_%s",
		symbol, lookback, downDays, upDays,
		int(crashWeekDrop*100), crashHoldDays, crashDownDays, crashUpDays,
		downLeverage, start, end)
}

// printExposureDebug prints exposure sanity checks: distinct exposure levels
// with their day counts, average exposure, fraction of days invested, and
// the maximum exposure.
func printExposureDebug(positions []float64) {
	counts := make(map[float64]int)
	var sum, max float64
	invested := 0
	for _, p := range positions {
		counts[p]++
		sum += p
		if p > 0 {
			invested++
		}
		if p > max {
			max = p
		}
	}

	levels := make([]float64, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Float64s(levels)

	fmt.Println("exposure value counts:")
	for _, level := range levels {
		fmt.Printf("  %.2f: %d\n", level, counts[level])
	}
	n := float64(len(positions))
	fmt.Printf("avg exposure: %.4f\n", sum/n)
	fmt.Printf("fraction invested: %.4f\n", float64(invested)/n)
	fmt.Printf("max exposure: %.2f\n", max)
}

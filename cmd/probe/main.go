package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/riskibarqy/scorecast/internal/app"
	"github.com/riskibarqy/scorecast/internal/config"
	"github.com/riskibarqy/scorecast/internal/platform/logging"
)

func main() {
	home := flag.String("home", "Real Madrid", "home team used for the news and prediction probes")
	away := flag.String("away", "Barcelona", "away team used for the news and prediction probes")
	date := flag.String("date", "", "fixture day (YYYY-MM-DD), defaults to today")
	workers := flag.Int("workers", 3, "concurrent provider checks")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(2)
	}
	logger := logging.NewJSON(logging.LevelWarn)
	defer func() { _ = logger.Sync() }()

	var day time.Time
	if *date != "" {
		day, err = time.Parse(time.DateOnly, *date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid -date %q: %v\n", *date, err)
			os.Exit(2)
		}
	}

	sources, err := app.NewSources(cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build sources: %v\n", err)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 4*cfg.ProviderTimeout)
	defer cancel()

	report, err := runProbe(ctx, probeDeps{
		fixtures:  sources.Fixtures,
		odds:      sources.Odds,
		news:      sources.News,
		predictor: sources.Predictor,
	}, probeInput{Date: day, HomeTeam: *home, AwayTeam: *away, Workers: *workers})
	if err != nil {
		fmt.Fprintf(os.Stderr, "run probe: %v\n", err)
		os.Exit(2)
	}
	report.Print(os.Stdout)

	if !report.OK() {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/scorecast/internal/domain/fixture"
	"github.com/riskibarqy/scorecast/internal/domain/news"
	"github.com/riskibarqy/scorecast/internal/domain/odds"
	"github.com/riskibarqy/scorecast/internal/domain/prediction"
	"github.com/riskibarqy/scorecast/internal/domain/source"
)

type probeDeps struct {
	fixtures  fixture.Source
	odds      odds.Source
	news      news.Searcher
	predictor prediction.Generator
}

type probeInput struct {
	Date     time.Time
	HomeTeam string
	AwayTeam string
	Workers  int
}

type checkResult struct {
	Name    string
	Elapsed time.Duration
	Detail  string
	Err     error
}

type probeReport struct {
	Checks []checkResult
}

func (r probeReport) OK() bool {
	for _, check := range r.Checks {
		if check.Err != nil {
			return false
		}
	}
	return true
}

func (r probeReport) Print(w io.Writer) {
	for i, check := range r.Checks {
		status := "ok"
		detail := check.Detail
		if check.Err != nil {
			status = "FAIL (" + source.Kind(check.Err) + ")"
			detail = check.Err.Error()
		}
		fmt.Fprintf(w, "[%d/%d] %-10s %-24s %6s  %s\n",
			i+1, len(r.Checks), check.Name, status, check.Elapsed.Round(time.Millisecond), detail)
	}
}

// runProbe runs the independent provider checks on a worker pool, then a
// prediction that uses the news titles as context.
func runProbe(ctx context.Context, deps probeDeps, in probeInput) (probeReport, error) {
	var headlines []string
	stage := []func() checkResult{
		func() checkResult {
			return timed("fixtures", func() (string, error) {
				items, err := deps.fixtures.FetchFixtures(ctx, in.Date)
				if err != nil {
					return "", err
				}
				if len(items) == 0 {
					return "no fixtures for the day", nil
				}
				return fmt.Sprintf("%d fixtures, first: %s vs %s", len(items), items[0].Home.Name, items[0].Away.Name), nil
			})
		},
		func() checkResult {
			return timed("odds", func() (string, error) {
				items, err := deps.odds.FetchOdds(ctx)
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("%d events", len(items)), nil
			})
		},
		func() checkResult {
			return timed("news", func() (string, error) {
				items, err := deps.news.SearchMatchContext(ctx, in.HomeTeam, in.AwayTeam)
				if err != nil {
					return "", err
				}
				headlines = news.Snippets(items, len(items))
				if len(items) == 0 {
					return fmt.Sprintf("no news for %s vs %s", in.HomeTeam, in.AwayTeam), nil
				}
				return fmt.Sprintf("%d items, first: %s", len(items), items[0].Title), nil
			})
		},
	}

	workers := in.Workers
	if workers < 1 {
		workers = len(stage)
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return probeReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	checks := make([]checkResult, len(stage), len(stage)+1)
	var wg sync.WaitGroup
	for i, run := range stage {
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			checks[i] = run()
		}); err != nil {
			wg.Done()
			wg.Wait()
			return probeReport{}, fmt.Errorf("submit %d: %w", i, err)
		}
	}
	wg.Wait()

	checks = append(checks, timed("prediction", func() (string, error) {
		home, draw, away := 2.1, 3.5, 3.2
		out, err := deps.predictor.GeneratePrediction(ctx, prediction.Input{
			HomeTeam:   in.HomeTeam,
			AwayTeam:   in.AwayTeam,
			Odds:       &odds.ThreeWay{Home: &home, Draw: &draw, Away: &away},
			RecentNews: headlines,
		})
		if err != nil {
			return "", err
		}
		detail := fmt.Sprintf("%s %d-%d (%s)", out.Winner, out.PredictedScore.Home, out.PredictedScore.Away, out.Confidence)
		if len(out.Warnings) > 0 {
			detail += " warnings: " + strings.Join(out.Warnings, ", ")
		}
		return detail, nil
	}))

	return probeReport{Checks: checks}, nil
}

func timed(name string, fn func() (string, error)) checkResult {
	start := time.Now()
	detail, err := fn()
	return checkResult{Name: name, Elapsed: time.Since(start), Detail: detail, Err: err}
}

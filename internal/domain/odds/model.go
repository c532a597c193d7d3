package odds

import (
	"context"
	"strings"
	"time"
)

const (
	MarketHeadToHead = "h2h"
	OutcomeDraw      = "Draw"
)

// Odds is one betting line as reported by the odds provider. Team names use the
// provider's spelling and are not guaranteed to match the fixture provider.
type Odds struct {
	ID           string
	SportKey     string
	SportTitle   string
	CommenceTime time.Time
	HomeTeam     string
	AwayTeam     string
	Bookmakers   []Bookmaker
}

type Bookmaker struct {
	Key        string
	Title      string
	LastUpdate *time.Time
	Markets    []Market
}

type Market struct {
	Key      string
	Outcomes []Outcome
}

type Outcome struct {
	Name  string
	Price float64
}

// ThreeWay holds decimal prices for the head-to-head market. Nil fields mean the
// bookmaker did not quote that outcome.
type ThreeWay struct {
	Home *float64
	Draw *float64
	Away *float64
}

// Source fetches the current odds for the configured competition.
type Source interface {
	FetchOdds(ctx context.Context) ([]Odds, error)
}

// ThreeWayPrices reads the h2h market of the first bookmaker in the record's
// own home/away orientation. Absent bookmaker data is "no price available", so
// the result is nil rather than an error.
func ThreeWayPrices(item *Odds) *ThreeWay {
	if item == nil {
		return nil
	}
	return PricesFor(item, item.HomeTeam, item.AwayTeam)
}

// PricesFor reads the h2h market of the first bookmaker oriented to the given
// home and away teams. Outcomes are looked up by team name, so a record listed
// with the teams swapped still prices the named home side as Home.
func PricesFor(item *Odds, homeTeam, awayTeam string) *ThreeWay {
	if item == nil || len(item.Bookmakers) == 0 {
		return nil
	}

	var market *Market
	for i := range item.Bookmakers[0].Markets {
		if item.Bookmakers[0].Markets[i].Key == MarketHeadToHead {
			market = &item.Bookmakers[0].Markets[i]
			break
		}
	}
	if market == nil {
		return nil
	}

	byName := make(map[string]float64, len(market.Outcomes))
	for _, outcome := range market.Outcomes {
		byName[outcomeKey(outcome.Name)] = outcome.Price
	}

	out := ThreeWay{
		Home: priceFor(byName, homeTeam),
		Draw: priceFor(byName, OutcomeDraw),
		Away: priceFor(byName, awayTeam),
	}
	if out.Home == nil && out.Draw == nil && out.Away == nil {
		return nil
	}
	return &out
}

func priceFor(byName map[string]float64, name string) *float64 {
	price, ok := byName[outcomeKey(name)]
	if !ok {
		return nil
	}
	return &price
}

func outcomeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Complete reports whether all three prices are quoted.
func (t *ThreeWay) Complete() bool {
	return t != nil && t.Home != nil && t.Draw != nil && t.Away != nil
}

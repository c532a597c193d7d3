package oddsapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/scorecast/internal/domain/odds"
)

type oddsEvent struct {
	ID           string      `json:"id" validate:"required"`
	SportKey     string      `json:"sport_key" validate:"required"`
	SportTitle   string      `json:"sport_title"`
	CommenceTime string      `json:"commence_time" validate:"required"`
	HomeTeam     string      `json:"home_team" validate:"required"`
	AwayTeam     string      `json:"away_team" validate:"required"`
	Bookmakers   []bookmaker `json:"bookmakers,omitempty" validate:"omitempty,dive"`
}

type bookmaker struct {
	Key        string   `json:"key" validate:"required"`
	Title      string   `json:"title"`
	LastUpdate string   `json:"last_update"`
	Markets    []market `json:"markets" validate:"dive"`
}

type market struct {
	Key      string    `json:"key" validate:"required"`
	Outcomes []outcome `json:"outcomes" validate:"dive"`
}

type outcome struct {
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price" validate:"gt=0"`
}

func (e oddsEvent) toDomain() (odds.Odds, error) {
	commence, err := time.Parse(time.RFC3339, strings.TrimSpace(e.CommenceTime))
	if err != nil {
		return odds.Odds{}, fmt.Errorf("parse commence_time %q: %w", e.CommenceTime, err)
	}

	out := odds.Odds{
		ID:           e.ID,
		SportKey:     e.SportKey,
		SportTitle:   e.SportTitle,
		CommenceTime: commence,
		HomeTeam:     strings.TrimSpace(e.HomeTeam),
		AwayTeam:     strings.TrimSpace(e.AwayTeam),
	}
	if len(e.Bookmakers) == 0 {
		return out, nil
	}

	out.Bookmakers = make([]odds.Bookmaker, 0, len(e.Bookmakers))
	for _, b := range e.Bookmakers {
		mapped := odds.Bookmaker{Key: b.Key, Title: b.Title}
		if b.LastUpdate != "" {
			if ts, err := time.Parse(time.RFC3339, b.LastUpdate); err == nil {
				mapped.LastUpdate = &ts
			}
		}
		mapped.Markets = make([]odds.Market, 0, len(b.Markets))
		for _, m := range b.Markets {
			outcomes := make([]odds.Outcome, 0, len(m.Outcomes))
			for _, o := range m.Outcomes {
				outcomes = append(outcomes, odds.Outcome{Name: o.Name, Price: o.Price})
			}
			mapped.Markets = append(mapped.Markets, odds.Market{Key: m.Key, Outcomes: outcomes})
		}
		out.Bookmakers = append(out.Bookmakers, mapped)
	}
	return out, nil
}

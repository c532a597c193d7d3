package apifootball

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/scorecast/internal/domain/fixture"
)

type fixturesEnvelope struct {
	Errors   any           `json:"errors"`
	Response []fixtureItem `json:"response" validate:"required,dive"`
}

// providerErrors returns the error messages API-Football reports with a 200
// status. The field is an empty list on success and an object otherwise.
func (e fixturesEnvelope) providerErrors() []string {
	items, ok := e.Errors.(map[string]any)
	if !ok || len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for key, value := range items {
		out = append(out, fmt.Sprintf("%s: %v", key, value))
	}
	sort.Strings(out)
	return out
}

type fixtureItem struct {
	Fixture fixtureInfo `json:"fixture" validate:"required"`
	League  leagueInfo  `json:"league" validate:"required"`
	Teams   teamsInfo   `json:"teams" validate:"required"`
	Goals   goalsInfo   `json:"goals"`
}

type fixtureInfo struct {
	ID     int64      `json:"id" validate:"required,gt=0"`
	Date   string     `json:"date" validate:"required"`
	Status statusInfo `json:"status"`
}

type statusInfo struct {
	Long  string `json:"long"`
	Short string `json:"short"`
}

type leagueInfo struct {
	ID      int64  `json:"id" validate:"required,gt=0"`
	Name    string `json:"name" validate:"required"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
}

type teamsInfo struct {
	Home teamInfo `json:"home" validate:"required"`
	Away teamInfo `json:"away" validate:"required"`
}

type teamInfo struct {
	ID   int64  `json:"id" validate:"required,gt=0"`
	Name string `json:"name" validate:"required"`
	Logo string `json:"logo"`
}

type goalsInfo struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

func (i fixtureItem) toDomain() (fixture.Fixture, error) {
	kickoff, err := time.Parse(time.RFC3339, strings.TrimSpace(i.Fixture.Date))
	if err != nil {
		return fixture.Fixture{}, fmt.Errorf("parse kickoff %q: %w", i.Fixture.Date, err)
	}
	if i.Teams.Home.ID == i.Teams.Away.ID {
		return fixture.Fixture{}, fmt.Errorf("home and away team are both id=%d", i.Teams.Home.ID)
	}

	return fixture.Fixture{
		ID:        i.Fixture.ID,
		KickoffAt: kickoff,
		Status: fixture.Status{
			Long:  strings.TrimSpace(i.Fixture.Status.Long),
			Short: strings.TrimSpace(i.Fixture.Status.Short),
		},
		Home: fixture.Team{ID: i.Teams.Home.ID, Name: strings.TrimSpace(i.Teams.Home.Name), LogoURL: i.Teams.Home.Logo},
		Away: fixture.Team{ID: i.Teams.Away.ID, Name: strings.TrimSpace(i.Teams.Away.Name), LogoURL: i.Teams.Away.Logo},
		League: fixture.League{
			ID:      i.League.ID,
			Name:    strings.TrimSpace(i.League.Name),
			Country: strings.TrimSpace(i.League.Country),
			LogoURL: i.League.Logo,
		},
		HomeGoals: i.Goals.Home,
		AwayGoals: i.Goals.Away,
	}, nil
}

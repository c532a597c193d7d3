package usecase

import (
	"strings"

	"github.com/riskibarqy/scorecast/internal/domain/fixture"
	"github.com/riskibarqy/scorecast/internal/domain/odds"
)

// OddsIndex matches odds to fixtures by exact, case-insensitive team names.
// There is no shared key between the two providers, so the pair of names is
// the only link; differently spelled names do not match.
type OddsIndex struct {
	byPair map[string]*odds.Odds
}

func NewOddsIndex(items []odds.Odds) *OddsIndex {
	byPair := make(map[string]*odds.Odds, len(items))
	for i := range items {
		key := teamPairKey(items[i].HomeTeam, items[i].AwayTeam)
		if _, exists := byPair[key]; exists {
			continue
		}
		byPair[key] = &items[i]
	}
	return &OddsIndex{byPair: byPair}
}

// Find looks up (home, away) and then the swapped pair. First record wins.
func (x *OddsIndex) Find(homeTeam, awayTeam string) *odds.Odds {
	if x == nil {
		return nil
	}
	if item, ok := x.byPair[teamPairKey(homeTeam, awayTeam)]; ok {
		return item
	}
	if item, ok := x.byPair[teamPairKey(awayTeam, homeTeam)]; ok {
		return item
	}
	return nil
}

func (x *OddsIndex) ForFixture(item fixture.Fixture) *odds.Odds {
	return x.Find(item.Home.Name, item.Away.Name)
}

// PricesForFixture orients the reconciled record's h2h prices to the fixture,
// so a swapped-pair match still quotes the fixture's home side as Home.
func (x *OddsIndex) PricesForFixture(item fixture.Fixture) (*odds.Odds, *odds.ThreeWay) {
	matched := x.ForFixture(item)
	return matched, odds.PricesFor(matched, item.Home.Name, item.Away.Name)
}

// MatchOdds returns the odds record reconciled to item, or nil.
func MatchOdds(item fixture.Fixture, items []odds.Odds) *odds.Odds {
	return NewOddsIndex(items).ForFixture(item)
}

func teamPairKey(homeTeam, awayTeam string) string {
	return normalizeTeamName(homeTeam) + "__" + normalizeTeamName(awayTeam)
}

func normalizeTeamName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

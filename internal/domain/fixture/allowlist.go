package fixture

import "strings"

// LeagueAllowList is a set of league display names admitted into the match list.
type LeagueAllowList struct {
	names map[string]struct{}
}

func NewLeagueAllowList(names []string) LeagueAllowList {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return LeagueAllowList{names: set}
}

func (a LeagueAllowList) Contains(leagueName string) bool {
	_, ok := a.names[strings.TrimSpace(leagueName)]
	return ok
}

func (a LeagueAllowList) Len() int {
	return len(a.names)
}

// Filter keeps only fixtures whose league name is allow-listed. Membership is by
// exact display name; country is not consulted.
func (a LeagueAllowList) Filter(items []Fixture) []Fixture {
	out := make([]Fixture, 0, len(items))
	for _, item := range items {
		if a.Contains(item.League.Name) {
			out = append(out, item)
		}
	}
	return out
}

package fixture

import (
	"sort"
	"strings"
)

const (
	unknownLeagueValue   = "Unknown"
	defaultOptionCountry = "International"
)

// LeagueInfo is static metadata for a supported competition.
type LeagueInfo struct {
	Country    string
	Federation string
}

// LeagueDirectory resolves league metadata by display name.
type LeagueDirectory struct {
	byName map[string]LeagueInfo
}

func NewLeagueDirectory(entries map[string]LeagueInfo) *LeagueDirectory {
	byName := make(map[string]LeagueInfo, len(entries))
	for name, info := range entries {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		byName[name] = info
	}
	return &LeagueDirectory{byName: byName}
}

// Lookup never fails; unknown names resolve to "Unknown" country and federation.
func (d *LeagueDirectory) Lookup(name string) LeagueInfo {
	if d != nil {
		if info, ok := d.byName[strings.TrimSpace(name)]; ok {
			return info
		}
	}
	return LeagueInfo{Country: unknownLeagueValue, Federation: unknownLeagueValue}
}

// LeagueOption is one entry of the league filter shown next to the match list.
type LeagueOption struct {
	ID      int64
	Name    string
	Country string
}

// LeagueOptions returns the distinct leagues of fixtures, deduplicated by name
// and sorted by name.
func LeagueOptions(fixtures []Fixture) []LeagueOption {
	seen := make(map[string]struct{}, len(fixtures))
	out := make([]LeagueOption, 0, len(fixtures))
	for _, item := range fixtures {
		if _, ok := seen[item.League.Name]; ok {
			continue
		}
		seen[item.League.Name] = struct{}{}

		country := strings.TrimSpace(item.League.Country)
		if country == "" {
			country = defaultOptionCountry
		}
		out = append(out, LeagueOption{ID: item.League.ID, Name: item.League.Name, Country: country})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// SortByKickoff orders fixtures by kickoff time, earliest first. Ties keep input order.
func SortByKickoff(fixtures []Fixture) {
	sort.SliceStable(fixtures, func(i, j int) bool {
		return fixtures[i].KickoffAt.Before(fixtures[j].KickoffAt)
	})
}

// FilterByLeagueID keeps fixtures of one league. Zero keeps everything.
func FilterByLeagueID(fixtures []Fixture, leagueID int64) []Fixture {
	if leagueID == 0 {
		return fixtures
	}
	out := make([]Fixture, 0, len(fixtures))
	for _, item := range fixtures {
		if item.League.ID == leagueID {
			out = append(out, item)
		}
	}
	return out
}

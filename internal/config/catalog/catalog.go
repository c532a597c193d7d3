// Package catalog loads the static competition and source data the service
// filters against. A default copy is embedded; CATALOG_PATH replaces it.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/scorecast/internal/domain/fixture"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type Catalog struct {
	Leagues []League   `yaml:"leagues"`
	Odds    OddsScope  `yaml:"odds"`
	News    NewsSearch `yaml:"news"`
}

type League struct {
	Name       string `yaml:"name"`
	Country    string `yaml:"country"`
	Federation string `yaml:"federation"`
}

type OddsScope struct {
	SportKey string `yaml:"sport_key"`
	Market   string `yaml:"market"`
}

type NewsSearch struct {
	MaxResultsPerQuery int      `yaml:"max_results_per_query"`
	Domains            []string `yaml:"domains"`
}

// Load returns the catalog at path, or the embedded default when path is empty.
func Load(path string) (Catalog, error) {
	raw := defaultCatalog
	if path = strings.TrimSpace(path); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Catalog{}, fmt.Errorf("read catalog %s: %w", path, err)
		}
		raw = data
	}
	return Parse(raw)
}

func Parse(raw []byte) (Catalog, error) {
	var out Catalog
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if err := out.validate(); err != nil {
		return Catalog{}, err
	}
	return out, nil
}

func (c *Catalog) validate() error {
	if len(c.Leagues) == 0 {
		return fmt.Errorf("catalog: leagues cannot be empty")
	}
	for i, league := range c.Leagues {
		if strings.TrimSpace(league.Name) == "" {
			return fmt.Errorf("catalog: leagues[%d].name is required", i)
		}
	}
	if strings.TrimSpace(c.Odds.SportKey) == "" {
		return fmt.Errorf("catalog: odds.sport_key is required")
	}
	if c.Odds.Market == "" {
		c.Odds.Market = "h2h"
	}
	if c.News.MaxResultsPerQuery <= 0 {
		c.News.MaxResultsPerQuery = 5
	}
	return nil
}

// AllowList builds the league-name filter for the match list.
func (c Catalog) AllowList() fixture.LeagueAllowList {
	names := make([]string, 0, len(c.Leagues))
	for _, league := range c.Leagues {
		names = append(names, league.Name)
	}
	return fixture.NewLeagueAllowList(names)
}

func (c Catalog) Directory() *fixture.LeagueDirectory {
	entries := make(map[string]fixture.LeagueInfo, len(c.Leagues))
	for _, league := range c.Leagues {
		entries[league.Name] = fixture.LeagueInfo{Country: league.Country, Federation: league.Federation}
	}
	return fixture.NewLeagueDirectory(entries)
}

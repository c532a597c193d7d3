package app

import (
	"net/http"

	"github.com/riskibarqy/scorecast/external/apifootball"
	"github.com/riskibarqy/scorecast/external/gemini"
	"github.com/riskibarqy/scorecast/external/oddsapi"
	"github.com/riskibarqy/scorecast/external/tavily"
	"github.com/riskibarqy/scorecast/internal/config"
	"github.com/riskibarqy/scorecast/internal/config/catalog"
	"github.com/riskibarqy/scorecast/internal/platform/logging"
	"github.com/riskibarqy/scorecast/internal/usecase"
)

// Sources bundles the four provider clients and the catalog they were built from.
type Sources struct {
	Catalog   catalog.Catalog
	Fixtures  *apifootball.Client
	Odds      *oddsapi.Client
	News      *tavily.Client
	Predictor *gemini.Client
}

// NewSources builds the provider clients. Missing API keys are not an error
// here; each client reports them per call.
func NewSources(cfg config.Config, logger *logging.Logger) (Sources, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return Sources{}, err
	}

	httpClient := &http.Client{}

	return Sources{
		Catalog: cat,
		Fixtures: apifootball.NewClient(apifootball.ClientConfig{
			HTTPClient:     httpClient,
			BaseURL:        cfg.Football.BaseURL,
			APIKey:         cfg.Football.APIKey,
			Timeout:        cfg.ProviderTimeout,
			Logger:         logger,
			CircuitBreaker: cfg.ProviderCircuit,
		}),
		Odds: oddsapi.NewClient(oddsapi.ClientConfig{
			HTTPClient:     httpClient,
			BaseURL:        cfg.Odds.BaseURL,
			APIKey:         cfg.Odds.APIKey,
			SportKey:       cat.Odds.SportKey,
			Regions:        cfg.OddsRegions,
			Market:         cat.Odds.Market,
			Timeout:        cfg.ProviderTimeout,
			Logger:         logger,
			CircuitBreaker: cfg.ProviderCircuit,
		}),
		News: tavily.NewClient(tavily.ClientConfig{
			HTTPClient:     httpClient,
			BaseURL:        cfg.Tavily.BaseURL,
			APIKey:         cfg.Tavily.APIKey,
			Domains:        cat.News.Domains,
			MaxResults:     cat.News.MaxResultsPerQuery,
			Timeout:        cfg.ProviderTimeout,
			Logger:         logger,
			CircuitBreaker: cfg.ProviderCircuit,
		}),
		Predictor: gemini.NewClient(gemini.ClientConfig{
			HTTPClient:     httpClient,
			BaseURL:        cfg.Gemini.BaseURL,
			APIKey:         cfg.Gemini.APIKey,
			Model:          cfg.GeminiModel,
			Timeout:        cfg.ProviderTimeout,
			Logger:         logger,
			CircuitBreaker: cfg.ProviderCircuit,
		}),
	}, nil
}

// Aggregation wires the sources into the match aggregation service.
func (s Sources) Aggregation(logger *logging.Logger) *usecase.AggregationService {
	return usecase.NewAggregationService(
		s.Fixtures,
		s.Odds,
		s.News,
		s.Predictor,
		s.Catalog.AllowList(),
		s.Catalog.Directory(),
		logger,
	)
}

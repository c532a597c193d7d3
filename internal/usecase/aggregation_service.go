package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/scorecast/internal/domain/fixture"
	"github.com/riskibarqy/scorecast/internal/domain/news"
	"github.com/riskibarqy/scorecast/internal/domain/odds"
	"github.com/riskibarqy/scorecast/internal/domain/prediction"
	"github.com/riskibarqy/scorecast/internal/domain/source"
	"github.com/riskibarqy/scorecast/internal/platform/logging"
)

const deepDiveNewsSnippets = 3

// MatchList is the raw result of the list view: allow-listed fixtures and the
// unfiltered odds list. Odds are reconciled by the consumer.
type MatchList struct {
	Fixtures []fixture.Fixture
	Odds     []odds.Odds
}

// MatchView is one fixture with the odds reconciled to it.
type MatchView struct {
	Fixture    fixture.Fixture
	Odds       *odds.Odds
	Prices     *odds.ThreeWay
	LeagueInfo fixture.LeagueInfo
}

type MatchBoard struct {
	Matches []MatchView
	Leagues []fixture.LeagueOption
}

type DeepDiveInput struct {
	MatchID  string
	HomeTeam string
	AwayTeam string
	Status   string
	Odds     *odds.ThreeWay
	// Date is the fixture day used when the match has to be resolved by id.
	Date time.Time
}

// DeepDive holds the news context and prediction for one match. News is nil
// only when the match could not be resolved; a failed or empty search is an
// empty slice. Prediction is nil when none is available.
type DeepDive struct {
	News       []news.Item
	Prediction *prediction.Output
}

type AggregationService struct {
	fixtures  fixture.Source
	odds      odds.Source
	news      news.Searcher
	predictor prediction.Generator
	allowList fixture.LeagueAllowList
	leagues   *fixture.LeagueDirectory
	logger    *logging.Logger
}

func NewAggregationService(
	fixtures fixture.Source,
	oddsSource odds.Source,
	newsSearcher news.Searcher,
	predictor prediction.Generator,
	allowList fixture.LeagueAllowList,
	leagues *fixture.LeagueDirectory,
	logger *logging.Logger,
) *AggregationService {
	if logger == nil {
		logger = logging.Default()
	}
	return &AggregationService{
		fixtures:  fixtures,
		odds:      oddsSource,
		news:      newsSearcher,
		predictor: predictor,
		allowList: allowList,
		leagues:   leagues,
		logger:    logger,
	}
}

// GetMatchList fetches fixtures and odds concurrently. A failing source leaves
// its slot empty and never suppresses the other.
func (s *AggregationService) GetMatchList(ctx context.Context, date time.Time) MatchList {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.GetMatchList",
		attribute.String("match.date", date.Format(time.DateOnly)),
	)
	defer span.End()

	var (
		fixtures []fixture.Fixture
		oddsList []odds.Odds
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		fixtures = s.fetchFixtures(ctx, date)
	})
	wg.Go(func() {
		oddsList = s.fetchOdds(ctx)
	})
	wg.Wait()

	span.SetAttributes(
		attribute.Int("match.fixtures", len(fixtures)),
		attribute.Int("match.odds", len(oddsList)),
	)
	return MatchList{
		Fixtures: s.allowList.Filter(fixtures),
		Odds:     oddsList,
	}
}

// GetMatchBoard is the list view with odds reconciled, sorted by kickoff and
// optionally narrowed to one league.
func (s *AggregationService) GetMatchBoard(ctx context.Context, date time.Time, leagueID int64) MatchBoard {
	list := s.GetMatchList(ctx, date)

	fixture.SortByKickoff(list.Fixtures)
	options := fixture.LeagueOptions(list.Fixtures)

	return MatchBoard{
		Matches: s.matchViews(fixture.FilterByLeagueID(list.Fixtures, leagueID), NewOddsIndex(list.Odds)),
		Leagues: options,
	}
}

func (s *AggregationService) matchViews(fixtures []fixture.Fixture, index *OddsIndex) []MatchView {
	out := make([]MatchView, 0, len(fixtures))
	for _, item := range fixtures {
		matched, prices := index.PricesForFixture(item)
		out = append(out, MatchView{
			Fixture:    item,
			Odds:       matched,
			Prices:     prices,
			LeagueInfo: s.LeagueInfo(item.League.Name),
		})
	}
	return out
}

// LeagueInfo returns the catalog metadata for a league name.
func (s *AggregationService) LeagueInfo(name string) fixture.LeagueInfo {
	return s.leagues.Lookup(name)
}

// GetMatchNews returns the match context news. A failed search yields an
// empty list.
func (s *AggregationService) GetMatchNews(ctx context.Context, homeTeam, awayTeam string) ([]news.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.GetMatchNews")
	defer span.End()

	homeTeam = strings.TrimSpace(homeTeam)
	awayTeam = strings.TrimSpace(awayTeam)
	if homeTeam == "" || awayTeam == "" {
		return nil, invalidInput("home and away team", "are required")
	}
	return s.searchMatchContext(ctx, homeTeam, awayTeam), nil
}

// SearchNews runs one free-text query. A failed search yields an empty list.
func (s *AggregationService) SearchNews(ctx context.Context, query string) ([]news.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.SearchNews")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalidInput("query", "is required")
	}
	if s.news == nil {
		return []news.Item{}, nil
	}
	items, err := s.news.SearchNews(ctx, query)
	if err != nil {
		s.logSourceFailure(ctx, "news", err)
		return []news.Item{}, nil
	}
	if items == nil {
		items = []news.Item{}
	}
	return items, nil
}

// GeneratePrediction returns nil when no prediction is available.
func (s *AggregationService) GeneratePrediction(ctx context.Context, input prediction.Input) (*prediction.Output, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.GeneratePrediction")
	defer span.End()

	input.HomeTeam = strings.TrimSpace(input.HomeTeam)
	input.AwayTeam = strings.TrimSpace(input.AwayTeam)
	if input.HomeTeam == "" || input.AwayTeam == "" {
		return nil, invalidInput("home and away team", "are required")
	}
	return s.generatePrediction(ctx, input), nil
}

// GetDeepDiveAnalysis fetches news for the match and then, using that news,
// a prediction. The two steps are sequential. Finished matches get no
// prediction. An id that cannot be resolved yields an empty DeepDive.
func (s *AggregationService) GetDeepDiveAnalysis(ctx context.Context, input DeepDiveInput) (DeepDive, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AggregationService.GetDeepDiveAnalysis")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.HomeTeam = strings.TrimSpace(input.HomeTeam)
	input.AwayTeam = strings.TrimSpace(input.AwayTeam)
	if input.MatchID == "" && (input.HomeTeam == "" || input.AwayTeam == "") {
		return DeepDive{}, invalidInput("match id or both team names", "are required")
	}

	if input.HomeTeam == "" || input.AwayTeam == "" {
		resolved, ok := s.resolveMatch(ctx, input)
		if !ok {
			s.logger.InfoContext(ctx, "deep dive match not found", "match_id", input.MatchID)
			return DeepDive{}, nil
		}
		input = resolved
	}

	items := s.searchMatchContext(ctx, input.HomeTeam, input.AwayTeam)

	if fixture.IsFinishedStatus(input.Status) {
		return DeepDive{News: items}, nil
	}

	out := s.generatePrediction(ctx, prediction.Input{
		HomeTeam:   input.HomeTeam,
		AwayTeam:   input.AwayTeam,
		Odds:       input.Odds,
		RecentNews: news.Snippets(items, deepDiveNewsSnippets),
	})
	return DeepDive{News: items, Prediction: out}, nil
}

// resolveMatch re-reads the list view and looks the id up. The list may have
// changed since the caller saw it.
func (s *AggregationService) resolveMatch(ctx context.Context, input DeepDiveInput) (DeepDiveInput, bool) {
	list := s.GetMatchList(ctx, input.Date)
	for _, item := range list.Fixtures {
		if strconv.FormatInt(item.ID, 10) != input.MatchID {
			continue
		}
		input.HomeTeam = item.Home.Name
		input.AwayTeam = item.Away.Name
		if input.Status == "" {
			input.Status = item.Status.Label()
		}
		if input.Odds == nil {
			_, input.Odds = NewOddsIndex(list.Odds).PricesForFixture(item)
		}
		return input, true
	}
	return input, false
}

func (s *AggregationService) fetchFixtures(ctx context.Context, date time.Time) []fixture.Fixture {
	if s.fixtures == nil {
		return []fixture.Fixture{}
	}
	var (
		items []fixture.Fixture
		err   error
	)
	if recovered := panics.Try(func() { items, err = s.fixtures.FetchFixtures(ctx, date) }); recovered != nil {
		err = recovered.AsError()
	}
	if err != nil {
		s.logSourceFailure(ctx, "fixtures", err)
		return []fixture.Fixture{}
	}
	return items
}

func (s *AggregationService) fetchOdds(ctx context.Context) []odds.Odds {
	if s.odds == nil {
		return []odds.Odds{}
	}
	var (
		items []odds.Odds
		err   error
	)
	if recovered := panics.Try(func() { items, err = s.odds.FetchOdds(ctx) }); recovered != nil {
		err = recovered.AsError()
	}
	if err != nil {
		s.logSourceFailure(ctx, "odds", err)
		return []odds.Odds{}
	}
	return items
}

// searchMatchContext never returns nil: a failed search is an empty section,
// recorded as a degraded source on the span and in the log.
func (s *AggregationService) searchMatchContext(ctx context.Context, homeTeam, awayTeam string) []news.Item {
	if s.news == nil {
		return []news.Item{}
	}
	items, err := s.news.SearchMatchContext(ctx, homeTeam, awayTeam)
	if err != nil {
		s.logSourceFailure(ctx, "news", err)
		return []news.Item{}
	}
	if items == nil {
		items = []news.Item{}
	}
	return items
}

func (s *AggregationService) generatePrediction(ctx context.Context, input prediction.Input) *prediction.Output {
	if s.predictor == nil {
		return nil
	}
	out, err := s.predictor.GeneratePrediction(ctx, input)
	if err != nil {
		s.logSourceFailure(ctx, "prediction", err)
		return nil
	}
	return out
}

func (s *AggregationService) logSourceFailure(ctx context.Context, name string, err error) {
	kind := source.Kind(err)
	markSourceDegraded(ctx, name, kind)
	s.logger.WarnContext(ctx, "data source unavailable, continuing without it",
		"source", name,
		"error_kind", kind,
		"error", err,
	)
}

package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/scorecast/internal/domain/fixture"
	"github.com/riskibarqy/scorecast/internal/domain/news"
	"github.com/riskibarqy/scorecast/internal/domain/odds"
	"github.com/riskibarqy/scorecast/internal/domain/prediction"
	"github.com/riskibarqy/scorecast/internal/domain/source"
	"github.com/riskibarqy/scorecast/internal/domain/user"
	"github.com/riskibarqy/scorecast/internal/infrastructure/repository/memory"
	fixturemock "github.com/riskibarqy/scorecast/internal/mocks/domain/fixture"
	newsmock "github.com/riskibarqy/scorecast/internal/mocks/domain/news"
	oddsmock "github.com/riskibarqy/scorecast/internal/mocks/domain/odds"
	predictionmock "github.com/riskibarqy/scorecast/internal/mocks/domain/prediction"
	usermock "github.com/riskibarqy/scorecast/internal/mocks/domain/user"
	"github.com/riskibarqy/scorecast/internal/platform/id"
	"github.com/riskibarqy/scorecast/internal/platform/logging"
	"github.com/riskibarqy/scorecast/internal/usecase"
)

type routerDeps struct {
	fixtures  *fixturemock.Source
	odds      *oddsmock.Source
	news      *newsmock.Searcher
	predictor *predictionmock.Generator
	verifier  *usermock.TokenVerifier
}

func newTestRouter(t *testing.T) (http.Handler, routerDeps) {
	t.Helper()

	deps := routerDeps{
		fixtures:  fixturemock.NewSource(t),
		odds:      oddsmock.NewSource(t),
		news:      newsmock.NewSearcher(t),
		predictor: predictionmock.NewGenerator(t),
		verifier:  usermock.NewTokenVerifier(t),
	}
	logger := logging.NewNop()
	aggregation := usecase.NewAggregationService(
		deps.fixtures, deps.odds, deps.news, deps.predictor,
		fixture.NewLeagueAllowList([]string{"La Liga", "Premier League"}),
		fixture.NewLeagueDirectory(map[string]fixture.LeagueInfo{"La Liga": {Country: "Spain", Federation: "RFEF"}}),
		logger,
	)
	ids := id.NewUUIDGenerator()
	historyRepo := memory.NewHistoryRepository()
	predictionRepo := memory.NewPredictionRepository()
	handler := NewHandler(
		aggregation,
		usecase.NewFavoriteService(memory.NewFavoriteRepository(), aggregation, ids),
		usecase.NewPredictionService(predictionRepo, ids),
		usecase.NewHistoryService(historyRepo, ids),
		usecase.NewTimelineService(historyRepo, predictionRepo),
		logger,
	)
	return NewRouter(handler, deps.verifier, logger, RouterOptions{SwaggerEnabled: true, CORSAllowedOrigins: []string{"*"}}), deps
}

func clasicoFixture() fixture.Fixture {
	return fixture.Fixture{
		ID:        1001,
		KickoffAt: time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC),
		Status:    fixture.Status{Long: "Not Started", Short: "NS"},
		Home:      fixture.Team{ID: 541, Name: "Real Madrid"},
		Away:      fixture.Team{ID: 529, Name: "Barcelona"},
		League:    fixture.League{ID: 140, Name: "La Liga", Country: "Spain"},
	}
}

func clasicoOdds() []odds.Odds {
	return []odds.Odds{{
		ID:       "evt-1",
		HomeTeam: "Barcelona",
		AwayTeam: "Real Madrid",
		Bookmakers: []odds.Bookmaker{{Key: "pinnacle", Markets: []odds.Market{{Key: odds.MarketHeadToHead, Outcomes: []odds.Outcome{
			{Name: "Real Madrid", Price: 2.1},
			{Name: "Draw", Price: 3.5},
			{Name: "Barcelona", Price: 3.2},
		}}}}},
	}}
}

func doRequest(t *testing.T, router http.Handler, method, target, body string, header map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestListMatches_ReconcilesAndDegrades(t *testing.T) {
	t.Parallel()

	router, deps := newTestRouter(t)
	deps.fixtures.On("FetchFixtures", mock.Anything, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)).
		Return([]fixture.Fixture{clasicoFixture(), {ID: 5, Home: fixture.Team{Name: "A"}, Away: fixture.Team{Name: "B"}, League: fixture.League{Name: "Liga MX"}}}, nil).Once()
	deps.odds.On("FetchOdds", mock.Anything).Return(nil, fmt.Errorf("%w: odds down", source.ErrTransport)).Once()

	rec, body := doRequest(t, router, http.MethodGet, "/v1/matches?date=2026-03-01", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]any)
	matches := data["matches"].([]any)
	require.Len(t, matches, 1)
	match := matches[0].(map[string]any)
	require.EqualValues(t, 1001, match["id"])
	require.Nil(t, match["odds"])
	require.Nil(t, match["prices"])
	require.Equal(t, "RFEF", match["league"].(map[string]any)["federation"])

	leagues := data["leagues"].([]any)
	require.Len(t, leagues, 1)
}

func TestListMatches_SwappedOddsAttachPrices(t *testing.T) {
	t.Parallel()

	router, deps := newTestRouter(t)
	deps.fixtures.On("FetchFixtures", mock.Anything, mock.AnythingOfType("time.Time")).Return([]fixture.Fixture{clasicoFixture()}, nil).Once()
	deps.odds.On("FetchOdds", mock.Anything).Return(clasicoOdds(), nil).Once()

	rec, body := doRequest(t, router, http.MethodGet, "/v1/matches", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	match := body["data"].(map[string]any)["matches"].([]any)[0].(map[string]any)
	require.Equal(t, "evt-1", match["odds"].(map[string]any)["id"])
	prices := match["prices"].(map[string]any)
	// prices follow the odds record's orientation
	require.EqualValues(t, 3.2, prices["home"])
	require.EqualValues(t, 3.5, prices["draw"])
	require.EqualValues(t, 2.1, prices["away"])
}

func TestListMatches_RejectsBadDate(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/v1/matches?date=01-03-2026", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "INVALID_ARGUMENT", body["error"].(map[string]any)["status"])
}

func TestListMatches_RejectsNegativeLeagueID(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/v1/matches?league_id=-1", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, body["error"].(map[string]any)["message"], "non-negative integer")
}

func TestSearchNews_ReturnsResults(t *testing.T) {
	t.Parallel()

	router, deps := newTestRouter(t)
	items := []news.Item{{Title: "Ancelotti press conference", URL: "https://marca.com/a", Source: "marca.com"}}
	deps.news.On("SearchNews", mock.Anything, "real madrid").Return(items, nil).Once()

	rec, body := doRequest(t, router, http.MethodGet, "/v1/news?q=real+madrid", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := body["data"].(map[string]any)["news"].([]any)
	require.Len(t, got, 1)
	require.Equal(t, "https://marca.com/a", got[0].(map[string]any)["url"])

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/news", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMatchNews_EmptyWhenSearchFails(t *testing.T) {
	t.Parallel()

	router, deps := newTestRouter(t)
	deps.news.On("SearchMatchContext", mock.Anything, "Real Madrid", "Barcelona").
		Return(nil, fmt.Errorf("%w: TAVILY_API_KEY", source.ErrMissingCredential)).Once()

	rec, body := doRequest(t, router, http.MethodGet, "/v1/matches/news?home=Real+Madrid&away=Barcelona", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	v, ok := data["news"]
	require.True(t, ok)
	require.Equal(t, []any{}, v)
}

func TestDeepDive_UsesNewsThenPrediction(t *testing.T) {
	t.Parallel()

	router, deps := newTestRouter(t)
	items := []news.Item{{Title: "Vinicius fit to start", URL: "https://espn.com/a", Source: "espn.com"}}
	deps.news.On("SearchMatchContext", mock.Anything, "Real Madrid", "Barcelona").Return(items, nil).Once()
	deps.predictor.On("GeneratePrediction", mock.Anything, mock.MatchedBy(func(in prediction.Input) bool {
		return in.HomeTeam == "Real Madrid" && len(in.RecentNews) == 1 && in.RecentNews[0] == "Vinicius fit to start" &&
			in.Odds != nil && *in.Odds.Home == 2.1 && in.Odds.Draw == nil
	})).Return(&prediction.Output{
		Winner:         "Real Madrid",
		PredictedScore: prediction.Score{Home: 2, Away: 1},
		Confidence:     prediction.ConfidenceMedium,
		Reasoning:      "Home advantage.",
		Warnings:       []string{},
	}, nil).Once()

	rec, body := doRequest(t, router, http.MethodPost, "/v1/matches/1001/deep-dive",
		`{"home_team":"Real Madrid","away_team":"Barcelona","status":"Not Started","odds":{"home":2.1}}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := body["data"].(map[string]any)
	require.Len(t, data["news"].([]any), 1)
	pred := data["prediction"].(map[string]any)
	require.Equal(t, "Real Madrid", pred["winner"])
	require.Equal(t, "medium", pred["confidence"])
	require.Empty(t, pred["warnings"])
}

func TestDeepDive_RejectsUnknownFields(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec, _ := doRequest(t, router, http.MethodPost, "/v1/matches/1001/deep-dive", `{"home":"x"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGeneratePrediction_NullOnModelFailure(t *testing.T) {
	t.Parallel()

	router, deps := newTestRouter(t)
	deps.predictor.On("GeneratePrediction", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: not json", source.ErrModelOutput)).Once()

	rec, body := doRequest(t, router, http.MethodPost, "/v1/predictions/generate",
		`{"home_team":"Real Madrid","away_team":"Barcelona","recent_news":["a","b"]}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := body["data"].(map[string]any)
	v, ok := data["prediction"]
	require.True(t, ok)
	require.Nil(t, v)
}

func TestGeneratePrediction_RequiresTeams(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec, _ := doRequest(t, router, http.MethodPost, "/v1/predictions/generate", `{"home_team":"Real Madrid"}`, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMeRoutes_RequireBearerToken(t *testing.T) {
	t.Parallel()

	router, deps := newTestRouter(t)
	rec, _ := doRequest(t, router, http.MethodGet, "/v1/me/favorites", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	deps.verifier.On("VerifyAccessToken", mock.Anything, "bad").
		Return(user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)).Once()
	rec, _ = doRequest(t, router, http.MethodGet, "/v1/me/favorites", "", map[string]string{"Authorization": "Bearer bad"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doRequest(t, router, http.MethodGet, "/v1/me/favorites", "", map[string]string{"Authorization": "Basic abc"})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMeRoutes_FavoritesPredictionsHistoryTimeline(t *testing.T) {
	t.Parallel()

	router, deps := newTestRouter(t)
	deps.verifier.On("VerifyAccessToken", mock.Anything, "tok").Return(user.Principal{UserID: "user-1"}, nil)
	auth := map[string]string{"Authorization": "Bearer tok"}

	rec, body := doRequest(t, router, http.MethodPost, "/v1/me/favorites", `{"match_id":"1001"}`, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	favID := body["data"].(map[string]any)["id"]
	rec, body = doRequest(t, router, http.MethodPost, "/v1/me/favorites", `{"match_id":"1001"}`, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, favID, body["data"].(map[string]any)["id"])

	deps.fixtures.On("FetchFixtures", mock.Anything, mock.AnythingOfType("time.Time")).Return([]fixture.Fixture{clasicoFixture()}, nil).Once()
	deps.odds.On("FetchOdds", mock.Anything).Return(clasicoOdds(), nil).Once()
	rec, body = doRequest(t, router, http.MethodGet, "/v1/me/favorites/matches", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, body["data"].([]any), 1)

	rec, _ = doRequest(t, router, http.MethodDelete, "/v1/me/favorites/1001", "", auth)
	require.Equal(t, http.StatusNoContent, rec.Code)
	rec, _ = doRequest(t, router, http.MethodDelete, "/v1/me/favorites/1001", "", auth)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec, body = doRequest(t, router, http.MethodPost, "/v1/me/predictions",
		`{"match_id":"1001","home_team":"Real Madrid","away_team":"Barcelona","match_date":"2026-03-01T20:00:00Z",
		"prediction":{"winner":"Draw","predicted_score":{"home":1,"away":1},"confidence":"low","reasoning":"Even.","warnings":[]}}`, auth)
	require.Equal(t, http.StatusCreated, rec.Code)
	predictionID := body["data"].(map[string]any)["id"].(string)

	rec, _ = doRequest(t, router, http.MethodPost, "/v1/me/predictions",
		`{"match_id":"1001","prediction":{"winner":"Draw","predicted_score":{"home":1,"away":1},"confidence":"sure"}}`, auth)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doRequest(t, router, http.MethodPost, "/v1/me/history", `{"match_id":"1001","home_team":"Real Madrid","league":"La Liga"}`, auth)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body = doRequest(t, router, http.MethodGet, "/v1/me/timeline", "", auth)
	require.Equal(t, http.StatusOK, rec.Code)
	groups := body["data"].([]any)
	require.Len(t, groups, 1)
	group := groups[0].(map[string]any)
	require.Equal(t, "Today", group["label"])
	require.Len(t, group["items"].([]any), 2)

	rec, _ = doRequest(t, router, http.MethodDelete, "/v1/me/predictions/"+predictionID, "", auth)
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestHealthzAndDocs(t *testing.T) {
	t.Parallel()

	router, _ := newTestRouter(t)
	rec, body := doRequest(t, router, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", body["data"].(map[string]any)["status"])

	req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
	raw := httptest.NewRecorder()
	router.ServeHTTP(raw, req.WithContext(context.Background()))
	require.Equal(t, http.StatusOK, raw.Code)
	require.Contains(t, raw.Body.String(), "ScoreCast API")
}

func TestResolveClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	if got := resolveClientIP(req); got != "10.0.0.1" {
		t.Fatalf("unexpected remote ip: %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := resolveClientIP(req); got != "203.0.113.9" {
		t.Fatalf("expected first forwarded ip, got %q", got)
	}
}

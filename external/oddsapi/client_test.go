package oddsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/scorecast/internal/domain/odds"
	"github.com/riskibarqy/scorecast/internal/domain/source"
)

const oddsPayload = `[
  {
    "id": "evt-1",
    "sport_key": "soccer_spain_la_liga",
    "sport_title": "La Liga - Spain",
    "commence_time": "2026-03-01T20:00:00Z",
    "home_team": "Real Madrid",
    "away_team": "Barcelona",
    "bookmakers": [
      {"key": "pinnacle", "title": "Pinnacle", "last_update": "2026-03-01T08:00:00Z",
       "markets": [{"key": "h2h", "outcomes": [
         {"name": "Real Madrid", "price": 2.1},
         {"name": "Draw", "price": 3.5},
         {"name": "Barcelona", "price": 3.2}
       ]}]}
    ]
  },
  {
    "id": "evt-2",
    "sport_key": "soccer_spain_la_liga",
    "commence_time": "2026-03-02T20:00:00Z",
    "home_team": "Sevilla",
    "away_team": "Valencia"
  }
]`

func newTestClient(t *testing.T, handler http.HandlerFunc, apiKey string) (*Client, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return NewClient(ClientConfig{
		BaseURL:  server.URL,
		APIKey:   apiKey,
		SportKey: "soccer_spain_la_liga",
		Timeout:  time.Second,
	}), &hits
}

func TestFetchOdds_MapsEventsAndOptionalBookmakers(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sports/soccer_spain_la_liga/odds" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("apiKey") != "odds-key" || q.Get("markets") != "h2h" || q.Get("oddsFormat") != "decimal" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer odds-key" {
			t.Errorf("unexpected authorization header: %q", got)
		}
		_, _ = w.Write([]byte(oddsPayload))
	}, "odds-key")

	items, err := client.FetchOdds(context.Background())
	if err != nil {
		t.Fatalf("fetch odds: %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected one round trip, got %d", hits.Load())
	}
	if len(items) != 2 {
		t.Fatalf("unexpected odds count: %d", len(items))
	}

	prices := odds.ThreeWayPrices(&items[0])
	if !prices.Complete() || *prices.Home != 2.1 || *prices.Draw != 3.5 || *prices.Away != 3.2 {
		t.Fatalf("unexpected prices: %+v", prices)
	}
	if items[0].Bookmakers[0].LastUpdate == nil {
		t.Fatalf("expected bookmaker last update")
	}
	if len(items[1].Bookmakers) != 0 || odds.ThreeWayPrices(&items[1]) != nil {
		t.Fatalf("event without bookmakers must have no price")
	}
}

func TestFetchOdds_AcceptsDataEnvelope(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": ` + oddsPayload + `}`))
	}, "odds-key")

	items, err := client.FetchOdds(context.Background())
	if err != nil {
		t.Fatalf("fetch odds: %v", err)
	}
	if len(items) != 2 || items[0].ID != "evt-1" || items[1].HomeTeam != "Sevilla" {
		t.Fatalf("unexpected odds from envelope: %+v", items)
	}
}

func TestFetchOdds_OneMalformedRecordRejectsPage(t *testing.T) {
	t.Parallel()

	payload := `[
	  {"id":"a","sport_key":"s","commence_time":"2026-03-01T20:00:00Z","home_team":"A","away_team":"B"},
	  {"id":"b","sport_key":"s","commence_time":"2026-03-01T20:00:00Z","home_team":"C"}
	]`
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(payload))
	}, "odds-key")

	items, err := client.FetchOdds(context.Background())
	if !errors.Is(err, source.ErrInvalidShape) {
		t.Fatalf("expected invalid shape error, got %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no partial result, got %d", len(items))
	}
}

func TestFetchOdds_ObjectInsteadOfListIsInvalidShape(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"Unknown sport"}`))
	}, "odds-key")

	if _, err := client.FetchOdds(context.Background()); !errors.Is(err, source.ErrInvalidShape) {
		t.Fatalf("expected invalid shape error, got %v", err)
	}
}

func TestFetchOdds_NonSuccessStatusDoesNotLeakKey(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded for key "+r.URL.Query().Get("apiKey"), http.StatusTooManyRequests)
	}, "odds-key")

	_, err := client.FetchOdds(context.Background())
	if !errors.Is(err, source.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	if strings.Contains(err.Error(), "odds-key") {
		t.Fatalf("api key leaked: %v", err)
	}
}

func TestFetchOdds_MissingCredential(t *testing.T) {
	t.Parallel()

	client, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, "")

	if _, err := client.FetchOdds(context.Background()); !errors.Is(err, source.ErrMissingCredential) {
		t.Fatalf("expected missing credential error, got %v", err)
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no request without credential")
	}
}

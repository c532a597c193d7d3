package postgres

import (
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/scorecast/internal/domain/favorite"
	"github.com/riskibarqy/scorecast/internal/domain/history"
	"github.com/riskibarqy/scorecast/internal/domain/prediction"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(fmt.Errorf("get favorite: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped sql.ErrNoRows to be not found")
	}
	if isNotFound(fmt.Errorf("pq: relation favorite_matches does not exist")) {
		t.Fatalf("expected unrelated error not to be not found")
	}
}

func TestSavedPredictionRoundTripKeepsOutputVerbatim(t *testing.T) {
	matchDate := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	item := prediction.Saved{
		ID:        "p1",
		UserID:    "u1",
		MatchID:   "1001",
		HomeTeam:  "Real Madrid",
		AwayTeam:  "Barcelona",
		MatchDate: &matchDate,
		Output: prediction.Output{
			Winner:         "Real Madrid",
			PredictedScore: prediction.Score{Home: 2, Away: 1},
			Confidence:     prediction.ConfidenceMedium,
			Reasoning:      "Home form.",
		},
		CreatedAt: matchDate.Add(-time.Hour),
	}

	insert := savedPredictionInsertFromDomain(item)
	if insert.Warnings == nil || len(insert.Warnings) != 0 {
		t.Fatalf("expected empty non-nil warnings, got %#v", insert.Warnings)
	}
	if insert.PredictedHomeGoals != 2 || insert.PredictedAwayGoals != 1 || insert.Confidence != "medium" {
		t.Fatalf("unexpected insert model: %+v", insert)
	}

	row := savedPredictionTableModel{
		PublicID:           insert.PublicID,
		UserID:             insert.UserID,
		MatchID:            insert.MatchID,
		HomeTeam:           insert.HomeTeam,
		AwayTeam:           insert.AwayTeam,
		MatchDate:          insert.MatchDate,
		Winner:             insert.Winner,
		PredictedHomeGoals: insert.PredictedHomeGoals,
		PredictedAwayGoals: insert.PredictedAwayGoals,
		Confidence:         insert.Confidence,
		Reasoning:          insert.Reasoning,
		CreatedAt:          insert.CreatedAt,
	}
	got := savedPredictionFromRow(row)
	if got.ID != "p1" || got.Output.Winner != "Real Madrid" || got.Output.Confidence != prediction.ConfidenceMedium {
		t.Fatalf("unexpected saved prediction: %+v", got)
	}
	if got.Output.Warnings == nil {
		t.Fatalf("expected warnings to be non-nil after reading a NULL-free row")
	}
}

func TestUpsertQueriesReturnTheStoredRow(t *testing.T) {
	at := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)

	favoriteQuery, _, err := favoriteUpsertQuery(favorite.Favorite{ID: "f1", UserID: "u1", MatchID: "1001", CreatedAt: at})
	if err != nil {
		t.Fatalf("build favorite upsert: %v", err)
	}
	historyQuery, _, err := historyUpsertQuery(history.Entry{ID: "h1", UserID: "u1", MatchID: "1001", ViewedAt: at})
	if err != nil {
		t.Fatalf("build history upsert: %v", err)
	}

	for name, query := range map[string]string{"favorite": favoriteQuery, "history": historyQuery} {
		if !strings.Contains(query, "DO UPDATE SET") {
			t.Fatalf("%s upsert must update on conflict so a row is returned: %s", name, query)
		}
		if !strings.HasSuffix(strings.TrimSpace(query), "RETURNING *") {
			t.Fatalf("%s upsert must return the stored row: %s", name, query)
		}
	}
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/scorecast/internal/domain/favorite"
	"github.com/riskibarqy/scorecast/internal/domain/history"
	"github.com/riskibarqy/scorecast/internal/domain/prediction"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestFavoriteRepository_ListNewestFirstAndScoped(t *testing.T) {
	ctx := context.Background()
	repo := NewFavoriteRepository()

	_, _ = repo.Insert(ctx, favorite.Favorite{ID: "f1", UserID: "u1", MatchID: "100", CreatedAt: base})
	_, _ = repo.Insert(ctx, favorite.Favorite{ID: "f2", UserID: "u1", MatchID: "200", CreatedAt: base.Add(time.Hour)})
	_, _ = repo.Insert(ctx, favorite.Favorite{ID: "f3", UserID: "u2", MatchID: "100", CreatedAt: base})
	stored, _ := repo.Insert(ctx, favorite.Favorite{ID: "dup", UserID: "u1", MatchID: "100", CreatedAt: base.Add(2 * time.Hour)})
	if stored.ID != "f1" {
		t.Fatalf("expected duplicate insert to return the stored favorite, got %+v", stored)
	}

	items, err := repo.ListByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("list favorites: %v", err)
	}
	if len(items) != 2 || items[0].ID != "f2" || items[1].ID != "f1" {
		t.Fatalf("unexpected favorites: %+v", items)
	}

	deleted, _ := repo.Delete(ctx, "u2", "200")
	if deleted {
		t.Fatalf("expected delete of another user's favorite to report false")
	}
	deleted, _ = repo.Delete(ctx, "u1", "200")
	if !deleted {
		t.Fatalf("expected delete to report true")
	}
	if _, found, _ := repo.Get(ctx, "u1", "200"); found {
		t.Fatalf("expected favorite to be gone")
	}
}

func TestPredictionRepository_DeleteScopedToOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewPredictionRepository()

	_ = repo.Insert(ctx, prediction.Saved{ID: "p1", UserID: "u1", CreatedAt: base, Output: prediction.Output{Winner: "Draw", Warnings: []string{"w"}}})
	_ = repo.Insert(ctx, prediction.Saved{ID: "p2", UserID: "u1", CreatedAt: base.Add(time.Minute)})

	if deleted, _ := repo.Delete(ctx, "u2", "p1"); deleted {
		t.Fatalf("expected other user not to delete p1")
	}

	items, _ := repo.ListByUser(ctx, "u1")
	if len(items) != 2 || items[0].ID != "p2" {
		t.Fatalf("unexpected predictions: %+v", items)
	}
	items[1].Output.Warnings[0] = "mutated"

	again, _ := repo.ListByUser(ctx, "u1")
	if again[1].Output.Warnings[0] != "w" {
		t.Fatalf("expected stored warnings to be isolated from callers")
	}
}

func TestHistoryRepository_UpsertKeepsSingleRow(t *testing.T) {
	ctx := context.Background()
	repo := NewHistoryRepository()

	_, _ = repo.Insert(ctx, history.Entry{ID: "h1", UserID: "u1", MatchID: "100", ViewedAt: base})
	entry, found, _ := repo.GetByMatch(ctx, "u1", "100")
	if !found {
		t.Fatalf("expected entry")
	}
	entry.ViewedAt = base.Add(time.Hour)
	entry.League = "La Liga"
	_ = repo.Update(ctx, entry)
	_, _ = repo.Insert(ctx, history.Entry{ID: "h2", UserID: "u1", MatchID: "200", ViewedAt: base.Add(time.Minute)})

	items, _ := repo.ListByUser(ctx, "u1")
	if len(items) != 2 || items[0].ID != "h1" || items[0].League != "La Liga" {
		t.Fatalf("unexpected history: %+v", items)
	}

	stored, _ := repo.Insert(ctx, history.Entry{ID: "h9", UserID: "u1", MatchID: "100", HomeTeam: "Real Madrid", ViewedAt: base.Add(2 * time.Hour)})
	if stored.ID != "h1" || stored.League != "La Liga" || stored.HomeTeam != "Real Madrid" {
		t.Fatalf("expected conflicting insert to merge into h1, got %+v", stored)
	}

	if deleted, _ := repo.Delete(ctx, "u1", "h2"); !deleted {
		t.Fatalf("expected delete to succeed")
	}
	if deleted, _ := repo.Delete(ctx, "u1", "h2"); deleted {
		t.Fatalf("expected second delete to report false")
	}
}

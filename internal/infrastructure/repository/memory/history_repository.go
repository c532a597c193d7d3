package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/scorecast/internal/domain/history"
)

// HistoryRepository keeps one entry per (user, match).
type HistoryRepository struct {
	mu      sync.RWMutex
	byMatch map[string]history.Entry
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{byMatch: make(map[string]history.Entry)}
}

func (r *HistoryRepository) GetByMatch(_ context.Context, userID, matchID string) (history.Entry, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byMatch[userKey(userID, matchID)]
	return item, ok, nil
}

func (r *HistoryRepository) Insert(_ context.Context, item history.Entry) (history.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userKey(item.UserID, item.MatchID)
	if existing, ok := r.byMatch[key]; ok {
		merged := existing.Apply(history.Metadata{
			HomeTeam:  item.HomeTeam,
			AwayTeam:  item.AwayTeam,
			League:    item.League,
			MatchDate: item.MatchDate,
		})
		merged.ViewedAt = item.ViewedAt
		item = merged
	}
	r.byMatch[key] = item
	return item, nil
}

func (r *HistoryRepository) Update(_ context.Context, item history.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userKey(item.UserID, item.MatchID)
	if existing, ok := r.byMatch[key]; !ok || existing.ID != item.ID {
		return nil
	}
	r.byMatch[key] = item
	return nil
}

func (r *HistoryRepository) ListByUser(_ context.Context, userID string) ([]history.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]history.Entry, 0)
	for _, item := range r.byMatch {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ViewedAt.Equal(out[j].ViewedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].ViewedAt.After(out[j].ViewedAt)
	})
	return out, nil
}

func (r *HistoryRepository) Delete(_ context.Context, userID, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, item := range r.byMatch {
		if item.UserID == userID && item.ID == id {
			delete(r.byMatch, key)
			return true, nil
		}
	}
	return false, nil
}

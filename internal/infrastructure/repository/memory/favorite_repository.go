package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/scorecast/internal/domain/favorite"
)

type FavoriteRepository struct {
	mu    sync.RWMutex
	items map[string]favorite.Favorite
}

func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{items: make(map[string]favorite.Favorite)}
}

func (r *FavoriteRepository) Get(_ context.Context, userID, matchID string) (favorite.Favorite, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userKey(userID, matchID)]
	return item, ok, nil
}

func (r *FavoriteRepository) Insert(_ context.Context, item favorite.Favorite) (favorite.Favorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userKey(item.UserID, item.MatchID)
	if existing, exists := r.items[key]; exists {
		return existing, nil
	}
	r.items[key] = item
	return item, nil
}

func (r *FavoriteRepository) Delete(_ context.Context, userID, matchID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userKey(userID, matchID)
	if _, ok := r.items[key]; !ok {
		return false, nil
	}
	delete(r.items, key)
	return true, nil
}

func (r *FavoriteRepository) ListByUser(_ context.Context, userID string) ([]favorite.Favorite, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]favorite.Favorite, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func userKey(userID, id string) string {
	return userID + "::" + id
}

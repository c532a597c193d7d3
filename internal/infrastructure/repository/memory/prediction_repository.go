package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/scorecast/internal/domain/prediction"
)

type PredictionRepository struct {
	mu    sync.RWMutex
	items map[string]prediction.Saved
}

func NewPredictionRepository() *PredictionRepository {
	return &PredictionRepository{items: make(map[string]prediction.Saved)}
}

func (r *PredictionRepository) Insert(_ context.Context, item prediction.Saved) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[userKey(item.UserID, item.ID)] = clonePrediction(item)
	return nil
}

func (r *PredictionRepository) ListByUser(_ context.Context, userID string) ([]prediction.Saved, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Saved, 0)
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, clonePrediction(item))
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

func (r *PredictionRepository) Delete(_ context.Context, userID, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := userKey(userID, id)
	if _, ok := r.items[key]; !ok {
		return false, nil
	}
	delete(r.items, key)
	return true, nil
}

func clonePrediction(item prediction.Saved) prediction.Saved {
	copied := item
	copied.Output.Warnings = append([]string{}, item.Output.Warnings...)
	return copied
}

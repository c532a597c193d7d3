package favorite

import (
	"context"
	"time"
)

type Favorite struct {
	ID        string
	UserID    string
	MatchID   string
	CreatedAt time.Time
}

type Repository interface {
	Get(ctx context.Context, userID, matchID string) (Favorite, bool, error)
	// Insert returns the stored row, which is the existing one when a live
	// favorite for the same (user, match) already exists.
	Insert(ctx context.Context, item Favorite) (Favorite, error)
	Delete(ctx context.Context, userID, matchID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]Favorite, error)
}

package history

import (
	"context"
	"time"
)

// Entry records the last time a user opened a match. One row per (user, match).
type Entry struct {
	ID        string
	UserID    string
	MatchID   string
	HomeTeam  string
	AwayTeam  string
	League    string
	MatchDate *time.Time
	ViewedAt  time.Time
}

// Metadata carries optional match details captured at view time.
type Metadata struct {
	HomeTeam  string
	AwayTeam  string
	League    string
	MatchDate *time.Time
}

type Repository interface {
	GetByMatch(ctx context.Context, userID, matchID string) (Entry, bool, error)
	// Insert upserts by (user, match) and returns the stored row, keeping the
	// existing id on conflict.
	Insert(ctx context.Context, item Entry) (Entry, error)
	Update(ctx context.Context, item Entry) error
	ListByUser(ctx context.Context, userID string) ([]Entry, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

// Apply overwrites fields that are provided in meta and keeps the rest.
func (e Entry) Apply(meta Metadata) Entry {
	if meta.HomeTeam != "" {
		e.HomeTeam = meta.HomeTeam
	}
	if meta.AwayTeam != "" {
		e.AwayTeam = meta.AwayTeam
	}
	if meta.League != "" {
		e.League = meta.League
	}
	if meta.MatchDate != nil {
		e.MatchDate = meta.MatchDate
	}
	return e
}

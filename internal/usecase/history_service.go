package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/scorecast/internal/domain/history"
	"github.com/riskibarqy/scorecast/internal/platform/id"
)

type HistoryService struct {
	repo history.Repository
	ids  id.Generator
	now  func() time.Time
}

func NewHistoryService(repo history.Repository, ids id.Generator) *HistoryService {
	return &HistoryService{repo: repo, ids: ids, now: time.Now}
}

// TrackView records that the user opened a match. A repeat view moves the
// existing row to now and refreshes whatever metadata was supplied.
func (s *HistoryService) TrackView(ctx context.Context, userID, matchID string, meta history.Metadata) (history.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.TrackView")
	defer span.End()

	userID, matchID, err := requireUserAndKey(userID, matchID, "match id")
	if err != nil {
		return history.Entry{}, err
	}
	meta.HomeTeam = strings.TrimSpace(meta.HomeTeam)
	meta.AwayTeam = strings.TrimSpace(meta.AwayTeam)
	meta.League = strings.TrimSpace(meta.League)
	now := s.now().UTC()

	existing, found, err := s.repo.GetByMatch(ctx, userID, matchID)
	if err != nil {
		return history.Entry{}, fmt.Errorf("get history entry: %w", err)
	}
	if found {
		updated := existing.Apply(meta)
		updated.ViewedAt = now
		if err := s.repo.Update(ctx, updated); err != nil {
			return history.Entry{}, fmt.Errorf("update history entry: %w", err)
		}
		return updated, nil
	}

	entryID, err := s.ids.NewID()
	if err != nil {
		return history.Entry{}, fmt.Errorf("generate history id: %w", err)
	}
	entry := history.Entry{ID: entryID, UserID: userID, MatchID: matchID, ViewedAt: now}.Apply(meta)
	stored, err := s.repo.Insert(ctx, entry)
	if err != nil {
		return history.Entry{}, fmt.Errorf("insert history entry: %w", err)
	}
	return stored, nil
}

// List returns the user's viewed matches, most recent first.
func (s *HistoryService) List(ctx context.Context, userID string) ([]history.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.List")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return items, nil
}

func (s *HistoryService) Delete(ctx context.Context, userID, entryID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.Delete")
	defer span.End()

	userID, entryID, err := requireUserAndKey(userID, entryID, "history id")
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, userID, entryID)
	if err != nil {
		return fmt.Errorf("delete history entry: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: history id=%s", ErrNotFound, entryID)
	}
	return nil
}

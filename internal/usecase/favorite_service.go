package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/riskibarqy/scorecast/internal/domain/favorite"
	"github.com/riskibarqy/scorecast/internal/domain/fixture"
	"github.com/riskibarqy/scorecast/internal/platform/id"
)

type matchListProvider interface {
	GetMatchList(ctx context.Context, date time.Time) MatchList
	LeagueInfo(name string) fixture.LeagueInfo
}

type FavoriteService struct {
	repo    favorite.Repository
	matches matchListProvider
	ids     id.Generator
	now     func() time.Time
}

func NewFavoriteService(repo favorite.Repository, matches matchListProvider, ids id.Generator) *FavoriteService {
	return &FavoriteService{
		repo:    repo,
		matches: matches,
		ids:     ids,
		now:     time.Now,
	}
}

// Add is idempotent: an existing favorite is returned unchanged.
func (s *FavoriteService) Add(ctx context.Context, userID, matchID string) (favorite.Favorite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.Add")
	defer span.End()

	userID, matchID, err := requireUserAndKey(userID, matchID, "match id")
	if err != nil {
		return favorite.Favorite{}, err
	}

	existing, found, err := s.repo.Get(ctx, userID, matchID)
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("get favorite: %w", err)
	}
	if found {
		return existing, nil
	}

	favID, err := s.ids.NewID()
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("generate favorite id: %w", err)
	}
	item := favorite.Favorite{
		ID:        favID,
		UserID:    userID,
		MatchID:   matchID,
		CreatedAt: s.now().UTC(),
	}
	stored, err := s.repo.Insert(ctx, item)
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("insert favorite: %w", err)
	}
	return stored, nil
}

func (s *FavoriteService) Remove(ctx context.Context, userID, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.Remove")
	defer span.End()

	userID, matchID, err := requireUserAndKey(userID, matchID, "match id")
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, userID, matchID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: favorite match=%s", ErrNotFound, matchID)
	}
	return nil
}

// List returns the user's favorites, newest first.
func (s *FavoriteService) List(ctx context.Context, userID string) ([]favorite.Favorite, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.List")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return items, nil
}

// ListWithMatches joins the favorites against the current match list. Only
// favorited fixtures present in that list are returned, with odds reconciled
// by team names.
func (s *FavoriteService) ListWithMatches(ctx context.Context, userID string, date time.Time) ([]MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FavoriteService.ListWithMatches")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if err := requireUser(userID); err != nil {
		return nil, err
	}

	var (
		favorites []favorite.Favorite
		listErr   error
		list      MatchList
	)
	var wg conc.WaitGroup
	wg.Go(func() {
		favorites, listErr = s.List(ctx, userID)
	})
	wg.Go(func() {
		list = s.matches.GetMatchList(ctx, date)
	})
	wg.Wait()
	if listErr != nil {
		return nil, listErr
	}

	wanted := make(map[string]struct{}, len(favorites))
	for _, item := range favorites {
		wanted[item.MatchID] = struct{}{}
	}

	index := NewOddsIndex(list.Odds)
	out := make([]MatchView, 0, len(favorites))
	for _, item := range list.Fixtures {
		if _, ok := wanted[strconv.FormatInt(item.ID, 10)]; !ok {
			continue
		}
		matched, prices := index.PricesForFixture(item)
		out = append(out, MatchView{
			Fixture:    item,
			Odds:       matched,
			Prices:     prices,
			LeagueInfo: s.matches.LeagueInfo(item.League.Name),
		})
	}
	return out, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/scorecast/internal/domain/favorite"
	qb "github.com/riskibarqy/scorecast/internal/platform/querybuilder"
)

const favoriteTable = "favorite_matches"

type FavoriteRepository struct {
	db *sqlx.DB
}

func NewFavoriteRepository(db *sqlx.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Get(ctx context.Context, userID, matchID string) (favorite.Favorite, bool, error) {
	query, args, err := qb.Select("*").
		From(favoriteTable).
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_id", matchID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return favorite.Favorite{}, false, fmt.Errorf("build get favorite query: %w", err)
	}

	var row favoriteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return favorite.Favorite{}, false, nil
		}
		return favorite.Favorite{}, false, fmt.Errorf("get favorite: %w", err)
	}
	return favoriteFromRow(row), true, nil
}

// Insert keeps the live row for the same (user, match) when one exists and
// returns whichever row is stored.
func (r *FavoriteRepository) Insert(ctx context.Context, item favorite.Favorite) (favorite.Favorite, error) {
	query, args, err := favoriteUpsertQuery(item)
	if err != nil {
		return favorite.Favorite{}, fmt.Errorf("build insert favorite query: %w", err)
	}

	var row favoriteTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return favorite.Favorite{}, fmt.Errorf("insert favorite: %w", err)
	}
	return favoriteFromRow(row), nil
}

// favoriteUpsertQuery touches the conflicting row so RETURNING yields it;
// DO NOTHING would return no row.
func favoriteUpsertQuery(item favorite.Favorite) (string, []any, error) {
	return qb.InsertModel(favoriteTable, favoriteInsertModel{
		PublicID:  item.ID,
		UserID:    item.UserID,
		MatchID:   item.MatchID,
		CreatedAt: item.CreatedAt,
	}, `ON CONFLICT (user_id, match_id) WHERE deleted_at IS NULL
DO UPDATE SET match_id = EXCLUDED.match_id
RETURNING *`)
}

func (r *FavoriteRepository) Delete(ctx context.Context, userID, matchID string) (bool, error) {
	query, args, err := qb.SoftDelete(favoriteTable, qb.Eq("user_id", userID), qb.Eq("match_id", matchID))
	if err != nil {
		return false, fmt.Errorf("build delete favorite query: %w", err)
	}
	return execAffected(ctx, r.db, "delete favorite", query, args)
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID string) ([]favorite.Favorite, error) {
	query, args, err := qb.Select("*").
		From(favoriteTable).
		Where(qb.Eq("user_id", userID), qb.IsNull("deleted_at")).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list favorites query: %w", err)
	}

	var rows []favoriteTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	out := make([]favorite.Favorite, 0, len(rows))
	for _, row := range rows {
		out = append(out, favoriteFromRow(row))
	}
	return out, nil
}

func favoriteFromRow(row favoriteTableModel) favorite.Favorite {
	return favorite.Favorite{
		ID:        row.PublicID,
		UserID:    row.UserID,
		MatchID:   row.MatchID,
		CreatedAt: row.CreatedAt,
	}
}

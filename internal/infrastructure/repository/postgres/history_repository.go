package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/scorecast/internal/domain/history"
	qb "github.com/riskibarqy/scorecast/internal/platform/querybuilder"
)

const historyTable = "match_history"

type HistoryRepository struct {
	db *sqlx.DB
}

func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) GetByMatch(ctx context.Context, userID, matchID string) (history.Entry, bool, error) {
	query, args, err := qb.Select("*").
		From(historyTable).
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_id", matchID),
			qb.IsNull("deleted_at"),
		).
		Limit(1).
		ToSQL()
	if err != nil {
		return history.Entry{}, false, fmt.Errorf("build get history query: %w", err)
	}

	var row historyTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return history.Entry{}, false, nil
		}
		return history.Entry{}, false, fmt.Errorf("get history: %w", err)
	}
	return historyFromRow(row), true, nil
}

func (r *HistoryRepository) Insert(ctx context.Context, item history.Entry) (history.Entry, error) {
	query, args, err := historyUpsertQuery(item)
	if err != nil {
		return history.Entry{}, fmt.Errorf("build insert history query: %w", err)
	}

	var row historyTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return history.Entry{}, fmt.Errorf("insert history: %w", err)
	}
	return historyFromRow(row), nil
}

func historyUpsertQuery(item history.Entry) (string, []any, error) {
	return qb.InsertModel(historyTable, historyInsertModel{
		PublicID:  item.ID,
		UserID:    item.UserID,
		MatchID:   item.MatchID,
		HomeTeam:  item.HomeTeam,
		AwayTeam:  item.AwayTeam,
		League:    item.League,
		MatchDate: item.MatchDate,
		ViewedAt:  item.ViewedAt,
	}, `ON CONFLICT (user_id, match_id) WHERE deleted_at IS NULL
DO UPDATE SET
    home_team = COALESCE(NULLIF(EXCLUDED.home_team, ''), match_history.home_team),
    away_team = COALESCE(NULLIF(EXCLUDED.away_team, ''), match_history.away_team),
    league = COALESCE(NULLIF(EXCLUDED.league, ''), match_history.league),
    match_date = COALESCE(EXCLUDED.match_date, match_history.match_date),
    viewed_at = EXCLUDED.viewed_at
RETURNING *`)
}

func (r *HistoryRepository) Update(ctx context.Context, item history.Entry) error {
	query, args, err := qb.Update(historyTable).
		Set("home_team", item.HomeTeam).
		Set("away_team", item.AwayTeam).
		Set("league", item.League).
		Set("match_date", item.MatchDate).
		Set("viewed_at", item.ViewedAt).
		Where(
			qb.Eq("public_id", item.ID),
			qb.Eq("user_id", item.UserID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update history query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update history: %w", err)
	}
	return nil
}

func (r *HistoryRepository) ListByUser(ctx context.Context, userID string) ([]history.Entry, error) {
	query, args, err := qb.Select("*").
		From(historyTable).
		Where(qb.Eq("user_id", userID), qb.IsNull("deleted_at")).
		OrderBy("viewed_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list history query: %w", err)
	}

	var rows []historyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}

	out := make([]history.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, historyFromRow(row))
	}
	return out, nil
}

func (r *HistoryRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	query, args, err := qb.SoftDelete(historyTable, qb.Eq("user_id", userID), qb.Eq("public_id", id))
	if err != nil {
		return false, fmt.Errorf("build delete history query: %w", err)
	}
	return execAffected(ctx, r.db, "delete history", query, args)
}

func historyFromRow(row historyTableModel) history.Entry {
	return history.Entry{
		ID:        row.PublicID,
		UserID:    row.UserID,
		MatchID:   row.MatchID,
		HomeTeam:  row.HomeTeam,
		AwayTeam:  row.AwayTeam,
		League:    row.League,
		MatchDate: row.MatchDate,
		ViewedAt:  row.ViewedAt,
	}
}

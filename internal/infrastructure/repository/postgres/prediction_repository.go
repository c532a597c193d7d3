package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/scorecast/internal/domain/prediction"
	qb "github.com/riskibarqy/scorecast/internal/platform/querybuilder"
)

const savedPredictionTable = "saved_predictions"

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) Insert(ctx context.Context, item prediction.Saved) error {
	query, args, err := qb.InsertModel(savedPredictionTable, savedPredictionInsertFromDomain(item), "")
	if err != nil {
		return fmt.Errorf("build insert prediction query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

func (r *PredictionRepository) ListByUser(ctx context.Context, userID string) ([]prediction.Saved, error) {
	query, args, err := qb.Select("*").
		From(savedPredictionTable).
		Where(qb.Eq("user_id", userID), qb.IsNull("deleted_at")).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list predictions query: %w", err)
	}

	var rows []savedPredictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}

	out := make([]prediction.Saved, 0, len(rows))
	for _, row := range rows {
		out = append(out, savedPredictionFromRow(row))
	}
	return out, nil
}

func (r *PredictionRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	query, args, err := qb.SoftDelete(savedPredictionTable, qb.Eq("user_id", userID), qb.Eq("public_id", id))
	if err != nil {
		return false, fmt.Errorf("build delete prediction query: %w", err)
	}
	return execAffected(ctx, r.db, "delete prediction", query, args)
}

func savedPredictionInsertFromDomain(item prediction.Saved) savedPredictionInsertModel {
	warnings := pq.StringArray(item.Output.Warnings)
	if warnings == nil {
		warnings = pq.StringArray{}
	}
	return savedPredictionInsertModel{
		PublicID:           item.ID,
		UserID:             item.UserID,
		MatchID:            item.MatchID,
		HomeTeam:           item.HomeTeam,
		AwayTeam:           item.AwayTeam,
		MatchDate:          item.MatchDate,
		Winner:             item.Output.Winner,
		PredictedHomeGoals: item.Output.PredictedScore.Home,
		PredictedAwayGoals: item.Output.PredictedScore.Away,
		Confidence:         string(item.Output.Confidence),
		Reasoning:          item.Output.Reasoning,
		Warnings:           warnings,
		CreatedAt:          item.CreatedAt,
	}
}

func savedPredictionFromRow(row savedPredictionTableModel) prediction.Saved {
	warnings := []string(row.Warnings)
	if warnings == nil {
		warnings = []string{}
	}
	return prediction.Saved{
		ID:        row.PublicID,
		UserID:    row.UserID,
		MatchID:   row.MatchID,
		HomeTeam:  row.HomeTeam,
		AwayTeam:  row.AwayTeam,
		MatchDate: row.MatchDate,
		Output: prediction.Output{
			Winner:         row.Winner,
			PredictedScore: prediction.Score{Home: row.PredictedHomeGoals, Away: row.PredictedAwayGoals},
			Confidence:     prediction.Confidence(row.Confidence),
			Reasoning:      row.Reasoning,
			Warnings:       warnings,
		},
		CreatedAt: row.CreatedAt,
	}
}

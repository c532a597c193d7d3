package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/scorecast/internal/domain/prediction"
	"github.com/riskibarqy/scorecast/internal/platform/id"
)

type SavePredictionInput struct {
	UserID    string
	MatchID   string
	HomeTeam  string
	AwayTeam  string
	MatchDate *time.Time
	Output    prediction.Output
}

// PredictionService keeps predictions the user chose to save. The output is
// stored exactly as generated.
type PredictionService struct {
	repo prediction.Repository
	ids  id.Generator
	now  func() time.Time
}

func NewPredictionService(repo prediction.Repository, ids id.Generator) *PredictionService {
	return &PredictionService{repo: repo, ids: ids, now: time.Now}
}

func (s *PredictionService) Save(ctx context.Context, input SavePredictionInput) (prediction.Saved, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Save")
	defer span.End()

	userID, matchID, err := requireUserAndKey(input.UserID, input.MatchID, "match id")
	if err != nil {
		return prediction.Saved{}, err
	}
	if err := validateOutput(input.Output); err != nil {
		return prediction.Saved{}, err
	}

	savedID, err := s.ids.NewID()
	if err != nil {
		return prediction.Saved{}, fmt.Errorf("generate prediction id: %w", err)
	}
	output := input.Output
	if output.Warnings == nil {
		output.Warnings = []string{}
	}
	item := prediction.Saved{
		ID:        savedID,
		UserID:    userID,
		MatchID:   matchID,
		HomeTeam:  strings.TrimSpace(input.HomeTeam),
		AwayTeam:  strings.TrimSpace(input.AwayTeam),
		MatchDate: input.MatchDate,
		Output:    output,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Insert(ctx, item); err != nil {
		return prediction.Saved{}, fmt.Errorf("insert prediction: %w", err)
	}
	return item, nil
}

// List returns the user's saved predictions, newest first.
func (s *PredictionService) List(ctx context.Context, userID string) ([]prediction.Saved, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.List")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}
	return items, nil
}

// Delete only removes rows owned by userID.
func (s *PredictionService) Delete(ctx context.Context, userID, predictionID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PredictionService.Delete")
	defer span.End()

	userID, predictionID, err := requireUserAndKey(userID, predictionID, "prediction id")
	if err != nil {
		return err
	}
	deleted, err := s.repo.Delete(ctx, userID, predictionID)
	if err != nil {
		return fmt.Errorf("delete prediction: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: prediction id=%s", ErrNotFound, predictionID)
	}
	return nil
}

func validateOutput(out prediction.Output) error {
	switch {
	case strings.TrimSpace(out.Winner) == "":
		return invalidInput("winner", "is required")
	case out.PredictedScore.Home < 0 || out.PredictedScore.Away < 0:
		return invalidInput("predicted score", "must be non-negative")
	case !out.Confidence.Valid():
		return invalidInput("confidence", "must be low, medium or high")
	}
	return nil
}

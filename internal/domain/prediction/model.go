package prediction

import (
	"context"
	"time"

	"github.com/riskibarqy/scorecast/internal/domain/odds"
)

const WinnerDraw = "Draw"

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
		return true
	default:
		return false
	}
}

type Score struct {
	Home int
	Away int
}

// Output is the model's structured verdict for a match. Winner is a team display
// name or WinnerDraw. Warnings is never nil on a validated output.
type Output struct {
	Winner         string
	PredictedScore Score
	Confidence     Confidence
	Reasoning      string
	Warnings       []string
}

// Input is the match context sent to the model.
type Input struct {
	HomeTeam   string
	AwayTeam   string
	Odds       *odds.ThreeWay
	RecentNews []string
}

// Generator returns a validated prediction. Any failure yields an error; callers
// at the aggregation boundary treat it as "no prediction available".
type Generator interface {
	GeneratePrediction(ctx context.Context, input Input) (*Output, error)
}

// Saved is a prediction the user chose to keep, stored verbatim.
type Saved struct {
	ID        string
	UserID    string
	MatchID   string
	HomeTeam  string
	AwayTeam  string
	MatchDate *time.Time
	Output    Output
	CreatedAt time.Time
}

type Repository interface {
	Insert(ctx context.Context, item Saved) error
	ListByUser(ctx context.Context, userID string) ([]Saved, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

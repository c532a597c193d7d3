package postgres

import (
	"time"

	"github.com/lib/pq"
)

type savedPredictionTableModel struct {
	ID                 int64          `db:"id"`
	PublicID           string         `db:"public_id"`
	UserID             string         `db:"user_id"`
	MatchID            string         `db:"match_id"`
	HomeTeam           string         `db:"home_team"`
	AwayTeam           string         `db:"away_team"`
	MatchDate          *time.Time     `db:"match_date"`
	Winner             string         `db:"winner"`
	PredictedHomeGoals int            `db:"predicted_home_goals"`
	PredictedAwayGoals int            `db:"predicted_away_goals"`
	Confidence         string         `db:"confidence"`
	Reasoning          string         `db:"reasoning"`
	Warnings           pq.StringArray `db:"warnings"`
	CreatedAt          time.Time      `db:"created_at"`
	DeletedAt          *time.Time     `db:"deleted_at"`
}

type savedPredictionInsertModel struct {
	PublicID           string         `db:"public_id"`
	UserID             string         `db:"user_id"`
	MatchID            string         `db:"match_id"`
	HomeTeam           string         `db:"home_team"`
	AwayTeam           string         `db:"away_team"`
	MatchDate          *time.Time     `db:"match_date"`
	Winner             string         `db:"winner"`
	PredictedHomeGoals int            `db:"predicted_home_goals"`
	PredictedAwayGoals int            `db:"predicted_away_goals"`
	Confidence         string         `db:"confidence"`
	Reasoning          string         `db:"reasoning"`
	Warnings           pq.StringArray `db:"warnings"`
	CreatedAt          time.Time      `db:"created_at"`
}

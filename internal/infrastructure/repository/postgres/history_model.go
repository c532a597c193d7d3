package postgres

import "time"

type historyTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	UserID    string     `db:"user_id"`
	MatchID   string     `db:"match_id"`
	HomeTeam  string     `db:"home_team"`
	AwayTeam  string     `db:"away_team"`
	League    string     `db:"league"`
	MatchDate *time.Time `db:"match_date"`
	ViewedAt  time.Time  `db:"viewed_at"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type historyInsertModel struct {
	PublicID  string     `db:"public_id"`
	UserID    string     `db:"user_id"`
	MatchID   string     `db:"match_id"`
	HomeTeam  string     `db:"home_team"`
	AwayTeam  string     `db:"away_team"`
	League    string     `db:"league"`
	MatchDate *time.Time `db:"match_date"`
	ViewedAt  time.Time  `db:"viewed_at"`
}

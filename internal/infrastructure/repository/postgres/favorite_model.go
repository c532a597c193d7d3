package postgres

import "time"

type favoriteTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	UserID    string     `db:"user_id"`
	MatchID   string     `db:"match_id"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type favoriteInsertModel struct {
	PublicID  string    `db:"public_id"`
	UserID    string    `db:"user_id"`
	MatchID   string    `db:"match_id"`
	CreatedAt time.Time `db:"created_at"`
}

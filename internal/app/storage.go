package app

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/scorecast/internal/config"
	"github.com/riskibarqy/scorecast/internal/domain/favorite"
	"github.com/riskibarqy/scorecast/internal/domain/history"
	"github.com/riskibarqy/scorecast/internal/domain/prediction"
	"github.com/riskibarqy/scorecast/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/scorecast/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/scorecast/internal/platform/logging"
)

// Storage holds the per-user repositories for the configured driver.
type Storage struct {
	Favorites   favorite.Repository
	Predictions prediction.Repository
	History     history.Repository
	close       func() error
}

func (s Storage) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func NewStorage(cfg config.Config, logger *logging.Logger) (Storage, error) {
	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return Storage{}, err
		}
		logger.Info("storage ready", "driver", cfg.StorageDriver, "db_name", dbNameFromURL(cfg.DBURL))
		return Storage{
			Favorites:   postgres.NewFavoriteRepository(db),
			Predictions: postgres.NewPredictionRepository(db),
			History:     postgres.NewHistoryRepository(db),
			close:       db.Close,
		}, nil
	case config.StorageMemory, "":
		logger.Info("storage ready", "driver", config.StorageMemory)
		return Storage{
			Favorites:   memory.NewFavoriteRepository(),
			Predictions: memory.NewPredictionRepository(),
			History:     memory.NewHistoryRepository(),
		}, nil
	default:
		return Storage{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", NormalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

const maxTracedQueryLength = 512

// formatDBQueryForTrace collapses whitespace so span attributes stay on one
// line, then caps the length.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}

package fixture

import (
	"context"
	"time"
)

// Source fetches fixtures for one calendar date from an external provider.
type Source interface {
	FetchFixtures(ctx context.Context, date time.Time) ([]Fixture, error)
}

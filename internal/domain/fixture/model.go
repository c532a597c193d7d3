package fixture

import (
	"strings"
	"time"
)

// Fixture represents one scheduled or in-progress match as reported by the
// fixture provider. It lives for a single request and is never persisted.
type Fixture struct {
	ID        int64
	KickoffAt time.Time
	Status    Status
	Home      Team
	Away      Team
	League    League
	HomeGoals *int
	AwayGoals *int
}

type Status struct {
	Long  string
	Short string
}

type Team struct {
	ID      int64
	Name    string
	LogoURL string
}

type League struct {
	ID      int64
	Name    string
	Country string
	LogoURL string
}

// Label returns the most descriptive status label available.
func (s Status) Label() string {
	if v := strings.TrimSpace(s.Long); v != "" {
		return v
	}
	return strings.TrimSpace(s.Short)
}

// IsFinishedStatus reports whether a free-text status label means the match is over.
func IsFinishedStatus(label string) bool {
	for _, marker := range []string{"Finished", "FT", "AET", "PEN"} {
		if strings.Contains(label, marker) {
			return true
		}
	}
	return false
}

// IsFinished checks both the long and short status labels.
func (f Fixture) IsFinished() bool {
	return IsFinishedStatus(f.Status.Long) || IsFinishedStatus(f.Status.Short)
}

package news

import (
	"context"
	"strings"
	"time"
)

// Item is one search result. URL is the identity used for de-duplication.
type Item struct {
	Title       string
	Description string
	URL         string
	Source      string
	PublishedAt *time.Time
}

// Searcher issues free-text and match-scoped news searches.
type Searcher interface {
	SearchNews(ctx context.Context, query string) ([]Item, error)
	SearchMatchContext(ctx context.Context, homeTeam, awayTeam string) ([]Item, error)
}

// MergeUnique concatenates result sets in the given order and drops any item
// whose URL was already seen. First occurrence wins.
func MergeUnique(sets ...[]Item) []Item {
	total := 0
	for _, set := range sets {
		total += len(set)
	}

	seen := make(map[string]struct{}, total)
	out := make([]Item, 0, total)
	for _, set := range sets {
		for _, item := range set {
			key := strings.TrimSpace(item.URL)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, item)
		}
	}
	return out
}

// Snippet is the text handed to the prediction model: title, else description.
func (i Item) Snippet() string {
	if v := strings.TrimSpace(i.Title); v != "" {
		return v
	}
	return strings.TrimSpace(i.Description)
}

// Snippets returns up to limit non-empty snippets in order.
func Snippets(items []Item, limit int) []string {
	out := make([]string, 0, limit)
	for _, item := range items {
		if len(out) >= limit {
			break
		}
		if text := item.Snippet(); text != "" {
			out = append(out, text)
		}
	}
	return out
}

package tavily

import (
	"strings"
	"time"

	"github.com/riskibarqy/scorecast/internal/domain/news"
)

type searchRequest struct {
	APIKey         string   `json:"api_key"`
	Query          string   `json:"query"`
	Topic          string   `json:"topic,omitempty"`
	MaxResults     int      `json:"max_results"`
	IncludeDomains []string `json:"include_domains,omitempty"`
}

type searchResponse struct {
	Query   string         `json:"query"`
	Results []searchResult `json:"results" validate:"required,dive"`
}

type searchResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url" validate:"required,url"`
	Content       string  `json:"content"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date"`
}

var publishedLayouts = []string{
	time.RFC3339,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02",
}

func (r searchResult) toDomain() news.Item {
	item := news.Item{
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Content),
		URL:         strings.TrimSpace(r.URL),
		Source:      hostOf(r.URL),
	}
	if value := strings.TrimSpace(r.PublishedDate); value != "" {
		for _, layout := range publishedLayouts {
			if ts, err := time.Parse(layout, value); err == nil {
				item.PublishedAt = &ts
				break
			}
		}
	}
	return item
}

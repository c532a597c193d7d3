package tavily

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc/iter"
	"github.com/sourcegraph/conc/panics"

	"github.com/riskibarqy/scorecast/external/transport"
	"github.com/riskibarqy/scorecast/internal/domain/news"
	"github.com/riskibarqy/scorecast/internal/domain/source"
	"github.com/riskibarqy/scorecast/internal/platform/logging"
	"github.com/riskibarqy/scorecast/internal/platform/resilience"
)

const (
	defaultBaseURL    = "https://api.tavily.com"
	defaultMaxResults = 5
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	APIKey     string
	// Domains restricts match-context searches. Free-text searches are unrestricted.
	Domains        []string
	MaxResults     int
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

type Client struct {
	caller     *transport.Caller
	baseURL    string
	apiKey     string
	domains    []string
	maxResults int
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	domains := make([]string, 0, len(cfg.Domains))
	for _, domain := range cfg.Domains {
		if domain = strings.TrimSpace(domain); domain != "" {
			domains = append(domains, domain)
		}
	}
	apiKey := strings.TrimSpace(cfg.APIKey)

	return &Client{
		caller: transport.New(transport.Config{
			Provider:       "tavily",
			HTTPClient:     cfg.HTTPClient,
			Timeout:        cfg.Timeout,
			CircuitBreaker: cfg.CircuitBreaker,
			Logger:         logger,
			Secret:         apiKey,
		}),
		baseURL:    baseURL,
		apiKey:     apiKey,
		domains:    domains,
		maxResults: maxResults,
		logger:     logger,
	}
}

// SearchNews runs one free-text query.
func (c *Client) SearchNews(ctx context.Context, query string) ([]news.Item, error) {
	if c.apiKey == "" {
		return nil, crerr.Wrap(source.ErrMissingCredential, "TAVILY_API_KEY")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	return c.search(ctx, query, nil)
}

// SearchMatchContext runs the preview and both injury queries in parallel and
// merges them in that fixed order, first URL wins. A failing query contributes
// nothing; the call only fails when every query failed.
func (c *Client) SearchMatchContext(ctx context.Context, homeTeam, awayTeam string) ([]news.Item, error) {
	if c.apiKey == "" {
		return nil, crerr.Wrap(source.ErrMissingCredential, "TAVILY_API_KEY")
	}
	homeTeam = strings.TrimSpace(homeTeam)
	awayTeam = strings.TrimSpace(awayTeam)
	if homeTeam == "" || awayTeam == "" {
		return nil, fmt.Errorf("both team names are required")
	}

	queries := MatchContextQueries(homeTeam, awayTeam)

	type queryResult struct {
		items []news.Item
		err   error
	}
	results := iter.Map(queries, func(query *string) queryResult {
		var res queryResult
		recovered := panics.Try(func() {
			res.items, res.err = c.search(ctx, *query, c.domains)
		})
		if recovered != nil {
			res = queryResult{err: recovered.AsError()}
		}
		return res
	})

	sets := make([][]news.Item, 0, len(results))
	errs := make([]error, 0, len(results))
	for i, res := range results {
		if res.err != nil {
			errs = append(errs, res.err)
			c.logger.WarnContext(ctx, "match context query failed",
				"source", "tavily",
				"query", queries[i],
				"error_kind", source.Kind(res.err),
				"error", res.err,
			)
			continue
		}
		sets = append(sets, res.items)
	}
	if len(errs) == len(queries) {
		return nil, fmt.Errorf("all match context queries failed: %w", errors.Join(errs...))
	}

	return news.MergeUnique(sets...), nil
}

// MatchContextQueries returns the queries in merge order: preview, home, away.
func MatchContextQueries(homeTeam, awayTeam string) []string {
	return []string{
		fmt.Sprintf("%s vs %s match preview", homeTeam, awayTeam),
		fmt.Sprintf("%s injury suspension lineup", homeTeam),
		fmt.Sprintf("%s injury suspension lineup", awayTeam),
	}
}

func (c *Client) search(ctx context.Context, query string, domains []string) ([]news.Item, error) {
	body, err := sonic.Marshal(searchRequest{
		APIKey:         c.apiKey,
		Query:          query,
		Topic:          "news",
		MaxResults:     c.maxResults,
		IncludeDomains: domains,
	})
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	raw, err := c.caller.Do(ctx, transport.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/search",
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	items, err := decodeResults(raw)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if len(items) > c.maxResults {
		items = items[:c.maxResults]
	}
	return items, nil
}

func decodeResults(raw []byte) ([]news.Item, error) {
	var resp searchResponse
	if err := sonic.Unmarshal(raw, &resp); err != nil {
		return nil, crerr.Wrapf(source.ErrInvalidShape, "decode search payload: %v", err)
	}
	if err := validate.Struct(resp); err != nil {
		return nil, crerr.Wrapf(source.ErrInvalidShape, "validate search payload: %v", err)
	}

	out := make([]news.Item, 0, len(resp.Results))
	for _, result := range resp.Results {
		out = append(out, result.toDomain())
	}
	return out, nil
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}

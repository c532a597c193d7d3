package apifootball

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/scorecast/external/transport"
	"github.com/riskibarqy/scorecast/internal/domain/fixture"
	"github.com/riskibarqy/scorecast/internal/domain/source"
	"github.com/riskibarqy/scorecast/internal/platform/logging"
	"github.com/riskibarqy/scorecast/internal/platform/resilience"
)

const (
	defaultBaseURL = "https://v3.football.api-sports.io"
	apiKeyHeader   = "x-apisports-key"
	dateLayout     = "2006-01-02"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// Now supplies the default date; tests pin it.
	Now func() time.Time
}

// Client reads fixtures-by-date from API-Football.
type Client struct {
	caller  *transport.Caller
	baseURL string
	apiKey  string
	now     func() time.Time
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	apiKey := strings.TrimSpace(cfg.APIKey)

	return &Client{
		caller: transport.New(transport.Config{
			Provider:       "api-football",
			HTTPClient:     cfg.HTTPClient,
			Timeout:        cfg.Timeout,
			CircuitBreaker: cfg.CircuitBreaker,
			Logger:         cfg.Logger,
			Secret:         apiKey,
		}),
		baseURL: baseURL,
		apiKey:  apiKey,
		now:     now,
	}
}

// FetchFixtures returns every fixture scheduled on date. A zero date means
// today in the client's clock. One malformed record rejects the whole page.
func (c *Client) FetchFixtures(ctx context.Context, date time.Time) ([]fixture.Fixture, error) {
	if c.apiKey == "" {
		return nil, crerr.Wrap(source.ErrMissingCredential, "FOOTBALL_API_KEY")
	}
	if date.IsZero() {
		date = c.now()
	}

	query := url.Values{}
	query.Set("date", date.Format(dateLayout))

	raw, err := c.caller.Do(ctx, transport.Request{
		Method: http.MethodGet,
		URL:    c.baseURL + "/fixtures?" + query.Encode(),
		Header: http.Header{apiKeyHeader: []string{c.apiKey}},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch fixtures date=%s: %w", date.Format(dateLayout), err)
	}

	return decodeFixtures(raw)
}

func decodeFixtures(raw []byte) ([]fixture.Fixture, error) {
	var envelope fixturesEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, crerr.Wrapf(source.ErrInvalidShape, "decode fixtures payload: %v", err)
	}
	if messages := envelope.providerErrors(); len(messages) > 0 {
		return nil, crerr.Wrapf(source.ErrTransport, "provider rejected request: %s", strings.Join(messages, "; "))
	}
	if err := validate.Struct(envelope); err != nil {
		return nil, crerr.Wrapf(source.ErrInvalidShape, "validate fixtures payload: %v", err)
	}

	out := make([]fixture.Fixture, 0, len(envelope.Response))
	for i, item := range envelope.Response {
		mapped, err := item.toDomain()
		if err != nil {
			return nil, crerr.Wrapf(source.ErrInvalidShape, "fixture[%d]: %v", i, err)
		}
		out = append(out, mapped)
	}
	return out, nil
}

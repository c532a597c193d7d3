package oddsapi

import (
	"bytes"
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
	"github.com/riskibarqy/scorecast/internal/domain/odds"
	"github.com/riskibarqy/scorecast/internal/domain/source"
	"github.com/riskibarqy/scorecast/internal/platform/logging"
	"github.com/riskibarqy/scorecast/internal/platform/resilience"
)

const (
	defaultBaseURL = "https://api.the-odds-api.com/v4"
	defaultRegions = "eu"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	SportKey       string
	Regions        string
	Market         string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client reads current odds for one competition. The competition is fixed at
// construction; odds outside it never reach callers. The key is sent both as a
// bearer token and as The Odds API's apiKey parameter, and the body may be a
// bare event array or a {"data": [...]} envelope.
type Client struct {
	caller   *transport.Caller
	baseURL  string
	apiKey   string
	sportKey string
	regions  string
	market   string
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	regions := strings.TrimSpace(cfg.Regions)
	if regions == "" {
		regions = defaultRegions
	}
	market := strings.TrimSpace(cfg.Market)
	if market == "" {
		market = odds.MarketHeadToHead
	}
	apiKey := strings.TrimSpace(cfg.APIKey)

	return &Client{
		caller: transport.New(transport.Config{
			Provider:       "the-odds-api",
			HTTPClient:     cfg.HTTPClient,
			Timeout:        cfg.Timeout,
			CircuitBreaker: cfg.CircuitBreaker,
			Logger:         cfg.Logger,
			Secret:         apiKey,
		}),
		baseURL:  baseURL,
		apiKey:   apiKey,
		sportKey: strings.TrimSpace(cfg.SportKey),
		regions:  regions,
		market:   market,
	}
}

func (c *Client) SportKey() string {
	return c.sportKey
}

func (c *Client) FetchOdds(ctx context.Context) ([]odds.Odds, error) {
	if c.apiKey == "" {
		return nil, crerr.Wrap(source.ErrMissingCredential, "ODDS_API_KEY")
	}
	if c.sportKey == "" {
		return nil, fmt.Errorf("odds sport key is not configured")
	}

	query := url.Values{}
	query.Set("apiKey", c.apiKey)
	query.Set("regions", c.regions)
	query.Set("markets", c.market)
	query.Set("oddsFormat", "decimal")
	query.Set("dateFormat", "iso")

	raw, err := c.caller.Do(ctx, transport.Request{
		Method: http.MethodGet,
		URL:    c.baseURL + "/sports/" + url.PathEscape(c.sportKey) + "/odds?" + query.Encode(),
		Header: http.Header{"Authorization": []string{"Bearer " + c.apiKey}},
	})
	if err != nil {
		return nil, fmt.Errorf("fetch odds sport=%s: %w", c.sportKey, err)
	}

	return decodeOdds(raw)
}

type oddsEnvelope struct {
	Data []oddsEvent `json:"data" validate:"required"`
}

func decodeOdds(raw []byte) ([]odds.Odds, error) {
	var events []oddsEvent
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope oddsEnvelope
		if err := sonic.Unmarshal(trimmed, &envelope); err != nil {
			return nil, crerr.Wrapf(source.ErrInvalidShape, "decode odds envelope: %v", err)
		}
		if envelope.Data == nil {
			return nil, crerr.Wrap(source.ErrInvalidShape, "odds envelope has no data array")
		}
		events = envelope.Data
	} else if err := sonic.Unmarshal(raw, &events); err != nil {
		return nil, crerr.Wrapf(source.ErrInvalidShape, "decode odds payload: %v", err)
	}
	if err := validate.Var(events, "required,dive"); err != nil {
		return nil, crerr.Wrapf(source.ErrInvalidShape, "validate odds payload: %v", err)
	}

	out := make([]odds.Odds, 0, len(events))
	for i, event := range events {
		mapped, err := event.toDomain()
		if err != nil {
			return nil, crerr.Wrapf(source.ErrInvalidShape, "odds[%d]: %v", i, err)
		}
		out = append(out, mapped)
	}
	return out, nil
}

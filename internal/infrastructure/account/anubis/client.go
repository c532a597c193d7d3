package anubis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/scorecast/external/transport"
	"github.com/riskibarqy/scorecast/internal/domain/user"
	"github.com/riskibarqy/scorecast/internal/platform/cache"
	"github.com/riskibarqy/scorecast/internal/platform/logging"
	"github.com/riskibarqy/scorecast/internal/platform/resilience"
	"github.com/riskibarqy/scorecast/internal/usecase"
)

const (
	defaultCacheTTL        = 30 * time.Second
	defaultCacheMaxEntries = 10000
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	IntrospectPath string
	AdminKey       string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	CacheTTL       time.Duration
	Logger         *logging.Logger
}

// Client verifies bearer tokens against the anubis introspection endpoint.
type Client struct {
	caller        *transport.Caller
	introspectURL string
	adminKey      string
	cache         *cache.Store[user.Principal]
	logger        *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &Client{
		caller: transport.New(transport.Config{
			Provider:       "anubis",
			HTTPClient:     cfg.HTTPClient,
			Timeout:        cfg.Timeout,
			CircuitBreaker: cfg.CircuitBreaker,
			Logger:         logger,
			Secret:         cfg.AdminKey,
		}),
		introspectURL: buildURL(cfg.BaseURL, cfg.IntrospectPath),
		adminKey:      strings.TrimSpace(cfg.AdminKey),
		cache:         cache.NewStore[user.Principal](cache.Options{TTL: ttl, MaxEntries: defaultCacheMaxEntries}),
		logger:        logger,
	}
}

func (c *Client) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: token is required", usecase.ErrUnauthorized)
	}

	// Concurrent requests with the same token share one introspection call.
	return c.cache.GetOrLoad(ctx, hashToken(token), func(ctx context.Context) (user.Principal, error) {
		return c.introspect(ctx, token)
	})
}

func (c *Client) introspect(ctx context.Context, token string) (user.Principal, error) {
	body, err := sonic.Marshal(introspectRequest{Token: token})
	if err != nil {
		return user.Principal{}, fmt.Errorf("marshal introspect request: %w", err)
	}

	header := http.Header{}
	if c.adminKey != "" {
		header.Set("x-admin-key", c.adminKey)
	}
	raw, err := c.caller.Do(ctx, transport.Request{
		Method: http.MethodPost,
		URL:    c.introspectURL,
		Header: header,
		Body:   body,
	})
	if err != nil {
		return user.Principal{}, c.classify(ctx, err)
	}

	var decoded introspectResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return user.Principal{}, fmt.Errorf("%w: decode introspect response: %w", usecase.ErrDependencyUnavailable, err)
	}
	if !decoded.Active {
		return user.Principal{}, fmt.Errorf("%w: inactive token", usecase.ErrUnauthorized)
	}
	if strings.TrimSpace(decoded.UserID) == "" {
		return user.Principal{}, fmt.Errorf("%w: introspect response has empty user_id", usecase.ErrDependencyUnavailable)
	}

	return user.Principal{UserID: decoded.UserID, Email: decoded.Email}, nil
}

// classify maps a rejected token to ErrUnauthorized and everything else,
// including a wrong admin key, to ErrDependencyUnavailable.
func (c *Client) classify(ctx context.Context, err error) error {
	var statusErr *transport.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: introspection denied", usecase.ErrUnauthorized)
	}

	c.logger.WarnContext(ctx, "anubis introspection failed", "error", err)
	return fmt.Errorf("%w: anubis introspection: %w", usecase.ErrDependencyUnavailable, err)
}

type introspectRequest struct {
	Token string `json:"token"`
}

type introspectResponse struct {
	Active bool   `json:"active"`
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

func buildURL(baseURL, path string) string {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	path = strings.TrimSpace(path)
	if path == "" {
		return baseURL
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return baseURL + path
}

// hashToken keys the cache so raw tokens never sit in memory.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

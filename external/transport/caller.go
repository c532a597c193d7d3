// Package transport is the HTTP plumbing shared by the provider clients: one
// attempt per call, a per-call deadline, an optional circuit breaker, and
// failures classified with the source error kinds.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/scorecast/internal/domain/source"
	"github.com/riskibarqy/scorecast/internal/platform/logging"
	"github.com/riskibarqy/scorecast/internal/platform/resilience"
)

const (
	defaultTimeout  = 8 * time.Second
	maxResponseSize = 4 << 20
)

type Config struct {
	Provider       string
	HTTPClient     *http.Client
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
	Logger         *logging.Logger
	// Secret is scrubbed from any error text before it leaves the caller.
	Secret string
}

type Caller struct {
	provider   string
	httpClient *http.Client
	timeout    time.Duration
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
	secret     string
}

type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

func New(cfg Config) *Caller {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	provider := strings.TrimSpace(cfg.Provider)

	return &Caller{
		provider:   provider,
		httpClient: httpClient,
		timeout:    timeout,
		logger:     logger,
		breaker: resilience.NewCircuitBreaker(provider, cfg.CircuitBreaker, func(name string, from, to resilience.CircuitState) {
			logger.Warn("provider circuit state changed", "provider", name, "from", string(from), "to", string(to))
		}),
		secret: cfg.Secret,
	}
}

// Do performs a single request and returns the body of a 2xx response.
// Every failure, including a deadline, is marked source.ErrTransport.
func (c *Caller) Do(ctx context.Context, in Request) ([]byte, error) {
	var raw []byte
	err := c.breaker.Execute(func() error {
		var execErr error
		raw, execErr = c.execute(ctx, in)
		return execErr
	}, isCircuitFailure)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.DebugContext(ctx, "provider circuit breaker rejected request", "provider", c.provider, "state", c.breaker.State())
		return nil, fmt.Errorf("%w: %w", source.ErrTransport, err)
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Caller) execute(ctx context.Context, in Request) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	method := in.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if in.Body != nil {
		body = bytes.NewReader(in.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, in.URL, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", c.provider, err)
	}
	for key, values := range in.Header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if req.Header.Get("Accept") == "" {
		req.Header.Set("Accept", "application/json")
	}
	if in.Body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Wrapf(source.ErrTransport, "%s send request: %s", c.provider, c.redact(err.Error()))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, crerr.Wrapf(source.ErrTransport, "%s read response body: %s", c.provider, c.redact(err.Error()))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Provider: c.provider, StatusCode: resp.StatusCode, Body: c.redact(abbreviate(raw))}
		return nil, fmt.Errorf("%w: %w", source.ErrTransport, statusErr)
	}

	return raw, nil
}

func (c *Caller) redact(value string) string {
	if c.secret == "" {
		return value
	}
	return strings.ReplaceAll(value, c.secret, "REDACTED")
}

// StatusError reports a non-2xx provider response.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s provider status=%d body=%s", e.Provider, e.StatusCode, e.Body)
}

func isCircuitFailure(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}
	return errors.Is(err, source.ErrTransport)
}

func abbreviate(raw []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "..."
}

package gemini

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
	"github.com/riskibarqy/scorecast/internal/domain/prediction"
	"github.com/riskibarqy/scorecast/internal/domain/source"
	"github.com/riskibarqy/scorecast/internal/platform/logging"
	"github.com/riskibarqy/scorecast/internal/platform/resilience"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"
	apiKeyHeader   = "x-goog-api-key"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Model          string
	Temperature    float64
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client asks a Gemini model for a structured match prediction.
type Client struct {
	caller      *transport.Caller
	baseURL     string
	apiKey      string
	model       string
	temperature float64
}

func NewClient(cfg ClientConfig) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.4
	}
	apiKey := strings.TrimSpace(cfg.APIKey)

	return &Client{
		caller: transport.New(transport.Config{
			Provider:       "gemini",
			HTTPClient:     cfg.HTTPClient,
			Timeout:        cfg.Timeout,
			CircuitBreaker: cfg.CircuitBreaker,
			Logger:         cfg.Logger,
			Secret:         apiKey,
		}),
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: temperature,
	}
}

// GeneratePrediction makes a single attempt. The model text is parsed and
// validated here; the provider's schema constraint is not trusted.
func (c *Client) GeneratePrediction(ctx context.Context, input prediction.Input) (*prediction.Output, error) {
	if c.apiKey == "" {
		return nil, crerr.Wrap(source.ErrMissingCredential, "GEMINI_API_KEY")
	}
	if strings.TrimSpace(input.HomeTeam) == "" || strings.TrimSpace(input.AwayTeam) == "" {
		return nil, fmt.Errorf("both team names are required")
	}

	body, err := sonic.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: BuildPrompt(input)}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   responseSchema,
			Temperature:      c.temperature,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode generate request: %w", err)
	}

	raw, err := c.caller.Do(ctx, transport.Request{
		Method: http.MethodPost,
		URL:    c.baseURL + "/models/" + url.PathEscape(c.model) + ":generateContent",
		Header: http.Header{apiKeyHeader: []string{c.apiKey}},
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("generate prediction %s vs %s: %w", input.HomeTeam, input.AwayTeam, err)
	}

	text, err := candidateText(raw)
	if err != nil {
		return nil, err
	}
	out, err := ParseOutput(text)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func candidateText(raw []byte) (string, error) {
	var resp generateResponse
	if err := sonic.Unmarshal(raw, &resp); err != nil {
		return "", crerr.Wrapf(source.ErrInvalidShape, "decode generate response: %v", err)
	}
	if err := validate.Struct(resp); err != nil {
		return "", crerr.Wrapf(source.ErrModelOutput, "no candidates: %v", err)
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", crerr.Wrapf(source.ErrModelOutput, "empty candidate finish_reason=%s", resp.Candidates[0].FinishReason)
	}
	return text, nil
}

// ParseOutput decodes and validates model text as a prediction.
func ParseOutput(text string) (prediction.Output, error) {
	var payload predictionPayload
	if err := sonic.UnmarshalString(stripCodeFence(text), &payload); err != nil {
		return prediction.Output{}, crerr.Wrapf(source.ErrModelOutput, "decode model json: %v", err)
	}
	if err := validate.Struct(payload); err != nil {
		return prediction.Output{}, crerr.Wrapf(source.ErrModelOutput, "validate model json: %v", err)
	}
	if strings.TrimSpace(*payload.Winner) == "" {
		return prediction.Output{}, crerr.Wrap(source.ErrModelOutput, "winner is blank")
	}
	return payload.toDomain(), nil
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

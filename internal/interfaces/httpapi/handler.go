package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/scorecast/internal/domain/user"
	"github.com/riskibarqy/scorecast/internal/platform/logging"
	"github.com/riskibarqy/scorecast/internal/usecase"
)

const (
	maxRequestBodyBytes = 1 << 20
	dateLayout          = "2006-01-02"
)

type Handler struct {
	aggregation *usecase.AggregationService
	favorites   *usecase.FavoriteService
	predictions *usecase.PredictionService
	history     *usecase.HistoryService
	timeline    *usecase.TimelineService
	logger      *logging.Logger
	validator   *validator.Validate
}

func NewHandler(
	aggregation *usecase.AggregationService,
	favorites *usecase.FavoriteService,
	predictions *usecase.PredictionService,
	history *usecase.HistoryService,
	timeline *usecase.TimelineService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		aggregation: aggregation,
		favorites:   favorites,
		predictions: predictions,
		history:     history,
		timeline:    timeline,
		logger:      logger,
		validator:   validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if err == io.EOF {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(r.Context(), dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

// parseDateQuery accepts YYYY-MM-DD. An empty value means "today" and is
// returned as the zero time.
func parseDateQuery(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD", usecase.ErrInvalidInput)
	}
	return parsed, nil
}

func parseOptionalTime(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: match_date must be RFC3339", usecase.ErrInvalidInput)
	}
	return &parsed, nil
}

package httpapi

import (
	"net/http"

	"github.com/riskibarqy/scorecast/internal/platform/logging"
)

type RouterOptions struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
}

// NewRouter wires every route. Middleware runs outermost first: tracing,
// request logging, CORS, panic recovery.
func NewRouter(handler *Handler, verifier TokenVerifier, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if opts.SwaggerEnabled {
		mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
		mux.HandleFunc("GET /docs", handler.SwaggerUI)
	}

	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/news", handler.GetMatchNews)
	mux.HandleFunc("GET /v1/news", handler.SearchNews)
	mux.HandleFunc("POST /v1/matches/{matchID}/deep-dive", handler.GetDeepDive)
	mux.HandleFunc("POST /v1/predictions/generate", handler.GeneratePrediction)

	me := func(pattern string, fn http.HandlerFunc) {
		mux.Handle(pattern, RequireAuth(verifier, fn))
	}
	me("GET /v1/me/favorites", handler.ListFavorites)
	me("POST /v1/me/favorites", handler.AddFavorite)
	me("GET /v1/me/favorites/matches", handler.ListFavoriteMatches)
	me("DELETE /v1/me/favorites/{matchID}", handler.RemoveFavorite)
	me("GET /v1/me/predictions", handler.ListSavedPredictions)
	me("POST /v1/me/predictions", handler.SavePrediction)
	me("DELETE /v1/me/predictions/{predictionID}", handler.DeleteSavedPrediction)
	me("GET /v1/me/history", handler.ListHistory)
	me("POST /v1/me/history", handler.TrackMatchView)
	me("DELETE /v1/me/history/{entryID}", handler.DeleteHistoryEntry)
	me("GET /v1/me/timeline", handler.GetTimeline)

	var root http.Handler = mux
	root = recoverPanic(logger, root)
	root = CORS(opts.CORSAllowedOrigins, root)
	root = RequestLogging(logger, root)
	return RequestTracing(root)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "method", r.Method, "path", r.URL.Path)
				writeInternalError(r.Context(), w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

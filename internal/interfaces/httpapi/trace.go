package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var (
	apiTracer = otel.Tracer("scorecast/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "scorecast-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

func shouldTraceRequest(path string) bool {
	switch strings.ToLower(strings.TrimSpace(path)) {
	case "/healthz", "/health", "/livez", "/readyz":
		return false
	default:
		return true
	}
}

// startHandlerSpan opens "httpapi.Handler.<name>" under the request span and
// tags it with the matched route. Untraced requests get a no-op span.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	ctx := r.Context()
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, "httpapi.Handler."+name,
		trace.WithAttributes(attribute.String("http.route", routeOf(r))),
	)
}

// routeOf drops the method from the ServeMux pattern.
func routeOf(r *http.Request) string {
	pattern := r.Pattern
	if _, path, ok := strings.Cut(pattern, " "); ok {
		return path
	}
	return pattern
}

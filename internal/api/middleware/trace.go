package middleware

import (
	"log/slog"
	"net/http"

	"github.com/contactdesk/contacts-api/internal/api/shared"
	"github.com/contactdesk/contacts-api/internal/platform/logger"
)

// TraceMiddleware assigns every request a trace ID and stashes a
// request-scoped logger carrying it in the context. Downstream code picks the
// logger up with logger.FromContextOrDefault, so every log line of one
// request shares the same trace_id.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())

			reqLogger := base.With(
				slog.String("trace_id", shared.GetTraceID(ctx)),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			ctx = logger.WithLogger(ctx, reqLogger)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

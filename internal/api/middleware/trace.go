package middleware

import (
	"log/slog"
	"net/http"

	"github.com/calebhs/storefront-api/internal/api/shared"
)

// Trace adds a trace ID to the request context. Apply it first so every
// downstream handler and error response can correlate on it.
func Trace(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())

		slog.Debug("request started",
			"trace_id", shared.GetTraceID(ctx),
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

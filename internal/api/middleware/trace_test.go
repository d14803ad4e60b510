package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetherhq/tether-api/internal/api/middleware"
	"github.com/tetherhq/tether-api/internal/api/shared"
	"github.com/tetherhq/tether-api/internal/platform/logger"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	t.Run("request context carries a trace ID", func(t *testing.T) {
		t.Parallel()

		var traceID string
		handler := middleware.TraceMiddleware(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				traceID = shared.GetTraceID(r.Context())
			}),
		)

		handler.ServeHTTP(
			httptest.NewRecorder(),
			httptest.NewRequest(http.MethodGet, "/sessions", nil),
		)

		assert.Len(t, traceID, shared.TraceIDLength*2)
	})

	t.Run("request context carries a trace-scoped logger", func(t *testing.T) {
		t.Parallel()

		handler := middleware.TraceMiddleware(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				// Downstream code retrieves the request's logger rather than
				// falling back to its component logger.
				log := logger.FromContext(r.Context())
				require.NotNil(t, log)

				def := logger.FromContextOrDefault(r.Context(), nil)
				assert.Same(t, log, def)
			}),
		)

		handler.ServeHTTP(
			httptest.NewRecorder(),
			httptest.NewRequest(http.MethodGet, "/sessions", nil),
		)
	})

	t.Run("trace IDs differ between requests", func(t *testing.T) {
		t.Parallel()

		var seen []string
		handler := middleware.TraceMiddleware(
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = append(seen, shared.GetTraceID(r.Context()))
			}),
		)

		for i := 0; i < 2; i++ {
			handler.ServeHTTP(
				httptest.NewRecorder(),
				httptest.NewRequest(http.MethodGet, "/sessions", nil),
			)
		}

		require.Len(t, seen, 2)
		assert.NotEqual(t, seen[0], seen[1])
	})
}

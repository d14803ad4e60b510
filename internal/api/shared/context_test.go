package shared_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tetherhq/tether-api/internal/api/shared"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		ctx := shared.SetTraceID(context.Background())
		traceID := shared.GetTraceID(ctx)

		assert.Len(t, traceID, shared.TraceIDLength*2, "32 hex characters")
	})

	t.Run("missing trace ID yields empty string", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, shared.GetTraceID(context.Background()))
	})

	t.Run("trace IDs are unique per request", func(t *testing.T) {
		t.Parallel()

		first := shared.GetTraceID(shared.SetTraceID(context.Background()))
		second := shared.GetTraceID(shared.SetTraceID(context.Background()))
		assert.NotEqual(t, first, second)
	})
}

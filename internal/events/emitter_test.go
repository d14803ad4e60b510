package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetherhq/tether-api/internal/events"
)

type stubHandler struct {
	calls int
	err   error
}

func (h *stubHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	h.calls++
	return h.err
}

func TestNewEvent(t *testing.T) {
	t.Parallel()

	payload := map[string]string{"artifact_id": "abc"}
	event, err := events.NewEvent(events.TypeArtifactSaved, payload)
	require.NoError(t, err)

	assert.Equal(t, events.TypeArtifactSaved, event.Type)
	assert.False(t, event.CreatedAt.IsZero())

	var decoded map[string]string
	require.NoError(t, event.UnmarshalPayload(&decoded))
	assert.Equal(t, payload, decoded)
}

func TestInMemoryEventEmitter(t *testing.T) {
	t.Parallel()

	t.Run("dispatches to all handlers", func(t *testing.T) {
		t.Parallel()

		emitter := events.NewInMemoryEventEmitter(nil)
		first := &stubHandler{}
		second := &stubHandler{}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)

		event, err := events.NewEvent(events.TypeArtifactSaved, nil)
		require.NoError(t, err)

		require.NoError(t, emitter.EmitEvent(context.Background(), event))
		assert.Equal(t, 1, first.calls)
		assert.Equal(t, 1, second.calls)
	})

	t.Run("no handlers is not an error", func(t *testing.T) {
		t.Parallel()

		emitter := events.NewInMemoryEventEmitter(nil)
		event, err := events.NewEvent(events.TypeArtifactSaved, nil)
		require.NoError(t, err)

		assert.NoError(t, emitter.EmitEvent(context.Background(), event))
	})

	t.Run("a failing handler does not stop the others", func(t *testing.T) {
		t.Parallel()

		emitter := events.NewInMemoryEventEmitter(nil)
		failure := errors.New("handler exploded")
		failing := &stubHandler{err: failure}
		healthy := &stubHandler{}
		emitter.RegisterHandler(failing)
		emitter.RegisterHandler(healthy)

		event, err := events.NewEvent(events.TypeArtifactSaved, nil)
		require.NoError(t, err)

		err = emitter.EmitEvent(context.Background(), event)
		assert.ErrorIs(t, err, failure)
		assert.Equal(t, 1, healthy.calls, "healthy handler still ran")
	})
}

package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetherhq/tether-api/internal/api"
)

func TestListPrompts(t *testing.T) {
	t.Parallel()

	t.Run("full library", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		var resp api.PromptListResponse
		w := doJSON(t, ts, http.MethodGet, "/prompts", "", &resp)
		require.Equal(t, http.StatusOK, w.Code)

		// 5 seeded categories, 2 prompts each.
		assert.Len(t, resp.Prompts, 10)
	})

	t.Run("filtered by category", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		var resp api.PromptListResponse
		w := doJSON(t, ts, http.MethodGet, "/prompts?category=deep_dive", "", &resp)
		require.Equal(t, http.StatusOK, w.Code)

		require.Len(t, resp.Prompts, 2)
		for _, prompt := range resp.Prompts {
			assert.Equal(t, "deep_dive", prompt.Category)
		}
	})

	t.Run("empty category yields empty list", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		var resp api.PromptListResponse
		w := doJSON(t, ts, http.MethodGet, "/prompts?category=crisis", "", &resp)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, resp.Prompts)
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		w := doJSON(t, ts, http.MethodGet, "/prompts?category=small_talk", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreatePrompt(t *testing.T) {
	t.Parallel()

	t.Run("custom prompt becomes part of the library", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		body := `{"text":"What made you feel close to me today?","category":"daily"}`

		var created api.PromptResponse
		w := doJSON(t, ts, http.MethodPost, "/prompts", body, &created)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, created.IsCustom)
		assert.Equal(t, "daily", created.Category)

		var listed api.PromptListResponse
		w = doJSON(t, ts, http.MethodGet, "/prompts?category=daily", "", &listed)
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, listed.Prompts, 1)
		assert.Equal(t, created.ID, listed.Prompts[0].ID)
	})

	t.Run("with activity type", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		body := `{"text":"Hold hands for ten breaths.","category":"journey_preparation","activity_type":"action"}`

		var created api.PromptResponse
		w := doJSON(t, ts, http.MethodPost, "/prompts", body, &created)
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "action", created.ActivityType)
	})

	t.Run("missing text", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		w := doJSON(t, ts, http.MethodPost, "/prompts", `{"category":"daily"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown category", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		w := doJSON(t, ts, http.MethodPost, "/prompts", `{"text":"x","category":"small_talk"}`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown activity type", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		body := `{"text":"x","category":"daily","activity_type":"dancing"}`
		w := doJSON(t, ts, http.MethodPost, "/prompts", body, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		w := doJSON(t, ts, http.MethodPost, "/prompts", `{"text":`, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

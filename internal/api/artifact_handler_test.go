package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetherhq/tether-api/internal/api"
	"github.com/tetherhq/tether-api/internal/domain"
)

func submitArtifact(t *testing.T, ts *testServer, draft domain.ArtifactDraft) *domain.Artifact {
	t.Helper()

	artifact, err := ts.artifacts.Submit(context.Background(), &draft)
	require.NoError(t, err)
	return artifact
}

func TestListArtifacts(t *testing.T) {
	t.Parallel()

	t.Run("newest first", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		first := submitArtifact(t, ts, domain.ArtifactDraft{
			Type: domain.ArtifactPeak, Content: "first", MediaType: domain.MediaText,
		})
		second := submitArtifact(t, ts, domain.ArtifactDraft{
			Type: domain.ArtifactDaily, Content: "second", MediaType: domain.MediaText,
		})

		var resp api.ArtifactListResponse
		w := doJSON(t, ts, http.MethodGet, "/artifacts", "", &resp)
		require.Equal(t, http.StatusOK, w.Code)

		require.Len(t, resp.Artifacts, 2)
		assert.Equal(t, second.ID.String(), resp.Artifacts[0].ID)
		assert.Equal(t, first.ID.String(), resp.Artifacts[1].ID)
	})

	t.Run("empty history", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		var resp api.ArtifactListResponse
		w := doJSON(t, ts, http.MethodGet, "/artifacts", "", &resp)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, resp.Artifacts)
	})

	t.Run("limit caps the page", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		for i := 0; i < 3; i++ {
			submitArtifact(t, ts, domain.ArtifactDraft{
				Type: domain.ArtifactPeak, Content: "entry", MediaType: domain.MediaText,
			})
		}

		var resp api.ArtifactListResponse
		w := doJSON(t, ts, http.MethodGet, "/artifacts?limit=2", "", &resp)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, resp.Artifacts, 2)
	})

	t.Run("invalid limit", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		w := doJSON(t, ts, http.MethodGet, "/artifacts?limit=-1", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetArtifact(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	artifact := submitArtifact(t, ts, domain.ArtifactDraft{
		Type:      domain.ArtifactPeak,
		Content:   "kept",
		MediaType: domain.MediaText,
		Template:  domain.TemplateDate,
	})

	var resp api.ArtifactResponse
	w := doJSON(t, ts, http.MethodGet, "/artifacts/"+artifact.ID.String(), "", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "kept", resp.Content)
	assert.Equal(t, "date", resp.Template)

	w = doJSON(t, ts, http.MethodGet, "/artifacts/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetArtifactMedia(t *testing.T) {
	t.Parallel()

	t.Run("serves stored bytes with content type", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		artifact := submitArtifact(t, ts, domain.ArtifactDraft{
			Type:      domain.ArtifactPeak,
			Content:   domain.PlaceholderContent,
			MediaType: domain.MediaVideo,
			Media:     []byte("webm-bytes"),
		})

		w := doJSON(t, ts, http.MethodGet, "/artifacts/"+artifact.ID.String()+"/media", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "video/webm", w.Header().Get("Content-Type"))
		assert.Equal(t, []byte("webm-bytes"), w.Body.Bytes())
	})

	t.Run("text artifact has no media", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		artifact := submitArtifact(t, ts, domain.ArtifactDraft{
			Type: domain.ArtifactPeak, Content: "text only", MediaType: domain.MediaText,
		})

		w := doJSON(t, ts, http.MethodGet, "/artifacts/"+artifact.ID.String()+"/media", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown artifact", func(t *testing.T) {
		t.Parallel()

		ts := newTestServer(t)
		w := doJSON(t, ts, http.MethodGet, "/artifacts/"+uuid.NewString()+"/media", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

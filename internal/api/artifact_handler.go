package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tetherhq/tether-api/internal/api/shared"
	"github.com/tetherhq/tether-api/internal/domain"
	"github.com/tetherhq/tether-api/internal/platform/logger"
	"github.com/tetherhq/tether-api/internal/store"
)

// mediaContentTypes maps stored media types to their HTTP content type.
var mediaContentTypes = map[domain.MediaType]string{
	domain.MediaAudio: "audio/webm",
	domain.MediaVideo: "video/webm",
}

// ArtifactHandler handles artifact history HTTP requests.
type ArtifactHandler struct {
	artifacts store.ArtifactStore
	logger    *slog.Logger
}

// NewArtifactHandler creates a new ArtifactHandler.
func NewArtifactHandler(artifacts store.ArtifactStore, logger *slog.Logger) *ArtifactHandler {
	if artifacts == nil {
		panic("artifacts cannot be nil for ArtifactHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for ArtifactHandler")
	}

	return &ArtifactHandler{
		artifacts: artifacts,
		logger:    logger.With(slog.String("component", "artifact_handler")),
	}
}

// ArtifactListResponse represents the artifact history listing.
type ArtifactListResponse struct {
	Artifacts []ArtifactResponse `json:"artifacts"`
}

// List handles GET /artifacts requests. Artifacts come back in persistence
// order, newest first. An optional limit query parameter caps the page size.
func (h *ArtifactHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	artifacts, err := h.artifacts.List(r.Context(), limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to list artifacts", err)
		return
	}

	resp := ArtifactListResponse{Artifacts: make([]ArtifactResponse, 0, len(artifacts))}
	for _, artifact := range artifacts {
		resp.Artifacts = append(resp.Artifacts, artifactToResponse(artifact))
	}

	log.Debug("listed artifacts", slog.Int("count", len(artifacts)))
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// Get handles GET /artifacts/{id} requests.
func (h *ArtifactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.artifactID(w, r)
	if !ok {
		return
	}

	artifact, err := h.artifacts.GetByID(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, artifactToResponse(artifact))
}

// GetMedia handles GET /artifacts/{id}/media requests, streaming the stored
// media bytes with their content type.
func (h *ArtifactHandler) GetMedia(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.artifactID(w, r)
	if !ok {
		return
	}

	media, mediaType, err := h.artifacts.GetMedia(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	contentType, ok := mediaContentTypes[mediaType]
	if !ok {
		contentType = "application/octet-stream"
	}

	log.Debug("serving artifact media",
		slog.String("artifact_id", id.String()),
		slog.String("media_type", string(mediaType)),
		slog.Int("bytes", len(media)))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(media)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(media); err != nil {
		log.Error("failed to write media response", slog.String("error", err.Error()))
	}
}

// artifactID extracts and parses the artifact ID from the URL path.
func (h *ArtifactHandler) artifactID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Artifact ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid artifact ID format")
		return uuid.Nil, false
	}

	return id, true
}

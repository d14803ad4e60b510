package api

import (
	"log/slog"
	"net/http"

	"github.com/tetherhq/tether-api/internal/api/shared"
	"github.com/tetherhq/tether-api/internal/domain"
	"github.com/tetherhq/tether-api/internal/platform/logger"
	"github.com/tetherhq/tether-api/internal/redact"
	"github.com/tetherhq/tether-api/internal/store"
)

// PromptHandler handles prompt library HTTP requests.
type PromptHandler struct {
	prompts store.PromptStore
	logger  *slog.Logger
}

// NewPromptHandler creates a new PromptHandler.
func NewPromptHandler(prompts store.PromptStore, logger *slog.Logger) *PromptHandler {
	if prompts == nil {
		panic("prompts cannot be nil for PromptHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for PromptHandler")
	}

	return &PromptHandler{
		prompts: prompts,
		logger:  logger.With(slog.String("component", "prompt_handler")),
	}
}

// PromptListResponse represents a prompt library listing.
type PromptListResponse struct {
	Prompts []PromptResponse `json:"prompts"`
}

// List handles GET /prompts requests. An optional category query parameter
// narrows the listing to one category.
func (h *PromptHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	category := domain.PromptCategory(r.URL.Query().Get("category"))
	if category != "" && !category.IsValid() {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Unknown prompt category")
		return
	}

	set, err := h.prompts.GetPromptSet(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), "Failed to load prompts", err)
		return
	}

	resp := PromptListResponse{Prompts: []PromptResponse{}}
	if category != "" {
		for _, prompt := range set.Category(category) {
			resp.Prompts = append(resp.Prompts, promptToResponse(prompt))
		}
	} else {
		for _, prompts := range set {
			for _, prompt := range prompts {
				resp.Prompts = append(resp.Prompts, promptToResponse(prompt))
			}
		}
	}

	log.Debug("listed prompts",
		slog.String("category", string(category)),
		slog.Int("count", len(resp.Prompts)))
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// CreatePromptRequest represents the request body for adding a custom prompt.
type CreatePromptRequest struct {
	Text         string `json:"text"          validate:"required,max=500"`
	Category     string `json:"category"      validate:"required"`
	ActivityType string `json:"activity_type" validate:"omitempty,oneof=speaking action sensory"`
}

// Create handles POST /prompts requests, adding a custom prompt to the
// library. New prompts become visible to sessions started after this call;
// running sessions keep their snapshot.
func (h *PromptHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreatePromptRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	prompt, err := domain.NewPrompt(
		req.Text,
		domain.PromptCategory(req.Category),
		domain.ActivityType(req.ActivityType),
	)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid prompt data", err)
		return
	}

	if err := h.prompts.Create(r.Context(), prompt); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("custom prompt created",
		slog.String("prompt_id", prompt.ID.String()),
		slog.String("category", string(prompt.Category)))
	shared.RespondWithJSON(w, r, http.StatusCreated, promptToResponse(*prompt))
}

package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/tetherhq/tether-api/internal/api/shared"
	"github.com/tetherhq/tether-api/internal/domain"
	"github.com/tetherhq/tether-api/internal/platform/logger"
	"github.com/tetherhq/tether-api/internal/redact"
	"github.com/tetherhq/tether-api/internal/service/session"
)

// maxChunkBytes caps a single uploaded recording chunk.
const maxChunkBytes = 10 << 20 // 10 MiB

// SessionHandler handles session lifecycle HTTP requests. All per-session
// operations run through the registry, which serializes them on the
// session's own lock.
type SessionHandler struct {
	controller *session.Controller
	registry   *session.Registry
	logger     *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(
	controller *session.Controller,
	registry *session.Registry,
	logger *slog.Logger,
) *SessionHandler {
	if controller == nil {
		panic("controller cannot be nil for SessionHandler")
	}
	if registry == nil {
		panic("registry cannot be nil for SessionHandler")
	}
	if logger == nil {
		panic("logger cannot be nil for SessionHandler")
	}

	return &SessionHandler{
		controller: controller,
		registry:   registry,
		logger:     logger.With(slog.String("component", "session_handler")),
	}
}

// CreateSessionRequest represents the request body for starting a session.
type CreateSessionRequest struct {
	Template string `json:"template" validate:"required,oneof=date deep_dive journey"`
}

// Create handles POST /sessions requests. It starts a new session for the
// requested template and registers it for subsequent operations.
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	s, err := h.controller.Begin(r.Context(), domain.Template(req.Template))
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	// Snapshot the response before registering: once the session is in the
	// registry, all access to it must go through the registry's lock.
	resp := h.toResponse(s)
	h.registry.Add(s)

	log.Debug("session created",
		slog.String("session_id", resp.ID),
		slog.String("template", req.Template))
	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// Get handles GET /sessions/{id} requests.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *session.Session) (any, int, error) {
		return h.toResponse(s), http.StatusOK, nil
	})
}

// Exit handles DELETE /sessions/{id} requests. It ends the session,
// releasing any open capture resources, and unregisters it. Exiting twice
// is not an error; the second call reports the session as gone.
func (h *SessionHandler) Exit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	err := h.registry.Do(id, func(s *session.Session) error {
		h.controller.Exit(s)
		return nil
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	h.registry.Remove(id)

	log.Debug("session exited", slog.String("session_id", id.String()))
	w.WriteHeader(http.StatusNoContent)
}

// CompletePreparation handles POST /sessions/{id}/preparation/complete
// requests, leaving the journey briefing for the phase loop.
func (h *SessionHandler) CompletePreparation(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *session.Session) (any, int, error) {
		if err := h.controller.CompletePreparation(s); err != nil {
			return nil, 0, err
		}
		return h.toResponse(s), http.StatusOK, nil
	})
}

// Shuffle handles POST /sessions/{id}/shuffle requests, redrawing the
// displayed prompt.
func (h *SessionHandler) Shuffle(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *session.Session) (any, int, error) {
		if err := h.controller.Shuffle(s); err != nil {
			return nil, 0, err
		}
		return h.toResponse(s), http.StatusOK, nil
	})
}

// ChooseText handles POST /sessions/{id}/response/text requests, selecting
// the text modality for the displayed prompt.
func (h *SessionHandler) ChooseText(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *session.Session) (any, int, error) {
		if err := h.controller.ChooseText(s); err != nil {
			return nil, 0, err
		}
		return h.toResponse(s), http.StatusOK, nil
	})
}

// StartRecording handles POST /sessions/{id}/recording/start requests.
// Capture acquisition failure is not an HTTP error: the session moves to
// the fallback state and the response shows it.
func (h *SessionHandler) StartRecording(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *session.Session) (any, int, error) {
		if err := h.controller.StartRecording(r.Context(), s); err != nil {
			return nil, 0, err
		}
		return h.toResponse(s), http.StatusOK, nil
	})
}

// AppendChunk handles POST /sessions/{id}/recording/chunks requests. The
// raw request body is one recorded media chunk.
func (h *SessionHandler) AppendChunk(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	chunk, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxChunkBytes))
	if err != nil {
		log.Warn("failed to read chunk body", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Failed to read chunk")
		return
	}

	h.withSession(w, r, func(s *session.Session) (any, int, error) {
		if err := h.controller.AppendChunk(s, chunk); err != nil {
			return nil, 0, err
		}
		return h.toResponse(s), http.StatusOK, nil
	})
}

// StopRecording handles POST /sessions/{id}/recording/stop requests,
// finalizing the recording and releasing the capture hardware.
func (h *SessionHandler) StopRecording(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *session.Session) (any, int, error) {
		if err := h.controller.StopRecording(s); err != nil {
			return nil, 0, err
		}
		return h.toResponse(s), http.StatusOK, nil
	})
}

// SaveRequest represents the request body for saving a response.
type SaveRequest struct {
	Note string `json:"note"`
}

// Save handles POST /sessions/{id}/save requests. The optional note is
// attached before submission. On persistence failure the session keeps its
// response; the client may retry the same call.
func (h *SessionHandler) Save(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req SaveRequest
	if r.ContentLength != 0 {
		if err := shared.DecodeJSON(r, &req); err != nil {
			log.Warn("invalid request format", slog.String("error", redact.Error(err)))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
			return
		}
	}

	h.withSession(w, r, func(s *session.Session) (any, int, error) {
		if req.Note != "" {
			if err := h.controller.SetNote(s, req.Note); err != nil {
				return nil, 0, err
			}
		}

		result, err := h.controller.Save(r.Context(), s)
		if err != nil {
			return nil, 0, err
		}
		return saveToResponse(result, s.Template.MultiPhase()), http.StatusOK, nil
	})
}

// Stay handles POST /sessions/{id}/stay requests, drawing another prompt in
// the same phase.
func (h *SessionHandler) Stay(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, func(s *session.Session) (any, int, error) {
		if err := h.controller.Stay(s); err != nil {
			return nil, 0, err
		}
		return h.toResponse(s), http.StatusOK, nil
	})
}

// Advance handles POST /sessions/{id}/advance requests. When the terminal
// phase completes, the journey ends and the session is unregistered.
func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var finished bool
	var resp SessionResponse
	err := h.registry.Do(id, func(s *session.Session) error {
		var err error
		finished, err = h.controller.Advance(s)
		if err != nil {
			return err
		}
		resp = h.toResponse(s)
		return nil
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if finished {
		h.registry.Remove(id)
		log.Debug("journey finished", slog.String("session_id", id.String()))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// sessionID extracts and parses the session ID from the URL path, writing
// the error response itself on failure.
func (h *SessionHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Session ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid session ID format")
		return uuid.Nil, false
	}

	return id, true
}

// withSession runs op against the addressed session under its lock and
// writes either the operation's response or a mapped error.
func (h *SessionHandler) withSession(
	w http.ResponseWriter,
	r *http.Request,
	op func(s *session.Session) (any, int, error),
) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var body any
	var status int
	err := h.registry.Do(id, func(s *session.Session) error {
		var err error
		body, status, err = op(s)
		return err
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, status, body)
}

// toResponse builds the session's API representation, including the phase
// overview for journey templates.
func (h *SessionHandler) toResponse(s *session.Session) SessionResponse {
	var overview []domain.PhaseProgress
	if s.Template.MultiPhase() {
		overview = h.controller.PhaseOverview(s)
	}
	return sessionToResponse(s, overview)
}

package api

import (
	"time"

	"github.com/tetherhq/tether-api/internal/domain"
	"github.com/tetherhq/tether-api/internal/service/session"
)

// PromptResponse represents a single prompt in API responses.
type PromptResponse struct {
	ID           string    `json:"id"`
	Text         string    `json:"text"`
	Category     string    `json:"category"`
	ActivityType string    `json:"activity_type,omitempty"`
	IsCustom     bool      `json:"is_custom"`
	CreatedAt    time.Time `json:"created_at"`
}

// PhaseProgressResponse represents progress through one journey phase.
type PhaseProgressResponse struct {
	Phase    string `json:"phase"`
	Count    int    `json:"count"`
	Goal     int    `json:"goal"`
	Complete bool   `json:"complete"`
}

// SessionResponse represents the observable state of an active session.
type SessionResponse struct {
	ID               string                  `json:"id"`
	Template         string                  `json:"template"`
	State            string                  `json:"state"`
	Phase            string                  `json:"phase,omitempty"`
	Prompt           *PromptResponse         `json:"prompt,omitempty"`
	CaptureActive    bool                    `json:"capture_active"`
	RecordingSeconds float64                 `json:"recording_seconds"`
	Phases           []PhaseProgressResponse `json:"phases,omitempty"`
	StartedAt        time.Time               `json:"started_at"`
}

// ArtifactResponse represents a persisted artifact.
type ArtifactResponse struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Content    string    `json:"content"`
	PromptText string    `json:"prompt_text,omitempty"`
	MediaType  string    `json:"media_type"`
	MediaURL   string    `json:"media_url,omitempty"`
	Template   string    `json:"template,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SaveResponse represents the outcome of saving a response.
type SaveResponse struct {
	Artifact        ArtifactResponse       `json:"artifact"`
	Progress        *PhaseProgressResponse `json:"progress,omitempty"`
	OfferTransition bool                   `json:"offer_transition"`
	TerminalPhase   bool                   `json:"terminal_phase"`
}

// promptToResponse converts a domain.Prompt to a PromptResponse.
func promptToResponse(prompt domain.Prompt) PromptResponse {
	return PromptResponse{
		ID:           prompt.ID.String(),
		Text:         prompt.Text,
		Category:     string(prompt.Category),
		ActivityType: string(prompt.ActivityType),
		IsCustom:     prompt.IsCustom,
		CreatedAt:    prompt.CreatedAt,
	}
}

// progressToResponse converts a domain.PhaseProgress to a PhaseProgressResponse.
func progressToResponse(progress domain.PhaseProgress) PhaseProgressResponse {
	return PhaseProgressResponse{
		Phase:    string(progress.Phase),
		Count:    progress.Count,
		Goal:     progress.Goal,
		Complete: progress.Complete,
	}
}

// artifactToResponse converts a domain.Artifact to an ArtifactResponse.
func artifactToResponse(artifact *domain.Artifact) ArtifactResponse {
	return ArtifactResponse{
		ID:         artifact.ID.String(),
		Type:       string(artifact.Type),
		Content:    artifact.Content,
		PromptText: artifact.PromptText,
		MediaType:  string(artifact.MediaType),
		MediaURL:   artifact.MediaURL,
		Template:   string(artifact.Template),
		CreatedAt:  artifact.CreatedAt,
	}
}

// sessionToResponse converts an active session to its API representation.
// The phase overview is included for journey templates only.
func sessionToResponse(s *session.Session, overview []domain.PhaseProgress) SessionResponse {
	resp := SessionResponse{
		ID:               s.ID.String(),
		Template:         string(s.Template),
		State:            string(s.State),
		Phase:            string(s.Phase),
		CaptureActive:    s.CaptureActive(),
		RecordingSeconds: s.RecordingElapsed().Seconds(),
		StartedAt:        s.StartedAt,
	}

	if s.Prompt.Text != "" {
		prompt := promptToResponse(s.Prompt)
		resp.Prompt = &prompt
	}

	for _, progress := range overview {
		resp.Phases = append(resp.Phases, progressToResponse(progress))
	}

	return resp
}

// saveToResponse converts a session.SaveResult to a SaveResponse.
func saveToResponse(result *session.SaveResult, multiPhase bool) SaveResponse {
	resp := SaveResponse{
		Artifact:        artifactToResponse(result.Artifact),
		OfferTransition: result.OfferTransition,
		TerminalPhase:   result.TerminalPhase,
	}
	if multiPhase {
		progress := progressToResponse(result.Progress)
		resp.Progress = &progress
	}
	return resp
}

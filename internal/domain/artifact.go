package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ArtifactType classifies the session context a persisted response came from.
type ArtifactType string

const (
	ArtifactPeak         ArtifactType = "peak"
	ArtifactDaily        ArtifactType = "daily"
	ArtifactCrisisRepair ArtifactType = "crisis_repair"
)

// IsValid reports whether the artifact type is known.
func (t ArtifactType) IsValid() bool {
	switch t {
	case ArtifactPeak, ArtifactDaily, ArtifactCrisisRepair:
		return true
	default:
		return false
	}
}

// MediaType identifies the modality of a persisted response.
type MediaType string

const (
	MediaText  MediaType = "text"
	MediaAudio MediaType = "audio"
	MediaVideo MediaType = "video"
)

// IsValid reports whether the media type is known.
func (m MediaType) IsValid() bool {
	switch m {
	case MediaText, MediaAudio, MediaVideo:
		return true
	default:
		return false
	}
}

// PlaceholderContent is stored as the artifact content when the user saved
// without entering any text (media-only responses). Content is never empty.
const PlaceholderContent = "Response captured"

// Artifact-specific validation errors.
var (
	// ErrArtifactIDEmpty is returned when an artifact ID is empty or nil.
	ErrArtifactIDEmpty = errors.New("artifact ID cannot be empty")

	// ErrArtifactMediaEmpty is returned when a draft declares an audio or
	// video media type but carries no media bytes.
	ErrArtifactMediaEmpty = errors.New("artifact media cannot be empty for audio/video responses")

	// ErrArtifactMediaUnexpected is returned when a text draft carries media
	// bytes; the modality and the payload must agree.
	ErrArtifactMediaUnexpected = errors.New("artifact media must be empty for text responses")
)

// Artifact is a persisted user response linked to the prompt that elicited
// it. Artifacts are owned by the store once submitted: the ID, media URL and
// timestamp are all assigned at persistence time, so artifact ordering is
// persistence-order, not capture-order.
type Artifact struct {
	ID         uuid.UUID    `json:"id"`
	Type       ArtifactType `json:"type"`
	Content    string       `json:"content"`
	PromptText string       `json:"prompt_text,omitempty"`
	MediaType  MediaType    `json:"media_type"`
	MediaURL   string       `json:"media_url,omitempty"`
	Template   Template     `json:"template,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// ArtifactDraft is the engine's side of a submission: everything the user
// produced, with media bytes carried separately from metadata. The store
// turns a draft into an Artifact.
type ArtifactDraft struct {
	Type       ArtifactType
	Content    string
	PromptText string
	MediaType  MediaType
	Media      []byte
	Template   Template
}

// Validate checks the draft's invariants before submission. A draft with an
// audio/video media type must carry media bytes, and a text draft must not;
// the controller is responsible for filling PlaceholderContent before this
// point, so empty content is rejected here.
func (d *ArtifactDraft) Validate() error {
	if !d.Type.IsValid() {
		return ErrInvalidArtifactType
	}

	if !d.MediaType.IsValid() {
		return ErrInvalidMediaType
	}

	if d.Content == "" {
		return ErrEmptyContent
	}

	if d.MediaType == MediaText {
		if len(d.Media) > 0 {
			return ErrArtifactMediaUnexpected
		}
		return nil
	}

	if len(d.Media) == 0 {
		return ErrArtifactMediaEmpty
	}

	return nil
}

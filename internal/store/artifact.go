package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/tetherhq/tether-api/internal/domain"
)

// ArtifactStore defines the interface for artifact persistence.
//
// The store owns durable storage of both the metadata row and the media
// payload, and it assigns the artifact's ID, media URL and timestamp. The
// engine never assumes persistence is instantaneous or retriable: a failed
// Submit is surfaced to the user and the in-progress response stays intact
// for a manual retry.
type ArtifactStore interface {
	// Submit persists the draft and returns the stored Artifact with its
	// server-assigned ID, media URL (if any media was attached) and
	// timestamp. The draft must pass domain validation; invalid drafts are
	// rejected with ErrInvalidEntity wrapping the validation error.
	Submit(ctx context.Context, draft *domain.ArtifactDraft) (*domain.Artifact, error)

	// GetByID retrieves an artifact by its unique ID.
	// Returns ErrArtifactNotFound if the artifact does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Artifact, error)

	// List returns up to limit artifacts in persistence order, newest
	// first. Persistence-assigned timestamps are the authoritative ordering
	// for display; capture order is not preserved.
	List(ctx context.Context, limit int) ([]*domain.Artifact, error)

	// GetMedia returns the stored media payload and its media type for the
	// given artifact. Returns ErrArtifactNotFound if the artifact does not
	// exist and ErrMediaNotFound if it is a text-only artifact.
	GetMedia(ctx context.Context, id uuid.UUID) ([]byte, domain.MediaType, error)
}

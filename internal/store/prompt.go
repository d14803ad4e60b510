package store

import (
	"context"

	"github.com/tetherhq/tether-api/internal/domain"
)

// PromptStore defines the interface for reading the prompt library and
// appending custom prompts to it.
//
// The engine itself only reads snapshots; the create path exists for the
// profile collaborator, which is the one writer. The prompt set is
// append-only from the engine's perspective.
type PromptStore interface {
	// GetPromptSet returns a snapshot of the full prompt library keyed by
	// category. The snapshot is safe to hold for the duration of a session;
	// later writes by the collaborator do not mutate it.
	GetPromptSet(ctx context.Context) (domain.PromptSet, error)

	// Create appends a custom prompt to the library.
	// Returns ErrDuplicate if a prompt with the same ID already exists and
	// ErrInvalidEntity wrapping the validation error for invalid prompts.
	Create(ctx context.Context, prompt *domain.Prompt) error
}

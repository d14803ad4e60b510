package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/tetherhq/tether-api/internal/domain"
	"github.com/tetherhq/tether-api/internal/store"
)

// PostgresPromptStore implements the store.PromptStore interface using a
// PostgreSQL database as the storage backend. The built-in prompt library is
// seeded by migration; custom prompts are appended through Create.
type PostgresPromptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPromptStore creates a new PostgreSQL implementation of the
// PromptStore interface. If logger is nil, a default logger will be used.
func NewPostgresPromptStore(db store.DBTX, logger *slog.Logger) *PostgresPromptStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPromptStore{
		db:     db,
		logger: logger.With(slog.String("component", "prompt_store")),
	}
}

// Ensure PostgresPromptStore implements store.PromptStore
var _ store.PromptStore = (*PostgresPromptStore)(nil)

// GetPromptSet implements store.PromptStore.GetPromptSet. The returned map
// is freshly built per call, so callers hold a true snapshot.
func (s *PostgresPromptStore) GetPromptSet(ctx context.Context) (domain.PromptSet, error) {
	query := `
		SELECT id, text, category, activity_type, is_custom, created_at
		FROM prompts
		ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, store.NewStoreError("prompt", "snapshot", "failed to query prompts", err)
	}
	defer func() { _ = rows.Close() }()

	set := make(domain.PromptSet)
	for rows.Next() {
		var prompt domain.Prompt
		var activityType sql.NullString

		err := rows.Scan(
			&prompt.ID,
			&prompt.Text,
			&prompt.Category,
			&activityType,
			&prompt.IsCustom,
			&prompt.CreatedAt,
		)
		if err != nil {
			return nil, store.NewStoreError("prompt", "snapshot", "failed to scan prompt", err)
		}

		prompt.ActivityType = domain.ActivityType(activityType.String)
		set[prompt.Category] = append(set[prompt.Category], prompt)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("prompt", "snapshot", "failed to iterate prompts", err)
	}

	return set, nil
}

// Create implements store.PromptStore.Create.
// Returns store.ErrDuplicate if a prompt with the same ID already exists.
func (s *PostgresPromptStore) Create(ctx context.Context, prompt *domain.Prompt) error {
	if prompt == nil {
		return store.NewStoreError("prompt", "create", "nil prompt", store.ErrInvalidEntity)
	}
	if err := prompt.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO prompts (id, text, category, activity_type, is_custom, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := s.db.ExecContext(ctx, query,
		prompt.ID,
		prompt.Text,
		prompt.Category,
		nullable(string(prompt.ActivityType)),
		prompt.IsCustom,
		prompt.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrDuplicate
		}
		return store.NewStoreError("prompt", "create", "failed to insert prompt", err)
	}

	s.logger.Debug("custom prompt created",
		slog.String("prompt_id", prompt.ID.String()),
		slog.String("category", string(prompt.Category)))
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tetherhq/tether-api/internal/domain"
	"github.com/tetherhq/tether-api/internal/store"
)

// PostgresArtifactStore implements the store.ArtifactStore interface using a
// PostgreSQL database as the storage backend. Media bytes are stored
// alongside the metadata row; the public media URL points back at this
// service's media endpoint.
type PostgresArtifactStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresArtifactStore creates a new PostgreSQL implementation of the
// ArtifactStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresArtifactStore(db store.DBTX, logger *slog.Logger) *PostgresArtifactStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresArtifactStore{
		db:     db,
		logger: logger.With(slog.String("component", "artifact_store")),
	}
}

// Ensure PostgresArtifactStore implements store.ArtifactStore
var _ store.ArtifactStore = (*PostgresArtifactStore)(nil)

// Submit implements store.ArtifactStore.Submit. The artifact ID and media
// URL are assigned here; the timestamp is assigned by the database at
// insert time, so artifact ordering is persistence-order by construction.
func (s *PostgresArtifactStore) Submit(
	ctx context.Context,
	draft *domain.ArtifactDraft,
) (*domain.Artifact, error) {
	if draft == nil {
		return nil, store.NewStoreError("artifact", "submit", "nil draft", store.ErrInvalidEntity)
	}
	if err := draft.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	id := uuid.New()

	var media []byte
	var mediaURL sql.NullString
	if draft.MediaType != domain.MediaText {
		media = draft.Media
		mediaURL = sql.NullString{String: fmt.Sprintf("/artifacts/%s/media", id), Valid: true}
	}

	query := `
		INSERT INTO artifacts (id, type, content, prompt_text, media_type, media_url, template, media)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`

	artifact := &domain.Artifact{
		ID:         id,
		Type:       draft.Type,
		Content:    draft.Content,
		PromptText: draft.PromptText,
		MediaType:  draft.MediaType,
		MediaURL:   mediaURL.String,
		Template:   draft.Template,
	}

	err := s.db.QueryRowContext(ctx, query,
		id,
		draft.Type,
		draft.Content,
		nullable(draft.PromptText),
		draft.MediaType,
		mediaURL,
		nullable(string(draft.Template)),
		media,
	).Scan(&artifact.CreatedAt)
	if err != nil {
		return nil, store.NewStoreError("artifact", "submit", "failed to insert artifact", err)
	}

	s.logger.Debug("artifact persisted",
		slog.String("artifact_id", id.String()),
		slog.String("media_type", string(draft.MediaType)),
		slog.Int("media_bytes", len(media)))
	return artifact, nil
}

// GetByID implements store.ArtifactStore.GetByID.
// Returns store.ErrArtifactNotFound if the artifact does not exist.
func (s *PostgresArtifactStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Artifact, error) {
	query := `
		SELECT id, type, content, prompt_text, media_type, media_url, template, created_at
		FROM artifacts
		WHERE id = $1`

	artifact, err := scanArtifact(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrArtifactNotFound
		}
		return nil, store.NewStoreError("artifact", "get", "failed to get artifact", err)
	}

	return artifact, nil
}

// List implements store.ArtifactStore.List: persistence order, newest first.
func (s *PostgresArtifactStore) List(ctx context.Context, limit int) ([]*domain.Artifact, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, type, content, prompt_text, media_type, media_url, template, created_at
		FROM artifacts
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, store.NewStoreError("artifact", "list", "failed to query artifacts", err)
	}
	defer func() { _ = rows.Close() }()

	var artifacts []*domain.Artifact
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, store.NewStoreError("artifact", "list", "failed to scan artifact", err)
		}
		artifacts = append(artifacts, artifact)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("artifact", "list", "failed to iterate artifacts", err)
	}

	return artifacts, nil
}

// GetMedia implements store.ArtifactStore.GetMedia.
func (s *PostgresArtifactStore) GetMedia(
	ctx context.Context,
	id uuid.UUID,
) ([]byte, domain.MediaType, error) {
	query := `SELECT media, media_type FROM artifacts WHERE id = $1`

	var media []byte
	var mediaType domain.MediaType
	err := s.db.QueryRowContext(ctx, query, id).Scan(&media, &mediaType)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", store.ErrArtifactNotFound
		}
		return nil, "", store.NewStoreError("artifact", "get_media", "failed to get media", err)
	}

	if len(media) == 0 {
		return nil, "", store.ErrMediaNotFound
	}

	return media, mediaType, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanArtifact reads one artifact metadata row.
func scanArtifact(row rowScanner) (*domain.Artifact, error) {
	var artifact domain.Artifact
	var promptText, mediaURL, template sql.NullString

	err := row.Scan(
		&artifact.ID,
		&artifact.Type,
		&artifact.Content,
		&promptText,
		&artifact.MediaType,
		&mediaURL,
		&template,
		&artifact.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	artifact.PromptText = promptText.String
	artifact.MediaURL = mediaURL.String
	artifact.Template = domain.Template(template.String)
	return &artifact, nil
}

// nullable maps an empty string to SQL NULL.
func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

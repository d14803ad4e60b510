package api_test

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tetherhq/tether-api/internal/api"
	"github.com/tetherhq/tether-api/internal/capture"
	"github.com/tetherhq/tether-api/internal/domain"
	"github.com/tetherhq/tether-api/internal/service/session"
	"github.com/tetherhq/tether-api/internal/store"
)

// memoryArtifactStore is a minimal in-memory ArtifactStore for handler tests.
type memoryArtifactStore struct {
	mu        sync.Mutex
	artifacts []*domain.Artifact
	media     map[uuid.UUID][]byte
	failWith  error
}

var _ store.ArtifactStore = (*memoryArtifactStore)(nil)

func newMemoryArtifactStore() *memoryArtifactStore {
	return &memoryArtifactStore{media: make(map[uuid.UUID][]byte)}
}

func (s *memoryArtifactStore) Submit(
	ctx context.Context,
	draft *domain.ArtifactDraft,
) (*domain.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failWith != nil {
		return nil, s.failWith
	}

	artifact := &domain.Artifact{
		ID:         uuid.New(),
		Type:       draft.Type,
		Content:    draft.Content,
		PromptText: draft.PromptText,
		MediaType:  draft.MediaType,
		Template:   draft.Template,
		CreatedAt:  time.Now().UTC(),
	}
	if draft.MediaType != domain.MediaText {
		artifact.MediaURL = "/artifacts/" + artifact.ID.String() + "/media"
		s.media[artifact.ID] = draft.Media
	}

	s.artifacts = append(s.artifacts, artifact)
	return artifact, nil
}

func (s *memoryArtifactStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.artifacts {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, store.ErrArtifactNotFound
}

func (s *memoryArtifactStore) List(ctx context.Context, limit int) ([]*domain.Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Artifact, 0, len(s.artifacts))
	for i := len(s.artifacts) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, s.artifacts[i])
	}
	return out, nil
}

func (s *memoryArtifactStore) GetMedia(
	ctx context.Context,
	id uuid.UUID,
) ([]byte, domain.MediaType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.artifacts {
		if a.ID == id {
			media, ok := s.media[id]
			if !ok {
				return nil, "", store.ErrMediaNotFound
			}
			return media, a.MediaType, nil
		}
	}
	return nil, "", store.ErrArtifactNotFound
}

// memoryPromptStore is a minimal in-memory PromptStore for handler tests.
type memoryPromptStore struct {
	mu  sync.Mutex
	set domain.PromptSet
}

var _ store.PromptStore = (*memoryPromptStore)(nil)

func (s *memoryPromptStore) GetPromptSet(ctx context.Context) (domain.PromptSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(domain.PromptSet, len(s.set))
	for category, prompts := range s.set {
		out[category] = append([]domain.Prompt(nil), prompts...)
	}
	return out, nil
}

func (s *memoryPromptStore) Create(ctx context.Context, prompt *domain.Prompt) error {
	if err := prompt.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.set[prompt.Category] {
		if existing.ID == prompt.ID {
			return store.ErrDuplicate
		}
	}
	if s.set == nil {
		s.set = make(domain.PromptSet)
	}
	s.set[prompt.Category] = append(s.set[prompt.Category], *prompt)
	return nil
}

// testServer bundles the router with the fakes behind it.
type testServer struct {
	router    http.Handler
	device    *capture.LoopbackDevice
	artifacts *memoryArtifactStore
	prompts   *memoryPromptStore
}

func seedPrompts(t *testing.T, categories ...domain.PromptCategory) domain.PromptSet {
	t.Helper()

	set := make(domain.PromptSet)
	for _, category := range categories {
		for _, text := range []string{"first " + string(category), "second " + string(category)} {
			p, err := domain.NewPrompt(text, category, "")
			require.NoError(t, err)
			set[category] = append(set[category], *p)
		}
	}
	return set
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	device := capture.NewLoopbackDevice()
	artifacts := newMemoryArtifactStore()
	prompts := &memoryPromptStore{set: seedPrompts(t,
		domain.CategoryPeak,
		domain.CategoryDeepDive,
		domain.CategoryJourneyPreparation,
		domain.CategoryJourneyPeak,
		domain.CategoryJourneyIntegration,
	)}

	controller := session.NewController(
		session.NewSelectorWithRand(rand.New(rand.NewSource(1))),
		device,
		artifacts,
		prompts,
		nil,
		nil,
		slog.Default(),
	)

	sessionHandler := api.NewSessionHandler(controller, session.NewRegistry(), slog.Default())
	artifactHandler := api.NewArtifactHandler(artifacts, slog.Default())
	promptHandler := api.NewPromptHandler(prompts, slog.Default())

	r := chi.NewRouter()
	r.Post("/sessions", sessionHandler.Create)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", sessionHandler.Get)
		r.Delete("/", sessionHandler.Exit)
		r.Post("/preparation/complete", sessionHandler.CompletePreparation)
		r.Post("/shuffle", sessionHandler.Shuffle)
		r.Post("/response/text", sessionHandler.ChooseText)
		r.Post("/recording/start", sessionHandler.StartRecording)
		r.Post("/recording/chunks", sessionHandler.AppendChunk)
		r.Post("/recording/stop", sessionHandler.StopRecording)
		r.Post("/save", sessionHandler.Save)
		r.Post("/stay", sessionHandler.Stay)
		r.Post("/advance", sessionHandler.Advance)
	})
	r.Get("/artifacts", artifactHandler.List)
	r.Get("/artifacts/{id}", artifactHandler.Get)
	r.Get("/artifacts/{id}/media", artifactHandler.GetMedia)
	r.Get("/prompts", promptHandler.List)
	r.Post("/prompts", promptHandler.Create)

	return &testServer{
		router:    r,
		device:    device,
		artifacts: artifacts,
		prompts:   prompts,
	}
}

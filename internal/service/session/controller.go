package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tetherhq/tether-api/internal/capture"
	"github.com/tetherhq/tether-api/internal/domain"
	"github.com/tetherhq/tether-api/internal/events"
	"github.com/tetherhq/tether-api/internal/platform/logger"
	"github.com/tetherhq/tether-api/internal/store"
)

// State identifies where a session is in the prompt/record/save cycle.
type State string

const (
	// StatePreparation is the journey template's briefing step, entered
	// before the phase loop.
	StatePreparation State = "preparation"

	// StatePromptShown means a prompt is displayed and the user chooses a
	// response modality or reshuffles.
	StatePromptShown State = "prompt_shown"

	// StateRecording means the capture device is open and chunks are being
	// collected.
	StateRecording State = "recording"

	// StateCaptureFallback means hardware acquisition failed; the prompt is
	// still displayed and a text response remains available. Capture errors
	// never block the user.
	StateCaptureFallback State = "capture_fallback"

	// StateReviewing means a response (text and/or media) is accumulated
	// and awaiting an optional note and the user's explicit save.
	StateReviewing State = "reviewing"

	// StateSubmitted means the last response was durably persisted and the
	// user decides whether to continue, transition phases, or leave.
	StateSubmitted State = "submitted"

	// StateExited is terminal. All capture resources are released.
	StateExited State = "exited"
)

// Session is the ephemeral state of one guided session. It is owned by the
// Controller, passed explicitly through every operation, and destroyed on
// exit; nothing in it survives the session except the artifacts it
// submitted.
type Session struct {
	ID        uuid.UUID
	Template  domain.Template
	State     State
	Phase     domain.Phase
	Counts    map[domain.Phase]int
	Prompt    domain.Prompt
	Note      string
	StartedAt time.Time

	// Read-only prompt snapshot for the duration of the session.
	prompts domain.PromptSet

	// Capture lifecycle. Invariant: at most one stream is open, and it is
	// released on stop, on error, and on every exit path.
	stream   capture.Stream
	recorder capture.Recorder

	// Accumulated response buffer, cleared on successful save.
	media     []byte
	mediaType domain.MediaType
}

// CaptureActive reports the hardware-in-use indicator for the session.
func (s *Session) CaptureActive() bool {
	return s.stream != nil && s.stream.Active()
}

// RecordingElapsed reports how long the active recording has been running.
// It reads zero outside the Recording state.
func (s *Session) RecordingElapsed() time.Duration {
	if s.State != StateRecording || s.recorder == nil {
		return 0
	}
	return s.recorder.Elapsed()
}

// SaveResult is returned by a successful Save.
type SaveResult struct {
	// Artifact is the persisted response with its server-assigned ID,
	// media URL and timestamp.
	Artifact *domain.Artifact

	// Progress is the current phase's progress after the save. Zero-valued
	// for single-shot templates, which track no phase progress.
	Progress domain.PhaseProgress

	// OfferTransition is true when the current journey phase just reached
	// its recommended count: the user may advance, but may also stay.
	OfferTransition bool

	// TerminalPhase is true when the complete phase is the journey's last,
	// so advancing ends the journey instead of entering another phase.
	TerminalPhase bool
}

// Controller drives guided sessions. It composes the prompt selector,
// capture device, artifact store and progress thresholds; all collaborators
// are injected so tests can substitute fakes.
type Controller struct {
	selector   *Selector
	device     capture.Device
	artifacts  store.ArtifactStore
	promptSrc  store.PromptStore
	emitter    events.EventEmitter
	thresholds ThresholdTable
	logger     *slog.Logger
	now        func() time.Time
}

// NewController creates a session Controller.
// The emitter may be nil, in which case no events are published.
func NewController(
	selector *Selector,
	device capture.Device,
	artifacts store.ArtifactStore,
	promptSrc store.PromptStore,
	emitter events.EventEmitter,
	thresholds ThresholdTable,
	log *slog.Logger,
) *Controller {
	if selector == nil {
		panic("selector cannot be nil")
	}
	if device == nil {
		panic("device cannot be nil")
	}
	if artifacts == nil {
		panic("artifacts cannot be nil")
	}
	if promptSrc == nil {
		panic("promptSrc cannot be nil")
	}
	if len(thresholds) == 0 {
		thresholds = DefaultThresholds()
	}
	if log == nil {
		log = slog.Default()
	}

	return &Controller{
		selector:   selector,
		device:     device,
		artifacts:  artifacts,
		promptSrc:  promptSrc,
		emitter:    emitter,
		thresholds: thresholds,
		logger:     log.With(slog.String("component", "session_controller")),
		now:        time.Now,
	}
}

// SetClock overrides the controller's time source. Intended for tests.
func (c *Controller) SetClock(now func() time.Time) {
	c.now = now
}

// Begin starts a new session for the chosen template. Journey sessions
// enter the preparation briefing; single-shot templates draw their first
// prompt immediately.
func (c *Controller) Begin(ctx context.Context, template domain.Template) (*Session, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if !template.IsValid() {
		return nil, NewBeginError("unknown template", domain.ErrInvalidTemplate)
	}

	prompts, err := c.promptSrc.GetPromptSet(ctx)
	if err != nil {
		log.Error("failed to load prompt set", slog.String("error", err.Error()))
		return nil, NewBeginError("failed to load prompt set", err)
	}

	s := &Session{
		ID:        uuid.New(),
		Template:  template,
		Counts:    make(map[domain.Phase]int),
		StartedAt: c.now().UTC(),
		prompts:   prompts,
		mediaType: domain.MediaText,
	}

	if template.MultiPhase() {
		s.Phase = domain.PhasePreparation
		s.State = StatePreparation
	} else {
		s.Prompt = c.selector.Draw(s.prompts, template.Category(), uuid.Nil)
		s.State = StatePromptShown
	}

	log.Debug("session started",
		slog.String("session_id", s.ID.String()),
		slog.String("template", string(template)),
		slog.String("state", string(s.State)))
	return s, nil
}

// CompletePreparation leaves the journey briefing and enters the phase
// loop, drawing the first prompt of the current phase.
func (c *Controller) CompletePreparation(s *Session) error {
	if s.State != StatePreparation {
		return fmt.Errorf("%w: complete preparation from %s", ErrInvalidTransition, s.State)
	}

	s.Prompt = c.selector.Draw(s.prompts, c.activeCategory(s), uuid.Nil)
	s.State = StatePromptShown
	return nil
}

// Shuffle redraws the displayed prompt, excluding the current one so the
// rotation is visible.
func (c *Controller) Shuffle(s *Session) error {
	if s.State != StatePromptShown && s.State != StateCaptureFallback {
		return fmt.Errorf("%w: shuffle from %s", ErrInvalidTransition, s.State)
	}

	s.Prompt = c.selector.Draw(s.prompts, c.activeCategory(s), s.Prompt.ID)
	s.State = StatePromptShown
	return nil
}

// ChooseText selects the text modality for the displayed prompt and moves
// to reviewing. Also the fallback path out of a capture failure.
func (c *Controller) ChooseText(s *Session) error {
	if s.State != StatePromptShown && s.State != StateCaptureFallback {
		return fmt.Errorf("%w: choose text from %s", ErrInvalidTransition, s.State)
	}

	s.media = nil
	s.mediaType = domain.MediaText
	s.State = StateReviewing
	return nil
}

// StartRecording opens the capture device and begins recording a video
// response. Hardware acquisition is a suspension point; failure moves the
// session to the capture-fallback state instead of blocking the user, who
// can still answer with text.
func (c *Controller) StartRecording(ctx context.Context, s *Session) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if s.State != StatePromptShown && s.State != StateCaptureFallback {
		return fmt.Errorf("%w: start recording from %s", ErrInvalidTransition, s.State)
	}

	// The state machine makes a second open unreachable: Recording always
	// releases its stream before any state that can open again.
	stream, err := c.device.Open(ctx)
	if err != nil {
		log.Warn("capture acquisition failed, offering text fallback",
			slog.String("session_id", s.ID.String()),
			slog.String("error", err.Error()))
		s.State = StateCaptureFallback
		return nil
	}

	recorder, err := stream.StartRecording()
	if err != nil {
		stream.Release()
		log.Warn("recording start failed, offering text fallback",
			slog.String("session_id", s.ID.String()),
			slog.String("error", err.Error()))
		s.State = StateCaptureFallback
		return nil
	}

	s.stream = stream
	s.recorder = recorder
	s.State = StateRecording
	return nil
}

// AppendChunk adds a recorded media chunk to the in-flight recording.
func (c *Controller) AppendChunk(s *Session, chunk []byte) error {
	if s.State != StateRecording || s.recorder == nil {
		return fmt.Errorf("%w: append chunk from %s", ErrInvalidTransition, s.State)
	}
	return s.recorder.Append(chunk)
}

// StopRecording finalizes the chunk sequence and releases the hardware. A
// recording that produced zero chunks is treated as if the user chose a
// text response: no artifact with empty media is ever submitted.
func (c *Controller) StopRecording(s *Session) error {
	if s.State != StateRecording || s.recorder == nil {
		return fmt.Errorf("%w: stop recording from %s", ErrInvalidTransition, s.State)
	}

	data, err := s.recorder.Stop()
	c.releaseCapture(s)

	switch {
	case errors.Is(err, capture.ErrEmptyCapture):
		s.media = nil
		s.mediaType = domain.MediaText
	case err != nil:
		// Device failure mid-finalize: same treatment as empty capture,
		// the user keeps going with text.
		c.logger.Warn("recording finalize failed, keeping text response",
			slog.String("session_id", s.ID.String()),
			slog.String("error", err.Error()))
		s.media = nil
		s.mediaType = domain.MediaText
	default:
		s.media = data
		s.mediaType = domain.MediaVideo
	}

	s.State = StateReviewing
	return nil
}

// SetNote sets the optional text annotation on the accumulated response.
// Available regardless of modality while reviewing.
func (c *Controller) SetNote(s *Session, note string) error {
	if s.State != StateReviewing {
		return fmt.Errorf("%w: set note from %s", ErrInvalidTransition, s.State)
	}
	s.Note = note
	return nil
}

// Save submits the accumulated response to the artifact store. On success
// the phase counter is incremented and the response buffer cleared; on
// failure the session stays in Reviewing with the response intact for a
// manual retry — nothing is silently dropped and nothing is auto-retried.
func (c *Controller) Save(ctx context.Context, s *Session) (*SaveResult, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	if s.State != StateReviewing {
		return nil, fmt.Errorf("%w: save from %s", ErrInvalidTransition, s.State)
	}

	content := s.Note
	if content == "" {
		content = domain.PlaceholderContent
	}

	draft := &domain.ArtifactDraft{
		Type:       domain.ArtifactPeak,
		Content:    content,
		PromptText: s.Prompt.Text,
		MediaType:  s.mediaType,
		Media:      s.media,
		Template:   s.Template,
	}

	artifact, err := c.artifacts.Submit(ctx, draft)
	if err != nil {
		log.Error("artifact submission failed",
			slog.String("session_id", s.ID.String()),
			slog.String("error", err.Error()))
		return nil, NewSaveError("failed to persist artifact", err)
	}

	result := &SaveResult{Artifact: artifact}
	if s.Template.MultiPhase() {
		s.Counts[s.Phase]++
		result.Progress = Progress(s.Phase, s.Counts[s.Phase], c.thresholds)
		result.OfferTransition = result.Progress.Complete
		_, hasNext := s.Phase.Next()
		result.TerminalPhase = result.Progress.Complete && !hasNext
	}

	s.media = nil
	s.mediaType = domain.MediaText
	s.Note = ""
	s.State = StateSubmitted

	c.emitSaved(ctx, s, artifact)

	log.Debug("artifact saved",
		slog.String("session_id", s.ID.String()),
		slog.String("artifact_id", artifact.ID.String()),
		slog.String("media_type", string(artifact.MediaType)),
		slog.Bool("offer_transition", result.OfferTransition))
	return result, nil
}

// Stay loops back to another prompt in the same phase/category. Staying in
// a complete phase is always allowed.
func (c *Controller) Stay(s *Session) error {
	if s.State != StateSubmitted {
		return fmt.Errorf("%w: stay from %s", ErrInvalidTransition, s.State)
	}

	s.Prompt = c.selector.Draw(s.prompts, c.activeCategory(s), s.Prompt.ID)
	s.State = StatePromptShown
	return nil
}

// Advance moves a journey session to its next phase, or ends the journey
// when the terminal phase is complete. Returns true when the journey
// finished and the session exited.
func (c *Controller) Advance(s *Session) (bool, error) {
	if s.State != StateSubmitted {
		return false, fmt.Errorf("%w: advance from %s", ErrInvalidTransition, s.State)
	}
	if !s.Template.MultiPhase() {
		return false, fmt.Errorf("%w: advance on single-shot template", ErrInvalidTransition)
	}

	if !Progress(s.Phase, s.Counts[s.Phase], c.thresholds).Complete {
		return false, ErrPhaseIncomplete
	}

	next, ok := s.Phase.Next()
	if !ok {
		// Terminal phase complete: the journey ends.
		c.Exit(s)
		return true, nil
	}

	s.Phase = next
	s.Prompt = c.selector.Draw(s.prompts, c.activeCategory(s), uuid.Nil)
	s.State = StatePromptShown
	return false, nil
}

// PhaseOverview returns progress for every journey phase, in order.
func (c *Controller) PhaseOverview(s *Session) []domain.PhaseProgress {
	overview := make([]domain.PhaseProgress, 0, len(domain.JourneyPhases))
	for _, phase := range domain.JourneyPhases {
		overview = append(overview, Progress(phase, s.Counts[phase], c.thresholds))
	}
	return overview
}

// Exit ends the session from any state, releasing any open capture
// resources before discarding in-progress state. Exit is idempotent.
func (c *Controller) Exit(s *Session) {
	c.releaseCapture(s)
	s.media = nil
	s.Note = ""
	s.State = StateExited
}

// releaseCapture tears down the capture stream if one is open. Safe to call
// on every exit path; Stream.Release is itself idempotent.
func (c *Controller) releaseCapture(s *Session) {
	if s.stream != nil {
		s.stream.Release()
	}
	s.stream = nil
	s.recorder = nil
}

// activeCategory resolves the prompt category for the session's template
// and, for journeys, its current phase.
func (c *Controller) activeCategory(s *Session) domain.PromptCategory {
	if s.Template.MultiPhase() {
		return s.Phase.Category()
	}
	return s.Template.Category()
}

// ArtifactSavedPayload is the payload of events.TypeArtifactSaved.
type ArtifactSavedPayload struct {
	ArtifactID string `json:"artifact_id"`
	SessionID  string `json:"session_id"`
	Template   string `json:"template"`
	Phase      string `json:"phase,omitempty"`
	MediaType  string `json:"media_type"`
}

// emitSaved publishes an artifact.saved event. Emission failures are logged
// and never affect the save outcome.
func (c *Controller) emitSaved(ctx context.Context, s *Session, artifact *domain.Artifact) {
	if c.emitter == nil {
		return
	}

	payload := ArtifactSavedPayload{
		ArtifactID: artifact.ID.String(),
		SessionID:  s.ID.String(),
		Template:   string(s.Template),
		MediaType:  string(artifact.MediaType),
	}
	if s.Template.MultiPhase() {
		payload.Phase = string(s.Phase)
	}

	event, err := events.NewEvent(events.TypeArtifactSaved, payload)
	if err != nil {
		c.logger.Error("failed to build artifact.saved event", slog.String("error", err.Error()))
		return
	}

	if err := c.emitter.EmitEvent(ctx, event); err != nil {
		c.logger.Error("failed to emit artifact.saved event",
			slog.String("event_id", event.ID.String()),
			slog.String("error", err.Error()))
	}
}

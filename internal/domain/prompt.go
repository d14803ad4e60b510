package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PromptCategory identifies which session context a prompt belongs to.
type PromptCategory string

// Known prompt categories. The journey_* categories back the three phases of
// the multi-phase journey template; the rest back single-shot contexts.
const (
	CategoryPeak               PromptCategory = "peak"
	CategoryDaily              PromptCategory = "daily"
	CategoryCrisis             PromptCategory = "crisis"
	CategoryDeepDive           PromptCategory = "deep_dive"
	CategoryJourneyPreparation PromptCategory = "journey_preparation"
	CategoryJourneyPeak        PromptCategory = "journey_peak"
	CategoryJourneyIntegration PromptCategory = "journey_integration"
)

// IsValid reports whether the category is one of the known categories.
func (c PromptCategory) IsValid() bool {
	switch c {
	case CategoryPeak, CategoryDaily, CategoryCrisis, CategoryDeepDive,
		CategoryJourneyPreparation, CategoryJourneyPeak, CategoryJourneyIntegration:
		return true
	default:
		return false
	}
}

// ActivityType optionally tags a prompt with the kind of activity it asks
// for, so clients can render an appropriate hint alongside the text.
type ActivityType string

const (
	ActivitySpeaking ActivityType = "speaking"
	ActivityAction   ActivityType = "action"
	ActivitySensory  ActivityType = "sensory"
)

// IsValid reports whether the activity type is known. The empty string is
// valid: most prompts carry no activity type.
func (a ActivityType) IsValid() bool {
	switch a {
	case "", ActivitySpeaking, ActivityAction, ActivitySensory:
		return true
	default:
		return false
	}
}

// Prompt-specific validation errors.
var (
	// ErrPromptIDEmpty is returned when a prompt ID is empty or nil.
	ErrPromptIDEmpty = errors.New("prompt ID cannot be empty")

	// ErrPromptTextEmpty is returned when a prompt's text is empty.
	ErrPromptTextEmpty = errors.New("prompt text cannot be empty")
)

// Prompt is a single reflective question or instruction shown to a couple.
// Prompts are immutable once created; the engine only ever reads them.
type Prompt struct {
	ID           uuid.UUID      `json:"id"`
	Text         string         `json:"text"`
	Category     PromptCategory `json:"category"`
	ActivityType ActivityType   `json:"activity_type,omitempty"`
	IsCustom     bool           `json:"is_custom"`
	CreatedAt    time.Time      `json:"created_at"`
}

// NewPrompt creates a new custom Prompt with a generated ID.
// Returns an error if validation fails.
func NewPrompt(text string, category PromptCategory, activityType ActivityType) (*Prompt, error) {
	prompt := &Prompt{
		ID:           uuid.New(),
		Text:         text,
		Category:     category,
		ActivityType: activityType,
		IsCustom:     true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := prompt.Validate(); err != nil {
		return nil, err
	}

	return prompt, nil
}

// Validate checks if the Prompt has valid data.
func (p *Prompt) Validate() error {
	if p.ID == uuid.Nil {
		return ErrPromptIDEmpty
	}

	if p.Text == "" {
		return ErrPromptTextEmpty
	}

	if !p.Category.IsValid() {
		return ErrInvalidCategory
	}

	if !p.ActivityType.IsValid() {
		return ErrInvalidActivityType
	}

	return nil
}

// defaultPromptID is the stable ID of the built-in fallback prompt, so that
// repeated fallback draws are recognizable as the same prompt.
var defaultPromptID = uuid.MustParse("6f1c9f4e-0000-4000-8000-000000000001")

// DefaultPrompt returns the fixed fallback prompt the selector degrades to
// when a category has no prompts at all. The engine must never end up with
// nothing to display.
func DefaultPrompt() Prompt {
	return Prompt{
		ID:       defaultPromptID,
		Text:     "Look at your partner and tell them exactly what you admire about them right now.",
		Category: CategoryPeak,
		IsCustom: false,
	}
}

// PromptSet is a read-only snapshot of the prompt library, keyed by category.
// The engine treats it as immutable for the duration of a session.
type PromptSet map[PromptCategory][]Prompt

// Category returns the prompts in the given category. A missing category
// yields an empty slice, never nil dereference.
func (s PromptSet) Category(c PromptCategory) []Prompt {
	return s[c]
}

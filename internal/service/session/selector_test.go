package session_test

import (
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetherhq/tether-api/internal/domain"
	"github.com/tetherhq/tether-api/internal/service/session"
)

func newTestSelector() *session.Selector {
	return session.NewSelectorWithRand(rand.New(rand.NewSource(1)))
}

func makePrompts(t *testing.T, category domain.PromptCategory, texts ...string) []domain.Prompt {
	t.Helper()

	prompts := make([]domain.Prompt, 0, len(texts))
	for _, text := range texts {
		p, err := domain.NewPrompt(text, category, "")
		require.NoError(t, err)
		prompts = append(prompts, *p)
	}
	return prompts
}

func TestSelectorDraw(t *testing.T) {
	t.Parallel()

	t.Run("draws from the requested category", func(t *testing.T) {
		t.Parallel()

		set := domain.PromptSet{
			domain.CategoryPeak:  makePrompts(t, domain.CategoryPeak, "a", "b", "c"),
			domain.CategoryDaily: makePrompts(t, domain.CategoryDaily, "d"),
		}

		selector := newTestSelector()
		for i := 0; i < 20; i++ {
			prompt := selector.Draw(set, domain.CategoryPeak, uuid.Nil)
			assert.Equal(t, domain.CategoryPeak, prompt.Category)
		}
	})

	t.Run("never redraws the excluded prompt when alternatives exist", func(t *testing.T) {
		t.Parallel()

		prompts := makePrompts(t, domain.CategoryPeak, "a", "b", "c")
		set := domain.PromptSet{domain.CategoryPeak: prompts}
		current := prompts[0].ID

		selector := newTestSelector()
		for i := 0; i < 50; i++ {
			prompt := selector.Draw(set, domain.CategoryPeak, current)
			assert.NotEqual(t, current, prompt.ID)
		}
	})

	t.Run("repeats only when the category has a single prompt", func(t *testing.T) {
		t.Parallel()

		prompts := makePrompts(t, domain.CategoryPeak, "only one")
		set := domain.PromptSet{domain.CategoryPeak: prompts}

		prompt := newTestSelector().Draw(set, domain.CategoryPeak, prompts[0].ID)
		assert.Equal(t, prompts[0].ID, prompt.ID)
	})

	t.Run("empty category falls back to the default prompt", func(t *testing.T) {
		t.Parallel()

		prompt := newTestSelector().Draw(domain.PromptSet{}, domain.CategoryCrisis, uuid.Nil)
		assert.Equal(t, domain.DefaultPrompt().ID, prompt.ID)
	})

	t.Run("eventually covers every candidate", func(t *testing.T) {
		t.Parallel()

		prompts := makePrompts(t, domain.CategoryPeak, "a", "b", "c", "d")
		set := domain.PromptSet{domain.CategoryPeak: prompts}

		selector := newTestSelector()
		seen := make(map[uuid.UUID]bool)
		for i := 0; i < 200; i++ {
			seen[selector.Draw(set, domain.CategoryPeak, uuid.Nil).ID] = true
		}
		assert.Len(t, seen, len(prompts))
	})
}

func TestNewSelectorWithRandNil(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { session.NewSelectorWithRand(nil) })
}

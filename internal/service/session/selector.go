package session

import (
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tetherhq/tether-api/internal/domain"
)

// Selector draws prompts for a category from a prompt-set snapshot.
//
// The draw rule degrades gracefully instead of erroring:
//  1. draw uniformly at random from the category excluding the currently
//     displayed prompt, so consecutive draws visibly rotate;
//  2. if the exclusion empties the candidate list (the category has exactly
//     one prompt), draw from the full category — repetition is allowed only
//     when unavoidable;
//  3. if the category itself is empty, return the fixed default prompt.
//
// The selector therefore never fails to produce a prompt to display.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a Selector seeded from the current time.
func NewSelector() *Selector {
	return NewSelectorWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewSelectorWithRand creates a Selector using the provided random source.
// Intended for tests that need deterministic draws.
func NewSelectorWithRand(rng *rand.Rand) *Selector {
	if rng == nil {
		panic("rng cannot be nil")
	}
	return &Selector{rng: rng}
}

// Draw selects a prompt for the category from the snapshot, excluding the
// prompt with the given ID (pass uuid.Nil to exclude nothing).
func (s *Selector) Draw(set domain.PromptSet, category domain.PromptCategory, exclude uuid.UUID) domain.Prompt {
	all := set.Category(category)

	candidates := make([]domain.Prompt, 0, len(all))
	for _, p := range all {
		if p.ID != exclude {
			candidates = append(candidates, p)
		}
	}

	if len(candidates) == 0 {
		candidates = all
	}

	if len(candidates) == 0 {
		return domain.DefaultPrompt()
	}

	s.mu.Lock()
	idx := s.rng.Intn(len(candidates))
	s.mu.Unlock()

	return candidates[idx]
}

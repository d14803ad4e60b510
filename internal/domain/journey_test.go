package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetherhq/tether-api/internal/domain"
)

func TestTemplateIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, domain.TemplateDate.IsValid())
	assert.True(t, domain.TemplateDeepDive.IsValid())
	assert.True(t, domain.TemplateJourney.IsValid())
	assert.False(t, domain.Template("").IsValid())
	assert.False(t, domain.Template("retreat").IsValid())
}

func TestTemplateMultiPhase(t *testing.T) {
	t.Parallel()

	assert.False(t, domain.TemplateDate.MultiPhase())
	assert.False(t, domain.TemplateDeepDive.MultiPhase())
	assert.True(t, domain.TemplateJourney.MultiPhase())
}

func TestTemplateCategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.CategoryPeak, domain.TemplateDate.Category())
	assert.Equal(t, domain.CategoryDeepDive, domain.TemplateDeepDive.Category())
}

func TestPhaseOrdering(t *testing.T) {
	t.Parallel()

	require.Equal(t, []domain.Phase{
		domain.PhasePreparation,
		domain.PhasePeak,
		domain.PhaseIntegration,
	}, domain.JourneyPhases)

	next, ok := domain.PhasePreparation.Next()
	require.True(t, ok)
	assert.Equal(t, domain.PhasePeak, next)

	next, ok = domain.PhasePeak.Next()
	require.True(t, ok)
	assert.Equal(t, domain.PhaseIntegration, next)

	_, ok = domain.PhaseIntegration.Next()
	assert.False(t, ok, "integration is the terminal phase")
}

func TestPhaseCategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.CategoryJourneyPreparation, domain.PhasePreparation.Category())
	assert.Equal(t, domain.CategoryJourneyPeak, domain.PhasePeak.Category())
	assert.Equal(t, domain.CategoryJourneyIntegration, domain.PhaseIntegration.Category())
}

package session

import "github.com/tetherhq/tether-api/internal/domain"

// ThresholdTable maps each journey phase to its recommended completion
// count. The table is a read-only snapshot for the duration of a session.
type ThresholdTable map[domain.Phase]int

// DefaultThresholds returns the built-in recommended counts:
// preparation 2, peak 3, integration 2.
func DefaultThresholds() ThresholdTable {
	return ThresholdTable{
		domain.PhasePreparation: 2,
		domain.PhasePeak:        3,
		domain.PhaseIntegration: 2,
	}
}

// Progress evaluates a phase's completion against the threshold table. It is
// a pure function of its inputs: completion is count >= goal, and is
// therefore monotone in the count. Completion is advisory — the engine never
// hard-blocks further reflection in a complete phase.
func Progress(phase domain.Phase, count int, thresholds ThresholdTable) domain.PhaseProgress {
	goal := thresholds[phase]
	return domain.PhaseProgress{
		Phase:    phase,
		Count:    count,
		Goal:     goal,
		Complete: goal > 0 && count >= goal,
	}
}

package domain

// Template is the high-level session type chosen at the start.
type Template string

const (
	// TemplateDate is the single-shot "date night" template drawing from the
	// peak category.
	TemplateDate Template = "date"

	// TemplateDeepDive is the single-shot vulnerability template drawing
	// from the deep_dive category.
	TemplateDeepDive Template = "deep_dive"

	// TemplateJourney is the multi-phase guided journey
	// (preparation -> peak -> integration).
	TemplateJourney Template = "journey"
)

// IsValid reports whether the template is known.
func (t Template) IsValid() bool {
	switch t {
	case TemplateDate, TemplateDeepDive, TemplateJourney:
		return true
	default:
		return false
	}
}

// MultiPhase reports whether the template routes through the journey phase
// loop rather than a single prompt category.
func (t Template) MultiPhase() bool {
	return t == TemplateJourney
}

// Category returns the prompt category for a single-shot template. For the
// journey template the active phase decides the category instead; this
// returns the peak category as a safe default.
func (t Template) Category() PromptCategory {
	switch t {
	case TemplateDeepDive:
		return CategoryDeepDive
	default:
		return CategoryPeak
	}
}

// Phase is a named stage of the multi-phase journey.
type Phase string

const (
	PhasePreparation Phase = "preparation"
	PhasePeak        Phase = "peak"
	PhaseIntegration Phase = "integration"
)

// JourneyPhases lists the journey phases in order.
var JourneyPhases = []Phase{PhasePreparation, PhasePeak, PhaseIntegration}

// IsValid reports whether the phase is known.
func (p Phase) IsValid() bool {
	switch p {
	case PhasePreparation, PhasePeak, PhaseIntegration:
		return true
	default:
		return false
	}
}

// Category returns the prompt category backing the phase.
func (p Phase) Category() PromptCategory {
	switch p {
	case PhasePeak:
		return CategoryJourneyPeak
	case PhaseIntegration:
		return CategoryJourneyIntegration
	default:
		return CategoryJourneyPreparation
	}
}

// Next returns the phase after p and true, or the zero Phase and false when
// p is the terminal phase.
func (p Phase) Next() (Phase, bool) {
	switch p {
	case PhasePreparation:
		return PhasePeak, true
	case PhasePeak:
		return PhaseIntegration, true
	default:
		return "", false
	}
}

// PhaseProgress is a derived, read-only view of how far a phase has come
// relative to its recommended count. Completion is advisory: the user may
// keep logging in a complete phase.
type PhaseProgress struct {
	Phase    Phase `json:"phase"`
	Count    int   `json:"count"`
	Goal     int   `json:"goal"`
	Complete bool  `json:"complete"`
}

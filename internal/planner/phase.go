package planner

// Phase buckets days-until-exam into planning regimes that shift the
// task mix. Critical biases strongly toward timed practice.
type Phase string

const (
	PhaseDistant     Phase = "distant"     // ≥60 days out
	PhaseApproaching Phase = "approaching" // 8–59 days
	PhaseCritical    Phase = "critical"    // ≤7 days
)

// DeterminePhase maps days until the written exam to a phase.
func DeterminePhase(daysUntilExam int) Phase {
	switch {
	case daysUntilExam >= 60:
		return PhaseDistant
	case daysUntilExam >= 8:
		return PhaseApproaching
	default:
		return PhaseCritical
	}
}

// proximityMultiplier rises stepwise as the exam nears, scaling the
// exam-ROI factor.
func proximityMultiplier(daysUntilExam int) float64 {
	switch {
	case daysUntilExam >= 60:
		return 1.0
	case daysUntilExam >= 30:
		return 1.2
	case daysUntilExam >= 14:
		return 1.5
	case daysUntilExam >= 8:
		return 1.8
	default:
		return 2.2
	}
}

package planner

import (
	"math"

	"github.com/abhisek/examcoach/internal/gate"
	"github.com/abhisek/examcoach/internal/mastery"
)

// Factor caps and curve constants.
const (
	// coreSkillBoost favors skills examined every cycle.
	coreSkillBoost = 1.25

	// errorIncidenceWeight converts a 30-day error count into the
	// errorClosure factor, capped at 1.0.
	errorIncidenceWeight = 0.2

	// forgettingScaleDays stretches the forgetting curve: at stability
	// 1.0 the retention gain passes ~0.63 ten days after practice.
	forgettingScaleDays = 10.0

	// overdueRampPerDay raises the retention gain of an overdue review
	// toward the 1.0 cap.
	overdueRampPerDay = 0.05
	overdueBase       = 0.7

	// Burnout accumulation within a 24h window.
	burnoutMinutesScale = 60.0
	burnoutPerMinuteCap = 0.5
	burnoutPerFormatRep = 0.25

	// coverageDebtBoost scales exam ROI up for skills behind on their
	// phase coverage targets.
	coverageDebtBoost = 0.5
)

// scoreCandidate computes the five-factor breakdown for one candidate.
func scoreCandidate(in Input, c Candidate, state SkillState) Factors {
	var f Factors

	pm := 0.0
	if state.Record != nil {
		pm = state.Record.PMastery
	}

	// learningGain: how much room there is to grow, scaled by how much
	// this item's format and difficulty can teach, and by exam weight.
	formatBoost := mastery.FormatWeight(c.Item.Format)
	difficultyBoost := mastery.DifficultyFactor(c.Item.Difficulty)
	f.LearningGain = (1 - pm) * formatBoost * difficultyBoost * state.Skill.ExamWeight

	f.RetentionGain = retentionGain(in, state)

	f.ExamROI = state.Skill.ExamWeight * proximityMultiplier(in.DaysUntilExam)
	if state.Skill.IsCore {
		f.ExamROI *= coreSkillBoost
	}
	if debt := in.CoverageDebt[c.SkillID]; debt > 0 {
		f.ExamROI *= 1 + math.Min(1.0, debt)*coverageDebtBoost
	}

	f.ErrorClosure = math.Min(1.0, float64(in.ErrorCounts[c.SkillID])*errorIncidenceWeight)

	f.BurnoutPenalty = burnoutPenalty(in, c)

	f.Total = weightLearningGain*f.LearningGain +
		weightRetentionGain*f.RetentionGain +
		weightExamROI*f.ExamROI +
		weightErrorClosure*f.ErrorClosure -
		weightBurnoutPenalty*f.BurnoutPenalty

	return f
}

// retentionGain models the value of reviewing now: 1.0 for untouched
// skills, ramping toward 1.0 for overdue reviews, and an exponential
// forgetting curve in between.
func retentionGain(in Input, state SkillState) float64 {
	rec := state.Record
	if rec == nil || rec.LastPracticedAt.IsZero() {
		return 1.0
	}

	if overdue := rec.OverdueDays(in.Date); overdue > 0 {
		return math.Min(1.0, overdueBase+overdue*overdueRampPerDay)
	}

	days := rec.DaysSincePractice(in.Date)
	if days < 0 {
		return 1.0
	}
	stability := rec.Stability
	if stability <= 0 {
		stability = mastery.DefaultStability
	}
	// Memory decays as exp(-t/τ) with τ growing with stability; the
	// gain from review is the decayed share.
	return 1.0 - math.Exp(-days/(stability*forgettingScaleDays))
}

// burnoutPenalty caps the combined penalty from same-skill minutes and
// same-format repetition within the last 24 hours.
func burnoutPenalty(in Input, c Candidate) float64 {
	minutes := float64(in.RecentSkillMinutes[c.SkillID])
	fromMinutes := math.Min(burnoutPerMinuteCap, minutes/burnoutMinutesScale*burnoutPerMinuteCap)

	reps := float64(in.RecentFormatCounts[c.Item.Format])
	fromReps := reps * burnoutPerFormatRep

	return math.Min(1.0, fromMinutes+fromReps)
}

// deriveTaskType classifies what the task is for, from state alone.
func deriveTaskType(in Input, state SkillState, f Factors) string {
	rec := state.Record
	switch {
	case rec != nil && rec.PMastery >= gate.VerifyMasteryThreshold && !rec.IsVerified:
		return "timed_proof"
	case rec == nil || rec.LastPracticedAt.IsZero():
		return "first_pass"
	case rec.OverdueDays(in.Date) > 0:
		return "review"
	case f.ErrorClosure >= 0.4:
		return "error_clinic"
	default:
		return "practice"
	}
}

// Package mastery implements the per-skill mastery model: a probability
// of mastery in [0,1] moved by graded attempts, plus a stability factor
// that stretches or shrinks the review interval.
package mastery

import "github.com/abhisek/examcoach/internal/catalog"

// Update rule constants.
const (
	// LearningRate scales how far one attempt can move mastery.
	LearningRate = 0.15

	// MaxGain and MaxLoss clamp a single attempt's delta. Losses bite
	// harder than gains so one lucky pass cannot mask decay.
	MaxGain = 0.10
	MaxLoss = -0.12

	// Stability bounds and per-attempt steps.
	MinStability      = 0.3
	MaxStability      = 2.0
	DefaultStability  = 1.0
	StabilityGainStep = 0.05
	StabilityLossStep = 0.10
)

// formatWeights order assessment formats by evidence strength: producing
// an answer under oral questioning proves more than recognizing one on a
// flashcard.
var formatWeights = map[catalog.Format]float64{
	catalog.FormatOral:      1.35,
	catalog.FormatDrafting:  1.25,
	catalog.FormatWritten:   1.15,
	catalog.FormatMCQ:       0.75,
	catalog.FormatFlashcard: 0.65,
}

var modeWeights = map[catalog.Mode]float64{
	catalog.ModeTimed:    1.25,
	catalog.ModeExamSim:  1.25,
	catalog.ModePractice: 1.0,
}

// difficultyFactors index is difficulty−1 for difficulties 1..5.
var difficultyFactors = [5]float64{0.6, 0.8, 1.0, 1.2, 1.4}

// FormatWeight returns the evidence weight of a format, or zero for an
// unknown format.
func FormatWeight(f catalog.Format) float64 {
	return formatWeights[f]
}

// ModeWeight returns the evidence weight of a mode, or zero for an
// unknown mode.
func ModeWeight(m catalog.Mode) float64 {
	return modeWeights[m]
}

// DifficultyFactor returns the scaling for a 1..5 difficulty, or zero
// when out of range.
func DifficultyFactor(d int) float64 {
	if d < catalog.MinDifficulty || d > catalog.MaxDifficulty {
		return 0
	}
	return difficultyFactors[d-1]
}

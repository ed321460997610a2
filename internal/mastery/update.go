package mastery

import (
	"github.com/abhisek/examcoach/internal/attempt"
	"github.com/abhisek/examcoach/internal/catalog"
)

// State is the mastery state going into an update.
type State struct {
	PMastery  float64
	Stability float64
}

// Facts is everything about one graded attempt the update rule reads.
type Facts struct {
	ScoreNorm      float64
	Format         catalog.Format
	Mode           catalog.Mode
	Difficulty     int
	CoverageWeight float64 // share of the item this skill covers; 0 means full
}

// Update is the result of applying one attempt to one skill.
type Update struct {
	PMastery   float64
	Stability  float64
	Delta      float64
	WasSuccess bool
}

// UpdateMastery applies one attempt's evidence to one skill. Pure: same
// inputs, same outputs, no side effects. Invalid facts return an
// InputError and the state is untouched.
//
//	quality = scoreNorm − passing threshold
//	weight  = format × mode × difficulty × coverage
//	delta   = clamp(learningRate × quality × weight)
func UpdateMastery(cur State, f Facts) (Update, error) {
	if f.ScoreNorm < 0 || f.ScoreNorm > 1 {
		return Update{}, &InputError{Field: "scoreNorm", Msg: "must be in [0,1]"}
	}
	formatW := FormatWeight(f.Format)
	if formatW == 0 {
		return Update{}, &InputError{Field: "format", Msg: "unknown format " + string(f.Format)}
	}
	modeW := ModeWeight(f.Mode)
	if modeW == 0 {
		return Update{}, &InputError{Field: "mode", Msg: "unknown mode " + string(f.Mode)}
	}
	diffW := DifficultyFactor(f.Difficulty)
	if diffW == 0 {
		return Update{}, &InputError{Field: "difficulty", Msg: "must be 1..5"}
	}
	coverage := f.CoverageWeight
	if coverage == 0 {
		coverage = 1.0
	}
	if coverage < 0 || coverage > 1 {
		return Update{}, &InputError{Field: "coverageWeight", Msg: "must be in (0,1]"}
	}

	stability := cur.Stability
	if stability == 0 {
		stability = DefaultStability
	}

	quality := f.ScoreNorm - attempt.PassingScore
	delta := clamp(LearningRate*quality*formatW*modeW*diffW*coverage, MaxLoss, MaxGain)

	upd := Update{
		Delta:      delta,
		PMastery:   clamp(cur.PMastery+delta, 0, 1),
		WasSuccess: f.ScoreNorm >= attempt.PassingScore,
	}
	if upd.WasSuccess {
		upd.Stability = clamp(stability+StabilityGainStep, MinStability, MaxStability)
	} else {
		upd.Stability = clamp(stability-StabilityLossStep, MinStability, MaxStability)
	}
	return upd, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package coverage holds the coverage-debt read model: how far a user is
// from the practice/timed/mock counts their exam phase requires.
package coverage

import "github.com/abhisek/examcoach/internal/attempt"

// Per-skill work each phase requires before the exam.
var phaseRequirements = map[string]struct {
	practice, timed, mock int
}{
	"distant":     {practice: 4, timed: 1, mock: 0},
	"approaching": {practice: 6, timed: 3, mock: 1},
	"critical":    {practice: 4, timed: 4, mock: 2},
}

// Debt tracks required vs. completed work for one (user, skill, phase).
type Debt struct {
	UserID  string
	SkillID string
	Phase   string

	RequiredPractice  int
	CompletedPractice int
	RequiredTimed     int
	CompletedTimed    int
	RequiredMock      int
	CompletedMock     int
}

// Score returns the debt as a [0,1] shortfall ratio. Timed and mock
// shortfalls weigh heavier than plain practice since they are harder to
// catch up on late.
func (d Debt) Score() float64 {
	total := 0.0
	weight := 0.0

	total += shortfall(d.RequiredPractice, d.CompletedPractice) * 1.0
	weight += 1.0
	total += shortfall(d.RequiredTimed, d.CompletedTimed) * 1.5
	weight += 1.5
	total += shortfall(d.RequiredMock, d.CompletedMock) * 2.0
	weight += 2.0

	return total / weight
}

// Compute tallies the user's attempt history for one skill against the
// phase's requirements. Unknown phases carry no requirements and so no
// debt.
func Compute(userID, skillID, phase string, attempts []attempt.Attempt) Debt {
	req := phaseRequirements[phase]
	d := Debt{
		UserID:           userID,
		SkillID:          skillID,
		Phase:            phase,
		RequiredPractice: req.practice,
		RequiredTimed:    req.timed,
		RequiredMock:     req.mock,
	}
	for _, att := range attempts {
		if !att.TestsSkill(skillID) {
			continue
		}
		switch {
		case att.Mode.IsMock():
			d.CompletedMock++
		case att.IsProof():
			d.CompletedTimed++
		default:
			d.CompletedPractice++
		}
	}
	return d
}

func shortfall(required, completed int) float64 {
	if required <= 0 {
		return 0
	}
	missing := required - completed
	if missing <= 0 {
		return 0
	}
	return float64(missing) / float64(required)
}

// Package attempt defines the immutable evidence records produced when a
// candidate works an item. Attempts are append-only: once graded they are
// never mutated, so mastery and gate checks can replay history safely.
package attempt

import (
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/examcoach/internal/catalog"
)

// PassingScore is the normalized score at or above which an attempt
// counts as a pass.
const PassingScore = 0.6

// Attempt records one graded engagement with an item.
type Attempt struct {
	ID     string
	UserID string
	ItemID string

	// Skills lists the skills this attempt tested with their coverage
	// weights. A weight of zero means unset (full credit).
	Skills []catalog.SkillCoverage

	Format catalog.Format
	Mode   catalog.Mode

	// ScoreNorm is the normalized score in [0,1].
	ScoreNorm float64

	// Difficulty is the item difficulty at attempt time, 1..5.
	Difficulty int

	TimeTakenSec int

	// ErrorTags labels the mistakes observed in this attempt.
	ErrorTags []string

	SubmittedAt time.Time
}

// NewID returns a fresh attempt id.
func NewID() string {
	return uuid.NewString()
}

// Passed reports whether the attempt meets the passing threshold.
func (a Attempt) Passed() bool {
	return a.ScoreNorm >= PassingScore
}

// IsProof reports whether this attempt can count toward gate verification.
func (a Attempt) IsProof() bool {
	return a.Mode.IsProof()
}

// HasErrorTag reports whether the attempt carries the given error tag.
func (a Attempt) HasErrorTag(tag string) bool {
	for _, t := range a.ErrorTags {
		if t == tag {
			return true
		}
	}
	return false
}

// TestsSkill reports whether the attempt tested the given skill.
func (a Attempt) TestsSkill(skillID string) bool {
	for _, sc := range a.Skills {
		if sc.SkillID == skillID {
			return true
		}
	}
	return false
}
